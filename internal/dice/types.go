// Package dice binds die geometry to face values and reads results from
// settled orientations.
package dice

import (
	"fmt"
	"strings"

	"github.com/Faultbox/tavern-dice/pkg/geometry"
)

// Type is a polyhedral die category.
type Type uint8

const (
	D4 Type = iota
	D6
	D8
	D10
	D100
	D12
	D20
)

// AllTypes lists every die type in canonical display order.
var AllTypes = []Type{D4, D6, D8, D10, D100, D12, D20}

// Properties holds the physical and visual parameters of a die type.
type Properties struct {
	Sides  int     // canonical number of distinct values
	Mass   float32 // kg
	Radius float32 // circumradius, or edge length for the cube
	Color  uint32  // RGB
}

var properties = map[Type]Properties{
	D4:   {Sides: 4, Mass: 1.0, Radius: 1.5, Color: 0xff4444},
	D6:   {Sides: 6, Mass: 1.2, Radius: 1.8, Color: 0xeeeeee},
	D8:   {Sides: 8, Mass: 1.4, Radius: 1.4, Color: 0x44cc44},
	D10:  {Sides: 10, Mass: 1.6, Radius: 1.4, Color: 0x6666ff},
	D100: {Sides: 10, Mass: 1.6, Radius: 1.4, Color: 0x9933ff},
	D12:  {Sides: 12, Mass: 1.8, Radius: 1.4, Color: 0xffcc00},
	D20:  {Sides: 20, Mass: 2.0, Radius: 1.5, Color: 0xff8800},
}

// Props returns the type's properties.
func (t Type) Props() Properties {
	return properties[t]
}

// Sides returns the canonical number of distinct values.
func (t Type) Sides() int {
	return properties[t].Sides
}

// Valid reports whether t is a known die type.
func (t Type) Valid() bool {
	_, ok := properties[t]
	return ok
}

// String returns the short name ("d4" ... "d100").
func (t Type) String() string {
	switch t {
	case D4:
		return "d4"
	case D6:
		return "d6"
	case D8:
		return "d8"
	case D10:
		return "d10"
	case D100:
		return "d100"
	case D12:
		return "d12"
	case D20:
		return "d20"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Label is the user-facing name; the percentile die shows as "d%".
func (t Type) Label() string {
	if t == D100 {
		return "d%"
	}
	return t.String()
}

// ParseType accepts "d6", "D6", "d%" and "d100".
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "d%" {
		return D100, nil
	}
	for _, t := range AllTypes {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown die type %q", s)
}

// Mesh returns the collision and labeling geometry for the type. d10, d%
// and d12 share one dodecahedron.
func (t Type) Mesh() geometry.Mesh {
	r := properties[t].Radius
	switch t {
	case D4:
		return geometry.Tetrahedron(r)
	case D6:
		return geometry.Box(r)
	case D8:
		return geometry.Octahedron(r)
	case D20:
		return geometry.Icosahedron(r)
	default:
		return geometry.Dodecahedron(r)
	}
}
