package dice

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Faultbox/tavern-dice/pkg/geometry"
	"github.com/Faultbox/tavern-dice/pkg/math"
)

// ErrInsufficientGeometry is returned when a mesh has fewer faces or
// vertices than the die has values.
var ErrInsufficientGeometry = errors.New("dice: geometry cannot carry every value")

// sixSided is the conventional cube layout: opposite faces sum to 7.
var sixSided = []Entry{
	{Key: math.Vec3{X: 1}, Value: 4, Label: "4"},
	{Key: math.Vec3{X: -1}, Value: 3, Label: "3"},
	{Key: math.Vec3{Y: 1}, Value: 1, Label: "1"},
	{Key: math.Vec3{Y: -1}, Value: 6, Label: "6"},
	{Key: math.Vec3{Z: 1}, Value: 2, Label: "2"},
	{Key: math.Vec3{Z: -1}, Value: 5, Label: "5"},
}

// Bind builds the value table for a die type from its mesh.
func Bind(t Type, mesh geometry.Mesh) (Table, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("bind %v: unknown type", t)
	}
	switch t {
	case D6:
		entries := make([]Entry, len(sixSided))
		copy(entries, sixSided)
		return &NormalTable{dieType: t, entries: entries}, nil
	case D4:
		return bindVertices(t, mesh)
	default:
		return bindNormals(t, mesh)
	}
}

func bindNormals(t Type, mesh geometry.Mesh) (*NormalTable, error) {
	faces := geometry.ExtractFaces(mesh, geometry.NormalEpsilon)
	if len(faces) < t.Sides() {
		return nil, fmt.Errorf("bind %v: %d faces for %d values: %w", t, len(faces), t.Sides(), ErrInsufficientGeometry)
	}

	labels := Labels(t, len(faces))
	entries := make([]Entry, len(faces))
	for i, f := range faces {
		// "00" on the percentile die reads as zero.
		value, err := strconv.Atoi(labels[i])
		if err != nil {
			value = 0
		}
		entries[i] = Entry{Key: f.Normal, Value: value, Label: labels[i]}
	}
	return &NormalTable{dieType: t, entries: entries}, nil
}

func bindVertices(t Type, mesh geometry.Mesh) (*VertexTable, error) {
	verts := geometry.UniqueVertices(mesh, geometry.VertexEpsilon)
	if len(verts) < t.Sides() {
		return nil, fmt.Errorf("bind %v: %d vertices for %d values: %w", t, len(verts), t.Sides(), ErrInsufficientGeometry)
	}

	entries := make([]Entry, len(verts))
	for i, v := range verts {
		entries[i] = Entry{Key: v, Value: i + 1, Label: strconv.Itoa(i + 1)}
	}
	return &VertexTable{dieType: t, entries: entries}, nil
}
