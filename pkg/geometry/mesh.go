// Package geometry builds the polyhedral dice meshes and extracts their
// planar faces.
package geometry

import (
	"errors"
	"fmt"

	"github.com/Faultbox/tavern-dice/pkg/math"
)

// ErrBadIndex is returned when an indexed mesh cannot be flattened.
var ErrBadIndex = errors.New("geometry: bad index")

// degenerateArea is the smallest cross-product magnitude accepted as a real
// triangle.
const degenerateArea = 1e-6

// Triangle is three points with counter-clockwise outward winding.
type Triangle [3]math.Vec3

// Normal returns the unit normal (b-a)x(c-a). ok is false for degenerate triangles.
func (t Triangle) Normal() (n math.Vec3, ok bool) {
	c := t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
	l := c.Length()
	if l < degenerateArea {
		return math.Vec3{}, false
	}
	return c.Scale(1 / l), true
}

// Centroid returns the mean of the three points.
func (t Triangle) Centroid() math.Vec3 {
	return t[0].Add(t[1]).Add(t[2]).Scale(1.0 / 3.0)
}

// Mesh is a flat triangle list: every triangle owns its points.
type Mesh struct {
	Triangles []Triangle
}

// Points returns every triangle corner in order, duplicates included.
func (m Mesh) Points() []math.Vec3 {
	pts := make([]math.Vec3, 0, len(m.Triangles)*3)
	for _, t := range m.Triangles {
		pts = append(pts, t[0], t[1], t[2])
	}
	return pts
}

// IndexedMesh is a shared vertex pool plus a triangle index list.
type IndexedMesh struct {
	Vertices []math.Vec3
	Indices  []int
}

// Flatten expands the index list into a flat Mesh.
func (m IndexedMesh) Flatten() (Mesh, error) {
	if len(m.Indices)%3 != 0 {
		return Mesh{}, fmt.Errorf("%w: %d indices is not a multiple of 3", ErrBadIndex, len(m.Indices))
	}

	tris := make([]Triangle, 0, len(m.Indices)/3)
	for i := 0; i < len(m.Indices); i += 3 {
		var t Triangle
		for k := 0; k < 3; k++ {
			idx := m.Indices[i+k]
			if idx < 0 || idx >= len(m.Vertices) {
				return Mesh{}, fmt.Errorf("%w: index %d out of range [0,%d)", ErrBadIndex, idx, len(m.Vertices))
			}
			t[k] = m.Vertices[idx]
		}
		tris = append(tris, t)
	}
	return Mesh{Triangles: tris}, nil
}
