package geometry

import (
	gomath "math"

	"github.com/Faultbox/tavern-dice/pkg/math"
)

var phi = float32((1 + gomath.Sqrt(5)) / 2)

// Tetrahedron returns a regular tetrahedron with circumradius r.
func Tetrahedron(r float32) Mesh {
	vertices := []math.Vec3{
		{X: 1, Y: 1, Z: 1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: -1, Z: -1},
	}
	indices := []int{
		2, 1, 0, 0, 3, 2, 1, 3, 0, 2, 3, 1,
	}
	return polyhedron(vertices, indices, r)
}

// Octahedron returns a regular octahedron with circumradius r.
func Octahedron(r float32) Mesh {
	vertices := []math.Vec3{
		{X: 1, Y: 0, Z: 0}, {X: -1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: -1, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: -1},
	}
	indices := []int{
		0, 2, 4, 0, 4, 3, 0, 3, 5, 0, 5, 2,
		1, 2, 5, 1, 5, 3, 1, 3, 4, 1, 4, 2,
	}
	return polyhedron(vertices, indices, r)
}

// Dodecahedron returns a regular dodecahedron with circumradius r.
// Each pentagonal face is fanned into three triangles.
func Dodecahedron(r float32) Mesh {
	t := phi
	s := 1 / phi
	vertices := []math.Vec3{
		// (±1, ±1, ±1)
		{X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: 1},
		{X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1},
		// (0, ±1/φ, ±φ)
		{X: 0, Y: -s, Z: -t}, {X: 0, Y: -s, Z: t}, {X: 0, Y: s, Z: -t}, {X: 0, Y: s, Z: t},
		// (±1/φ, ±φ, 0)
		{X: -s, Y: -t, Z: 0}, {X: -s, Y: t, Z: 0}, {X: s, Y: -t, Z: 0}, {X: s, Y: t, Z: 0},
		// (±φ, 0, ±1/φ)
		{X: -t, Y: 0, Z: -s}, {X: t, Y: 0, Z: -s}, {X: -t, Y: 0, Z: s}, {X: t, Y: 0, Z: s},
	}
	indices := []int{
		3, 11, 7, 3, 7, 15, 3, 15, 13,
		7, 19, 17, 7, 17, 6, 7, 6, 15,
		17, 4, 8, 17, 8, 10, 17, 10, 6,
		8, 0, 16, 8, 16, 2, 8, 2, 10,
		0, 12, 1, 0, 1, 18, 0, 18, 16,
		6, 10, 2, 6, 2, 13, 6, 13, 15,
		2, 16, 18, 2, 18, 3, 2, 3, 13,
		18, 1, 9, 18, 9, 11, 18, 11, 3,
		4, 14, 12, 4, 12, 0, 4, 0, 8,
		11, 9, 5, 11, 5, 19, 11, 19, 7,
		19, 5, 14, 19, 14, 4, 19, 4, 17,
		1, 12, 14, 1, 14, 5, 1, 5, 9,
	}
	return polyhedron(vertices, indices, r)
}

// Icosahedron returns a regular icosahedron with circumradius r.
func Icosahedron(r float32) Mesh {
	t := phi
	vertices := []math.Vec3{
		{X: -1, Y: t, Z: 0}, {X: 1, Y: t, Z: 0}, {X: -1, Y: -t, Z: 0}, {X: 1, Y: -t, Z: 0},
		{X: 0, Y: -1, Z: t}, {X: 0, Y: 1, Z: t}, {X: 0, Y: -1, Z: -t}, {X: 0, Y: 1, Z: -t},
		{X: t, Y: 0, Z: -1}, {X: t, Y: 0, Z: 1}, {X: -t, Y: 0, Z: -1}, {X: -t, Y: 0, Z: 1},
	}
	indices := []int{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}
	return polyhedron(vertices, indices, r)
}

// Box returns an axis-aligned cube with the given edge length. Faces are
// emitted in +X, -X, +Y, -Y, +Z, -Z order, two triangles each.
func Box(size float32) Mesh {
	h := size / 2
	// Corner index bits: 1 = +X, 2 = +Y, 4 = +Z.
	corner := func(i int) math.Vec3 {
		c := math.Vec3{X: -h, Y: -h, Z: -h}
		if i&1 != 0 {
			c.X = h
		}
		if i&2 != 0 {
			c.Y = h
		}
		if i&4 != 0 {
			c.Z = h
		}
		return c
	}
	vertices := make([]math.Vec3, 8)
	for i := range vertices {
		vertices[i] = corner(i)
	}
	indices := []int{
		1, 3, 7, 1, 7, 5, // +X
		0, 4, 6, 0, 6, 2, // -X
		2, 6, 7, 2, 7, 3, // +Y
		0, 1, 5, 0, 5, 4, // -Y
		4, 5, 7, 4, 7, 6, // +Z
		0, 2, 3, 0, 3, 1, // -Z
	}
	m, _ := IndexedMesh{Vertices: vertices, Indices: indices}.Flatten()
	orientOutward(m, math.Vec3{})
	return m
}

// polyhedron projects the vertices onto a sphere of radius r and flattens
// the index list with outward winding.
func polyhedron(vertices []math.Vec3, indices []int, r float32) Mesh {
	projected := make([]math.Vec3, len(vertices))
	for i, v := range vertices {
		projected[i] = v.Normalize().Scale(r)
	}
	// The tables above are static, so Flatten cannot fail.
	m, _ := IndexedMesh{Vertices: projected, Indices: indices}.Flatten()
	orientOutward(m, math.Vec3{})
	return m
}

// orientOutward flips any triangle whose normal faces center. Only valid
// for convex solids.
func orientOutward(m Mesh, center math.Vec3) {
	for i, t := range m.Triangles {
		n, ok := t.Normal()
		if !ok {
			continue
		}
		if n.Dot(t.Centroid().Sub(center)) < 0 {
			m.Triangles[i] = Triangle{t[0], t[2], t[1]}
		}
	}
}
