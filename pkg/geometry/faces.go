package geometry

import "github.com/Faultbox/tavern-dice/pkg/math"

// NormalEpsilon is the per-axis tolerance for two triangle normals to be
// considered the same face.
const NormalEpsilon = 0.01

// VertexEpsilon is the distance under which two points are the same vertex.
const VertexEpsilon = 0.01

// Face is a planar face of a polyhedron.
type Face struct {
	Normal math.Vec3 // unit outward normal, object space
	Center math.Vec3 // mean of every vertex assigned to the face
	Radius float32   // max distance from Center to an assigned vertex
}

type faceGroup struct {
	normal math.Vec3
	points []math.Vec3
}

// ExtractFaces groups triangles into planar faces by normal. A triangle
// joins the first existing group whose normal is within eps on every axis,
// otherwise it starts a new group. Output order is group creation order, so
// the same mesh always yields the same face sequence. Degenerate triangles
// are skipped.
func ExtractFaces(m Mesh, eps float32) []Face {
	var groups []*faceGroup

	for _, tri := range m.Triangles {
		n, ok := tri.Normal()
		if !ok {
			continue
		}

		var group *faceGroup
		for _, g := range groups {
			if n.ApproxEqual(g.normal, eps) {
				group = g
				break
			}
		}
		if group == nil {
			group = &faceGroup{normal: n}
			groups = append(groups, group)
		}
		group.points = append(group.points, tri[0], tri[1], tri[2])
	}

	faces := make([]Face, 0, len(groups))
	for _, g := range groups {
		var center math.Vec3
		for _, p := range g.points {
			center = center.Add(p)
		}
		center = center.Scale(1 / float32(len(g.points)))

		var radius float32
		for _, p := range g.points {
			if d := p.Distance(center); d > radius {
				radius = d
			}
		}
		faces = append(faces, Face{Normal: g.normal, Center: center, Radius: radius})
	}
	return faces
}

// UniqueVertices returns the mesh's distinct points in discovery order. Two
// points closer than eps are the same vertex.
func UniqueVertices(m Mesh, eps float32) []math.Vec3 {
	var unique []math.Vec3
	for _, p := range m.Points() {
		found := false
		for _, u := range unique {
			if p.Distance(u) < eps {
				found = true
				break
			}
		}
		if !found {
			unique = append(unique, p)
		}
	}
	return unique
}
