package geometry

import (
	"errors"
	"testing"

	"github.com/Faultbox/tavern-dice/pkg/math"
)

func TestExtractFacesCounts(t *testing.T) {
	tests := []struct {
		name  string
		mesh  Mesh
		tris  int
		faces int
	}{
		{"tetrahedron", Tetrahedron(1.5), 4, 4},
		{"box", Box(1.8), 12, 6},
		{"octahedron", Octahedron(1.4), 8, 8},
		{"dodecahedron", Dodecahedron(1.4), 36, 12},
		{"icosahedron", Icosahedron(1.5), 20, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.mesh.Triangles) != tt.tris {
				t.Fatalf("triangles = %d, want %d", len(tt.mesh.Triangles), tt.tris)
			}
			faces := ExtractFaces(tt.mesh, NormalEpsilon)
			if len(faces) != tt.faces {
				t.Fatalf("faces = %d, want %d", len(faces), tt.faces)
			}

			for i, f := range faces {
				if l := f.Normal.Length(); l < 0.999 || l > 1.001 {
					t.Errorf("face %d normal length = %v", i, l)
				}
				// Convex and centered at the origin: normals point away from it.
				if f.Normal.Dot(f.Center) <= 0 {
					t.Errorf("face %d normal %v points inward (center %v)", i, f.Normal, f.Center)
				}
				if f.Radius <= 0 {
					t.Errorf("face %d radius = %v", i, f.Radius)
				}
				for j := 0; j < i; j++ {
					if f.Normal.ApproxEqual(faces[j].Normal, NormalEpsilon) {
						t.Errorf("faces %d and %d share a normal", j, i)
					}
				}
			}
		})
	}
}

func TestExtractFacesDeterministic(t *testing.T) {
	a := ExtractFaces(Dodecahedron(1.4), NormalEpsilon)
	b := ExtractFaces(Dodecahedron(1.4), NormalEpsilon)

	if len(a) != len(b) {
		t.Fatalf("face counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("face %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestExtractFacesBoxOrder(t *testing.T) {
	faces := ExtractFaces(Box(2), NormalEpsilon)
	want := []math.Vec3{
		{X: 1, Y: 0, Z: 0}, {X: -1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: -1, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: -1},
	}
	for i, f := range faces {
		if !f.Normal.ApproxEqual(want[i], 0.0001) {
			t.Errorf("face %d normal = %v, want %v", i, f.Normal, want[i])
		}
		if !f.Center.ApproxEqual(want[i], 0.0001) {
			t.Errorf("face %d center = %v, want %v", i, f.Center, want[i])
		}
	}
}

func TestExtractFacesSkipsDegenerate(t *testing.T) {
	m := Mesh{Triangles: []Triangle{
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}}, // collinear
		{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0}}, // collapsed
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
	}}

	faces := ExtractFaces(m, NormalEpsilon)
	if len(faces) != 1 {
		t.Fatalf("faces = %d, want 1", len(faces))
	}
	if !faces[0].Normal.ApproxEqual(math.Vec3{X: 0, Y: 0, Z: 1}, 0.0001) {
		t.Errorf("normal = %v, want +Z", faces[0].Normal)
	}
}

func TestExtractFacesCenterAndRadius(t *testing.T) {
	// Unit square in the XY plane split into two triangles.
	m := Mesh{Triangles: []Triangle{
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}},
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}},
	}}

	faces := ExtractFaces(m, NormalEpsilon)
	if len(faces) != 1 {
		t.Fatalf("faces = %d, want 1", len(faces))
	}
	// Mean over all six assigned points, duplicates included.
	want := math.Vec3{X: 0.5, Y: 0.5, Z: 0}
	if !faces[0].Center.ApproxEqual(want, 0.0001) {
		t.Errorf("center = %v, want %v", faces[0].Center, want)
	}
	if r := faces[0].Radius; r < 0.70 || r > 0.72 {
		t.Errorf("radius = %v, want ~0.707", r)
	}
}

func TestUniqueVertices(t *testing.T) {
	tests := []struct {
		name string
		mesh Mesh
		want int
	}{
		{"tetrahedron", Tetrahedron(1.5), 4},
		{"box", Box(1.8), 8},
		{"octahedron", Octahedron(1.4), 6},
		{"dodecahedron", Dodecahedron(1.4), 20},
		{"icosahedron", Icosahedron(1.5), 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(UniqueVertices(tt.mesh, VertexEpsilon)); got != tt.want {
				t.Errorf("unique vertices = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPolyhedronRadius(t *testing.T) {
	for _, v := range UniqueVertices(Icosahedron(1.5), VertexEpsilon) {
		if l := v.Length(); l < 1.499 || l > 1.501 {
			t.Errorf("vertex %v at distance %v, want 1.5", v, l)
		}
	}
}

func TestFlatten(t *testing.T) {
	verts := []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}

	m, err := IndexedMesh{Vertices: verts, Indices: []int{0, 1, 2}}.Flatten()
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if len(m.Triangles) != 1 || m.Triangles[0][2] != verts[2] {
		t.Errorf("unexpected mesh %+v", m)
	}

	bad := []IndexedMesh{
		{Vertices: verts, Indices: []int{0, 1}},
		{Vertices: verts, Indices: []int{0, 1, 3}},
		{Vertices: verts, Indices: []int{-1, 1, 2}},
	}
	for _, b := range bad {
		if _, err := b.Flatten(); !errors.Is(err, ErrBadIndex) {
			t.Errorf("Flatten(%v) error = %v, want ErrBadIndex", b.Indices, err)
		}
	}
}
