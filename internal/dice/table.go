package dice

import "github.com/Faultbox/tavern-dice/pkg/math"

// Pose is a rigid body's world placement.
type Pose struct {
	Position    math.Vec3
	Orientation math.Quat
}

// Entry binds a geometric key in object space to a face value.
type Entry struct {
	Key   math.Vec3 // outward face normal, or vertex position for the d4
	Value int
	Label string
}

// Table maps a settled pose to the value a player would read. Tables are
// built once per type and shared read-only by every die of that type.
type Table interface {
	Type() Type
	Entries() []Entry
	Read(pose Pose) int
}

// NormalTable reads the face whose normal points most directly up.
type NormalTable struct {
	dieType Type
	entries []Entry
}

// Type returns the die type the table was bound for.
func (t *NormalTable) Type() Type { return t.dieType }

// Entries returns the bound rows. Callers must not modify them.
func (t *NormalTable) Entries() []Entry { return t.entries }

// Read rotates every face normal into world space and returns the value of
// the one with the largest dot product against world up. Translation does
// not affect directions. Ties keep the earliest row.
func (t *NormalTable) Read(pose Pose) int {
	if len(t.entries) == 0 {
		return 0
	}
	best := t.entries[0].Value
	bestDot := float32(-2) // below any dot of unit vectors
	for _, e := range t.entries {
		dot := pose.Orientation.Rotate(e.Key).Dot(math.Up)
		if dot > bestDot {
			bestDot = dot
			best = e.Value
		}
	}
	return best
}

// VertexTable reads the vertex that sits highest in the world. A
// tetrahedral die shows its result at the apex opposite the face it rests on.
type VertexTable struct {
	dieType Type
	entries []Entry
}

// Type returns the die type the table was bound for.
func (t *VertexTable) Type() Type { return t.dieType }

// Entries returns the bound rows. Callers must not modify them.
func (t *VertexTable) Entries() []Entry { return t.entries }

// Read places every vertex in world space and returns the value of the one
// with the greatest height. Ties keep the earliest row.
func (t *VertexTable) Read(pose Pose) int {
	if len(t.entries) == 0 {
		return 0
	}
	best := t.entries[0].Value
	var bestY float32
	for i, e := range t.entries {
		y := pose.Orientation.Rotate(e.Key).Add(pose.Position).Y
		if i == 0 || y > bestY {
			bestY = y
			best = e.Value
		}
	}
	return best
}

// DistinctValues returns the number of different values in the table.
func DistinctValues(t Table) int {
	seen := make(map[int]struct{})
	for _, e := range t.Entries() {
		seen[e.Value] = struct{}{}
	}
	return len(seen)
}
