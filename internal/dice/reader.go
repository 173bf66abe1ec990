package dice

import "math/rand/v2"

// Read returns the value shown by a die in the given pose.
func Read(table Table, pose Pose) int {
	return table.Read(pose)
}

// ReadOrRandom reads the value, or draws a uniform value in [1, t.Sides()]
// when the die has no table. The fallback keeps a roll going if binding
// failed for one type.
func ReadOrRandom(table Table, t Type, pose Pose, rng *rand.Rand) int {
	if table != nil {
		return table.Read(pose)
	}
	sides := t.Sides()
	if sides <= 0 {
		sides = 6
	}
	return rng.IntN(sides) + 1
}
