package roll

import (
	"github.com/Faultbox/tavern-dice/internal/dice"
	"github.com/Faultbox/tavern-dice/internal/physics"
	"github.com/Faultbox/tavern-dice/pkg/math"
)

// Die is one pooled die instance.
type Die struct {
	ID    int
	Type  dice.Type
	Body  physics.Body
	Table dice.Table // nil when binding failed for the type

	// Transform is the render pose, copied from the body after each tick.
	Transform math.Mat4

	active bool
}

// Active reports whether the die is on the board.
func (d *Die) Active() bool {
	return d.active
}

// Pose returns the body's current world placement.
func (d *Die) Pose() dice.Pose {
	return dice.Pose{Position: d.Body.Position(), Orientation: d.Body.Orientation()}
}

func (d *Die) syncTransform() {
	d.Transform = math.Compose(d.Body.Position(), d.Body.Orientation())
}
