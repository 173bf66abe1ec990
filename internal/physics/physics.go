// Package physics defines the rigid-body collaborator the roll engine
// drives, and a compact impulse-based implementation of it.
package physics

import (
	"errors"

	"github.com/Faultbox/tavern-dice/pkg/math"
)

// ErrUnstable is returned by Step when a body's state stops being finite.
var ErrUnstable = errors.New("physics: unstable body state")

// Body is a dynamic rigid body.
type Body interface {
	ID() int
	Position() math.Vec3
	Orientation() math.Quat
	Velocity() math.Vec3
	AngularVelocity() math.Vec3
	Sleeping() bool
	WakeUp()

	// SetPose teleports the body.
	SetPose(position math.Vec3, orientation math.Quat)
	// ApplyImpulse changes momentum instantly. offset is the application
	// point relative to the center of mass.
	ApplyImpulse(impulse, offset math.Vec3)
	SetAngularVelocity(w math.Vec3)
	// ResetMotion zeroes velocities and wakes the body.
	ResetMotion()
}

// BodyConfig describes a body to create.
type BodyConfig struct {
	Mass            float32
	LinearDamping   float32 // fraction of velocity lost per second
	AngularDamping  float32
	SleepSpeedLimit float32
	SleepTimeLimit  float32     // seconds below SleepSpeedLimit before sleeping
	Hull            []math.Vec3 // convex hull vertices, object space
	Radius          float32     // bounding sphere radius
}

// Contact is reported for every resolved collision.
type Contact struct {
	BodyA int
	BodyB int // -1 for static geometry
	// ImpactSpeed is the approach speed along the contact normal.
	ImpactSpeed float32
}

// World owns bodies and advances the simulation.
type World interface {
	NewBody(cfg BodyConfig) (Body, error)
	AddBody(b Body)
	RemoveBody(b Body)
	// Step advances by dt seconds in fixed increments of fixedStep, running
	// at most maxSubSteps increments.
	Step(fixedStep, dt float32, maxSubSteps int) error
	OnContact(fn func(Contact))
}
