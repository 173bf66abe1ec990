package physics

import "github.com/Faultbox/tavern-dice/pkg/math"

type rigidBody struct {
	world   *RigidWorld
	id      int
	cfg     BodyConfig
	inWorld bool

	pos      math.Vec3
	rot      math.Quat
	vel      math.Vec3
	ang      math.Vec3
	sleeping bool
	idle     float32 // seconds spent below the sleep speed

	prevPos math.Vec3
	prevRot math.Quat

	invMass    float32
	invInertia float32
}

func (b *rigidBody) ID() int                    { return b.id }
func (b *rigidBody) Position() math.Vec3        { return b.pos }
func (b *rigidBody) Orientation() math.Quat     { return b.rot }
func (b *rigidBody) Velocity() math.Vec3        { return b.vel }
func (b *rigidBody) AngularVelocity() math.Vec3 { return b.ang }
func (b *rigidBody) Sleeping() bool             { return b.sleeping }

func (b *rigidBody) WakeUp() {
	b.sleeping = false
	b.idle = 0
}

func (b *rigidBody) SetPose(position math.Vec3, orientation math.Quat) {
	b.pos = position
	b.rot = orientation.Normalize()
	b.WakeUp()
}

func (b *rigidBody) ApplyImpulse(impulse, offset math.Vec3) {
	b.applyImpulse(impulse, offset)
	b.WakeUp()
}

func (b *rigidBody) SetAngularVelocity(w math.Vec3) {
	b.ang = w
	b.WakeUp()
}

func (b *rigidBody) ResetMotion() {
	b.vel = math.Vec3{}
	b.ang = math.Vec3{}
	b.WakeUp()
}

func (b *rigidBody) applyImpulse(impulse, offset math.Vec3) {
	b.vel = b.vel.Add(impulse.Scale(b.invMass))
	b.ang = b.ang.Add(offset.Cross(impulse).Scale(b.invInertia))
}

func (b *rigidBody) updateSleep(h float32) {
	limit := b.cfg.SleepSpeedLimit * b.cfg.SleepSpeedLimit
	if b.vel.LengthSquared() < limit && b.ang.LengthSquared() < limit {
		b.idle += h
		if b.idle >= b.cfg.SleepTimeLimit {
			b.sleeping = true
			b.vel = math.Vec3{}
			b.ang = math.Vec3{}
		}
		return
	}
	b.idle = 0
}
