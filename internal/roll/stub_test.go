package roll

import (
	"errors"

	"github.com/Faultbox/tavern-dice/internal/physics"
	"github.com/Faultbox/tavern-dice/pkg/math"
)

type stubBody struct {
	id       int
	mass     float32
	pos      math.Vec3
	rot      math.Quat
	vel, ang math.Vec3
	sleeping bool
	inWorld  bool
}

func (b *stubBody) ID() int                    { return b.id }
func (b *stubBody) Position() math.Vec3        { return b.pos }
func (b *stubBody) Orientation() math.Quat     { return b.rot }
func (b *stubBody) Velocity() math.Vec3        { return b.vel }
func (b *stubBody) AngularVelocity() math.Vec3 { return b.ang }
func (b *stubBody) Sleeping() bool             { return b.sleeping }
func (b *stubBody) WakeUp()                    { b.sleeping = false }

func (b *stubBody) SetPose(p math.Vec3, q math.Quat) {
	b.pos, b.rot = p, q
	b.sleeping = false
}

func (b *stubBody) ApplyImpulse(impulse, _ math.Vec3) {
	b.vel = b.vel.Add(impulse.Scale(1 / b.mass))
	b.sleeping = false
}

func (b *stubBody) SetAngularVelocity(w math.Vec3) {
	b.ang = w
	b.sleeping = false
}

func (b *stubBody) ResetMotion() {
	b.vel, b.ang = math.Vec3{}, math.Vec3{}
	b.sleeping = false
}

// rest freezes the body in place with the given orientation.
func (b *stubBody) rest(q math.Quat) {
	b.rot = q
	b.vel, b.ang = math.Vec3{}, math.Vec3{}
}

// stubWorld records calls and leaves bodies where they are.
type stubWorld struct {
	bodies    []*stubBody
	created   int
	removed   int
	steps     int
	stepErr   error
	fail      func(physics.BodyConfig) bool
	onContact func(physics.Contact)
}

func (w *stubWorld) NewBody(cfg physics.BodyConfig) (physics.Body, error) {
	if w.fail != nil && w.fail(cfg) {
		return nil, errors.New("stub: refused body")
	}
	if len(cfg.Hull) == 0 {
		return nil, errors.New("stub: empty hull")
	}
	w.created++
	b := &stubBody{id: w.created, mass: cfg.Mass, rot: math.QuatIdentity()}
	w.bodies = append(w.bodies, b)
	return b, nil
}

func (w *stubWorld) AddBody(b physics.Body)    { b.(*stubBody).inWorld = true }
func (w *stubWorld) RemoveBody(b physics.Body) { b.(*stubBody).inWorld = false; w.removed++ }

func (w *stubWorld) Step(_, _ float32, _ int) error {
	w.steps++
	return w.stepErr
}

func (w *stubWorld) OnContact(fn func(physics.Contact)) { w.onContact = fn }
