package physics

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/tavern-dice/pkg/math"
)

// Material is the contact response of a surface pair.
type Material struct {
	Friction    float32 `yaml:"friction"`
	Restitution float32 `yaml:"restitution"`
}

// Config holds world parameters.
type Config struct {
	Gravity       float32  // Y acceleration, negative is down
	WallDistanceX float32  // walls at x = ±WallDistanceX
	WallDistanceZ float32  // walls at z = ±WallDistanceZ
	RestingSpeed  float32  // approach speed below which contacts do not bounce
	Floor         Material // die against floor
	Wall          Material // die against wall
	Dice          Material // die against die
}

// DefaultConfig returns a tray tuned for tabletop dice.
func DefaultConfig() Config {
	return Config{
		Gravity:       -35,
		WallDistanceX: 12,
		WallDistanceZ: 12,
		RestingSpeed:  1,
		Floor:         Material{Friction: 0.8, Restitution: 0.1},
		Wall:          Material{Friction: 0.3, Restitution: 0.4},
		Dice:          Material{Friction: 0.5, Restitution: 0.15},
	}
}

type plane struct {
	normal   math.Vec3 // points into the tray
	offset   float32   // normal·p == offset on the surface
	material Material
}

// RigidWorld is a small impulse solver: dice are convex hulls against a
// floor and four walls, and bounding spheres against each other. Every
// hull vertex touching a surface is its own contact, and all contacts of a
// step are solved together with sequential impulses.
type RigidWorld struct {
	cfg         Config
	planes      []plane
	bodies      []*rigidBody
	nextID      int
	accumulator float32
	listeners   []func(Contact)
}

// NewRigidWorld creates an empty world.
func NewRigidWorld(cfg Config) *RigidWorld {
	w := &RigidWorld{cfg: cfg}
	wx, wz := cfg.WallDistanceX, cfg.WallDistanceZ
	w.planes = []plane{
		{normal: math.Vec3{Y: 1}, offset: 0, material: cfg.Floor},
		{normal: math.Vec3{X: -1}, offset: -wx, material: cfg.Wall},
		{normal: math.Vec3{X: 1}, offset: -wx, material: cfg.Wall},
		{normal: math.Vec3{Z: -1}, offset: -wz, material: cfg.Wall},
		{normal: math.Vec3{Z: 1}, offset: -wz, material: cfg.Wall},
	}
	return w
}

// NewBody creates a body owned by this world. It is not simulated until
// added.
func (w *RigidWorld) NewBody(cfg BodyConfig) (Body, error) {
	if cfg.Mass <= 0 {
		return nil, fmt.Errorf("new body: mass must be positive, got %v", cfg.Mass)
	}
	if len(cfg.Hull) == 0 {
		return nil, errors.New("new body: empty hull")
	}
	if cfg.Radius <= 0 {
		for _, v := range cfg.Hull {
			cfg.Radius = max(cfg.Radius, v.Length())
		}
	}

	w.nextID++
	inertia := 0.4 * cfg.Mass * cfg.Radius * cfg.Radius
	return &rigidBody{
		world:      w,
		id:         w.nextID,
		cfg:        cfg,
		rot:        math.QuatIdentity(),
		invMass:    1 / cfg.Mass,
		invInertia: 1 / inertia,
	}, nil
}

// AddBody starts simulating b. Bodies from other worlds are ignored.
func (w *RigidWorld) AddBody(b Body) {
	rb, ok := b.(*rigidBody)
	if !ok || rb.world != w || rb.inWorld {
		return
	}
	rb.inWorld = true
	w.bodies = append(w.bodies, rb)
}

// RemoveBody stops simulating b.
func (w *RigidWorld) RemoveBody(b Body) {
	rb, ok := b.(*rigidBody)
	if !ok || !rb.inWorld {
		return
	}
	rb.inWorld = false
	for i, other := range w.bodies {
		if other == rb {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
}

// OnContact registers a contact listener.
func (w *RigidWorld) OnContact(fn func(Contact)) {
	w.listeners = append(w.listeners, fn)
}

// Step advances the simulation. Time that does not fit in maxSubSteps
// increments is dropped.
func (w *RigidWorld) Step(fixedStep, dt float32, maxSubSteps int) error {
	if fixedStep <= 0 {
		return fmt.Errorf("step: fixed step must be positive, got %v", fixedStep)
	}
	w.accumulator += dt

	var errs []error
	for n := 0; w.accumulator >= fixedStep && n < maxSubSteps; n++ {
		if err := w.internalStep(fixedStep); err != nil {
			errs = append(errs, err)
		}
		w.accumulator -= fixedStep
	}
	if w.accumulator >= fixedStep {
		w.accumulator = 0
	}
	return errors.Join(errs...)
}

func (w *RigidWorld) internalStep(h float32) error {
	gravity := math.Vec3{Y: w.cfg.Gravity}

	for _, b := range w.bodies {
		if b.sleeping {
			continue
		}
		b.prevPos, b.prevRot = b.pos, b.rot

		b.vel = b.vel.Add(gravity.Scale(h))
		b.vel = b.vel.Scale(damping(b.cfg.LinearDamping, h))
		b.ang = b.ang.Scale(damping(b.cfg.AngularDamping, h))
	}

	contacts := w.contacts(h)
	for range solverIterations {
		for _, c := range contacts {
			c.solve()
		}
	}

	for _, b := range w.bodies {
		if b.sleeping {
			continue
		}
		b.pos = b.pos.Add(b.vel.Scale(h))
		b.rot = b.rot.Integrate(b.ang, h)
		for _, p := range w.planes {
			separatePlane(b, p)
		}
	}
	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			separatePair(w.bodies[i], w.bodies[j])
		}
	}

	var errs []error
	for _, b := range w.bodies {
		if b.sleeping {
			continue
		}
		if !b.pos.IsFinite() || !b.rot.IsFinite() || !b.vel.IsFinite() || !b.ang.IsFinite() {
			b.pos, b.rot = b.prevPos, b.prevRot
			b.vel, b.ang = math.Vec3{}, math.Vec3{}
			b.sleeping = true
			errs = append(errs, fmt.Errorf("body %d: %w", b.id, ErrUnstable))
			continue
		}
		b.updateSleep(h)
	}
	return errors.Join(errs...)
}

// contacts collects this step's constraints and reports impacts faster
// than RestingSpeed, at most one per body and surface.
func (w *RigidWorld) contacts(h float32) []*contact {
	w.wakeOnImpact()

	var out []*contact
	for _, b := range w.bodies {
		if b.sleeping {
			continue
		}
		for _, p := range w.planes {
			var impact float32
			for _, v := range b.cfg.Hull {
				r := b.rot.Rotate(v)
				gap := p.normal.Dot(r.Add(b.pos)) - p.offset
				if !(gap < contactMargin) {
					continue
				}
				c := newContact(b, nil, r, math.Vec3{}, p.normal, gap, h, p.material, w.cfg.RestingSpeed)
				impact = max(impact, -c.velocity().Dot(p.normal))
				out = append(out, c)
			}
			if impact > w.cfg.RestingSpeed {
				w.emit(Contact{BodyA: b.id, BodyB: -1, ImpactSpeed: impact})
			}
		}
	}

	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			a, b := w.bodies[i], w.bodies[j]
			if a.sleeping && b.sleeping {
				continue
			}
			if n, dist, ok := touching(a, b); ok {
				reach := a.cfg.Radius + b.cfg.Radius
				out = append(out, newContact(a, b, n.Scale(-a.cfg.Radius), n.Scale(b.cfg.Radius), n, dist-reach, h, w.cfg.Dice, w.cfg.RestingSpeed))
			}
		}
	}
	return out
}

// wakeOnImpact reports dice hitting each other. A sleeping die is woken
// only by an impact faster than RestingSpeed and otherwise stays put.
func (w *RigidWorld) wakeOnImpact() {
	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			a, b := w.bodies[i], w.bodies[j]
			if a.sleeping && b.sleeping {
				continue
			}
			n, _, ok := touching(a, b)
			if !ok {
				continue
			}
			if impact := -a.vel.Sub(b.vel).Dot(n); impact > w.cfg.RestingSpeed {
				a.WakeUp()
				b.WakeUp()
				w.emit(Contact{BodyA: a.id, BodyB: b.id, ImpactSpeed: impact})
			}
		}
	}
}

// touching reports whether the bounding spheres of a and b are within
// contactMargin, with the normal pointing from b to a.
func touching(a, b *rigidBody) (math.Vec3, float32, bool) {
	reach := a.cfg.Radius + b.cfg.Radius + contactMargin
	delta := a.pos.Sub(b.pos)
	dist2 := delta.LengthSquared()
	if !(dist2 < reach*reach) {
		return math.Vec3{}, 0, false
	}
	n := math.Up
	dist := float32(gomath.Sqrt(float64(dist2)))
	if dist > 1e-6 {
		n = delta.Scale(1 / dist)
	}
	return n, dist, true
}

// separatePlane moves b out of p until at most penetrationSlop of its hull
// remains behind it.
func separatePlane(b *rigidBody, p plane) {
	var depth float32
	for _, v := range b.cfg.Hull {
		d := p.offset - p.normal.Dot(b.rot.Rotate(v).Add(b.pos))
		depth = max(depth, d)
	}
	if depth > penetrationSlop {
		b.pos = b.pos.Add(p.normal.Scale(depth - penetrationSlop))
	}
}

// separatePair pushes two overlapping dice apart. Sleeping dice do not
// move.
func separatePair(a, b *rigidBody) {
	ima, _ := solverInverse(a)
	imb, _ := solverInverse(b)
	total := ima + imb
	if total == 0 {
		return
	}
	delta := a.pos.Sub(b.pos)
	dist := delta.Length()
	pen := a.cfg.Radius + b.cfg.Radius - dist - penetrationSlop
	if !(pen > 0) || dist < 1e-6 {
		return
	}
	n := delta.Scale(1 / dist)
	shift := pen * pairCorrection / total
	a.pos = a.pos.Add(n.Scale(shift * ima))
	b.pos = b.pos.Sub(n.Scale(shift * imb))
}

func (w *RigidWorld) emit(c Contact) {
	for _, fn := range w.listeners {
		fn(c)
	}
}

// damping returns the velocity factor for losing fraction d per second
// over h seconds.
func damping(d, h float32) float32 {
	return float32(gomath.Pow(float64(1-d), float64(h)))
}
