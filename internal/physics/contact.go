package physics

import (
	gomath "math"

	"github.com/Faultbox/tavern-dice/pkg/math"
)

const (
	solverIterations = 10

	// Points closer than contactMargin to a surface are already in contact
	// and may only approach it by the remaining gap.
	contactMargin = 0.01
	// Penetration up to penetrationSlop is left alone so resting contacts
	// stay detected from step to step.
	penetrationSlop = 0.005
	// Fraction of the remaining overlap between dice removed per step.
	pairCorrection = 0.8
)

// contact is one point constraint between a body and static geometry
// (b == nil) or between two bodies. n points from b towards a.
type contact struct {
	a, b     *rigidBody
	ra, rb   math.Vec3
	n        math.Vec3
	t1, t2   math.Vec3
	friction float32
	target   float32 // desired normal separation speed

	kn, kt1, kt2 float32
	jn, jt1, jt2 float32 // accumulated impulses
}

// solverInverse returns the inverse mass and inertia the solver uses.
// Sleeping bodies do not move.
func solverInverse(b *rigidBody) (float32, float32) {
	if b == nil || b.sleeping {
		return 0, 0
	}
	return b.invMass, b.invInertia
}

func newContact(a, b *rigidBody, ra, rb, n math.Vec3, gap, h float32, m Material, restingSpeed float32) *contact {
	c := &contact{a: a, b: b, ra: ra, rb: rb, n: n, friction: m.Friction}
	c.t1, c.t2 = tangents(n)
	c.kn = c.mass(n)
	c.kt1 = c.mass(c.t1)
	c.kt2 = c.mass(c.t2)

	vn := c.velocity().Dot(n)
	switch {
	case gap > 0:
		c.target = -gap / h
	case -vn > restingSpeed:
		c.target = -m.Restitution * vn
	}
	return c
}

// mass returns the effective inverse mass along direction d.
func (c *contact) mass(d math.Vec3) float32 {
	ima, iia := solverInverse(c.a)
	imb, iib := solverInverse(c.b)
	rna := c.ra.Cross(d)
	k := ima + iia*rna.Dot(rna)
	if c.b != nil {
		rnb := c.rb.Cross(d)
		k += imb + iib*rnb.Dot(rnb)
	}
	return k
}

// velocity returns the velocity of a's contact point relative to b's.
func (c *contact) velocity() math.Vec3 {
	v := c.a.vel.Add(c.a.ang.Cross(c.ra))
	if c.b != nil {
		v = v.Sub(c.b.vel.Add(c.b.ang.Cross(c.rb)))
	}
	return v
}

func (c *contact) apply(p math.Vec3) {
	if !c.a.sleeping {
		c.a.applyImpulse(p, c.ra)
	}
	if c.b != nil && !c.b.sleeping {
		c.b.applyImpulse(p.Scale(-1), c.rb)
	}
}

// solve runs one sequential-impulse pass: friction bounded by the current
// normal impulse, then the non-negative normal impulse.
func (c *contact) solve() {
	if c.kn <= 0 {
		return
	}
	if c.friction > 0 {
		limit := c.friction * c.jn
		c.jt1 = c.solveTangent(c.t1, c.kt1, c.jt1, limit)
		c.jt2 = c.solveTangent(c.t2, c.kt2, c.jt2, limit)
	}

	vn := c.velocity().Dot(c.n)
	jn := max(c.jn+(c.target-vn)/c.kn, 0)
	c.apply(c.n.Scale(jn - c.jn))
	c.jn = jn
}

func (c *contact) solveTangent(t math.Vec3, k, acc, limit float32) float32 {
	if k <= 0 {
		return acc
	}
	vt := c.velocity().Dot(t)
	j := min(max(acc-vt/k, -limit), limit)
	c.apply(t.Scale(j - acc))
	return j
}

// tangents returns two unit vectors orthogonal to n and to each other.
func tangents(n math.Vec3) (math.Vec3, math.Vec3) {
	ref := math.Vec3{X: 1}
	if gomath.Abs(float64(n.X)) > 0.9 {
		ref = math.Vec3{Z: 1}
	}
	t1 := n.Cross(ref).Normalize()
	return t1, n.Cross(t1)
}
