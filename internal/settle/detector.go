// Package settle decides when rolling bodies have come to rest.
package settle

import "github.com/Faultbox/tavern-dice/pkg/math"

// Body is the motion state the detector samples each tick.
type Body interface {
	Velocity() math.Vec3
	AngularVelocity() math.Vec3
	Sleeping() bool
	WakeUp()
}

// Detector debounces rest detection. Velocity alone flickers near rest, so
// a body counts as settled only after settleFrames consecutive quiet ticks.
type Detector struct {
	threshold    float32 // speed below which a body is quiet
	settleFrames int

	keys  []int       // tracked keys in registration order
	quiet map[int]int // consecutive quiet ticks per key
	peak  float32
}

// New creates a detector. threshold is a speed (units/s and rad/s);
// settleFrames is the number of consecutive quiet ticks required.
func New(threshold float32, settleFrames int) *Detector {
	if settleFrames < 1 {
		settleFrames = 1
	}
	return &Detector{
		threshold:    threshold,
		settleFrames: settleFrames,
		quiet:        make(map[int]int),
	}
}

// Track starts watching key with a zero quiet count. Tracking an existing
// key resets its count.
func (d *Detector) Track(key int) {
	if _, ok := d.quiet[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.quiet[key] = 0
}

// Forget stops watching key.
func (d *Detector) Forget(key int) {
	if _, ok := d.quiet[key]; !ok {
		return
	}
	delete(d.quiet, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Reset forgets every key.
func (d *Detector) Reset() {
	d.keys = d.keys[:0]
	clear(d.quiet)
	d.peak = 0
}

// BeginPass clears the peak energy gathered by the previous tick.
func (d *Detector) BeginPass() {
	d.peak = 0
}

// Observe samples one body for this tick and reports whether it is moving.
// A moving body has its counter reset and is forced awake. Untracked keys
// are ignored.
func (d *Detector) Observe(key int, b Body) (moving bool) {
	if _, ok := d.quiet[key]; !ok {
		return false
	}

	v2 := b.Velocity().LengthSquared()
	w2 := b.AngularVelocity().LengthSquared()
	if e := v2 + w2; e > d.peak {
		d.peak = e
	}

	limit := d.threshold * d.threshold
	moving = !b.Sleeping() && (v2 > limit || w2 > limit)
	if moving {
		d.quiet[key] = 0
		b.WakeUp()
		return true
	}
	d.quiet[key]++
	return false
}

// Quiet returns the consecutive quiet ticks recorded for key.
func (d *Detector) Quiet(key int) int {
	return d.quiet[key]
}

// Settled reports whether key has been quiet long enough.
func (d *Detector) Settled(key int) bool {
	n, ok := d.quiet[key]
	return ok && n >= d.settleFrames
}

// AllSettled reports whether at least one key is tracked and every tracked
// key is settled.
func (d *Detector) AllSettled() bool {
	if len(d.keys) == 0 {
		return false
	}
	for _, k := range d.keys {
		if d.quiet[k] < d.settleFrames {
			return false
		}
	}
	return true
}

// Len returns the number of tracked keys.
func (d *Detector) Len() int {
	return len(d.keys)
}

// PeakEnergy returns the largest |v|²+|ω|² seen since BeginPass.
func (d *Detector) PeakEnergy() float32 {
	return d.peak
}
