package settle

import (
	"testing"

	"github.com/Faultbox/tavern-dice/pkg/math"
)

type stubBody struct {
	vel, ang math.Vec3
	sleeping bool
	wakes    int
}

func (b *stubBody) Velocity() math.Vec3        { return b.vel }
func (b *stubBody) AngularVelocity() math.Vec3 { return b.ang }
func (b *stubBody) Sleeping() bool             { return b.sleeping }
func (b *stubBody) WakeUp()                    { b.wakes++; b.sleeping = false }

func TestNeverSettledWhenEmpty(t *testing.T) {
	d := New(0.15, 3)
	if d.AllSettled() {
		t.Error("empty detector must not report settled")
	}

	d.Track(1)
	d.Forget(1)
	if d.AllSettled() {
		t.Error("detector with every key forgotten must not report settled")
	}
}

func TestRequiresConsecutiveQuietTicks(t *testing.T) {
	const frames = 30
	d := New(0.15, frames)
	b := &stubBody{}
	d.Track(7)

	for i := 1; i < frames; i++ {
		d.Observe(7, b)
		if d.AllSettled() {
			t.Fatalf("settled after %d quiet ticks, want %d", i, frames)
		}
	}
	d.Observe(7, b)
	if !d.AllSettled() || !d.Settled(7) {
		t.Fatalf("not settled after %d quiet ticks", frames)
	}
}

func TestMovingTickResetsCounter(t *testing.T) {
	d := New(0.15, 5)
	b := &stubBody{}
	d.Track(1)

	for i := 0; i < 4; i++ {
		d.Observe(1, b)
	}
	if d.Quiet(1) != 4 {
		t.Fatalf("quiet = %d, want 4", d.Quiet(1))
	}

	b.ang = math.Vec3{Y: 0.2}
	if !d.Observe(1, b) {
		t.Error("angular speed above threshold should count as moving")
	}
	if d.Quiet(1) != 0 {
		t.Errorf("quiet = %d after moving tick, want 0", d.Quiet(1))
	}
	if b.wakes != 1 {
		t.Errorf("moving body woken %d times, want 1", b.wakes)
	}
}

func TestThresholdIsStrict(t *testing.T) {
	tests := []struct {
		name   string
		body   stubBody
		moving bool
	}{
		{"at rest", stubBody{}, false},
		{"below", stubBody{vel: math.Vec3{X: 0.1}}, false},
		{"linear above", stubBody{vel: math.Vec3{X: 0.1, Y: 0.12}}, true},
		{"angular above", stubBody{ang: math.Vec3{Z: -0.3}}, true},
		{"fast but sleeping", stubBody{vel: math.Vec3{Y: 5}, sleeping: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(0.15, 1)
			d.Track(0)
			b := tt.body
			if got := d.Observe(0, &b); got != tt.moving {
				t.Errorf("Observe = %v, want %v", got, tt.moving)
			}
		})
	}
}

func TestAllSettledNeedsEveryBody(t *testing.T) {
	d := New(0.15, 2)
	still := &stubBody{}
	busy := &stubBody{vel: math.Vec3{X: 3}}
	d.Track(1)
	d.Track(2)

	for i := 0; i < 5; i++ {
		d.BeginPass()
		d.Observe(1, still)
		d.Observe(2, busy)
	}
	if d.AllSettled() {
		t.Error("one moving body must block global settlement")
	}
	if d.PeakEnergy() != 9 {
		t.Errorf("peak energy = %v, want 9", d.PeakEnergy())
	}

	busy.vel = math.Vec3{}
	d.BeginPass()
	d.Observe(1, still)
	d.Observe(2, busy)
	if d.AllSettled() {
		t.Error("second body has only one quiet tick")
	}
	d.Observe(2, busy)
	if !d.AllSettled() {
		t.Error("both bodies quiet for two ticks should settle")
	}
}

func TestUntrackedAndReset(t *testing.T) {
	d := New(0.15, 1)
	if d.Observe(3, &stubBody{vel: math.Vec3{X: 10}}) {
		t.Error("untracked key should be ignored")
	}

	d.Track(1)
	d.Track(2)
	d.Reset()
	if d.Len() != 0 || d.AllSettled() {
		t.Errorf("after Reset len = %d", d.Len())
	}
}
