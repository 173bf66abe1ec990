package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep/v2"
)

// synth is a fixed-length mono generator rendered to both channels.
type synth struct {
	pos    int
	length int
	sample func(i int) float64
}

func (s *synth) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.length {
		return 0, false
	}
	for n < len(samples) && s.pos < s.length {
		v := s.sample(s.pos)
		samples[n][0] = v
		samples[n][1] = v
		n++
		s.pos++
	}
	return n, true
}

func (s *synth) Err() error { return nil }

// Len returns the total number of samples.
func (s *synth) Len() int { return s.length }

// lowPass is a one-pole filter.
type lowPass struct {
	prev float64
}

func (f *lowPass) next(x, cutoff float64, sr beep.SampleRate) float64 {
	dt := 1 / float64(sr)
	rc := 1 / (2 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	f.prev += alpha * (x - f.prev)
	return f.prev
}

// hitSound is a short filtered noise click. Harder hits are longer, louder
// and brighter.
func hitSound(sr beep.SampleRate, intensity float64, rng *rand.Rand) *synth {
	dur := time.Duration((0.06 + 0.04*intensity) * float64(time.Second))
	n := sr.N(dur)
	gain := 0.15 * intensity
	center := 800 + 1200*intensity

	var low, band lowPass
	return &synth{length: n, sample: func(i int) float64 {
		env := math.Pow(1-float64(i)/float64(n), 3)
		x := (rng.Float64()*2 - 1) * env
		// Band-pass as the difference of two low-passes around center.
		y := low.next(x, center*1.5, sr) - band.next(x, center/1.5, sr)
		return y * gain
	}}
}

// rollSound is a 0.8s noise rumble whose cutoff sweeps from 2 kHz to 400 Hz.
func rollSound(sr beep.SampleRate, rng *rand.Rand) *synth {
	n := sr.N(800 * time.Millisecond)
	var lp lowPass
	return &synth{length: n, sample: func(i int) float64 {
		t := float64(i) / float64(n)
		env := math.Pow(1-t, 2)
		cutoff := 2000 * math.Pow(400.0/2000.0, t)
		x := (rng.Float64()*2 - 1) * env
		return lp.next(x, cutoff, sr) * 0.12
	}}
}

var chimeNotes = []float64{523, 659, 784}

const (
	chimeSpacing = 80 * time.Millisecond
	chimeNote    = 300 * time.Millisecond
	chimeAttack  = 20 * time.Millisecond
	chimePeak    = 0.08
)

// chimeSound is three rising sine notes, each starting chimeSpacing after
// the previous.
func chimeSound(sr beep.SampleRate) *synth {
	spacing := sr.N(chimeSpacing)
	note := sr.N(chimeNote)
	attack := sr.N(chimeAttack)
	n := spacing*(len(chimeNotes)-1) + note

	return &synth{length: n, sample: func(i int) float64 {
		var sum float64
		for k, freq := range chimeNotes {
			j := i - k*spacing
			if j < 0 || j >= note {
				continue
			}
			sum += noteEnvelope(j, attack, note) * math.Sin(2*math.Pi*freq*float64(j)/float64(sr))
		}
		return sum
	}}
}

// noteEnvelope ramps linearly to chimePeak over attack samples, then decays
// exponentially to 0.001 at the end of the note.
func noteEnvelope(j, attack, note int) float64 {
	if j < attack {
		return chimePeak * float64(j) / float64(attack)
	}
	t := float64(j-attack) / float64(note-attack)
	return chimePeak * math.Pow(0.001/chimePeak, t)
}
