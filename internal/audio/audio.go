// Package audio plays synthesized feedback for dice rolls.
package audio

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"

	"github.com/Faultbox/tavern-dice/internal/roll"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

const (
	// HitInterval is the minimum time between two collision sounds.
	HitInterval = 40 * time.Millisecond
	// HitSpeed is the impact speed that plays a collision at full intensity.
	HitSpeed = 15
	// MinHitIntensity is the intensity at or below which collisions are silent.
	MinHitIntensity = 0.05
)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// dbBase makes effects.Volume interpret Volume in decibels.
var dbBase = math.Pow(10, 1.0/20)

// Manager handles sound effects for the dice tray.
type Manager struct {
	mu sync.RWMutex

	// State
	initialized bool
	sampleRate  beep.SampleRate
	muted       bool

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64

	// SFX mixer for concurrent sound effects
	sfxMixer *beep.Mixer

	log     *zap.Logger
	rng     *rand.Rand
	now     func() time.Time
	lastHit time.Time
	output  func(beep.Streamer)
}

// New creates a new audio manager. A nil log discards messages.
func New(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		log:          log,
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		sfxMixer:     &beep.Mixer{},
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:          time.Now,
	}
	m.output = m.mix
	return m
}

// Init initializes the audio system.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	// Start SFX mixer
	speaker.Play(m.sfxMixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the SFX volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// SetMuted silences every sound while set.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the SFX volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// Muted reports whether sound is off.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// HandleEvent plays the sound for a roll event. It is silent when muted or
// not initialized, so it can be subscribed unconditionally; sounds that
// cannot play are logged at debug level.
func (m *Manager) HandleEvent(e roll.Event) {
	if m.Muted() {
		return
	}
	var err error
	switch e.Type {
	case roll.EventRollStarted:
		err = m.PlayRoll()
	case roll.EventCollision:
		err = m.collide(e.Impact)
	case roll.EventRollFinished:
		err = m.PlayChime()
	}
	if err != nil {
		m.log.Debug("sound skipped", zap.Stringer("event", e.Type), zap.Error(err))
	}
}

// collide plays a hit scaled by impact speed, at most once per HitInterval.
// The interval restarts even when the hit is too soft to hear.
func (m *Manager) collide(impact float32) error {
	m.mu.Lock()
	now := m.now()
	if !m.lastHit.IsZero() && now.Sub(m.lastHit) < HitInterval {
		m.mu.Unlock()
		return nil
	}
	m.lastHit = now
	m.mu.Unlock()

	intensity := min(1, float64(impact)/HitSpeed)
	if intensity <= MinHitIntensity {
		return nil
	}
	return m.PlayHit(intensity)
}

// PlayHit plays a die collision with intensity in (0, 1].
func (m *Manager) PlayHit(intensity float64) error {
	return m.play(func(sr beep.SampleRate, rng *rand.Rand) beep.Streamer {
		return hitSound(sr, clamp(intensity, 0, 1), rng)
	})
}

// PlayRoll plays the rumble of dice leaving the hand.
func (m *Manager) PlayRoll() error {
	return m.play(func(sr beep.SampleRate, rng *rand.Rand) beep.Streamer {
		return rollSound(sr, rng)
	})
}

// PlayChime plays the settle chime.
func (m *Manager) PlayChime() error {
	return m.play(func(sr beep.SampleRate, _ *rand.Rand) beep.Streamer {
		return chimeSound(sr)
	})
}

func (m *Manager) play(build func(beep.SampleRate, *rand.Rand) beep.Streamer) error {
	m.mu.Lock()
	initialized := m.initialized
	muted := m.muted
	sfxVol := m.masterVolume * m.sfxVolLevel
	var s beep.Streamer
	if initialized && !muted {
		s = build(m.sampleRate, m.rng)
	}
	output := m.output
	m.mu.Unlock()

	if !initialized {
		return ErrNotInitialized
	}
	if muted {
		return nil
	}

	// Apply volume
	output(&effects.Volume{
		Streamer: s,
		Base:     dbBase,
		Volume:   volumeToDb(sfxVol),
		Silent:   sfxVol <= 0,
	})
	return nil
}

// mix adds s to the SFX mixer (concurrent playback).
func (m *Manager) mix(s beep.Streamer) {
	speaker.Lock()
	m.sfxMixer.Add(s)
	speaker.Unlock()
}

// volumeToDb converts a 0-1 volume to decibel scale.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	// vol=1 -> 0dB, vol=0.5 -> -6dB, vol=0.25 -> -12dB
	return 20 * math.Log10(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
