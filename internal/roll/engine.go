// Package roll throws pooled dice into the physics world and turns their
// settled poses into a result.
package roll

import (
	"errors"
	"fmt"
	gomath "math"
	"math/rand/v2"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/tavern-dice/internal/dice"
	"github.com/Faultbox/tavern-dice/internal/physics"
	"github.com/Faultbox/tavern-dice/internal/settle"
	"github.com/Faultbox/tavern-dice/pkg/math"
)

// ErrRollInProgress is returned by StartRoll while dice are still rolling.
var ErrRollInProgress = errors.New("roll: roll in progress")

// Engine drives rolls. It is not safe for concurrent use; every method is
// expected to run on the tick goroutine.
type Engine struct {
	cfg      Config
	world    physics.World
	pool     *Pool
	detector *settle.Detector
	rng      *rand.Rand
	log      *zap.Logger
	bus      Bus

	session *Session
}

// New creates an engine. A nil rng is seeded from the runtime source; a nil
// logger disables logging.
func New(cfg Config, world physics.World, registry *dice.Registry, rng *rand.Rand, log *zap.Logger) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		cfg:      cfg,
		world:    world,
		pool:     NewPool(cfg, world, registry),
		detector: settle.New(cfg.SettleThreshold, cfg.SettleFrames),
		rng:      rng,
		log:      log,
	}
	world.OnContact(e.handleContact)
	return e
}

// Option adjusts a single roll.
type Option func(*launch)

type launch struct {
	power, spin       float32
	hasPower, hasSpin bool
}

// WithPower sets the throw strength in [0, 1].
func WithPower(p float32) Option {
	return func(l *launch) {
		l.power = clamp01(p)
		l.hasPower = true
	}
}

// WithSpin sets the throw spin in [0, 1].
func WithSpin(s float32) Option {
	return func(l *launch) {
		l.spin = clamp01(s)
		l.hasSpin = true
	}
}

// Subscribe registers an event listener.
func (e *Engine) Subscribe(l Listener) {
	e.bus.Subscribe(l)
}

// StartRoll clears the board and throws the requested dice. Omitted power
// and spin are drawn from [0.3, 1].
func (e *Engine) StartRoll(counts dice.Counts, opts ...Option) error {
	if e.Rolling() {
		return ErrRollInProgress
	}

	var l launch
	for _, opt := range opts {
		opt(&l)
	}
	if !l.hasPower {
		l.power = 0.3 + e.rng.Float32()*0.7
	}
	if !l.hasSpin {
		l.spin = 0.3 + e.rng.Float32()*0.7
	}

	e.reset()
	s := newSession(counts, l.power, l.spin)
	e.session = s

	plan := e.plan(counts)
	for i, t := range plan {
		d, err := e.pool.Acquire(t)
		if err != nil {
			e.log.Error("failed to create die", zap.Stringer("type", t), zap.Error(err))
			continue
		}
		e.throw(d, i, len(plan), l)
		e.detector.Track(d.ID)
		s.Dice = append(s.Dice, d)
	}

	if len(s.Dice) == 0 {
		s.finish(newResult(nil))
		return nil
	}

	s.rolling = true
	e.log.Info("roll started",
		zap.Stringer("session", s.ID),
		zap.Stringer("dice", counts),
		zap.Int("count", len(s.Dice)),
		zap.Float32("power", l.power),
		zap.Float32("spin", l.spin),
	)
	e.bus.Publish(Event{Type: EventRollStarted, SessionID: s.ID, Dice: len(s.Dice)})
	return nil
}

// plan expands counts into one entry per die in canonical type order,
// truncating at MaxDice.
func (e *Engine) plan(counts dice.Counts) []dice.Type {
	var plan []dice.Type
	for _, t := range dice.AllTypes {
		n := counts[t]
		if n <= 0 {
			continue
		}
		if remaining := e.cfg.MaxDice - len(plan); n > remaining {
			msg := fmt.Sprintf("maximum %d dice allowed, %d requested", e.cfg.MaxDice, counts.Total())
			e.log.Warn("dice request truncated",
				zap.Int("max", e.cfg.MaxDice),
				zap.Int("requested", counts.Total()),
				zap.Stringer("truncated_type", t),
				zap.Int("kept", remaining),
			)
			e.bus.Publish(Event{Type: EventWarning, SessionID: e.session.ID, Message: msg})
			for range remaining {
				plan = append(plan, t)
			}
			break
		}
		for range n {
			plan = append(plan, t)
		}
	}
	return plan
}

// throw places the i-th of total dice on the launch disk and imparts the
// initial impulse and spin.
func (e *Engine) throw(d *Die, i, total int, l launch) {
	cfg := e.cfg
	u := e.rng.Float32

	angle := float64(i) / float64(total) * 2 * gomath.Pi
	radius := cfg.Spread * float32(gomath.Sqrt(float64(u())))
	pos := math.Vec3{
		X: float32(gomath.Cos(angle)) * radius,
		Y: cfg.InitialHeight + u()*cfg.HeightJitter,
		Z: float32(gomath.Sin(angle)) * radius,
	}
	const turn = 2 * gomath.Pi
	rot := math.QuatFromEuler(u()*turn, u()*turn, u()*turn)
	d.Body.SetPose(pos, rot)

	f := lerp(cfg.MinForce, cfg.MaxForce, l.power) + u()*cfg.ForceJitter
	impulse := math.Vec3{
		X: (u() - 0.5) * f * 0.6,
		Y: f * 0.4,
		Z: (u() - 0.5) * f * 0.6,
	}
	offset := math.Vec3{
		X: (u() - 0.5) * cfg.ImpulseOffset,
		Y: (u() - 0.5) * cfg.ImpulseOffset,
		Z: (u() - 0.5) * cfg.ImpulseOffset,
	}
	d.Body.ApplyImpulse(impulse, offset)

	torque := lerp(cfg.MinTorque, cfg.MaxTorque, l.spin) + u()*cfg.TorqueJitter
	d.Body.SetAngularVelocity(math.Vec3{
		X: (u() - 0.5) * torque,
		Y: (u() - 0.5) * torque,
		Z: (u() - 0.5) * torque,
	})
	d.syncTransform()
}

// Tick advances the roll by one frame of dt seconds.
func (e *Engine) Tick(dt float32) {
	dt = e.clampDelta(dt)
	if err := e.world.Step(e.cfg.FixedStep, dt, e.cfg.MaxSubSteps); err != nil {
		e.log.Error("physics step failed", zap.Error(err))
		return
	}

	if s := e.session; s != nil && s.rolling {
		e.detector.BeginPass()
		for _, d := range s.Dice {
			e.detector.Observe(d.ID, d.Body)
		}

		if !s.settling && e.detector.PeakEnergy() < e.cfg.SettlingEnergy {
			s.settling = true
			e.bus.Publish(Event{Type: EventSettling, SessionID: s.ID})
		}
		if e.detector.AllSettled() {
			e.finalize()
		}
	}

	for _, d := range e.pool.Active() {
		d.syncTransform()
	}
}

func (e *Engine) finalize() {
	s := e.session
	if s == nil || s.finalized {
		return
	}

	values := make(map[dice.Type][]int)
	for _, d := range s.Dice {
		v := dice.ReadOrRandom(d.Table, d.Type, d.Pose(), e.rng)
		values[d.Type] = append(values[d.Type], v)
	}
	s.finish(newResult(values))

	result := s.result
	e.log.Info("roll finished",
		zap.Stringer("session", s.ID),
		zap.Int("total", result.Total),
		zap.String("dice", result.String()),
	)
	e.bus.Publish(Event{Type: EventRollFinished, SessionID: s.ID, Result: &result})
}

// ClearBoard removes every die and abandons an unfinished roll.
func (e *Engine) ClearBoard() {
	id := e.sessionID()
	e.reset()
	e.bus.Publish(Event{Type: EventBoardCleared, SessionID: id})
}

func (e *Engine) reset() {
	e.pool.ReleaseAll()
	e.detector.Reset()
	e.session = nil
}

// Result returns the last finalized result, if any.
func (e *Engine) Result() (Result, bool) {
	if e.session == nil {
		return Result{}, false
	}
	return e.session.Result()
}

// Rolling reports whether a roll is waiting to settle.
func (e *Engine) Rolling() bool {
	return e.session != nil && e.session.rolling
}

// Dice returns the dice on the board.
func (e *Engine) Dice() []*Die {
	if e.session == nil {
		return nil
	}
	return e.session.Dice
}

// Session returns the current session, or nil after a clear.
func (e *Engine) Session() *Session {
	return e.session
}

func (e *Engine) sessionID() uuid.UUID {
	if e.session == nil {
		return uuid.Nil
	}
	return e.session.ID
}

// handleContact forwards impacts of the roll in flight; dice nudged after
// the result is in stay quiet.
func (e *Engine) handleContact(c physics.Contact) {
	if e.session == nil || !e.session.rolling {
		return
	}
	e.bus.Publish(Event{Type: EventCollision, SessionID: e.session.ID, Impact: c.ImpactSpeed})
}

// clampDelta replaces unusable frame times with one fixed step and caps long
// gaps at MaxFrameTime.
func (e *Engine) clampDelta(dt float32) float32 {
	if gomath.IsNaN(float64(dt)) || gomath.IsInf(float64(dt), 0) || dt <= 0 {
		return e.cfg.FixedStep
	}
	return min(dt, e.cfg.MaxFrameTime)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func clamp01(v float32) float32 {
	if gomath.IsNaN(float64(v)) {
		return 0
	}
	return max(0, min(1, v))
}
