// Package game wires the dice tray together and runs its tick loop.
package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/tavern-dice/internal/audio"
	"github.com/Faultbox/tavern-dice/internal/config"
	"github.com/Faultbox/tavern-dice/internal/dice"
	"github.com/Faultbox/tavern-dice/internal/logger"
	"github.com/Faultbox/tavern-dice/internal/physics"
	"github.com/Faultbox/tavern-dice/internal/roll"
)

// chimeTail keeps the process alive long enough for the settle chime.
const chimeTail = 500 * time.Millisecond

// Game is the headless dice tray.
type Game struct {
	config   *config.Config
	registry *dice.Registry
	world    *physics.RigidWorld
	engine   *roll.Engine
	audio    *audio.Manager
	loop     *Loop
	log      *zap.Logger
}

// New creates a tray from the loaded configuration.
func New(cfg *config.Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	g := &Game{
		config: cfg,
		log:    logger.Named("game"),
	}
	g.log.Info("initializing dice tray",
		zap.Int("max_dice", cfg.Dice.MaxDice),
		zap.Uint64("seed", cfg.Roll.Seed),
		zap.Bool("muted", cfg.Audio.Muted),
	)

	g.registry = dice.NewRegistry(logger.Named("dice"))
	if err := g.registry.Warm(); err != nil {
		// Unbound types still roll, read at random.
		g.log.Warn("some die types failed to bind", zap.Error(err))
	}

	g.world = physics.NewRigidWorld(cfg.World())

	var rng *rand.Rand
	if cfg.Roll.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Roll.Seed, cfg.Roll.Seed))
	}
	g.engine = roll.New(cfg.RollEngine(), g.world, g.registry, rng, logger.Named("roll"))
	g.engine.Subscribe(g.logEvent)

	g.audio = audio.New(logger.Named("audio"))
	g.audio.SetMasterVolume(float64(cfg.Audio.MasterVolume))
	g.audio.SetSFXVolume(float64(cfg.Audio.SFXVolume))
	g.audio.SetMuted(cfg.Audio.Muted)
	if !cfg.Audio.Muted {
		if err := g.audio.Init(); err != nil {
			g.log.Warn("audio disabled", zap.Error(err))
		}
	}
	g.engine.Subscribe(g.audio.HandleEvent)

	// Pace frames by the clock only when someone can hear them.
	realtime := g.audio.IsInitialized()
	g.loop = NewLoop(g.engine, cfg.Roll.FrameRate, cfg.Roll.MaxFrames, realtime, logger.Named("loop"))

	g.log.Info("dice tray initialized", zap.Bool("realtime", realtime))
	return g, nil
}

// Engine returns the roll engine.
func (g *Game) Engine() *roll.Engine {
	return g.engine
}

// Roll throws the dice in notation and runs until they settle.
func (g *Game) Roll(ctx context.Context, notation string) (roll.Result, error) {
	counts := dice.ParseNotation(notation)
	if counts.Total() == 0 {
		return roll.Result{}, fmt.Errorf("no dice in %q", notation)
	}

	var opts []roll.Option
	if g.config.Roll.Power >= 0 {
		opts = append(opts, roll.WithPower(g.config.Roll.Power))
	}
	if g.config.Roll.Spin >= 0 {
		opts = append(opts, roll.WithSpin(g.config.Roll.Spin))
	}

	if err := g.engine.StartRoll(counts, opts...); err != nil {
		return roll.Result{}, fmt.Errorf("start roll: %w", err)
	}
	if err := g.loop.Run(ctx); err != nil {
		g.engine.ClearBoard()
		return roll.Result{}, fmt.Errorf("run roll %s: %w", counts, err)
	}

	res, ok := g.engine.Result()
	if !ok {
		return roll.Result{}, fmt.Errorf("roll %s finished without a result", counts)
	}
	g.log.Debug("roll completed", zap.Int("frames", g.loop.Frames()))

	if g.audio.IsInitialized() {
		select {
		case <-ctx.Done():
		case <-time.After(chimeTail):
		}
	}
	return res, nil
}

// Close releases the audio device.
func (g *Game) Close() {
	g.log.Info("closing dice tray")
	g.engine.ClearBoard()
	g.audio.Close()
}

func (g *Game) logEvent(e roll.Event) {
	switch e.Type {
	case roll.EventWarning:
		g.log.Warn(e.Message, zap.Stringer("session", e.SessionID))
	case roll.EventSettling:
		g.log.Debug("dice settling", zap.Stringer("session", e.SessionID))
	}
}
