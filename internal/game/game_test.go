package game

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Faultbox/tavern-dice/internal/config"
	"github.com/Faultbox/tavern-dice/internal/dice"
)

type fakeTicker struct {
	settleAfter int
	ticks       int
	dts         []float32
}

func (f *fakeTicker) Tick(dt float32) {
	f.ticks++
	f.dts = append(f.dts, dt)
}

func (f *fakeTicker) Rolling() bool {
	return f.settleAfter < 0 || f.ticks < f.settleAfter
}

func TestLoopRunsUntilSettled(t *testing.T) {
	ft := &fakeTicker{settleAfter: 12}
	l := NewLoop(ft, 60, 100, false, nil)

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if l.Frames() != 12 {
		t.Errorf("frames = %d, want 12", l.Frames())
	}
	for _, dt := range ft.dts {
		if dt != float32((time.Second / 60).Seconds()) {
			t.Fatalf("dt = %v, want a fixed frame period", dt)
		}
	}
}

func TestLoopFrameBudget(t *testing.T) {
	ft := &fakeTicker{settleAfter: -1}
	l := NewLoop(ft, 60, 50, false, nil)

	err := l.Run(context.Background())
	if !errors.Is(err, ErrFrameBudget) {
		t.Fatalf("err = %v, want ErrFrameBudget", err)
	}
	if ft.ticks != 50 {
		t.Errorf("ticks = %d, want 50", ft.ticks)
	}
}

func TestLoopCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, realtime := range []bool{false, true} {
		ft := &fakeTicker{settleAfter: -1}
		err := NewLoop(ft, 60, 0, realtime, nil).Run(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("realtime=%v: err = %v, want context.Canceled", realtime, err)
		}
		if ft.ticks != 0 {
			t.Errorf("realtime=%v: ticked %d times after cancel", realtime, ft.ticks)
		}
	}
}

func TestLoopRealtimeMeasuresDelta(t *testing.T) {
	ft := &fakeTicker{settleAfter: 3}
	l := NewLoop(ft, 200, 0, true, nil)

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, dt := range ft.dts {
		if dt <= 0 {
			t.Errorf("dt = %v, want measured positive delta", dt)
		}
	}
}

func TestLoopNotRolling(t *testing.T) {
	ft := &fakeTicker{settleAfter: 0}
	if err := NewLoop(ft, 60, 10, false, nil).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if ft.ticks != 0 {
		t.Errorf("ticked %d times with nothing rolling", ft.ticks)
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Audio.Muted = true
	cfg.Roll.Seed = 7
	return cfg
}

func TestGameRoll(t *testing.T) {
	g, err := New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer g.Close()

	res, err := g.Roll(context.Background(), "1d6")
	if err != nil {
		t.Fatalf("Roll: %v", err)
	}
	if res.Count() != 1 || res.Total < 1 || res.Total > 6 {
		t.Errorf("result = %+v, want one d6", res)
	}
	if g.Engine().Rolling() {
		t.Error("engine still rolling after Roll returned")
	}
}

func TestGameRollSettlesAcrossSeeds(t *testing.T) {
	notations := []string{"1d4", "1d6", "2d6+1d20"}
	for _, notation := range notations {
		for seed := uint64(1); seed <= 10; seed++ {
			t.Run(fmt.Sprintf("%s/seed%d", notation, seed), func(t *testing.T) {
				cfg := testConfig()
				cfg.Roll.Seed = seed
				g, err := New(cfg)
				if err != nil {
					t.Fatalf("New: %v", err)
				}
				defer g.Close()

				res, err := g.Roll(context.Background(), notation)
				if err != nil {
					t.Fatalf("Roll: %v", err)
				}
				if want := dice.ParseNotation(notation).Total(); res.Count() != want {
					t.Errorf("result has %d dice, want %d", res.Count(), want)
				}
			})
		}
	}
}

func TestGameRollErrors(t *testing.T) {
	g, err := New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer g.Close()

	if _, err := g.Roll(context.Background(), "a handful"); err == nil {
		t.Error("expected error for notation without dice")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Roll(ctx, "2d8"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if g.Engine().Rolling() {
		t.Error("cancelled roll left dice on the board")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Physics.FixedStep = 0
	if _, err := New(cfg); err == nil {
		t.Error("expected error for invalid config")
	}
}
