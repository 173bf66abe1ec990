package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrFrameBudget is returned when a roll is still moving after the maximum
// number of frames.
var ErrFrameBudget = errors.New("game: roll did not settle within the frame budget")

// Ticker is advanced once per frame until it stops rolling.
type Ticker interface {
	Tick(dt float32)
	Rolling() bool
}

// Loop drives a Ticker at a fixed frame rate. In realtime mode frames are
// paced by the wall clock and dt is measured; otherwise frames run back to
// back with a constant dt.
type Loop struct {
	target    Ticker
	period    time.Duration
	maxFrames int
	realtime  bool
	log       *zap.Logger

	frames int
}

// NewLoop creates a loop. maxFrames <= 0 means no limit.
func NewLoop(target Ticker, frameRate, maxFrames int, realtime bool, log *zap.Logger) *Loop {
	if frameRate <= 0 {
		frameRate = 60
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{
		target:    target,
		period:    time.Second / time.Duration(frameRate),
		maxFrames: maxFrames,
		realtime:  realtime,
		log:       log,
	}
}

// Run ticks until the target stops rolling, ctx is done or the frame budget
// runs out.
func (l *Loop) Run(ctx context.Context) error {
	l.frames = 0
	dt := float32(l.period.Seconds())

	var ticker *time.Ticker
	if l.realtime {
		ticker = time.NewTicker(l.period)
		defer ticker.Stop()
	}
	lastTime := time.Now()
	fpsTimer := lastTime
	fpsFrames := 0

	for l.target.Rolling() {
		if l.maxFrames > 0 && l.frames >= l.maxFrames {
			return fmt.Errorf("%w (%d frames)", ErrFrameBudget, l.frames)
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case now := <-ticker.C:
				dt = float32(now.Sub(lastTime).Seconds())
				lastTime = now
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		l.target.Tick(dt)
		l.frames++

		fpsFrames++
		if l.realtime && time.Since(fpsTimer) >= time.Second {
			l.log.Debug("fps", zap.Int("count", fpsFrames), zap.Float32("dt", dt))
			fpsFrames = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

// Frames returns how many frames the last Run ticked.
func (l *Loop) Frames() int {
	return l.frames
}
