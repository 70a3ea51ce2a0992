// Package frame decouples "run one more frame" from how frames are scheduled.
package frame

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrStop ends a driver loop without reporting a failure.
var ErrStop = errors.New("frame: stop")

// Driver calls frame repeatedly until the context ends, the frame returns an
// error, or the driver's own limit is reached.
type Driver interface {
	Run(ctx context.Context, frame func() error) error
}

// Ticker redraws on a fixed interval. Missed ticks are dropped, so a slow frame
// slows the animation instead of bursting to catch up.
type Ticker struct {
	Interval time.Duration
}

func (t Ticker) Run(ctx context.Context, frame func() error) error {
	interval := t.Interval
	if interval <= 0 {
		interval = time.Second / 60
	}
	tk := time.NewTicker(interval)
	defer tk.Stop()

	for {
		if stop, err := call(frame); stop {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-tk.C:
		}
	}
}

// Steps runs exactly N frames back to back.
type Steps struct {
	N int
}

func (s Steps) Run(ctx context.Context, frame func() error) error {
	for i := 0; i < s.N; i++ {
		if ctx.Err() != nil {
			return nil
		}
		if stop, err := call(frame); stop {
			return err
		}
	}
	return nil
}

func call(frame func() error) (stop bool, err error) {
	err = frame()
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, ErrStop):
		return true, nil
	default:
		return true, err
	}
}
