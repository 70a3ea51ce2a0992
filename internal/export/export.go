// Package export renders the web without a window and writes PNG frames to disk.
package export

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/iburimskiy/spider-web/internal/config"
	"github.com/iburimskiy/spider-web/internal/frame"
	"github.com/iburimskiy/spider-web/internal/log"
	"github.com/iburimskiy/spider-web/internal/raster"
	"github.com/iburimskiy/spider-web/internal/web"
)

// FrameName is the file name used for frame n (1-based).
func FrameName(n int) string {
	return fmt.Sprintf("frame-%05d.png", n)
}

// Run drives the web with d for at most cfg.Frames frames and saves every
// cfg.Every-th frame into cfg.OutDir. It returns the number of frames written.
func Run(ctx context.Context, cfg config.Config, d frame.Driver, logger *log.Logger) (int, error) {
	// Frames and Every are only checked in headless mode, which this always is.
	cfg.Headless = true
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return 0, errors.Errorf("cannot export an empty %dx%d surface", cfg.Width, cfg.Height)
	}
	if logger == nil {
		logger = log.Discard()
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return 0, errors.Wrap(err, "create output directory")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	net := web.New(float64(cfg.Width), float64(cfg.Height), cfg.WebOptions(), rng)
	canvas := raster.NewCanvas(cfg.Width, cfg.Height, config.MustColor(config.BackgroundHex))
	net.Fit(canvas)

	logger.Infof("headless: %d particles on %dx%d, seed %d", net.Len(), cfg.Width, cfg.Height, cfg.Seed)

	var n, written int
	err := d.Run(ctx, func() error {
		net.Frame(canvas)
		n++
		if n%cfg.Every == 0 {
			path := filepath.Join(cfg.OutDir, FrameName(n))
			if err := canvas.SavePNG(path); err != nil {
				return err
			}
			written++
			logger.Debugf("wrote %s", path)
		}
		if n >= cfg.Frames {
			return frame.ErrStop
		}
		return nil
	})
	if err != nil {
		return written, errors.Wrapf(err, "frame %d", n)
	}
	logger.Infof("headless: %d frames simulated, %d written to %s", n, written, cfg.OutDir)
	return written, nil
}
