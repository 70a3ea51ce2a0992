package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"

	"github.com/iburimskiy/spider-web/internal/config"
	"github.com/iburimskiy/spider-web/internal/export"
	"github.com/iburimskiy/spider-web/internal/frame"
	"github.com/iburimskiy/spider-web/internal/game"
	"github.com/iburimskiy/spider-web/internal/log"
	"github.com/iburimskiy/spider-web/internal/soundtrack"
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	logger := log.New(os.Stderr, log.LevelFromString(cfg.LogLevel))
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger.Debugf("seed %d", cfg.Seed)

	var err error
	if cfg.Headless {
		err = runHeadless(cfg, logger)
	} else {
		err = runWindow(cfg, logger)
	}
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func runHeadless(cfg config.Config, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var d frame.Driver = frame.Steps{N: cfg.Frames}
	if cfg.Realtime {
		d = frame.Ticker{Interval: config.TickDuration}
	}
	_, err := export.Run(ctx, cfg, d, logger)
	return err
}

func runWindow(cfg config.Config, logger *log.Logger) error {
	if cfg.Width == 0 || cfg.Height == 0 {
		return errors.Errorf("window needs a non-empty size, got %dx%d", cfg.Width, cfg.Height)
	}
	track := soundtrack.NewPlayer(logger)
	g, err := game.New(cfg, logger, track)
	if err != nil {
		return err
	}
	defer g.Close()

	if cfg.Track != "" {
		if err := track.Load(cfg.Track); err != nil {
			// the web is the point; a broken track only costs the music
			logger.Warnf("soundtrack: %v", err)
		}
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Spider Web - Space: pause track, O: open track, S: snapshot, D: debug log, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TicksPerSecond)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "run game")
	}
	return nil
}
