package config

import (
	"flag"
	"image/color"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/iburimskiy/spider-web/internal/web"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720

	// Web parameters
	ParticleCount = 80
	MaxDistance   = 150
	ParticleSpeed = 0.25
	PhaseStep     = 0.02
	PointRadius   = 2
	LineWidth     = 1

	// Palette
	AccentHex     = "#00ffff"
	BackgroundHex = "#0a0a0a"

	// Headless export
	HeadlessFrames = 120
	HeadlessEvery  = 30

	TicksPerSecond = 60
	TickDuration   = time.Second / TicksPerSecond
)

// Config holds everything main needs to build either the window or the headless exporter.
type Config struct {
	Width       int
	Height      int
	Particles   int
	MaxDistance float64
	Seed        int64
	Color       string
	Name        string
	Track       string
	LogLevel    string

	Headless bool
	Realtime bool
	Frames   int
	Every    int
	OutDir   string
}

func Default() Config {
	return Config{
		Width:       WindowWidth,
		Height:      WindowHeight,
		Particles:   ParticleCount,
		MaxDistance: MaxDistance,
		Color:       AccentHex,
		Name:        "Spider Web",
		LogLevel:    "INFO",
		Frames:      HeadlessFrames,
		Every:       HeadlessEvery,
		OutDir:      "frames",
	}
}

// RegisterFlags binds every field to fs using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "surface width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "surface height in pixels")
	fs.IntVar(&c.Particles, "particles", c.Particles, "number of web particles")
	fs.Float64Var(&c.MaxDistance, "distance", c.MaxDistance, "connection threshold distance")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 picks one from the clock)")
	fs.StringVar(&c.Color, "color", c.Color, "accent colour as #rrggbb")
	fs.StringVar(&c.Name, "name", c.Name, "name typed in the hero line")
	fs.StringVar(&c.Track, "track", c.Track, "optional .wav/.mp3/.flac soundtrack")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "DEBUG, INFO, ERROR or NONE")
	fs.BoolVar(&c.Headless, "headless", c.Headless, "render PNG frames instead of opening a window")
	fs.BoolVar(&c.Realtime, "realtime", c.Realtime, "pace headless frames at the window tick rate")
	fs.IntVar(&c.Frames, "frames", c.Frames, "frames to simulate in headless mode")
	fs.IntVar(&c.Every, "every", c.Every, "write a PNG every N frames in headless mode")
	fs.StringVar(&c.OutDir, "out", c.OutDir, "output directory for headless PNGs")
}

func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return errors.Errorf("invalid surface size %dx%d", c.Width, c.Height)
	}
	if c.Particles <= 0 {
		return errors.Errorf("invalid particle count %d", c.Particles)
	}
	if c.MaxDistance <= 0 {
		return errors.Errorf("connection distance must be positive, got %v", c.MaxDistance)
	}
	if _, err := ParseColor(c.Color); err != nil {
		return err
	}
	if c.Headless {
		if c.Frames <= 0 {
			return errors.Errorf("headless mode needs a positive frame count, got %d", c.Frames)
		}
		if c.Every <= 0 {
			return errors.Errorf("headless mode needs a positive -every, got %d", c.Every)
		}
	}
	return nil
}

// WebOptions maps the config onto the web's options. Call Validate first.
func (c Config) WebOptions() web.Options {
	accent, err := ParseColor(c.Color)
	if err != nil {
		accent = MustColor(AccentHex)
	}
	return web.Options{
		Count:       c.Particles,
		MaxDistance: c.MaxDistance,
		Speed:       ParticleSpeed,
		PhaseStep:   PhaseStep,
		PointRadius: PointRadius,
		LineWidth:   LineWidth,
		Color:       accent,
	}
}

// ParseColor turns "#rrggbb" (or "#rgb") into an opaque colour.
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(err, "parse colour %q", hex)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustColor is for the package's own palette constants.
func MustColor(hex string) color.NRGBA {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}
