package game

import (
	"image/color"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/spider-web/internal/config"
	"github.com/iburimskiy/spider-web/internal/log"
	"github.com/iburimskiy/spider-web/internal/rain"
	"github.com/iburimskiy/spider-web/internal/soundtrack"
	"github.com/iburimskiy/spider-web/internal/typewriter"
	"github.com/iburimskiy/spider-web/internal/web"
)

type Game struct {
	cfg config.Config
	log *log.Logger

	// scene
	web   *web.Network
	rain  *rain.Rain
	typer *typewriter.Typewriter
	track *soundtrack.Player

	accent     color.NRGBA
	background color.NRGBA

	// lazily created in Draw
	layer  *ebiten.Image
	hero   *ebiten.Image
	glyphs map[rune]*ebiten.Image

	elapsed time.Duration

	// input edge detection
	prevKey map[ebiten.Key]bool

	lastErr error

	// level restored when debug logging is switched off again
	quietLevel log.Level
}

// New builds the scene from cfg. The web is seeded before the rain so a fixed
// seed reproduces the same web as the headless exporter.
func New(cfg config.Config, logger *log.Logger, track *soundtrack.Player) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Discard()
	}
	if track == nil {
		track = soundtrack.NewPlayer(logger)
	}
	opts := cfg.WebOptions()
	rng := rand.New(rand.NewSource(cfg.Seed))

	g := &Game{
		cfg:        cfg,
		log:        logger,
		web:        web.New(float64(cfg.Width), float64(cfg.Height), opts, rng),
		rain:       rain.New(rng, rain.DefaultOptions()),
		typer:      typewriter.New(cfg.Name),
		track:      track,
		accent:     config.MustColor(cfg.Color),
		background: config.MustColor(config.BackgroundHex),
		glyphs:     map[rune]*ebiten.Image{},
		quietLevel: logger.Level(),
		prevKey:    map[ebiten.Key]bool{},
	}
	return g, nil
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeySpace) {
		g.track.Toggle()
	}
	if justPressed(ebiten.KeyO) {
		if err := g.track.Pick(); err != nil {
			g.fail(err)
		}
	}
	if justPressed(ebiten.KeyS) {
		if err := g.saveSnapshot(); err != nil {
			g.fail(err)
		}
	}
	if justPressed(ebiten.KeyD) {
		g.toggleDebug()
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.advance(config.TickDuration)
	return nil
}

// advance moves every animated element forward by one tick of length dt.
// The web ignores dt: it moves a fixed amount per frame.
func (g *Game) advance(dt time.Duration) {
	g.elapsed += dt
	g.rain.Update(dt)
	g.typer.Update(dt)
	g.web.Step()
}

// Layout is the resize signal: the web adopts the new surface, its particles stay put.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		outsideWidth, outsideHeight = g.cfg.Width, g.cfg.Height
	}
	g.web.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// toggleDebug flips the logger between DEBUG and whatever level it had before.
func (g *Game) toggleDebug() {
	if g.log.Level() == log.LevelDebug {
		g.log.SetLevel(g.quietLevel)
		return
	}
	g.quietLevel = g.log.Level()
	g.log.SetLevel(log.LevelDebug)
	g.log.Debugf("debug logging on, %d particles on %vx%v", g.web.Len(), g.cfg.Width, g.cfg.Height)
}

func (g *Game) fail(err error) {
	g.lastErr = err
	g.log.Errorf("%v", err)
}

// Close stops the soundtrack.
func (g *Game) Close() error {
	return g.track.Close()
}
