package game

import (
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// ebitenutil's debug font cell
	glyphWidth  = 6
	glyphHeight = 16

	flowSegments = 10
	flowWidth    = 2

	heroFadeDelay    = 500 * time.Millisecond
	heroFadeDuration = time.Second
	heroRise         = 30

	meterWidth  = 120
	meterHeight = 6
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)

	g.drawRain(screen)
	g.drawWeb(screen)
	g.drawHero(screen)
	g.drawLevel(screen)
	g.drawStatus(screen)
}

// drawWeb renders into its own transparent layer so clearing it leaves the rain intact.
func (g *Game) drawWeb(screen *ebiten.Image) {
	size := screen.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return
	}
	if g.layer == nil || g.layer.Bounds().Size() != size {
		if g.layer != nil {
			g.layer.Deallocate()
		}
		g.layer = ebiten.NewImage(size.X, size.Y)
	}
	g.web.Render(&screenTarget{img: g.layer})
	screen.DrawImage(g.layer, nil)
}

func (g *Game) drawRain(screen *ebiten.Image) {
	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	for _, d := range g.rain.Digits() {
		a := d.Alpha()
		if a <= 0 {
			continue
		}
		scale := d.Size / 12
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(d.XFrac*w, d.Y(h))
		op.ColorScale.Scale(
			float32(float64(g.accent.R)/255*a),
			float32(float64(g.accent.G)/255*a),
			float32(float64(g.accent.B)/255*a),
			float32(a),
		)
		screen.DrawImage(g.glyph(d.Glyph), op)
	}

	for _, l := range g.rain.Lines() {
		y, scaleY, opacity := l.Sample(h)
		if opacity <= 0 || scaleY <= 0 {
			continue
		}
		length := l.Length * scaleY
		// scaleY shrinks the streak around its centre
		top := y + (l.Length-length)/2
		seg := length / flowSegments
		x := l.XFrac * w
		for i := 0; i < flowSegments; i++ {
			// transparent -> accent -> transparent
			t := (float64(i) + 0.5) / flowSegments
			fade := 1 - math.Abs(2*t-1)
			clr := g.accent
			clr.A = uint8(255 * clamp01(opacity*fade))
			vector.DrawFilledRect(screen, float32(x), float32(top+float64(i)*seg), flowWidth, float32(seg), clr, false)
		}
	}
}

// glyph returns a white debug-font image for r, created on first use.
func (g *Game) glyph(r rune) *ebiten.Image {
	if img, ok := g.glyphs[r]; ok {
		return img
	}
	img := ebiten.NewImage(glyphWidth, glyphHeight)
	ebitenutil.DebugPrint(img, string(r))
	g.glyphs[r] = img
	return img
}

// drawHero draws the typed name into its own strip so the whole line can fade in.
func (g *Game) drawHero(screen *ebiten.Image) {
	alpha, rise := heroFade(g.elapsed)
	if alpha <= 0 {
		return
	}
	text := g.typer.Visible()
	w := (len([]rune(g.cfg.Name)) + 1) * glyphWidth
	if g.hero == nil || g.hero.Bounds().Dx() != w {
		if g.hero != nil {
			g.hero.Deallocate()
		}
		g.hero = ebiten.NewImage(w, glyphHeight)
	}
	g.hero.Clear()
	ebitenutil.DebugPrint(g.hero, text)
	if g.typer.CursorOn() {
		cx := float32(len([]rune(text))*glyphWidth + 2)
		vector.DrawFilledRect(g.hero, cx, 0, 2, glyphHeight, g.accent, false)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(40, float64(screen.Bounds().Dy()/2)+rise)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(g.hero, op)
}

// heroFade is the fade-in-up ramp: hidden and lowered for the first 500ms,
// then opaque and in place one second later.
func heroFade(elapsed time.Duration) (alpha, rise float64) {
	k := clamp01(float64(elapsed-heroFadeDelay) / float64(heroFadeDuration))
	return k, heroRise * (1 - k)
}

// drawLevel shows the soundtrack loudness as a small meter in the bottom-left corner.
func (g *Game) drawLevel(screen *ebiten.Image) {
	if !g.track.Loaded() {
		return
	}
	b := screen.Bounds()
	x, y := float32(20), float32(b.Dy()-20-meterHeight)
	level := g.track.Level()

	vector.StrokeRect(screen, x, y, meterWidth, meterHeight, 1, g.accent, false)
	if level > 0 {
		vector.DrawFilledRect(screen, x, y, float32(meterWidth*level), meterHeight, hsv(180+60*level, 0.8, 0.9), false)
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
}

func (g *Game) status() string {
	parts := []string{formatDuration(g.elapsed)}
	switch {
	case !g.track.Loaded():
		parts = append(parts, "O: open soundtrack")
	case g.track.Paused():
		parts = append(parts, "Paused - Space to play")
	default:
		parts = append(parts, "Playing - Space to pause")
	}
	parts = append(parts, "S: snapshot", "D: debug log", "Esc/Q: quit")
	status := strings.Join(parts, " | ")
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}
