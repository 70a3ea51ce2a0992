package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/iburimskiy/spider-web/internal/web"
)

var cyan = color.NRGBA{R: 0, G: 255, B: 255, A: 255}

func TestClearUsesBackground(t *testing.T) {
	bg := color.RGBA{R: 10, G: 10, B: 10, A: 255}
	c := NewCanvas(4, 3, bg)
	if got := c.Image().RGBAAt(2, 1); got != bg {
		t.Fatalf("pixel=%v want %v", got, bg)
	}
	if w, h := c.Size(); w != 4 || h != 3 {
		t.Fatalf("size=%dx%d want 4x3", w, h)
	}
}

func TestCircleCoversCentre(t *testing.T) {
	c := NewCanvas(20, 20, nil)
	c.DrawFilledCircle(10, 10, 2, cyan, 1)
	px := c.Image().RGBAAt(10, 10)
	if px.A < 250 || px.R != 0 || px.G < 250 {
		t.Fatalf("centre pixel=%v want opaque cyan", px)
	}
	if far := c.Image().RGBAAt(0, 0); far.A != 0 {
		t.Fatalf("corner pixel painted: %v", far)
	}
}

func TestAlphaScalesCoverage(t *testing.T) {
	full := NewCanvas(20, 20, nil)
	full.DrawFilledCircle(10, 10, 3, cyan, 1)
	half := NewCanvas(20, 20, nil)
	half.DrawFilledCircle(10, 10, 3, cyan, 0.5)
	a, b := full.Image().RGBAAt(10, 10).A, half.Image().RGBAAt(10, 10).A
	if b == 0 || b >= a {
		t.Fatalf("half alpha=%d full alpha=%d", b, a)
	}

	none := NewCanvas(20, 20, nil)
	none.DrawFilledCircle(10, 10, 3, cyan, 0)
	none.DrawLine(0, 10, 20, 10, 2, cyan, 0)
	if px := none.Image().RGBAAt(10, 10); px.A != 0 {
		t.Fatalf("zero alpha painted %v", px)
	}
}

func TestLineIsDrawn(t *testing.T) {
	c := NewCanvas(30, 10, nil)
	c.DrawLine(0, 5, 30, 5, 2, cyan, 1)
	if px := c.Image().RGBAAt(15, 4); px.A == 0 {
		t.Fatalf("line missing at (15,4)")
	}
	if px := c.Image().RGBAAt(15, 0); px.A != 0 {
		t.Fatalf("line too wide, (15,0)=%v", px)
	}
	// degenerate segment is ignored
	c.Clear()
	c.DrawLine(3, 3, 3, 3, 2, cyan, 1)
	if px := c.Image().RGBAAt(3, 3); px.A != 0 {
		t.Fatalf("zero-length line painted %v", px)
	}
}

func TestZeroSizeCanvas(t *testing.T) {
	c := NewCanvas(0, 0, nil)
	c.DrawLine(0, 0, 1, 1, 1, cyan, 1)
	c.DrawFilledCircle(0, 0, 2, cyan, 1)
	c.Clear()
	c.Resize(-3, 5)
	if w, h := c.Size(); w != 0 || h != 5 {
		t.Fatalf("size=%dx%d want 0x5", w, h)
	}
}

func TestRenderNetworkAndEncode(t *testing.T) {
	c := NewCanvas(160, 120, color.Black)
	n := web.New(160, 120, web.Options{Count: 20}, rand.New(rand.NewSource(11)))
	n.Fit(c)
	for i := 0; i < 10; i++ {
		n.Frame(c)
	}

	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 160 || img.Bounds().Dy() != 120 {
		t.Fatalf("decoded bounds %v", img.Bounds())
	}
}

func TestSavePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.png")
	c := NewCanvas(8, 8, nil)
	c.DrawFilledCircle(4, 4, 2, cyan, 1)
	if err := c.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Fatalf("stat: %v", err)
	}
	if err := c.SavePNG(filepath.Join(dir, "missing", "frame.png")); err == nil {
		t.Fatalf("expected error for a missing directory")
	}
}

func TestWithAlpha(t *testing.T) {
	if got := WithAlpha(cyan, 0.5).A; got != 128 {
		t.Fatalf("alpha=%d want 128", got)
	}
	if got := WithAlpha(cyan, 3).A; got != 255 {
		t.Fatalf("alpha=%d want clamped 255", got)
	}
}
