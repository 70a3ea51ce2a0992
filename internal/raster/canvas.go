// Package raster renders the web into an in-memory RGBA image so frames can be
// exported and compared without a window.
package raster

import (
	"bufio"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/vector"
)

const circleSegments = 32

// Canvas is a web.Target backed by *image.RGBA.
type Canvas struct {
	img        *image.RGBA
	background color.Color
	z          *vector.Rasterizer
}

// NewCanvas allocates a w x h canvas. A nil background clears to transparent.
func NewCanvas(w, h int, background color.Color) *Canvas {
	if background == nil {
		background = color.Transparent
	}
	c := &Canvas{background: background}
	c.Resize(w, h)
	return c
}

// Resize reallocates the backing image; the old contents are dropped.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
	c.z = vector.NewRasterizer(w, h)
	c.Clear()
}

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
}

// DrawLine strokes the segment as a quad of the given width.
func (c *Canvas) DrawLine(x0, y0, x1, y1, width float64, clr color.Color, alpha float64) {
	if c.empty() || alpha <= 0 {
		return
	}
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// half-width normal
	nx, ny := -dy/length*width/2, dx/length*width/2

	c.z.Reset(c.Size())
	c.z.MoveTo(float32(x0+nx), float32(y0+ny))
	c.z.LineTo(float32(x1+nx), float32(y1+ny))
	c.z.LineTo(float32(x1-nx), float32(y1-ny))
	c.z.LineTo(float32(x0-nx), float32(y0-ny))
	c.z.ClosePath()
	c.fill(clr, alpha)
}

func (c *Canvas) DrawFilledCircle(cx, cy, r float64, clr color.Color, alpha float64) {
	if c.empty() || alpha <= 0 || r <= 0 {
		return
	}
	c.z.Reset(c.Size())
	c.z.MoveTo(float32(cx+r), float32(cy))
	for i := 1; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		c.z.LineTo(float32(cx+r*math.Cos(a)), float32(cy+r*math.Sin(a)))
	}
	c.z.ClosePath()
	c.fill(clr, alpha)
}

func (c *Canvas) fill(clr color.Color, alpha float64) {
	src := image.NewUniform(WithAlpha(clr, alpha))
	c.z.Draw(c.img, c.img.Bounds(), src, image.Point{})
}

func (c *Canvas) empty() bool {
	return c.img.Bounds().Empty()
}

// WritePNG encodes the current frame.
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return errors.Wrap(err, "encode png")
	}
	return nil
}

// SavePNG writes the current frame to path, replacing any existing file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	bw := bufio.NewWriter(f)
	if err := c.WritePNG(bw); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "flush %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

// WithAlpha scales clr's opacity by alpha, clamped to [0,1].
func WithAlpha(clr color.Color, alpha float64) color.NRGBA {
	n := color.NRGBAModel.Convert(clr).(color.NRGBA)
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	n.A = uint8(math.Round(float64(n.A) * alpha))
	return n
}
