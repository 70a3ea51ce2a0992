package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/spider-web/internal/raster"
)

// screenTarget lets the web draw straight onto an ebiten image.
type screenTarget struct {
	img *ebiten.Image
}

func (s *screenTarget) Clear() { s.img.Clear() }

func (s *screenTarget) DrawLine(x0, y0, x1, y1, width float64, clr color.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), raster.WithAlpha(clr, alpha), true)
}

func (s *screenTarget) DrawFilledCircle(cx, cy, r float64, clr color.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), raster.WithAlpha(clr, alpha), true)
}

func (s *screenTarget) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}
