package game

import (
	"github.com/ncruces/zenity"
	"github.com/pkg/errors"

	"github.com/iburimskiy/spider-web/internal/raster"
)

func (g *Game) saveSnapshot() error {
	path, err := zenity.SelectFileSave(
		zenity.Title("Save Web Snapshot"),
		zenity.Filename("spider-web.png"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return errors.Wrap(err, "select snapshot file")
	}
	return g.writeSnapshot(path)
}

// writeSnapshot renders the web as it is now, without advancing it.
func (g *Game) writeSnapshot(path string) error {
	w, h := g.web.Bounds()
	canvas := raster.NewCanvas(int(w), int(h), g.background)
	g.web.Render(canvas)
	if err := canvas.SavePNG(path); err != nil {
		return err
	}
	g.log.Infof("snapshot saved to %s", path)
	return nil
}
