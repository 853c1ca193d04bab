//go:build ebiten

package ui

import (
	"image/color"

	"chunklife/internal/engine"
	"chunklife/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	ageTint  = color.RGBA{R: 80, G: 170, B: 230}
	heatTint = color.RGBA{R: 255, G: 110, B: 40}
)

// Overlay draws the age and heatmap tint layers over the base grid.
type Overlay struct {
	painter *render.GridPainter
	scale   int
}

// NewOverlay constructs an overlay renderer for a w×h cell viewport.
func NewOverlay(w, h, scale int) *Overlay {
	return &Overlay{painter: render.NewGridPainter(w, h), scale: scale}
}

// Resize reallocates the overlay painter for new viewport dimensions.
func (o *Overlay) Resize(w, h int) {
	if o == nil {
		return
	}
	pw, ph := o.painter.Size()
	if pw != w || ph != h {
		o.painter = render.NewGridPainter(w, h)
	}
}

// Draw renders whichever overlay byte layers the update carries.
func (o *Overlay) Draw(screen *ebiten.Image, u engine.Update) {
	if o == nil {
		return
	}
	if u.Ages != nil {
		o.painter.BlitOverlay(screen, u.Ages, ageTint, 160, o.scale)
	}
	if u.Heatmap != nil {
		o.painter.BlitOverlay(screen, u.Heatmap, heatTint, 200, o.scale)
	}
}
