//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter updates a single RGBA image from a packed viewport bitmap.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a viewport of size w*h cells.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads the packed bitmap into the painter image and draws it
// scaled onto dst. stride is the number of words per bitmap row.
func (gp *GridPainter) Blit(dst *ebiten.Image, bitmap []uint32, stride int, on, off color.Color, scale int) {
	if len(bitmap) != stride*gp.h {
		return
	}
	fillBitmapRGBA(gp.buf, bitmap, gp.w, gp.h, stride, on, off)
	gp.img.ReplacePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// BlitOverlay uploads overlay bytes as a tint layer and draws it scaled
// onto dst.
func (gp *GridPainter) BlitOverlay(dst *ebiten.Image, values []uint8, tint color.RGBA, maxAlpha uint8, scale int) {
	if len(values) != gp.w*gp.h {
		return
	}
	fillOverlayRGBA(gp.buf, values, tint, maxAlpha)
	gp.img.ReplacePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
