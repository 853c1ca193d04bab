//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"chunklife/internal/core"
	"chunklife/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const lineHeight = 14

// HUD renders the stats panel to the right of the simulation view.
type HUD struct {
	width int
	panel *ebiten.Image

	snapshot core.ParameterSnapshot
}

// NewHUD constructs a HUD with the given panel width in pixels.
func NewHUD(width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{width: width}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached snapshot from the latest engine update.
func (h *HUD) Update(u engine.Update) {
	if h == nil {
		return
	}
	stats := core.ParameterGroup{
		Name: "world",
		Params: []core.Parameter{
			{Key: "generation", Label: "Gen", Type: core.ParamTypeInt, Value: fmt.Sprintf("%d", u.Generation)},
			{Key: "population", Label: "Pop", Type: core.ParamTypeInt, Value: fmt.Sprintf("%d", u.Population)},
			{Key: "chunks", Label: "Chunks", Type: core.ParamTypeInt, Value: fmt.Sprintf("%d", u.Chunks)},
			{Key: "rule", Label: "Rule", Type: core.ParamTypeString, Value: u.Rule},
		},
	}
	run := core.ParameterGroup{
		Name: "run",
		Params: []core.Parameter{
			{Key: "running", Label: "Running", Type: core.ParamTypeBool, Value: fmt.Sprintf("%v", u.Running)},
			{Key: "fps", Label: "FPS", Type: core.ParamTypeFloat, Value: fmt.Sprintf("%.1f/%.1f", u.FPS.Actual, u.FPS.Target)},
			{Key: "history", Label: "Undo", Type: core.ParamTypeInt, Value: fmt.Sprintf("%d", u.History)},
		},
	}
	if u.BBox != nil {
		stats.Params = append(stats.Params, core.Parameter{
			Key: "bbox", Label: "BBox", Type: core.ParamTypeString,
			Value: fmt.Sprintf("%d,%d %dx%d", u.BBox.X, u.BBox.Y, u.BBox.W, u.BBox.H),
		})
	}
	h.snapshot = core.ParameterSnapshot{Groups: []core.ParameterGroup{stats, run}}
}

// Draw renders the panel at the given x offset.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, max(height, 1))
	}
	h.panel.Fill(color.RGBA{R: 18, G: 18, B: 24, A: 255})

	y := lineHeight
	for _, group := range h.snapshot.Groups {
		text.Draw(h.panel, "["+group.Name+"]", basicfont.Face7x13, 6, y, color.RGBA{R: 130, G: 130, B: 150, A: 255})
		y += lineHeight
		for _, p := range group.Params {
			text.Draw(h.panel, p.Label+": "+p.Value, basicfont.Face7x13, 12, y, color.White)
			y += lineHeight
		}
		y += lineHeight / 2
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
