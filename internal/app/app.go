//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"time"

	"chunklife/internal/engine"
	"chunklife/internal/render"
	"chunklife/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 160

// panStep is how many cells an arrow key moves the viewport.
const panStep = 8

// Game adapts the engine controller to the ebiten.Game interface. It sends
// requests on key and mouse input and renders the latest Update it has
// drained from the controller.
type Game struct {
	ctrl *engine.Controller

	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	onColor  color.Color
	offColor color.Color

	cols, rows int
	viewX      int
	viewY      int
	scale      int

	latest   engine.Update
	haveGrid bool

	ageOn  bool
	heatOn bool
}

// New constructs a Game for the provided controller and viewport shape.
func New(ctrl *engine.Controller, cols, rows, scale int) *Game {
	g := &Game{
		ctrl:     ctrl,
		painter:  render.NewGridPainter(cols, rows),
		overlay:  ui.NewOverlay(cols, rows, scale),
		hud:      ui.NewHUD(hudWidth),
		onColor:  color.White,
		offColor: color.Black,
		cols:     cols,
		rows:     rows,
		scale:    scale,
	}
	ctrl.Requests() <- engine.Init{Cols: cols, Rows: rows}
	return g
}

// Update handles per-frame input and drains controller messages.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.latest.Running {
			g.ctrl.Requests() <- engine.Stop{}
		} else {
			g.ctrl.Requests() <- engine.Start{}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.ctrl.Requests() <- engine.StepOnce{}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.ctrl.Requests() <- engine.Reverse{}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.Requests() <- engine.Randomize{Density: 0.3}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.ctrl.Requests() <- engine.Clear{}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.ageOn = !g.ageOn
		g.ctrl.Requests() <- engine.SetAgeTracking{Enabled: g.ageOn}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.heatOn = !g.heatOn
		g.ctrl.Requests() <- engine.SetHeatmap{Enabled: g.heatOn}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.ctrl.Requests() <- engine.Export{}
	}
	g.handlePan()
	g.handlePresetKeys()
	g.handleMouse()
	g.drainMessages()
	return nil
}

func (g *Game) handlePan() {
	dx, dy := 0, 0
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		dx = -panStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		dx = panStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		dy = -panStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		dy = panStep
	}
	if dx != 0 || dy != 0 {
		g.viewX += dx
		g.viewY += dy
		g.ctrl.Requests() <- engine.ViewportMove{X: g.viewX, Y: g.viewY}
	}
}

// handlePresetKeys maps the digit row to the named rule presets.
func (g *Game) handlePresetKeys() {
	keys := []struct {
		key  ebiten.Key
		name string
	}{
		{ebiten.KeyDigit1, "Conway"},
		{ebiten.KeyDigit2, "HighLife"},
		{ebiten.KeyDigit3, "Seeds"},
		{ebiten.KeyDigit4, "Life-without-Death"},
		{ebiten.KeyDigit5, "Maze"},
		{ebiten.KeyDigit6, "Morley"},
		{ebiten.KeyDigit7, "Replicator"},
		{ebiten.KeyDigit8, "Diamoeba"},
		{ebiten.KeyDigit9, "Anneal"},
		{ebiten.KeyDigit0, "34-Life"},
	}
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.key) {
			if rs, ok := presetString(k.name); ok {
				g.ctrl.Requests() <- engine.SetRule{Rule: rs}
			}
		}
	}
}

func (g *Game) handleMouse() {
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return
	}
	mx, my := ebiten.CursorPosition()
	cx, cy := mx/g.scale, my/g.scale
	if cx < 0 || cx >= g.cols || cy < 0 || cy >= g.rows {
		return
	}
	val := uint32(1)
	if right {
		val = 0
	}
	g.ctrl.Requests() <- engine.SetCell{Idx: cy*g.cols + cx, Val: val}
}

// drainMessages consumes everything the controller has queued without
// blocking the frame.
func (g *Game) drainMessages() {
	for {
		select {
		case m := <-g.ctrl.Messages():
			switch v := m.(type) {
			case engine.Update:
				g.latest = v
				g.haveGrid = true
				g.hud.Update(v)
			case engine.ExportData:
				fmt.Printf("exported %dx%d pattern at %s:\n%s", v.W, v.H, time.Now().Format(time.TimeOnly), v.RLE)
			case engine.RuleError:
				fmt.Println("rule rejected:", v.Err)
			}
		default:
			return
		}
	}
}

// Draw renders the latest engine update.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.haveGrid {
		v := engine.Viewport{W: g.cols, H: g.rows}
		g.painter.Blit(screen, g.latest.Grid, v.Stride(), g.onColor, g.offColor, g.scale)
		g.overlay.Draw(screen, g.latest)
	}
	g.hud.Draw(screen, g.cols*g.scale, g.rows*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cols*g.scale + g.hud.Width(), g.rows * g.scale
}
