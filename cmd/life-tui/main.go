package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"chunklife/internal/core"
	"chunklife/internal/engine"

	"github.com/gdamore/tcell/v2"
)

var (
	styleDefault = tcell.StyleDefault.Background(tcell.NewRGBColor(12, 12, 18))
	styleLive    = tcell.StyleDefault.Background(tcell.NewRGBColor(230, 230, 230))
	styleStatus  = tcell.StyleDefault.
			Background(tcell.NewRGBColor(40, 50, 70)).
			Foreground(tcell.NewRGBColor(210, 210, 210))
)

// presenter owns the terminal side: it forwards key events as controller
// requests and paints the latest update.
type presenter struct {
	screen tcell.Screen
	ctrl   *engine.Controller

	cols, rows int
	viewX      int
	viewY      int

	latest engine.Update
	ageOn  bool
	heatOn bool
}

func main() {
	cfg := engine.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	load := flag.String("load", "", "pattern file to load (RLE or macrocell)")
	flag.Parse()

	var loadText string
	if *load != "" {
		text, err := os.ReadFile(*load)
		if err != nil {
			log.Fatalf("load %s: %v", *load, err)
		}
		loadText = string(text)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()
	screen.SetStyle(styleDefault)

	ctrl := engine.NewController(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctrl.Run(ctx)

	p := &presenter{screen: screen, ctrl: ctrl}
	p.resizeToScreen()
	ctrl.Requests() <- engine.Init{Cols: p.cols, Rows: p.rows, Preserve: loadText != ""}
	if loadText != "" {
		ctrl.Requests() <- engine.LoadPattern{Text: loadText}
	}

	// Dedicated input goroutine, one event channel into the main loop.
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	redraw := core.NewFixedStep(30)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !p.handleEvent(ev) {
				return
			}
		case m := <-ctrl.Messages():
			switch v := m.(type) {
			case engine.Update:
				p.latest = v
				if redraw.ShouldStep() {
					p.draw()
				}
			case engine.ExportData:
				if path, err := dumpExport(v); err == nil {
					p.flashStatus("exported " + path)
				}
			case engine.RuleError:
				p.flashStatus("rule rejected: " + v.Err)
			case engine.LoadError:
				p.flashStatus("load failed: " + v.Err)
			case engine.JumpComplete:
				p.flashStatus(fmt.Sprintf("jumped to generation %d", v.Generation))
			}
		}
	}
}

// handleEvent processes one terminal event; returns false to quit.
func (p *presenter) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		p.resizeToScreen()
		p.ctrl.Requests() <- engine.Resize{Cols: p.cols, Rows: p.rows}
		p.screen.Sync()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyLeft:
			p.pan(-8, 0)
		case ev.Key() == tcell.KeyRight:
			p.pan(8, 0)
		case ev.Key() == tcell.KeyUp:
			p.pan(0, -8)
		case ev.Key() == tcell.KeyDown:
			p.pan(0, 8)
		case ev.Key() == tcell.KeyRune:
			return p.handleRune(ev.Rune())
		}
	}
	return true
}

func (p *presenter) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case ' ':
		if p.latest.Running {
			p.ctrl.Requests() <- engine.Stop{}
		} else {
			p.ctrl.Requests() <- engine.Start{}
		}
	case 'n':
		p.ctrl.Requests() <- engine.StepOnce{}
	case 'b':
		p.ctrl.Requests() <- engine.Reverse{}
	case 'r':
		p.ctrl.Requests() <- engine.Randomize{Density: 0.3}
	case 'c':
		p.ctrl.Requests() <- engine.Clear{}
	case 'a':
		p.ageOn = !p.ageOn
		p.ctrl.Requests() <- engine.SetAgeTracking{Enabled: p.ageOn}
	case 'h':
		p.heatOn = !p.heatOn
		p.ctrl.Requests() <- engine.SetHeatmap{Enabled: p.heatOn}
	case 'e':
		p.ctrl.Requests() <- engine.Export{}
	case 'j':
		p.ctrl.Requests() <- engine.JumpToGen{Target: p.latest.Generation + 1000}
	}
	return true
}

func (p *presenter) pan(dx, dy int) {
	p.viewX += dx
	p.viewY += dy
	p.ctrl.Requests() <- engine.ViewportMove{X: p.viewX, Y: p.viewY}
}

// resizeToScreen sizes the viewport to the terminal, reserving the bottom
// row for the status line.
func (p *presenter) resizeToScreen() {
	w, h := p.screen.Size()
	p.cols = w
	p.rows = h - 1
	if p.rows < 0 {
		p.rows = 0
	}
}

func (p *presenter) draw() {
	u := p.latest
	stride := (p.cols + 31) / 32
	for y := 0; y < p.rows; y++ {
		for x := 0; x < p.cols; x++ {
			style := styleDefault
			if y*stride+x/32 < len(u.Grid) && u.Grid[y*stride+x/32]>>uint(x%32)&1 != 0 {
				style = styleLive
				if idx := y*p.cols + x; idx < len(u.Ages) {
					style = tcell.StyleDefault.Background(ageColor(u.Ages[idx]))
				}
			}
			if u.Heatmap != nil && y*p.cols+x < len(u.Heatmap) {
				if heat := u.Heatmap[y*p.cols+x]; heat > 0 && style == styleDefault {
					style = tcell.StyleDefault.Background(heatColor(heat))
				}
			}
			p.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	p.drawStatus()
	p.screen.Show()
}

func (p *presenter) drawStatus() {
	u := p.latest
	run := "paused"
	if u.Running {
		run = "running"
	}
	line := fmt.Sprintf(" gen %d  pop %d  chunks %d  undo %d  %s  %s  fps %.1f/%.1f  [space] run  [n]ext [b]ack [r]and [c]lear [a]ge [h]eat [j]ump [q]uit",
		u.Generation, u.Population, u.Chunks, u.History, u.Rule, run, u.FPS.Actual, u.FPS.Target)
	p.putStatus(line)
}

func (p *presenter) flashStatus(msg string) {
	p.putStatus(" " + msg)
	p.screen.Show()
}

func (p *presenter) putStatus(line string) {
	y := p.rows
	for x := 0; x < p.cols; x++ {
		ch := ' '
		if x < len(line) {
			ch = rune(line[x])
		}
		p.screen.SetContent(x, y, ch, nil, styleStatus)
	}
}

// ageColor fades from fresh white toward a settled blue as cells age.
func ageColor(age uint8) tcell.Color {
	t := int32(age)
	r := 230 - t*150/255
	g := 230 - t*60/255
	return tcell.NewRGBColor(r, g, 230)
}

// heatColor ramps dark ember to bright orange with activity.
func heatColor(heat uint8) tcell.Color {
	t := int32(heat)
	return tcell.NewRGBColor(90+t*165/255, 30+t*80/255, 10)
}

func dumpExport(v engine.ExportData) (string, error) {
	f, err := os.CreateTemp("", "chunklife-*.rle")
	if err != nil {
		return "", err
	}
	defer f.Close()
	fmt.Fprint(f, v.RLE)
	return f.Name(), nil
}
