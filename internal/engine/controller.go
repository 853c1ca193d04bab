package engine

import (
	"context"
	"time"

	"chunklife/internal/pattern"
)

// defaultPattern seeds a fresh world on init: a glider above a blinker.
const defaultPattern = "bo$2bo$3o$$$2b3o!"

const (
	// maxTargetFPS caps the run-loop cadence.
	maxTargetFPS = 60
	// requestBuffer and messageBuffer size the controller channels.
	requestBuffer = 64
	messageBuffer = 64
)

// Controller runs the engine on a dedicated goroutine, consuming requests
// in FIFO order and emitting messages in send order. All engine state is
// confined to that goroutine.
type Controller struct {
	eng *Engine

	reqs chan Request
	out  chan Message

	running   bool
	targetFPS float64
	timer     *time.Timer

	frames     int
	meterStart time.Time
	actualFPS  float64

	now func() time.Time
}

// NewController builds a controller and its engine from cfg.
func NewController(cfg Config) *Controller {
	eng := New(cfg)
	eng.SetViewportSize(cfg.Cols, cfg.Rows)

	fps := cfg.TargetFPS
	if fps <= 0 || fps > maxTargetFPS {
		fps = 10
	}
	c := &Controller{
		eng:       eng,
		reqs:      make(chan Request, requestBuffer),
		out:       make(chan Message, messageBuffer),
		targetFPS: fps,
		now:       time.Now,
	}
	c.timer = time.NewTimer(time.Hour)
	if !c.timer.Stop() {
		<-c.timer.C
	}
	return c
}

// Requests is the inbound message channel.
func (c *Controller) Requests() chan<- Request { return c.reqs }

// Messages is the outbound message channel.
func (c *Controller) Messages() <-chan Message { return c.out }

// Run consumes requests and run-loop ticks until ctx is canceled. It owns
// the engine for its lifetime.
func (c *Controller) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.stopTimer()
			return
		case req := <-c.reqs:
			c.handle(req)
		case <-c.timer.C:
			c.tick()
		}
	}
}

// handle dispatches one presenter request.
func (c *Controller) handle(req Request) {
	switch m := req.(type) {
	case Init:
		c.eng.SetViewportSize(m.Cols, m.Rows)
		if c.eng.ChunkCount() == 0 && !m.Preserve {
			c.seedDefault()
		}
		c.sendUpdate()
	case Resize:
		c.eng.SetViewportSize(m.Cols, m.Rows)
		c.sendUpdate()
	case ViewportMove:
		c.eng.SetViewportOrigin(m.X, m.Y)
		c.sendUpdate()
	case Start:
		if !c.running {
			c.running = true
			c.resetMeter()
			c.schedule(0)
		}
		c.sendUpdate()
	case Stop:
		c.stopRun()
		c.sendUpdate()
	case StepOnce:
		c.stopRun()
		c.eng.Step()
		c.sendUpdate()
	case Reverse:
		c.stopRun()
		c.eng.Reverse()
		c.sendUpdate()
	case SetFPS:
		if m.FPS > 0 {
			c.targetFPS = min(m.FPS, maxTargetFPS)
			c.resetMeter()
		}
		c.sendUpdate()
	case SetHistory:
		c.eng.SetHistory(m.Enabled, m.Size)
		c.sendUpdate()
	case SetAgeTracking:
		c.eng.SetAgeTracking(m.Enabled)
		c.sendUpdate()
	case SetHeatmap:
		c.eng.SetHeatmap(m.Enabled)
		c.sendUpdate()
	case SetRule:
		if err := c.eng.SetRule(m.Rule); err != nil {
			c.send(RuleError{Err: err.Error()})
			return
		}
		c.send(RuleChanged{Rule: c.eng.Rule().String()})
		c.sendUpdate()
	case SetCell:
		c.eng.SetCell(m.Idx, m.Val)
		c.sendUpdate()
	case SetCells:
		for _, u := range m.Updates {
			c.eng.SetCell(u.Idx, u.Val)
		}
		c.sendUpdate()
	case Clear:
		c.stopRun()
		c.eng.Clear()
		c.sendUpdate()
	case Randomize:
		c.stopRun()
		c.eng.Randomize(m.Density)
		c.sendUpdate()
	case Load:
		c.stopRun()
		c.eng.LoadPacked(m.W, m.H, m.Data)
		c.sendUpdate()
	case LoadPattern:
		c.stopRun()
		if err := c.eng.LoadPatternText(m.Text); err != nil {
			c.send(LoadError{Err: err.Error()})
			return
		}
		c.sendUpdate()
	case Export:
		rle, w, h := c.eng.ExportRLE()
		c.send(ExportData{RLE: rle, W: w, H: h})
	case JumpToGen:
		c.stopRun()
		err := c.eng.JumpTo(m.Target, func(current, target int64) {
			c.send(JumpProgress{Current: current, Target: target})
		})
		if err != nil {
			c.send(JumpError{Err: err.Error()})
			return
		}
		c.send(JumpComplete{Generation: c.eng.Generation()})
		c.sendUpdate()
	}
}

// tick runs one scheduled generation and books the next one, compensating
// for the time the step itself took.
func (c *Controller) tick() {
	if !c.running {
		return
	}
	start := c.now()
	c.eng.Step()
	c.sendUpdate()
	c.meterFrame()

	interval := time.Duration(float64(time.Second) / c.targetFPS)
	delay := interval - c.now().Sub(start)
	if delay < 0 {
		delay = 0
	}
	c.schedule(delay)
}

func (c *Controller) seedDefault() {
	cells, err := pattern.ParseRLE(defaultPattern)
	if err != nil {
		return
	}
	v := c.eng.Viewport()
	c.eng.LoadCells(cells, v.X+v.W/2-2, v.Y+v.H/2-3)
}

func (c *Controller) stopRun() {
	if c.running {
		c.running = false
		c.stopTimer()
	}
}

func (c *Controller) schedule(d time.Duration) {
	c.stopTimer()
	c.timer.Reset(d)
}

func (c *Controller) stopTimer() {
	if !c.timer.Stop() {
		select {
		case <-c.timer.C:
		default:
		}
	}
}

func (c *Controller) resetMeter() {
	c.frames = 0
	c.meterStart = c.now()
	c.actualFPS = 0
}

// meterFrame counts run-loop frames and folds them into an actual-FPS
// reading once per second.
func (c *Controller) meterFrame() {
	c.frames++
	elapsed := c.now().Sub(c.meterStart)
	if elapsed >= time.Second {
		c.actualFPS = float64(c.frames) / elapsed.Seconds()
		c.frames = 0
		c.meterStart = c.now()
	}
}

// send enqueues an outbound message. When the presenter falls behind and
// the buffer fills, the oldest message is dropped; the ones that are
// observed still arrive in send order.
func (c *Controller) send(m Message) {
	for {
		select {
		case c.out <- m:
			return
		default:
		}
		select {
		case <-c.out:
		default:
		}
	}
}

// sendUpdate snapshots the world into a fresh Update. Output buffers are
// newly allocated every time; the presenter owns them after the send.
func (c *Controller) sendUpdate() {
	u := Update{
		Grid:       c.eng.RenderBitmap(),
		Generation: c.eng.Generation(),
		Population: c.eng.Population(),
		Running:    c.running,
		Rule:       c.eng.Rule().String(),
		FPS:        FPSInfo{Actual: c.actualFPS, Target: c.targetFPS},
		Chunks:     c.eng.ChunkCount(),
		History:    c.eng.HistoryLen(),
		Ages:       c.eng.RenderAges(),
		Heatmap:    c.eng.RenderHeatmap(),
	}
	if x, y, w, h, ok := c.eng.Bounds(); ok {
		u.BBox = &Rect{X: x, Y: y, W: w, H: h}
	}
	c.send(u)
}
