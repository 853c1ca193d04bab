package engine

import (
	"strings"

	"chunklife/internal/grid"
	"chunklife/internal/pattern"
	"chunklife/internal/rule"
	"chunklife/pkg/core"

	"github.com/pkg/errors"
)

// ErrCannotJumpBackward reports a jump target at or behind the current
// generation.
var ErrCannotJumpBackward = errors.New("cannot jump backward")

// jumpProgressInterval is how many silent generations pass between progress
// callbacks during a jump.
const jumpProgressInterval = 1000

// Engine is the single owned value holding all simulation state. It is not
// safe for concurrent use; the Controller serializes access on one
// goroutine.
type Engine struct {
	store *grid.Store
	rule  rule.Rule

	generation int64
	view       Viewport

	ageEnabled  bool
	ages        *grid.ByteStore
	heatEnabled bool
	heat        *grid.ByteStore
	heatSteps   int

	historyEnabled bool
	history        *historyRing

	rng *core.RNG
}

// New builds an engine from cfg.
func New(cfg Config) *Engine {
	r, err := rule.Parse(cfg.Rule)
	if err != nil {
		r = rule.Default()
	}
	e := &Engine{
		store:          grid.NewStore(),
		rule:           r,
		ages:           grid.NewByteStore(),
		heat:           grid.NewByteStore(),
		historyEnabled: cfg.HistoryEnabled,
		history:        newHistoryRing(cfg.HistorySize),
		rng:            core.NewRNG(cfg.Seed),
	}
	return e
}

// Rule returns the active rule.
func (e *Engine) Rule() rule.Rule { return e.rule }

// SetRule atomically replaces the rule; on parse failure the current rule
// is kept and the error returned.
func (e *Engine) SetRule(s string) error {
	r, err := rule.Parse(s)
	if err != nil {
		return err
	}
	e.rule = r
	return nil
}

// Generation returns the generation counter.
func (e *Engine) Generation() int64 { return e.generation }

// Population returns the tracked live-cell count.
func (e *Engine) Population() int { return e.store.Population() }

// ChunkCount returns the number of live chunks.
func (e *Engine) ChunkCount() int { return e.store.Len() }

// HistoryLen returns the number of reversible generations.
func (e *Engine) HistoryLen() int {
	if !e.historyEnabled {
		return 0
	}
	return e.history.len()
}

// Viewport returns the current viewport.
func (e *Engine) Viewport() Viewport { return e.view }

// SetViewportSize changes the viewport dimensions.
func (e *Engine) SetViewportSize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	e.view.W, e.view.H = w, h
}

// SetViewportOrigin moves the viewport to global (x, y).
func (e *Engine) SetViewportOrigin(x, y int) {
	e.view.X, e.view.Y = x, y
}

// Step advances the world one generation: run the generator, record the
// history delta of (old, new), resync overlays against (old, new), then
// install the new store.
func (e *Engine) Step() {
	old := e.store
	next := nextStore(old, &e.rule)

	if e.historyEnabled {
		if delta := buildDelta(old, next); delta != nil {
			e.history.push(historyEntry{
				preGeneration: e.generation,
				prePopulation: old.Population(),
				delta:         delta,
			})
		}
	}

	if e.ageEnabled {
		e.ages = advanceAges(e.ages, next)
	}
	if e.heatEnabled {
		bumpHeat(e.heat, old, next)
		e.heatSteps++
		if e.heatSteps >= HeatmapDecayInterval {
			e.heatSteps = 0
			decayHeat(e.heat)
		}
	}

	e.store = next
	e.generation++
}

// stepSilent advances one generation without history or overlay work; used
// by jumps.
func (e *Engine) stepSilent() {
	e.store = nextStore(e.store, &e.rule)
	e.generation++
}

// Reverse rewinds one generation from the history ring. It reports whether
// anything was undone; an empty or disabled ring is a silent no-op.
// Overlays are not rewound (they track the last forward pass).
func (e *Engine) Reverse() bool {
	if !e.historyEnabled {
		return false
	}
	entry, ok := e.history.pop()
	if !ok {
		return false
	}
	applyReverse(e.store, entry.delta)
	e.generation = entry.preGeneration
	e.store.SetPopulation(entry.prePopulation)
	return true
}

// SetHistory enables or disables the ring. Disabling drops all entries;
// re-enabling starts fresh.
func (e *Engine) SetHistory(enabled bool, size int) {
	if !enabled {
		e.historyEnabled = false
		e.history = newHistoryRing(size)
		return
	}
	if !e.historyEnabled {
		e.history = newHistoryRing(size)
		e.historyEnabled = true
		return
	}
	e.history.resize(size)
}

// SetAgeTracking toggles the age overlay. Enabling seeds every live cell at
// age 1; disabling discards the store.
func (e *Engine) SetAgeTracking(enabled bool) {
	if enabled == e.ageEnabled {
		return
	}
	e.ageEnabled = enabled
	if enabled {
		e.ages = seedAges(e.store)
	} else {
		e.ages = grid.NewByteStore()
	}
}

// SetHeatmap toggles the activity heatmap overlay.
func (e *Engine) SetHeatmap(enabled bool) {
	if enabled == e.heatEnabled {
		return
	}
	e.heatEnabled = enabled
	e.heat = grid.NewByteStore()
	e.heatSteps = 0
}

// AgeTracking reports whether the age overlay is on.
func (e *Engine) AgeTracking() bool { return e.ageEnabled }

// Heatmap reports whether the heatmap overlay is on.
func (e *Engine) Heatmap() bool { return e.heatEnabled }

// SetCell writes a single cell addressed by viewport index (idx%W,
// idx/W). Indices outside the viewport are ignored. Direct edits leave the
// age byte in sync with the cell bit.
func (e *Engine) SetCell(idx int, v uint32) {
	if e.view.W <= 0 || idx < 0 || idx >= e.view.W*e.view.H {
		return
	}
	x := e.view.X + idx%e.view.W
	y := e.view.Y + idx/e.view.W
	e.setCellGlobal(x, y, v)
}

func (e *Engine) setCellGlobal(x, y int, v uint32) {
	was := e.store.Cell(x, y)
	e.store.SetCell(x, y, v)
	if !e.ageEnabled || was == v {
		return
	}
	cx, lx := grid.Split(x)
	cy, ly := grid.Split(y)
	key := grid.MakeKey(cx, cy)
	tile := e.ages.Tile(key)
	if v != 0 {
		if tile == nil {
			tile = new(grid.ByteChunk)
		}
		tile[ly*grid.ChunkSize+lx] = 1
		e.ages.Put(key, tile)
	} else if tile != nil {
		tile[ly*grid.ChunkSize+lx] = 0
		e.ages.Put(key, tile)
	}
}

// Clear empties the store and resets generation, overlays and history.
func (e *Engine) Clear() {
	e.store.Clear()
	e.generation = 0
	e.resetOverlaysAndHistory()
}

func (e *Engine) resetOverlaysAndHistory() {
	e.ages = grid.NewByteStore()
	e.heat = grid.NewByteStore()
	e.heatSteps = 0
	e.history = newHistoryRing(e.history.capacity)
}

// Randomize replaces the viewport rectangle with Bernoulli(density) cells.
// Cells outside the viewport are untouched; overlays and history are
// wiped.
func (e *Engine) Randomize(density float64) {
	if density <= 0 || density >= 1 {
		return
	}
	for dy := 0; dy < e.view.H; dy++ {
		for dx := 0; dx < e.view.W; dx++ {
			v := uint32(0)
			if e.rng.Float64() < density {
				v = 1
			}
			e.store.SetCell(e.view.X+dx, e.view.Y+dy, v)
		}
	}
	e.resetOverlaysAndHistory()
}

// LoadPacked replaces the world with a flat packed bitmap at the origin.
// Generation, overlays and history reset.
func (e *Engine) LoadPacked(w, h int, data []uint32) {
	e.store.Clear()
	pattern.LoadPacked(e.store, w, h, data)
	e.generation = 0
	e.resetOverlaysAndHistory()
}

// LoadCells merges a live-cell list into the store translated by (dx, dy).
func (e *Engine) LoadCells(cells []pattern.Cell, dx, dy int) {
	pattern.CellsToStore(e.store, cells, dx, dy)
}

// LoadPatternText replaces the world with a pattern given as text, either
// macrocell (leading '[') or RLE. On a parse failure the store is
// untouched and the error returned.
func (e *Engine) LoadPatternText(src string) error {
	var cells []pattern.Cell
	var err error
	if strings.HasPrefix(strings.TrimSpace(src), "[") {
		cells, err = pattern.ParseMacrocell(src)
	} else {
		cells, err = pattern.ParseRLE(src)
	}
	if err != nil {
		return err
	}
	e.store.Clear()
	pattern.CellsToStore(e.store, cells, 0, 0)
	e.generation = 0
	e.resetOverlaysAndHistory()
	return nil
}

// ExportRLE emits the current world as RLE over its tight bounding box.
func (e *Engine) ExportRLE() (rle string, w, h int) {
	var cells []pattern.Cell
	e.store.Each(func(k grid.Key, c *grid.Chunk) {
		cx, cy := k.Coords()
		baseX, baseY := cx*grid.ChunkSize, cy*grid.ChunkSize
		for ly := 0; ly < grid.ChunkSize; ly++ {
			row := c[ly]
			if row == 0 {
				continue
			}
			for lx := 0; lx < grid.ChunkSize; lx++ {
				if row&(1<<uint(lx)) != 0 {
					cells = append(cells, pattern.Cell{X: baseX + lx, Y: baseY + ly})
				}
			}
		}
	})
	return pattern.EmitRLE(cells, e.rule.String())
}

// JumpTo advances the generation counter to target with silent steps,
// invoking progress after every progress interval. History, overlays and
// projections are not maintained during the jump.
func (e *Engine) JumpTo(target int64, progress func(current, target int64)) error {
	if target <= e.generation {
		return errors.Wrapf(ErrCannotJumpBackward, "target %d, current %d", target, e.generation)
	}
	since := 0
	for e.generation < target {
		e.stepSilent()
		since++
		if since >= jumpProgressInterval {
			since = 0
			if progress != nil {
				progress(e.generation, target)
			}
		}
	}
	return nil
}

// Bounds returns the chunk-aligned bounding rectangle in cell space, or
// ok=false when the world is empty.
func (e *Engine) Bounds() (x, y, w, h int, ok bool) {
	b, ok := e.store.Bounds()
	if !ok {
		return 0, 0, 0, 0, false
	}
	x, y, w, h = b.CellRect()
	return x, y, w, h, true
}

// RenderBitmap projects the current viewport into a fresh packed bitmap.
func (e *Engine) RenderBitmap() []uint32 {
	return projectBitmap(e.store, e.view)
}

// RenderAges projects the age overlay into a fresh byte array, or nil when
// the overlay is off.
func (e *Engine) RenderAges() []uint8 {
	if !e.ageEnabled {
		return nil
	}
	return projectBytes(e.ages, e.view)
}

// RenderHeatmap projects the heatmap overlay into a fresh byte array, or
// nil when the overlay is off.
func (e *Engine) RenderHeatmap() []uint8 {
	if !e.heatEnabled {
		return nil
	}
	return projectBytes(e.heat, e.view)
}

// CellAt reads a cell by global coordinate. Test and presenter helper.
func (e *Engine) CellAt(x, y int) uint32 { return e.store.Cell(x, y) }

// AgeAt reads an age byte by global coordinate.
func (e *Engine) AgeAt(x, y int) uint8 { return e.ages.Byte(x, y) }

// HeatAt reads a heat byte by global coordinate.
func (e *Engine) HeatAt(x, y int) uint8 { return e.heat.Byte(x, y) }
