package engine

// Request is a message from the presenter to the core. Requests are
// handled strictly in arrival order on the controller goroutine.
type Request interface{ isRequest() }

// Init sets the viewport dimensions; when the store is empty and Preserve
// is false, the default pattern is seeded.
type Init struct {
	Cols, Rows int
	Preserve   bool
}

// Resize changes the viewport dimensions with no store side effects.
type Resize struct {
	Cols, Rows int
}

// ViewportMove sets the viewport origin to global (X, Y).
type ViewportMove struct {
	X, Y int
}

// Start begins the run loop.
type Start struct{}

// Stop halts the run loop.
type Stop struct{}

// StepOnce advances one generation.
type StepOnce struct{}

// Reverse rewinds one generation; a no-op when history is empty or off.
type Reverse struct{}

// SetFPS sets the target cadence; fractional values and sub-1 rates are
// allowed, capped to (0, 60].
type SetFPS struct {
	FPS float64
}

// SetHistory enables/disables and sizes the undo ring.
type SetHistory struct {
	Enabled bool
	Size    int
}

// SetAgeTracking toggles the age overlay.
type SetAgeTracking struct {
	Enabled bool
}

// SetHeatmap toggles the heatmap overlay.
type SetHeatmap struct {
	Enabled bool
}

// SetRule replaces the rule; invalid strings are reported via RuleError.
type SetRule struct {
	Rule string
}

// CellUpdate is one viewport-indexed cell edit.
type CellUpdate struct {
	Idx int
	Val uint32
}

// SetCell edits the viewport cell (Idx%W, Idx/W).
type SetCell struct {
	Idx int
	Val uint32
}

// SetCells applies a bulk viewport edit.
type SetCells struct {
	Updates []CellUpdate
}

// Clear empties the store and resets generation, overlays and history.
type Clear struct{}

// Randomize replaces the viewport rectangle with Bernoulli(Density).
type Randomize struct {
	Density float64
}

// Load replaces the store with a flat packed bitmap at the origin.
type Load struct {
	W, H int
	Data []uint32
}

// LoadPattern replaces the store with a pattern given as RLE or macrocell
// text; parse failures are reported via LoadError with the store intact.
type LoadPattern struct {
	Text string
}

// Export requests an ExportData message with the world's RLE.
type Export struct{}

// JumpToGen advances silently to the target generation.
type JumpToGen struct {
	Target int64
}

func (Init) isRequest()           {}
func (Resize) isRequest()         {}
func (ViewportMove) isRequest()   {}
func (Start) isRequest()          {}
func (Stop) isRequest()           {}
func (StepOnce) isRequest()       {}
func (Reverse) isRequest()        {}
func (SetFPS) isRequest()         {}
func (SetHistory) isRequest()     {}
func (SetAgeTracking) isRequest() {}
func (SetHeatmap) isRequest()     {}
func (SetRule) isRequest()        {}
func (SetCell) isRequest()        {}
func (SetCells) isRequest()       {}
func (Clear) isRequest()          {}
func (Randomize) isRequest()      {}
func (Load) isRequest()           {}
func (LoadPattern) isRequest()    {}
func (Export) isRequest()         {}
func (JumpToGen) isRequest()      {}

// Message is a message from the core to the presenter, observed in send
// order.
type Message interface{ isMessage() }

// Rect is a cell-space rectangle.
type Rect struct {
	X, Y, W, H int
}

// FPSInfo carries the measured and requested cadence.
type FPSInfo struct {
	Actual float64
	Target float64
}

// Update is sent after any state change affecting what a frame should
// display. Grid, Ages and Heatmap are freshly allocated per update and
// owned by the receiver. BBox is nil when no chunks exist. Ages and
// Heatmap are nil unless the matching overlay is enabled.
type Update struct {
	Grid       []uint32
	Generation int64
	Population int
	Running    bool
	BBox       *Rect
	Rule       string
	FPS        FPSInfo
	Chunks     int
	History    int
	Ages       []uint8
	Heatmap    []uint8
}

// ExportData carries the RLE produced by an Export request.
type ExportData struct {
	RLE  string
	W, H int
}

// RuleChanged confirms a successful SetRule with the normalized string.
type RuleChanged struct {
	Rule string
}

// RuleError reports a rejected SetRule; the previous rule is intact.
type RuleError struct {
	Err string
}

// LoadError reports a rejected LoadPattern; the store is intact.
type LoadError struct {
	Err string
}

// JumpProgress is emitted periodically during a long jump.
type JumpProgress struct {
	Current, Target int64
}

// JumpComplete reports the generation reached by a finished jump.
type JumpComplete struct {
	Generation int64
}

// JumpError reports a rejected jump.
type JumpError struct {
	Err string
}

func (Update) isMessage()       {}
func (ExportData) isMessage()   {}
func (RuleChanged) isMessage()  {}
func (RuleError) isMessage()    {}
func (LoadError) isMessage()    {}
func (JumpProgress) isMessage() {}
func (JumpComplete) isMessage() {}
func (JumpError) isMessage()    {}
