package core

import "time"

// FixedStep paces an activity at a steady ticks-per-second rate. The TUI
// presenter uses it to throttle redraws independently of the engine's own
// run-loop cadence.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps float64) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. Fractional rates are allowed; non-positive
// values fall back to 60.
func (f *FixedStep) SetTPS(tps float64) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Duration(float64(time.Second) / tps)
}

// ShouldStep reports whether the activity should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
