package engine

import (
	"flag"
	"strconv"
)

// Config controls a freshly built engine and controller.
type Config struct {
	// Viewport dimensions in cells.
	Cols, Rows int

	Rule string
	Seed int64

	HistoryEnabled bool
	HistorySize    int

	TargetFPS float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Cols:           128,
		Rows:           96,
		Rule:           "B3/S23",
		Seed:           1337,
		HistoryEnabled: true,
		HistorySize:    HistoryDefaultSize,
		TargetFPS:      10,
	}
}

// FromMap populates a config from a string map (flag-style key/value
// pairs), starting from the defaults. Unknown keys and unparseable values
// are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["cols"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Cols = parsed
		}
	}
	if v, ok := cfg["rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Rows = parsed
		}
	}
	if v, ok := cfg["rule"]; ok && v != "" {
		c.Rule = v
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["history"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.HistoryEnabled = parsed
		}
	}
	if v, ok := cfg["history_size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.HistorySize = parsed
		}
	}
	if v, ok := cfg["fps"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.TargetFPS = parsed
		}
	}
	return c
}

// Bind registers the config fields on the provided flag set.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Cols, "cols", c.Cols, "viewport width in cells")
	fs.IntVar(&c.Rows, "rows", c.Rows, "viewport height in cells")
	fs.StringVar(&c.Rule, "rule", c.Rule, "B/S rule string")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for randomize")
	fs.BoolVar(&c.HistoryEnabled, "history", c.HistoryEnabled, "enable the undo ring")
	fs.IntVar(&c.HistorySize, "history-size", c.HistorySize, "undo ring capacity (5-100)")
	fs.Float64Var(&c.TargetFPS, "fps", c.TargetFPS, "target generations per second (0-60]")
}
