package engine

import "testing"

func TestFromMapOverrides(t *testing.T) {
	cfg := FromMap(map[string]string{
		"cols":         "200",
		"rows":         "150",
		"rule":         "B36/S23",
		"seed":         "77",
		"history":      "false",
		"history_size": "40",
		"fps":          "2.5",
	})
	if cfg.Cols != 200 || cfg.Rows != 150 {
		t.Fatalf("dims = %dx%d", cfg.Cols, cfg.Rows)
	}
	if cfg.Rule != "B36/S23" {
		t.Fatalf("rule = %q", cfg.Rule)
	}
	if cfg.Seed != 77 {
		t.Fatalf("seed = %d", cfg.Seed)
	}
	if cfg.HistoryEnabled {
		t.Fatal("history override lost")
	}
	if cfg.HistorySize != 40 {
		t.Fatalf("history size = %d", cfg.HistorySize)
	}
	if cfg.TargetFPS != 2.5 {
		t.Fatalf("fps = %v", cfg.TargetFPS)
	}

	// The result must build a working engine.
	e := New(cfg)
	if e.Rule().String() != "B36/S23" {
		t.Fatalf("engine rule = %s", e.Rule())
	}
}

func TestFromMapIgnoresBadValues(t *testing.T) {
	def := DefaultConfig()
	cfg := FromMap(map[string]string{
		"cols":    "-5",
		"rows":    "zero",
		"seed":    "not-a-number",
		"history": "maybe",
		"fps":     "-1",
		"bogus":   "1",
	})
	if cfg != def {
		t.Fatalf("bad values must fall back to defaults: %+v", cfg)
	}

	if FromMap(nil) != def {
		t.Fatal("nil map must yield the defaults")
	}
}
