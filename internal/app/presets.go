package app

import "chunklife/internal/rule"

// presetString resolves a named rule preset to its rule string.
func presetString(name string) (string, bool) {
	rs, ok := rule.Presets()[name]
	return rs, ok
}
