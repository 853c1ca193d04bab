//go:build !ebiten

package ui

import "chunklife/internal/engine"

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(int) *HUD { return nil }

// Width reports zero in the headless build.
func (h *HUD) Width() int { return 0 }

// Update is a no-op in the headless build.
func (h *HUD) Update(engine.Update) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
