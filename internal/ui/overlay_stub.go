//go:build !ebiten

package ui

import "chunklife/internal/engine"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(int, int, int) *Overlay { return &Overlay{} }

// Resize is a no-op in headless builds.
func (o *Overlay) Resize(int, int) {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any, engine.Update) {}
