package engine

import "chunklife/internal/grid"

// chunkPair is one side-by-side delta entry; a nil side means the chunk did
// not exist on that side of the step.
type chunkPair struct {
	old, new *grid.Chunk
}

// historyEntry captures everything needed to rewind one generation.
type historyEntry struct {
	preGeneration int64
	prePopulation int
	delta         map[grid.Key]chunkPair
}

// historyRing is a bounded FIFO of per-generation deltas. Newest is last;
// reverse pops from the back, overflow drops from the front.
type historyRing struct {
	entries  []historyEntry
	capacity int
}

const (
	// HistoryMinSize and HistoryMaxSize bound the configurable ring
	// capacity; HistoryDefaultSize is used when the presenter never asks.
	HistoryMinSize     = 5
	HistoryMaxSize     = 100
	HistoryDefaultSize = 20
)

func clampHistorySize(n int) int {
	if n < HistoryMinSize {
		return HistoryMinSize
	}
	if n > HistoryMaxSize {
		return HistoryMaxSize
	}
	return n
}

func newHistoryRing(capacity int) *historyRing {
	return &historyRing{capacity: clampHistorySize(capacity)}
}

func (h *historyRing) len() int { return len(h.entries) }

// push appends an entry, discarding the oldest when over capacity.
func (h *historyRing) push(e historyEntry) {
	h.entries = append(h.entries, e)
	if len(h.entries) > h.capacity {
		n := copy(h.entries, h.entries[len(h.entries)-h.capacity:])
		h.entries = h.entries[:n]
	}
}

// pop removes and returns the newest entry.
func (h *historyRing) pop() (historyEntry, bool) {
	if len(h.entries) == 0 {
		return historyEntry{}, false
	}
	e := h.entries[len(h.entries)-1]
	h.entries[len(h.entries)-1] = historyEntry{}
	h.entries = h.entries[:len(h.entries)-1]
	return e, true
}

// resize adjusts the capacity, discarding oldest entries as needed.
func (h *historyRing) resize(capacity int) {
	h.capacity = clampHistorySize(capacity)
	if len(h.entries) > h.capacity {
		n := copy(h.entries, h.entries[len(h.entries)-h.capacity:])
		h.entries = h.entries[:n]
	}
}

// buildDelta compares two stores and returns the chunk-keyed symmetric
// difference, each side cloned so the entry is detached from live state.
// Returns nil when nothing changed.
func buildDelta(old, new *grid.Store) map[grid.Key]chunkPair {
	delta := make(map[grid.Key]chunkPair)
	old.Each(func(k grid.Key, oc *grid.Chunk) {
		nc := new.Chunk(k)
		if nc != nil && *nc == *oc {
			return
		}
		pair := chunkPair{old: oc.Clone()}
		if nc != nil {
			pair.new = nc.Clone()
		}
		delta[k] = pair
	})
	new.Each(func(k grid.Key, nc *grid.Chunk) {
		if old.Chunk(k) != nil {
			return
		}
		delta[k] = chunkPair{new: nc.Clone()}
	})
	if len(delta) == 0 {
		return nil
	}
	return delta
}

// applyReverse installs the old side of every delta pair into the store.
func applyReverse(s *grid.Store, delta map[grid.Key]chunkPair) {
	for k, pair := range delta {
		if pair.old != nil {
			s.Put(k, pair.old.Clone())
		} else {
			s.Delete(k)
		}
	}
	s.MarkBoundsDirty()
}
