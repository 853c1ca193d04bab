// Package engine owns the simulation state: the chunk store, the rule, the
// overlays, the history ring and the viewport, plus the controller that
// drives them from presenter messages.
package engine

import (
	"chunklife/internal/grid"
	"chunklife/internal/rule"
)

// zeroChunk stands in for absent neighbors during a step. Read-only.
var zeroChunk grid.Chunk

// neighborhood is the 3×3 group of chunks surrounding a center chunk,
// missing chunks replaced by the shared zero tile.
type neighborhood struct {
	nw, n, ne *grid.Chunk
	w, c, e   *grid.Chunk
	sw, s, se *grid.Chunk
}

func fetchNeighborhood(s *grid.Store, cx, cy int) neighborhood {
	at := func(dx, dy int) *grid.Chunk {
		if c := s.Chunk(grid.MakeKey(cx+dx, cy+dy)); c != nil {
			return c
		}
		return &zeroChunk
	}
	return neighborhood{
		nw: at(-1, -1), n: at(0, -1), ne: at(1, -1),
		w: at(-1, 0), c: at(0, 0), e: at(1, 0),
		sw: at(-1, 1), s: at(0, 1), se: at(1, 1),
	}
}

// majority3 returns the per-bit majority of three words.
func majority3(a, b, c uint32) uint32 {
	return (a & b) | (b & c) | (a & c)
}

// countLanes folds the eight neighbor vectors through a carry-save adder
// tree, producing the four bit-planes of the per-lane neighbor count.
func countLanes(n, s, w, e, nw, ne, sw, se uint32) (t0, t1, t2, t3 uint32) {
	s0, c0 := n^s, n&s
	s1, c1 := w^e, w&e
	s2, c2 := nw^sw, nw&sw
	s3, c3 := ne^se, ne&se

	s01, c01 := s0^s1, s0&s1
	s23, c23 := s2^s3, s2&s3

	t0 = s01 ^ s23
	carryS := s01 & s23

	sumA := c01 ^ c23 ^ carryS
	carryA := majority3(c01, c23, carryS)

	c01x, c01a := c0^c1, c0&c1
	c23x, c23a := c2^c3, c2&c3
	sumB := c01x ^ c23x
	carryB := c01x & c23x

	t1 = sumA ^ sumB
	carryAB := sumA & sumB

	// Five weight-4 bits remain: carryA, carryB, carryAB, c01a, c23a. Two
	// chained full adders fold them into t2 and the weight-8 carries. Both
	// weight-8 carries cannot be set at once (the lane count tops out at
	// 8), so an OR finishes t3.
	s1x := carryA ^ carryB ^ carryAB
	c1x := majority3(carryA, carryB, carryAB)
	t2 = s1x ^ c01a ^ c23a
	c2x := majority3(s1x, c01a, c23a)
	t3 = c1x | c2x
	return
}

// ruleMasks precomputes, for one row of lane counts, the birth and survival
// masks by OR-combining the nine decoded count lanes.
func ruleMasks(r *rule.Rule, t0, t1, t2, t3 uint32) (birth, survival uint32) {
	lanes := [9]uint32{
		^t3 & ^t2 & ^t1 & ^t0,
		^t3 & ^t2 & ^t1 & t0,
		^t3 & ^t2 & t1 & ^t0,
		^t3 & ^t2 & t1 & t0,
		^t3 & t2 & ^t1 & ^t0,
		^t3 & t2 & ^t1 & t0,
		^t3 & t2 & t1 & ^t0,
		^t3 & t2 & t1 & t0,
		t3 & ^t2 & ^t1 & ^t0,
	}
	for k := 0; k <= 8; k++ {
		if r.Birth[k] {
			birth |= lanes[k]
		}
		if r.Survival[k] {
			survival |= lanes[k]
		}
	}
	return
}

// stepChunk computes the next generation of the center chunk of nb. The
// second return is false when the result is empty.
func stepChunk(nb neighborhood, r *rule.Rule) (grid.Chunk, bool) {
	var out grid.Chunk
	any := uint32(0)
	for y := 0; y < grid.ChunkSize; y++ {
		center := nb.c[y]

		// Rows above and below, with their west/east sources for the
		// diagonal vectors; chunk edges fall through to the adjacent tile.
		var up, upW, upE uint32
		if y > 0 {
			up, upW, upE = nb.c[y-1], nb.w[y-1], nb.e[y-1]
		} else {
			up, upW, upE = nb.n[grid.ChunkSize-1], nb.nw[grid.ChunkSize-1], nb.ne[grid.ChunkSize-1]
		}
		var down, downW, downE uint32
		if y < grid.ChunkSize-1 {
			down, downW, downE = nb.c[y+1], nb.w[y+1], nb.e[y+1]
		} else {
			down, downW, downE = nb.s[0], nb.sw[0], nb.se[0]
		}

		// Align the eight neighbor vectors with the center row: a west
		// neighbor sits one lane lower, so shifting left by one moves it
		// into place, pulling bit 31 of the west tile into lane 0.
		wv := center<<1 | nb.w[y]>>31
		ev := center>>1 | nb.e[y]<<31
		nwv := up<<1 | upW>>31
		nev := up>>1 | upE<<31
		swv := down<<1 | downW>>31
		sev := down>>1 | downE<<31

		t0, t1, t2, t3 := countLanes(up, down, wv, ev, nwv, nev, swv, sev)
		birth, survival := ruleMasks(r, t0, t1, t2, t3)

		next := (^center & birth) | (center & survival)
		out[y] = next
		any |= next
	}
	return out, any != 0
}

// nextStore computes one generation over the whole plane. The work set is
// the 3×3 chunk dilation of every live chunk, the minimal superset of
// chunks that can hold a live cell next generation. The input store is
// read-only; the result contains only non-empty chunks.
func nextStore(cur *grid.Store, r *rule.Rule) *grid.Store {
	work := make(map[grid.Key]struct{}, cur.Len()*2)
	cur.Each(func(k grid.Key, _ *grid.Chunk) {
		cx, cy := k.Coords()
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				work[grid.MakeKey(cx+dx, cy+dy)] = struct{}{}
			}
		}
	})

	next := grid.NewStore()
	for k := range work {
		cx, cy := k.Coords()
		nb := fetchNeighborhood(cur, cx, cy)
		if out, ok := stepChunk(nb, r); ok {
			next.Put(k, &out)
		}
	}
	return next
}
