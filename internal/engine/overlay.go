package engine

import "chunklife/internal/grid"

const (
	// HeatmapBoost is added to a cell's activity counter on every state
	// flip, saturating at 255.
	HeatmapBoost = 5
	// HeatmapDecayInterval is the step period of the decay pass.
	HeatmapDecayInterval = 10

	maxOverlayByte = 255
)

// advanceAges builds the age store for the new generation: every live cell
// carries its previous age plus one, saturating at 255. Dead cells carry no
// byte, so the age byte is non-zero exactly when the cell is live.
func advanceAges(old *grid.ByteStore, cur *grid.Store) *grid.ByteStore {
	next := grid.NewByteStore()
	cur.Each(func(k grid.Key, c *grid.Chunk) {
		prev := old.Tile(k)
		tile := new(grid.ByteChunk)
		for ly := 0; ly < grid.ChunkSize; ly++ {
			row := c[ly]
			if row == 0 {
				continue
			}
			base := ly * grid.ChunkSize
			for lx := 0; lx < grid.ChunkSize; lx++ {
				if row&(1<<uint(lx)) == 0 {
					continue
				}
				age := uint8(1)
				if prev != nil && prev[base+lx] < maxOverlayByte {
					age = prev[base+lx] + 1
				} else if prev != nil {
					age = maxOverlayByte
				}
				tile[base+lx] = age
			}
		}
		next.Put(k, tile)
	})
	return next
}

// seedAges assigns age 1 to every currently live cell; used when age
// tracking is switched on mid-run.
func seedAges(cur *grid.Store) *grid.ByteStore {
	ages := grid.NewByteStore()
	cur.Each(func(k grid.Key, c *grid.Chunk) {
		tile := new(grid.ByteChunk)
		for ly := 0; ly < grid.ChunkSize; ly++ {
			row := c[ly]
			if row == 0 {
				continue
			}
			base := ly * grid.ChunkSize
			for lx := 0; lx < grid.ChunkSize; lx++ {
				if row&(1<<uint(lx)) != 0 {
					tile[base+lx] = 1
				}
			}
		}
		ages.Put(k, tile)
	})
	return ages
}

// bumpHeat adds the boost to every cell whose state flipped between prev
// and cur, saturating at 255. Keys are drawn from both stores so births
// into fresh chunks and deaths of vanished chunks are both counted.
func bumpHeat(heat *grid.ByteStore, prev, cur *grid.Store) {
	keys := make(map[grid.Key]struct{}, prev.Len()+cur.Len())
	prev.Each(func(k grid.Key, _ *grid.Chunk) { keys[k] = struct{}{} })
	cur.Each(func(k grid.Key, _ *grid.Chunk) { keys[k] = struct{}{} })

	for k := range keys {
		oc, nc := prev.Chunk(k), cur.Chunk(k)
		tile := heat.Tile(k)
		for ly := 0; ly < grid.ChunkSize; ly++ {
			var ow, nw uint32
			if oc != nil {
				ow = oc[ly]
			}
			if nc != nil {
				nw = nc[ly]
			}
			flips := ow ^ nw
			if flips == 0 {
				continue
			}
			if tile == nil {
				tile = new(grid.ByteChunk)
			}
			base := ly * grid.ChunkSize
			for lx := 0; lx < grid.ChunkSize; lx++ {
				if flips&(1<<uint(lx)) == 0 {
					continue
				}
				v := int(tile[base+lx]) + HeatmapBoost
				if v > maxOverlayByte {
					v = maxOverlayByte
				}
				tile[base+lx] = uint8(v)
			}
		}
		if tile != nil {
			heat.Put(k, tile)
		}
	}
}

// decayHeat subtracts one from every positive counter; tiles that reach
// all-zero are dropped.
func decayHeat(heat *grid.ByteStore) {
	var dead []grid.Key
	heat.Each(func(k grid.Key, tile *grid.ByteChunk) {
		any := false
		for i := range tile {
			if tile[i] > 0 {
				tile[i]--
			}
			if tile[i] > 0 {
				any = true
			}
		}
		if !any {
			dead = append(dead, k)
		}
	})
	for _, k := range dead {
		heat.Delete(k)
	}
}
