package engine

import "chunklife/internal/grid"

// Viewport is the window the presenter wants rendered, in cells.
type Viewport struct {
	X, Y int
	W, H int
}

// Stride returns the number of output words per bitmap row.
func (v Viewport) Stride() int { return (v.W + 31) / 32 }

// projectBitmap renders the viewport rectangle of the store into a fresh
// packed row-major bitmap of Stride()·H words. Cell (dx, dy) of the
// viewport lands in bit dx%32 of word dy·stride + dx/32.
func projectBitmap(s *grid.Store, v Viewport) []uint32 {
	if v.W <= 0 || v.H <= 0 {
		return []uint32{}
	}
	stride := v.Stride()
	out := make([]uint32, stride*v.H)

	cx0, _ := grid.Split(v.X)
	cx1, _ := grid.Split(v.X + v.W - 1)
	cy0, _ := grid.Split(v.Y)
	cy1, _ := grid.Split(v.Y + v.H - 1)

	for cy := cy0; cy <= cy1; cy++ {
		for cx := cx0; cx <= cx1; cx++ {
			c := s.Chunk(grid.MakeKey(cx, cy))
			if c == nil {
				continue
			}
			blitChunk(out, stride, c, cx, cy, v)
		}
	}
	return out
}

// blitChunk ORs the intersection of one chunk with the viewport into the
// output bitmap, stitching runs that straddle a destination word boundary.
func blitChunk(out []uint32, stride int, c *grid.Chunk, cx, cy int, v Viewport) {
	baseX := cx * grid.ChunkSize
	baseY := cy * grid.ChunkSize

	gx0 := max(baseX, v.X)
	gx1 := min(baseX+grid.ChunkSize, v.X+v.W)
	gy0 := max(baseY, v.Y)
	gy1 := min(baseY+grid.ChunkSize, v.Y+v.H)
	if gx0 >= gx1 || gy0 >= gy1 {
		return
	}

	srcBitStart := gx0 - baseX
	bitCount := gx1 - gx0
	destX := gx0 - v.X
	destWord := destX / 32
	destBit := destX % 32

	var mask uint32
	if bitCount >= 32 {
		mask = ^uint32(0)
	} else {
		mask = 1<<uint(bitCount) - 1
	}

	for gy := gy0; gy < gy1; gy++ {
		row := c[gy-baseY]
		if row == 0 {
			continue
		}
		chunkBits := row >> uint(srcBitStart) & mask
		if chunkBits == 0 {
			continue
		}
		destRow := (gy - v.Y) * stride
		out[destRow+destWord] |= chunkBits << uint(destBit)
		if destBit+bitCount > 32 {
			out[destRow+destWord+1] |= chunkBits >> uint(32-destBit)
		}
	}
}

// projectBytes renders the viewport rectangle of an overlay byte store into
// a fresh W·H byte array, one byte per cell.
func projectBytes(s *grid.ByteStore, v Viewport) []uint8 {
	if v.W <= 0 || v.H <= 0 {
		return []uint8{}
	}
	out := make([]uint8, v.W*v.H)

	cx0, _ := grid.Split(v.X)
	cx1, _ := grid.Split(v.X + v.W - 1)
	cy0, _ := grid.Split(v.Y)
	cy1, _ := grid.Split(v.Y + v.H - 1)

	for cy := cy0; cy <= cy1; cy++ {
		for cx := cx0; cx <= cx1; cx++ {
			tile := s.Tile(grid.MakeKey(cx, cy))
			if tile == nil {
				continue
			}
			baseX := cx * grid.ChunkSize
			baseY := cy * grid.ChunkSize
			gx0 := max(baseX, v.X)
			gx1 := min(baseX+grid.ChunkSize, v.X+v.W)
			gy0 := max(baseY, v.Y)
			gy1 := min(baseY+grid.ChunkSize, v.Y+v.H)
			for gy := gy0; gy < gy1; gy++ {
				srcBase := (gy - baseY) * grid.ChunkSize
				dstBase := (gy-v.Y)*v.W - v.X
				for gx := gx0; gx < gx1; gx++ {
					out[dstBase+gx] = tile[srcBase+gx-baseX]
				}
			}
		}
	}
	return out
}
