package pattern

import "chunklife/internal/grid"

// LoadPacked writes a w×h flat packed bitmap into dst with the pattern
// origin at global (0, 0). data is row-major with stride ⌈w/32⌉ words; bit
// c%32 of word r·stride+c/32 is the cell at (c, r). Set bits are written
// one cell at a time and zero words are skipped, so empty regions never
// allocate chunks.
func LoadPacked(dst *grid.Store, w, h int, data []uint32) {
	if w <= 0 || h <= 0 {
		return
	}
	stride := (w + 31) / 32
	for r := 0; r < h; r++ {
		for wi := 0; wi < stride; wi++ {
			idx := r*stride + wi
			if idx >= len(data) {
				return
			}
			word := data[idx]
			if word == 0 {
				continue
			}
			base := wi * 32
			limit := w - base
			if limit > 32 {
				limit = 32
			}
			for b := 0; b < limit; b++ {
				if word&(1<<uint(b)) != 0 {
					dst.SetCell(base+b, r, 1)
				}
			}
		}
	}
}

// CellsToStore writes a live-cell list into dst translated by (dx, dy).
func CellsToStore(dst *grid.Store, cells []Cell, dx, dy int) {
	for _, c := range cells {
		dst.SetCell(c.X+dx, c.Y+dy, 1)
	}
}
