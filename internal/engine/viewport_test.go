package engine

import (
	"testing"

	"chunklife/internal/grid"
)

func bitAt(bitmap []uint32, v Viewport, dx, dy int) uint32 {
	word := bitmap[dy*v.Stride()+dx/32]
	return (word >> uint(dx%32)) & 1
}

func TestProjectAlignedViewport(t *testing.T) {
	s := grid.NewStore()
	s.SetCell(0, 0, 1)
	s.SetCell(31, 31, 1)
	s.SetCell(32, 0, 1)

	v := Viewport{X: 0, Y: 0, W: 64, H: 32}
	bm := projectBitmap(s, v)
	if len(bm) != 2*32 {
		t.Fatalf("bitmap length %d, want 64", len(bm))
	}
	if bitAt(bm, v, 0, 0) != 1 || bitAt(bm, v, 31, 31) != 1 || bitAt(bm, v, 32, 0) != 1 {
		t.Fatal("expected cells missing from projection")
	}
	if bitAt(bm, v, 1, 0) != 0 {
		t.Fatal("stray bit in projection")
	}
}

func TestProjectUnalignedStitching(t *testing.T) {
	s := grid.NewStore()
	// A horizontal run crossing the chunk seam at x=32.
	for x := 28; x < 36; x++ {
		s.SetCell(x, 5, 1)
	}

	// Viewport origin misaligned on both axes so every source run is
	// shifted and split across destination words.
	v := Viewport{X: 27, Y: 3, W: 40, H: 8}
	bm := projectBitmap(s, v)
	for dx := 0; dx < v.W; dx++ {
		gx := v.X + dx
		want := uint32(0)
		if gx >= 28 && gx < 36 {
			want = 1
		}
		if got := bitAt(bm, v, dx, 2); got != want {
			t.Fatalf("cell (%d,5): got %d, want %d", gx, got, want)
		}
	}
	// Other rows stay empty.
	for dy := 0; dy < v.H; dy++ {
		if dy == 2 {
			continue
		}
		for dx := 0; dx < v.W; dx++ {
			if bitAt(bm, v, dx, dy) != 0 {
				t.Fatalf("stray bit at (%d,%d)", dx, dy)
			}
		}
	}
}

func TestProjectNegativeOrigin(t *testing.T) {
	s := grid.NewStore()
	s.SetCell(-1, -1, 1)
	s.SetCell(0, 0, 1)

	v := Viewport{X: -8, Y: -8, W: 16, H: 16}
	bm := projectBitmap(s, v)
	if bitAt(bm, v, 7, 7) != 1 {
		t.Fatal("cell (-1,-1) missing")
	}
	if bitAt(bm, v, 8, 8) != 1 {
		t.Fatal("cell (0,0) missing")
	}
}

func TestProjectEmptyViewport(t *testing.T) {
	s := grid.NewStore()
	s.SetCell(0, 0, 1)
	if got := projectBitmap(s, Viewport{W: 0, H: 10}); len(got) != 0 {
		t.Fatalf("zero-width viewport produced %d words", len(got))
	}
	if got := projectBitmap(s, Viewport{W: 10, H: 0}); len(got) != 0 {
		t.Fatalf("zero-height viewport produced %d words", len(got))
	}
}

func TestProjectBytes(t *testing.T) {
	b := grid.NewByteStore()
	tile := new(grid.ByteChunk)
	tile[0] = 7                                    // local (0,0) of chunk (0,0)
	tile[3*grid.ChunkSize+2] = 9                   // local (2,3)
	b.Put(grid.MakeKey(0, 0), tile)
	tile2 := new(grid.ByteChunk)
	tile2[grid.ChunkSize-1] = 5 // local (31,0) of chunk (-1,0) → global (-1,0)
	b.Put(grid.MakeKey(-1, 0), tile2)

	v := Viewport{X: -2, Y: -1, W: 8, H: 6}
	out := projectBytes(b, v)
	if len(out) != v.W*v.H {
		t.Fatalf("length %d, want %d", len(out), v.W*v.H)
	}
	at := func(gx, gy int) uint8 { return out[(gy-v.Y)*v.W+(gx-v.X)] }
	if at(0, 0) != 7 {
		t.Fatalf("byte at (0,0) = %d, want 7", at(0, 0))
	}
	if at(2, 3) != 9 {
		t.Fatalf("byte at (2,3) = %d, want 9", at(2, 3))
	}
	if at(-1, 0) != 5 {
		t.Fatalf("byte at (-1,0) = %d, want 5", at(-1, 0))
	}
	if at(1, 1) != 0 {
		t.Fatalf("stray byte at (1,1) = %d", at(1, 1))
	}
}

func TestProjectionMatchesCellReads(t *testing.T) {
	s := grid.NewStore()
	coords := [][2]int{{-40, -40}, {-1, -1}, {0, 0}, {15, 9}, {31, 0}, {32, 0}, {63, 63}, {64, 10}}
	for _, c := range coords {
		s.SetCell(c[0], c[1], 1)
	}
	v := Viewport{X: -45, Y: -45, W: 120, H: 115}
	bm := projectBitmap(s, v)
	for dy := 0; dy < v.H; dy++ {
		for dx := 0; dx < v.W; dx++ {
			if bitAt(bm, v, dx, dy) != s.Cell(v.X+dx, v.Y+dy) {
				t.Fatalf("mismatch at viewport (%d,%d)", dx, dy)
			}
		}
	}
}
