package engine

import (
	"testing"

	"chunklife/internal/grid"
)

func TestAgeSeedAndAdvance(t *testing.T) {
	cfg := DefaultConfig()
	e := New(cfg)
	e.SetViewportSize(32, 32)
	// Block: every cell survives forever.
	for _, c := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		e.setCellGlobal(c[0], c[1], 1)
	}

	e.SetAgeTracking(true)
	if e.AgeAt(0, 0) != 1 {
		t.Fatalf("seeded age = %d, want 1", e.AgeAt(0, 0))
	}

	e.Step()
	e.Step()
	if e.AgeAt(1, 1) != 3 {
		t.Fatalf("age after two steps = %d, want 3", e.AgeAt(1, 1))
	}
}

func TestAgeZeroIffDead(t *testing.T) {
	cfg := DefaultConfig()
	e := New(cfg)
	e.SetViewportSize(64, 64)
	e.setCellGlobal(0, 0, 1)
	e.setCellGlobal(1, 0, 1)
	e.setCellGlobal(2, 0, 1)
	e.SetAgeTracking(true)

	for i := 0; i < 3; i++ {
		e.Step()
		// Every live cell has a positive age; every age byte maps to a live cell.
		e.store.Each(func(k grid.Key, c *grid.Chunk) {
			cx, cy := k.Coords()
			for ly := 0; ly < grid.ChunkSize; ly++ {
				for lx := 0; lx < grid.ChunkSize; lx++ {
					x := cx*grid.ChunkSize + lx
					y := cy*grid.ChunkSize + ly
					live := c.Get(lx, ly) != 0
					age := e.AgeAt(x, y)
					if live && age == 0 {
						t.Fatalf("live cell (%d,%d) has age 0", x, y)
					}
					if !live && age != 0 {
						t.Fatalf("dead cell (%d,%d) has age %d", x, y, age)
					}
				}
			}
		})
		e.ages.Each(func(k grid.Key, tile *grid.ByteChunk) {
			cx, cy := k.Coords()
			for i, b := range tile {
				if b == 0 {
					continue
				}
				x := cx*grid.ChunkSize + i%grid.ChunkSize
				y := cy*grid.ChunkSize + i/grid.ChunkSize
				if e.CellAt(x, y) == 0 {
					t.Fatalf("age byte at dead cell (%d,%d)", x, y)
				}
			}
		})
	}
}

func TestAgeSaturates(t *testing.T) {
	old := grid.NewByteStore()
	key := grid.MakeKey(0, 0)
	tile := new(grid.ByteChunk)
	tile[0] = 255
	old.Put(key, tile)

	cur := grid.NewStore()
	cur.SetCell(0, 0, 1)

	next := advanceAges(old, cur)
	if next.Byte(0, 0) != 255 {
		t.Fatalf("age = %d, want saturation at 255", next.Byte(0, 0))
	}
}

func TestAgeToggleOffDiscards(t *testing.T) {
	cfg := DefaultConfig()
	e := New(cfg)
	e.setCellGlobal(0, 0, 1)
	e.SetAgeTracking(true)
	e.SetAgeTracking(false)
	if e.ages.Len() != 0 {
		t.Fatal("toggle-off must discard the age store")
	}
}

func TestDirectEditKeepsAgeInSync(t *testing.T) {
	cfg := DefaultConfig()
	e := New(cfg)
	e.SetViewportSize(32, 32)
	e.SetAgeTracking(true)

	e.SetCell(5, 1) // viewport (5,0)
	if e.AgeAt(5, 0) != 1 {
		t.Fatalf("edited cell age = %d, want 1", e.AgeAt(5, 0))
	}
	e.SetCell(5, 0)
	if e.AgeAt(5, 0) != 0 {
		t.Fatalf("cleared cell age = %d, want 0", e.AgeAt(5, 0))
	}
	if e.ages.Len() != 0 {
		t.Fatal("all-zero age tile must be dropped")
	}
}

func TestHeatmapBoostOnFlips(t *testing.T) {
	cfg := DefaultConfig()
	e := New(cfg)
	e.SetViewportSize(64, 64)
	e.setCellGlobal(0, 0, 1)
	e.setCellGlobal(1, 0, 1)
	e.setCellGlobal(2, 0, 1)
	e.SetHeatmap(true)

	e.Step()
	// The blinker flip turns off (0,0) and (2,0) and turns on (1,-1) and
	// (1,1); each flipped cell gets one boost.
	for _, c := range [][2]int{{0, 0}, {2, 0}, {1, -1}, {1, 1}} {
		if got := e.HeatAt(c[0], c[1]); got != HeatmapBoost {
			t.Fatalf("heat at %v = %d, want %d", c, got, HeatmapBoost)
		}
	}
	// The center cell never flips.
	if e.HeatAt(1, 0) != 0 {
		t.Fatalf("heat at stable cell = %d, want 0", e.HeatAt(1, 0))
	}
}

func TestHeatmapDecay(t *testing.T) {
	cfg := DefaultConfig()
	e := New(cfg)
	e.SetViewportSize(64, 64)
	e.setCellGlobal(0, 0, 1)
	e.setCellGlobal(1, 0, 1)
	e.setCellGlobal(2, 0, 1)
	e.SetHeatmap(true)

	for i := 0; i < HeatmapDecayInterval; i++ {
		e.Step()
	}
	// A blinker flips the same four cells every step: ten boosts, then the
	// decay pass fires once.
	want := uint8(10*HeatmapBoost - 1)
	if got := e.HeatAt(0, 0); got != want {
		t.Fatalf("heat after decay = %d, want %d", got, want)
	}
}

func TestHeatmapSaturatesAndDropsZeroTiles(t *testing.T) {
	heat := grid.NewByteStore()
	a := grid.NewStore()
	b := grid.NewStore()
	a.SetCell(0, 0, 1) // flip at (0,0) every bump

	for i := 0; i < 60; i++ {
		bumpHeat(heat, a, b)
	}
	if heat.Byte(0, 0) != 255 {
		t.Fatalf("heat = %d, want 255", heat.Byte(0, 0))
	}

	for i := 0; i < 255; i++ {
		decayHeat(heat)
	}
	if heat.Len() != 0 {
		t.Fatal("fully decayed tile must be deleted")
	}
}
