package grid

import "testing"

func TestSplitNegativeCoordinates(t *testing.T) {
	cases := []struct {
		v, chunk, local int
	}{
		{0, 0, 0},
		{31, 0, 31},
		{32, 1, 0},
		{-1, -1, 31},
		{-32, -1, 0},
		{-33, -2, 31},
		{100, 3, 4},
	}
	for _, c := range cases {
		chunk, local := Split(c.v)
		if chunk != c.chunk || local != c.local {
			t.Fatalf("Split(%d) = (%d, %d), want (%d, %d)", c.v, chunk, local, c.chunk, c.local)
		}
	}
}

func TestKeyRoundTrip(t *testing.T) {
	coords := [][2]int{{0, 0}, {1, -1}, {-1, 1}, {1 << 20, -(1 << 20)}, {-3, -7}}
	for _, c := range coords {
		cx, cy := MakeKey(c[0], c[1]).Coords()
		if cx != c[0] || cy != c[1] {
			t.Fatalf("key round trip (%d,%d) = (%d,%d)", c[0], c[1], cx, cy)
		}
	}
}

func TestSetCellCreatesAndDeletesChunks(t *testing.T) {
	s := NewStore()

	s.SetCell(100, 100, 1)
	if s.Len() != 1 {
		t.Fatalf("expected 1 chunk after live write, got %d", s.Len())
	}
	if s.Cell(100, 100) != 1 {
		t.Fatal("cell (100,100) should be live")
	}
	if s.Population() != 1 {
		t.Fatalf("population = %d, want 1", s.Population())
	}

	s.SetCell(100, 100, 0)
	if s.Len() != 0 {
		t.Fatalf("expected chunk GC after clearing last bit, got %d chunks", s.Len())
	}
	if s.Population() != 0 {
		t.Fatalf("population = %d, want 0", s.Population())
	}
}

func TestDeadWriteDoesNotAllocate(t *testing.T) {
	s := NewStore()
	s.SetCell(-500, 321, 0)
	if s.Len() != 0 {
		t.Fatal("dead write to absent chunk must not allocate")
	}
}

func TestNegativeCoordinateCells(t *testing.T) {
	s := NewStore()
	s.SetCell(-1, -1, 1)
	s.SetCell(-32, -32, 1)
	s.SetCell(-33, -33, 1)

	if s.Cell(-1, -1) != 1 || s.Cell(-32, -32) != 1 || s.Cell(-33, -33) != 1 {
		t.Fatal("negative-coordinate cells lost")
	}
	if s.Cell(-2, -1) != 0 {
		t.Fatal("unexpected live neighbor")
	}
	// (-1,-1) and (-32,-32) share chunk (-1,-1); (-33,-33) lives in (-2,-2).
	if s.Len() != 2 {
		t.Fatalf("expected 2 chunks, got %d", s.Len())
	}
}

func TestPopulationMatchesPopcounts(t *testing.T) {
	s := NewStore()
	coords := [][2]int{{0, 0}, {0, 0}, {5, 7}, {-9, 3}, {31, 31}, {32, 0}}
	for _, c := range coords {
		s.SetCell(c[0], c[1], 1)
	}

	want := 0
	s.Each(func(_ Key, c *Chunk) {
		if c.Empty() {
			t.Fatal("store retained an empty chunk")
		}
		want += c.Pop()
	})
	if s.Population() != want {
		t.Fatalf("population %d does not match popcount sum %d", s.Population(), want)
	}
	if s.Population() != 5 {
		t.Fatalf("population = %d, want 5 (one duplicate write)", s.Population())
	}
}

func TestBoundsCoversAllChunks(t *testing.T) {
	s := NewStore()
	if _, ok := s.Bounds(); ok {
		t.Fatal("empty store must report no bounds")
	}

	s.SetCell(0, 0, 1)
	s.SetCell(100, -70, 1)
	b, ok := s.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	if b.MinCx != 0 || b.MaxCx != 3 || b.MinCy != -3 || b.MaxCy != 0 {
		t.Fatalf("bounds = %+v", b)
	}

	x, y, w, h := b.CellRect()
	if x != 0 || y != -96 || w != 128 || h != 128 {
		t.Fatalf("cell rect = (%d,%d,%d,%d)", x, y, w, h)
	}

	// Deleting the far chunk must shrink the box on recompute.
	s.SetCell(100, -70, 0)
	b, ok = s.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	if b.MinCx != 0 || b.MaxCx != 0 || b.MinCy != 0 || b.MaxCy != 0 {
		t.Fatalf("bounds after delete = %+v", b)
	}
}

func TestPutRejectsEmptyChunks(t *testing.T) {
	s := NewStore()
	key := MakeKey(2, 3)

	c := new(Chunk)
	c.Set(4, 4)
	s.Put(key, c)
	if s.Len() != 1 || s.Population() != 1 {
		t.Fatalf("len=%d pop=%d after put", s.Len(), s.Population())
	}

	s.Put(key, new(Chunk))
	if s.Len() != 0 || s.Population() != 0 {
		t.Fatal("putting an empty chunk must delete the key")
	}
}

func TestByteStoreDropsZeroTiles(t *testing.T) {
	s := NewByteStore()
	key := MakeKey(0, 0)

	tile := new(ByteChunk)
	tile[5] = 9
	s.Put(key, tile)
	if s.Len() != 1 {
		t.Fatal("tile not stored")
	}
	if s.Byte(5, 0) != 9 {
		t.Fatalf("byte = %d, want 9", s.Byte(5, 0))
	}

	s.Put(key, new(ByteChunk))
	if s.Len() != 0 {
		t.Fatal("all-zero tile must not be retained")
	}
}
