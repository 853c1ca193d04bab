package pattern

import (
	"testing"

	"github.com/pkg/errors"
)

func TestParseMacrocellLeafOnly(t *testing.T) {
	// Single 8×8 leaf: a block in the top-left corner.
	cells, err := ParseMacrocell("[M2] (golly 4.2)\n#R B3/S23\n**$**$")
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 4 {
		t.Fatalf("got %d cells, want 4", len(cells))
	}
	want := map[Cell]bool{{0, 0}: true, {1, 0}: true, {0, 1}: true, {1, 1}: true}
	for _, c := range cells {
		if !want[c] {
			t.Fatalf("unexpected cell %v", c)
		}
	}
}

func TestParseMacrocellInterior(t *testing.T) {
	// Node 1: leaf with one cell at local (0,0). Node 2: level-4 node
	// placing the leaf in the NW and SE quadrants.
	src := "[M2]\n*$\n4 1 0 0 1"
	cells, err := ParseMacrocell(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(cells))
	}
	want := map[Cell]bool{{0, 0}: true, {8, 8}: true}
	for _, c := range cells {
		if !want[c] {
			t.Fatalf("unexpected cell %v", c)
		}
	}
}

func TestParseMacrocellNormalizesOrigin(t *testing.T) {
	// Only the SE quadrant is populated; extraction must translate the
	// result back to a non-negative origin at (0,0).
	src := "*$\n4 0 0 0 1"
	cells, err := ParseMacrocell(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 1 || cells[0] != (Cell{0, 0}) {
		t.Fatalf("cells = %v, want [(0,0)]", cells)
	}
}

func TestParseMacrocellForwardReference(t *testing.T) {
	if _, err := ParseMacrocell("4 1 0 0 0"); !errors.Is(err, ErrInvalidMacrocell) {
		t.Fatalf("want ErrInvalidMacrocell for forward ref, got %v", err)
	}
	if _, err := ParseMacrocell("*$\n4 2 0 0 0"); !errors.Is(err, ErrInvalidMacrocell) {
		t.Fatalf("want ErrInvalidMacrocell for self ref, got %v", err)
	}
}

func TestParseMacrocellLevelMismatch(t *testing.T) {
	// A level-5 node referencing a leaf (level 3) directly is malformed.
	src := "*$\n5 1 0 0 0"
	if _, err := ParseMacrocell(src); !errors.Is(err, ErrInvalidMacrocell) {
		t.Fatalf("want ErrInvalidMacrocell, got %v", err)
	}
}

func TestParseMacrocellBadLeafChar(t *testing.T) {
	if _, err := ParseMacrocell("*x$"); !errors.Is(err, ErrInvalidMacrocell) {
		t.Fatalf("want ErrInvalidMacrocell, got %v", err)
	}
}

func TestParseMacrocellEmpty(t *testing.T) {
	cells, err := ParseMacrocell("[M2]\n# nothing here\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 0 {
		t.Fatalf("got %d cells, want 0", len(cells))
	}
}
