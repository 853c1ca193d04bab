// Package pattern implements the interchange formats the engine speaks:
// RLE text, flat packed bitmaps, and Golly macrocell trees.
package pattern

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// maxRunLength caps a single RLE run count.
	maxRunLength = 100000
	// maxCells caps the total number of live cells a parse may produce.
	maxCells = 10000000
	// emitLineWidth is the column limit for emitted RLE lines.
	emitLineWidth = 70
)

// ErrPatternTooLarge reports an RLE or macrocell input that exceeds the
// run-length or total-cell caps.
var ErrPatternTooLarge = errors.New("pattern too large")

// Cell is a live-cell coordinate.
type Cell struct {
	X, Y int
}

// ParseRLE decodes an RLE text stream into the set of live-cell
// coordinates, origin at (0, 0). Metadata lines (leading '#' or "x =") are
// skipped; unknown characters inside the body are ignored.
func ParseRLE(src string) ([]Cell, error) {
	var body strings.Builder
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "x =") || strings.HasPrefix(trimmed, "x=") {
			continue
		}
		body.WriteString(trimmed)
	}

	var cells []Cell
	text := body.String()
	x, y := 0, 0
	run := 0
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch >= '0' && ch <= '9':
			run = run*10 + int(ch-'0')
			if run > maxRunLength {
				return nil, errors.Wrapf(ErrPatternTooLarge, "run length %d at pos %d", run, i)
			}
		case ch == 'b' || ch == 'B' || ch == '.':
			x += runOrOne(run)
			run = 0
		case ch == 'o' || ch == 'O' || ch == '*':
			n := runOrOne(run)
			if len(cells)+n > maxCells {
				return nil, errors.Wrap(ErrPatternTooLarge, "live cell cap exceeded")
			}
			for j := 0; j < n; j++ {
				cells = append(cells, Cell{X: x + j, Y: y})
			}
			x += n
			run = 0
		case ch == '$':
			y += runOrOne(run)
			x = 0
			run = 0
		case ch == '!':
			return cells, nil
		default:
			// Whitespace and anything else is ignored.
		}
	}
	return cells, nil
}

func runOrOne(run int) int {
	if run < 1 {
		return 1
	}
	return run
}

// EmitRLE encodes a set of live cells as RLE text with the given rule in
// the header. Cells are translated so the bounding box origin is (0, 0).
// Returns the text plus the pattern width and height. The output
// round-trips through ParseRLE up to that translation.
func EmitRLE(cells []Cell, ruleName string) (rle string, w, h int) {
	var sb strings.Builder
	sb.WriteString("#C chunklife export\n")

	if len(cells) == 0 {
		sb.WriteString("x = 0, y = 0, rule = " + ruleName + "\n!\n")
		return sb.String(), 0, 0
	}

	minX, minY := cells[0].X, cells[0].Y
	maxX, maxY := minX, minY
	for _, c := range cells[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}
	w = maxX - minX + 1
	h = maxY - minY + 1

	sorted := make([]Cell, len(cells))
	copy(sorted, cells)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	sb.WriteString("x = ")
	sb.WriteString(strconv.Itoa(w))
	sb.WriteString(", y = ")
	sb.WriteString(strconv.Itoa(h))
	sb.WriteString(", rule = ")
	sb.WriteString(ruleName)
	sb.WriteByte('\n')

	lineLen := 0
	emit := func(count int, tag byte) {
		if count <= 0 {
			return
		}
		var tok string
		if count == 1 {
			tok = string(tag)
		} else {
			tok = strconv.Itoa(count) + string(tag)
		}
		if lineLen+len(tok) > emitLineWidth {
			sb.WriteByte('\n')
			lineLen = 0
		}
		sb.WriteString(tok)
		lineLen += len(tok)
	}

	i := 0
	prevRow := 0
	for i < len(sorted) {
		row := sorted[i].Y - minY
		emit(row-prevRow, '$')
		prevRow = row

		x := 0
		for i < len(sorted) && sorted[i].Y-minY == row {
			cx := sorted[i].X - minX
			emit(cx-x, 'b')
			runLen := 1
			for i+runLen < len(sorted) &&
				sorted[i+runLen].Y-minY == row &&
				sorted[i+runLen].X-minX == cx+runLen {
				runLen++
			}
			emit(runLen, 'o')
			x = cx + runLen
			i += runLen
		}
	}
	if lineLen+1 > emitLineWidth {
		sb.WriteByte('\n')
	}
	sb.WriteString("!\n")
	return sb.String(), w, h
}
