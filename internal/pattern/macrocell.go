package pattern

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// maxMacrocellNodes caps the node table of a macrocell file.
	maxMacrocellNodes = 1000000
	// leafSize is the edge length of a macrocell leaf tile.
	leafSize = 8
	// leafLevel is the quadtree level of a leaf.
	leafLevel = 3
)

// ErrInvalidMacrocell reports a malformed macrocell descriptor: a bad node
// reference, a malformed line, or too many nodes.
var ErrInvalidMacrocell = errors.New("invalid macrocell")

type mcNode struct {
	level int
	// Children, 1-indexed into the node table; 0 means empty subtree.
	nw, ne, sw, se int
	// Leaf payload, one byte per row, valid when level == leafLevel.
	rows [leafSize]uint8
}

// ParseMacrocell decodes a Golly macrocell quadtree descriptor into the set
// of live-cell coordinates, normalized to a non-negative origin. Lines
// beginning with '[' or '#' and blank lines are skipped. Each remaining
// line appends one node: leaves are 8×8 tiles in '.'/'*'/'$' run form,
// non-leaves are "<level> <nw> <ne> <sw> <se>" with strictly earlier,
// 1-indexed child references. The last node is the root.
func ParseMacrocell(src string) ([]Cell, error) {
	var nodes []mcNode
	for ln, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed[0] == '[' || trimmed[0] == '#' {
			continue
		}
		if len(nodes) >= maxMacrocellNodes {
			return nil, errors.Wrapf(ErrInvalidMacrocell, "more than %d nodes", maxMacrocellNodes)
		}
		var node mcNode
		var err error
		if trimmed[0] >= '1' && trimmed[0] <= '9' {
			node, err = parseInterior(trimmed, len(nodes)+1)
		} else {
			node, err = parseLeaf(trimmed)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", ln+1)
		}
		nodes = append(nodes, node)
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	return expand(nodes)
}

func parseLeaf(line string) (mcNode, error) {
	node := mcNode{level: leafLevel}
	x, y := 0, 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '.':
			x++
		case '*':
			if x >= leafSize || y >= leafSize {
				return mcNode{}, errors.Wrap(ErrInvalidMacrocell, "leaf overflows 8×8")
			}
			node.rows[y] |= 1 << uint(x)
			x++
		case '$':
			x = 0
			y++
		default:
			return mcNode{}, errors.Wrapf(ErrInvalidMacrocell, "bad leaf char %q", line[i])
		}
		if x > leafSize || y > leafSize {
			return mcNode{}, errors.Wrap(ErrInvalidMacrocell, "leaf overflows 8×8")
		}
	}
	return node, nil
}

func parseInterior(line string, index int) (mcNode, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return mcNode{}, errors.Wrapf(ErrInvalidMacrocell, "want 5 fields, got %d", len(fields))
	}
	vals := make([]int, 5)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 {
			return mcNode{}, errors.Wrapf(ErrInvalidMacrocell, "bad field %q", f)
		}
		vals[i] = v
	}
	node := mcNode{level: vals[0], nw: vals[1], ne: vals[2], sw: vals[3], se: vals[4]}
	if node.level <= leafLevel {
		return mcNode{}, errors.Wrapf(ErrInvalidMacrocell, "interior node at level %d", node.level)
	}
	if node.level > 62 {
		return mcNode{}, errors.Wrapf(ErrInvalidMacrocell, "level %d out of range", node.level)
	}
	for _, child := range []int{node.nw, node.ne, node.sw, node.se} {
		if child >= index {
			return mcNode{}, errors.Wrapf(ErrInvalidMacrocell, "forward reference to node %d", child)
		}
	}
	return node, nil
}

type mcFrame struct {
	idx  int
	x, y int64
}

// expand walks the quadtree iteratively from the root (last node) and
// collects live cells, then translates them to a non-negative origin.
func expand(nodes []mcNode) ([]Cell, error) {
	var cells []Cell
	stack := []mcFrame{{idx: len(nodes), x: 0, y: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.idx == 0 {
			continue
		}
		node := nodes[f.idx-1]
		if node.level == leafLevel {
			for ly := 0; ly < leafSize; ly++ {
				row := node.rows[ly]
				for lx := 0; lx < leafSize; lx++ {
					if row&(1<<uint(lx)) == 0 {
						continue
					}
					if len(cells) >= maxCells {
						return nil, errors.Wrap(ErrPatternTooLarge, "live cell cap exceeded")
					}
					cells = append(cells, Cell{X: int(f.x) + lx, Y: int(f.y) + ly})
				}
			}
			continue
		}
		// A child at level L-1 covers a half-size square.
		half := int64(1) << uint(node.level-1)
		if err := checkChildLevel(nodes, node, f.idx); err != nil {
			return nil, err
		}
		stack = append(stack,
			mcFrame{idx: node.nw, x: f.x, y: f.y},
			mcFrame{idx: node.ne, x: f.x + half, y: f.y},
			mcFrame{idx: node.sw, x: f.x, y: f.y + half},
			mcFrame{idx: node.se, x: f.x + half, y: f.y + half},
		)
	}

	if len(cells) == 0 {
		return cells, nil
	}
	minX, minY := cells[0].X, cells[0].Y
	for _, c := range cells[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
	}
	if minX != 0 || minY != 0 {
		for i := range cells {
			cells[i].X -= minX
			cells[i].Y -= minY
		}
	}
	return cells, nil
}

func checkChildLevel(nodes []mcNode, node mcNode, idx int) error {
	for _, child := range []int{node.nw, node.ne, node.sw, node.se} {
		if child == 0 {
			continue
		}
		if nodes[child-1].level != node.level-1 {
			return errors.Wrapf(ErrInvalidMacrocell,
				"node %d at level %d references node %d at level %d",
				idx, node.level, child, nodes[child-1].level)
		}
	}
	return nil
}
