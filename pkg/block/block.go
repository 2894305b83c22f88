// Package block decomposes a grid into maximal 4-connected same-color
// regions ("blocks"), the unit the movement simulator and graph builder
// operate over.
package block

import (
	"fmt"

	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"pietc/pkg/grid"
	"pietc/pkg/palette"
)

// Block is a maximal 4-connected region of identically colored cells.
type Block struct {
	ID    int
	Color palette.Color
	Cells []int // flat grid indices, discovery order
}

// Size is the cell count of the block.
func (b Block) Size() int {
	return len(b.Cells)
}

// Set owns every block discovered in a grid, plus the dense coordinate ->
// block-id lookup table required to keep graph construction linear in cell
// count.
type Set struct {
	Blocks   []Block
	cellToID []int // flat, length rows*cols
	cols     int
}

// ByID returns the block with the given id.
func (s *Set) ByID(id int) Block {
	return s.Blocks[id]
}

// At returns the block containing (row, col), or false if out of bounds.
func (s *Set) At(row, col int) (Block, bool) {
	if col < 0 || col >= s.cols {
		return Block{}, false
	}
	idx := grid.Index(row, col, s.cols)
	if idx < 0 || idx >= len(s.cellToID) {
		return Block{}, false
	}
	id := s.cellToID[idx]
	if id < 0 {
		return Block{}, false
	}
	return s.Blocks[id], true
}

func (s *Set) String() string {
	return fmt.Sprintf("block.Set{blocks=%d}", len(s.Blocks))
}

// Find decomposes g into its maximal 4-connected same-color blocks. Ids are
// assigned in row-major discovery order. Every cell, including White and
// Black, belongs to exactly one block — this function does not treat any
// color specially.
func Find(g *grid.Grid) *Set {
	n := g.Rows * g.Cols
	cellToID := make([]int, n)
	for i := range cellToID {
		cellToID[i] = -1
	}

	s := &Set{cols: g.Cols, cellToID: cellToID}
	q := linkedlistqueue.New()

	for start := 0; start < n; start++ {
		if cellToID[start] != -1 {
			continue
		}
		startRow, startCol := grid.Coords(start, g.Cols)
		color := g.At(startRow, startCol)

		id := len(s.Blocks)
		cellToID[start] = id
		cells := []int{start}

		q.Clear()
		q.Enqueue(start)
		for !q.Empty() {
			v, _ := q.Dequeue()
			idx := v.(int)
			row, col := grid.Coords(idx, g.Cols)

			for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				nr, nc := row+d[0], col+d[1]
				if !g.InBounds(nr, nc) {
					continue
				}
				nIdx := grid.Index(nr, nc, g.Cols)
				if cellToID[nIdx] != -1 {
					continue
				}
				if g.At(nr, nc) != color {
					continue
				}
				cellToID[nIdx] = id
				cells = append(cells, nIdx)
				q.Enqueue(nIdx)
			}
		}

		s.Blocks = append(s.Blocks, Block{ID: id, Color: color, Cells: cells})
	}

	return s
}
