// Package grid decodes a pictorial-language source (an image or a text file
// of whitespace-separated hex tokens) into a flat grid of palette colors.
package grid

import "pietc/pkg/palette"

// Grid is a rows x cols array of codel colors, stored flat in row-major
// order at index r*Cols+c — the same indexing discipline the block finder
// requires for its O(1) coordinate lookup table.
type Grid struct {
	Rows, Cols int
	Cells      []palette.Color
}

// New allocates an empty grid of the given dimensions, every cell
// Undefined.
func New(rows, cols int) *Grid {
	cells := make([]palette.Color, rows*cols)
	for i := range cells {
		cells[i] = palette.Undefined
	}
	return &Grid{Rows: rows, Cols: cols, Cells: cells}
}

// Index converts a (row, col) pair to a flat cell index.
func Index(row, col, cols int) int {
	return row*cols + col
}

// Coords converts a flat cell index back to (row, col), generalizing the
// single-axis index-to-(x,y) conversion used elsewhere in the codebase to
// both grid dimensions.
func Coords(index, cols int) (row, col int) {
	return index / cols, index % cols
}

// InBounds reports whether (row, col) lies within the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// At returns the color at (row, col). Out-of-bounds coordinates return
// Undefined; callers that need to distinguish "out of bounds" from "a cell
// classified Undefined" should call InBounds first.
func (g *Grid) At(row, col int) palette.Color {
	if !g.InBounds(row, col) {
		return palette.Undefined
	}
	return g.Cells[Index(row, col, g.Cols)]
}

// Set writes the color at (row, col).
func (g *Grid) Set(row, col int, c palette.Color) {
	g.Cells[Index(row, col, g.Cols)] = c
}

// Empty reports whether the grid has zero cells.
func (g *Grid) Empty() bool {
	return g.Rows == 0 || g.Cols == 0
}
