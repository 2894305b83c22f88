package sim

import (
	"pietc/pkg/block"
	"pietc/pkg/grid"
	"pietc/pkg/palette"
)

// Result is the outcome of stepping out of a block under a given DP/CC.
// Ok is false when the state is terminal (no outgoing edge).
type Result struct {
	TargetBlockID int
	DP            DP
	CC            CC
	Command       palette.Command
	Ok            bool
}

// Step computes the result of exiting blockID's block under dp/cc: it
// selects the exit codel, runs the eight-attempt bounce sequence if the
// first candidate is blocked, and applies a (simplified) white-slide rule.
func Step(g *grid.Grid, bs *block.Set, blockID int, dp DP, cc CC) Result {
	b := bs.ByID(blockID)

	row, col := exitCodel(g, b.Cells, dp, cc)
	nr, nc := step(row, col, dp)

	if blocked(g, nr, nc) {
		ok := false
		for attempt := 0; attempt < 8; attempt++ {
			if attempt%2 == 0 {
				cc = cc.Toggle()
			} else {
				dp = dp.Rotate(1)
			}
			row, col = exitCodel(g, b.Cells, dp, cc)
			nr, nc = step(row, col, dp)
			if !blocked(g, nr, nc) {
				ok = true
				break
			}
		}
		if !ok {
			return Result{}
		}
	}

	if g.At(nr, nc) == palette.White {
		// White slide: a straight slide in the current DP, terminating on
		// any obstruction rather than re-running the bounce sequence
		// inside the white region. An intentional deviation from canonical
		// white-slide semantics, not a bug.
		for g.InBounds(nr, nc) && g.At(nr, nc) == palette.White {
			nr, nc = step(nr, nc, dp)
		}
		if !g.InBounds(nr, nc) || blocked(g, nr, nc) {
			return Result{}
		}
	}

	targetID, ok := bs.At(nr, nc)
	if !ok {
		return Result{}
	}

	cmd := palette.Transition(b.Color, targetID.Color)
	return Result{TargetBlockID: targetID.ID, DP: dp, CC: cc, Command: cmd, Ok: true}
}

// blocked reports whether (r, c) cannot be entered: out of bounds, Black,
// or Undefined (Undefined is treated like Black for traversal).
func blocked(g *grid.Grid, r, c int) bool {
	if !g.InBounds(r, c) {
		return true
	}
	color := g.At(r, c)
	return color == palette.Black || color == palette.Undefined
}

func step(row, col int, dp DP) (int, int) {
	dr, dc := dp.Delta()
	return row + dr, col + dc
}

// exitCodel finds the DP-extremal cell among cells, breaking ties per cc.
func exitCodel(g *grid.Grid, cells []int, dp DP, cc CC) (row, col int) {
	best := -1
	var bestRow, bestCol int

	for _, idx := range cells {
		r, c := grid.Coords(idx, g.Cols)
		if best == -1 || better(dp, cc, r, c, bestRow, bestCol) {
			best = idx
			bestRow, bestCol = r, c
		}
	}
	return bestRow, bestCol
}

// better reports whether (r, c) is a more extreme exit candidate than the
// current best (bestRow, bestCol) under dp/cc, applying the DP/CC
// tie-break rules for the four travel directions.
func better(dp DP, cc CC, r, c, bestRow, bestCol int) bool {
	switch dp {
	case Right:
		if c != bestCol {
			return c > bestCol
		}
		if cc == CCLeft {
			return r < bestRow
		}
		return r > bestRow
	case Down:
		if r != bestRow {
			return r > bestRow
		}
		if cc == CCLeft {
			return c > bestCol
		}
		return c < bestCol
	case Left:
		if c != bestCol {
			return c < bestCol
		}
		if cc == CCLeft {
			return r > bestRow
		}
		return r < bestRow
	case Up:
		if r != bestRow {
			return r < bestRow
		}
		if cc == CCLeft {
			return c < bestCol
		}
		return c > bestCol
	default:
		return false
	}
}
