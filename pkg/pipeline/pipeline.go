// Package pipeline orchestrates the compiler's stages: decode a grid,
// find blocks, build the control-flow graph, lower to IR, and verify.
package pipeline

import (
	"github.com/pkg/errors"

	"pietc/pkg/block"
	"pietc/pkg/graph"
	"pietc/pkg/grid"
	"pietc/pkg/ir"
)

// Result carries every intermediate artifact of a compilation, so a
// caller (the CLI's diagnostic dump flags) can inspect stages without
// re-running them.
type Result struct {
	Grid   *grid.Grid
	Blocks *block.Set
	Graph  *graph.Graph
	Module string
}

// Compile runs blocks → graph → IR over an already-decoded grid. It does
// not run the verifier; VerifyModule does that separately, so a
// verification failure is never a Compile error and the module is still
// produced.
func Compile(g *grid.Grid) (*Result, error) {
	if g.Empty() {
		return nil, errors.Wrap(grid.ErrEmptyGrid, "pipeline: compile")
	}

	bs := block.Find(g)
	gr := graph.Build(g, bs)
	module := ir.Lower(gr)

	return &Result{Grid: g, Blocks: bs, Graph: gr, Module: module}, nil
}

// CompileFile decodes path and runs Compile over the result, wrapping
// decode failures with stage context.
func CompileFile(path string) (*Result, error) {
	g, err := grid.Decode(path)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline: decode")
	}
	res, err := Compile(g)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// VerifyModule checks res.Module and returns the verifier's error, if
// any, without altering res.
func VerifyModule(res *Result) error {
	return ir.Verify(res.Module)
}
