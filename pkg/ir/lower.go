package ir

import (
	"fmt"

	"pietc/pkg/graph"
	"pietc/pkg/palette"
)

// Lower emits a complete textual IR module for g: an external-function
// preamble, a @main that allocates the materialized stack, a branch into
// node 0's block, and one basic block per graph node. A graph with zero
// nodes (an unstartable program) lowers to a @main that immediately
// returns 0.
func Lower(g *graph.Graph) string {
	b := &builder{}
	emitPreamble(b)

	b.line("define i32 @main() {")
	b.line("entry:")
	b.line("  %%stack = alloca [%d x i32]", stackCapacity)
	b.line("  %%size = alloca i32")
	b.line("  store i32 0, i32* %%size")
	if len(g.Nodes) == 0 {
		b.line("  ret i32 0")
		b.line("}")
		return b.out.String()
	}
	b.line("  br label %%n0")

	for _, n := range g.Nodes {
		emitNode(b, g, n)
	}

	b.line("}")
	return b.out.String()
}

func emitPreamble(b *builder) {
	b.comment("preamble: I/O format strings and external declarations")
	b.line("@.fmt.num = private unnamed_addr constant [4 x i8] c\"%%d\\0A\\00\"")
	b.line("@.fmt.in = private unnamed_addr constant [3 x i8] c\"%%d\\00\"")
	b.line("declare i32 @printf(i8*, ...)")
	b.line("declare i32 @scanf(i8*, ...)")
	b.line("declare i32 @putchar(i32)")
	b.line("declare i32 @getchar()")
	b.line("")
}

// emitNode lowers one graph node: its command (if any), then a generic
// transition dispatch keyed by outgoing edge count.
func emitNode(b *builder, g *graph.Graph, n graph.Node) {
	b.line("n%d:", n.ID)
	b.comment("block %d, command %s", n.BlockID, n.Command())

	switch n.Command() {
	case palette.None:
		// no-op: a transition between blocks of the same color, or a
		// terminal node with no outgoing edges.
	case palette.Push:
		b.emitPush(fmt.Sprintf("%d", n.BlockSize))
	case palette.Pop:
		b.emitPop()
	case palette.Add:
		emitBinOp(b, "add")
	case palette.Subtract:
		emitBinOp(b, "sub")
	case palette.Multiply:
		emitBinOp(b, "mul")
	case palette.Divide:
		emitBinOp(b, "sdiv")
	case palette.Modulo:
		emitBinOp(b, "srem")
	case palette.Not:
		v := b.emitPop()
		isZero := b.newTemp()
		b.line("  %s = icmp eq i32 %s, 0", isZero, v)
		asInt := b.newTemp()
		b.line("  %s = zext i1 %s to i32", asInt, isZero)
		b.emitPush(asInt)
	case palette.Greater:
		a := b.emitPop()
		bb := b.emitPop()
		cmp := b.newTemp()
		b.line("  %s = icmp sgt i32 %s, %s", cmp, bb, a)
		asInt := b.newTemp()
		b.line("  %s = zext i1 %s to i32", asInt, cmp)
		b.emitPush(asInt)
	case palette.Duplicate:
		v := b.emitPop()
		b.emitPush(v)
		b.emitPush(v)
	case palette.Roll:
		rolls := b.emitPop()
		depth := b.emitPop()
		b.emitRoll(rolls, depth)
	case palette.InputChar:
		v := b.newTemp()
		b.line("  %s = call i32 @getchar()", v)
		b.emitPush(v)
	case palette.InputNum:
		buf := b.newTemp()
		b.line("  %s = alloca i32", buf)
		b.line("  call i32 (i8*, ...) @scanf(i8* getelementptr inbounds ([3 x i8], [3 x i8]* @.fmt.in, i32 0, i32 0), i32* %s)", buf)
		v := b.newTemp()
		b.line("  %s = load i32, i32* %s", v, buf)
		b.emitPush(v)
	case palette.OutputChar:
		v := b.emitPop()
		b.line("  call i32 @putchar(i32 %s)", v)
	case palette.OutputNum:
		v := b.emitPop()
		b.line("  call i32 (i8*, ...) @printf(i8* getelementptr inbounds ([4 x i8], [4 x i8]* @.fmt.num, i32 0, i32 0), i32 %s)", v)
	case palette.Pointer, palette.Switch:
		// no direct stack effect; handled entirely by the edge dispatch.
	}

	emitDispatch(b, g, n)
}

func emitBinOp(b *builder, op string) {
	a := b.emitPop()
	bb := b.emitPop()
	r := b.newTemp()
	b.line("  %s = %s i32 %s, %s", r, op, bb, a)
	b.emitPush(r)
}

// emitDispatch appends the unconditional/conditional control transfer out
// of the current block. Pointer nodes always carry 4 edges and Switch
// nodes 2, by construction of pkg/graph; any other arity is handled by
// the same popped-index-modulo-edge-count switch, so one code path covers
// both DP rotation and CC toggling without special-casing the command.
func emitDispatch(b *builder, g *graph.Graph, n graph.Node) {
	switch len(n.Edges) {
	case 0:
		b.comment("terminal state: no executable exit codel")
		b.line("  ret i32 0")
	case 1:
		b.line("  br label %%n%d", n.Edges[0].Target)
	default:
		v := b.emitPop()
		idx := b.newTemp()
		b.line("  %s = urem i32 %s, %d", idx, v, len(n.Edges))
		b.line("  switch i32 %s, label %%n%d [", idx, n.Edges[0].Target)
		for i, e := range n.Edges {
			b.line("    i32 %d, label %%n%d", i, e.Target)
		}
		b.line("  ]")
	}
}
