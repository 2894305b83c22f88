package ir

import (
	"strings"
	"testing"

	"pietc/pkg/block"
	"pietc/pkg/graph"
	"pietc/pkg/grid"
	"pietc/pkg/palette"
)

func gridFromRows(rows [][]palette.Color) *grid.Grid {
	g := grid.New(len(rows), len(rows[0]))
	for r, row := range rows {
		for c, col := range row {
			g.Set(r, c, col)
		}
	}
	return g
}

func TestLowerUnstartableProgramReturnsZero(t *testing.T) {
	g := gridFromRows([][]palette.Color{{palette.White, palette.Red}})
	bs := block.Find(g)
	gr := graph.Build(g, bs)

	out := Lower(gr)
	if !strings.Contains(out, "define i32 @main()") {
		t.Fatal("missing main definition")
	}
	if !strings.Contains(out, "ret i32 0") {
		t.Fatal("expected a trivial return for an unstartable program")
	}
	if err := Verify(out); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
}

func TestLowerPushSubtractChainVerifies(t *testing.T) {
	// LightRed -> Red is Push, Red -> DarkYellow is Subtract.
	g := gridFromRows([][]palette.Color{{palette.LightRed, palette.Red, palette.DarkYellow}})
	bs := block.Find(g)
	gr := graph.Build(g, bs)

	out := Lower(gr)
	if !strings.Contains(out, "n0:") {
		t.Fatal("expected an n0 label")
	}
	if err := Verify(out); err != nil {
		t.Fatalf("Verify failed: %v\n%s", err, out)
	}
}

func TestLowerBranchingGridVerifies(t *testing.T) {
	g := gridFromRows([][]palette.Color{
		{palette.Red, palette.Yellow, palette.Green},
		{palette.Cyan, palette.Blue, palette.Magenta},
	})
	bs := block.Find(g)
	gr := graph.Build(g, bs)

	out := Lower(gr)
	if err := Verify(out); err != nil {
		t.Fatalf("Verify failed: %v\n%s", err, out)
	}
}

func TestLowerRollEmitsRollSequence(t *testing.T) {
	// LightRed -> Blue is hueDiff=4, lightDiff=1: Roll.
	g := gridFromRows([][]palette.Color{{palette.LightRed, palette.Blue}})
	bs := block.Find(g)
	gr := graph.Build(g, bs)

	if gr.Nodes[0].Command() != palette.Roll {
		t.Fatalf("command = %v, want Roll", gr.Nodes[0].Command())
	}

	out := Lower(gr)
	for _, want := range []string{"roll1.check2:", "roll1.norm:", "roll1.copy:", "roll1.copyloop:", "roll1.writeloop:", "roll1.skip:"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected label %q in the emitted roll sequence, got:\n%s", want, out)
		}
	}
	if err := Verify(out); err != nil {
		t.Fatalf("Verify failed: %v\n%s", err, out)
	}
}

func TestLowerModuloTransitionEmitsSrem(t *testing.T) {
	// LightRed -> Green is hueDiff=2, lightDiff=1: Modulo, per the command
	// table.
	g := gridFromRows([][]palette.Color{{palette.LightRed, palette.Green}})
	bs := block.Find(g)
	gr := graph.Build(g, bs)

	if gr.Nodes[0].Command() != palette.Modulo {
		t.Fatalf("command = %v, want Modulo", gr.Nodes[0].Command())
	}

	out := Lower(gr)
	if !strings.Contains(out, "srem i32") {
		t.Errorf("expected an srem instruction for Modulo, got:\n%s", out)
	}
	if err := Verify(out); err != nil {
		t.Fatalf("Verify failed: %v\n%s", err, out)
	}
}

func TestLowerInputCharCallsGetchar(t *testing.T) {
	// LightRed -> LightMagenta is hueDiff=5, lightDiff=0: InputChar.
	g := gridFromRows([][]palette.Color{{palette.LightRed, palette.LightMagenta}})
	bs := block.Find(g)
	gr := graph.Build(g, bs)

	if gr.Nodes[0].Command() != palette.InputChar {
		t.Fatalf("command = %v, want InputChar", gr.Nodes[0].Command())
	}

	out := Lower(gr)
	if !strings.Contains(out, "call i32 @getchar()") {
		t.Errorf("expected a call to @getchar for InputChar, got:\n%s", out)
	}
	if strings.Contains(out, "call i32 (i8*, ...) @scanf(") {
		t.Errorf("InputChar must not call @scanf, got:\n%s", out)
	}
	if err := Verify(out); err != nil {
		t.Fatalf("Verify failed: %v\n%s", err, out)
	}
}

func TestLowerInputNumCallsScanf(t *testing.T) {
	// LightRed -> DarkBlue is hueDiff=4, lightDiff=2: InputNum.
	g := gridFromRows([][]palette.Color{{palette.LightRed, palette.DarkBlue}})
	bs := block.Find(g)
	gr := graph.Build(g, bs)

	if gr.Nodes[0].Command() != palette.InputNum {
		t.Fatalf("command = %v, want InputNum", gr.Nodes[0].Command())
	}

	out := Lower(gr)
	if !strings.Contains(out, "call i32 (i8*, ...) @scanf(") {
		t.Errorf("expected a call to @scanf for InputNum, got:\n%s", out)
	}
	if err := Verify(out); err != nil {
		t.Fatalf("Verify failed: %v\n%s", err, out)
	}
}

func TestVerifyRejectsDuplicateLabel(t *testing.T) {
	bad := "define i32 @main() {\nentry:\n  ret i32 0\nentry:\n  ret i32 0\n}\n"
	if err := Verify(bad); err == nil {
		t.Fatal("expected an error for a duplicate label")
	}
}

func TestVerifyRejectsUndefinedTarget(t *testing.T) {
	bad := "define i32 @main() {\nentry:\n  br label %ghost\n}\n"
	if err := Verify(bad); err == nil {
		t.Fatal("expected an error for a branch to an undefined label")
	}
}

func TestVerifyRejectsMissingTerminator(t *testing.T) {
	bad := "define i32 @main() {\nentry:\n  %t1 = add i32 1, 2\n}\n"
	if err := Verify(bad); err == nil {
		t.Fatal("expected an error for a block with no terminator")
	}
}

func TestVerifyRejectsUseBeforeDefinition(t *testing.T) {
	bad := "define i32 @main() {\nentry:\n  %t2 = add i32 %t1, 1\n  ret i32 %t2\n}\n"
	if err := Verify(bad); err == nil {
		t.Fatal("expected an error for a value used before it is defined")
	}
}

func TestVerifyRejectsDoubleTerminator(t *testing.T) {
	bad := "define i32 @main() {\nentry:\n  ret i32 0\n  ret i32 0\n}\n"
	if err := Verify(bad); err == nil {
		t.Fatal("expected an error for a block with two terminators")
	}
}
