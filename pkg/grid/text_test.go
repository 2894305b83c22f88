package grid

import (
	"strings"
	"testing"

	"pietc/pkg/palette"
)

func TestDecodeTextBasic(t *testing.T) {
	src := "FF0000 FF0000 FFC0C0\n"
	g, err := DecodeText(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if g.Rows != 1 || g.Cols != 3 {
		t.Fatalf("dims = %dx%d, want 1x3", g.Rows, g.Cols)
	}
	if g.At(0, 0) != palette.Red || g.At(0, 2) != palette.LightRed {
		t.Errorf("unexpected colors: %v %v", g.At(0, 0), g.At(0, 2))
	}
}

func TestDecodeTextStripsComments(t *testing.T) {
	src := "FF0000 ; a comment\n000000 // another\n"
	g, err := DecodeText(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if g.Rows != 2 || g.Cols != 1 {
		t.Fatalf("dims = %dx%d, want 2x1", g.Rows, g.Cols)
	}
	if g.At(0, 0) != palette.Red || g.At(1, 0) != palette.Black {
		t.Errorf("unexpected colors: %v %v", g.At(0, 0), g.At(1, 0))
	}
}

func TestDecodeTextUnknownTokenIsUndefined(t *testing.T) {
	g, err := DecodeText(strings.NewReader("ZZZZZZ\n"))
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if g.At(0, 0) != palette.Undefined {
		t.Errorf("got %v, want Undefined", g.At(0, 0))
	}
}

func TestDecodeTextRaggedRowsError(t *testing.T) {
	src := "FF0000 FF0000\n000000\n"
	if _, err := DecodeText(strings.NewReader(src)); err == nil {
		t.Fatal("expected error for ragged rows")
	}
}

func TestDecodeTextEmptyIsError(t *testing.T) {
	if _, err := DecodeText(strings.NewReader("")); err != ErrEmptyGrid {
		t.Fatalf("got %v, want ErrEmptyGrid", err)
	}
}
