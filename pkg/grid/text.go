package grid

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"pietc/pkg/palette"
)

// DecodeText parses whitespace-separated hex tokens, one row per line, into
// a Grid. Trailing comments starting with ';' or "//" are stripped per line,
// matching the comment-cutting convention of a line-oriented source format;
// blank lines (after comment stripping) are skipped entirely rather than
// producing zero-width rows.
func DecodeText(r io.Reader) (*Grid, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var rows [][]palette.Color
	cols := -1
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := stripComment(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		row := make([]palette.Color, len(fields))
		for i, tok := range fields {
			row[i] = palette.HexToColor(tok)
		}

		if cols == -1 {
			cols = len(row)
		} else if len(row) != cols {
			return nil, fmt.Errorf("grid: line %d has %d tokens, want %d", lineNo, len(row), cols)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("grid: read error: %w", err)
	}

	if len(rows) == 0 || cols <= 0 {
		return nil, ErrEmptyGrid
	}

	g := New(len(rows), cols)
	for r, row := range rows {
		for c, color := range row {
			g.Set(r, c, color)
		}
	}
	return g, nil
}

func stripComment(line string) string {
	semicolon := strings.Index(line, ";")
	doubleSlash := strings.Index(line, "//")

	cut := -1
	if semicolon >= 0 {
		cut = semicolon
	}
	if doubleSlash >= 0 && (cut == -1 || doubleSlash < cut) {
		cut = doubleSlash
	}
	if cut >= 0 {
		return line[:cut]
	}
	return line
}
