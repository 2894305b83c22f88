// Package ir lowers a control-flow graph into a single textual,
// LLVM-compatible IR module: one basic block per graph node, linked by
// unconditional branches and n-way switches, with inline push/pop/roll
// stack primitives.
package ir

import (
	"fmt"
	"strings"
)

// builder accumulates IR text with a monotonic SSA-temporary counter, the
// same accumulation discipline as a hand-rolled assembly text emitter:
// append one line per instruction, never revisit earlier text.
type builder struct {
	out        strings.Builder
	nextTemp   int
	nextRollID int
}

func (b *builder) line(format string, args ...any) {
	fmt.Fprintf(&b.out, format+"\n", args...)
}

func (b *builder) comment(format string, args ...any) {
	b.line("  ; "+format, args...)
}

func (b *builder) newTemp() string {
	b.nextTemp++
	return fmt.Sprintf("%%t%d", b.nextTemp)
}

func (b *builder) newRollID() int {
	b.nextRollID++
	return b.nextRollID
}
