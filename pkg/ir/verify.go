package ir

import (
	"bufio"
	"fmt"
	"strings"
)

// Verify performs the well-formedness checks this compiler's own
// generated IR must satisfy, standing in for the back-end verifier pass a
// real LLVM toolchain would run: every label is defined exactly once,
// every branch/switch target names a defined label, every block ends in
// exactly one terminator (br, switch, or ret), and every %-named value is
// assigned before it is used.
func Verify(module string) error {
	labels := make(map[string]int)
	referenced := make(map[string]bool)
	defined := make(map[string]bool)

	scanner := bufio.NewScanner(strings.NewReader(module))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var currentLabel string
	terminatorsInBlock := 0
	inFunction := false

	finishBlock := func() error {
		if currentLabel == "" {
			return nil
		}
		if terminatorsInBlock == 0 {
			return fmt.Errorf("block %q has no terminator", currentLabel)
		}
		if terminatorsInBlock > 1 {
			return fmt.Errorf("block %q has %d terminators, want 1", currentLabel, terminatorsInBlock)
		}
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "define "):
			inFunction = true
			currentLabel = ""
			terminatorsInBlock = 0
		case line == "}":
			if inFunction {
				if err := finishBlock(); err != nil {
					return err
				}
			}
			inFunction = false
			currentLabel = ""
		case inFunction && isLabelLine(line):
			if err := finishBlock(); err != nil {
				return err
			}
			label := strings.TrimSuffix(line, ":")
			labels[label]++
			currentLabel = label
			terminatorsInBlock = 0
		case inFunction:
			if isTerminator(line) {
				terminatorsInBlock++
			}
			for _, target := range branchTargets(line) {
				referenced[target] = true
			}

			lhs, rhs, isAssign := splitAssignment(line)
			for _, name := range extractValueUses(rhs) {
				if !defined[name] {
					return fmt.Errorf("value %q used before definition in block %q", name, currentLabel)
				}
			}
			if isAssign {
				defined[lhs] = true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	for label, count := range labels {
		if count > 1 {
			return fmt.Errorf("label %q defined %d times, want 1", label, count)
		}
	}
	for target := range referenced {
		if labels[target] == 0 {
			return fmt.Errorf("branch target %q has no matching label", target)
		}
	}
	return nil
}

// splitAssignment reports whether line has the form "%name = rhs" and, if
// so, returns the defined name and the right-hand side to scan for uses.
// Non-assignment instructions (store, br, ret, switch, bare calls) return
// the whole line as rhs.
func splitAssignment(line string) (lhs, rhs string, isAssign bool) {
	if !strings.HasPrefix(line, "%") {
		return "", line, false
	}
	idx := strings.Index(line, " = ")
	if idx < 0 {
		return "", line, false
	}
	name := line[:idx]
	if !isIdentName(name[1:]) {
		return "", line, false
	}
	return name, line[idx+3:], true
}

// extractValueUses returns every "%name" value reference in line, skipping
// occurrences that are actually label references ("label %name"), which
// are validated separately by branchTargets.
func extractValueUses(line string) []string {
	var uses []string
	for i := 0; i < len(line); i++ {
		if line[i] != '%' {
			continue
		}
		if i >= 6 && line[i-6:i] == "label " {
			j := i + 1
			for j < len(line) && isIdentChar(line[j]) {
				j++
			}
			i = j - 1
			continue
		}
		j := i + 1
		for j < len(line) && isIdentChar(line[j]) {
			j++
		}
		if j > i+1 {
			uses = append(uses, line[i:j])
		}
		i = j - 1
	}
	return uses
}

func isIdentChar(r byte) bool {
	return r == '.' || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isIdentName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isIdentChar(name[i]) {
			return false
		}
	}
	return true
}

func isLabelLine(line string) bool {
	if !strings.HasSuffix(line, ":") {
		return false
	}
	return isIdentName(strings.TrimSuffix(line, ":"))
}

func isTerminator(line string) bool {
	return strings.HasPrefix(line, "br ") ||
		strings.HasPrefix(line, "ret ") ||
		strings.HasPrefix(line, "switch ")
}

// branchTargets extracts every "label %name" occurrence from a br/switch
// instruction line.
func branchTargets(line string) []string {
	if !strings.Contains(line, "label %") {
		return nil
	}
	var targets []string
	parts := strings.Split(line, "label %")
	for _, part := range parts[1:] {
		end := 0
		for end < len(part) && isIdentChar(part[end]) {
			end++
		}
		targets = append(targets, part[:end])
	}
	return targets
}
