package format

import "strings"

// SpaceFunctionBoundaries inserts one blank line between a line holding only
// a closing brace and an immediately following doc comment opener (`/**`).
// Existing blank lines are never touched, so the pass is idempotent.
func SpaceFunctionBoundaries(lines []string) ([]string, int) {
	out := make([]string, 0, len(lines))
	inserted := 0
	for i, line := range lines {
		out = append(out, line)
		if strings.TrimSpace(line) != "}" {
			continue
		}
		if i+1 >= len(lines) {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(lines[i+1]), "/**") {
			out = append(out, "")
			inserted++
		}
	}
	return out, inserted
}
