package format

import (
	"regexp"
	"strings"
)

// returnLookback bounds the backward scan that decides whether a return
// statement sits inside a function body. Four lines cover the indentation
// depth house style allows between a brace line and a return.
const returnLookback = 4

var returnStmt = regexp.MustCompile(`^return\s+.*;`)

func isReturnStmt(trimmed string) bool {
	return trimmed == "return;" || returnStmt.MatchString(trimmed)
}

// SpaceReturns inserts one blank line before each return statement that sits
// inside a function body, unless the previous line is already blank or the
// return is the body's final statement (the next line closes the block).
// Decisions read the pass input, never the partially built output, so earlier
// insertions cannot shift later ones.
func SpaceReturns(lines []string) ([]string, int) {
	out := make([]string, 0, len(lines))
	inserted := 0
	for i, line := range lines {
		if needsReturnGap(lines, i) {
			out = append(out, "")
			inserted++
		}
		out = append(out, line)
	}
	return out, inserted
}

func needsReturnGap(lines []string, i int) bool {
	if !isReturnStmt(strings.TrimSpace(lines[i])) {
		return false
	}
	if i == 0 || isBlank(lines[i-1]) {
		return false
	}
	if !insideFunction(lines, i) {
		return false
	}
	// A return directly followed by the closing brace is the body's last
	// statement and needs no separator.
	if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == "}" {
		return false
	}
	return true
}

// insideFunction judges by the nearest brace-only line above i, looking back
// at most returnLookback lines and clamping at the first line: a `{` puts the
// return inside a body, a `}` puts it outside, an exhausted window counts as
// outside.
func insideFunction(lines []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-returnLookback; j-- {
		switch strings.TrimSpace(lines[j]) {
		case "{":
			return true
		case "}":
			return false
		}
	}
	return false
}
