package format

import "strings"

// SplitLines splits content on '\n' keeping a trailing empty element, so
// JoinLines(SplitLines(s)) == s for any input.
func SplitLines(content string) []string {
	return strings.Split(content, "\n")
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
