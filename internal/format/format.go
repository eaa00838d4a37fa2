package format

import "fmt"

// Report counts the edits each pass made to one file. A zero Report means the
// file was already in canonical form.
type Report struct {
	Banners      int `json:"banners" yaml:"banners"`
	FunctionGaps int `json:"function_gaps" yaml:"function_gaps"`
	ReturnGaps   int `json:"return_gaps" yaml:"return_gaps"`
}

// Total returns the number of lines rewritten or inserted across all passes.
func (r Report) Total() int {
	return r.Banners + r.FunctionGaps + r.ReturnGaps
}

func (r Report) String() string {
	return fmt.Sprintf("%d banners, %d function gaps, %d return gaps",
		r.Banners, r.FunctionGaps, r.ReturnGaps)
}

// Normalize applies the rewrite passes to content in their fixed order:
// banners, then function boundary gaps, then return gaps. Each pass scans the
// lines produced by the one before it. Passes only substitute single lines or
// insert blank ones, so the output never has fewer lines than the input, and
// running Normalize on its own output returns it unchanged.
//
// TODO: pointer declaration spacing ("int* p" -> "int *p"); needs a scanner
// that can tell declarations from multiplication before it can go in.
func Normalize(content string) (string, Report) {
	lines := SplitLines(content)
	var rep Report
	lines, rep.Banners = NormalizeBanners(lines)
	lines, rep.FunctionGaps = SpaceFunctionBoundaries(lines)
	lines, rep.ReturnGaps = SpaceReturns(lines)
	return JoinLines(lines), rep
}
