package driver

import (
	"fmt"
	"time"

	"cstyle/internal/format"
)

// Outcome classifies what happened to one file.
type Outcome uint8

const (
	// OutcomeUnchanged means the file was already in canonical form.
	OutcomeUnchanged Outcome = iota
	// OutcomeRewritten means the passes produced new content (or the load
	// normalized line endings) and the file was, or would be, written back.
	OutcomeRewritten
	// OutcomeMissing means the configured path does not exist on disk.
	OutcomeMissing
	// OutcomeFailed means the file could not be read, decoded, or written.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeRewritten:
		return "rewritten"
	case OutcomeMissing:
		return "missing"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result captures the processing of a single file. Path is the file as named
// in the config, relative to the config base directory.
type Result struct {
	Path      string
	Outcome   Outcome
	Report    format.Report
	Err       error
	Formatted []byte // set only in stdout mode
	CacheHit  bool
	Elapsed   time.Duration
}

// Failed reports whether the file counts against the exit code.
func (r *Result) Failed() bool {
	return r.Outcome == OutcomeMissing || r.Outcome == OutcomeFailed
}

// Summary aggregates outcomes across one run.
type Summary struct {
	Rewritten int `json:"rewritten" yaml:"rewritten"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
	Missing   int `json:"missing" yaml:"missing"`
	Failed    int `json:"failed" yaml:"failed"`
}

// Add counts one outcome.
func (s *Summary) Add(o Outcome) {
	switch o {
	case OutcomeRewritten:
		s.Rewritten++
	case OutcomeUnchanged:
		s.Unchanged++
	case OutcomeMissing:
		s.Missing++
	case OutcomeFailed:
		s.Failed++
	}
}

// Total returns the number of files the run looked at.
func (s Summary) Total() int {
	return s.Rewritten + s.Unchanged + s.Missing + s.Failed
}

// Failures returns the count of files that make the run exit non-zero.
// Missing files count as failures.
func (s Summary) Failures() int {
	return s.Missing + s.Failed
}

func (s Summary) String() string {
	return fmt.Sprintf("%d rewritten, %d unchanged, %d missing, %d failed",
		s.Rewritten, s.Unchanged, s.Missing, s.Failed)
}

// Summarize folds results into a Summary.
func Summarize(results []Result) Summary {
	var s Summary
	for i := range results {
		s.Add(results[i].Outcome)
	}
	return s
}
