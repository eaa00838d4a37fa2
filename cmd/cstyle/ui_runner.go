package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cstyle/internal/driver"
	"cstyle/internal/ui"
)

type fmtOutcome struct {
	results []driver.Result
	summary driver.Summary
	err     error
}

// runFmtWithUI runs the formatting pipeline behind a Bubble Tea progress
// display. The pipeline runs in its own goroutine and streams per-file events
// into the model; closing the channel tells the model to quit.
func runFmtWithUI(ctx context.Context, title string, cfg driver.Config, opts driver.FormatOptions) ([]driver.Result, driver.Summary, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan fmtOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		results, summary, err := driver.FormatFiles(ctx, cfg, optsCopy)
		outcomeCh <- fmtOutcome{results: results, summary: summary, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, cfg.Files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, outcome.summary, uiErr
	}
	return outcome.results, outcome.summary, outcome.err
}
