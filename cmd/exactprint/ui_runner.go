package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"exactprint/internal/driver"
	"exactprint/internal/ui"
)

type batchOutcome struct {
	results []*driver.FileResult
	err     error
}

// runPathsWithUI processes files while a progress view follows the events.
func runPathsWithUI(ctx context.Context, title string, files []string, opts driver.Options) ([]*driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.ProcessPaths(ctx, files, opts)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
