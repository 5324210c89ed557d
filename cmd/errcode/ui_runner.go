package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"errcode/internal/buildpipeline"
	"errcode/internal/driver"
	"errcode/internal/ui"
)

type runOutcome struct {
	result *driver.RunResult
	err    error
}

// runWithUI runs the driver while a progress model renders its events.
func runWithUI(ctx context.Context, title string, opts driver.RunOptions) (*driver.RunResult, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		ch := buildpipeline.ChannelSink{Ch: events}
		if prev := opts.Progress; prev != nil {
			opts.Progress = buildpipeline.FuncSink(func(ev buildpipeline.Event) {
				prev.OnEvent(ev)
				ch.OnEvent(ev)
			})
		} else {
			opts.Progress = ch
		}
		res, err := driver.Run(ctx, opts)
		outcomeCh <- runOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, opts.Files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
