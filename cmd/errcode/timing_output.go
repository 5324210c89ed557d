package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"errcode/internal/buildpipeline"
	"errcode/internal/observ"
)

// stageClock turns progress events into per-stage wall time: the time
// between two events of a unit is charged to the stage of the first.
type stageClock struct {
	mu      sync.Mutex
	last    map[string]buildpipeline.Event
	timings buildpipeline.Timings
}

func newStageClock() *stageClock {
	return &stageClock{last: make(map[string]buildpipeline.Event)}
}

func (c *stageClock) OnEvent(ev buildpipeline.Event) {
	if ev.File == "" || ev.Status == buildpipeline.StatusQueued {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.last[ev.File]; ok && ev.Elapsed >= prev.Elapsed {
		c.timings.Add(prev.Stage, ev.Elapsed-prev.Elapsed)
	}
	if ev.Status.Terminal() {
		delete(c.last, ev.File)
		return
	}
	c.last[ev.File] = ev
}

func (c *stageClock) Timings() buildpipeline.Timings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timings
}

func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	for _, stage := range buildpipeline.Stages {
		if timings.Has(stage) {
			fmt.Fprintf(out, "%-8s %8.1f ms\n", stage, toMillis(timings.Duration(stage)))
		}
	}
	fmt.Fprintf(out, "%-8s %8.1f ms\n", "units", toMillis(timings.Sum()))
}

func printPhaseTimings(out io.Writer, agg *observ.Aggregate) {
	if agg == nil {
		return
	}
	report := agg.Report()
	if len(report.Phases) == 0 {
		return
	}
	fmt.Fprint(out, report.Summary())
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
