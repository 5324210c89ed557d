// Package buildpipeline defines the progress vocabulary shared by the
// driver and the UI: stages a unit goes through, their status and the sinks
// that receive events.
package buildpipeline

import "time"

// Stage is one step of processing a unit.
type Stage string

const (
	StageLoad    Stage = "load"
	StageParse   Stage = "parse"
	StageRewrite Stage = "rewrite"
	StagePrint   Stage = "print"
	StageWrite   Stage = "write"
)

// Stages lists the stages in processing order.
var Stages = []Stage{StageLoad, StageParse, StageRewrite, StagePrint, StageWrite}

// Status is the state of a unit within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	// StatusCached: the unit was replayed from the transform cache.
	StatusCached Status = "cached"
	StatusError  Status = "error"
)

// Terminal reports whether no further events follow for the unit.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusCached || s == StatusError
}

// Event reports progress of one unit, or of the whole run when File is "".
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	// Sites is the number of rewritten constructions, set on terminal events.
	Sites int
}

// ProgressSink consumes progress events. Sinks are called from worker
// goroutines and must be safe for concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations summed over units.
type Timings struct {
	stages map[Stage]time.Duration
}

// Add accumulates dur for stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] += dur
}

func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Sum returns the total over stages, or over every stage when none given.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if len(stages) == 0 {
		stages = Stages
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
