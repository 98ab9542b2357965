package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// RunOutcome is the final status of one pipeline run.
type RunOutcome string

const (
	OutcomeWritten   RunOutcome = "written"
	OutcomeUnchanged RunOutcome = "unchanged"
	OutcomeDryRun    RunOutcome = "dry_run"
	OutcomeFailed    RunOutcome = "failed"
	OutcomeCanceled  RunOutcome = "canceled"
)

// Recorder defines observability hooks for pipeline runs.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncRunOutcome(outcome RunOutcome)
	SetFilesDiscovered(n int)
	SetTopicsEmitted(n int)
	AddBrokenLinks(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncRunOutcome(RunOutcome)                   {}
func (NoopRecorder) SetFilesDiscovered(int)                     {}
func (NoopRecorder) SetTopicsEmitted(int)                       {}
func (NoopRecorder) AddBrokenLinks(int)                         {}
