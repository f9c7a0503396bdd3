package metrics

import "time"

// SolveEvent captures one scheduling request for observability purposes.
type SolveEvent struct {
	RequestID   string
	Status      string
	Duration    time.Duration
	Nurses      int
	Days        int
	Variables   int
	Constraints int
	CustomRules bool
	Time        time.Time
}

// SolveSink records solve events.
type SolveSink interface {
	RecordSolve(ev SolveEvent) error
}

// NopSink discards all events.
type NopSink struct{}

// RecordSolve implements SolveSink.
func (NopSink) RecordSolve(SolveEvent) error { return nil }
