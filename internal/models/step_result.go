package models

import (
	"encoding/json"
	"time"
)

// Outcome represents the recorded result of a business-level test action
type Outcome string

// Step outcomes
const (
	OutcomeSuccess Outcome = "Success"
	OutcomeFailed  Outcome = "Failed"
	OutcomeFailure Outcome = "Failure"
	OutcomeError   Outcome = "Error"
)

// timestampLayout matches the ISO-8601 millisecond form used in the report
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// now is replaced in tests that need stable timestamps
var now = time.Now

// StepResult is one recorded outcome of a business-level test action
type StepResult struct {
	Action    string
	Result    Outcome
	Details   []string
	Timestamp time.Time
}

// NewStepResult creates a step result stamped with the current time
func NewStepResult(action string, result Outcome, details ...string) StepResult {
	if details == nil {
		details = []string{}
	}
	return StepResult{
		Action:    action,
		Result:    result,
		Details:   details,
		Timestamp: now(),
	}
}

// IsSuccess returns true if the step succeeded
func (r StepResult) IsSuccess() bool {
	return r.Result == OutcomeSuccess
}

type stepResultJSON struct {
	Action    string   `json:"action"`
	Result    Outcome  `json:"result"`
	Details   []string `json:"details"`
	Timestamp string   `json:"timestamp"`
}

// MarshalJSON writes the report record form of the step result
func (r StepResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(stepResultJSON{
		Action:    r.Action,
		Result:    r.Result,
		Details:   r.Details,
		Timestamp: r.Timestamp.UTC().Format(timestampLayout),
	})
}

// UnmarshalJSON reads a report record back into a step result
func (r *StepResult) UnmarshalJSON(data []byte) error {
	var raw stepResultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ts, err := time.Parse(timestampLayout, raw.Timestamp)
	if err != nil {
		return err
	}
	r.Action = raw.Action
	r.Result = raw.Result
	r.Details = raw.Details
	r.Timestamp = ts
	return nil
}

// Summary counts step outcomes for a run
type Summary struct {
	Total   int
	Success int
	Failed  int
	Failure int
	Error   int
}

// Passed returns true if every recorded step succeeded
func (s Summary) Passed() bool {
	return s.Total == s.Success
}

// ResultLog is the append-only sequence of step results for a single run.
// It is owned by one orchestrator and is not safe for concurrent use.
type ResultLog struct {
	results []StepResult
}

// NewResultLog creates an empty result log
func NewResultLog() *ResultLog {
	return &ResultLog{}
}

// Append records one or more step results in order
func (l *ResultLog) Append(results ...StepResult) {
	l.results = append(l.results, results...)
}

// Len returns the number of recorded step results
func (l *ResultLog) Len() int {
	return len(l.results)
}

// Results returns a copy of the recorded step results
func (l *ResultLog) Results() []StepResult {
	out := make([]StepResult, len(l.results))
	copy(out, l.results)
	return out
}

// Summary counts the recorded outcomes
func (l *ResultLog) Summary() Summary {
	s := Summary{Total: len(l.results)}
	for _, r := range l.results {
		switch r.Result {
		case OutcomeSuccess:
			s.Success++
		case OutcomeFailed:
			s.Failed++
		case OutcomeFailure:
			s.Failure++
		case OutcomeError:
			s.Error++
		}
	}
	return s
}
