package agent

import "fmt"

// PlanningError is fatal: a plan that cannot be parsed aborts the turn
// before any tool runs. Raw keeps the model output for diagnostics.
type PlanningError struct {
	Raw string
	Err error
}

func (e *PlanningError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("planning failed: %v", e.Err)
	}
	return "planning failed"
}

func (e *PlanningError) Unwrap() error {
	return e.Err
}

// StreamInterruptedError reports an explainer stream that broke mid-answer.
// Partial holds whatever tokens made it out before the failure.
type StreamInterruptedError struct {
	Partial string
	Err     error
}

func (e *StreamInterruptedError) Error() string {
	return fmt.Sprintf("answer stream interrupted: %v", e.Err)
}

func (e *StreamInterruptedError) Unwrap() error {
	return e.Err
}
