package model

import "fmt"

// ErrInvalidTile reports a TileNode invariant violation (spec.md §3).
type ErrInvalidTile struct{ Reason string }

func (e ErrInvalidTile) Error() string { return "invalid tile: " + e.Reason }

// The categories below mirror spec.md §7's abstract error kinds, each
// given a concrete Go type so callers can errors.As against a specific
// kind instead of string-matching (original_source/src/core/exceptions.py
// keeps the same category split in the python original).

// ObservationError wraps a sensor/vision failure: low confidence, a
// capture failure, or an OCR parse failure. The core treats these as
// "no update" for the tick rather than a hard failure.
type ObservationError struct {
	Kind       string // "low_confidence" | "capture_failed" | "parse_failed"
	Confidence float64
	Detail     string
}

func (e *ObservationError) Error() string {
	return fmt.Sprintf("observation error (%s): %s", e.Kind, e.Detail)
}

// PlanningError covers infeasible goals, validation failures, and
// exhausted replan budgets.
type PlanningError struct {
	Kind   string // "no_feasible_goal" | "infeasible" | "validation" | "replan_exhausted"
	Detail string
}

func (e *PlanningError) Error() string {
	return fmt.Sprintf("planning error (%s): %s", e.Kind, e.Detail)
}

// ActionError covers dispatch-time failures of a single action.
type ActionError struct {
	Kind   string // "precondition" | "rejected" | "timeout" | "retries_exceeded"
	Detail string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action error (%s): %s", e.Kind, e.Detail)
}

// StateError covers save-state failures: missing/corrupt files, size
// mismatches, rejected loads, index deserialization errors.
type StateError struct {
	Kind   string // "missing" | "corrupt" | "size_mismatch" | "load_rejected" | "index_decode"
	Detail string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state error (%s): %s", e.Kind, e.Detail)
}

// ResourceError covers memory/disk/budget limit trips.
type ResourceError struct {
	Kind   string // "memory" | "disk" | "budget"
	Detail string
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource error (%s): %s", e.Kind, e.Detail)
}

// FatalError covers unhandled internal invariant violations.
type FatalError struct {
	Detail string
}

func (e *FatalError) Error() string {
	return "fatal: " + e.Detail
}
