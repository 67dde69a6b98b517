package models

import (
	"errors"
	"fmt"
	"time"
)

// ConfigurationError reports missing credentials or invalid tool setup.
// It is fatal at startup, before any planning call is attempted.
type ConfigurationError struct {
	Key string // credential or setting name, when known
	Msg string
	Err error
}

func (e ConfigurationError) Error() string {
	switch {
	case e.Key != "" && e.Msg != "":
		return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Msg)
	case e.Key != "":
		return fmt.Sprintf("configuration error: missing %s", e.Key)
	case e.Msg != "":
		return "configuration error: " + e.Msg
	default:
		return "configuration error"
	}
}

func (e ConfigurationError) Unwrap() error { return e.Err }

// ToolUnavailableError reports that one configured tool transport could not
// be reached. The planning run continues with the remaining tools; the
// failure is surfaced as a notice on the artifact.
type ToolUnavailableError struct {
	Tool string
	Err  error
}

func (e ToolUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tool %q unavailable: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("tool %q unavailable", e.Tool)
}

func (e ToolUnavailableError) Unwrap() error { return e.Err }

// OrchestrationTimeoutError reports that the whole-run ceiling elapsed. No
// partial artifact is returned alongside it.
type OrchestrationTimeoutError struct {
	Timeout time.Duration
	Err     error
}

func (e OrchestrationTimeoutError) Error() string {
	return fmt.Sprintf("planning run exceeded the %s ceiling", e.Timeout)
}

func (e OrchestrationTimeoutError) Unwrap() error { return e.Err }

// IncompleteResultError reports a malformed or wrong-shape itinerary from
// the planner backend. RawOutput carries the model output for inspection.
type IncompleteResultError struct {
	Reason    string
	RawOutput string
	Err       error
}

func (e IncompleteResultError) Error() string {
	if e.Reason != "" {
		return "incomplete itinerary: " + e.Reason
	}
	return "incomplete itinerary"
}

func (e IncompleteResultError) Unwrap() error { return e.Err }

// ExportError reports an artifact that cannot be exported as a calendar.
// It blocks the calendar download only; itinerary display is unaffected.
type ExportError struct {
	Msg string
	Err error
}

func (e ExportError) Error() string {
	if e.Msg != "" {
		return "calendar export failed: " + e.Msg
	}
	return "calendar export failed"
}

func (e ExportError) Unwrap() error { return e.Err }

// ValidationError reports an invalid field on an incoming request.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	switch {
	case e.Field != "" && e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	default:
		return "validation error"
	}
}

func IsConfiguration(err error) bool {
	var target ConfigurationError
	return errors.As(err, &target)
}

func IsToolUnavailable(err error) bool {
	var target ToolUnavailableError
	return errors.As(err, &target)
}

func IsOrchestrationTimeout(err error) bool {
	var target OrchestrationTimeoutError
	return errors.As(err, &target)
}

func IsIncompleteResult(err error) bool {
	var target IncompleteResultError
	return errors.As(err, &target)
}

func IsExport(err error) bool {
	var target ExportError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}
