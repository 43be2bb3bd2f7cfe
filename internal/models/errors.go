package models

import (
	"errors"
	"fmt"
)

// ErrLinkNotFound marks operations addressing an unknown link id.
// Handlers translate it to 404.
var ErrLinkNotFound = errors.New("invitation link not found")

// ErrLinkExpired marks submissions to a link past its expiry.
var ErrLinkExpired = errors.New("invitation link expired")

// ValidationError carries the name of a missing or malformed submission
// field. Handlers translate it to 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// EvaluationUnavailableError reports that the AI evaluation capability is
// absent or failed at call time. It never reaches an HTTP response: the
// orchestrator absorbs it and falls back to heuristic scoring.
type EvaluationUnavailableError struct {
	Reason string
}

func (e *EvaluationUnavailableError) Error() string {
	return "ai evaluation unavailable: " + e.Reason
}

// IsEvaluationUnavailable reports whether err (or anything it wraps) is an
// EvaluationUnavailableError.
func IsEvaluationUnavailable(err error) bool {
	var target *EvaluationUnavailableError
	return errors.As(err, &target)
}
