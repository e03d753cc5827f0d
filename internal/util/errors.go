package util

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every service. Controllers map these onto HTTP
// codes in RespondError so that "no data yet" never gets conflated with
// "failed to load".

// ValidationError reports malformed input: a target that does not match the
// measurement type, a rating outside 1-5, an incomplete submission batch.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// StateError reports a transition not permitted from the current state or
// for the acting role.
type StateError struct {
	Entity string
	ID     string
	From   string
	To     string
	Reason string
}

func (e *StateError) Error() string {
	if e.To != "" {
		return fmt.Sprintf("%s %s: transition %s -> %s not allowed: %s", e.Entity, e.ID, e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, e.Reason)
}

// NotFoundError reports an unknown entity id.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// UpstreamError wraps a failed or timed-out collaborator call. Callers render
// a retry affordance instead of an empty success state.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s unavailable: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailRegistered = errors.New("email already registered")
