package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrNilState = errors.New("state cannot be nil")
	ErrNilEvent = errors.New("event cannot be nil")
)

// NoTransitionError indicates no transition is defined for the state/event
// combination.
type NoTransitionError struct {
	StateName string
	EventName string
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("no transition from state %q for event %q", e.StateName, e.EventName)
}

// RejectedError indicates every candidate transition was blocked by guards.
type RejectedError struct {
	StateName string
	EventName string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("transition from state %q for event %q rejected by guards", e.StateName, e.EventName)
}

// IsNoTransition reports whether err is a NoTransitionError.
func IsNoTransition(err error) bool {
	var e *NoTransitionError
	return errors.As(err, &e)
}

// IsRejected reports whether err is a RejectedError.
func IsRejected(err error) bool {
	var e *RejectedError
	return errors.As(err, &e)
}
