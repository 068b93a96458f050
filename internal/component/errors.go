package component

import (
	"errors"
	"fmt"
)

// Domain errors for the component package.
//
// Failed operations never panic; they produce a Result whose Err wraps one of
// these sentinels:
//
//	if errors.Is(res.Err, component.ErrActionNotSupported) {
//	    // handle unsupported action
//	}
var (
	// ErrValidation is returned when input is rejected before any mutation:
	// empty names, out-of-range or non-numeric parameters, unknown enum values.
	ErrValidation = errors.New("component: validation failed")

	// ErrNotFound is returned when a component ID does not exist.
	ErrNotFound = errors.New("component: not found")

	// ErrUnknownAction is returned when an action key is not in the dispatch table.
	ErrUnknownAction = errors.New("component: unknown action")

	// ErrActionNotSupported is returned when an action key exists but the
	// component's variant does not implement it.
	ErrActionNotSupported = errors.New("component: action not supported")
)

// ActionError pairs a domain sentinel with the user-facing message shown to
// callers. Error returns the message alone; Unwrap exposes the sentinel.
type ActionError struct {
	Kind    error
	Message string
}

func (e *ActionError) Error() string {
	return e.Message
}

func (e *ActionError) Unwrap() error {
	return e.Kind
}

// failf builds an ActionError with a formatted message.
func failf(kind error, format string, args ...any) error {
	return &ActionError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Common failure messages. These are part of the observable contract.
const (
	MsgNotFound           = "Component not found"
	MsgUnknownAction      = "Unknown action"
	MsgActionNotSupported = "Action not supported"
)

// NotFoundError returns the error used when a component ID is unknown.
func NotFoundError() error {
	return &ActionError{Kind: ErrNotFound, Message: MsgNotFound}
}
