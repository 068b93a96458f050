package telemetry

import (
	"errors"
	"strings"

	"github.com/nerrad567/homesim/internal/component"
)

// Outcome labels for action results.
const (
	outcomeOK           = "ok"
	outcomeNotFound     = "not_found"
	outcomeUnknown      = "unknown_action"
	outcomeNotSupported = "not_supported"
	outcomeInvalid      = "invalid"
	outcomeError        = "error"
)

// outcome classifies an action result by its error sentinel.
func outcome(res component.Result) string {
	switch {
	case res.Success:
		return outcomeOK
	case errors.Is(res.Err, component.ErrNotFound):
		return outcomeNotFound
	case errors.Is(res.Err, component.ErrUnknownAction):
		return outcomeUnknown
	case errors.Is(res.Err, component.ErrActionNotSupported):
		return outcomeNotSupported
	case errors.Is(res.Err, component.ErrValidation):
		return outcomeInvalid
	default:
		return outcomeError
	}
}

// actionLabel lower-cases known action keys and folds anything else into
// "other" to keep label cardinality bounded.
func actionLabel(action string) string {
	if component.IsAction(action) {
		return strings.ToLower(action)
	}
	return "other"
}
