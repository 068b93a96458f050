package component

import "errors"

// Result is the plain outcome of a component operation.
//
// Success and Message mirror what UI collaborators display. Data carries an
// optional payload (for example the channel list of a television). Err is set
// on failure and wraps one of the package sentinels; it is not serialised.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Err     error  `json:"-"`
}

// OK returns a successful result with the given message.
func OK(message string) Result {
	return Result{Success: true, Message: message}
}

// Failed converts an error into a failed result. ActionError messages are
// used verbatim; any other error falls back to its Error text.
func Failed(err error) Result {
	msg := err.Error()
	var ae *ActionError
	if errors.As(err, &ae) {
		msg = ae.Message
	}
	return Result{Success: false, Message: msg, Err: err}
}
