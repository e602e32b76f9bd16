package panel

import (
	"errors"
	"fmt"
)

// Reason classifies why a panel could not produce its view model.
type Reason string

const (
	ReasonTransport   Reason = "transport"
	ReasonStatus      Reason = "status"
	ReasonPayload     Reason = "payload"
	ReasonNotFound    Reason = "not_found"
	ReasonUnavailable Reason = "unavailable"
	ReasonRender      Reason = "render"
)

// GenericMessage is shown whenever a failure carries no label of its own.
const GenericMessage = "Something went wrong. Please try again."

// Failure is the typed error every panel step returns. Label is the short,
// user-safe text shown in place of GenericMessage; Err is only logged.
type Failure struct {
	Reason Reason
	Label  string
	Err    error
}

func (f *Failure) Error() string {
	msg := string(f.Reason)
	if f.Label != "" {
		msg += ": " + f.Label
	}
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Fail builds a Failure without a user-facing label.
func Fail(reason Reason, err error) *Failure {
	return &Failure{Reason: reason, Err: err}
}

// Failf builds a payload Failure from a format string.
func Failf(format string, args ...any) *Failure {
	return &Failure{Reason: ReasonPayload, Err: fmt.Errorf(format, args...)}
}

// Message returns the text to display for err.
func Message(err error) string {
	var f *Failure
	if errors.As(err, &f) && f.Label != "" {
		return f.Label
	}
	return GenericMessage
}

// ReasonOf reports the failure reason of err. Errors that are not a Failure
// count as transport failures.
func ReasonOf(err error) Reason {
	var f *Failure
	if errors.As(err, &f) {
		return f.Reason
	}
	return ReasonTransport
}
