// Package apierror defines the error taxonomy shared by handlers and domain
// collaborators, and the single boundary that renders errors onto the wire.
package apierror

import (
	"errors"
	"net/http"
)

// Sentinel errors that collaborators return (optionally wrapped) to select the
// HTTP status of a failed request.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrTooManyRequests = errors.New("too many requests")
	ErrNotImplemented  = errors.New("not implemented")
	ErrUnavailable     = errors.New("service unavailable")
)

var sentinelStatus = []struct {
	err    error
	status int
}{
	{ErrBadRequest, http.StatusBadRequest},
	{ErrForbidden, http.StatusForbidden},
	{ErrNotFound, http.StatusNotFound},
	{ErrTooManyRequests, http.StatusTooManyRequests},
	{ErrNotImplemented, http.StatusNotImplemented},
	{ErrUnavailable, http.StatusServiceUnavailable},
}

// Error carries an explicit status and client-facing message.
type Error struct {
	Status  int
	Message string
	Err     error
}

// New builds an Error with the given status. An empty message is replaced by
// the status text.
func New(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Status: status, Message: message}
}

// Wrap attaches a cause that is logged but never sent to the client.
func Wrap(status int, message string, err error) *Error {
	e := New(status, message)
	e.Err = err
	return e
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest reports a missing or malformed client parameter.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// ServerError reports a broken internal contract, such as a collaborator
// returning a value the gateway cannot interpret.
func ServerError(message string, err error) *Error {
	return Wrap(http.StatusInternalServerError, message, err)
}

// StatusOf returns the HTTP status an error maps to and whether it was
// recognised. Unrecognised errors map to 500.
func StatusOf(err error) (int, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status, true
	}
	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			return s.status, true
		}
	}
	return http.StatusInternalServerError, false
}
