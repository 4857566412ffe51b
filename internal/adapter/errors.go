package adapter

import (
	"errors"
)

var (
	// ErrAuthExpired is matched by the error of any call answered with 401.
	ErrAuthExpired = errors.New("session expired, please sign in again")
	// ErrInvalidResponse is returned when a 2xx body does not have the
	// expected shape. The raw payload is never surfaced.
	ErrInvalidResponse = errors.New("invalid response format from server")
	// ErrRequestFailed is matched by every non-401 failure, including
	// network errors.
	ErrRequestFailed = errors.New("request failed")
)

// Status sentinels matched by [RequestError] in addition to its kind.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
)

// RequestError is a failed call: either a non-2xx response or a transport
// failure (StatusCode 0). Error returns the human-readable message only.
//
// It matches, via [errors.Is], [ErrAuthExpired] for 401 or
// [ErrRequestFailed] otherwise, the status sentinel of StatusCode if one
// exists, and the transport error if any.
type RequestError struct {
	StatusCode int
	Message    string

	kind   error
	status error
	cause  error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() []error {
	errs := make([]error, 0, 3)
	for _, err := range []error{e.kind, e.status, e.cause} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Message returns the user-facing text of err: the message of a
// [RequestError] if err wraps one, err.Error() otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return err.Error()
}
