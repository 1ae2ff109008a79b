package clients

import (
	"errors"
	"fmt"
)

// ErrAuthRequired is returned when an operation that needs a token is
// attempted while the session store is empty.
var ErrAuthRequired = errors.New("authentication required")

// RequestError describes a failed gateway operation. Status is the HTTP
// status code, or 0 when the transport itself failed before a response
// arrived. Message prefers the server-supplied message and falls back to
// a generic per-operation one.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is a RequestError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Status == status
}
