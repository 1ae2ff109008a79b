package booking

import (
	"errors"
	"fmt"
)

// ErrAlreadySubmitted is returned when Submit is called on a composer that
// already went through; resubmission requires an explicit Reset.
var ErrAlreadySubmitted = errors.New("booking already submitted")

// ValidationError reports a form field that blocks submission. It is raised
// before any network call so the user can correct input locally.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s is required", e.Field)
}
