package auth

import "errors"

// ErrPasswordMismatch is returned by Register before any network call when
// the password confirmation does not match. The server performs its own
// validation; this is the local first line of defense.
var ErrPasswordMismatch = errors.New("password confirmation does not match")
