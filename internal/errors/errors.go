package errors

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("resource not found")
var ErrUnauthorized = errors.New("user is not authorized")
var ErrForbidden = errors.New("operation is forbidden for user")

// RejectionError is a business-rule rejection: the backend understood the
// request and refused it for a domain reason (duplicate flight number, the
// 24-hour cancellation window). Message is safe to show to the user.
type RejectionError struct {
	Status  int
	Message string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("rejected (%d): %s", e.Status, e.Message)
}

// AsRejection unwraps err into a RejectionError if it is one.
func AsRejection(err error) (*RejectionError, bool) {
	var re *RejectionError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
