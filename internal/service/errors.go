package service

import "errors"

// Validation errors are caught before any network call and carry the message
// shown to the user.
var (
	ErrInvalidFlight   = errors.New("invalid flight data, please check your inputs")
	ErrSameCities      = errors.New("origin and destination must differ")
	ErrIncompleteForm  = errors.New("please fill all fields and select seats for all passengers")
	ErrNotLoggedIn     = errors.New("no user is logged in")
	ErrSessionNotFound = errors.New("booking session not found")
	ErrNoPendingCancel = errors.New("no cancellation is pending confirmation")

	// ErrBookingFailed is the single generic outcome of a failed submission.
	// The orchestrator deliberately does not distinguish which passenger
	// failed or why.
	ErrBookingFailed = errors.New("booking failed, please try again")
)
