package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when no transition exists for a trigger
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrGuardFailed is returned when every candidate transition was rejected by its guard
	ErrGuardFailed = errors.New("guard condition failed")

	// ErrAlreadyDecided is returned when a decision is requested for a finalized authorization
	ErrAlreadyDecided = errors.New("authorization already verified")

	// ErrMissingStatus is returned when the authorization carries no approval status
	ErrMissingStatus = errors.New("approval status is missing")
)
