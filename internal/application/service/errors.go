package service

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthorizationNotFound matches every AuthorizationNotFoundError
	ErrAuthorizationNotFound = errors.New("authorization not found")

	// ErrReferenceNotFound matches every ReferenceNotFoundError
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrEDIRecordNotFound is returned when an EDI record id does not exist
	ErrEDIRecordNotFound = errors.New("edi record not found")

	// ErrEmptyICDCode is returned when a case summary is requested for an authorization without a diagnosis code
	ErrEmptyICDCode = errors.New("authorization has no ICD code")
)

// AuthorizationNotFoundError names the authorization id that was not found
type AuthorizationNotFoundError struct {
	ID int64
}

func (e *AuthorizationNotFoundError) Error() string {
	return fmt.Sprintf("Request ID not found: %d", e.ID)
}

func (e *AuthorizationNotFoundError) Is(target error) bool {
	return target == ErrAuthorizationNotFound
}

// UniqueAuthIDNotFoundError names a generated authorization id that was not found
type UniqueAuthIDNotFoundError struct {
	UniqueAuthID string
}

func (e *UniqueAuthIDNotFoundError) Error() string {
	return fmt.Sprintf("Authorization not found: %s", e.UniqueAuthID)
}

func (e *UniqueAuthIDNotFoundError) Is(target error) bool {
	return target == ErrAuthorizationNotFound
}

// ReferenceNotFoundError names a missing patient, provider, insurance, practice or order
type ReferenceNotFoundError struct {
	Kind string
	ID   int64
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Kind, e.ID)
}

func (e *ReferenceNotFoundError) Is(target error) bool {
	return target == ErrReferenceNotFound
}

// Reference kinds
const (
	KindPatient   = "patient"
	KindProvider  = "provider"
	KindInsurance = "insurance"
	KindPractice  = "practice"
	KindOrder     = "order"
)
