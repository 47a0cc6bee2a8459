package workflow

import "strings"

// ApprovalStatus is the primary decision state of an authorization
type ApprovalStatus string

const (
	ApprovalYetToSubmit ApprovalStatus = "yet to submit"
	ApprovalApproved    ApprovalStatus = "Approved"
	ApprovalDenied      ApprovalStatus = "Denied"
	ApprovalNeedMR      ApprovalStatus = "Need MR"
	ApprovalPeerToPeer  ApprovalStatus = "Peer to Peer"
	ApprovalInProgress  ApprovalStatus = "In Progress"
)

// IsValid returns true if the status is one of the known approval statuses
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalYetToSubmit, ApprovalApproved, ApprovalDenied,
		ApprovalNeedMR, ApprovalPeerToPeer, ApprovalInProgress:
		return true
	}
	return false
}

// IsDecidable returns true if a decision may still be taken from this status.
// Every other value counts as already verified.
func (s ApprovalStatus) IsDecidable() bool {
	switch s {
	case ApprovalYetToSubmit, ApprovalDenied, ApprovalPeerToPeer, ApprovalNeedMR:
		return true
	}
	return false
}

// String returns the stored representation
func (s ApprovalStatus) String() string {
	return string(s)
}

// Suffix returns the lower-cased form used in EDI file names
func (s ApprovalStatus) Suffix() string {
	return strings.ToLower(string(s))
}

// EligibilityStatus is the outcome of the eligibility check
type EligibilityStatus string

const (
	EligibilityEligible    EligibilityStatus = "Eligible"
	EligibilityNotEligible EligibilityStatus = "Not Eligible"
	EligibilityUnchecked   EligibilityStatus = "Check Eligibility"
)

// EligibilityFor maps a check result to its stored status
func EligibilityFor(eligible bool) EligibilityStatus {
	if eligible {
		return EligibilityEligible
	}
	return EligibilityNotEligible
}

// String returns the stored representation
func (s EligibilityStatus) String() string {
	return string(s)
}

// ValidationStatus is the outcome of the provider validation check
type ValidationStatus string

const (
	ValidationValid     ValidationStatus = "Valid"
	ValidationInvalid   ValidationStatus = "Invalid"
	ValidationUnchecked ValidationStatus = "Check Validation"
)

// ValidationFor maps a check result to its stored status
func ValidationFor(valid bool) ValidationStatus {
	if valid {
		return ValidationValid
	}
	return ValidationInvalid
}

// String returns the stored representation
func (s ValidationStatus) String() string {
	return string(s)
}

// RequestStatus tracks whether the procedure needs authorization at all
type RequestStatus string

const (
	RequestAuthRequired    RequestStatus = "Auth Required"
	RequestAuthNotRequired RequestStatus = "Auth Not Required"
	RequestUnchecked       RequestStatus = "Check CPT Validation"
)

// RequestFor maps a CPT check result to its stored status
func RequestFor(authRequired bool) RequestStatus {
	if authRequired {
		return RequestAuthRequired
	}
	return RequestAuthNotRequired
}

// String returns the stored representation
func (s RequestStatus) String() string {
	return string(s)
}

// Request types
const (
	RequestTypeDraft     = "draft"
	RequestTypeSubmitted = "submitted"
)

// InitialSaveStatusSaved is set on every newly created authorization
const InitialSaveStatusSaved = "saved"
