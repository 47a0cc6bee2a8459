package entity

import "github.com/garyjia/speedauth/internal/domain/workflow"

// Authorization is a prior-authorization request tracked through the approval,
// eligibility, provider validation and CPT workflows
type Authorization struct {
	AuthorizationID        int64                      `json:"authorizationId"`
	UniqueAuthID           string                     `json:"uniqueAuthId"`
	RequestType            string                     `json:"requestType"`
	ProviderName           string                     `json:"providerName"`
	FacilityLocation       string                     `json:"facilityLocation"`
	ICDCodeList            string                     `json:"icdCodeList"`
	ICDCodeAuth            string                     `json:"icdCodeAuth"`
	ProcedureCodeAuth      string                     `json:"procedureCodeAuth"`
	RequestStatus          workflow.RequestStatus     `json:"requestStatus"`
	AuthorizationStartDate *Date                      `json:"authorizationStartDate"`
	AuthorizationEndDate   *Date                      `json:"authorizationEndDate"`
	Units                  *int                       `json:"units"`
	Description            string                     `json:"description"`
	ClaimStatus            string                     `json:"claimStatus"`
	ApprovalStatus         workflow.ApprovalStatus    `json:"approvalStatus"`
	ApprovalReason         string                     `json:"approvalReason"`
	ApprovalDate           *Date                      `json:"approvalDate"`
	ApprovalEndDate        *Date                      `json:"approvalEndDate"`
	EligibilityStatus      workflow.EligibilityStatus `json:"eligibilityStatus"`
	ValidationStatus       workflow.ValidationStatus  `json:"validationStatus"`
	OrderType              string                     `json:"orderType"`
	InitialSaveStatus      string                     `json:"initialSaveStatus"`

	// Optional references; the referenced records are owned elsewhere
	PatientID   *int64 `json:"patientId"`
	ProviderID  *int64 `json:"providerId"`
	InsuranceID *int64 `json:"insuranceId"`
	PracticeID  *int64 `json:"practiceId"`
	OrderID     *int64 `json:"orderId"`
}

// AuthorizationLinks names the reference records a new authorization points at
type AuthorizationLinks struct {
	PatientID   *int64
	ProviderID  *int64
	InsuranceID *int64
	PracticeID  *int64
	OrderID     *int64
}
