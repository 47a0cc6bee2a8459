package workflow

// Fixed reasons written by deterministic transitions
const (
	ReasonAppealInitiated = "Appeal process initiated; request is under reconsideration."
	ReasonChecksCompleted = "All necessary checks completed; authorization is approved as per policy standards."
	ReasonCPTExempt       = "The CPT does not require authorization, and the treatment will proceed."
	ReasonInProgress      = "Status is in Progress.. "
)

// decisionReasons holds the pools a randomized decision draws its reason from
var decisionReasons = map[ApprovalStatus][]string{
	ApprovalApproved: {
		"All necessary checks completed; authorization is approved as per policy standards.",
		"Medical review confirms the patient meets eligibility for the requested procedure.",
		"Eligibility criteria have been satisfied; authorization is granted for this request.",
		"Patient's records support the procedure; approval is granted for the scheduled treatment.",
		"Procedure aligns with policy requirements, and authorization is now approved.",
	},
	ApprovalDenied: {
		"Required documentation is missing; request cannot proceed without additional information.",
		"Patient does not meet the required eligibility standards for the requested procedure.",
		"Policy criteria for approval are unmet; the authorization request is declined.",
		"Financial or medical authorization pending; unable to approve at this stage.",
		"Incomplete submission of essential documents results in denial of this request.",
	},
	ApprovalNeedMR: {
		"Further information is needed; additional review is required to complete the authorization. Please upload any relevant documents such as Laboratory Reports or Patient Medical Records.",
		"Pending clarification from clinical team; verification of details is underway. Please upload any additional documents including Peer-to-Peer Consultation records if available.",
		"Request is on hold pending policy compliance verification and eligibility checks. Kindly upload relevant documentation like Laboratory Reports or Patient Medical Records to expedite the process.",
		"Additional documentation required from patient or provider before final approval. Upload any supporting documents such as Peer-to-Peer Consultation reports.",
		"Request under review; awaiting results of supplementary checks and assessments. Please upload any further documents like Laboratory Reports or Patient Medical Records to assist in the review process.",
	},
	ApprovalPeerToPeer: {
		"A peer-to-peer consultation is required to determine eligibility for this request.",
		"The case needs further discussion between the reviewing physician and the treating provider.",
		"Pending direct communication between healthcare professionals before a decision can be made.",
		"A specialist review is necessary; the treating physician must arrange a peer-to-peer consultation.",
		"Decision deferred until a peer-to-peer discussion is completed between medical experts.",
	},
}

// Reasons returns the reason pool for a randomized outcome
func Reasons(status ApprovalStatus) []string {
	return decisionReasons[status]
}
