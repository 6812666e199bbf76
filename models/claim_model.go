package models

// StartClaimRequest is the body sent to the trigger endpoint to open a claim.
type StartClaimRequest struct {
	Action string `json:"action"`
}

const ActionStartClaim = "start_claim"

// TriggerData is the part of the upstream trigger reply the wizard reads.
type TriggerData struct {
	ResumeURL string `json:"resumeUrl"`
}

// SubmitProductsRequest is the final body posted to the resume endpoint.
type SubmitProductsRequest struct {
	SelectedProducts []string `json:"selectedProducts"`
	ClaimID          string   `json:"claimId"`
	Timestamp        string   `json:"timestamp"`
}
