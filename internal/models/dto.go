package models

import "time"

type GenerateLinkRequest struct {
	ClientID   string `json:"client_id"`
	Profession string `json:"profession"`
	Email      string `json:"email"`
}

type GenerateLinkResponse struct {
	Link      string    `json:"link"`
	LinkID    string    `json:"link_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SubmitFormResponse struct {
	Message string `json:"message"`
}

// EvaluationState tags which terminal state the orchestrator reached.
type EvaluationState string

const (
	StateNoApplications    EvaluationState = "no_applications"
	StateAIEvaluated       EvaluationState = "ai_evaluated"
	StateFallbackEvaluated EvaluationState = "fallback_evaluated"
)

// EvaluationResult is the derived output for a link's applications:
// a narrative plus the application list, scored and ranked only when the
// fallback path ran.
type EvaluationResult struct {
	State        EvaluationState `json:"state"`
	Narrative    string          `json:"narrative"`
	Applications []Application   `json:"-"`
}

type ApplicationsResponse struct {
	LinkID       string        `json:"link_id"`
	ClientID     string        `json:"client_id"`
	Profession   string        `json:"profession"`
	CompanyEmail string        `json:"company_email"`
	Applications []Application `json:"applications"`
	Evaluation   string        `json:"evaluation"`
}
