package port

import (
	"context"

	"github.com/garyjia/speedauth/internal/domain/entity"
)

// DecisionEvent describes a completed approve/reject decision
type DecisionEvent struct {
	AuthorizationID int64
	UniqueAuthID    string
	FromStatus      string
	ToStatus        string
	Reason          string
	EDIFilePath     string
}

// DecisionNotifier announces decisions to reviewers
type DecisionNotifier interface {
	NotifyDecision(ctx context.Context, event DecisionEvent) error
}

// CaseSummary is a model-generated overview of a diagnosis
type CaseSummary struct {
	ICDCode           string   `json:"icdCode"`
	Diagnosis         string   `json:"diagnosis"`
	CarePlan          []string `json:"carePlan"`
	EstimatedStayDays int      `json:"estimatedStayDays"`
	Notes             string   `json:"notes"`
	Source            string   `json:"source"`
}

// Case summary sources
const (
	SummarySourceModel    = "model"
	SummarySourceMock     = "mock"
	SummarySourceFallback = "fallback"
)

// CaseSummarizer produces a case summary for an authorization's diagnosis
type CaseSummarizer interface {
	Summarize(ctx context.Context, auth *entity.Authorization) (*CaseSummary, error)
}
