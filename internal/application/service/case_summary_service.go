package service

import (
	"context"
	"strings"

	"github.com/garyjia/speedauth/internal/application/port"
)

// CaseSummaryService produces a model-written overview of an authorization's diagnosis
type CaseSummaryService interface {
	Summarize(ctx context.Context, authorizationID int64) (*port.CaseSummary, error)
}

type caseSummaryServiceImpl struct {
	authRepo   port.AuthorizationRepository
	summarizer port.CaseSummarizer
	logger     Logger
}

// NewCaseSummaryService creates a new CaseSummaryService
func NewCaseSummaryService(authRepo port.AuthorizationRepository, summarizer port.CaseSummarizer, logger Logger) CaseSummaryService {
	return &caseSummaryServiceImpl{
		authRepo:   authRepo,
		summarizer: summarizer,
		logger:     logger,
	}
}

func (s *caseSummaryServiceImpl) Summarize(ctx context.Context, authorizationID int64) (*port.CaseSummary, error) {
	auth, err := loadAuthorization(ctx, s.authRepo, authorizationID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(auth.ICDCodeAuth) == "" {
		return nil, ErrEmptyICDCode
	}

	summary, err := s.summarizer.Summarize(ctx, auth)
	if err != nil {
		s.logger.Error("Failed to summarize case", "error", err, "id", authorizationID)
		return nil, err
	}

	s.logger.Info("Case summarized", "id", authorizationID, "icd_code", auth.ICDCodeAuth, "source", summary.Source)
	return summary, nil
}
