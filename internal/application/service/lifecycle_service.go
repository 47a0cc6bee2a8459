package service

import (
	"context"
	"errors"
	"time"

	"github.com/garyjia/speedauth/internal/application/port"
	"github.com/garyjia/speedauth/internal/domain/entity"
	"github.com/garyjia/speedauth/internal/domain/workflow"
)

// StatusAlreadyVerified is reported when a decision is requested for a finalized authorization
const StatusAlreadyVerified = "alreadyVerified"

// DecisionResult is the outcome of an approve/reject request
type DecisionResult struct {
	AuthorizationID int64
	Status          string
	ApprovalReason  string

	// EDIFilePath is set only when the decision drew a random outcome
	EDIFilePath string

	AlreadyVerified bool
}

// LifecycleService drives the approval, eligibility, provider validation and CPT workflows
type LifecycleService interface {
	Decide(ctx context.Context, authorizationID int64) (*DecisionResult, error)

	CheckEligibility(ctx context.Context, authorizationID int64) (bool, error)
	CheckEligibilityForList(ctx context.Context, ids []int64) error
	UncheckEligibilityForList(ctx context.Context, ids []int64) error

	ValidateProvider(ctx context.Context, authorizationID int64) (bool, error)
	ValidateProviderForList(ctx context.Context, ids []int64) error
	InvalidateProviderForList(ctx context.Context, ids []int64) error

	ValidateCPT(ctx context.Context, authorizationID int64) (bool, error)
	ResetCPTForList(ctx context.Context, ids []int64) error
}

type lifecycleServiceImpl struct {
	authRepo   port.AuthorizationRepository
	ediService EDIService
	notifier   port.DecisionNotifier
	txManager  port.TransactionManager
	chooser    workflow.Chooser
	logger     Logger
	now        func() time.Time
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(
	authRepo port.AuthorizationRepository,
	ediService EDIService,
	notifier port.DecisionNotifier,
	txManager port.TransactionManager,
	chooser workflow.Chooser,
	logger Logger,
) LifecycleService {
	return &lifecycleServiceImpl{
		authRepo:   authRepo,
		ediService: ediService,
		notifier:   notifier,
		txManager:  txManager,
		chooser:    chooser,
		logger:     logger,
		now:        time.Now,
	}
}

// Decide fires the decision trigger. A finalized authorization yields an AlreadyVerified result and is left untouched.
func (s *lifecycleServiceImpl) Decide(ctx context.Context, authorizationID int64) (*DecisionResult, error) {
	var (
		auth     *entity.Authorization
		decision workflow.Decision
	)

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		auth, err = loadAuthorization(txCtx, s.authRepo, authorizationID)
		if err != nil {
			return err
		}

		decision, err = workflow.Decide(txCtx, auth.ApprovalStatus, s.chooser)
		if err != nil {
			return err
		}

		s.applyDecision(auth, decision)
		return s.authRepo.Update(txCtx, auth)
	})

	if errors.Is(err, workflow.ErrAlreadyDecided) {
		s.logger.Info("Authorization already verified", "id", authorizationID, "status", auth.ApprovalStatus)
		return &DecisionResult{
			AuthorizationID: authorizationID,
			Status:          StatusAlreadyVerified,
			AlreadyVerified: true,
		}, nil
	}
	if err != nil {
		s.logger.Error("Failed to decide authorization", "error", err, "id", authorizationID)
		return nil, err
	}

	s.logger.Info("Authorization decided",
		"id", authorizationID,
		"from", decision.From,
		"to", decision.To,
		"randomized", decision.Randomized)

	result := &DecisionResult{
		AuthorizationID: authorizationID,
		Status:          decision.To.String(),
		ApprovalReason:  decision.Reason,
	}

	if decision.Randomized {
		doc, err := s.ediService.Generate(ctx, authorizationID, decision.To.Suffix())
		if err != nil {
			return nil, err
		}
		result.EDIFilePath = doc.Path
	}

	s.notify(ctx, auth, decision, result.EDIFilePath)
	return result, nil
}

func (s *lifecycleServiceImpl) applyDecision(auth *entity.Authorization, d workflow.Decision) {
	now := s.now()

	auth.ApprovalStatus = d.To
	auth.ApprovalReason = d.Reason
	auth.RequestType = workflow.RequestTypeSubmitted

	if d.Randomized {
		auth.ApprovalDate = entity.DatePtr(now)
		end := auth.ApprovalDate.AddMonths(1)
		auth.ApprovalEndDate = &end
		return
	}
	auth.AuthorizationStartDate = entity.DatePtr(now)
}

func (s *lifecycleServiceImpl) notify(ctx context.Context, auth *entity.Authorization, d workflow.Decision, ediPath string) {
	if s.notifier == nil {
		return
	}

	err := s.notifier.NotifyDecision(ctx, port.DecisionEvent{
		AuthorizationID: auth.AuthorizationID,
		UniqueAuthID:    auth.UniqueAuthID,
		FromStatus:      d.From.String(),
		ToStatus:        d.To.String(),
		Reason:          d.Reason,
		EDIFilePath:     ediPath,
	})
	if err != nil {
		s.logger.Error("Failed to send decision notification", "error", err, "id", auth.AuthorizationID)
	}
}

// CheckEligibility flips a coin and stores Eligible or Not Eligible
func (s *lifecycleServiceImpl) CheckEligibility(ctx context.Context, authorizationID int64) (bool, error) {
	eligible := workflow.CoinFlip(s.chooser)
	err := s.mutate(ctx, authorizationID, func(auth *entity.Authorization) {
		auth.EligibilityStatus = workflow.EligibilityFor(eligible)
	})
	return eligible, err
}

func (s *lifecycleServiceImpl) CheckEligibilityForList(ctx context.Context, ids []int64) error {
	return s.forEach(ctx, ids, func(auth *entity.Authorization) {
		auth.EligibilityStatus = workflow.EligibilityFor(workflow.CoinFlip(s.chooser))
	})
}

func (s *lifecycleServiceImpl) UncheckEligibilityForList(ctx context.Context, ids []int64) error {
	return s.forEach(ctx, ids, func(auth *entity.Authorization) {
		auth.EligibilityStatus = workflow.EligibilityUnchecked
	})
}

// ValidateProvider flips a coin and stores Valid or Invalid
func (s *lifecycleServiceImpl) ValidateProvider(ctx context.Context, authorizationID int64) (bool, error) {
	valid := workflow.CoinFlip(s.chooser)
	err := s.mutate(ctx, authorizationID, func(auth *entity.Authorization) {
		auth.ValidationStatus = workflow.ValidationFor(valid)
	})
	return valid, err
}

func (s *lifecycleServiceImpl) ValidateProviderForList(ctx context.Context, ids []int64) error {
	return s.forEach(ctx, ids, func(auth *entity.Authorization) {
		auth.ValidationStatus = workflow.ValidationFor(workflow.CoinFlip(s.chooser))
	})
}

func (s *lifecycleServiceImpl) InvalidateProviderForList(ctx context.Context, ids []int64) error {
	return s.forEach(ctx, ids, func(auth *entity.Authorization) {
		auth.ValidationStatus = workflow.ValidationUnchecked
	})
}

// ValidateCPT flips a coin for whether the procedure needs authorization.
// A procedure that does not is approved on the spot.
func (s *lifecycleServiceImpl) ValidateCPT(ctx context.Context, authorizationID int64) (bool, error) {
	required := workflow.CoinFlip(s.chooser)
	err := s.mutate(ctx, authorizationID, func(auth *entity.Authorization) {
		auth.RequestStatus = workflow.RequestFor(required)
		if !required {
			auth.ApprovalStatus = workflow.ApprovalApproved
			auth.ApprovalReason = workflow.ReasonCPTExempt
		}
	})
	return required, err
}

func (s *lifecycleServiceImpl) ResetCPTForList(ctx context.Context, ids []int64) error {
	return s.forEach(ctx, ids, func(auth *entity.Authorization) {
		auth.ApprovalStatus = workflow.ApprovalYetToSubmit
		auth.ApprovalReason = ""
		auth.RequestStatus = workflow.RequestUnchecked
	})
}

func (s *lifecycleServiceImpl) mutate(ctx context.Context, id int64, apply func(*entity.Authorization)) error {
	auth, err := loadAuthorization(ctx, s.authRepo, id)
	if err != nil {
		return err
	}

	apply(auth)
	if err := s.authRepo.Update(ctx, auth); err != nil {
		s.logger.Error("Failed to save authorization", "error", err, "id", id)
		return err
	}
	return nil
}

// forEach applies the change to each id in order and stops at the first failure.
// Records saved before the failure keep their new state.
func (s *lifecycleServiceImpl) forEach(ctx context.Context, ids []int64, apply func(*entity.Authorization)) error {
	for _, id := range ids {
		if err := s.mutate(ctx, id, apply); err != nil {
			s.logger.Error("Batch update stopped", "error", err, "id", id)
			return err
		}
	}
	s.logger.Info("Batch update completed", "count", len(ids))
	return nil
}
