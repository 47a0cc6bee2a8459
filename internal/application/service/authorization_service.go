package service

import (
	"context"
	"fmt"
	"time"

	"github.com/garyjia/speedauth/internal/application/port"
	"github.com/garyjia/speedauth/internal/domain/entity"
	"github.com/garyjia/speedauth/internal/domain/identifier"
	"github.com/garyjia/speedauth/internal/domain/workflow"
)

// New authorizations stay valid for a week
const defaultAuthorizationDays = 7

// AuthorizationService manages the authorization records themselves
type AuthorizationService interface {
	Create(ctx context.Context, auth *entity.Authorization) (*entity.Authorization, error)
	CreateWithLinks(ctx context.Context, auth *entity.Authorization, links entity.AuthorizationLinks) (*entity.Authorization, error)
	Get(ctx context.Context, id int64) (*entity.Authorization, error)
	GetByUniqueAuthID(ctx context.Context, uniqueAuthID string) (*entity.Authorization, error)
	List(ctx context.Context) ([]*entity.Authorization, error)
	Update(ctx context.Context, id int64, changes *entity.Authorization) (*entity.Authorization, error)
	UpdateRequestStatus(ctx context.Context, id int64, status workflow.RequestStatus) (*entity.Authorization, error)
	MarkInProgress(ctx context.Context, id int64) (*entity.Authorization, error)
	Delete(ctx context.Context, id int64) error
}

type authorizationServiceImpl struct {
	authRepo      port.AuthorizationRepository
	patientRepo   port.PatientRepository
	providerRepo  port.ProviderRepository
	insuranceRepo port.InsuranceRepository
	practiceRepo  port.PracticeRepository
	orderRepo     port.OrderRepository
	txManager     port.TransactionManager
	logger        Logger
	now           func() time.Time
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(
	authRepo port.AuthorizationRepository,
	patientRepo port.PatientRepository,
	providerRepo port.ProviderRepository,
	insuranceRepo port.InsuranceRepository,
	practiceRepo port.PracticeRepository,
	orderRepo port.OrderRepository,
	txManager port.TransactionManager,
	logger Logger,
) AuthorizationService {
	return &authorizationServiceImpl{
		authRepo:      authRepo,
		patientRepo:   patientRepo,
		providerRepo:  providerRepo,
		insuranceRepo: insuranceRepo,
		practiceRepo:  practiceRepo,
		orderRepo:     orderRepo,
		txManager:     txManager,
		logger:        logger,
		now:           time.Now,
	}
}

// Create stores a new authorization with the creation defaults applied
func (s *authorizationServiceImpl) Create(ctx context.Context, auth *entity.Authorization) (*entity.Authorization, error) {
	return s.CreateWithLinks(ctx, auth, entity.AuthorizationLinks{
		PatientID:   auth.PatientID,
		ProviderID:  auth.ProviderID,
		InsuranceID: auth.InsuranceID,
		PracticeID:  auth.PracticeID,
		OrderID:     auth.OrderID,
	})
}

// CreateWithLinks verifies every referenced record exists, then stores the authorization
func (s *authorizationServiceImpl) CreateWithLinks(ctx context.Context, auth *entity.Authorization, links entity.AuthorizationLinks) (*entity.Authorization, error) {
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.checkLinks(txCtx, links); err != nil {
			return err
		}

		auth.PatientID = links.PatientID
		auth.ProviderID = links.ProviderID
		auth.InsuranceID = links.InsuranceID
		auth.PracticeID = links.PracticeID
		auth.OrderID = links.OrderID

		last, err := s.authRepo.LastUniqueAuthID(txCtx)
		if err != nil {
			return fmt.Errorf("read last authorization id: %w", err)
		}
		s.applyCreateDefaults(auth, s.nextID(identifier.PrefixAuthorization, last))

		if err := s.authRepo.Create(txCtx, auth); err != nil {
			return fmt.Errorf("create authorization: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to create authorization", "error", err)
		return nil, err
	}

	s.logger.Info("Authorization created", "id", auth.AuthorizationID, "unique_auth_id", auth.UniqueAuthID)
	return auth, nil
}

func (s *authorizationServiceImpl) applyCreateDefaults(auth *entity.Authorization, uniqueID string) {
	today := entity.NewDate(s.now())
	end := today.AddDays(defaultAuthorizationDays)

	auth.AuthorizationID = 0
	auth.UniqueAuthID = uniqueID
	auth.AuthorizationStartDate = &today
	auth.AuthorizationEndDate = &end
	auth.ApprovalStatus = workflow.ApprovalYetToSubmit
	auth.RequestType = workflow.RequestTypeDraft
	auth.InitialSaveStatus = workflow.InitialSaveStatusSaved

	if auth.EligibilityStatus == "" {
		auth.EligibilityStatus = workflow.EligibilityUnchecked
	}
	if auth.ValidationStatus == "" {
		auth.ValidationStatus = workflow.ValidationUnchecked
	}
	if auth.RequestStatus == "" {
		auth.RequestStatus = workflow.RequestUnchecked
	}
}

// nextID never fails; a malformed last id is logged and the sequence restarts
func (s *authorizationServiceImpl) nextID(prefix, last string) string {
	id, err := identifier.Next(prefix, last)
	if err != nil {
		s.logger.Error("Malformed identifier, restarting sequence", "prefix", prefix, "last", last, "error", err)
	}
	return id
}

func (s *authorizationServiceImpl) checkLinks(ctx context.Context, links entity.AuthorizationLinks) error {
	if links.PatientID != nil {
		p, err := s.patientRepo.GetByID(ctx, *links.PatientID)
		if err != nil {
			return err
		}
		if p == nil {
			return &ReferenceNotFoundError{Kind: KindPatient, ID: *links.PatientID}
		}
	}
	if links.ProviderID != nil {
		p, err := s.providerRepo.GetByID(ctx, *links.ProviderID)
		if err != nil {
			return err
		}
		if p == nil {
			return &ReferenceNotFoundError{Kind: KindProvider, ID: *links.ProviderID}
		}
	}
	if links.InsuranceID != nil {
		ins, err := s.insuranceRepo.GetByID(ctx, *links.InsuranceID)
		if err != nil {
			return err
		}
		if ins == nil {
			return &ReferenceNotFoundError{Kind: KindInsurance, ID: *links.InsuranceID}
		}
	}
	if links.PracticeID != nil {
		p, err := s.practiceRepo.GetByID(ctx, *links.PracticeID)
		if err != nil {
			return err
		}
		if p == nil {
			return &ReferenceNotFoundError{Kind: KindPractice, ID: *links.PracticeID}
		}
	}
	if links.OrderID != nil {
		o, err := s.orderRepo.GetByID(ctx, *links.OrderID)
		if err != nil {
			return err
		}
		if o == nil {
			return &ReferenceNotFoundError{Kind: KindOrder, ID: *links.OrderID}
		}
	}
	return nil
}

// Get retrieves an authorization or an AuthorizationNotFoundError
func (s *authorizationServiceImpl) Get(ctx context.Context, id int64) (*entity.Authorization, error) {
	return loadAuthorization(ctx, s.authRepo, id)
}

// GetByUniqueAuthID looks an authorization up by its generated AUTH### id
func (s *authorizationServiceImpl) GetByUniqueAuthID(ctx context.Context, uniqueAuthID string) (*entity.Authorization, error) {
	auth, err := s.authRepo.GetByUniqueAuthID(ctx, uniqueAuthID)
	if err != nil {
		s.logger.Error("Failed to get authorization", "error", err, "unique_auth_id", uniqueAuthID)
		return nil, err
	}
	if auth == nil {
		return nil, &UniqueAuthIDNotFoundError{UniqueAuthID: uniqueAuthID}
	}
	return auth, nil
}

// List returns every authorization
func (s *authorizationServiceImpl) List(ctx context.Context) ([]*entity.Authorization, error) {
	auths, err := s.authRepo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list authorizations", "error", err)
		return nil, err
	}
	return auths, nil
}

// Update copies the editable fields of changes onto the stored authorization.
// Workflow statuses are only changed through their own operations.
func (s *authorizationServiceImpl) Update(ctx context.Context, id int64, changes *entity.Authorization) (*entity.Authorization, error) {
	auth, err := loadAuthorization(ctx, s.authRepo, id)
	if err != nil {
		return nil, err
	}

	auth.RequestType = changes.RequestType
	auth.ProviderName = changes.ProviderName
	auth.ICDCodeAuth = changes.ICDCodeAuth
	auth.ProcedureCodeAuth = changes.ProcedureCodeAuth
	auth.FacilityLocation = changes.FacilityLocation
	auth.RequestStatus = changes.RequestStatus
	auth.AuthorizationStartDate = changes.AuthorizationStartDate
	auth.AuthorizationEndDate = changes.AuthorizationEndDate
	auth.Units = changes.Units
	auth.Description = changes.Description
	auth.ClaimStatus = changes.ClaimStatus
	auth.OrderType = changes.OrderType
	auth.InitialSaveStatus = changes.InitialSaveStatus
	if changes.UniqueAuthID != "" {
		auth.UniqueAuthID = changes.UniqueAuthID
	}

	if err := s.authRepo.Update(ctx, auth); err != nil {
		s.logger.Error("Failed to update authorization", "error", err, "id", id)
		return nil, err
	}

	s.logger.Info("Authorization updated", "id", id)
	return auth, nil
}

// UpdateRequestStatus overwrites requestStatus with any value
func (s *authorizationServiceImpl) UpdateRequestStatus(ctx context.Context, id int64, status workflow.RequestStatus) (*entity.Authorization, error) {
	auth, err := loadAuthorization(ctx, s.authRepo, id)
	if err != nil {
		return nil, err
	}

	auth.RequestStatus = status
	if err := s.authRepo.Update(ctx, auth); err != nil {
		s.logger.Error("Failed to update request status", "error", err, "id", id)
		return nil, err
	}

	return auth, nil
}

// MarkInProgress moves the authorization to In Progress and restarts it today
func (s *authorizationServiceImpl) MarkInProgress(ctx context.Context, id int64) (*entity.Authorization, error) {
	auth, err := loadAuthorization(ctx, s.authRepo, id)
	if err != nil {
		return nil, err
	}

	today := entity.NewDate(s.now())
	auth.ApprovalStatus = workflow.ApprovalInProgress
	auth.ApprovalReason = workflow.ReasonInProgress
	auth.AuthorizationStartDate = &today

	if err := s.authRepo.Update(ctx, auth); err != nil {
		s.logger.Error("Failed to mark authorization in progress", "error", err, "id", id)
		return nil, err
	}

	s.logger.Info("Authorization marked in progress", "id", id)
	return auth, nil
}

// Delete removes an authorization
func (s *authorizationServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := loadAuthorization(ctx, s.authRepo, id); err != nil {
		return err
	}

	if err := s.authRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete authorization", "error", err, "id", id)
		return err
	}

	s.logger.Info("Authorization deleted", "id", id)
	return nil
}

func loadAuthorization(ctx context.Context, repo port.AuthorizationRepository, id int64) (*entity.Authorization, error) {
	auth, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if auth == nil {
		return nil, &AuthorizationNotFoundError{ID: id}
	}
	return auth, nil
}
