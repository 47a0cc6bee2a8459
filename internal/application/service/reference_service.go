package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/garyjia/speedauth/internal/application/port"
	"github.com/garyjia/speedauth/internal/domain/entity"
	"github.com/garyjia/speedauth/internal/domain/identifier"
)

// ReferenceService manages the patients, providers, insurances, practices and orders authorizations point at
type ReferenceService interface {
	CreatePatient(ctx context.Context, patient *entity.Patient) (*entity.Patient, error)
	GetPatient(ctx context.Context, id int64) (*entity.Patient, error)
	ListPatients(ctx context.Context) ([]*entity.Patient, error)

	CreateProvider(ctx context.Context, provider *entity.Provider) (*entity.Provider, error)
	GetProvider(ctx context.Context, id int64) (*entity.Provider, error)
	ListProviders(ctx context.Context) ([]*entity.Provider, error)

	CreateInsurance(ctx context.Context, insurance *entity.Insurance) (*entity.Insurance, error)
	GetInsurance(ctx context.Context, id int64) (*entity.Insurance, error)
	ListInsurances(ctx context.Context) ([]*entity.Insurance, error)

	CreatePractice(ctx context.Context, practice *entity.Practice) (*entity.Practice, error)
	GetPractice(ctx context.Context, id int64) (*entity.Practice, error)
	ListPractices(ctx context.Context) ([]*entity.Practice, error)

	CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error)
	GetOrder(ctx context.Context, id int64) (*entity.Order, error)
	ListOrders(ctx context.Context) ([]*entity.Order, error)
}

type referenceServiceImpl struct {
	patientRepo   port.PatientRepository
	providerRepo  port.ProviderRepository
	insuranceRepo port.InsuranceRepository
	practiceRepo  port.PracticeRepository
	orderRepo     port.OrderRepository
	txManager     port.TransactionManager
	logger        Logger
}

// NewReferenceService creates a new ReferenceService
func NewReferenceService(
	patientRepo port.PatientRepository,
	providerRepo port.ProviderRepository,
	insuranceRepo port.InsuranceRepository,
	practiceRepo port.PracticeRepository,
	orderRepo port.OrderRepository,
	txManager port.TransactionManager,
	logger Logger,
) ReferenceService {
	return &referenceServiceImpl{
		patientRepo:   patientRepo,
		providerRepo:  providerRepo,
		insuranceRepo: insuranceRepo,
		practiceRepo:  practiceRepo,
		orderRepo:     orderRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// withNextID reads the last display id and hands the next one to create, all in one transaction
func (s *referenceServiceImpl) withNextID(ctx context.Context, prefix string, last func(context.Context) (string, error), create func(context.Context, string) error) error {
	return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		prev, err := last(txCtx)
		if err != nil {
			return err
		}

		id, err := identifier.Next(prefix, prev)
		if err != nil {
			s.logger.Error("Malformed identifier, restarting sequence", "prefix", prefix, "last", prev, "error", err)
		}
		return create(txCtx, id)
	})
}

func (s *referenceServiceImpl) CreatePatient(ctx context.Context, patient *entity.Patient) (*entity.Patient, error) {
	if patient.FullName == "" {
		patient.FullName = strings.TrimSpace(patient.FirstName + " " + patient.LastName)
	}

	err := s.withNextID(ctx, identifier.PrefixPatient, s.patientRepo.LastCustomPatientID, func(txCtx context.Context, id string) error {
		patient.CustomPatientID = id
		return s.patientRepo.Create(txCtx, patient)
	})
	if err != nil {
		s.logger.Error("Failed to create patient", "error", err)
		return nil, fmt.Errorf("create patient: %w", err)
	}

	s.logger.Info("Patient created", "id", patient.PatientID, "custom_patient_id", patient.CustomPatientID)
	return patient, nil
}

func (s *referenceServiceImpl) GetPatient(ctx context.Context, id int64) (*entity.Patient, error) {
	p, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &ReferenceNotFoundError{Kind: KindPatient, ID: id}
	}
	return p, nil
}

func (s *referenceServiceImpl) ListPatients(ctx context.Context) ([]*entity.Patient, error) {
	return s.patientRepo.List(ctx)
}

func (s *referenceServiceImpl) CreateProvider(ctx context.Context, provider *entity.Provider) (*entity.Provider, error) {
	err := s.withNextID(ctx, identifier.PrefixProvider, s.providerRepo.LastNPINumber, func(txCtx context.Context, id string) error {
		provider.NPINumber = id
		return s.providerRepo.Create(txCtx, provider)
	})
	if err != nil {
		s.logger.Error("Failed to create provider", "error", err)
		return nil, fmt.Errorf("create provider: %w", err)
	}

	s.logger.Info("Provider created", "id", provider.ProviderID, "npi_number", provider.NPINumber)
	return provider, nil
}

func (s *referenceServiceImpl) GetProvider(ctx context.Context, id int64) (*entity.Provider, error) {
	p, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &ReferenceNotFoundError{Kind: KindProvider, ID: id}
	}
	return p, nil
}

func (s *referenceServiceImpl) ListProviders(ctx context.Context) ([]*entity.Provider, error) {
	return s.providerRepo.List(ctx)
}

func (s *referenceServiceImpl) CreateInsurance(ctx context.Context, insurance *entity.Insurance) (*entity.Insurance, error) {
	err := s.withNextID(ctx, identifier.PrefixInsurance, s.insuranceRepo.LastCustomInsuranceID, func(txCtx context.Context, id string) error {
		insurance.CustomInsuranceID = id
		return s.insuranceRepo.Create(txCtx, insurance)
	})
	if err != nil {
		s.logger.Error("Failed to create insurance", "error", err)
		return nil, fmt.Errorf("create insurance: %w", err)
	}

	s.logger.Info("Insurance created", "id", insurance.InsuranceID, "custom_insurance_id", insurance.CustomInsuranceID)
	return insurance, nil
}

func (s *referenceServiceImpl) GetInsurance(ctx context.Context, id int64) (*entity.Insurance, error) {
	ins, err := s.insuranceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ins == nil {
		return nil, &ReferenceNotFoundError{Kind: KindInsurance, ID: id}
	}
	return ins, nil
}

func (s *referenceServiceImpl) ListInsurances(ctx context.Context) ([]*entity.Insurance, error) {
	return s.insuranceRepo.List(ctx)
}

func (s *referenceServiceImpl) CreatePractice(ctx context.Context, practice *entity.Practice) (*entity.Practice, error) {
	if err := s.practiceRepo.Create(ctx, practice); err != nil {
		s.logger.Error("Failed to create practice", "error", err)
		return nil, err
	}
	return practice, nil
}

func (s *referenceServiceImpl) GetPractice(ctx context.Context, id int64) (*entity.Practice, error) {
	p, err := s.practiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &ReferenceNotFoundError{Kind: KindPractice, ID: id}
	}
	return p, nil
}

func (s *referenceServiceImpl) ListPractices(ctx context.Context) ([]*entity.Practice, error) {
	return s.practiceRepo.List(ctx)
}

func (s *referenceServiceImpl) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error("Failed to create order", "error", err)
		return nil, err
	}
	return order, nil
}

func (s *referenceServiceImpl) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, &ReferenceNotFoundError{Kind: KindOrder, ID: id}
	}
	return o, nil
}

func (s *referenceServiceImpl) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	return s.orderRepo.List(ctx)
}
