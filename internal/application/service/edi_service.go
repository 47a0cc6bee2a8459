package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/garyjia/speedauth/internal/application/port"
	"github.com/garyjia/speedauth/internal/domain/entity"
	"github.com/garyjia/speedauth/internal/edi"
)

// SuffixOriginal names documents generated on demand rather than by a decision
const SuffixOriginal = "original"

// DefaultRecordReceiverID is stored on EDI records when no receiver is configured
const DefaultRecordReceiverID = "Receiver-ID"

// GeneratedDocument is a rendered 278 and where it was written
type GeneratedDocument struct {
	FileName string
	Path     string
	Content  string
	Record   *entity.EDIRecord
}

// EDIService renders EDI documents and manages their audit records
type EDIService interface {
	Generate(ctx context.Context, authorizationID int64, suffix string) (*GeneratedDocument, error)

	CreateRecord(ctx context.Context, record *entity.EDIRecord) (*entity.EDIRecord, error)
	GetRecord(ctx context.Context, id int64) (*entity.EDIRecord, error)
	ListRecords(ctx context.Context) ([]*entity.EDIRecord, error)
	ListRecordsByTransaction(ctx context.Context, transactionID string) ([]*entity.EDIRecord, error)
	UpdateRecord(ctx context.Context, id int64, record *entity.EDIRecord) (*entity.EDIRecord, error)
	DeleteRecord(ctx context.Context, id int64) error
}

type ediServiceImpl struct {
	authRepo         port.AuthorizationRepository
	patientRepo      port.PatientRepository
	providerRepo     port.ProviderRepository
	insuranceRepo    port.InsuranceRepository
	recordRepo       port.EDIRecordRepository
	storage          port.FileStorage
	renderer         *edi.Renderer
	recordReceiverID string
	logger           Logger
	now              func() time.Time
}

// NewEDIService creates a new EDIService
func NewEDIService(
	authRepo port.AuthorizationRepository,
	patientRepo port.PatientRepository,
	providerRepo port.ProviderRepository,
	insuranceRepo port.InsuranceRepository,
	recordRepo port.EDIRecordRepository,
	storage port.FileStorage,
	renderer *edi.Renderer,
	recordReceiverID string,
	logger Logger,
) EDIService {
	if recordReceiverID == "" {
		recordReceiverID = DefaultRecordReceiverID
	}
	return &ediServiceImpl{
		authRepo:         authRepo,
		patientRepo:      patientRepo,
		providerRepo:     providerRepo,
		insuranceRepo:    insuranceRepo,
		recordRepo:       recordRepo,
		storage:          storage,
		renderer:         renderer,
		recordReceiverID: recordReceiverID,
		logger:           logger,
		now:              time.Now,
	}
}

// Generate renders the authorization's 278, overwrites its file and records an audit row
func (s *ediServiceImpl) Generate(ctx context.Context, authorizationID int64, suffix string) (*GeneratedDocument, error) {
	auth, err := loadAuthorization(ctx, s.authRepo, authorizationID)
	if err != nil {
		return nil, err
	}

	doc, err := s.resolve(ctx, auth)
	if err != nil {
		return nil, err
	}

	content, err := s.renderer.Render(doc)
	if err != nil {
		s.logger.Error("Failed to render EDI document", "error", err, "authorization_id", authorizationID)
		return nil, fmt.Errorf("render edi for authorization %d: %w", authorizationID, err)
	}

	fileName := edi.FileName(authorizationID, suffix)
	if err := s.storage.Save(ctx, fileName, []byte(content)); err != nil {
		s.logger.Error("Failed to save EDI document", "error", err, "file", fileName)
		return nil, err
	}

	record := &entity.EDIRecord{
		TransactionID:   entity.EDITransactionIDPrefix + strconv.FormatInt(authorizationID, 10),
		TransactionType: entity.EDITransactionType278,
		DocumentContent: content,
		ReceiverID:      s.recordReceiverID,
		FileName:        fileName,
		StatusSuffix:    suffix,
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		s.logger.Error("Failed to record EDI document", "error", err, "file", fileName)
		return nil, err
	}

	s.logger.Info("EDI document generated", "authorization_id", authorizationID, "file", fileName)
	return &GeneratedDocument{
		FileName: fileName,
		Path:     s.storage.GetFullPath(fileName),
		Content:  content,
		Record:   record,
	}, nil
}

// resolve loads the referenced records; absent links are left nil for the renderer to reject
func (s *ediServiceImpl) resolve(ctx context.Context, auth *entity.Authorization) (edi.Document, error) {
	doc := edi.Document{Authorization: auth, Date: s.now()}

	if auth.PatientID != nil {
		patient, err := s.patientRepo.GetByID(ctx, *auth.PatientID)
		if err != nil {
			return doc, err
		}
		doc.Patient = patient
	}
	if auth.ProviderID != nil {
		provider, err := s.providerRepo.GetByID(ctx, *auth.ProviderID)
		if err != nil {
			return doc, err
		}
		doc.Provider = provider
	}
	if auth.InsuranceID != nil {
		insurance, err := s.insuranceRepo.GetByID(ctx, *auth.InsuranceID)
		if err != nil {
			return doc, err
		}
		doc.Insurance = insurance
	}

	return doc, nil
}

func (s *ediServiceImpl) CreateRecord(ctx context.Context, record *entity.EDIRecord) (*entity.EDIRecord, error) {
	if record.TransactionType == "" {
		record.TransactionType = entity.EDITransactionType278
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		s.logger.Error("Failed to create EDI record", "error", err)
		return nil, err
	}
	return record, nil
}

func (s *ediServiceImpl) GetRecord(ctx context.Context, id int64) (*entity.EDIRecord, error) {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("edi record %d: %w", id, ErrEDIRecordNotFound)
	}
	return record, nil
}

func (s *ediServiceImpl) ListRecords(ctx context.Context) ([]*entity.EDIRecord, error) {
	return s.recordRepo.List(ctx)
}

func (s *ediServiceImpl) ListRecordsByTransaction(ctx context.Context, transactionID string) ([]*entity.EDIRecord, error) {
	return s.recordRepo.GetByTransactionID(ctx, transactionID)
}

func (s *ediServiceImpl) UpdateRecord(ctx context.Context, id int64, changes *entity.EDIRecord) (*entity.EDIRecord, error) {
	record, err := s.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	record.TransactionID = changes.TransactionID
	record.TransactionType = changes.TransactionType
	record.DocumentContent = changes.DocumentContent
	record.ReceiverID = changes.ReceiverID
	record.FileName = changes.FileName
	record.StatusSuffix = changes.StatusSuffix

	if err := s.recordRepo.Update(ctx, record); err != nil {
		s.logger.Error("Failed to update EDI record", "error", err, "id", id)
		return nil, err
	}
	return record, nil
}

func (s *ediServiceImpl) DeleteRecord(ctx context.Context, id int64) error {
	if _, err := s.GetRecord(ctx, id); err != nil {
		return err
	}
	if err := s.recordRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete EDI record", "error", err, "id", id)
		return err
	}
	return nil
}
