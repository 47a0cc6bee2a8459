package http

import (
	"context"
	"io"

	"github.com/garyjia/speedauth/internal/application/port"
	"github.com/garyjia/speedauth/internal/application/service"
	"github.com/garyjia/speedauth/internal/domain/entity"
	"github.com/garyjia/speedauth/internal/domain/workflow"
)

type mockLogger struct{}

func (mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (mockLogger) Error(msg string, keysAndValues ...interface{}) {}

type mockAuthorizationService struct {
	service.AuthorizationService
	createFunc              func(ctx context.Context, auth *entity.Authorization) (*entity.Authorization, error)
	createWithLinksFunc     func(ctx context.Context, auth *entity.Authorization, links entity.AuthorizationLinks) (*entity.Authorization, error)
	getFunc                 func(ctx context.Context, id int64) (*entity.Authorization, error)
	getByUniqueFunc         func(ctx context.Context, uniqueAuthID string) (*entity.Authorization, error)
	listFunc                func(ctx context.Context) ([]*entity.Authorization, error)
	updateRequestStatusFunc func(ctx context.Context, id int64, status workflow.RequestStatus) (*entity.Authorization, error)
	deleteFunc              func(ctx context.Context, id int64) error
}

func (m *mockAuthorizationService) Create(ctx context.Context, auth *entity.Authorization) (*entity.Authorization, error) {
	return m.createFunc(ctx, auth)
}

func (m *mockAuthorizationService) CreateWithLinks(ctx context.Context, auth *entity.Authorization, links entity.AuthorizationLinks) (*entity.Authorization, error) {
	return m.createWithLinksFunc(ctx, auth, links)
}

func (m *mockAuthorizationService) Get(ctx context.Context, id int64) (*entity.Authorization, error) {
	return m.getFunc(ctx, id)
}

func (m *mockAuthorizationService) GetByUniqueAuthID(ctx context.Context, uniqueAuthID string) (*entity.Authorization, error) {
	return m.getByUniqueFunc(ctx, uniqueAuthID)
}

func (m *mockAuthorizationService) List(ctx context.Context) ([]*entity.Authorization, error) {
	return m.listFunc(ctx)
}

func (m *mockAuthorizationService) UpdateRequestStatus(ctx context.Context, id int64, status workflow.RequestStatus) (*entity.Authorization, error) {
	return m.updateRequestStatusFunc(ctx, id, status)
}

func (m *mockAuthorizationService) Delete(ctx context.Context, id int64) error {
	return m.deleteFunc(ctx, id)
}

type mockLifecycleService struct {
	service.LifecycleService
	decideFunc           func(ctx context.Context, id int64) (*service.DecisionResult, error)
	checkEligibilityFunc func(ctx context.Context, id int64) (bool, error)
	validateCPTFunc      func(ctx context.Context, id int64) (bool, error)
	batchFunc            func(ctx context.Context, ids []int64) error
}

func (m *mockLifecycleService) Decide(ctx context.Context, id int64) (*service.DecisionResult, error) {
	return m.decideFunc(ctx, id)
}

func (m *mockLifecycleService) CheckEligibility(ctx context.Context, id int64) (bool, error) {
	return m.checkEligibilityFunc(ctx, id)
}

func (m *mockLifecycleService) ValidateCPT(ctx context.Context, id int64) (bool, error) {
	return m.validateCPTFunc(ctx, id)
}

func (m *mockLifecycleService) CheckEligibilityForList(ctx context.Context, ids []int64) error {
	return m.batchFunc(ctx, ids)
}

func (m *mockLifecycleService) ResetCPTForList(ctx context.Context, ids []int64) error {
	return m.batchFunc(ctx, ids)
}

type mockEDIService struct {
	service.EDIService
	generateFunc  func(ctx context.Context, id int64, suffix string) (*service.GeneratedDocument, error)
	getRecordFunc func(ctx context.Context, id int64) (*entity.EDIRecord, error)
}

func (m *mockEDIService) Generate(ctx context.Context, id int64, suffix string) (*service.GeneratedDocument, error) {
	return m.generateFunc(ctx, id, suffix)
}

func (m *mockEDIService) GetRecord(ctx context.Context, id int64) (*entity.EDIRecord, error) {
	return m.getRecordFunc(ctx, id)
}

type mockReferenceService struct {
	service.ReferenceService
	createPatientFunc func(ctx context.Context, p *entity.Patient) (*entity.Patient, error)
	getPatientFunc    func(ctx context.Context, id int64) (*entity.Patient, error)
}

func (m *mockReferenceService) CreatePatient(ctx context.Context, p *entity.Patient) (*entity.Patient, error) {
	return m.createPatientFunc(ctx, p)
}

func (m *mockReferenceService) GetPatient(ctx context.Context, id int64) (*entity.Patient, error) {
	return m.getPatientFunc(ctx, id)
}

type mockExportService struct {
	exportFunc func(ctx context.Context, w io.Writer) error
}

func (m *mockExportService) ExportWorklist(ctx context.Context, w io.Writer) error {
	return m.exportFunc(ctx, w)
}

type mockCaseSummaryService struct {
	summarizeFunc func(ctx context.Context, id int64) (*port.CaseSummary, error)
}

func (m *mockCaseSummaryService) Summarize(ctx context.Context, id int64) (*port.CaseSummary, error) {
	return m.summarizeFunc(ctx, id)
}

type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) PingContext(ctx context.Context) error {
	return m.err
}
