package service

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/garyjia/speedauth/internal/application/port"
	"github.com/garyjia/speedauth/internal/domain/entity"
)

// mockAuthRepo keeps authorizations in a map unless a func field overrides the call
type mockAuthRepo struct {
	store   map[int64]*entity.Authorization
	nextID  int64
	updates []int64

	getByIDFunc func(ctx context.Context, id int64) (*entity.Authorization, error)
	updateFunc  func(ctx context.Context, auth *entity.Authorization) error
	lastIDFunc  func(ctx context.Context) (string, error)
}

func newMockAuthRepo(auths ...*entity.Authorization) *mockAuthRepo {
	m := &mockAuthRepo{store: make(map[int64]*entity.Authorization)}
	for _, a := range auths {
		m.store[a.AuthorizationID] = a
		if a.AuthorizationID > m.nextID {
			m.nextID = a.AuthorizationID
		}
	}
	return m
}

func (m *mockAuthRepo) Create(ctx context.Context, auth *entity.Authorization) error {
	m.nextID++
	auth.AuthorizationID = m.nextID
	cp := *auth
	m.store[auth.AuthorizationID] = &cp
	return nil
}

func (m *mockAuthRepo) GetByID(ctx context.Context, id int64) (*entity.Authorization, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	a, ok := m.store[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *mockAuthRepo) GetByUniqueAuthID(ctx context.Context, uniqueAuthID string) (*entity.Authorization, error) {
	for _, a := range m.store {
		if a.UniqueAuthID == uniqueAuthID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockAuthRepo) List(ctx context.Context) ([]*entity.Authorization, error) {
	out := make([]*entity.Authorization, 0, len(m.store))
	for _, a := range m.store {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AuthorizationID < out[j].AuthorizationID })
	return out, nil
}

func (m *mockAuthRepo) Update(ctx context.Context, auth *entity.Authorization) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, auth)
	}
	if _, ok := m.store[auth.AuthorizationID]; !ok {
		return fmt.Errorf("authorization %d missing", auth.AuthorizationID)
	}
	cp := *auth
	m.store[auth.AuthorizationID] = &cp
	m.updates = append(m.updates, auth.AuthorizationID)
	return nil
}

func (m *mockAuthRepo) Delete(ctx context.Context, id int64) error {
	delete(m.store, id)
	return nil
}

func (m *mockAuthRepo) LastUniqueAuthID(ctx context.Context) (string, error) {
	if m.lastIDFunc != nil {
		return m.lastIDFunc(ctx)
	}
	last := ""
	for _, a := range m.store {
		if a.UniqueAuthID > last {
			last = a.UniqueAuthID
		}
	}
	return last, nil
}

type mockPatientRepo struct {
	patients map[int64]*entity.Patient
	last     string
	created  []*entity.Patient
}

func (m *mockPatientRepo) Create(ctx context.Context, p *entity.Patient) error {
	p.PatientID = int64(len(m.created) + 1)
	m.created = append(m.created, p)
	return nil
}

func (m *mockPatientRepo) GetByID(ctx context.Context, id int64) (*entity.Patient, error) {
	return m.patients[id], nil
}

func (m *mockPatientRepo) List(ctx context.Context) ([]*entity.Patient, error) {
	return m.created, nil
}

func (m *mockPatientRepo) LastCustomPatientID(ctx context.Context) (string, error) {
	return m.last, nil
}

type mockProviderRepo struct {
	providers map[int64]*entity.Provider
	last      string
	lastErr   error
	created   []*entity.Provider
}

func (m *mockProviderRepo) Create(ctx context.Context, p *entity.Provider) error {
	p.ProviderID = int64(len(m.created) + 1)
	m.created = append(m.created, p)
	return nil
}

func (m *mockProviderRepo) GetByID(ctx context.Context, id int64) (*entity.Provider, error) {
	return m.providers[id], nil
}

func (m *mockProviderRepo) List(ctx context.Context) ([]*entity.Provider, error) {
	return m.created, nil
}

func (m *mockProviderRepo) LastNPINumber(ctx context.Context) (string, error) {
	return m.last, m.lastErr
}

type mockInsuranceRepo struct {
	insurances map[int64]*entity.Insurance
	last       string
	created    []*entity.Insurance
}

func (m *mockInsuranceRepo) Create(ctx context.Context, ins *entity.Insurance) error {
	ins.InsuranceID = int64(len(m.created) + 1)
	m.created = append(m.created, ins)
	return nil
}

func (m *mockInsuranceRepo) GetByID(ctx context.Context, id int64) (*entity.Insurance, error) {
	return m.insurances[id], nil
}

func (m *mockInsuranceRepo) List(ctx context.Context) ([]*entity.Insurance, error) {
	return m.created, nil
}

func (m *mockInsuranceRepo) LastCustomInsuranceID(ctx context.Context) (string, error) {
	return m.last, nil
}

type mockPracticeRepo struct {
	practices map[int64]*entity.Practice
}

func (m *mockPracticeRepo) Create(ctx context.Context, p *entity.Practice) error {
	p.PracticeID = 1
	return nil
}

func (m *mockPracticeRepo) GetByID(ctx context.Context, id int64) (*entity.Practice, error) {
	return m.practices[id], nil
}

func (m *mockPracticeRepo) List(ctx context.Context) ([]*entity.Practice, error) {
	return nil, nil
}

type mockOrderRepo struct {
	orders map[int64]*entity.Order
}

func (m *mockOrderRepo) Create(ctx context.Context, o *entity.Order) error {
	o.OrderID = 1
	return nil
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	return m.orders[id], nil
}

func (m *mockOrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	return nil, nil
}

type mockEDIRecordRepo struct {
	records []*entity.EDIRecord
}

func (m *mockEDIRecordRepo) Create(ctx context.Context, r *entity.EDIRecord) error {
	r.ID = int64(len(m.records) + 1)
	m.records = append(m.records, r)
	return nil
}

func (m *mockEDIRecordRepo) GetByID(ctx context.Context, id int64) (*entity.EDIRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockEDIRecordRepo) GetByTransactionID(ctx context.Context, transactionID string) ([]*entity.EDIRecord, error) {
	var out []*entity.EDIRecord
	for _, r := range m.records {
		if r.TransactionID == transactionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockEDIRecordRepo) List(ctx context.Context) ([]*entity.EDIRecord, error) {
	return m.records, nil
}

func (m *mockEDIRecordRepo) Update(ctx context.Context, r *entity.EDIRecord) error {
	return nil
}

func (m *mockEDIRecordRepo) Delete(ctx context.Context, id int64) error {
	for i, r := range m.records {
		if r.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return nil
}

type mockStorage struct {
	files map[string][]byte
}

func newMockStorage() *mockStorage {
	return &mockStorage{files: make(map[string][]byte)}
}

func (m *mockStorage) Save(ctx context.Context, path string, content []byte) error {
	m.files[path] = content
	return nil
}

func (m *mockStorage) Read(ctx context.Context, path string) ([]byte, error) {
	return m.files[path], nil
}

func (m *mockStorage) Exists(ctx context.Context, path string) bool {
	_, ok := m.files[path]
	return ok
}

func (m *mockStorage) Delete(ctx context.Context, path string) error {
	delete(m.files, path)
	return nil
}

func (m *mockStorage) GetFullPath(relativePath string) string {
	return "/data/edi/" + relativePath
}

type mockEDIService struct {
	EDIService
	generateFunc func(ctx context.Context, authorizationID int64, suffix string) (*GeneratedDocument, error)
	calls        []string
}

func (m *mockEDIService) Generate(ctx context.Context, authorizationID int64, suffix string) (*GeneratedDocument, error) {
	m.calls = append(m.calls, fmt.Sprintf("%d:%s", authorizationID, suffix))
	if m.generateFunc != nil {
		return m.generateFunc(ctx, authorizationID, suffix)
	}
	name := fmt.Sprintf("authorization_edi_%d_%s_278.edi", authorizationID, suffix)
	return &GeneratedDocument{FileName: name, Path: "/data/edi/" + name}, nil
}

type mockNotifier struct {
	events []port.DecisionEvent
	err    error
}

func (m *mockNotifier) NotifyDecision(ctx context.Context, event port.DecisionEvent) error {
	m.events = append(m.events, event)
	return m.err
}

type mockSummarizer struct {
	summarizeFunc func(ctx context.Context, auth *entity.Authorization) (*port.CaseSummary, error)
}

func (m *mockSummarizer) Summarize(ctx context.Context, auth *entity.Authorization) (*port.CaseSummary, error) {
	return m.summarizeFunc(ctx, auth)
}

type mockWorklistWriter struct {
	rows int
}

func (m *mockWorklistWriter) Write(w io.Writer, auths []*entity.Authorization) error {
	m.rows = len(auths)
	_, err := io.WriteString(w, "xlsx")
	return err
}

type mockTxManager struct {
	withTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.withTransactionFunc != nil {
		return m.withTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}

// scriptedChooser replays fixed draws and records the bounds it was asked for
type scriptedChooser struct {
	draws []int
	calls []int
}

func (c *scriptedChooser) Intn(n int) int {
	c.calls = append(c.calls, n)
	if len(c.draws) == 0 {
		return 0
	}
	v := c.draws[0]
	c.draws = c.draws[1:]
	return v
}
