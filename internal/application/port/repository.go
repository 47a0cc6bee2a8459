package port

import (
	"context"

	"github.com/garyjia/speedauth/internal/domain/entity"
)

// AuthorizationRepository defines persistence operations for Authorization.
// Lookups return nil, nil when no row matches.
type AuthorizationRepository interface {
	Create(ctx context.Context, auth *entity.Authorization) error
	GetByID(ctx context.Context, id int64) (*entity.Authorization, error)
	GetByUniqueAuthID(ctx context.Context, uniqueAuthID string) (*entity.Authorization, error)
	List(ctx context.Context) ([]*entity.Authorization, error)
	Update(ctx context.Context, auth *entity.Authorization) error
	Delete(ctx context.Context, id int64) error

	// LastUniqueAuthID returns the greatest uniqueAuthId under a descending string sort, or "" when empty
	LastUniqueAuthID(ctx context.Context) (string, error)
}

// PatientRepository defines persistence operations for Patient
type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	GetByID(ctx context.Context, id int64) (*entity.Patient, error)
	List(ctx context.Context) ([]*entity.Patient, error)
	LastCustomPatientID(ctx context.Context) (string, error)
}

// ProviderRepository defines persistence operations for Provider
type ProviderRepository interface {
	Create(ctx context.Context, provider *entity.Provider) error
	GetByID(ctx context.Context, id int64) (*entity.Provider, error)
	List(ctx context.Context) ([]*entity.Provider, error)
	LastNPINumber(ctx context.Context) (string, error)
}

// InsuranceRepository defines persistence operations for Insurance
type InsuranceRepository interface {
	Create(ctx context.Context, insurance *entity.Insurance) error
	GetByID(ctx context.Context, id int64) (*entity.Insurance, error)
	List(ctx context.Context) ([]*entity.Insurance, error)
	LastCustomInsuranceID(ctx context.Context) (string, error)
}

// PracticeRepository defines persistence operations for Practice
type PracticeRepository interface {
	Create(ctx context.Context, practice *entity.Practice) error
	GetByID(ctx context.Context, id int64) (*entity.Practice, error)
	List(ctx context.Context) ([]*entity.Practice, error)
}

// OrderRepository defines persistence operations for Order
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	List(ctx context.Context) ([]*entity.Order, error)
}

// EDIRecordRepository defines persistence operations for EDIRecord
type EDIRecordRepository interface {
	Create(ctx context.Context, record *entity.EDIRecord) error
	GetByID(ctx context.Context, id int64) (*entity.EDIRecord, error)
	GetByTransactionID(ctx context.Context, transactionID string) ([]*entity.EDIRecord, error)
	List(ctx context.Context) ([]*entity.EDIRecord, error)
	Update(ctx context.Context, record *entity.EDIRecord) error
	Delete(ctx context.Context, id int64) error
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
