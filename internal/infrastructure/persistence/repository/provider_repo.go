package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garyjia/speedauth/internal/application/port"
	"github.com/garyjia/speedauth/internal/domain/entity"
	"github.com/garyjia/speedauth/internal/infrastructure/persistence/sqldb"
	"go.uber.org/zap"
)

const providerColumns = `
	provider_id, provider_name, first_name, last_name, npi_number,
	provider_type, provider_contact, tax_id`

// ProviderRepository implements port.ProviderRepository
type ProviderRepository struct {
	db     *sqldb.DB
	logger *zap.Logger
}

// NewProviderRepository creates a new provider repository
func NewProviderRepository(db *sqldb.DB, logger *zap.Logger) port.ProviderRepository {
	return &ProviderRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new provider
func (r *ProviderRepository) Create(ctx context.Context, provider *entity.Provider) error {
	query := r.db.Rebind(`
		INSERT INTO providers (
			provider_name, first_name, last_name, npi_number,
			provider_type, provider_contact, tax_id
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING provider_id
	`)

	err := r.db.Executor(ctx).QueryRowContext(ctx, query,
		provider.ProviderName,
		provider.FirstName,
		provider.LastName,
		provider.NPINumber,
		provider.ProviderType,
		provider.ProviderContact,
		provider.TaxID,
	).Scan(&provider.ProviderID)
	if err != nil {
		r.logger.Error("Failed to create provider", zap.Error(err))
		return fmt.Errorf("failed to create provider: %w", err)
	}

	return nil
}

// GetByID retrieves a provider by ID
func (r *ProviderRepository) GetByID(ctx context.Context, id int64) (*entity.Provider, error) {
	query := r.db.Rebind(`SELECT ` + providerColumns + ` FROM providers WHERE provider_id = ?`)

	var p entity.Provider
	err := r.db.Executor(ctx).QueryRowContext(ctx, query, id).Scan(
		&p.ProviderID,
		&p.ProviderName,
		&p.FirstName,
		&p.LastName,
		&p.NPINumber,
		&p.ProviderType,
		&p.ProviderContact,
		&p.TaxID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get provider by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}

	return &p, nil
}

// List returns all providers
func (r *ProviderRepository) List(ctx context.Context) ([]*entity.Provider, error) {
	rows, err := r.db.Executor(ctx).QueryContext(ctx, `SELECT `+providerColumns+` FROM providers ORDER BY provider_id`)
	if err != nil {
		r.logger.Error("Failed to list providers", zap.Error(err))
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	defer rows.Close()

	providers := make([]*entity.Provider, 0)
	for rows.Next() {
		var p entity.Provider
		if err := rows.Scan(
			&p.ProviderID,
			&p.ProviderName,
			&p.FirstName,
			&p.LastName,
			&p.NPINumber,
			&p.ProviderType,
			&p.ProviderContact,
			&p.TaxID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan provider: %w", err)
		}
		providers = append(providers, &p)
	}

	return providers, rows.Err()
}

// LastNPINumber returns the greatest NPI### identifier
func (r *ProviderRepository) LastNPINumber(ctx context.Context) (string, error) {
	return lastString(ctx, r.db, r.logger, "providers", "npi_number")
}

var _ port.ProviderRepository = (*ProviderRepository)(nil)
