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

const insuranceColumns = `insurance_id, custom_insurance_id, name, payer_name, payer_id, payer_contact, address`

// InsuranceRepository implements port.InsuranceRepository
type InsuranceRepository struct {
	db     *sqldb.DB
	logger *zap.Logger
}

// NewInsuranceRepository creates a new insurance repository
func NewInsuranceRepository(db *sqldb.DB, logger *zap.Logger) port.InsuranceRepository {
	return &InsuranceRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new insurance payer
func (r *InsuranceRepository) Create(ctx context.Context, insurance *entity.Insurance) error {
	query := r.db.Rebind(`
		INSERT INTO insurances (custom_insurance_id, name, payer_name, payer_id, payer_contact, address)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING insurance_id
	`)

	err := r.db.Executor(ctx).QueryRowContext(ctx, query,
		insurance.CustomInsuranceID,
		insurance.Name,
		insurance.PayerName,
		insurance.PayerID,
		insurance.PayerContact,
		insurance.Address,
	).Scan(&insurance.InsuranceID)
	if err != nil {
		r.logger.Error("Failed to create insurance", zap.Error(err))
		return fmt.Errorf("failed to create insurance: %w", err)
	}

	return nil
}

// GetByID retrieves an insurance payer by ID
func (r *InsuranceRepository) GetByID(ctx context.Context, id int64) (*entity.Insurance, error) {
	query := r.db.Rebind(`SELECT ` + insuranceColumns + ` FROM insurances WHERE insurance_id = ?`)

	var ins entity.Insurance
	err := r.db.Executor(ctx).QueryRowContext(ctx, query, id).Scan(
		&ins.InsuranceID,
		&ins.CustomInsuranceID,
		&ins.Name,
		&ins.PayerName,
		&ins.PayerID,
		&ins.PayerContact,
		&ins.Address,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get insurance by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get insurance: %w", err)
	}

	return &ins, nil
}

// List returns all insurance payers
func (r *InsuranceRepository) List(ctx context.Context) ([]*entity.Insurance, error) {
	rows, err := r.db.Executor(ctx).QueryContext(ctx, `SELECT `+insuranceColumns+` FROM insurances ORDER BY insurance_id`)
	if err != nil {
		r.logger.Error("Failed to list insurances", zap.Error(err))
		return nil, fmt.Errorf("failed to list insurances: %w", err)
	}
	defer rows.Close()

	insurances := make([]*entity.Insurance, 0)
	for rows.Next() {
		var ins entity.Insurance
		if err := rows.Scan(
			&ins.InsuranceID,
			&ins.CustomInsuranceID,
			&ins.Name,
			&ins.PayerName,
			&ins.PayerID,
			&ins.PayerContact,
			&ins.Address,
		); err != nil {
			return nil, fmt.Errorf("failed to scan insurance: %w", err)
		}
		insurances = append(insurances, &ins)
	}

	return insurances, rows.Err()
}

// LastCustomInsuranceID returns the greatest INS### identifier
func (r *InsuranceRepository) LastCustomInsuranceID(ctx context.Context) (string, error) {
	return lastString(ctx, r.db, r.logger, "insurances", "custom_insurance_id")
}

var _ port.InsuranceRepository = (*InsuranceRepository)(nil)
