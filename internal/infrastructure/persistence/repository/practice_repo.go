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

const practiceColumns = `
	practice_id, tax_id, name_of_practice, contact_number, contact_person,
	address, practice_npi_number, email`

// PracticeRepository implements port.PracticeRepository
type PracticeRepository struct {
	db     *sqldb.DB
	logger *zap.Logger
}

// NewPracticeRepository creates a new practice repository
func NewPracticeRepository(db *sqldb.DB, logger *zap.Logger) port.PracticeRepository {
	return &PracticeRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new practice
func (r *PracticeRepository) Create(ctx context.Context, practice *entity.Practice) error {
	query := r.db.Rebind(`
		INSERT INTO practices (
			tax_id, name_of_practice, contact_number, contact_person,
			address, practice_npi_number, email
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING practice_id
	`)

	err := r.db.Executor(ctx).QueryRowContext(ctx, query,
		practice.TaxID,
		practice.NameOfPractice,
		practice.ContactNumber,
		practice.ContactPerson,
		practice.Address,
		practice.PracticeNPINumber,
		practice.Email,
	).Scan(&practice.PracticeID)
	if err != nil {
		r.logger.Error("Failed to create practice", zap.Error(err))
		return fmt.Errorf("failed to create practice: %w", err)
	}

	return nil
}

// GetByID retrieves a practice by ID
func (r *PracticeRepository) GetByID(ctx context.Context, id int64) (*entity.Practice, error) {
	query := r.db.Rebind(`SELECT ` + practiceColumns + ` FROM practices WHERE practice_id = ?`)

	var p entity.Practice
	err := r.db.Executor(ctx).QueryRowContext(ctx, query, id).Scan(
		&p.PracticeID,
		&p.TaxID,
		&p.NameOfPractice,
		&p.ContactNumber,
		&p.ContactPerson,
		&p.Address,
		&p.PracticeNPINumber,
		&p.Email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get practice by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get practice: %w", err)
	}

	return &p, nil
}

// List returns all practices
func (r *PracticeRepository) List(ctx context.Context) ([]*entity.Practice, error) {
	rows, err := r.db.Executor(ctx).QueryContext(ctx, `SELECT `+practiceColumns+` FROM practices ORDER BY practice_id`)
	if err != nil {
		r.logger.Error("Failed to list practices", zap.Error(err))
		return nil, fmt.Errorf("failed to list practices: %w", err)
	}
	defer rows.Close()

	practices := make([]*entity.Practice, 0)
	for rows.Next() {
		var p entity.Practice
		if err := rows.Scan(
			&p.PracticeID,
			&p.TaxID,
			&p.NameOfPractice,
			&p.ContactNumber,
			&p.ContactPerson,
			&p.Address,
			&p.PracticeNPINumber,
			&p.Email,
		); err != nil {
			return nil, fmt.Errorf("failed to scan practice: %w", err)
		}
		practices = append(practices, &p)
	}

	return practices, rows.Err()
}

var _ port.PracticeRepository = (*PracticeRepository)(nil)
