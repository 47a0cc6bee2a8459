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

const ediRecordColumns = `
	id, transaction_id, transaction_type, document_content, receiver_id,
	file_name, status_suffix, created_at`

// EDIRecordRepository implements port.EDIRecordRepository
type EDIRecordRepository struct {
	db     *sqldb.DB
	logger *zap.Logger
}

// NewEDIRecordRepository creates a new EDI record repository
func NewEDIRecordRepository(db *sqldb.DB, logger *zap.Logger) port.EDIRecordRepository {
	return &EDIRecordRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a record; CreatedAt is filled in by the database
func (r *EDIRecordRepository) Create(ctx context.Context, record *entity.EDIRecord) error {
	query := r.db.Rebind(`
		INSERT INTO edi_records (
			transaction_id, transaction_type, document_content, receiver_id,
			file_name, status_suffix
		) VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, created_at
	`)

	err := r.db.Executor(ctx).QueryRowContext(ctx, query,
		record.TransactionID,
		record.TransactionType,
		record.DocumentContent,
		record.ReceiverID,
		record.FileName,
		record.StatusSuffix,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create EDI record",
			zap.String("transaction_id", record.TransactionID),
			zap.Error(err))
		return fmt.Errorf("failed to create edi record: %w", err)
	}

	return nil
}

// GetByID retrieves a record by ID
func (r *EDIRecordRepository) GetByID(ctx context.Context, id int64) (*entity.EDIRecord, error) {
	query := r.db.Rebind(`SELECT ` + ediRecordColumns + ` FROM edi_records WHERE id = ?`)

	record, err := scanEDIRecord(r.db.Executor(ctx).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get EDI record by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get edi record: %w", err)
	}

	return record, nil
}

// GetByTransactionID returns every record written for a transaction, oldest first
func (r *EDIRecordRepository) GetByTransactionID(ctx context.Context, transactionID string) ([]*entity.EDIRecord, error) {
	query := r.db.Rebind(`SELECT ` + ediRecordColumns + ` FROM edi_records WHERE transaction_id = ? ORDER BY id`)
	return r.query(ctx, query, transactionID)
}

// List returns all records
func (r *EDIRecordRepository) List(ctx context.Context) ([]*entity.EDIRecord, error) {
	return r.query(ctx, `SELECT `+ediRecordColumns+` FROM edi_records ORDER BY id`)
}

// Update rewrites the record's content columns
func (r *EDIRecordRepository) Update(ctx context.Context, record *entity.EDIRecord) error {
	query := r.db.Rebind(`
		UPDATE edi_records SET
			transaction_id = ?, transaction_type = ?, document_content = ?,
			receiver_id = ?, file_name = ?, status_suffix = ?
		WHERE id = ?
	`)

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		record.TransactionID,
		record.TransactionType,
		record.DocumentContent,
		record.ReceiverID,
		record.FileName,
		record.StatusSuffix,
		record.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update EDI record", zap.Int64("id", record.ID), zap.Error(err))
		return fmt.Errorf("failed to update edi record: %w", err)
	}

	return requireAffected(result, "edi record", record.ID)
}

// Delete removes a record by ID
func (r *EDIRecordRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Executor(ctx).ExecContext(ctx, r.db.Rebind(`DELETE FROM edi_records WHERE id = ?`), id)
	if err != nil {
		r.logger.Error("Failed to delete EDI record", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete edi record: %w", err)
	}

	return requireAffected(result, "edi record", id)
}

func (r *EDIRecordRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.EDIRecord, error) {
	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query EDI records", zap.Error(err))
		return nil, fmt.Errorf("failed to query edi records: %w", err)
	}
	defer rows.Close()

	records := make([]*entity.EDIRecord, 0)
	for rows.Next() {
		record, err := scanEDIRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan edi record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func scanEDIRecord(s rowScanner) (*entity.EDIRecord, error) {
	var rec entity.EDIRecord
	err := s.Scan(
		&rec.ID,
		&rec.TransactionID,
		&rec.TransactionType,
		&rec.DocumentContent,
		&rec.ReceiverID,
		&rec.FileName,
		&rec.StatusSuffix,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

var _ port.EDIRecordRepository = (*EDIRecordRepository)(nil)
