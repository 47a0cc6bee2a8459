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

const authorizationColumns = `
	authorization_id, unique_auth_id, request_type, provider_name, facility_location,
	icd_code_list, icd_code_auth, procedure_code_auth, request_status,
	authorization_start_date, authorization_end_date, units, description, claim_status,
	approval_status, approval_reason, approval_date, approval_end_date,
	eligibility_status, validation_status, order_type, initial_save_status,
	patient_id, provider_id, insurance_id, practice_id, order_id`

// AuthorizationRepository implements port.AuthorizationRepository
type AuthorizationRepository struct {
	db     *sqldb.DB
	logger *zap.Logger
}

// NewAuthorizationRepository creates a new authorization repository
func NewAuthorizationRepository(db *sqldb.DB, logger *zap.Logger) port.AuthorizationRepository {
	return &AuthorizationRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new authorization and sets its generated ID
func (r *AuthorizationRepository) Create(ctx context.Context, auth *entity.Authorization) error {
	query := r.db.Rebind(`
		INSERT INTO authorizations (
			unique_auth_id, request_type, provider_name, facility_location,
			icd_code_list, icd_code_auth, procedure_code_auth, request_status,
			authorization_start_date, authorization_end_date, units, description, claim_status,
			approval_status, approval_reason, approval_date, approval_end_date,
			eligibility_status, validation_status, order_type, initial_save_status,
			patient_id, provider_id, insurance_id, practice_id, order_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING authorization_id
	`)

	err := r.db.Executor(ctx).QueryRowContext(ctx, query,
		auth.UniqueAuthID,
		auth.RequestType,
		auth.ProviderName,
		auth.FacilityLocation,
		auth.ICDCodeList,
		auth.ICDCodeAuth,
		auth.ProcedureCodeAuth,
		auth.RequestStatus,
		auth.AuthorizationStartDate,
		auth.AuthorizationEndDate,
		auth.Units,
		auth.Description,
		auth.ClaimStatus,
		auth.ApprovalStatus,
		auth.ApprovalReason,
		auth.ApprovalDate,
		auth.ApprovalEndDate,
		auth.EligibilityStatus,
		auth.ValidationStatus,
		auth.OrderType,
		auth.InitialSaveStatus,
		auth.PatientID,
		auth.ProviderID,
		auth.InsuranceID,
		auth.PracticeID,
		auth.OrderID,
	).Scan(&auth.AuthorizationID)
	if err != nil {
		r.logger.Error("Failed to create authorization",
			zap.String("unique_auth_id", auth.UniqueAuthID),
			zap.Error(err))
		return fmt.Errorf("failed to create authorization: %w", err)
	}

	return nil
}

// GetByID retrieves an authorization by its numeric ID
func (r *AuthorizationRepository) GetByID(ctx context.Context, id int64) (*entity.Authorization, error) {
	query := r.db.Rebind(`SELECT ` + authorizationColumns + ` FROM authorizations WHERE authorization_id = ?`)

	auth, err := scanAuthorization(r.db.Executor(ctx).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get authorization by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get authorization: %w", err)
	}

	return auth, nil
}

// GetByUniqueAuthID retrieves an authorization by its AUTH### identifier
func (r *AuthorizationRepository) GetByUniqueAuthID(ctx context.Context, uniqueAuthID string) (*entity.Authorization, error) {
	query := r.db.Rebind(`SELECT ` + authorizationColumns + ` FROM authorizations WHERE unique_auth_id = ?`)

	auth, err := scanAuthorization(r.db.Executor(ctx).QueryRowContext(ctx, query, uniqueAuthID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get authorization by unique ID",
			zap.String("unique_auth_id", uniqueAuthID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get authorization: %w", err)
	}

	return auth, nil
}

// List returns every authorization ordered by ID
func (r *AuthorizationRepository) List(ctx context.Context) ([]*entity.Authorization, error) {
	query := `SELECT ` + authorizationColumns + ` FROM authorizations ORDER BY authorization_id`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list authorizations", zap.Error(err))
		return nil, fmt.Errorf("failed to list authorizations: %w", err)
	}
	defer rows.Close()

	auths := make([]*entity.Authorization, 0)
	for rows.Next() {
		auth, err := scanAuthorization(rows)
		if err != nil {
			r.logger.Error("Failed to scan authorization", zap.Error(err))
			return nil, fmt.Errorf("failed to scan authorization: %w", err)
		}
		auths = append(auths, auth)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authorizations: %w", err)
	}

	return auths, nil
}

// Update writes every mutable column of auth
func (r *AuthorizationRepository) Update(ctx context.Context, auth *entity.Authorization) error {
	query := r.db.Rebind(`
		UPDATE authorizations SET
			unique_auth_id = ?, request_type = ?, provider_name = ?, facility_location = ?,
			icd_code_list = ?, icd_code_auth = ?, procedure_code_auth = ?, request_status = ?,
			authorization_start_date = ?, authorization_end_date = ?, units = ?,
			description = ?, claim_status = ?, approval_status = ?, approval_reason = ?,
			approval_date = ?, approval_end_date = ?, eligibility_status = ?,
			validation_status = ?, order_type = ?, initial_save_status = ?,
			patient_id = ?, provider_id = ?, insurance_id = ?, practice_id = ?, order_id = ?
		WHERE authorization_id = ?
	`)

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		auth.UniqueAuthID,
		auth.RequestType,
		auth.ProviderName,
		auth.FacilityLocation,
		auth.ICDCodeList,
		auth.ICDCodeAuth,
		auth.ProcedureCodeAuth,
		auth.RequestStatus,
		auth.AuthorizationStartDate,
		auth.AuthorizationEndDate,
		auth.Units,
		auth.Description,
		auth.ClaimStatus,
		auth.ApprovalStatus,
		auth.ApprovalReason,
		auth.ApprovalDate,
		auth.ApprovalEndDate,
		auth.EligibilityStatus,
		auth.ValidationStatus,
		auth.OrderType,
		auth.InitialSaveStatus,
		auth.PatientID,
		auth.ProviderID,
		auth.InsuranceID,
		auth.PracticeID,
		auth.OrderID,
		auth.AuthorizationID,
	)
	if err != nil {
		r.logger.Error("Failed to update authorization",
			zap.Int64("id", auth.AuthorizationID),
			zap.Error(err))
		return fmt.Errorf("failed to update authorization: %w", err)
	}

	return requireAffected(result, "authorization", auth.AuthorizationID)
}

// Delete removes an authorization by ID
func (r *AuthorizationRepository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM authorizations WHERE authorization_id = ?`)

	result, err := r.db.Executor(ctx).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete authorization", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete authorization: %w", err)
	}

	return requireAffected(result, "authorization", id)
}

// LastUniqueAuthID returns the greatest unique_auth_id by string order
func (r *AuthorizationRepository) LastUniqueAuthID(ctx context.Context) (string, error) {
	return lastString(ctx, r.db, r.logger, "authorizations", "unique_auth_id")
}

func scanAuthorization(s rowScanner) (*entity.Authorization, error) {
	var auth entity.Authorization
	err := s.Scan(
		&auth.AuthorizationID,
		&auth.UniqueAuthID,
		&auth.RequestType,
		&auth.ProviderName,
		&auth.FacilityLocation,
		&auth.ICDCodeList,
		&auth.ICDCodeAuth,
		&auth.ProcedureCodeAuth,
		&auth.RequestStatus,
		&auth.AuthorizationStartDate,
		&auth.AuthorizationEndDate,
		&auth.Units,
		&auth.Description,
		&auth.ClaimStatus,
		&auth.ApprovalStatus,
		&auth.ApprovalReason,
		&auth.ApprovalDate,
		&auth.ApprovalEndDate,
		&auth.EligibilityStatus,
		&auth.ValidationStatus,
		&auth.OrderType,
		&auth.InitialSaveStatus,
		&auth.PatientID,
		&auth.ProviderID,
		&auth.InsuranceID,
		&auth.PracticeID,
		&auth.OrderID,
	)
	if err != nil {
		return nil, err
	}
	return &auth, nil
}

var _ port.AuthorizationRepository = (*AuthorizationRepository)(nil)
