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

const patientColumns = `
	patient_id, custom_patient_id, first_name, last_name, full_name, date_of_birth,
	gender, primary_insurance, secondary_insurance, primary_policy_number,
	secondary_policy_number, contact_number, insurance_id, facility_name,
	facility_address, subscriber_id`

// PatientRepository implements port.PatientRepository
type PatientRepository struct {
	db     *sqldb.DB
	logger *zap.Logger
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *sqldb.DB, logger *zap.Logger) port.PatientRepository {
	return &PatientRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new patient
func (r *PatientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	query := r.db.Rebind(`
		INSERT INTO patients (
			custom_patient_id, first_name, last_name, full_name, date_of_birth,
			gender, primary_insurance, secondary_insurance, primary_policy_number,
			secondary_policy_number, contact_number, insurance_id, facility_name,
			facility_address, subscriber_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING patient_id
	`)

	err := r.db.Executor(ctx).QueryRowContext(ctx, query,
		patient.CustomPatientID,
		patient.FirstName,
		patient.LastName,
		patient.FullName,
		patient.DateOfBirth,
		patient.Gender,
		patient.PrimaryInsurance,
		patient.SecondaryInsurance,
		patient.PrimaryPolicyNumber,
		patient.SecondaryPolicyNumber,
		patient.ContactNumber,
		patient.InsuranceID,
		patient.FacilityName,
		patient.FacilityAddress,
		patient.SubscriberID,
	).Scan(&patient.PatientID)
	if err != nil {
		r.logger.Error("Failed to create patient", zap.Error(err))
		return fmt.Errorf("failed to create patient: %w", err)
	}

	return nil
}

// GetByID retrieves a patient by ID
func (r *PatientRepository) GetByID(ctx context.Context, id int64) (*entity.Patient, error) {
	query := r.db.Rebind(`SELECT ` + patientColumns + ` FROM patients WHERE patient_id = ?`)

	patient, err := scanPatient(r.db.Executor(ctx).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get patient by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	return patient, nil
}

// List returns all patients
func (r *PatientRepository) List(ctx context.Context) ([]*entity.Patient, error) {
	rows, err := r.db.Executor(ctx).QueryContext(ctx, `SELECT `+patientColumns+` FROM patients ORDER BY patient_id`)
	if err != nil {
		r.logger.Error("Failed to list patients", zap.Error(err))
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	patients := make([]*entity.Patient, 0)
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, patient)
	}

	return patients, rows.Err()
}

// LastCustomPatientID returns the greatest PAT### identifier
func (r *PatientRepository) LastCustomPatientID(ctx context.Context) (string, error) {
	return lastString(ctx, r.db, r.logger, "patients", "custom_patient_id")
}

func scanPatient(s rowScanner) (*entity.Patient, error) {
	var p entity.Patient
	err := s.Scan(
		&p.PatientID,
		&p.CustomPatientID,
		&p.FirstName,
		&p.LastName,
		&p.FullName,
		&p.DateOfBirth,
		&p.Gender,
		&p.PrimaryInsurance,
		&p.SecondaryInsurance,
		&p.PrimaryPolicyNumber,
		&p.SecondaryPolicyNumber,
		&p.ContactNumber,
		&p.InsuranceID,
		&p.FacilityName,
		&p.FacilityAddress,
		&p.SubscriberID,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var _ port.PatientRepository = (*PatientRepository)(nil)
