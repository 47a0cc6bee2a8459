package service

import (
	"context"
	"errors"
	"testing"

	"github.com/garyjia/speedauth/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReferenceService(patients *mockPatientRepo, providers *mockProviderRepo, insurances *mockInsuranceRepo) ReferenceService {
	return NewReferenceService(patients, providers, insurances, &mockPracticeRepo{}, &mockOrderRepo{}, &mockTxManager{}, &mockLogger{})
}

func TestReferenceService_DisplayIdentifiers(t *testing.T) {
	patients := &mockPatientRepo{last: "PAT009"}
	providers := &mockProviderRepo{}
	insurances := &mockInsuranceRepo{last: "INS-bad"}
	svc := newReferenceService(patients, providers, insurances)
	ctx := context.Background()

	patient, err := svc.CreatePatient(ctx, &entity.Patient{FirstName: "Ana", LastName: "Silva"})
	require.NoError(t, err)
	assert.Equal(t, "PAT010", patient.CustomPatientID)
	assert.Equal(t, "Ana Silva", patient.FullName)

	provider, err := svc.CreateProvider(ctx, &entity.Provider{ProviderName: "Dr Kim", NPINumber: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "NPI001", provider.NPINumber)

	insurance, err := svc.CreateInsurance(ctx, &entity.Insurance{Name: "Payer"})
	require.NoError(t, err)
	assert.Equal(t, "INS001", insurance.CustomInsuranceID)
}

func TestReferenceService_Errors(t *testing.T) {
	providers := &mockProviderRepo{lastErr: errors.New("db locked")}
	svc := newReferenceService(&mockPatientRepo{}, providers, &mockInsuranceRepo{})
	ctx := context.Background()

	_, err := svc.CreateProvider(ctx, &entity.Provider{ProviderName: "Dr Kim"})
	assert.ErrorContains(t, err, "db locked")
	assert.Empty(t, providers.created)

	_, err = svc.GetOrder(ctx, 3)
	var refErr *ReferenceNotFoundError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, KindOrder, refErr.Kind)
	assert.Equal(t, "order not found: 3", err.Error())
}
