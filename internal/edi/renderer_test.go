package edi

import (
	"strings"
	"testing"
	"time"

	"github.com/garyjia/speedauth/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	dob := entity.NewDate(time.Date(1980, 1, 2, 0, 0, 0, 0, time.UTC))
	return Document{
		Authorization: &entity.Authorization{
			AuthorizationID:   42,
			ICDCodeAuth:       "M54.5",
			ProcedureCodeAuth: "97110",
		},
		Patient: &entity.Patient{
			FullName:        "Jane Doe",
			CustomPatientID: "PAT007",
			DateOfBirth:     &dob,
		},
		Provider:  &entity.Provider{ProviderID: 9, ProviderName: "Dr Smith"},
		Insurance: &entity.Insurance{Name: "Acme Health"},
		Date:      time.Date(2024, 10, 5, 14, 30, 0, 0, time.UTC),
	}
}

func TestRender_Golden(t *testing.T) {
	r := NewRenderer("", "")

	got, err := r.Render(sampleDocument())
	require.NoError(t, err)

	want := strings.Join([]string{
		"ISA*00*          *00*          *ZZ*YOURGSID       *ZZ*INSURANCE      *20241005*00501*000000001*1*P*:",
		"GS*HS*YOURGSID*INSURANCE*20241005*0001*X*005010X217",
		"ST*278*0001",
		"BHT*0010*13*AUTHORIZATION_ID*20241005*123456*CH",
		"NM1*IL*1*Jane Doe****MI*PAT007",
		"HL*1**20*1",
		"PAT*A*MI*19800102*",
		"HI*ABK:M54.5",
		"SV1*HC:97110*100*UN",
		"NM1*85*2*Dr Smith****XX*9",
		"NM1*PR*2*Acme Health",
		"SE*11*0001",
		"GE*1*0001",
		"IEA*1*000000001",
	}, "\n") + "\n"

	assert.Equal(t, want, got)
}

func TestRender_CustomInterchangeIDs(t *testing.T) {
	r := NewRenderer("CLINIC01", "PAYER99")

	got, err := r.Render(sampleDocument())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 14)
	assert.Contains(t, lines[0], "*ZZ*CLINIC01       *ZZ*PAYER99        *")
	assert.Equal(t, "GS*HS*CLINIC01*PAYER99*20241005*0001*X*005010X217", lines[1])
}

func TestRender_MissingReferences(t *testing.T) {
	r := NewRenderer("", "")

	tests := []struct {
		name    string
		mutate  func(d *Document)
		wantErr error
	}{
		{"no authorization", func(d *Document) { d.Authorization = nil }, ErrMissingAuthorization},
		{"no patient", func(d *Document) { d.Patient = nil }, ErrMissingPatient},
		{"no provider", func(d *Document) { d.Provider = nil }, ErrMissingProvider},
		{"no insurance", func(d *Document) { d.Insurance = nil }, ErrMissingInsurance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDocument()
			tt.mutate(&doc)

			out, err := r.Render(doc)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, out)
		})
	}
}

func TestRender_PatientWithoutBirthDate(t *testing.T) {
	doc := sampleDocument()
	doc.Patient.DateOfBirth = nil

	got, err := NewRenderer("", "").Render(doc)
	require.NoError(t, err)
	assert.Contains(t, got, "\nPAT*A*MI**\n")
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "authorization_edi_42_approved_278.edi", FileName(42, "approved"))
	assert.Equal(t, "authorization_edi_7_peer to peer_278.edi", FileName(7, "peer to peer"))
	assert.Equal(t, "authorization_edi_1_original_278.edi", FileName(1, "original"))
}
