package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/garyjia/speedauth/internal/domain/entity"
	"github.com/garyjia/speedauth/internal/domain/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestWorklistWriter_Write(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	writer := NewWorklistWriter(logger)

	units := 4
	start := entity.NewDate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	auths := []*entity.Authorization{
		{
			AuthorizationID:        1,
			UniqueAuthID:           "AUTH001",
			ICDCodeAuth:            "M54.5",
			ApprovalStatus:         workflow.ApprovalApproved,
			EligibilityStatus:      workflow.EligibilityEligible,
			AuthorizationStartDate: &start,
			Units:                  &units,
		},
		{
			AuthorizationID: 2,
			UniqueAuthID:    "AUTH002",
			ApprovalStatus:  workflow.ApprovalYetToSubmit,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writer.Write(&buf, auths))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(WorklistSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Unique Auth ID", rows[0][1])
	assert.Equal(t, "AUTH001", rows[1][1])
	assert.Equal(t, "Approved", rows[1][7])
	assert.Equal(t, "2024-06-01", rows[1][11])
	assert.Equal(t, "4", rows[1][15])
	assert.Equal(t, "yet to submit", rows[2][7])
}

func TestWorklistWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWorklistWriter(zap.NewNop()).Write(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(WorklistSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
