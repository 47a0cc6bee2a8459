// Package report builds spreadsheet exports of authorizations.
package report

import (
	"fmt"
	"io"

	"github.com/garyjia/speedauth/internal/domain/entity"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// WorklistSheet is the sheet name of the exported worklist
const WorklistSheet = "Authorizations"

var worklistHeaders = []string{
	"Authorization ID",
	"Unique Auth ID",
	"Request Type",
	"Provider",
	"ICD Code",
	"CPT Code",
	"Request Status",
	"Approval Status",
	"Approval Reason",
	"Eligibility",
	"Provider Validation",
	"Start Date",
	"End Date",
	"Approval Date",
	"Approval End Date",
	"Units",
}

// WorklistWriter renders authorizations as an xlsx worklist
type WorklistWriter struct {
	logger *zap.Logger
}

// NewWorklistWriter creates a new worklist writer
func NewWorklistWriter(logger *zap.Logger) *WorklistWriter {
	return &WorklistWriter{logger: logger}
}

// Write streams one header row and one row per authorization to w
func (ww *WorklistWriter) Write(w io.Writer, auths []*entity.Authorization) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), WorklistSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(WorklistSheet)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}

	header := make([]interface{}, len(worklistHeaders))
	for i, h := range worklistHeaders {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, auth := range auths {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, worklistRow(auth)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush worklist: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write worklist: %w", err)
	}

	ww.logger.Debug("Worklist exported", zap.Int("rows", len(auths)))
	return nil
}

func worklistRow(a *entity.Authorization) []interface{} {
	var units interface{}
	if a.Units != nil {
		units = *a.Units
	}
	return []interface{}{
		a.AuthorizationID,
		a.UniqueAuthID,
		a.RequestType,
		a.ProviderName,
		a.ICDCodeAuth,
		a.ProcedureCodeAuth,
		a.RequestStatus.String(),
		a.ApprovalStatus.String(),
		a.ApprovalReason,
		a.EligibilityStatus.String(),
		a.ValidationStatus.String(),
		dateCell(a.AuthorizationStartDate),
		dateCell(a.AuthorizationEndDate),
		dateCell(a.ApprovalDate),
		dateCell(a.ApprovalEndDate),
		units,
	}
}

func dateCell(d *entity.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
