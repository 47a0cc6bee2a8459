package service

import (
	"context"
	"io"

	"github.com/garyjia/speedauth/internal/application/port"
	"github.com/garyjia/speedauth/internal/domain/entity"
)

// WorklistWriter renders authorizations into a downloadable document
type WorklistWriter interface {
	Write(w io.Writer, auths []*entity.Authorization) error
}

// ExportService exports the authorization worklist
type ExportService interface {
	ExportWorklist(ctx context.Context, w io.Writer) error
}

type exportServiceImpl struct {
	authRepo port.AuthorizationRepository
	writer   WorklistWriter
	logger   Logger
}

// NewExportService creates a new ExportService
func NewExportService(authRepo port.AuthorizationRepository, writer WorklistWriter, logger Logger) ExportService {
	return &exportServiceImpl{
		authRepo: authRepo,
		writer:   writer,
		logger:   logger,
	}
}

func (s *exportServiceImpl) ExportWorklist(ctx context.Context, w io.Writer) error {
	auths, err := s.authRepo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to load authorizations for export", "error", err)
		return err
	}

	if err := s.writer.Write(w, auths); err != nil {
		s.logger.Error("Failed to write worklist", "error", err)
		return err
	}

	s.logger.Info("Worklist exported", "rows", len(auths))
	return nil
}
