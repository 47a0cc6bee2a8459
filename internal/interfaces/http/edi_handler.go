package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/speedauth/internal/application/service"
	"github.com/garyjia/speedauth/internal/domain/entity"
)

type ediHandler struct {
	edi    service.EDIService
	logger Logger
}

func newEDIHandler(edi service.EDIService, logger Logger) *ediHandler {
	return &ediHandler{edi: edi, logger: logger}
}

// Generate handles GET /edi/generate-edi/:authId and returns the document text
func (h *ediHandler) Generate(c *gin.Context) {
	id, ok := parseID(c, "authId")
	if !ok {
		return
	}

	doc, err := h.edi.Generate(c.Request.Context(), id, service.SuffixOriginal)
	if err != nil {
		respondStatusError(c, h.logger, "Failed to generate EDI document", err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+doc.FileName+`"`)
	c.String(http.StatusOK, doc.Content)
}

// Create handles POST /edi
func (h *ediHandler) Create(c *gin.Context) {
	var record entity.EDIRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	created, err := h.edi.CreateRecord(c.Request.Context(), &record)
	if err != nil {
		respondError(c, h.logger, "Failed to create EDI record", err)
		return
	}
	respondData(c, http.StatusCreated, created)
}

// List handles GET /edi
func (h *ediHandler) List(c *gin.Context) {
	records, err := h.edi.ListRecords(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Failed to list EDI records", err)
		return
	}
	if records == nil {
		records = []*entity.EDIRecord{}
	}
	respondData(c, http.StatusOK, records)
}

// Get handles GET /edi/:id
func (h *ediHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	record, err := h.edi.GetRecord(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "Failed to get EDI record", err)
		return
	}
	respondData(c, http.StatusOK, record)
}

// ListByTransaction handles GET /edi/transaction/:transactionId
func (h *ediHandler) ListByTransaction(c *gin.Context) {
	records, err := h.edi.ListRecordsByTransaction(c.Request.Context(), c.Param("transactionId"))
	if err != nil {
		respondError(c, h.logger, "Failed to list EDI records", err)
		return
	}
	if records == nil {
		records = []*entity.EDIRecord{}
	}
	respondData(c, http.StatusOK, records)
}

// Update handles PUT /edi/:id
func (h *ediHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var record entity.EDIRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	updated, err := h.edi.UpdateRecord(c.Request.Context(), id, &record)
	if err != nil {
		respondError(c, h.logger, "Failed to update EDI record", err)
		return
	}
	respondData(c, http.StatusOK, updated)
}

// Delete handles DELETE /edi/:id
func (h *ediHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.edi.DeleteRecord(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "Failed to delete EDI record", err)
		return
	}
	c.Status(http.StatusNoContent)
}
