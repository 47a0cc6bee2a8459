package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/speedauth/internal/application/service"
	"github.com/garyjia/speedauth/internal/domain/entity"
	"github.com/garyjia/speedauth/internal/domain/workflow"
	"github.com/garyjia/speedauth/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type authorizationHandler struct {
	authorizations service.AuthorizationService
	export         service.ExportService
	caseSummary    service.CaseSummaryService
	logger         Logger
}

func newAuthorizationHandler(
	authorizations service.AuthorizationService,
	export service.ExportService,
	caseSummary service.CaseSummaryService,
	logger Logger,
) *authorizationHandler {
	return &authorizationHandler{
		authorizations: authorizations,
		export:         export,
		caseSummary:    caseSummary,
		logger:         logger,
	}
}

type idRef struct {
	PatientID   *int64 `json:"patientId"`
	ProviderID  *int64 `json:"providerId"`
	InsuranceID *int64 `json:"insuranceId"`
	PracticeID  *int64 `json:"practiceId"`
	OrderID     *int64 `json:"orderId"`
}

// CreateFullRequest is the create-full body: authorization fields plus optional reference objects
type CreateFullRequest struct {
	entity.Authorization
	Patient   *idRef `json:"patient"`
	Provider  *idRef `json:"provider"`
	Insurance *idRef `json:"insurance"`
	Practice  *idRef `json:"practice"`
	Order     *idRef `json:"order"`
}

func (r *CreateFullRequest) links() entity.AuthorizationLinks {
	var links entity.AuthorizationLinks
	if r.Patient != nil {
		links.PatientID = r.Patient.PatientID
	}
	if r.Provider != nil {
		links.ProviderID = r.Provider.ProviderID
	}
	if r.Insurance != nil {
		links.InsuranceID = r.Insurance.InsuranceID
	}
	if r.Practice != nil {
		links.PracticeID = r.Practice.PracticeID
	}
	if r.Order != nil {
		links.OrderID = r.Order.OrderID
	}
	return links
}

// RequestStatusRequest is the PATCH /authorizations/:id body
type RequestStatusRequest struct {
	RequestStatus string `json:"requestStatus" binding:"required"`
}

// bindOptionalJSON accepts an empty body
func bindOptionalJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Create handles POST /authorizations/create
func (h *authorizationHandler) Create(c *gin.Context) {
	var auth entity.Authorization
	if err := bindOptionalJSON(c, &auth); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	created, err := h.authorizations.Create(c.Request.Context(), &auth)
	if err != nil {
		respondError(c, h.logger, "Failed to create authorization", err)
		return
	}
	respondData(c, http.StatusOK, created)
}

// CreateFull handles POST /authorizations/create-full
func (h *authorizationHandler) CreateFull(c *gin.Context) {
	var req CreateFullRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	created, err := h.authorizations.CreateWithLinks(c.Request.Context(), &req.Authorization, req.links())
	if err != nil {
		respondError(c, h.logger, "Failed to create authorization", err)
		return
	}
	respondData(c, http.StatusOK, created)
}

// List handles GET /authorizations
func (h *authorizationHandler) List(c *gin.Context) {
	auths, err := h.authorizations.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Failed to list authorizations", err)
		return
	}
	if auths == nil {
		auths = []*entity.Authorization{}
	}
	respondData(c, http.StatusOK, auths)
}

// Get handles GET /authorizations/:id
func (h *authorizationHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	auth, err := h.authorizations.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "Failed to get authorization", err)
		return
	}
	respondData(c, http.StatusOK, auth)
}

// GetByUniqueAuthID handles GET /authorizations/unique/:uniqueAuthId
func (h *authorizationHandler) GetByUniqueAuthID(c *gin.Context) {
	uniqueAuthID := utils.SanitizeString(c.Param("uniqueAuthId"))
	if uniqueAuthID == "" {
		badRequest(c, "uniqueAuthId is required")
		return
	}

	auth, err := h.authorizations.GetByUniqueAuthID(c.Request.Context(), uniqueAuthID)
	if err != nil {
		respondError(c, h.logger, "Failed to get authorization", err)
		return
	}
	respondData(c, http.StatusOK, auth)
}

// Update handles PUT /authorizations/:id
func (h *authorizationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var changes entity.Authorization
	if err := c.ShouldBindJSON(&changes); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	updated, err := h.authorizations.Update(c.Request.Context(), id, &changes)
	if err != nil {
		respondError(c, h.logger, "Failed to update authorization", err)
		return
	}
	respondData(c, http.StatusOK, updated)
}

// UpdateRequestStatus handles PATCH /authorizations/:id
func (h *authorizationHandler) UpdateRequestStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req RequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "requestStatus is required")
		return
	}

	status := workflow.RequestStatus(utils.SanitizeString(req.RequestStatus))
	updated, err := h.authorizations.UpdateRequestStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, h.logger, "Failed to update request status", err)
		return
	}
	respondData(c, http.StatusOK, updated)
}

// MarkInProgress handles PATCH /authorizations/inprogress/:id
func (h *authorizationHandler) MarkInProgress(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	updated, err := h.authorizations.MarkInProgress(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "Failed to mark authorization in progress", err)
		return
	}
	respondData(c, http.StatusOK, updated)
}

// Delete handles DELETE /authorizations/:id
func (h *authorizationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.authorizations.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "Failed to delete authorization", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export handles GET /authorizations/export
func (h *authorizationHandler) Export(c *gin.Context) {
	fileName := "authorizations_" + time.Now().Format("20060102") + ".xlsx"

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Status(http.StatusOK)

	if err := h.export.ExportWorklist(c.Request.Context(), c.Writer); err != nil {
		h.logger.Error("Failed to export worklist", "error", err)
		if !c.Writer.Written() {
			c.Writer.Header().Del("Content-Disposition")
			c.JSON(http.StatusInternalServerError, Response{Success: false, Error: internalErrorMessage})
		}
	}
}

// CaseSummary handles POST /authorizations/:id/case-summary
func (h *authorizationHandler) CaseSummary(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	summary, err := h.caseSummary.Summarize(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "Failed to summarize case", err)
		return
	}
	respondData(c, http.StatusOK, summary)
}
