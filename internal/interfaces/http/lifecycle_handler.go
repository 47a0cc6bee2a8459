package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/garyjia/speedauth/internal/application/service"
	"github.com/garyjia/speedauth/internal/domain/workflow"
	"github.com/garyjia/speedauth/pkg/utils"
)

// Workflow messages
const (
	msgAuthorizationNotFound = "Authorization record not found."
	msgApprovalStatusMissing = "Approval status is missing."
	msgAlreadyVerified       = "Verification process has already been completed."

	msgEligibilityChecked   = "Eligibility check completed for all provided IDs."
	msgEligibilityUnchecked = "Eligibility check initiated for given request IDs."
	msgProvidersValidated   = "Provider validation completed for all provided request IDs."
	msgProvidersReset       = "Validating all the provided ids are reset to inital state."
	msgCPTReset             = "reset cpt validation successful"
)

type lifecycleHandler struct {
	lifecycle service.LifecycleService
	validate  *validator.Validate
	logger    Logger
}

func newLifecycleHandler(lifecycle service.LifecycleService, validate *validator.Validate, logger Logger) *lifecycleHandler {
	return &lifecycleHandler{lifecycle: lifecycle, validate: validate, logger: logger}
}

// ApproveRejectRequest is the approveReject body
type ApproveRejectRequest struct {
	AuthorizationID int64 `json:"authorizationId" binding:"required,authid"`
}

// ApproveRejectResponse is the decision outcome
type ApproveRejectResponse struct {
	Status          string `json:"status"`
	AuthorizationID int64  `json:"authorizationId"`
	ApprovalReason  string `json:"approvalReason,omitempty"`
	Message         string `json:"message,omitempty"`
	EDIFilePath2    string `json:"ediFilePath2,omitempty"`
}

// ApproveReject handles POST /authorizations/approveReject
func (h *lifecycleHandler) ApproveReject(c *gin.Context) {
	var req ApproveRejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, StatusResponse{Status: StatusError, Message: "authorizationId must be a positive integer"})
		return
	}

	result, err := h.lifecycle.Decide(c.Request.Context(), req.AuthorizationID)
	switch {
	case errors.Is(err, service.ErrAuthorizationNotFound):
		c.JSON(http.StatusBadRequest, ApproveRejectResponse{
			Status:          StatusError,
			Message:         msgAuthorizationNotFound,
			AuthorizationID: req.AuthorizationID,
		})
		return
	case errors.Is(err, workflow.ErrMissingStatus):
		c.JSON(http.StatusBadRequest, ApproveRejectResponse{
			Status:          StatusError,
			Message:         msgApprovalStatusMissing,
			AuthorizationID: req.AuthorizationID,
		})
		return
	case err != nil:
		h.logger.Error("Failed to decide authorization", "error", err, "authorization_id", req.AuthorizationID)
		c.JSON(http.StatusInternalServerError, StatusResponse{Status: StatusError, Message: internalErrorMessage})
		return
	}

	if result.AlreadyVerified {
		c.JSON(http.StatusOK, ApproveRejectResponse{
			Status:          service.StatusAlreadyVerified,
			Message:         msgAlreadyVerified,
			AuthorizationID: result.AuthorizationID,
		})
		return
	}

	c.JSON(http.StatusOK, ApproveRejectResponse{
		Status:          result.Status,
		AuthorizationID: result.AuthorizationID,
		ApprovalReason:  result.ApprovalReason,
		EDIFilePath2:    result.EDIFilePath,
	})
}

// CheckEligibility handles POST /authorizations/checkeligibility/:id
func (h *lifecycleHandler) CheckEligibility(c *gin.Context) {
	h.single(c, "Failed to check eligibility", func(id int64) (string, error) {
		eligible, err := h.lifecycle.CheckEligibility(c.Request.Context(), id)
		return "Eligibility Status: " + workflow.EligibilityFor(eligible).String(), err
	})
}

// ValidateProvider handles POST /authorizations/checkvalidation/:id
func (h *lifecycleHandler) ValidateProvider(c *gin.Context) {
	h.single(c, "Failed to validate provider", func(id int64) (string, error) {
		valid, err := h.lifecycle.ValidateProvider(c.Request.Context(), id)
		return "Provider Validation Status: " + workflow.ValidationFor(valid).String(), err
	})
}

// ValidateCPT handles POST /authorizations/checkcptvalidation/:id
func (h *lifecycleHandler) ValidateCPT(c *gin.Context) {
	h.single(c, "Failed to validate CPT", func(id int64) (string, error) {
		required, err := h.lifecycle.ValidateCPT(c.Request.Context(), id)
		return "CPT Validation Status: " + workflow.RequestFor(required).String(), err
	})
}

// CheckEligibilityForList handles POST /authorizations/checkeligibility/all
func (h *lifecycleHandler) CheckEligibilityForList(c *gin.Context) {
	h.batch(c, "Failed to check eligibility", msgEligibilityChecked, h.lifecycle.CheckEligibilityForList)
}

// UncheckEligibilityForList handles POST /authorizations/uncheckeligibility/all
func (h *lifecycleHandler) UncheckEligibilityForList(c *gin.Context) {
	h.batch(c, "Failed to reset eligibility", msgEligibilityUnchecked, h.lifecycle.UncheckEligibilityForList)
}

// ValidateProviderForList handles POST /authorizations/checkvalidation/all
func (h *lifecycleHandler) ValidateProviderForList(c *gin.Context) {
	h.batch(c, "Failed to validate providers", msgProvidersValidated, h.lifecycle.ValidateProviderForList)
}

// InvalidateProviderForList handles POST /authorizations/uncheckvalidation/all
func (h *lifecycleHandler) InvalidateProviderForList(c *gin.Context) {
	h.batch(c, "Failed to reset provider validation", msgProvidersReset, h.lifecycle.InvalidateProviderForList)
}

// ResetCPTForList handles POST /authorizations/uncheckcptvalidation/all
func (h *lifecycleHandler) ResetCPTForList(c *gin.Context) {
	h.batch(c, "Failed to reset CPT validation", msgCPTReset, h.lifecycle.ResetCPTForList)
}

func (h *lifecycleHandler) single(c *gin.Context, failure string, run func(id int64) (string, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	message, err := run(id)
	if err != nil {
		respondStatusError(c, h.logger, failure, err)
		return
	}
	c.JSON(http.StatusOK, StatusResponse{Status: StatusSuccess, Message: message, AuthorizationID: id})
}

func (h *lifecycleHandler) batch(c *gin.Context, failure, message string, run func(ctx context.Context, ids []int64) error) {
	var ids []int64
	if err := c.ShouldBindJSON(&ids); err != nil {
		c.JSON(http.StatusBadRequest, StatusResponse{Status: StatusError, Message: "body must be a JSON array of request ids"})
		return
	}
	if err := h.validate.Var(ids, utils.TagIDList); err != nil {
		c.JSON(http.StatusBadRequest, StatusResponse{Status: StatusError, Message: "request ids must be a non-empty list of positive integers"})
		return
	}

	if err := run(c.Request.Context(), ids); err != nil {
		respondStatusError(c, h.logger, failure, err)
		return
	}
	c.JSON(http.StatusOK, StatusResponse{Status: StatusSuccess, Message: message})
}
