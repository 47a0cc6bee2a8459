package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/speedauth/internal/application/service"
	"github.com/garyjia/speedauth/internal/domain/workflow"
)

// Response wraps CRUD payloads
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// StatusResponse is returned by the workflow endpoints
type StatusResponse struct {
	Status          string `json:"status"`
	Message         string `json:"message,omitempty"`
	AuthorizationID int64  `json:"authorizationId,omitempty"`
}

// Workflow response statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

const internalErrorMessage = "internal server error"

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrAuthorizationNotFound),
		errors.Is(err, service.ErrReferenceNotFound),
		errors.Is(err, service.ErrEDIRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrMissingStatus),
		errors.Is(err, service.ErrEmptyICDCode):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// clientMessage hides internal failures behind a generic message
func clientMessage(status int, err error) string {
	if status == http.StatusInternalServerError {
		return internalErrorMessage
	}
	return err.Error()
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

func respondError(c *gin.Context, logger Logger, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(msg, "error", err, "path", c.Request.URL.Path)
	}
	c.JSON(status, Response{Success: false, Error: clientMessage(status, err)})
}

func respondStatusError(c *gin.Context, logger Logger, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(msg, "error", err, "path", c.Request.URL.Path)
	}
	c.JSON(status, StatusResponse{Status: StatusError, Message: clientMessage(status, err)})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: msg})
}

// parseID reads a positive int64 path parameter, writing a 400 when it is malformed
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, StatusResponse{Status: StatusError, Message: "invalid " + name})
		return 0, false
	}
	return id, true
}
