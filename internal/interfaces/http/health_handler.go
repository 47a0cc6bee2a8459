package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// healthCheck handles GET /health
func (s *Server) healthCheck(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Database:  "up",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if s.health != nil {
		if err := s.health.PingContext(c.Request.Context()); err != nil {
			s.logger.Error("Database ping failed", "error", err)
			resp.Status = "unhealthy"
			resp.Database = "down"
			c.JSON(http.StatusServiceUnavailable, Response{Success: false, Data: resp, Error: "database unavailable"})
			return
		}
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: resp})
}
