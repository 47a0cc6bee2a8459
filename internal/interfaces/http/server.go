// Package http provides the HTTP server adapter for the application layer.
// Handlers translate requests into application service calls and map errors to status codes.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/garyjia/speedauth/internal/application/service"
	"github.com/garyjia/speedauth/pkg/utils"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:            "0.0.0.0",
		Port:            8080,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		AllowedOrigins:  []string{"http://localhost:3000"},
	}
}

// Services bundles the application services the handlers call
type Services struct {
	Authorizations service.AuthorizationService
	Lifecycle      service.LifecycleService
	EDI            service.EDIService
	References     service.ReferenceService
	Export         service.ExportService
	CaseSummary    service.CaseSummaryService
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	services   Services
	health     HealthChecker
	validate   *validator.Validate
	logger     Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(config ServerConfig, services Services, health HealthChecker, logger Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:   config,
		router:   gin.New(),
		services: services,
		health:   health,
		logger:   logger,
	}

	server.setupValidator()
	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupValidator registers the custom tags on gin's validator so binding tags can use them
func (s *Server) setupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		v = validator.New()
	}
	if err := utils.RegisterValidations(v); err != nil {
		s.logger.Error("Failed to register validations", "error", err)
	}
	s.validate = v
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(requestIDMiddleware())
	s.router.Use(s.loggingMiddleware())
	s.router.Use(corsMiddleware(s.config.AllowedOrigins))
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	auth := newAuthorizationHandler(s.services.Authorizations, s.services.Export, s.services.CaseSummary, s.logger)
	lifecycle := newLifecycleHandler(s.services.Lifecycle, s.validate, s.logger)
	edi := newEDIHandler(s.services.EDI, s.logger)
	refs := newReferenceHandler(s.services.References, s.logger)

	s.router.GET("/health", s.healthCheck)

	authorizations := s.router.Group("/authorizations")
	{
		authorizations.POST("/create", auth.Create)
		authorizations.POST("/create-full", auth.CreateFull)
		authorizations.GET("", auth.List)
		authorizations.GET("/export", auth.Export)
		authorizations.GET("/unique/:uniqueAuthId", auth.GetByUniqueAuthID)
		authorizations.GET("/:id", auth.Get)
		authorizations.PUT("/:id", auth.Update)
		authorizations.PATCH("/:id", auth.UpdateRequestStatus)
		authorizations.PATCH("/inprogress/:id", auth.MarkInProgress)
		authorizations.DELETE("/:id", auth.Delete)
		authorizations.POST("/:id/case-summary", auth.CaseSummary)

		authorizations.POST("/approveReject", lifecycle.ApproveReject)
		authorizations.POST("/checkeligibility/all", lifecycle.CheckEligibilityForList)
		authorizations.POST("/checkeligibility/:id", lifecycle.CheckEligibility)
		authorizations.POST("/uncheckeligibility/all", lifecycle.UncheckEligibilityForList)
		authorizations.POST("/checkvalidation/all", lifecycle.ValidateProviderForList)
		authorizations.POST("/checkvalidation/:id", lifecycle.ValidateProvider)
		authorizations.POST("/uncheckvalidation/all", lifecycle.InvalidateProviderForList)
		authorizations.POST("/checkcptvalidation/:id", lifecycle.ValidateCPT)
		authorizations.POST("/uncheckcptvalidation/all", lifecycle.ResetCPTForList)
	}

	ediRoutes := s.router.Group("/edi")
	{
		ediRoutes.GET("/generate-edi/:authId", edi.Generate)
		ediRoutes.POST("", edi.Create)
		ediRoutes.GET("", edi.List)
		ediRoutes.GET("/transaction/:transactionId", edi.ListByTransaction)
		ediRoutes.GET("/:id", edi.Get)
		ediRoutes.PUT("/:id", edi.Update)
		ediRoutes.DELETE("/:id", edi.Delete)
	}

	s.router.POST("/patients", refs.CreatePatient)
	s.router.GET("/patients", refs.ListPatients)
	s.router.GET("/patients/:id", refs.GetPatient)
	s.router.POST("/providers", refs.CreateProvider)
	s.router.GET("/providers", refs.ListProviders)
	s.router.GET("/providers/:id", refs.GetProvider)
	s.router.POST("/insurances", refs.CreateInsurance)
	s.router.GET("/insurances", refs.ListInsurances)
	s.router.GET("/insurances/:id", refs.GetInsurance)
	s.router.POST("/practices", refs.CreatePractice)
	s.router.GET("/practices", refs.ListPractices)
	s.router.GET("/practices/:id", refs.GetPractice)
	s.router.POST("/orders", refs.CreateOrder)
	s.router.GET("/orders", refs.ListOrders)
	s.router.GET("/orders/:id", refs.GetOrder)
}

// Start starts the HTTP server and blocks until ctx is cancelled or the listener fails
func (s *Server) Start(ctx context.Context) error {
	addr := s.Address()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
