package container

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/garyjia/speedauth/internal/application/port"
	"github.com/garyjia/speedauth/internal/application/service"
	"github.com/garyjia/speedauth/internal/config"
	"github.com/garyjia/speedauth/internal/domain/workflow"
	"github.com/garyjia/speedauth/internal/edi"
	"github.com/garyjia/speedauth/internal/infrastructure/external/lark"
	"github.com/garyjia/speedauth/internal/infrastructure/external/openai"
	"github.com/garyjia/speedauth/internal/infrastructure/persistence/repository"
	"github.com/garyjia/speedauth/internal/infrastructure/persistence/sqldb"
	"github.com/garyjia/speedauth/internal/infrastructure/storage"
	"github.com/garyjia/speedauth/internal/report"
	"github.com/garyjia/speedauth/pkg/database"
	"github.com/garyjia/speedauth/pkg/utils"
	"go.uber.org/zap"
)

// DatabaseBundle holds database-related components.
type DatabaseBundle struct {
	Conn           *database.DB
	TransactionMgr *sqldb.DB
}

// ServiceDeps holds the dependencies of the application services.
type ServiceDeps struct {
	Repos      *RepositoryBundle
	TxManager  port.TransactionManager
	Storage    port.FileStorage
	Notifier   port.DecisionNotifier
	Summarizer port.CaseSummarizer
	EDI        *config.EDIConfig
	Logger     *zap.Logger
}

// ProvideDatabase opens the configured database and, when enabled, applies pending migrations.
func ProvideDatabase(cfg *config.DatabaseConfig, logger *zap.Logger) (*DatabaseBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if cfg.Driver == database.DriverSQLite {
		if err := ensureParentDir(cfg.Path); err != nil {
			return nil, err
		}
	}

	conn, err := database.New(database.Config{
		Driver:          cfg.Driver,
		Path:            cfg.Path,
		DSN:             cfg.DSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		migrator, err := database.NewMigrator(conn, logger)
		if err != nil {
			conn.Close()
			return nil, err
		}
		if _, err := migrator.RunMigrations(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return &DatabaseBundle{
		Conn:           conn,
		TransactionMgr: sqldb.NewDB(conn, logger),
	}, nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}

// ProvideRepositories creates all repositories over one transaction-aware connection.
func ProvideRepositories(db *sqldb.DB, logger *zap.Logger) (*RepositoryBundle, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &RepositoryBundle{
		Authorization: repository.NewAuthorizationRepository(db, logger),
		Patient:       repository.NewPatientRepository(db, logger),
		Provider:      repository.NewProviderRepository(db, logger),
		Insurance:     repository.NewInsuranceRepository(db, logger),
		Practice:      repository.NewPracticeRepository(db, logger),
		Order:         repository.NewOrderRepository(db, logger),
		EDIRecord:     repository.NewEDIRecordRepository(db, logger),
	}, nil
}

// ProvideStorage creates the EDI output storage and makes sure its directory exists.
func ProvideStorage(cfg *config.EDIConfig, logger *zap.Logger) (port.FileStorage, error) {
	if cfg == nil || cfg.OutputDir == "" {
		return nil, fmt.Errorf("edi output directory is required")
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create edi output directory: %w", err)
	}
	return storage.NewLocalFileStorage(cfg.OutputDir, logger), nil
}

// ProvideNotifier returns the Lark decision notifier, or a no-op one when Lark is disabled.
func ProvideNotifier(cfg *config.LarkConfig, logger *zap.Logger) port.DecisionNotifier {
	if cfg == nil || !cfg.Enabled {
		logger.Info("Lark notifications disabled")
		return lark.NoopNotifier{}
	}

	client := lark.NewSDKClient(lark.Config{
		AppID:     cfg.AppID,
		AppSecret: cfg.AppSecret,
		ChatID:    cfg.ChatID,
	}, logger)
	return lark.NewDecisionNotifier(client, cfg.ChatID, logger)
}

// ProvideSummarizer creates the case summarizer; without an API key it runs in mock mode.
func ProvideSummarizer(cfg *config.OpenAIConfig, logger *zap.Logger) port.CaseSummarizer {
	return openai.NewSummarizer(openai.Config{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.Timeout,
	}, logger)
}

// ProvideServices creates all application services.
func ProvideServices(deps *ServiceDeps) (*ServiceBundle, error) {
	if deps == nil || deps.Repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if deps.TxManager == nil {
		return nil, fmt.Errorf("transaction manager is required")
	}
	if deps.Storage == nil {
		return nil, fmt.Errorf("file storage is required")
	}
	if deps.EDI == nil {
		return nil, fmt.Errorf("edi config is required")
	}

	logger := utils.NewServiceLogger(deps.Logger)
	repos := deps.Repos

	ediService := service.NewEDIService(
		repos.Authorization,
		repos.Patient,
		repos.Provider,
		repos.Insurance,
		repos.EDIRecord,
		deps.Storage,
		edi.NewRenderer(deps.EDI.SenderID, deps.EDI.ReceiverID),
		deps.EDI.RecordReceiverID,
		logger,
	)

	return &ServiceBundle{
		Authorization: service.NewAuthorizationService(
			repos.Authorization,
			repos.Patient,
			repos.Provider,
			repos.Insurance,
			repos.Practice,
			repos.Order,
			deps.TxManager,
			logger,
		),
		Lifecycle: service.NewLifecycleService(
			repos.Authorization,
			ediService,
			deps.Notifier,
			deps.TxManager,
			workflow.NewRandomChooser(),
			logger,
		),
		EDI: ediService,
		Reference: service.NewReferenceService(
			repos.Patient,
			repos.Provider,
			repos.Insurance,
			repos.Practice,
			repos.Order,
			deps.TxManager,
			logger,
		),
		Export:      service.NewExportService(repos.Authorization, report.NewWorklistWriter(deps.Logger), logger),
		CaseSummary: service.NewCaseSummaryService(repos.Authorization, deps.Summarizer, logger),
	}, nil
}
