package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/garyjia/speedauth/internal/application/service"
	"github.com/garyjia/speedauth/internal/config"
	"github.com/garyjia/speedauth/internal/container"
	httpapi "github.com/garyjia/speedauth/internal/interfaces/http"
	"github.com/garyjia/speedauth/pkg/database"
	"github.com/garyjia/speedauth/pkg/utils"
)

const version = "1.0.0"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "speedauth",
		Short:         "Prior-authorization lifecycle service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "Path to the YAML config file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(ediCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the logger
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger, nil
}

// startContainer builds and starts the dependency container
func startContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*container.Container, error) {
	c, err := container.NewContainer(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := c.Start(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting speedauth",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.String("database_driver", cfg.Database.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := startContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to start container", zap.Error(err))
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error("Failed to close container", zap.Error(err))
		}
	}()

	services := c.Services()
	server := httpapi.NewServer(
		httpapi.ServerConfig{
			Host:            cfg.Server.Host,
			Port:            cfg.Server.Port,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
			AllowedOrigins:  cfg.Server.AllowedOrigins,
		},
		httpapi.Services{
			Authorizations: services.Authorization,
			Lifecycle:      services.Lifecycle,
			EDI:            services.EDI,
			References:     services.Reference,
			Export:         services.Export,
			CaseSummary:    services.CaseSummary,
		},
		c.Database(),
		utils.NewServiceLogger(logger),
	)

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("Shutdown complete")
	return nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *database.Migrator) error {
				applied, err := m.RunMigrations()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s)\n", applied)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *database.Migrator) error {
				statuses, err := m.Status()
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tNAME\tSTATUS\tAPPLIED AT")
				for _, s := range statuses {
					state, at := "pending", "-"
					if s.Applied {
						state = "applied"
						if s.AppliedAt != nil {
							at = s.AppliedAt.Format("2006-01-02 15:04:05")
						}
					}
					fmt.Fprintf(w, "%03d\t%s\t%s\t%s\n", s.Version, s.Name, state, at)
				}
				return w.Flush()
			})
		},
	})

	return cmd
}

// withMigrator opens the configured database without auto-migrating and runs fn
func withMigrator(fn func(m *database.Migrator) error) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.New(database.Config{
		Driver:          cfg.Database.Driver,
		Path:            cfg.Database.Path,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db, logger)
	if err != nil {
		return err
	}
	return fn(migrator)
}

func ediCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edi",
		Short: "EDI 278 document tools",
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Render and store the EDI 278 document of an authorization",
		RunE: func(cmd *cobra.Command, args []string) error {
			authID, _ := cmd.Flags().GetInt64("auth-id")
			suffix, _ := cmd.Flags().GetString("suffix")
			if authID <= 0 {
				return fmt.Errorf("--auth-id must be a positive authorization id")
			}

			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			c, err := startContainer(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer c.Close()

			doc, err := c.Services().EDI.Generate(cmd.Context(), authID, suffix)
			if err != nil {
				return fmt.Errorf("failed to generate EDI for authorization %d: %w", authID, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc.Path)
			return nil
		},
	}
	generateCmd.Flags().Int64("auth-id", 0, "Authorization id")
	generateCmd.Flags().String("suffix", service.SuffixOriginal, "File name status suffix")
	cmd.AddCommand(generateCmd)

	return cmd
}
