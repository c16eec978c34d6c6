package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/cmd"
	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/badgerjournal"
	"marketplace/internal/adapters/out/postgres"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "marketplace",
		Short:         "Order and sample lifecycle service for the manufacturing marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), migrateCmd(), sweepCmd())
	return root
}

func serveCmd() *cobra.Command {
	var migrate bool
	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled sweeps",
		RunE: func(c *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			env, err := setup(migrate)
			if err != nil {
				return err
			}
			defer env.close()

			return serve(ctx, env)
		},
	}
	c.Flags().BoolVar(&migrate, "migrate", true, "apply schema migrations before serving")
	return c
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations and exit",
		RunE: func(*cobra.Command, []string) error {
			env, err := setup(true)
			if err != nil {
				return err
			}
			env.close()
			env.logger.Info("migrations applied")
			return nil
		},
	}
}

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Expire overdue negotiation rounds and mark overdue payments once",
		RunE: func(c *cobra.Command, _ []string) error {
			env, err := setup(false)
			if err != nil {
				return err
			}
			defer env.close()

			expired, overdue, err := env.root.CreateJobManager().RunAllOnce(c.Context())
			env.logger.Info("sweep finished", "expired_negotiations", expired, "overdue_payments", overdue)
			return err
		},
	}
}

type environment struct {
	cfg     cmd.Config
	logger  *slog.Logger
	db      *gorm.DB
	journal *badgerjournal.Journal
	root    cmd.CompositionRoot
}

func setup(migrate bool) (*environment, error) {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if migrate {
		if err = postgres.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrating database: %w", err)
		}
	}

	journal, err := badgerjournal.Open(cfg.JournalPath)
	if err != nil {
		return nil, fmt.Errorf("opening event journal: %w", err)
	}

	root, err := cmd.NewCompositionRoot(cfg, db, journal, logger)
	if err != nil {
		_ = journal.Close()
		return nil, err
	}

	return &environment{cfg: cfg, logger: logger, db: db, journal: journal, root: root}, nil
}

func (env *environment) close() {
	if err := env.journal.Close(); err != nil {
		env.logger.Error("closing event journal", "error", err)
	}
	if sqlDB, err := env.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func serve(ctx context.Context, env *environment) error {
	doc, err := httpin.LoadOpenAPI(ctx)
	if err != nil {
		return err
	}
	validator, err := httpin.RequestValidator(doc)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	env.root.CreateHTTPServer().Register(e, validator)

	jobManager := env.root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", env.cfg.HTTPPort))
	}()
	env.logger.InfoContext(ctx, "http server started", "port", env.cfg.HTTPPort)

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	env.logger.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}
