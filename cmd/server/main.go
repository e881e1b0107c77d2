package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/maxviazov/customer-pages-service/internal/config"
	"github.com/maxviazov/customer-pages-service/internal/handler"
	"github.com/maxviazov/customer-pages-service/internal/logger"
	"github.com/maxviazov/customer-pages-service/internal/repository"
	"github.com/maxviazov/customer-pages-service/internal/repository/postgres"
	"github.com/maxviazov/customer-pages-service/internal/service"
	"github.com/maxviazov/customer-pages-service/migrations"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	envPath := flag.String("env-file", ".env", "optional dotenv file loaded before the config")
	flag.Parse()

	if err := config.LoadDotEnv(*envPath); err != nil {
		log.Fatalf("❌ Env loading failed: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	if cfg.Logger.ServiceName == "" {
		cfg.Logger.ServiceName = cfg.App.Name
	}
	if cfg.Logger.ServiceVersion == "" {
		cfg.Logger.ServiceVersion = cfg.App.Version
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("service stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) error {
	repo, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		return fmt.Errorf("postgres connection failed: %w", err)
	}
	defer repo.Close()

	if cfg.Postgres.MigrateOnStart {
		if err := migrate(ctx, cfg, appLogger); err != nil {
			return err
		}
	}

	customerSvc := service.NewCustomerService(
		postgres.NewCustomerRepository(repo.Pool()),
		postgres.NewTxManager(repo.Pool()),
		service.PageDefaults{
			PageSize:           cfg.Pagination.DefaultPageSize,
			MaxPageSize:        cfg.Pagination.MaxPageSize,
			MaxNavigationPages: cfg.Pagination.MaxNavigationPages,
		},
		appLogger,
	)

	if cfg.Logger.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := handler.NewEngine(appLogger)
	handler.Register(engine, postgres.NewPinger(repo.Pool()), customerSvc)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.App.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.App.WriteTimeout) * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	appLogger.Info().Msg("✅ Service stopped")
	return nil
}

// migrate applies the embedded goose migrations over a short-lived database/sql handle.
func migrate(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) error {
	db, err := sql.Open("pgx", repository.BuildDSN(cfg.Postgres))
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer db.Close()
	return migrations.Up(ctx, db, appLogger.With().Str("component", "migrations").Logger())
}
