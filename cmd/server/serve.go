package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/saascontratos/contratos/internal/api"
	"github.com/saascontratos/contratos/internal/auth"
	"github.com/saascontratos/contratos/internal/config"
	"github.com/saascontratos/contratos/internal/contracts"
	"github.com/saascontratos/contratos/internal/document"
	"github.com/saascontratos/contratos/internal/domain"
	"github.com/saascontratos/contratos/internal/ingestion"
	"github.com/saascontratos/contratos/internal/repository"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Auth.SecretKey == config.DefaultSecretKey {
		slog.Warn("using the development secret key, set SECRET_KEY in production")
	}

	slog.Info("initializing database", "path", cfg.Database.Path)
	db, err := repository.InitDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}
	defer db.Close()

	// Repositories.
	userRepo := repository.NewUserRepo(db)
	contractRepo := repository.NewContractRepo(db)
	importRepo := repository.NewImportRepo(db)

	// Services.
	authSvc := auth.NewService(userRepo, 0)
	tokens := auth.NewTokens(cfg.Auth.SecretKey, time.Duration(cfg.Auth.TokenExpireHours)*time.Hour)
	contractSvc := contracts.NewService(contractRepo, document.NewPDFRenderer(cfg.Document.Author))
	ingestionSvc := ingestion.NewService(importRepo)

	if cfg.Seed.Enabled {
		if err := seed(cmd.Context(), db, cfg.Seed, authSvc, ingestionSvc); err != nil {
			slog.Warn("seeding failed", "error", err)
		}
	}

	router := api.NewRouter(api.Deps{
		Auth:          authSvc,
		Tokens:        tokens,
		Contracts:     contractSvc,
		Ingestion:     ingestionSvc,
		CookieSecure:  cfg.Auth.CookieSecure,
		AuthRateLimit: cfg.Auth.LoginRateLimit,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting",
			"port", cfg.Server.Port,
			"api", fmt.Sprintf("http://localhost:%d/api/v1", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server exited gracefully")
	return nil
}

// seed creates the demo account and imports the sample contracts when the
// database has no users yet.
func seed(ctx context.Context, db *sql.DB, cfg config.SeedConfig, authSvc *auth.Service, ingestionSvc *ingestion.Service) error {
	if ctx == nil {
		ctx = context.Background()
	}

	count, err := repository.NewUserRepo(db).Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		stored, err := repository.NewContractRepo(db).Count(ctx)
		if err != nil {
			return fmt.Errorf("count contracts: %w", err)
		}
		slog.Info("database already has data, skipping seed", "users", count, "contracts", stored)
		return nil
	}

	data, err := os.ReadFile(cfg.File)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	u, err := authSvc.Register(ctx, "Demo", cfg.Email, cfg.Password)
	if err != nil {
		return fmt.Errorf("create demo user: %w", err)
	}

	result, err := ingestionSvc.Import(ctx, u.ID, data, domain.FormatFromFilename(cfg.File))
	if err != nil {
		return fmt.Errorf("import seed file: %w", err)
	}

	slog.Info("seeded demo data",
		"email", u.Email,
		"contracts", result.RecordsImported,
		"rejected", result.RowsRejected)
	return nil
}
