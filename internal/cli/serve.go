package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/finance-tracker/backend/internal/auth"
	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/plaid"
	"github.com/finance-tracker/backend/internal/router"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 30 * time.Second

func serveCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), o)
		},
	}
}

func serve(ctx context.Context, o *options) error {
	cfg := o.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}

	apiURL, err := url.Parse(cfg.Server.APIURL)
	if err != nil {
		return fmt.Errorf("could not parse api url: %w", err)
	}

	db, err := connect(cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer closeDB(db)

	co := v1.Controller{
		DB:     db,
		Tokens: auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Config: cfg,
	}

	if cfg.Plaid.Enabled() {
		client, err := plaid.NewClient(plaid.Config{
			ClientID:    cfg.Plaid.ClientID,
			Secret:      cfg.Plaid.Secret,
			Environment: cfg.Plaid.Environment,
			WebhookURL:  cfg.Plaid.WebhookURL,
		})
		if err != nil {
			return err
		}
		co.Plaid = client
		log.Info().Str("environment", cfg.Plaid.Environment).Msg("Plaid bank synchronization enabled")
	}

	r, teardown, err := router.Config(apiURL, cfg)
	if err != nil {
		return err
	}
	defer teardown()
	router.AttachRoutes(co, r.Group(apiURL.Path))

	server := &http.Server{
		Addr:              cfg.ListenAddress(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("address", server.Addr).Str("url", apiURL.String()).Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info().Msg("Server stopped")
	return nil
}

// connect opens the database, creating the directory of file databases.
func connect(dsn string) (*gorm.DB, error) {
	path, _, _ := strings.Cut(dsn, "?")
	path = strings.TrimPrefix(path, "file:")
	if path != "" && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("could not create data directory: %w", err)
		}
	}

	return models.Connect(dsn)
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("Closing the database failed")
	}
}
