package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/go-study-session/internal/config"
	"github.com/tbourn/go-study-session/internal/domain"
	httpapi "github.com/tbourn/go-study-session/internal/http"
	"github.com/tbourn/go-study-session/internal/identity"
	"github.com/tbourn/go-study-session/internal/observability"
	"github.com/tbourn/go-study-session/internal/repo"
	"github.com/tbourn/go-study-session/internal/services"
	"github.com/tbourn/go-study-session/internal/store"
	"github.com/tbourn/go-study-session/internal/sysutil"
)

const shutdownGrace = 15 * time.Second

func newServeCmd() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// A missing .env is fine; real deployments use the environment.
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	sysutil.SetLogLevel(cfg.LogLevel)
	logger := sysutil.NewLogger(os.Stderr, cfg.LogPretty)
	log.Logger = logger

	ver := sysutil.FirstNonEmpty(os.Getenv("STUDIUM_VERSION"), version)
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, ver, cfg.GinMode, logger)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			logger.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath, repo.WithTracing(cfg.OTEL.Enabled))
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	prov := identity.NewLocalProvider(db, identity.WithBcryptCost(cfg.BcryptCost))
	defer prov.Close()
	ident := services.NewIdentityService(prov, logger.With().Str("component", "identity").Logger())
	defer ident.Close()
	unwatch := ident.Watch(func(id domain.Identity) {
		ev := logger.Info().Bool("loading", id.Loading).Bool("signed_in", id.User != nil)
		if id.User != nil {
			ev = ev.Str("user_id", id.User.ID)
		}
		ev.Msg("identity changed")
	})
	defer unwatch()

	sess := services.NewSessionService(store.New())

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, sess, ident, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go purgeIdempotency(ctx, db, cfg.IdempotencyPurgeInterval, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("base_path", cfg.APIBasePath).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// purgeIdempotency deletes expired Idempotency-Key records every interval
// until ctx is done. A non-positive interval disables purging.
func purgeIdempotency(ctx context.Context, db *gorm.DB, every time.Duration, logger zerolog.Logger) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := repo.PurgeExpiredIdempotency(ctx, db, now.UTC())
			if err != nil {
				logger.Warn().Err(err).Msg("idempotency purge failed")
				continue
			}
			if n > 0 {
				logger.Debug().Int64("deleted", n).Msg("idempotency records purged")
			}
		}
	}
}
