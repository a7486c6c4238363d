// Command server runs the dealer dashboard API.
//
// Startup order: environment (.env for local dev) → config → logging →
// tracing → datastore clients → HTTP server. Shutdown drains in-flight
// requests, then closes the Firestore client and flushes traces.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dealerhub/dealerhub-backend/internal/config"
	httpapi "github.com/dealerhub/dealerhub-backend/internal/http"
	"github.com/dealerhub/dealerhub-backend/internal/observability"
	"github.com/dealerhub/dealerhub-backend/internal/store"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	setupLogging(cfg)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	docs, blobs, closeStores, err := buildStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Backend).Msg("datastore setup failed")
	}

	engine := gin.New()
	httpapi.RegisterRoutes(engine, docs, blobs, cfg, log.Logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Str("backend", cfg.Backend).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	closeStores()
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown")
	}
	log.Info().Msg("server stopped")
}

// setupLogging configures the global zerolog logger: level from config,
// pretty console output in dev, JSON otherwise.
func setupLogging(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Logger = log.With().Str("service", cfg.OTEL.ServiceName).Logger()
}

// buildStores constructs the document and blob stores selected by
// cfg.Backend. The memory backend backs local development and has no
// external dependencies; attachment "uploads" get in-process URLs.
func buildStores(ctx context.Context, cfg config.Config) (store.DocumentStore, store.BlobStore, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return store.NewMemory(), store.NewMemoryBlobs(), func() {}, nil
	default:
		fs, err := store.NewFirestore(ctx, cfg.GoogleProjectID)
		if err != nil {
			return nil, nil, nil, err
		}
		gcs, err := store.NewGCS(ctx, cfg.StorageBucket)
		if err != nil {
			fs.Close()
			return nil, nil, nil, err
		}
		closeAll := func() {
			if err := fs.Close(); err != nil {
				log.Error().Err(err).Msg("firestore close")
			}
		}
		return fs, gcs, closeAll, nil
	}
}
