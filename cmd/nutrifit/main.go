package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joan-ouma/nutrifit-sub000/internal/auth"
	"github.com/joan-ouma/nutrifit-sub000/internal/config"
	"github.com/joan-ouma/nutrifit-sub000/internal/database"
	"github.com/joan-ouma/nutrifit-sub000/internal/export"
	"github.com/joan-ouma/nutrifit-sub000/internal/logging"
	"github.com/joan-ouma/nutrifit-sub000/internal/recipe"
	"github.com/joan-ouma/nutrifit-sub000/internal/server"
	"github.com/joan-ouma/nutrifit-sub000/internal/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	trk := tracker.New(db, tracker.Config{
		Location:  cfg.Location,
		Workers:   cfg.Workers,
		QueueSize: cfg.QueueSize,
	}, logger)

	dispatchCtx, dispatchCancel := context.WithCancel(context.Background())
	defer dispatchCancel()
	trk.Dispatcher.Start(dispatchCtx)

	exports := export.NewStore(export.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Prefix:    cfg.S3Prefix,
	})
	if !exports.Enabled() {
		logger.Info("export storage disabled")
	}

	var suggester recipe.Suggester
	if cfg.OpenAIKey != "" {
		suggester = recipe.NewOpenAISuggester(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	} else {
		logger.Info("recipe suggestions disabled")
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	srv := server.New(db, trk, tokens, exports, suggester, cfg.WSOrigins, logger)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Background cleanup goroutine
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				srv.RateLimiter().Cleanup()
			case <-cleanupCtx.Done():
				return
			}
		}
	}()

	go func() {
		slog.Info("nutrifit starting", "addr", cfg.Addr, "timezone", cfg.Timezone)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	cleanupCancel()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	trk.Dispatcher.Stop()
}
