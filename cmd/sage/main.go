package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sagejournal/sage/internal/api"
	"github.com/sagejournal/sage/internal/bus"
	"github.com/sagejournal/sage/internal/config"
	"github.com/sagejournal/sage/internal/interpret"
	"github.com/sagejournal/sage/internal/processor"
	"github.com/sagejournal/sage/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("sage starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database connected")

	// Classifier — one immutable value shared by every caller
	classifier := interpret.NewDefault()
	slog.Info("classifier ready", "rules", classifier.RuleCount(), "threshold", cfg.ConfidenceThreshold)

	// NATS
	busClient, err := bus.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
	if err != nil {
		slog.Error("failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer busClient.Close()
	slog.Info("NATS connected", "url", cfg.NatsURL)

	// Processor — the main pipeline
	proc := processor.New(db, classifier, busClient, cfg.ConfidenceThreshold, slog.Default())

	// Subscribe to inbound chat messages
	if err := busClient.Subscribe(cfg.ChatSubject, proc.HandleChatMessage); err != nil {
		slog.Error("failed to subscribe to chat messages", "error", err)
		os.Exit(1)
	}

	// HTTP API
	srv := api.NewServer(cfg.Port, cfg.APIToken, classifier, proc, cfg.ConfidenceThreshold)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	// Announce registration
	if err := busClient.Publish("journal.agent.sage.registered", map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"port":      cfg.Port,
	}); err != nil {
		slog.Warn("failed to publish registration", "error", err)
	}

	slog.Info("sage ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("sage stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
