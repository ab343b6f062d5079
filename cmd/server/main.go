package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/lumiere-weddings/concierge/internal/chat"
	"github.com/lumiere-weddings/concierge/internal/llm"
	"github.com/lumiere-weddings/concierge/internal/notify"
	"github.com/lumiere-weddings/concierge/internal/server"
	"github.com/lumiere-weddings/concierge/internal/storage"
	"github.com/lumiere-weddings/concierge/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL storage")
		store, err = storage.NewPostgresStorage(storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		})
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Initialize the completion provider adapter
	provider := llm.NewOpenAIClient(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.MaxTokens,
		cfg.OpenAI.Temperature,
		time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second,
		logger,
	)

	// Initialize the hot-lead alert sink
	var sink notify.Sink
	switch cfg.Notifier.Channel {
	case "telegram":
		sink, err = notify.NewTelegramSink(cfg.Notifier.TelegramToken, cfg.Notifier.TelegramChatID)
		if err != nil {
			logger.Fatal("Failed to create telegram sink", zap.Error(err))
		}
	case "webhook":
		sink = notify.NewWebhookSink(cfg.Notifier.WebhookURL, 15*time.Second)
	default:
		logger.Info("Hot-lead alerts disabled")
		sink = notify.NopSink{}
	}
	if ttl := cfg.Notifier.DedupeTTLMinutes; ttl > 0 {
		sink = notify.NewDedupeSink(sink, time.Duration(ttl)*time.Minute)
	}

	router := chat.NewRouter(store, provider, sink, logger)
	auth := server.NewStaticTokenAuthenticator(cfg.Auth.Tokens)
	srv := server.New(cfg.Server.Addr, router, auth, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("Server error", zap.Error(err))
		}
	case sig := <-stop:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error", zap.Error(err))
		}
	}
}
