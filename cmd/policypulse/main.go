package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/policypulse/policypulse/internal/api"
	"github.com/policypulse/policypulse/internal/config"
	"github.com/policypulse/policypulse/internal/embedding"
	"github.com/policypulse/policypulse/internal/events"
	"github.com/policypulse/policypulse/internal/groq"
	"github.com/policypulse/policypulse/internal/intent"
	"github.com/policypulse/policypulse/internal/memory"
	"github.com/policypulse/policypulse/internal/pipeline"
	"github.com/policypulse/policypulse/internal/qdrant"
	"github.com/policypulse/policypulse/internal/retriever"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("policypulse starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.GroqAPIKey == "" {
		slog.Error("GROQ_API_KEY is required")
		os.Exit(1)
	}

	// Conversation memory: Postgres when configured, in-process otherwise.
	var store memory.Store
	if cfg.DatabaseURL != "" {
		pg, err := memory.NewPostgresStore(ctx, cfg.DatabaseURL, cfg.MemoryLimit)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		store = pg
		slog.Info("conversation memory backed by postgres")
	} else {
		store = memory.NewInProcessStore(cfg.MemoryLimit)
		slog.Info("conversation memory in process", "limit", cfg.MemoryLimit)
	}

	embedder := embedding.NewClient(cfg.EmbedBaseURL, cfg.EmbedAPIKey, cfg.EmbedModel)
	index := qdrant.NewClient(cfg.QdrantURL, cfg.QdrantAPIKey, cfg.QdrantCollection)
	retr := retriever.New(embedder, index, cfg.TopK, slog.Default())
	llm := groq.NewClient(cfg.GroqAPIKey, cfg.GroqModel, cfg.GroqBaseURL)
	slog.Info("groq client ready", "model", cfg.GroqModel)

	// Event publisher (optional — the assistant works without NATS, just
	// no usage analytics).
	var pub pipeline.EventPublisher
	if cfg.NatsURL != "" {
		p, err := events.NewPublisher(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer p.Close()
		pub = p
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured, running without usage events")
	}

	pipe := pipeline.New(store, retr, llm, intent.NewKeywordClassifier(), pub, pipeline.Options{
		MaxAnswerTokens: cfg.MaxAnswerTokens,
		RetrieveTimeout: cfg.RetrieveTimeout,
		ModelTimeout:    cfg.ModelTimeout,
	}, slog.Default())

	srv := api.NewServer(cfg.Port, pipe, store, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("policypulse ready", "port", cfg.Port, "collection", cfg.QdrantCollection)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("policypulse stopped")
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
