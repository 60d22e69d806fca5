// Command ingest populates the Qdrant policy collection from a directory of
// policy documents. Run it once before starting the assistant, and again
// whenever the documents change.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/policypulse/policypulse/internal/config"
	"github.com/policypulse/policypulse/internal/embedding"
	"github.com/policypulse/policypulse/internal/ingest"
	"github.com/policypulse/policypulse/internal/qdrant"
)

func main() {
	_ = godotenv.Load()

	var dir string
	flag.StringVar(&dir, "dir", "policies", "directory of policy documents (.txt, .md)")
	flag.Parse()

	cfg := config.Load()

	handler := slog.NewJSONHandler(os.Stdout, nil)
	logger := slog.New(handler)
	slog.SetDefault(logger)

	docs, err := ingest.LoadDocuments(dir)
	if err != nil {
		logger.Error("failed to load documents", "dir", dir, "error", err)
		os.Exit(1)
	}
	if len(docs) == 0 {
		logger.Error("no documents found", "dir", dir)
		os.Exit(1)
	}
	logger.Info("documents loaded", "count", len(docs), "dir", dir)

	embedder := embedding.NewClient(cfg.EmbedBaseURL, cfg.EmbedAPIKey, cfg.EmbedModel)
	index := qdrant.NewClient(cfg.QdrantURL, cfg.QdrantAPIKey, cfg.QdrantCollection)

	runner := ingest.NewRunner(embedder, index, logger)
	n, err := runner.Run(context.Background(), docs)
	if err != nil {
		logger.Error("ingestion failed", "indexed", n, "error", err)
		os.Exit(1)
	}

	logger.Info("ingestion finished", "chunks", n, "collection", cfg.QdrantCollection)
}
