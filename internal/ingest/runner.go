package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/policypulse/policypulse/internal/qdrant"
)

// Embedder converts chunk text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Indexer is the slice of the vector index the ingestion job needs.
type Indexer interface {
	EnsureCollection(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, points []qdrant.Point) error
}

const upsertBatchSize = 64

// Runner embeds chunks and upserts them into the policy collection.
type Runner struct {
	embedder Embedder
	index    Indexer
	logger   *slog.Logger
}

func NewRunner(embedder Embedder, index Indexer, logger *slog.Logger) *Runner {
	return &Runner{
		embedder: embedder,
		index:    index,
		logger:   logger,
	}
}

// Run chunks every document, ensures the collection exists (sized from the
// first embedding), and upserts all chunks in batches. Returns the number of
// chunks indexed.
func (r *Runner) Run(ctx context.Context, docs []Document) (int, error) {
	var chunks []Chunk
	for _, doc := range docs {
		chunks = append(chunks, ChunkDocument(doc)...)
	}
	r.logger.Info("chunked documents", "documents", len(docs), "chunks", len(chunks))

	if len(chunks) == 0 {
		return 0, nil
	}

	var batch []qdrant.Point
	collectionReady := false
	for i, chunk := range chunks {
		vector, err := r.embedder.Embed(ctx, chunk.Text)
		if err != nil {
			return i, fmt.Errorf("embed chunk %d of %s: %w", chunk.Index, chunk.Source, err)
		}

		if !collectionReady {
			if err := r.index.EnsureCollection(ctx, len(vector)); err != nil {
				return i, fmt.Errorf("ensure collection: %w", err)
			}
			collectionReady = true
		}

		batch = append(batch, qdrant.Point{
			ID:     uuid.NewString(),
			Vector: vector,
			Text:   chunk.Text,
			Source: chunk.Source,
		})

		if len(batch) >= upsertBatchSize {
			if err := r.index.Upsert(ctx, batch); err != nil {
				return i, fmt.Errorf("upsert batch: %w", err)
			}
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := r.index.Upsert(ctx, batch); err != nil {
			return len(chunks), fmt.Errorf("upsert final batch: %w", err)
		}
	}

	r.logger.Info("ingestion complete", "chunks", len(chunks))
	return len(chunks), nil
}
