// Package retriever turns a question into the context block handed to the
// language model: embed the query, run a similarity search, join the hits.
package retriever

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/policypulse/policypulse/internal/qdrant"
)

// Embedder converts text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Searcher runs a nearest-neighbor search against the vector index.
type Searcher interface {
	Search(ctx context.Context, vector []float64, topK int) ([]qdrant.ScoredPoint, error)
}

// Passage is one retrieved chunk. Source is nil when the indexed chunk was
// not tagged with an originating document.
type Passage struct {
	Text   string
	Source *string
}

type Retriever struct {
	embedder Embedder
	searcher Searcher
	topK     int
	logger   *slog.Logger
}

func New(embedder Embedder, searcher Searcher, topK int, logger *slog.Logger) *Retriever {
	if topK <= 0 {
		topK = 4
	}
	return &Retriever{
		embedder: embedder,
		searcher: searcher,
		topK:     topK,
		logger:   logger,
	}
}

// Retrieve returns the concatenated context text and the ranked passages for
// the query. Zero hits yields an empty context and no error; embedding or
// search failures are infrastructure errors and surface as such.
func (r *Retriever) Retrieve(ctx context.Context, query string) (string, []Passage, error) {
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return "", nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := r.searcher.Search(ctx, vector, r.topK)
	if err != nil {
		return "", nil, fmt.Errorf("vector search: %w", err)
	}

	r.logger.Debug("context retrieved", "hits", len(hits))

	if len(hits) == 0 {
		return "", nil, nil
	}

	passages := make([]Passage, len(hits))
	texts := make([]string, len(hits))
	for i, h := range hits {
		passages[i] = Passage{Text: h.Text, Source: h.Source}
		texts[i] = h.Text
	}
	return strings.Join(texts, "\n\n"), passages, nil
}
