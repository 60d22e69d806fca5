// Package qdrant is a minimal REST client for the Qdrant vector index.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// Client talks to a single Qdrant collection. Cosine distance is assumed.
type Client struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client

	// Older Qdrant versions do not expose the /points/query endpoint.
	// The first search probes it; a 404 flips this flag permanently and
	// all subsequent searches use the legacy /points/search path.
	legacySearch atomic.Bool
}

func NewClient(url, apiKey, collection string) *Client {
	return &Client{
		url:        url,
		apiKey:     apiKey,
		collection: collection,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Point is one chunk of a source document, ready for upsert.
type Point struct {
	ID     string
	Vector []float64
	Text   string
	Source string
}

// ScoredPoint is a search hit. Source is nil when the stored payload carried
// no source identifier.
type ScoredPoint struct {
	Text   string
	Source *string
	Score  float64
}

// EnsureCollection creates the collection if it does not exist. Qdrant
// answers 200 for an existing collection with the same schema.
func (c *Client) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid dimension %d", dimension)
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/collections/%s", c.collection), body, nil)
}

func (c *Client) Upsert(ctx context.Context, points []Point) error {
	if len(points) == 0 {
		return nil
	}
	payload := make([]map[string]any, len(points))
	for i, p := range points {
		payload[i] = map[string]any{
			"id":     p.ID,
			"vector": p.Vector,
			"payload": map[string]any{
				"text":   p.Text,
				"source": p.Source,
			},
		}
	}
	body := map[string]any{"points": payload}
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/collections/%s/points?wait=true", c.collection), body, nil)
}

// Search returns the topK nearest points in rank order.
func (c *Client) Search(ctx context.Context, vector []float64, topK int) ([]ScoredPoint, error) {
	if topK <= 0 {
		topK = 4
	}
	if c.legacySearch.Load() {
		return c.searchLegacy(ctx, vector, topK)
	}

	body := map[string]any{
		"query":        vector,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result struct {
			Points []searchHit `json:"points"`
		} `json:"result"`
	}
	err := c.send(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/query", c.collection), body, &resp)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			// Endpoint missing on this server version; remember and
			// use the legacy path from now on.
			c.legacySearch.Store(true)
			return c.searchLegacy(ctx, vector, topK)
		}
		return nil, err
	}
	return decodeHits(resp.Result.Points), nil
}

func (c *Client) searchLegacy(ctx context.Context, vector []float64, topK int) ([]ScoredPoint, error) {
	body := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result []searchHit `json:"result"`
	}
	err := c.send(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/search", c.collection), body, &resp)
	if err != nil {
		return nil, err
	}
	return decodeHits(resp.Result), nil
}

type searchHit struct {
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload"`
}

func decodeHits(hits []searchHit) []ScoredPoint {
	out := make([]ScoredPoint, 0, len(hits))
	for _, h := range hits {
		p := ScoredPoint{Score: h.Score}
		if v, ok := h.Payload["text"].(string); ok {
			p.Text = v
		}
		if v, ok := h.Payload["source"].(string); ok {
			p.Source = &v
		}
		out = append(out, p)
	}
	return out
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("qdrant error %d: %s", e.code, e.body)
}

func (c *Client) send(ctx context.Context, method, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode, body: string(respBody)}
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
