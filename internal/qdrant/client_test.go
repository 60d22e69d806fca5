package qdrant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(url string) *Client {
	c := NewClient(url, "test-key", "policies")
	return c
}

func TestSearch_ModernEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/policies/points/query" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("api-key") != "test-key" {
			t.Errorf("expected api-key header, got %q", r.Header.Get("api-key"))
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req["limit"].(float64) != 4 {
			t.Errorf("expected limit 4, got %v", req["limit"])
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{
				"points": []map[string]any{
					{"score": 0.9, "payload": map[string]any{"text": "WFH rules", "source": "wfh.pdf"}},
					{"score": 0.7, "payload": map[string]any{"text": "orphan chunk"}},
				},
			},
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	hits, err := c.Search(context.Background(), []float64{0.1, 0.2}, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Text != "WFH rules" || hits[0].Source == nil || *hits[0].Source != "wfh.pdf" {
		t.Errorf("unexpected first hit: %+v", hits[0])
	}
	if hits[1].Source != nil {
		t.Errorf("expected nil source for payload without one, got %q", *hits[1].Source)
	}
}

func TestSearch_FallsBackToLegacyOn404(t *testing.T) {
	var queryCalls, searchCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/collections/policies/points/query":
			queryCalls++
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":{"error":"Not found"}}`))
		case "/collections/policies/points/search":
			searchCalls++
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]any{
				"result": []map[string]any{
					{"score": 0.8, "payload": map[string]any{"text": "leave rules", "source": "leave.pdf"}},
				},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	hits, err := c.Search(context.Background(), []float64{0.1}, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 || hits[0].Text != "leave rules" {
		t.Errorf("unexpected hits: %+v", hits)
	}

	// Second search must go straight to the legacy path.
	if _, err := c.Search(context.Background(), []float64{0.1}, 4); err != nil {
		t.Fatalf("unexpected error on second search: %v", err)
	}
	if queryCalls != 1 {
		t.Errorf("expected exactly one probe of the modern endpoint, got %d", queryCalls)
	}
	if searchCalls != 2 {
		t.Errorf("expected 2 legacy searches, got %d", searchCalls)
	}
}

func TestSearch_InfrastructureErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":{"error":"out of memory"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if _, err := c.Search(context.Background(), []float64{0.1}, 4); err == nil {
		t.Fatal("expected error for server failure")
	}
}

func TestEnsureCollection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/collections/policies" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		vectors := req["vectors"].(map[string]any)
		if vectors["size"].(float64) != 384 {
			t.Errorf("expected size 384, got %v", vectors["size"])
		}
		if vectors["distance"] != "Cosine" {
			t.Errorf("expected cosine distance, got %v", vectors["distance"])
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"result":true}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if err := c.EnsureCollection(context.Background(), 384); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnsureCollection_InvalidDimension(t *testing.T) {
	c := newTestClient("http://unused")
	if err := c.EnsureCollection(context.Background(), 0); err == nil {
		t.Fatal("expected error for zero dimension")
	}
}

func TestUpsert(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/policies/points" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("wait") != "true" {
			t.Errorf("expected wait=true")
		}
		var req struct {
			Points []struct {
				ID      string         `json:"id"`
				Vector  []float64      `json:"vector"`
				Payload map[string]any `json:"payload"`
			} `json:"points"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Points) != 1 {
			t.Fatalf("expected 1 point, got %d", len(req.Points))
		}
		if req.Points[0].Payload["source"] != "handbook.pdf" {
			t.Errorf("unexpected payload: %+v", req.Points[0].Payload)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"result":{"status":"completed"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	err := c.Upsert(context.Background(), []Point{
		{ID: "7c9e6679-7425-40de-944b-e07fc1f90ae7", Vector: []float64{0.1}, Text: "chunk", Source: "handbook.pdf"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpsert_Empty(t *testing.T) {
	c := newTestClient("http://unused")
	if err := c.Upsert(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error for empty upsert: %v", err)
	}
}
