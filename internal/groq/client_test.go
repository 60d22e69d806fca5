package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/policypulse/policypulse/internal/chat"
)

func TestComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("expected bearer auth, got %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type application/json, got %q", r.Header.Get("Content-Type"))
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("expected model test-model, got %q", req.Model)
		}
		if req.MaxTokens != 500 {
			t.Errorf("expected max_tokens 500, got %d", req.MaxTokens)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != chat.RoleSystem {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "You may work from home 2 days/week."}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 100, "completion_tokens": 12}
		}`))
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model", "")
	c.SetTestBaseURL(server.URL)

	result, err := c.Complete(context.Background(), []chat.Message{
		{Role: chat.RoleSystem, Content: "you are a test"},
		{Role: chat.RoleUser, Content: "wfh?"},
	}, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "You may work from home 2 days/week." {
		t.Errorf("unexpected answer: %q", result)
	}
}

func TestComplete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "invalid_request_error",
				"message": "max_tokens is too large",
			},
		})
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model", "")
	c.SetTestBaseURL(server.URL)

	_, err := c.Complete(context.Background(), []chat.Message{{Role: chat.RoleUser, Content: "hi"}}, 100)
	if err == nil {
		t.Fatal("expected error for API error response")
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model", "")
	c.SetTestBaseURL(server.URL)

	_, err := c.Complete(context.Background(), []chat.Message{{Role: chat.RoleUser, Content: "hi"}}, 100)
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestComplete_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model", "")
	c.SetTestBaseURL(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Complete(ctx, []chat.Message{{Role: chat.RoleUser, Content: "hi"}}, 100)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
