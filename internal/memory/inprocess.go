package memory

import (
	"context"
	"sync"

	"github.com/policypulse/policypulse/internal/chat"
)

// InProcessStore keeps conversation history in a mutex-guarded map keyed by
// user ID. History is ephemeral: it lives for the process lifetime only.
type InProcessStore struct {
	mu    sync.Mutex
	limit int
	turns map[string][]chat.Message
}

// NewInProcessStore creates a store retaining at most limit messages per user.
// A non-positive limit falls back to DefaultLimit.
func NewInProcessStore(limit int) *InProcessStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &InProcessStore{
		limit: limit,
		turns: make(map[string][]chat.Message),
	}
}

func (s *InProcessStore) Add(_ context.Context, userID, role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.append(userID, chat.Message{Role: role, Content: content})
	return nil
}

func (s *InProcessStore) RecordTurn(_ context.Context, userID, question, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// User turn first, then assistant turn; future prompts replay history
	// in append order.
	s.append(userID, chat.Message{Role: chat.RoleUser, Content: question})
	s.append(userID, chat.Message{Role: chat.RoleAssistant, Content: answer})
	return nil
}

func (s *InProcessStore) Get(_ context.Context, userID string) ([]chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mem := s.turns[userID]
	out := make([]chat.Message, len(mem))
	copy(out, mem)
	return out, nil
}

func (s *InProcessStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.turns, userID)
	return nil
}

// append assumes s.mu is held.
func (s *InProcessStore) append(userID string, msg chat.Message) {
	mem := append(s.turns[userID], msg)
	if len(mem) > s.limit {
		trimmed := make([]chat.Message, s.limit)
		copy(trimmed, mem[len(mem)-s.limit:])
		mem = trimmed
	}
	s.turns[userID] = mem
}
