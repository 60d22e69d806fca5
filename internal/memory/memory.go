// Package memory holds per-user bounded conversation history.
//
// Two implementations exist: an in-process store for single-node deployments
// and a Postgres-backed store for deployments that need history to survive
// restarts. Both keep at most a configured number of recent turns per user,
// dropping the oldest first.
package memory

import (
	"context"

	"github.com/policypulse/policypulse/internal/chat"
)

// DefaultLimit is the number of messages retained per user when no limit is
// configured.
const DefaultLimit = 10

// Store is the conversation history contract used by the answer pipeline.
// All operations are total over the space of user identifiers: unknown users
// read as empty and clearing an unknown user succeeds.
type Store interface {
	// Add appends a single message to the user's history, evicting the
	// oldest entries once the history exceeds the configured limit.
	Add(ctx context.Context, userID, role, content string) error

	// RecordTurn appends the user question and the assistant answer as one
	// atomic operation, so concurrent writers can never split a turn pair.
	RecordTurn(ctx context.Context, userID, question, answer string) error

	// Get returns the user's history oldest-first. The returned slice is a
	// copy; mutating it does not affect the store.
	Get(ctx context.Context, userID string) ([]chat.Message, error)

	// Clear resets the user's history. Idempotent.
	Clear(ctx context.Context, userID string) error
}
