package memory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/policypulse/policypulse/internal/chat"
)

// PostgresStore persists conversation history in a conversation_messages
// table, trimming each user to the configured limit after every append.
//
// Expected schema:
//
//	CREATE TABLE conversation_messages (
//	    id       BIGSERIAL PRIMARY KEY,
//	    user_id  TEXT NOT NULL,
//	    role     TEXT NOT NULL,
//	    content  TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE INDEX conversation_messages_user_idx ON conversation_messages (user_id, id);
type PostgresStore struct {
	pool  *pgxpool.Pool
	limit int
}

func NewPostgresStore(ctx context.Context, databaseURL string, limit int) (*PostgresStore, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool, limit: limit}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Add(ctx context.Context, userID, role, content string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertMessage(ctx, tx, userID, role, content); err != nil {
		return err
	}
	if err := s.trim(ctx, tx, userID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) RecordTurn(ctx context.Context, userID, question, answer string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertMessage(ctx, tx, userID, chat.RoleUser, question); err != nil {
		return err
	}
	if err := insertMessage(ctx, tx, userID, chat.RoleAssistant, answer); err != nil {
		return err
	}
	if err := s.trim(ctx, tx, userID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) Get(ctx context.Context, userID string) ([]chat.Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT role, content FROM conversation_messages
		WHERE user_id = $1
		ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.Role, &m.Content); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read messages: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Clear(ctx context.Context, userID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM conversation_messages WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	return nil
}

func insertMessage(ctx context.Context, tx pgx.Tx, userID, role, content string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO conversation_messages (user_id, role, content)
		VALUES ($1, $2, $3)`,
		userID, role, content,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// trim drops everything but the newest limit rows for the user.
func (s *PostgresStore) trim(ctx context.Context, tx pgx.Tx, userID string) error {
	_, err := tx.Exec(ctx, `
		DELETE FROM conversation_messages
		WHERE user_id = $1 AND id NOT IN (
			SELECT id FROM conversation_messages
			WHERE user_id = $1
			ORDER BY id DESC
			LIMIT $2
		)`,
		userID, s.limit,
	)
	if err != nil {
		return fmt.Errorf("trim messages: %w", err)
	}
	return nil
}
