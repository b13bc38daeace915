package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/appforge-ai/assistant-platform/internal/model"
	"github.com/appforge-ai/assistant-platform/pkg/logger"
)

// SQLiteStore implements ContextStore on a single SQLite database. Each
// context is one row holding an opaque JSON record; the only structural
// guarantee is round-trip fidelity for well-formed writes.
type SQLiteStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSQLite opens (and if needed creates) the context database.
func NewSQLite(dbPath string, log *logger.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db, logger: log}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS conversation_contexts (
		conversation_id TEXT PRIMARY KEY,
		context_json TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_contexts_updated ON conversation_contexts(updated_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Load returns the stored context for the id, or a fresh context carrying
// only the id when the record is missing or cannot be decoded. Corruption
// costs the remembered history, never the conversation.
func (s *SQLiteStore) Load(ctx context.Context, conversationID string) *model.ConversationContext {
	row := s.db.QueryRowContext(ctx,
		`SELECT context_json FROM conversation_contexts WHERE conversation_id = ?`,
		conversationID)

	var raw string
	if err := row.Scan(&raw); err != nil {
		return model.NewConversationContext(conversationID)
	}

	var c model.ConversationContext
	if err := json.Unmarshal([]byte(raw), &c); err != nil || c.ConversationID == "" {
		if s.logger != nil {
			s.logger.Warn("discarding corrupt conversation context",
				zap.String("conversation_id", conversationID),
			)
		}
		return model.NewConversationContext(conversationID)
	}
	if c.ConversationID != conversationID {
		return model.NewConversationContext(conversationID)
	}
	if c.SessionState == nil {
		c.SessionState = make(map[string]string)
	}
	return &c
}

// Save overwrites the stored record for the context's id.
func (s *SQLiteStore) Save(ctx context.Context, c *model.ConversationContext) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal context: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO conversation_contexts (conversation_id, context_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(conversation_id) DO UPDATE SET
			context_json = excluded.context_json,
			updated_at = excluded.updated_at`,
		c.ConversationID, string(data), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save context: %w", err)
	}
	return nil
}

// Delete removes the stored record for the id.
func (s *SQLiteStore) Delete(ctx context.Context, conversationID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM conversation_contexts WHERE conversation_id = ?`,
		conversationID)
	if err != nil {
		return fmt.Errorf("delete context: %w", err)
	}
	return nil
}

// Exists reports whether a record is stored under the id.
func (s *SQLiteStore) Exists(ctx context.Context, conversationID string) (bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM conversation_contexts WHERE conversation_id = ?`,
		conversationID)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("query context: %w", err)
	}
	return true, nil
}

// ListIDs returns all stored conversation ids, most recently updated first.
func (s *SQLiteStore) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT conversation_id FROM conversation_contexts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contexts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan context id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
