package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge-ai/assistant-platform/internal/model"
	"github.com/appforge-ai/assistant-platform/pkg/logger"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "contexts.db"), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteLoadMissing(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	c := s.Load(ctx, "conv-1")
	require.NotNil(t, c)
	assert.Equal(t, "conv-1", c.ConversationID)
	assert.Empty(t, c.ExecutedActions)
	assert.NotNil(t, c.SessionState)

	// Loading never implicitly persists.
	exists, err := s.Exists(ctx, "conv-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSQLiteRoundTrip(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	c := model.NewConversationContext("conv-1")
	c.CurrentProjectID = "p1"
	c.LastParentMessageID = "parent-9"
	c.LastUserMessageID = "user-9"
	c.SessionState["ui_theme"] = "dark"
	c.RecordAction("create_project")
	c.RecordAction("create_java_file")
	c.AppendMessage(model.RoleUser, "make an app")
	c.AppendMessage(model.RoleAssistant, "done")

	require.NoError(t, s.Save(ctx, c))

	got := s.Load(ctx, "conv-1")
	assert.Equal(t, "p1", got.CurrentProjectID)
	assert.Equal(t, "parent-9", got.LastParentMessageID)
	assert.Equal(t, "user-9", got.LastUserMessageID)
	assert.Equal(t, "dark", got.SessionState["ui_theme"])
	assert.Equal(t, []string{"create_project", "create_java_file"}, got.ExecutedActions)
	require.Len(t, got.RemoteMessageHistory, 2)
	assert.Equal(t, "make an app", got.RemoteMessageHistory[0].Content)
}

func TestSQLiteSaveOverwrites(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	c := model.NewConversationContext("conv-1")
	c.CurrentProjectID = "p1"
	require.NoError(t, s.Save(ctx, c))

	c.CurrentProjectID = "p2"
	c.RecordAction("edit_file")
	require.NoError(t, s.Save(ctx, c))

	got := s.Load(ctx, "conv-1")
	assert.Equal(t, "p2", got.CurrentProjectID)
	assert.Equal(t, []string{"edit_file"}, got.ExecutedActions)
}

func TestSQLiteCorruptRecord(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	c := model.NewConversationContext("conv-1")
	c.RecordAction("create_project")
	require.NoError(t, s.Save(ctx, c))

	_, err := s.db.ExecContext(ctx,
		`UPDATE conversation_contexts SET context_json = ? WHERE conversation_id = ?`,
		"{definitely not json", "conv-1")
	require.NoError(t, err)

	// Corruption costs the history, never the conversation.
	got := s.Load(ctx, "conv-1")
	require.NotNil(t, got)
	assert.Equal(t, "conv-1", got.ConversationID)
	assert.Empty(t, got.ExecutedActions)
}

func TestSQLiteMismatchedID(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversation_contexts (conversation_id, context_json, updated_at) VALUES (?, ?, 0)`,
		"conv-1", `{"conversation_id":"someone-else"}`)
	require.NoError(t, err)

	got := s.Load(ctx, "conv-1")
	assert.Equal(t, "conv-1", got.ConversationID)
}

func TestSQLiteDeleteAndList(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, model.NewConversationContext("conv-1")))
	require.NoError(t, s.Save(ctx, model.NewConversationContext("conv-2")))

	ids, err := s.ListIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"conv-1", "conv-2"}, ids)

	require.NoError(t, s.Delete(ctx, "conv-1"))
	exists, err := s.Exists(ctx, "conv-1")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing id is a no-op.
	require.NoError(t, s.Delete(ctx, "conv-1"))
}

func TestSQLiteContextsAreIndependent(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	a := model.NewConversationContext("conv-a")
	a.RecordAction("create_project")
	require.NoError(t, s.Save(ctx, a))

	b := s.Load(ctx, "conv-b")
	assert.Empty(t, b.ExecutedActions)
}
