package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge-ai/assistant-platform/internal/model"
)

func TestMemoryLoadMissing(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	c := s.Load(ctx, "conv-1")
	require.NotNil(t, c)
	assert.Equal(t, "conv-1", c.ConversationID)
	assert.NotNil(t, c.SessionState)
}

func TestMemoryRoundTrip(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	c := model.NewConversationContext("conv-1")
	c.CurrentProjectID = "p1"
	c.SessionState["key"] = "value"
	c.RecordAction("edit_file")
	require.NoError(t, s.Save(ctx, c))

	// Mutating the original after Save must not leak into the store.
	c.RecordAction("delete_file")

	got := s.Load(ctx, "conv-1")
	assert.Equal(t, "p1", got.CurrentProjectID)
	assert.Equal(t, "value", got.SessionState["key"])
	assert.Equal(t, []string{"edit_file"}, got.ExecutedActions)
}

func TestMemoryCorruptRecord(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	c := model.NewConversationContext("conv-1")
	c.RecordAction("create_project")
	require.NoError(t, s.Save(ctx, c))

	s.Corrupt("conv-1")

	got := s.Load(ctx, "conv-1")
	require.NotNil(t, got)
	assert.Equal(t, "conv-1", got.ConversationID)
	assert.Empty(t, got.ExecutedActions)
}

func TestMemoryDeleteExistsList(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, model.NewConversationContext("conv-1")))
	require.NoError(t, s.Save(ctx, model.NewConversationContext("conv-2")))

	exists, err := s.Exists(ctx, "conv-1")
	require.NoError(t, err)
	assert.True(t, exists)

	ids, err := s.ListIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"conv-1", "conv-2"}, ids)

	require.NoError(t, s.Delete(ctx, "conv-1"))
	exists, err = s.Exists(ctx, "conv-1")
	require.NoError(t, err)
	assert.False(t, exists)
}
