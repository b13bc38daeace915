package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge-ai/assistant-platform/internal/store"
	"github.com/appforge-ai/assistant-platform/pkg/logger"
)

func newService() (*ConversationService, *store.MemoryStore) {
	contexts := store.NewMemory()
	return NewConversationService(contexts, logger.NewNop()), contexts
}

func TestConversationCreate(t *testing.T) {
	svc, contexts := newService()
	ctx := context.Background()

	conv, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = uuid.Parse(conv.ID)
	require.NoError(t, err)

	exists, err := contexts.Exists(ctx, conv.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestConversationGet(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(ctx, "never-created")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestConversationList(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx)
	require.NoError(t, err)
	b, err := svc.Create(ctx)
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	ids := []string{all[0].ID, all[1].ID}
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)
}

func TestConversationDelete(t *testing.T) {
	svc, contexts := newService()
	ctx := context.Background()

	conv, err := svc.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, conv.ID))
	exists, err := contexts.Exists(ctx, conv.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	err = svc.Delete(ctx, conv.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
