package project

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge-ai/assistant-platform/internal/model"
)

func testProject(id string) *model.Project {
	now := time.Now()
	return &model.Project{
		ID:          id,
		Name:        "Todo",
		PackageName: "com.example.todo",
		VersionName: "1.0",
		VersionCode: 1,
		MinSdk:      21,
		TargetSdk:   34,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func runServiceTests(t *testing.T, newService func(t *testing.T) Service) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		s := newService(t)

		require.NoError(t, s.Create(ctx, testProject("p1")))

		p, err := s.Get(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Todo", p.Name)
		assert.Equal(t, "com.example.todo", p.PackageName)
		assert.Equal(t, 21, p.MinSdk)
		assert.Empty(t, p.ThemeColor)
	})

	t.Run("get missing", func(t *testing.T) {
		s := newService(t)
		_, err := s.Get(ctx, "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		s := newService(t)
		require.NoError(t, s.Create(ctx, testProject("p1")))

		p, err := s.Get(ctx, "p1")
		require.NoError(t, err)
		p.Name = "Todo Pro"
		p.ThemeColor = "#336699"
		require.NoError(t, s.Update(ctx, p))

		got, err := s.Get(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Todo Pro", got.Name)
		assert.Equal(t, "#336699", got.ThemeColor)
	})

	t.Run("update missing", func(t *testing.T) {
		s := newService(t)
		assert.ErrorIs(t, s.Update(ctx, testProject("ghost")), ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		s := newService(t)
		require.NoError(t, s.Create(ctx, testProject("p1")))
		p2 := testProject("p2")
		p2.Name = "Notes"
		require.NoError(t, s.Create(ctx, p2))

		all, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
	})
}

func TestSQLiteService(t *testing.T) {
	runServiceTests(t, func(t *testing.T) Service {
		s, err := NewSQLite(filepath.Join(t.TempDir(), "projects.db"))
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestMemoryService(t *testing.T) {
	runServiceTests(t, func(t *testing.T) Service {
		return NewMemory()
	})

	t.Run("copies on read and write", func(t *testing.T) {
		ctx := context.Background()
		s := NewMemory()
		p := testProject("p1")
		require.NoError(t, s.Create(ctx, p))

		// Mutating the caller's struct must not change the stored record.
		p.Name = "changed"

		got, err := s.Get(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Todo", got.Name)

		// Mutating a returned copy must not change the stored record.
		got.Name = "also changed"
		again, err := s.Get(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Todo", again.Name)
	})
}
