package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge-ai/assistant-platform/internal/model"
)

type fakeCatalog struct {
	descs []model.ActionDescriptor
}

func (c *fakeCatalog) DescribeAll() []model.ActionDescriptor { return c.descs }

func twoActionCatalog() *fakeCatalog {
	return &fakeCatalog{descs: []model.ActionDescriptor{
		{
			Name:        "create_project",
			Description: "Create a project.",
			Parameters: map[string]model.ParamSpec{
				"name":         {Type: "string", Required: true},
				"package_name": {Type: "string", Required: true},
			},
		},
		{
			Name:        "read_file",
			Description: "Read a file.",
			Parameters: map[string]model.ParamSpec{
				"path": {Type: "string", Required: true},
			},
		},
	}}
}

func TestBuildSectionOrder(t *testing.T) {
	b := NewBuilder(twoActionCatalog())
	c := model.NewConversationContext("conv-1")

	out := b.Build("make me an app", c, nil)

	markers := []string{
		"coding assistant",     // framing
		"response_type",        // protocol
		"Available actions:",   // catalog
		"Project creation defaults", // defaults
		"Project settings fields",   // glossary
		"File conventions",     // conventions
		"make me an app",       // user message last
	}
	last := -1
	for _, m := range markers {
		idx := strings.Index(out, m)
		require.GreaterOrEqual(t, idx, 0, m)
		assert.Greater(t, idx, last, "section %q out of order", m)
		last = idx
	}
	assert.True(t, strings.HasSuffix(out, "make me an app"))
}

func TestBuildCatalogRendering(t *testing.T) {
	b := NewBuilder(twoActionCatalog())

	out := b.Build("hi", model.NewConversationContext("c"), nil)

	assert.Contains(t, out, "create_project - Create a project.")
	assert.Contains(t, out, "name (string, required)")
	// Catalog order follows registration order, not alphabetical.
	assert.Less(t, strings.Index(out, "create_project"), strings.Index(out, "read_file"))
}

func TestBuildProjectSnapshot(t *testing.T) {
	b := NewBuilder(twoActionCatalog())
	proj := &model.Project{
		ID:          "p1",
		Name:        "Todo",
		PackageName: "com.example.todo",
		VersionName: "1.2",
		VersionCode: 3,
	}

	t.Run("included when a current project is set", func(t *testing.T) {
		c := model.NewConversationContext("conv-1")
		c.CurrentProjectID = "p1"

		out := b.Build("hi", c, proj)
		assert.Contains(t, out, "Current project:")
		assert.Contains(t, out, "com.example.todo")
		assert.Contains(t, out, "1.2 (3)")
	})

	t.Run("skipped without a current project", func(t *testing.T) {
		c := model.NewConversationContext("conv-1")
		out := b.Build("hi", c, proj)
		assert.NotContains(t, out, "Current project:")
	})

	t.Run("skipped when the project record is missing", func(t *testing.T) {
		c := model.NewConversationContext("conv-1")
		c.CurrentProjectID = "p1"
		out := b.Build("hi", c, nil)
		assert.NotContains(t, out, "Current project:")
	})
}

func TestBuildRecentActions(t *testing.T) {
	b := NewBuilder(twoActionCatalog())

	t.Run("omitted when nothing executed", func(t *testing.T) {
		out := b.Build("hi", model.NewConversationContext("c"), nil)
		assert.NotContains(t, out, "Actions already executed")
	})

	t.Run("replays the most recent tail", func(t *testing.T) {
		c := model.NewConversationContext("c")
		for i := 0; i < 12; i++ {
			c.RecordAction("read_file")
		}
		c.RecordAction("edit_file")

		out := b.Build("hi", c, nil)
		require.Contains(t, out, "Actions already executed in this conversation:")
		assert.Contains(t, out, "edit_file")
		// 13 recorded, only the last 10 replayed: nine reads plus the edit.
		assert.Equal(t, 9, strings.Count(out, "read_file")-strings.Count(renderStatic(b), "read_file"))
	})
}

// renderStatic builds a prompt with no history so tests can subtract the
// catalog's own mentions of an action name.
func renderStatic(b *Builder) string {
	return b.Build("hi", model.NewConversationContext("static"), nil)
}

func TestBuildEmptyCatalog(t *testing.T) {
	b := NewBuilder(&fakeCatalog{})
	out := b.Build("hi", model.NewConversationContext("c"), nil)
	assert.NotContains(t, out, "Available actions:")
	assert.True(t, strings.HasSuffix(out, "hi"))
}
