package action

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge-ai/assistant-platform/internal/model"
)

func TestCreateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults and scaffolds directories", func(t *testing.T) {
		env := testEnv(t)
		h := newCreateProjectHandler()

		res := h.Execute(ctx, params(map[string]string{
			"name":         "Todo App",
			"package_name": "com.example.todo",
		}), "", env)

		require.True(t, res.Success, res.Message)
		id, ok := res.Data[ResultKeyProjectID].(string)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		require.NoError(t, err)

		dir := env.Projects.(*fakeDirectory)
		require.Len(t, dir.created, 1)
		p := dir.created[0]
		assert.Equal(t, "Todo App", p.Name)
		assert.Equal(t, "com.example.todo", p.PackageName)
		assert.Equal(t, "1.0", p.VersionName)
		assert.Equal(t, 1, p.VersionCode)
		assert.Equal(t, 21, p.MinSdk)
		assert.Equal(t, 34, p.TargetSdk)

		for _, sub := range []string{".app-data", "files", "res", "java"} {
			info, err := os.Stat(filepath.Join(env.ProjectRoot(id), sub))
			require.NoError(t, err, sub)
			assert.True(t, info.IsDir())
		}
	})

	t.Run("honors explicit settings", func(t *testing.T) {
		env := testEnv(t)
		h := newCreateProjectHandler()

		res := h.Execute(ctx, model.Params{
			"name":         model.String("App"),
			"package_name": model.String("com.example.app"),
			"version_name": model.String("2.5"),
			"min_sdk":      model.Number(26),
			"target_sdk":   model.Number(35),
			"theme_color":  model.String("#336699"),
		}, "", env)

		require.True(t, res.Success, res.Message)
		p := env.Projects.(*fakeDirectory).created[0]
		assert.Equal(t, "2.5", p.VersionName)
		assert.Equal(t, 26, p.MinSdk)
		assert.Equal(t, 35, p.TargetSdk)
		assert.Equal(t, "#336699", p.ThemeColor)
	})

	t.Run("rejects blank names", func(t *testing.T) {
		env := testEnv(t)
		h := newCreateProjectHandler()

		res := h.Execute(ctx, params(map[string]string{
			"name":         "   ",
			"package_name": "com.example.app",
		}), "", env)

		assert.False(t, res.Success)
	})

	t.Run("never destructive", func(t *testing.T) {
		env := testEnv(t)
		h := newCreateProjectHandler()
		assert.False(t, h.Destructive(nil, "", env))
	})
}

func TestUpdateProjectSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("applies recognized keys", func(t *testing.T) {
		env := testEnv(t, "p1")
		h := newUpdateSettingsHandler()

		res := h.Execute(ctx, model.Params{
			"name":       model.String("Renamed"),
			"min_sdk":    model.Number(24),
			"irrelevant": model.String("ignored"),
		}, "p1", env)

		require.True(t, res.Success, res.Message)
		changed, ok := res.Data["changed"].([]string)
		require.True(t, ok)
		assert.ElementsMatch(t, []string{"name", "min_sdk"}, changed)

		p, err := env.Projects.Get(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Renamed", p.Name)
		assert.Equal(t, 24, p.MinSdk)
	})

	t.Run("no recognized keys succeeds without changes", func(t *testing.T) {
		env := testEnv(t, "p1")
		h := newUpdateSettingsHandler()

		res := h.Execute(ctx, params(map[string]string{"bogus": "x"}), "p1", env)

		require.True(t, res.Success)
		assert.Equal(t, "no changes needed", res.Message)
	})

	t.Run("fails without a current project", func(t *testing.T) {
		env := testEnv(t)
		h := newUpdateSettingsHandler()
		assert.False(t, h.CanExecute("", env))

		res := h.Execute(ctx, params(map[string]string{"name": "X"}), "ghost", env)
		assert.False(t, res.Success)
	})
}

func TestFixCodeDelegatesToEdit(t *testing.T) {
	ctx := context.Background()
	env := testEnv(t, "p1")
	seedFile(t, env, "p1", "java/Main.java", "broken")
	h := newFixCodeHandler()

	res := h.Execute(ctx, params(map[string]string{
		"path":    "java/Main.java",
		"content": "fixed",
	}), "p1", env)

	require.True(t, res.Success, res.Message)
	assert.Equal(t, "fix_code", res.Action)

	data, _ := os.ReadFile(filepath.Join(env.ProjectRoot("p1"), "java/Main.java"))
	assert.Equal(t, "fixed", string(data))
	assert.True(t, h.Destructive(nil, "p1", env))
}
