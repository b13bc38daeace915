package action

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/appforge-ai/assistant-platform/internal/model"
)

// ResultKeyProjectID is where project-creating actions report the new id.
const ResultKeyProjectID = "project_id"

// projectSubtrees are scaffolded under a new project's data area.
var projectSubtrees = []string{".app-data", "files", "res", "java"}

// createProjectHandler creates a project record and scaffolds its data
// area. Not destructive: it never touches existing data.
type createProjectHandler struct {
	base
}

func newCreateProjectHandler() *createProjectHandler {
	return &createProjectHandler{base{required: []string{"name", "package_name"}}}
}

func (h *createProjectHandler) CanExecute(projectID string, env *Env) bool {
	return env != nil && env.Projects != nil
}

func (h *createProjectHandler) Destructive(model.Params, string, *Env) bool { return false }

func (h *createProjectHandler) Execute(ctx context.Context, params model.Params, projectID string, env *Env) *model.ActionResult {
	name, _ := params.GetString("name")
	pkg, _ := params.GetString("package_name")

	if strings.TrimSpace(name) == "" || strings.TrimSpace(pkg) == "" {
		return model.Fail("create_project", "name and package_name must not be empty")
	}

	now := time.Now()
	p := &model.Project{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Name:        name,
		PackageName: pkg,
		VersionName: "1.0",
		VersionCode: 1,
		MinSdk:      21,
		TargetSdk:   34,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if v, ok := params.GetString("version_name"); ok {
		p.VersionName = v
	}
	if v, ok := params.GetInt("min_sdk"); ok {
		p.MinSdk = v
	}
	if v, ok := params.GetInt("target_sdk"); ok {
		p.TargetSdk = v
	}
	if v, ok := params.GetString("theme_color"); ok {
		p.ThemeColor = v
	}

	if err := env.Projects.Create(ctx, p); err != nil {
		return model.Fail("create_project", "could not save project: "+err.Error())
	}

	root := env.ProjectRoot(p.ID)
	for _, sub := range projectSubtrees {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return model.Fail("create_project", "could not scaffold project directories")
		}
	}

	return model.Succeed("create_project", "project created", map[string]any{
		ResultKeyProjectID: p.ID,
		"name":             p.Name,
		"package_name":     p.PackageName,
	})
}

// settingsKeys are the parameter names update_project_settings recognizes.
var settingsKeys = []string{
	"name", "package_name", "version_name", "version_code",
	"min_sdk", "target_sdk", "theme_color",
}

// updateSettingsHandler applies recognized settings fields to the current
// project. Unrecognized keys are ignored; a call carrying none of the
// recognized keys succeeds with "no changes needed".
type updateSettingsHandler struct {
	base
}

func newUpdateSettingsHandler() *updateSettingsHandler {
	return &updateSettingsHandler{}
}

func (h *updateSettingsHandler) CanExecute(projectID string, env *Env) bool {
	return requiresProject(projectID, env)
}

func (h *updateSettingsHandler) Destructive(model.Params, string, *Env) bool { return false }

func (h *updateSettingsHandler) Execute(ctx context.Context, params model.Params, projectID string, env *Env) *model.ActionResult {
	p, err := env.Projects.Get(ctx, projectID)
	if err != nil || p == nil {
		return model.Fail("update_project_settings", "project not found")
	}

	var changed []string
	for _, key := range settingsKeys {
		if !params.Has(key) {
			continue
		}
		switch key {
		case "name":
			if v, ok := params.GetString(key); ok {
				p.Name = v
				changed = append(changed, key)
			}
		case "package_name":
			if v, ok := params.GetString(key); ok {
				p.PackageName = v
				changed = append(changed, key)
			}
		case "version_name":
			if v, ok := params.GetString(key); ok {
				p.VersionName = v
				changed = append(changed, key)
			}
		case "version_code":
			if v, ok := params.GetInt(key); ok {
				p.VersionCode = v
				changed = append(changed, key)
			}
		case "min_sdk":
			if v, ok := params.GetInt(key); ok {
				p.MinSdk = v
				changed = append(changed, key)
			}
		case "target_sdk":
			if v, ok := params.GetInt(key); ok {
				p.TargetSdk = v
				changed = append(changed, key)
			}
		case "theme_color":
			if v, ok := params.GetString(key); ok {
				p.ThemeColor = v
				changed = append(changed, key)
			}
		}
	}

	if len(changed) == 0 {
		return model.Succeed("update_project_settings", "no changes needed", nil)
	}

	p.UpdatedAt = time.Now()
	if err := env.Projects.Update(ctx, p); err != nil {
		return model.Fail("update_project_settings", "could not save project: "+err.Error())
	}

	return model.Succeed("update_project_settings", "settings updated", map[string]any{
		"changed": changed,
	})
}

// fixCodeHandler is the legacy umbrella action older model prompts still
// emit. It rewrites a file wholesale and is kept registered so those
// envelopes keep resolving; new prompts use edit_file.
type fixCodeHandler struct {
	edit *editFileHandler
}

func newFixCodeHandler() *fixCodeHandler {
	return &fixCodeHandler{edit: newEditFileHandler()}
}

func (h *fixCodeHandler) CanExecute(projectID string, env *Env) bool {
	return h.edit.CanExecute(projectID, env)
}

func (h *fixCodeHandler) ValidateParameters(params model.Params) bool {
	return h.edit.ValidateParameters(params)
}

func (h *fixCodeHandler) Destructive(model.Params, string, *Env) bool { return true }

func (h *fixCodeHandler) Execute(ctx context.Context, params model.Params, projectID string, env *Env) *model.ActionResult {
	res := h.edit.Execute(ctx, params, projectID, env)
	res.Action = "fix_code"
	return res
}
