package action

import (
	"context"
	"path/filepath"

	"github.com/appforge-ai/assistant-platform/internal/model"
	"github.com/appforge-ai/assistant-platform/pkg/logger"
)

// ProjectDirectory is the slice of the project service handlers need.
type ProjectDirectory interface {
	Create(ctx context.Context, p *model.Project) error
	Get(ctx context.Context, id string) (*model.Project, error)
	Update(ctx context.Context, p *model.Project) error
}

// Env carries the collaborators a handler executes against. Handlers only
// ever touch the filesystem through paths derived from Env.
type Env struct {
	Projects ProjectDirectory

	// StorageRoot is the base directory under which every project's data
	// area lives.
	StorageRoot string

	Logger *logger.Logger
}

// ProjectRoot returns the data area for a project.
func (e *Env) ProjectRoot(projectID string) string {
	return filepath.Join(e.StorageRoot, projectID)
}

// base provides the descriptor-driven parts of the Handler contract.
// Concrete handlers embed it and override what differs.
type base struct {
	required []string
}

func (b base) CanExecute(projectID string, env *Env) bool {
	return env != nil
}

func (b base) ValidateParameters(params model.Params) bool {
	for _, key := range b.required {
		if !params.Has(key) {
			return false
		}
	}
	return true
}

// requiresProject is a CanExecute helper for handlers that need an
// existing project.
func requiresProject(projectID string, env *Env) bool {
	if env == nil || env.Projects == nil || projectID == "" {
		return false
	}
	p, err := env.Projects.Get(context.Background(), projectID)
	return err == nil && p != nil
}
