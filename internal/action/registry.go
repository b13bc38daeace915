// Package action provides the capability registry and the handlers the
// assistant can dispatch against a project.
package action

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/appforge-ai/assistant-platform/internal/model"
)

// ErrNotFound is returned when no handler is registered under a name.
var ErrNotFound = errors.New("action not found")

// Handler executes one capability. Implementations must never panic out of
// Execute; every failure path is converted into a failed ActionResult.
type Handler interface {
	// CanExecute is a cheap precondition check run before parameter
	// validation, e.g. that the target project exists.
	CanExecute(projectID string, env *Env) bool

	// ValidateParameters checks structure only: required keys present.
	// Semantic validation happens inside Execute.
	ValidateParameters(params model.Params) bool

	// Execute performs the capability and reports the outcome.
	Execute(ctx context.Context, params model.Params, projectID string, env *Env) *model.ActionResult

	// Destructive reports whether this invocation would mutate or destroy
	// existing data. Static for most actions; file creation is only
	// destructive when the target already exists.
	Destructive(params model.Params, projectID string, env *Env) bool
}

type registration struct {
	descriptor model.ActionDescriptor
	handler    Handler
}

// Registry resolves action names to handlers. Registration order is
// insertion order; duplicate names overwrite silently, keeping the original
// catalog position, so a compatibility shim can replace a deprecated
// handler without touching the catalog.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]registration),
	}
}

// Register adds a capability under its descriptor name. Last registration
// wins.
func (r *Registry) Register(desc model.ActionDescriptor, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[desc.Name]; !exists {
		r.order = append(r.order, desc.Name)
	}
	r.entries[desc.Name] = registration{descriptor: desc, handler: h}
}

// Resolve returns the handler and descriptor registered under name.
func (r *Registry) Resolve(name string) (Handler, model.ActionDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.entries[name]
	if !ok {
		return nil, model.ActionDescriptor{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return reg.handler, reg.descriptor, nil
}

// DescribeAll returns every registered descriptor in registration order,
// for prompt injection and capability introspection.
func (r *Registry) DescribeAll() []model.ActionDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descs := make([]model.ActionDescriptor, 0, len(r.order))
	for _, name := range r.order {
		descs = append(descs, r.entries[name].descriptor)
	}
	return descs
}

// Dispatch resolves and executes an action, converting every failure path
// into a failed ActionResult. It never returns an error and never lets a
// handler panic escape.
func (r *Registry) Dispatch(ctx context.Context, name string, params model.Params, projectID string, env *Env) (result *model.ActionResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = model.Fail(name, fmt.Sprintf("action failed: %v", rec))
		}
	}()

	h, _, err := r.Resolve(name)
	if err != nil {
		return model.Fail(name, "unknown action: "+name)
	}
	if !h.CanExecute(projectID, env) {
		return model.Fail(name, "action cannot run in the current project state")
	}
	if !h.ValidateParameters(params) {
		return model.Fail(name, "missing required parameters")
	}
	return h.Execute(ctx, params, projectID, env)
}
