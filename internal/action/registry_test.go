package action

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge-ai/assistant-platform/internal/model"
)

// stubHandler is a configurable handler for registry tests.
type stubHandler struct {
	canExecute  bool
	validParams bool
	destructive bool
	result      *model.ActionResult
	panicWith   any
}

func (h *stubHandler) CanExecute(string, *Env) bool                 { return h.canExecute }
func (h *stubHandler) ValidateParameters(model.Params) bool         { return h.validParams }
func (h *stubHandler) Destructive(model.Params, string, *Env) bool  { return h.destructive }
func (h *stubHandler) Execute(ctx context.Context, params model.Params, projectID string, env *Env) *model.ActionResult {
	if h.panicWith != nil {
		panic(h.panicWith)
	}
	return h.result
}

func okStub(action string) *stubHandler {
	return &stubHandler{
		canExecute:  true,
		validParams: true,
		result:      model.Succeed(action, "done", nil),
	}
}

func TestRegistryRegisterAndResolve(t *testing.T) {
	r := NewRegistry()
	r.Register(model.ActionDescriptor{Name: "alpha"}, okStub("alpha"))
	r.Register(model.ActionDescriptor{Name: "beta"}, okStub("beta"))

	h, desc, err := r.Resolve("alpha")
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "alpha", desc.Name)

	_, _, err = r.Resolve("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRegistryDescribeAllOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(model.ActionDescriptor{Name: "first"}, okStub("first"))
	r.Register(model.ActionDescriptor{Name: "second"}, okStub("second"))
	r.Register(model.ActionDescriptor{Name: "third"}, okStub("third"))

	descs := r.DescribeAll()
	require.Len(t, descs, 3)
	assert.Equal(t, "first", descs[0].Name)
	assert.Equal(t, "second", descs[1].Name)
	assert.Equal(t, "third", descs[2].Name)
}

func TestRegistryDuplicateKeepsPosition(t *testing.T) {
	r := NewRegistry()
	r.Register(model.ActionDescriptor{Name: "first"}, okStub("first"))
	r.Register(model.ActionDescriptor{Name: "second", Description: "v1"}, okStub("second"))
	r.Register(model.ActionDescriptor{Name: "third"}, okStub("third"))

	// Re-register "second": the new handler wins but its catalog slot
	// does not move.
	replacement := okStub("second")
	r.Register(model.ActionDescriptor{Name: "second", Description: "v2"}, replacement)

	descs := r.DescribeAll()
	require.Len(t, descs, 3)
	assert.Equal(t, "second", descs[1].Name)
	assert.Equal(t, "v2", descs[1].Description)

	h, _, err := r.Resolve("second")
	require.NoError(t, err)
	assert.Same(t, replacement, h.(*stubHandler))
}

func TestRegistryDispatch(t *testing.T) {
	ctx := context.Background()
	env := &Env{}

	t.Run("unknown action fails", func(t *testing.T) {
		r := NewRegistry()
		res := r.Dispatch(ctx, "nope", model.Params{}, "", env)
		require.NotNil(t, res)
		assert.False(t, res.Success)
		assert.Equal(t, "nope", res.Action)
		assert.Contains(t, res.Message, "unknown action")
	})

	t.Run("precondition failure", func(t *testing.T) {
		r := NewRegistry()
		r.Register(model.ActionDescriptor{Name: "a"}, &stubHandler{canExecute: false})
		res := r.Dispatch(ctx, "a", model.Params{}, "", env)
		assert.False(t, res.Success)
	})

	t.Run("parameter failure", func(t *testing.T) {
		r := NewRegistry()
		r.Register(model.ActionDescriptor{Name: "a"}, &stubHandler{canExecute: true, validParams: false})
		res := r.Dispatch(ctx, "a", model.Params{}, "", env)
		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "parameters")
	})

	t.Run("success passes through", func(t *testing.T) {
		r := NewRegistry()
		r.Register(model.ActionDescriptor{Name: "a"}, okStub("a"))
		res := r.Dispatch(ctx, "a", model.Params{}, "", env)
		assert.True(t, res.Success)
	})

	t.Run("handler panic becomes failed result", func(t *testing.T) {
		r := NewRegistry()
		r.Register(model.ActionDescriptor{Name: "a"}, &stubHandler{
			canExecute:  true,
			validParams: true,
			panicWith:   "boom",
		})
		res := r.Dispatch(ctx, "a", model.Params{}, "", env)
		require.NotNil(t, res)
		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "boom")
	})
}
