package action

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/appforge-ai/assistant-platform/internal/model"
)

// Edit write modes.
const (
	ModeOverwrite = "overwrite"
	ModeAppend    = "append"
	ModePrepend   = "prepend"
)

// createFileHandler writes a new source or resource file. Creation is only
// destructive when the target already exists and would be silently
// overwritten.
type createFileHandler struct {
	base
	action string
	ext    string
}

func newCreateFileHandler(action, ext string) *createFileHandler {
	return &createFileHandler{
		base:   base{required: []string{"path", "content"}},
		action: action,
		ext:    ext,
	}
}

func (h *createFileHandler) CanExecute(projectID string, env *Env) bool {
	return requiresProject(projectID, env)
}

func (h *createFileHandler) Destructive(params model.Params, projectID string, env *Env) bool {
	rel, ok := params.GetString("path")
	if !ok {
		return false
	}
	target, err := resolveTarget(env, projectID, rel)
	if err != nil {
		return false
	}
	_, err = os.Stat(target)
	return err == nil
}

func (h *createFileHandler) Execute(ctx context.Context, params model.Params, projectID string, env *Env) *model.ActionResult {
	rel, _ := params.GetString("path")
	content, _ := params.GetString("content")

	if h.ext != "" && !strings.HasSuffix(rel, h.ext) {
		return model.Fail(h.action, fmt.Sprintf("path must end in %s", h.ext))
	}

	target, err := resolveTarget(env, projectID, rel)
	if err != nil {
		return model.Fail(h.action, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return model.Fail(h.action, "could not create parent directory")
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return model.Fail(h.action, "could not write file: "+err.Error())
	}

	return model.Succeed(h.action, "file created", map[string]any{
		"path":  rel,
		"bytes": len(content),
	})
}

// editFileHandler rewrites an existing file in one of three modes:
// overwrite, append or prepend. Always destructive.
type editFileHandler struct {
	base
}

func newEditFileHandler() *editFileHandler {
	return &editFileHandler{base{required: []string{"path", "content"}}}
}

func (h *editFileHandler) CanExecute(projectID string, env *Env) bool {
	return requiresProject(projectID, env)
}

func (h *editFileHandler) Destructive(model.Params, string, *Env) bool { return true }

func (h *editFileHandler) Execute(ctx context.Context, params model.Params, projectID string, env *Env) *model.ActionResult {
	rel, _ := params.GetString("path")
	content, _ := params.GetString("content")
	mode, ok := params.GetString("mode")
	if !ok {
		mode = ModeOverwrite
	}

	target, err := resolveTarget(env, projectID, rel)
	if err != nil {
		return model.Fail("edit_file", err.Error())
	}

	existing, err := os.ReadFile(target)
	if err != nil {
		return model.Fail("edit_file", "file does not exist: "+rel)
	}

	backupFile(env, target, existing)

	var out []byte
	switch mode {
	case ModeOverwrite:
		out = []byte(content)
	case ModeAppend:
		out = append(existing, []byte(content)...)
	case ModePrepend:
		out = append([]byte(content), existing...)
	default:
		return model.Fail("edit_file", "unknown edit mode: "+mode)
	}

	if err := os.WriteFile(target, out, 0o644); err != nil {
		return model.Fail("edit_file", "could not write file: "+err.Error())
	}

	return model.Succeed("edit_file", "file updated", map[string]any{
		"path":  rel,
		"mode":  mode,
		"bytes": len(out),
	})
}

// deleteFileHandler removes a file. Always destructive.
type deleteFileHandler struct {
	base
}

func newDeleteFileHandler() *deleteFileHandler {
	return &deleteFileHandler{base{required: []string{"path"}}}
}

func (h *deleteFileHandler) CanExecute(projectID string, env *Env) bool {
	return requiresProject(projectID, env)
}

func (h *deleteFileHandler) Destructive(model.Params, string, *Env) bool { return true }

func (h *deleteFileHandler) Execute(ctx context.Context, params model.Params, projectID string, env *Env) *model.ActionResult {
	rel, _ := params.GetString("path")

	target, err := resolveTarget(env, projectID, rel)
	if err != nil {
		return model.Fail("delete_file", err.Error())
	}

	existing, err := os.ReadFile(target)
	if err != nil {
		return model.Fail("delete_file", "file does not exist: "+rel)
	}

	backupFile(env, target, existing)

	if err := os.Remove(target); err != nil {
		return model.Fail("delete_file", "could not delete file: "+err.Error())
	}

	return model.Succeed("delete_file", "file deleted", map[string]any{"path": rel})
}

// readFileHandler returns the content of a file. Never destructive.
type readFileHandler struct {
	base
}

func newReadFileHandler() *readFileHandler {
	return &readFileHandler{base{required: []string{"path"}}}
}

func (h *readFileHandler) CanExecute(projectID string, env *Env) bool {
	return requiresProject(projectID, env)
}

func (h *readFileHandler) Destructive(model.Params, string, *Env) bool { return false }

func (h *readFileHandler) Execute(ctx context.Context, params model.Params, projectID string, env *Env) *model.ActionResult {
	rel, _ := params.GetString("path")

	target, err := resolveTarget(env, projectID, rel)
	if err != nil {
		return model.Fail("read_file", err.Error())
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return model.Fail("read_file", "file does not exist: "+rel)
	}

	return model.Succeed("read_file", "file read", map[string]any{
		"path":    rel,
		"content": string(data),
	})
}

// listFilesHandler lists the entries of a project directory. Never
// destructive.
type listFilesHandler struct {
	base
}

func newListFilesHandler() *listFilesHandler {
	return &listFilesHandler{base{required: []string{"path"}}}
}

func (h *listFilesHandler) CanExecute(projectID string, env *Env) bool {
	return requiresProject(projectID, env)
}

func (h *listFilesHandler) Destructive(model.Params, string, *Env) bool { return false }

func (h *listFilesHandler) Execute(ctx context.Context, params model.Params, projectID string, env *Env) *model.ActionResult {
	rel, _ := params.GetString("path")

	target, err := resolveTarget(env, projectID, rel)
	if err != nil {
		return model.Fail("list_files", err.Error())
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return model.Fail("list_files", "directory does not exist: "+rel)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}

	return model.Succeed("list_files", "directory listed", map[string]any{
		"path":  rel,
		"files": names,
	})
}

// backupFile writes a timestamped copy of the prior content alongside the
// original before a mutation. Best effort: failures are logged and never
// block the primary operation.
func backupFile(env *Env, target string, content []byte) {
	backup := fmt.Sprintf("%s.bak.%d", target, time.Now().UnixMilli())
	if err := os.WriteFile(backup, content, 0o644); err != nil && env.Logger != nil {
		env.Logger.Warn("backup failed",
			zap.String("path", target),
			zap.Error(err),
		)
	}
}
