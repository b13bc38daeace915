package action

import (
	"errors"
	"path/filepath"
	"strings"
)

// allowedSegments are the subtrees of a project's data area that handlers
// may touch. The check is substring-based, matching the behavior the
// assistant shipped with; see DESIGN.md before tightening it to
// canonical-prefix matching.
var allowedSegments = []string{
	"/.app-data/",
	"/files/",
	"/res/",
	"/java/",
}

var errPathOutsideSandbox = errors.New("path is outside the project sandbox")

// resolveTarget joins a model-supplied relative path under the project's
// data area and verifies it against the sandbox whitelist. The whitelist
// is checked before any I/O is attempted.
func resolveTarget(env *Env, projectID, rel string) (string, error) {
	if rel == "" {
		return "", errors.New("path is required")
	}
	target := filepath.Join(env.ProjectRoot(projectID), rel)
	if !pathAllowed(target) {
		return "", errPathOutsideSandbox
	}
	return target, nil
}

func pathAllowed(path string) bool {
	p := filepath.ToSlash(path)
	for _, seg := range allowedSegments {
		if strings.Contains(p, seg) {
			return true
		}
	}
	return false
}
