package actionrunner

import (
	"os"
	"path/filepath"
)

// ResolveCwd resolves an action's configured working directory against
// the host's repo root. An empty cwd resolves under repoRoot; an
// absolute cwd is used as-is; a relative cwd is joined with repoRoot.
// Either way, if the resolved path does not exist, it falls back to
// repoRoot rather than letting the action fail to launch.
func ResolveCwd(repoRoot, cwd string) string {
	if cwd == "" {
		return repoRoot
	}
	resolved := cwd
	if !filepath.IsAbs(cwd) {
		resolved = filepath.Join(repoRoot, cwd)
	}
	if !dirExists(resolved) {
		return repoRoot
	}
	return resolved
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
