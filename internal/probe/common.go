package probe

import (
	"path/filepath"
	"strings"
)

// pathBasename reduces a full command path (as reported by ps/tasklist,
// which may include arguments or a full path) to a bare process name
// comparable against a status spec's process_running argument.
func pathBasename(pathOrCmd string) string {
	first := pathOrCmd
	if i := strings.IndexByte(pathOrCmd, ' '); i >= 0 {
		first = pathOrCmd[:i]
	}
	return filepath.Base(first)
}
