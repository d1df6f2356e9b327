//go:build !windows && !unix && !linux && !darwin

package probe

import "os/exec"

// setDetachedAttrs is a no-op on build targets with no known detach
// mechanism; the child remains attached to this process's group.
func setDetachedAttrs(cmd *exec.Cmd) {}
