//go:build unix || linux || darwin

package probe

import (
	"os/exec"
	"syscall"
)

// setDetachedAttrs puts the child in its own process group so it survives
// the host process exiting.
func setDetachedAttrs(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
