//go:build windows

package probe

import (
	"os/exec"
	"syscall"
)

// setDetachedAttrs starts the child in its own process group so it
// survives the host process exiting.
func setDetachedAttrs(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}
}
