//go:build windows

package cli

import (
	"os/exec"
	"syscall"
)

// detachProcessGroup starts git in a new process group so Ctrl+C is not delivered to it.
func detachProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}
