//go:build unix

package cli

import (
	"os/exec"
	"syscall"
)

// detachProcessGroup starts git in its own process group so a terminal interrupt
// reaches only reposync, which turns it into a cooperative stop.
func detachProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
