//go:build !windows

package services

import (
	"os"
	"os/exec"
	"syscall"
)

// buildShellCommand runs command with $SHELL -c in its own process group so
// terminal signals aimed at the launcher do not reach it.
func buildShellCommand(command string) *exec.Cmd {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	cmd := exec.Command(shell, "-c", command)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if home, err := os.UserHomeDir(); err == nil {
		cmd.Dir = home
	}
	return cmd
}
