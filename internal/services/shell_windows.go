//go:build windows

package services

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// buildShellCommand hands command to cmd.exe untouched. cmd.exe does its
// own parsing, so the Go argument escaping must not be applied.
func buildShellCommand(command string) *exec.Cmd {
	shell := os.Getenv("COMSPEC")
	if shell == "" {
		shell = "cmd.exe"
	}

	cmd := exec.Command(shell)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine:       shellCmdLine(command),
		HideWindow:    true,
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cmd.Dir = home
	}
	return cmd
}

func shellCmdLine(command string) string {
	return "cmd.exe /c " + command
}
