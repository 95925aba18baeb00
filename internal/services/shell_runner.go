package services

import (
	"fmt"
	"sync"

	"quickcmd/internal/infrastructure/logging"
)

// Runner starts a shell command line without waiting for it.
type Runner interface {
	Start(command string) error
}

// ShellRunner runs command lines through the platform shell.
type ShellRunner struct {
	logger logging.Logger
	wg     sync.WaitGroup
}

func NewShellRunner(logger logging.Logger) *ShellRunner {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &ShellRunner{logger: logger}
}

func (r *ShellRunner) Start(command string) error {
	cmd := buildShellCommand(command)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %q: %w", command, err)
	}

	pid := cmd.Process.Pid
	r.logger.Debug("Process started", "pid", pid)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := cmd.Wait(); err != nil {
			r.logger.Warn("Command exited with error", "pid", pid, "error", err)
			return
		}
		r.logger.Debug("Command finished", "pid", pid)
	}()
	return nil
}

// Wait blocks until every started process has exited.
func (r *ShellRunner) Wait() {
	r.wg.Wait()
}
