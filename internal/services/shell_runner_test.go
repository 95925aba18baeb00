//go:build !windows

package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quickcmd/internal/testutils"
)

func TestShellRunner_Start(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")
	out := filepath.Join(t.TempDir(), "out.txt")

	r := NewShellRunner(&testutils.RecordingLogger{})
	if err := r.Start("echo launched > '" + out + "'"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	r.Wait()

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("command did not run: %v", err)
	}
	if strings.TrimSpace(string(data)) != "launched" {
		t.Errorf("output = %q", data)
	}
}

func TestShellRunner_NonZeroExitIsLogged(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")
	rec := &testutils.RecordingLogger{}

	r := NewShellRunner(rec)
	if err := r.Start("exit 3"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	r.Wait()

	if len(rec.Calls("warn")) != 1 {
		t.Errorf("warn calls = %d, want 1", len(rec.Calls("warn")))
	}
}

func TestShellRunner_MissingShell(t *testing.T) {
	t.Setenv("SHELL", filepath.Join(t.TempDir(), "no-such-shell"))

	r := NewShellRunner(&testutils.RecordingLogger{})
	if err := r.Start("true"); err == nil {
		t.Fatal("expected error for missing shell")
	}
}
