package testutils

import (
	"fmt"
	"testing"
)

type captureT struct {
	errors []string
}

func (c *captureT) Errorf(format string, args ...any) {
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
}

func TestFieldsToMap(t *testing.T) {
	tests := []struct {
		name       string
		fields     []any
		wantLen    int
		wantErrors int
	}{
		{name: "empty", fields: []any{}, wantLen: 0},
		{name: "pairs", fields: []any{"id", 1, "name", "build"}, wantLen: 2},
		{name: "missing value", fields: []any{"id", 1, "name"}, wantLen: 1, wantErrors: 1},
		{name: "non-string key", fields: []any{7, "x", "ok", true}, wantLen: 1, wantErrors: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct := &captureT{}
			got := FieldsToMap(ct, tt.fields)
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d (%v)", len(got), tt.wantLen, got)
			}
			if len(ct.errors) != tt.wantErrors {
				t.Errorf("errors = %v, want %d", ct.errors, tt.wantErrors)
			}
		})
	}
}

func TestRecordingLogger(t *testing.T) {
	var l RecordingLogger
	l.Info("started", "port", 1)
	l.Error("failed", "err", "boom")
	l.Info("stopped")

	if got := len(l.Calls("")); got != 3 {
		t.Fatalf("Calls(\"\") = %d, want 3", got)
	}
	infos := l.Calls("info")
	if len(infos) != 2 || infos[1].Msg != "stopped" {
		t.Errorf("unexpected info calls: %+v", infos)
	}
	if errs := l.Calls("error"); len(errs) != 1 || errs[0].Fields[1] != "boom" {
		t.Errorf("unexpected error calls: %+v", errs)
	}
}
