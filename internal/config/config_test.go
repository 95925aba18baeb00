package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AppConfig
		wantErr bool
	}{
		{
			name:  "full",
			input: `{"shortcut":"Ctrl+Space","offset_x":4,"offset_y":7}`,
			want:  AppConfig{Shortcut: "Ctrl+Space", OffsetX: 4, OffsetY: 7},
		},
		{
			name:  "offsets default",
			input: `{"shortcut":"Alt+K"}`,
			want:  AppConfig{Shortcut: "Alt+K", OffsetX: -9, OffsetY: -1},
		},
		{
			name:  "explicit zero offsets are kept",
			input: `{"shortcut":"Alt+K","offset_x":0,"offset_y":0}`,
			want:  AppConfig{Shortcut: "Alt+K"},
		},
		{
			name:  "unknown keys ignored",
			input: `{"shortcut":"Alt+K","theme":"dark"}`,
			want:  AppConfig{Shortcut: "Alt+K", OffsetX: -9, OffsetY: -1},
		},
		{name: "missing shortcut", input: `{"offset_x":1}`, wantErr: true},
		{name: "not json", input: `shortcut=Alt+K`, wantErr: true},
		{name: "wrong type", input: `{"shortcut":"Alt+K","offset_x":"left"}`, wantErr: true},
		{name: "trailing garbage", input: `{"shortcut":"Alt+K"} x`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("Parse() error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, fromFile, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if fromFile {
		t.Error("fromFile should be false for a missing file")
	}
	want := AppConfig{Shortcut: "CmdOrControl+Alt+Space", OffsetX: -9, OffsetY: -1}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, fromFile, err := Load(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
	}
	if !fromFile {
		t.Error("fromFile should be true when the file exists")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	want := AppConfig{Shortcut: "Super+Shift+P", OffsetX: 12, OffsetY: 0}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, fromFile, err := Load(path)
	if err != nil || !fromFile {
		t.Fatalf("Load() = %v, %v", fromFile, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPath(t *testing.T) {
	t.Setenv(PathEnv, "")
	if Path() != "config.json" {
		t.Errorf("Path() = %q, want config.json", Path())
	}

	t.Setenv(PathEnv, "/tmp/custom.json")
	if Path() != "/tmp/custom.json" {
		t.Errorf("Path() = %q, want override", Path())
	}
}

func TestIconDir(t *testing.T) {
	dir, err := IconDir()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	if filepath.Base(dir) != "icons" || filepath.Base(filepath.Dir(dir)) != Identifier {
		t.Errorf("IconDir() = %q", dir)
	}
}
