package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// PathEnv overrides the location of the config file.
	PathEnv = "QUICKCMD_CONFIG"

	// FileName is looked up in the working directory when PathEnv is unset.
	FileName = "config.json"

	// Identifier names the per-user data directory.
	Identifier = "com.quickcmd.app"

	DefaultShortcut = "CmdOrControl+Alt+Space"
	DefaultOffsetX  = -9
	DefaultOffsetY  = -1
)

// ErrInvalidConfig is returned when the config file exists but cannot be used.
var ErrInvalidConfig = errors.New("invalid config.json format")

// AppConfig is the user-editable launcher configuration.
type AppConfig struct {
	Shortcut string `json:"shortcut"`
	OffsetX  int    `json:"offset_x"`
	OffsetY  int    `json:"offset_y"`
}

// Default returns the configuration used when no file is present.
func Default() AppConfig {
	return AppConfig{
		Shortcut: DefaultShortcut,
		OffsetX:  DefaultOffsetX,
		OffsetY:  DefaultOffsetY,
	}
}

// fileConfig distinguishes absent keys from zero values.
type fileConfig struct {
	Shortcut *string `json:"shortcut"`
	OffsetX  *int    `json:"offset_x"`
	OffsetY  *int    `json:"offset_y"`
}

// Path returns the config file location.
func Path() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return FileName
}

// Load reads the config at path. A missing or unreadable file yields the
// defaults with fromFile=false; a file that is not valid JSON or lacks a
// shortcut is an ErrInvalidConfig.
func Load(path string) (cfg AppConfig, fromFile bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), false, nil
	}

	cfg, err = Parse(data)
	if err != nil {
		return AppConfig{}, true, err
	}
	return cfg, true, nil
}

// Parse decodes a config document, applying default offsets.
func Parse(data []byte) (AppConfig, error) {
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return AppConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if fc.Shortcut == nil {
		return AppConfig{}, fmt.Errorf("%w: missing field `shortcut`", ErrInvalidConfig)
	}

	cfg := AppConfig{
		Shortcut: *fc.Shortcut,
		OffsetX:  DefaultOffsetX,
		OffsetY:  DefaultOffsetY,
	}
	if fc.OffsetX != nil {
		cfg.OffsetX = *fc.OffsetX
	}
	if fc.OffsetY != nil {
		cfg.OffsetY = *fc.OffsetY
	}
	return cfg, nil
}

// Marshal renders cfg the way Save writes it.
func Marshal(cfg AppConfig) ([]byte, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Save writes cfg to path atomically, creating the parent directory.
func Save(path string, cfg AppConfig) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// AppDataDir is the per-user data directory.
func AppDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, Identifier), nil
}

// IconDir is where user-supplied SVG icons live.
func IconDir() (string, error) {
	dir, err := AppDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "icons"), nil
}
