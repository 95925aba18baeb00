package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"quickcmd/internal/infrastructure/logging"
)

const defaultDebounce = 300 * time.Millisecond

// Holder keeps the live configuration and reloads it when the file changes.
type Holder struct {
	mu       sync.RWMutex
	current  AppConfig
	path     string
	debounce time.Duration
	logger   logging.Logger

	listenersMu sync.RWMutex
	listeners   []func(old, updated AppConfig)
}

// NewHolder wraps an already loaded configuration.
func NewHolder(path string, initial AppConfig, logger logging.Logger) *Holder {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Holder{
		current:  initial,
		path:     path,
		debounce: defaultDebounce,
		logger:   logger,
	}
}

// Path returns the watched file.
func (h *Holder) Path() string { return h.path }

// Get returns a copy of the current configuration.
func (h *Holder) Get() AppConfig {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// OnChange registers fn to run after every applied change.
func (h *Holder) OnChange(fn func(old, updated AppConfig)) {
	h.listenersMu.Lock()
	h.listeners = append(h.listeners, fn)
	h.listenersMu.Unlock()
}

// Reload re-reads the file. A missing file leaves the configuration alone;
// an invalid one is reported and the previous configuration is kept.
func (h *Holder) Reload() error {
	cfg, fromFile, err := Load(h.path)
	if err != nil {
		h.logger.Error("Config reload rejected, keeping previous configuration", "path", h.path, "error", err)
		return err
	}
	if !fromFile {
		h.logger.Debug("Config file not readable, keeping previous configuration", "path", h.path)
		return nil
	}
	h.apply(cfg)
	return nil
}

// Update persists cfg and applies it.
func (h *Holder) Update(cfg AppConfig) error {
	if err := Save(h.path, cfg); err != nil {
		return err
	}
	h.apply(cfg)
	return nil
}

func (h *Holder) apply(cfg AppConfig) {
	h.mu.Lock()
	old := h.current
	h.current = cfg
	h.mu.Unlock()

	if old == cfg {
		return
	}

	h.logger.Info("Configuration changed",
		"shortcut", cfg.Shortcut, "offset_x", cfg.OffsetX, "offset_y", cfg.OffsetY)

	h.listenersMu.RLock()
	listeners := append([]func(old, updated AppConfig){}, h.listeners...)
	h.listenersMu.RUnlock()
	for _, fn := range listeners {
		fn(old, cfg)
	}
}

// Watch reloads the configuration on file changes until ctx is done.
// The parent directory is watched so editors that replace the file are seen.
func (h *Holder) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(h.path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch config directory: %w", err)
	}
	h.logger.Info("Watching config file", "path", abs)

	timer := time.NewTimer(h.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("Config watcher stopped")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(h.debounce)
		case <-timer.C:
			if err := h.Reload(); err != nil && !errors.Is(err, ErrInvalidConfig) {
				h.logger.Warn("Config reload failed", "error", err)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.logger.Warn("Config watcher error", "error", werr)
		}
	}
}
