package app

import (
	"context"
	"errors"

	"quickcmd/internal/config"
	"quickcmd/internal/shortcut"
	"quickcmd/internal/types"
)

// Methods in this file are bound to the frontend.

var (
	errNotStarted           = errors.New("application not started")
	errAutostartUnavailable = errors.New("autostart is not available")
)

func (a *App) requestContext() context.Context {
	if a.ctx != nil {
		return a.ctx
	}
	return context.Background()
}

// GetUserIconDir returns the directory users drop their .svg icons into.
func (a *App) GetUserIconDir() string {
	return a.icons.UserIconDir()
}

func (a *App) ListUserIcons() []string {
	return a.icons.ListUserIcons()
}

func (a *App) ResolveIcon(icon string) types.ResolvedIcon {
	return a.icons.ResolveIcon(icon)
}

// GetCommands returns commands whose name, description or icon contains
// search, ordered by name.
func (a *App) GetCommands(search string) ([]types.Command, error) {
	return a.commands.Search(a.requestContext(), search)
}

func (a *App) AddCommand(name, description, command, icon string) (int64, error) {
	return a.commands.Add(a.requestContext(), name, description, command, icon)
}

func (a *App) UpdateCommand(cmd types.Command) error {
	return a.commands.Update(a.requestContext(), cmd)
}

func (a *App) DeleteCommand(id int64) error {
	return a.commands.Delete(a.requestContext(), id)
}

func (a *App) RunCommand(id int64) error {
	return a.commands.Run(a.requestContext(), id)
}

// CopyCommand puts the command text of id on the clipboard.
func (a *App) CopyCommand(id int64) error {
	text, err := a.commands.CommandText(a.requestContext(), id)
	if err != nil {
		return err
	}
	return a.WriteClipboard(text)
}

func (a *App) ReadClipboard() (string, error) {
	clip := a.currentClipboard()
	if clip == nil {
		return "", errNotStarted
	}
	return clip.GetText()
}

func (a *App) WriteClipboard(text string) error {
	clip := a.currentClipboard()
	if clip == nil {
		return errNotStarted
	}
	return clip.SetText(text)
}

func (a *App) currentClipboard() clipboard {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.clip
}

func (a *App) IsAutostartEnabled() (bool, error) {
	if a.autostart == nil {
		return false, errAutostartUnavailable
	}
	return a.autostart.IsEnabled()
}

func (a *App) SetAutostart(enabled bool) error {
	if a.autostart == nil {
		return errAutostartUnavailable
	}
	return a.autostart.Set(enabled)
}

func (a *App) GetConfig() config.AppConfig {
	return a.config.Get()
}

// UpdateShortcut validates accel, saves it to the config file and rebinds
// the global shortcut.
func (a *App) UpdateShortcut(accel string) error {
	acc, err := shortcut.Parse(accel)
	if err != nil {
		return err
	}
	cfg := a.config.Get()
	cfg.Shortcut = acc.String()
	return a.config.Update(cfg)
}

func (a *App) HideWindow() {
	if w := a.windowController(); w != nil {
		w.Hide()
	}
}
