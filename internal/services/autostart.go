package services

import (
	"fmt"
	"os"

	"quickcmd/internal/infrastructure/logging"
)

// Autostart registers the launcher to start at user login.
type Autostart struct {
	name   string
	exe    string
	logger logging.Logger
}

// NewAutostart uses the running executable as the login item target.
func NewAutostart(name string, logger logging.Logger) (*Autostart, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}
	return NewAutostartFor(name, exe, logger), nil
}

func NewAutostartFor(name, exe string, logger logging.Logger) *Autostart {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Autostart{name: name, exe: exe, logger: logging.WithComponent(logger, "autostart")}
}

// Set enables or disables autostart.
func (a *Autostart) Set(enabled bool) error {
	var err error
	if enabled {
		err = a.Enable()
	} else {
		err = a.Disable()
	}
	if err != nil {
		return err
	}
	a.logger.Info("Autostart changed", "enabled", enabled)
	return nil
}
