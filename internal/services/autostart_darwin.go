//go:build darwin

package services

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
)

func (a *Autostart) entryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, "Library", "LaunchAgents", a.name+".plist"), nil
}

func (a *Autostart) entry() []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
  <key>Label</key>
  <string>` + html.EscapeString(a.name) + `</string>
  <key>ProgramArguments</key>
  <array>
    <string>` + html.EscapeString(a.exe) + `</string>
  </array>
  <key>RunAtLoad</key>
  <true/>
</dict>
</plist>
`)
}
