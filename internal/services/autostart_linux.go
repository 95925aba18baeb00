//go:build !windows && !darwin

package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// entryPath follows the XDG autostart convention.
func (a *Autostart) entryPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(dir, "autostart", a.name+".desktop"), nil
}

func (a *Autostart) entry() []byte {
	return []byte("[Desktop Entry]\n" +
		"Type=Application\n" +
		"Name=" + a.name + "\n" +
		"Exec=" + desktopExecArg(a.exe) + "\n" +
		"X-GNOME-Autostart-enabled=true\n" +
		"NoDisplay=true\n")
}

// desktopExecArg quotes one Exec argument. Inside the quotes a backslash
// goes before double quote, backtick, dollar and backslash. The value is
// then string-escaped, which doubles every backslash, and percent signs are
// doubled so they are not read as field codes.
func desktopExecArg(arg string) string {
	var quoted strings.Builder
	quoted.WriteByte('"')
	for _, r := range arg {
		switch r {
		case '"', '`', '$', '\\':
			quoted.WriteByte('\\')
		}
		quoted.WriteRune(r)
	}
	quoted.WriteByte('"')

	value := strings.ReplaceAll(quoted.String(), `\`, `\\`)
	return strings.ReplaceAll(value, "%", "%%")
}
