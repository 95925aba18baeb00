//go:build windows

package shortcut

import "golang.design/x/hotkey"

var modifierMap = map[Modifier]hotkey.Modifier{
	ModCmdOrCtrl: hotkey.ModCtrl,
	ModSuper:     hotkey.ModWin,
	ModCtrl:      hotkey.ModCtrl,
	ModAlt:       hotkey.ModAlt,
	ModShift:     hotkey.ModShift,
}

var keyOverrides = map[string]hotkey.Key{}
