//go:build linux

package shortcut

import "golang.design/x/hotkey"

// X11 reports Alt as Mod1 and Super as Mod4.
var modifierMap = map[Modifier]hotkey.Modifier{
	ModCmdOrCtrl: hotkey.ModCtrl,
	ModSuper:     hotkey.Mod4,
	ModCtrl:      hotkey.ModCtrl,
	ModAlt:       hotkey.Mod1,
	ModShift:     hotkey.ModShift,
}

// keyOverrides corrects hotkey v0.4.1, which gives KeyTab the keysym of
// Escape on Linux.
var keyOverrides = map[string]hotkey.Key{
	"Tab": hotkey.Key(0xff09), // XK_Tab
}
