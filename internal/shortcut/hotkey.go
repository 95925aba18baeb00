package shortcut

import (
	"fmt"

	"golang.design/x/hotkey"
)

var keyCodes = map[string]hotkey.Key{
	"Space":  hotkey.KeySpace,
	"Enter":  hotkey.KeyReturn,
	"Escape": hotkey.KeyEscape,
	"Tab":    hotkey.KeyTab,
	"Delete": hotkey.KeyDelete,
	"Up":     hotkey.KeyUp,
	"Down":   hotkey.KeyDown,
	"Left":   hotkey.KeyLeft,
	"Right":  hotkey.KeyRight,
	"A":      hotkey.KeyA, "B": hotkey.KeyB, "C": hotkey.KeyC, "D": hotkey.KeyD,
	"E": hotkey.KeyE, "F": hotkey.KeyF, "G": hotkey.KeyG, "H": hotkey.KeyH,
	"I": hotkey.KeyI, "J": hotkey.KeyJ, "K": hotkey.KeyK, "L": hotkey.KeyL,
	"M": hotkey.KeyM, "N": hotkey.KeyN, "O": hotkey.KeyO, "P": hotkey.KeyP,
	"Q": hotkey.KeyQ, "R": hotkey.KeyR, "S": hotkey.KeyS, "T": hotkey.KeyT,
	"U": hotkey.KeyU, "V": hotkey.KeyV, "W": hotkey.KeyW, "X": hotkey.KeyX,
	"Y": hotkey.KeyY, "Z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"F1": hotkey.KeyF1, "F2": hotkey.KeyF2, "F3": hotkey.KeyF3, "F4": hotkey.KeyF4,
	"F5": hotkey.KeyF5, "F6": hotkey.KeyF6, "F7": hotkey.KeyF7, "F8": hotkey.KeyF8,
	"F9": hotkey.KeyF9, "F10": hotkey.KeyF10, "F11": hotkey.KeyF11, "F12": hotkey.KeyF12,
}

// nativeModifiers expands the modifier set using the per-OS modifierMap.
func nativeModifiers(acc Accelerator) []hotkey.Modifier {
	var mods []hotkey.Modifier
	for _, m := range modifierOrder {
		if acc.Has(m) {
			mods = append(mods, modifierMap[m])
		}
	}
	return mods
}

// keyCode resolves a canonical key name, applying per-OS corrections.
func keyCode(key string) (hotkey.Key, bool) {
	if code, ok := keyOverrides[key]; ok {
		return code, true
	}
	code, ok := keyCodes[key]
	return code, ok
}

func newHotkeyBinding(acc Accelerator) (Binding, error) {
	code, ok := keyCode(acc.Key)
	if !ok {
		return nil, fmt.Errorf("%w: no key code for %q", ErrInvalidAccelerator, acc.Key)
	}
	return hotkey.New(nativeModifiers(acc), code), nil
}
