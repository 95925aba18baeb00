package shortcut

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAccelerator is wrapped by every Parse failure.
var ErrInvalidAccelerator = errors.New("invalid shortcut")

// Modifier is a platform-neutral modifier key.
type Modifier uint8

const (
	// ModCmdOrCtrl is Command on macOS and Control elsewhere.
	ModCmdOrCtrl Modifier = 1 << iota
	ModSuper
	ModCtrl
	ModAlt
	ModShift
)

var modifierOrder = []Modifier{ModCmdOrCtrl, ModSuper, ModCtrl, ModAlt, ModShift}

var modifierNames = map[Modifier]string{
	ModCmdOrCtrl: "CmdOrCtrl",
	ModSuper:     "Super",
	ModCtrl:      "Ctrl",
	ModAlt:       "Alt",
	ModShift:     "Shift",
}

var modifierTokens = map[string]Modifier{
	"shift":            ModShift,
	"ctrl":             ModCtrl,
	"control":          ModCtrl,
	"alt":              ModAlt,
	"option":           ModAlt,
	"super":            ModSuper,
	"cmd":              ModSuper,
	"command":          ModSuper,
	"meta":             ModSuper,
	"win":              ModSuper,
	"cmdorctrl":        ModCmdOrCtrl,
	"cmdorcontrol":     ModCmdOrCtrl,
	"commandorcontrol": ModCmdOrCtrl,
	"commandorctrl":    ModCmdOrCtrl,
}

// keyTokens maps lower-case tokens to canonical key names.
var keyTokens = func() map[string]string {
	m := map[string]string{
		"space":  "Space",
		"enter":  "Enter",
		"return": "Enter",
		"escape": "Escape",
		"esc":    "Escape",
		"tab":    "Tab",
		"delete": "Delete",
		"up":     "Up",
		"down":   "Down",
		"left":   "Left",
		"right":  "Right",
	}
	for c := 'A'; c <= 'Z'; c++ {
		m[strings.ToLower(string(c))] = string(c)
	}
	for c := '0'; c <= '9'; c++ {
		m[string(c)] = string(c)
	}
	for i := 1; i <= 12; i++ {
		name := fmt.Sprintf("F%d", i)
		m[strings.ToLower(name)] = name
	}
	return m
}()

// Accelerator is a parsed shortcut: a modifier set plus exactly one key.
type Accelerator struct {
	Modifiers Modifier
	Key       string
}

// Has reports whether m is part of the modifier set.
func (a Accelerator) Has(m Modifier) bool {
	return a.Modifiers&m != 0
}

// String renders the canonical form, e.g. "CmdOrCtrl+Alt+Space".
func (a Accelerator) String() string {
	parts := make([]string, 0, len(modifierOrder)+1)
	for _, m := range modifierOrder {
		if a.Has(m) {
			parts = append(parts, modifierNames[m])
		}
	}
	return strings.Join(append(parts, a.Key), "+")
}

// Parse reads strings such as "CmdOrControl+Alt+Space" or "ctrl + shift + k".
// Tokens are case-insensitive; the key must be the last token.
func Parse(s string) (Accelerator, error) {
	if strings.TrimSpace(s) == "" {
		return Accelerator{}, fmt.Errorf("%w: empty", ErrInvalidAccelerator)
	}

	var acc Accelerator
	tokens := strings.Split(s, "+")
	for i, raw := range tokens {
		tok := strings.ToLower(strings.TrimSpace(raw))
		if tok == "" {
			return Accelerator{}, fmt.Errorf("%w: empty token in %q", ErrInvalidAccelerator, s)
		}

		if m, ok := modifierTokens[tok]; ok {
			if acc.Key != "" {
				return Accelerator{}, fmt.Errorf("%w: modifier %q after key in %q", ErrInvalidAccelerator, raw, s)
			}
			acc.Modifiers |= m
			continue
		}

		key, ok := keyTokens[tok]
		if !ok {
			return Accelerator{}, fmt.Errorf("%w: unknown key %q", ErrInvalidAccelerator, strings.TrimSpace(raw))
		}
		if acc.Key != "" {
			return Accelerator{}, fmt.Errorf("%w: more than one key in %q", ErrInvalidAccelerator, s)
		}
		if i != len(tokens)-1 {
			return Accelerator{}, fmt.Errorf("%w: key %q must come last in %q", ErrInvalidAccelerator, key, s)
		}
		acc.Key = key
	}

	if acc.Key == "" {
		return Accelerator{}, fmt.Errorf("%w: no key in %q", ErrInvalidAccelerator, s)
	}
	return acc, nil
}
