//go:build darwin

package tray

import "github.com/energye/systray"

// The webview already owns the Cocoa main loop, so the tray attaches to it.
func runLoop(onReady, onExit func()) {
	start, _ := systray.RunWithExternalLoop(onReady, onExit)
	start()
}
