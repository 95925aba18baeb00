//go:build !darwin

package tray

import "github.com/energye/systray"

func runLoop(onReady, onExit func()) {
	go systray.Run(onReady, onExit)
}
