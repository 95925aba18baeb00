package tray

import "github.com/energye/systray"

type systrayBackend struct{}

func newSystrayBackend() Backend {
	return systrayBackend{}
}

func (systrayBackend) Run(onReady, onExit func()) {
	runLoop(onReady, onExit)
}

func (systrayBackend) SetIcon(icon []byte) {
	systray.SetIcon(icon)
}

func (systrayBackend) SetTooltip(tooltip string) {
	systray.SetTooltip(tooltip)
}

func (systrayBackend) SetOnClick(fn func()) {
	systray.SetOnClick(func(menu systray.IMenu) { fn() })
}

func (systrayBackend) AddMenuItem(title, tooltip string, onClick func()) {
	item := systray.AddMenuItem(title, tooltip)
	item.Click(onClick)
}

func (systrayBackend) Quit() {
	systray.Quit()
}
