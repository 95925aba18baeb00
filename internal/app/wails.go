package app

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

type wailsClipboard struct {
	ctx context.Context
}

func newWailsClipboard(ctx context.Context) *wailsClipboard {
	return &wailsClipboard{ctx: ctx}
}

func (c *wailsClipboard) GetText() (string, error) {
	return runtime.ClipboardGetText(c.ctx)
}

func (c *wailsClipboard) SetText(text string) error {
	return runtime.ClipboardSetText(c.ctx, text)
}

func quitWails(ctx context.Context) {
	runtime.Quit(ctx)
}
