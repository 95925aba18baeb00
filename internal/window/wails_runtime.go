package window

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// WailsRuntime adapts the Wails runtime package to Runtime. The context is
// the one handed to OnStartup.
type WailsRuntime struct {
	ctx context.Context
}

func NewWailsRuntime(ctx context.Context) *WailsRuntime {
	return &WailsRuntime{ctx: ctx}
}

func (w *WailsRuntime) Show() {
	runtime.WindowUnminimise(w.ctx)
	runtime.WindowShow(w.ctx)
}

func (w *WailsRuntime) Hide() {
	runtime.WindowHide(w.ctx)
}

func (w *WailsRuntime) SetPosition(x, y int) {
	runtime.WindowSetPosition(w.ctx, x, y)
}

func (w *WailsRuntime) SetSize(width, height int) {
	runtime.WindowSetSize(w.ctx, width, height)
}
