//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	procGetCursorPos = user32.NewProc("GetCursorPos")
	procFindWindowW  = user32.NewProc("FindWindowW")
	procSetWindowPos = user32.NewProc("SetWindowPos")
)

const (
	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010
)

type point struct {
	X, Y int32
}

// WindowsAPI implements DisplayAPI with user32.
type WindowsAPI struct{}

// NewDisplayAPI creates a new DisplayAPI instance for Windows
func NewDisplayAPI() DisplayAPI {
	return &WindowsAPI{}
}

func (w *WindowsAPI) CursorPosition() (Point, error) {
	var pt point
	ret, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		return Point{}, fmt.Errorf("GetCursorPos: %w", err)
	}
	return Point{X: int(pt.X), Y: int(pt.Y)}, nil
}

func (w *WindowsAPI) Monitors() ([]Monitor, error) {
	return listMonitors()
}

// MoveWindow uses SetWindowPos because the Wails runtime positions windows
// relative to their current monitor on Windows.
func (w *WindowsAPI) MoveWindow(title string, r Rect) error {
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return err
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(titlePtr)))
	if hwnd == 0 {
		return fmt.Errorf("window %q not found", title)
	}

	ret, _, err := procSetWindowPos.Call(
		hwnd,
		0,
		uintptr(int32(r.X)),
		uintptr(int32(r.Y)),
		uintptr(int32(r.Width)),
		uintptr(int32(r.Height)),
		swpNoZOrder|swpNoActivate,
	)
	if ret == 0 {
		return fmt.Errorf("SetWindowPos: %w", err)
	}
	return nil
}
