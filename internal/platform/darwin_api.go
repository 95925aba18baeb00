//go:build darwin

package platform

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>

static int cursorLocation(double *x, double *y) {
	CGEventRef event = CGEventCreate(NULL);
	if (event == NULL) {
		return 0;
	}
	CGPoint p = CGEventGetLocation(event);
	CFRelease(event);
	*x = p.x;
	*y = p.y;
	return 1;
}
*/
import "C"

import "errors"

// DarwinAPI implements DisplayAPI for macOS. Window moves are left to the
// Wails runtime.
type DarwinAPI struct{}

// NewDisplayAPI creates a new DisplayAPI instance for macOS
func NewDisplayAPI() DisplayAPI {
	return &DarwinAPI{}
}

// CursorPosition reads the pointer in global display coordinates, the
// space CGDisplayBounds reports monitors in.
func (d *DarwinAPI) CursorPosition() (Point, error) {
	var x, y C.double
	if C.cursorLocation(&x, &y) == 0 {
		return Point{}, errors.New("CGEventCreate failed")
	}
	return pointFromFloat(float64(x), float64(y)), nil
}

func (d *DarwinAPI) Monitors() ([]Monitor, error) {
	return listMonitors()
}

func (d *DarwinAPI) MoveWindow(string, Rect) error {
	return ErrUnsupported
}
