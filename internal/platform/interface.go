package platform

import (
	"errors"
	"math"
)

// ErrUnsupported is returned by DisplayAPI methods the current OS cannot serve.
var ErrUnsupported = errors.New("not supported on this platform")

// Point is a position in virtual desktop coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is an area in virtual desktop coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether p lies inside r. Both edges are inclusive so a
// cursor parked on the far border still belongs to the monitor.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Monitor describes one attached display.
type Monitor struct {
	Index   int  `json:"index"`
	Bounds  Rect `json:"bounds"`
	Primary bool `json:"primary"`
}

// DisplayAPI defines the platform-specific display operations
type DisplayAPI interface {
	// CursorPosition returns the global mouse position.
	CursorPosition() (Point, error)
	// Monitors lists the active displays, primary flagged.
	Monitors() ([]Monitor, error)
	// MoveWindow places the top-level window titled title at r in absolute
	// coordinates.
	MoveWindow(title string, r Rect) error
}

// PrimaryMonitor returns the flagged primary monitor, or the first one.
func PrimaryMonitor(monitors []Monitor) (Monitor, bool) {
	if len(monitors) == 0 {
		return Monitor{}, false
	}
	for _, m := range monitors {
		if m.Primary {
			return m, true
		}
	}
	return monitors[0], true
}

// pointFromFloat truncates toward negative infinity so positions left of or
// above the primary monitor stay on their own monitor.
func pointFromFloat(x, y float64) Point {
	return Point{X: int(math.Floor(x)), Y: int(math.Floor(y))}
}
