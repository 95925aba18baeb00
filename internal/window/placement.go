package window

import "quickcmd/internal/platform"

// MonitorAt returns the first monitor whose bounds contain p.
func MonitorAt(monitors []platform.Monitor, p platform.Point) (platform.Monitor, bool) {
	for _, m := range monitors {
		if m.Bounds.Contains(p) {
			return m, true
		}
	}
	return platform.Monitor{}, false
}

// Placement covers the monitor, shifted by the configured offset.
func Placement(monitor platform.Rect, offsetX, offsetY int) platform.Rect {
	return platform.Rect{
		X:      monitor.X + offsetX,
		Y:      monitor.Y + offsetY,
		Width:  monitor.Width,
		Height: monitor.Height,
	}
}
