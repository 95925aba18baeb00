package platform

import (
	"fmt"

	"github.com/kbinani/screenshot"
)

// listMonitors enumerates displays through screenshot. The primary display
// is the one anchored at the desktop origin.
func listMonitors() ([]Monitor, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return nil, fmt.Errorf("no active displays")
	}

	monitors := make([]Monitor, 0, n)
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		monitors = append(monitors, Monitor{
			Index: i,
			Bounds: Rect{
				X:      b.Min.X,
				Y:      b.Min.Y,
				Width:  b.Dx(),
				Height: b.Dy(),
			},
		})
	}
	markPrimary(monitors)
	return monitors, nil
}

func markPrimary(monitors []Monitor) {
	for i := range monitors {
		if monitors[i].Bounds.X == 0 && monitors[i].Bounds.Y == 0 {
			monitors[i].Primary = true
			return
		}
	}
	if len(monitors) > 0 {
		monitors[0].Primary = true
	}
}
