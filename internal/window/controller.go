package window

import (
	"errors"
	"sync"

	"quickcmd/internal/infrastructure/logging"
	"quickcmd/internal/platform"
)

// Runtime is the subset of the webview runtime the controller drives.
type Runtime interface {
	Show()
	Hide()
	// SetPosition is relative to the origin of the monitor that currently
	// holds the window.
	SetPosition(x, y int)
	SetSize(width, height int)
}

// Controller tracks visibility of the launcher window and places it on the
// monitor under the cursor each time it is shown.
type Controller struct {
	mu      sync.Mutex
	rt      Runtime
	display platform.DisplayAPI
	title   string
	offsetX int
	offsetY int
	visible bool
	logger  logging.Logger

	// host is the monitor the window was last placed on; the runtime
	// positions relative to it.
	host   platform.Rect
	placed bool
}

// NewController starts with the window hidden.
func NewController(rt Runtime, display platform.DisplayAPI, title string, offsetX, offsetY int, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Controller{
		rt:      rt,
		display: display,
		title:   title,
		offsetX: offsetX,
		offsetY: offsetY,
		logger:  logging.WithComponent(logger, "window"),
	}
}

// SetOffset changes the offset applied on the next show.
func (c *Controller) SetOffset(x, y int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offsetX, c.offsetY = x, y
}

func (c *Controller) IsVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Toggle hides a visible window and shows a hidden one.
func (c *Controller) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.visible {
		c.hide()
		return
	}
	c.showOnActiveMonitor()
}

func (c *Controller) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hide()
}

func (c *Controller) ShowOnActiveMonitor() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showOnActiveMonitor()
}

func (c *Controller) hide() {
	c.rt.Hide()
	c.visible = false
	c.logger.Debug("Window hidden")
}

func (c *Controller) showOnActiveMonitor() {
	monitors, err := c.display.Monitors()
	if err != nil || len(monitors) == 0 {
		c.logger.Warn("No monitors available, showing in place", "error", err)
	} else {
		c.place(monitors, c.activeMonitor(monitors))
	}
	c.rt.Show()
	c.visible = true
}

// activeMonitor prefers the monitor under the cursor and falls back to the
// primary one.
func (c *Controller) activeMonitor(monitors []platform.Monitor) platform.Monitor {
	cursor, err := c.display.CursorPosition()
	if err == nil {
		if m, ok := MonitorAt(monitors, cursor); ok {
			return m
		}
	} else if !errors.Is(err, platform.ErrUnsupported) {
		c.logger.Warn("Cursor position unavailable", "error", err)
	}

	m, _ := platform.PrimaryMonitor(monitors)
	return m
}

// hostMonitor returns the monitor currently holding the window. Before the
// first placement, or once that monitor is gone, the window sits on the
// primary monitor.
func (c *Controller) hostMonitor(monitors []platform.Monitor) platform.Rect {
	if c.placed {
		for _, m := range monitors {
			if m.Bounds == c.host {
				return c.host
			}
		}
	}
	m, _ := platform.PrimaryMonitor(monitors)
	return m.Bounds
}

func (c *Controller) place(monitors []platform.Monitor, monitor platform.Monitor) {
	target := Placement(monitor.Bounds, c.offsetX, c.offsetY)
	c.logger.Debug("Placing window",
		"monitor", monitor.Index,
		"x", target.X, "y", target.Y,
		"width", target.Width, "height", target.Height)

	err := c.display.MoveWindow(c.title, target)
	if err != nil {
		if !errors.Is(err, platform.ErrUnsupported) {
			c.logger.Warn("Native window move failed, using runtime", "error", err)
		}
		c.placeWithRuntime(c.hostMonitor(monitors), monitor.Bounds, target)
	}

	c.host = monitor.Bounds
	c.placed = true
}

// placeWithRuntime moves the window through the webview runtime, whose
// coordinates are relative to the monitor holding the window. The window
// first jumps to the target monitor's origin so that the size change and
// the offset apply on that monitor.
func (c *Controller) placeWithRuntime(from, to, target platform.Rect) {
	c.rt.SetPosition(to.X-from.X, to.Y-from.Y)
	c.rt.SetSize(target.Width, target.Height)
	c.rt.SetPosition(target.X-to.X, target.Y-to.Y)
}
