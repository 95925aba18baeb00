//go:build linux

package platform

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// LinuxAPI implements DisplayAPI for X11 sessions. Wayland sessions without
// XWayland report ErrUnsupported and leave placement to the runtime.
type LinuxAPI struct{}

// NewDisplayAPI creates a new DisplayAPI instance for Linux
func NewDisplayAPI() DisplayAPI {
	return &LinuxAPI{}
}

func connectX() (*xgb.Conn, xproto.Window, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return conn, xproto.Setup(conn).DefaultScreen(conn).Root, nil
}

// CursorPosition asks the X server for the pointer relative to the root
// window.
func (l *LinuxAPI) CursorPosition() (Point, error) {
	conn, root, err := connectX()
	if err != nil {
		return Point{}, err
	}
	defer conn.Close()

	reply, err := xproto.QueryPointer(conn, root).Reply()
	if err != nil {
		return Point{}, fmt.Errorf("query pointer: %w", err)
	}
	return Point{X: int(reply.RootX), Y: int(reply.RootY)}, nil
}

func (l *LinuxAPI) Monitors() ([]Monitor, error) {
	return listMonitors()
}

// MoveWindow configures the top-level window titled title in root
// coordinates. A window the X server does not know about (a native Wayland
// surface) is ErrUnsupported.
func (l *LinuxAPI) MoveWindow(title string, r Rect) error {
	conn, root, err := connectX()
	if err != nil {
		return err
	}
	defer conn.Close()

	win, err := findWindow(conn, root, title)
	if err != nil {
		return err
	}

	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
	if err := xproto.ConfigureWindowChecked(conn, win, mask, configureValues(r)).Check(); err != nil {
		return fmt.Errorf("configure window: %w", err)
	}
	return nil
}

// configureValues encodes r for ConfigureWindow; X and Y are signed on the
// wire.
func configureValues(r Rect) []uint32 {
	return []uint32{
		uint32(int32(r.X)),
		uint32(int32(r.Y)),
		uint32(max(r.Width, 1)),
		uint32(max(r.Height, 1)),
	}
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, true, uint16(len(name)), name).Reply()
	if err != nil {
		return xproto.AtomNone, fmt.Errorf("intern %s: %w", name, err)
	}
	return reply.Atom, nil
}

// findWindow searches the window manager's client list for title.
func findWindow(conn *xgb.Conn, root xproto.Window, title string) (xproto.Window, error) {
	clientList, err := internAtom(conn, "_NET_CLIENT_LIST")
	if err != nil {
		return 0, err
	}
	if clientList == xproto.AtomNone {
		return 0, fmt.Errorf("%w: window manager publishes no client list", ErrUnsupported)
	}
	wmName, err := internAtom(conn, "_NET_WM_NAME")
	if err != nil {
		return 0, err
	}

	list, err := xproto.GetProperty(conn, false, root, clientList, xproto.AtomWindow, 0, 1<<16).Reply()
	if err != nil {
		return 0, fmt.Errorf("read client list: %w", err)
	}

	for _, win := range windowIDs(list.Value) {
		if windowTitle(conn, win, wmName) == title {
			return win, nil
		}
	}
	return 0, fmt.Errorf("%w: no X11 window titled %q", ErrUnsupported, title)
}

// windowTitle prefers the UTF-8 _NET_WM_NAME and falls back to WM_NAME.
func windowTitle(conn *xgb.Conn, win xproto.Window, wmName xproto.Atom) string {
	for _, atom := range []xproto.Atom{wmName, xproto.AtomWmName} {
		if atom == xproto.AtomNone {
			continue
		}
		reply, err := xproto.GetProperty(conn, false, win, atom, xproto.GetPropertyTypeAny, 0, 1024).Reply()
		if err == nil && len(reply.Value) > 0 {
			return string(reply.Value)
		}
	}
	return ""
}

// windowIDs decodes a 32-bit WINDOW list property.
func windowIDs(value []byte) []xproto.Window {
	ids := make([]xproto.Window, 0, len(value)/4)
	for i := 0; i+4 <= len(value); i += 4 {
		ids = append(ids, xproto.Window(xgb.Get32(value[i:])))
	}
	return ids
}
