package tray

import (
	"sync"

	"quickcmd/internal/infrastructure/logging"
)

// Menu item identifiers.
const (
	ItemShow = "show"
	ItemQuit = "quit"
)

// Backend is the system tray implementation.
type Backend interface {
	// Run starts the tray loop; onReady fires once the icon exists.
	Run(onReady, onExit func())
	SetIcon(icon []byte)
	SetTooltip(tooltip string)
	// SetOnClick registers the primary button handler on the icon.
	SetOnClick(fn func())
	AddMenuItem(title, tooltip string, onClick func())
	Quit()
}

// Options configures the tray icon.
type Options struct {
	Icon    []byte
	Tooltip string
	// OnShow runs for a left click on the icon and for the Show item.
	OnShow func()
	// OnQuit runs for the Quit item.
	OnQuit func()
}

// Tray owns the application's tray icon.
type Tray struct {
	opts    Options
	backend Backend
	logger  logging.Logger

	mu      sync.Mutex
	started bool

	// readyMu is separate from mu: backends may call onReady from inside Run.
	readyMu sync.Mutex
	ready   chan struct{}
}

// New returns a tray backed by the native system tray.
func New(opts Options, logger logging.Logger) *Tray {
	return NewWithBackend(opts, newSystrayBackend(), logger)
}

func NewWithBackend(opts Options, backend Backend, logger logging.Logger) *Tray {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	if opts.OnShow == nil {
		opts.OnShow = func() {}
	}
	if opts.OnQuit == nil {
		opts.OnQuit = func() {}
	}
	return &Tray{
		opts:    opts,
		backend: backend,
		logger:  logging.WithComponent(logger, "tray"),
		ready:   make(chan struct{}),
	}
}

// Start launches the tray. Calls while it is running do nothing; a Start
// after Stop installs the icon again.
func (t *Tray) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return
	}
	t.started = true

	t.readyMu.Lock()
	select {
	case <-t.ready:
		// previous run already reported ready
		t.ready = make(chan struct{})
	default:
	}
	t.readyMu.Unlock()

	t.backend.Run(t.onReady, t.onExit)
}

// Ready is closed once the icon and its menu are installed.
func (t *Tray) Ready() <-chan struct{} {
	t.readyMu.Lock()
	defer t.readyMu.Unlock()
	return t.ready
}

// Stop removes the tray icon.
func (t *Tray) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started {
		return
	}
	t.started = false
	t.backend.Quit()
}

func (t *Tray) onReady() {
	if len(t.opts.Icon) > 0 {
		t.backend.SetIcon(t.opts.Icon)
	}
	t.backend.SetTooltip(t.opts.Tooltip)
	t.backend.SetOnClick(t.handle(ItemShow))
	t.backend.AddMenuItem("Show", "Show the launcher", t.handle(ItemShow))
	t.backend.AddMenuItem("Quit", "Quit the application", t.handle(ItemQuit))
	t.logger.Info("Tray ready")

	t.readyMu.Lock()
	defer t.readyMu.Unlock()
	select {
	case <-t.ready:
	default:
		close(t.ready)
	}
}

func (t *Tray) onExit() {
	t.logger.Debug("Tray exited")
}

func (t *Tray) handle(id string) func() {
	return func() {
		t.logger.Debug("Tray event", "item", id)
		switch id {
		case ItemShow:
			t.opts.OnShow()
		case ItemQuit:
			t.opts.OnQuit()
		}
	}
}
