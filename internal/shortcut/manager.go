package shortcut

import (
	"errors"
	"fmt"
	"sync"

	"golang.design/x/hotkey"

	"quickcmd/internal/infrastructure/logging"
)

// ErrNotRegistered is returned when unregistering an unknown accelerator.
var ErrNotRegistered = errors.New("shortcut not registered")

// State is the key transition reported to a Handler.
type State int

const (
	Pressed State = iota
	Released
)

func (s State) String() string {
	if s == Pressed {
		return "Pressed"
	}
	return "Released"
}

// Handler receives key transitions. It runs on the manager's event goroutine.
type Handler func(acc Accelerator, state State)

// Binding is one OS-level hotkey registration.
type Binding interface {
	Register() error
	Unregister() error
	Keydown() <-chan hotkey.Event
	Keyup() <-chan hotkey.Event
}

// Backend creates the OS binding for an accelerator.
type Backend func(acc Accelerator) (Binding, error)

type registration struct {
	binding Binding
	stop    chan struct{}
	done    chan struct{}
}

// Manager owns the global shortcuts of the application.
type Manager struct {
	mu      sync.Mutex
	backend Backend
	regs    map[string]*registration
	logger  logging.Logger
}

// NewManager returns a manager backed by the system hotkey facility.
func NewManager(logger logging.Logger) *Manager {
	return NewManagerWithBackend(newHotkeyBinding, logger)
}

// NewManagerWithBackend is NewManager with a custom backend.
func NewManagerWithBackend(backend Backend, logger logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Manager{
		backend: backend,
		regs:    make(map[string]*registration),
		logger:  logger,
	}
}

// Register parses accel and binds handler to it. An existing registration
// of the same accelerator is replaced.
func (m *Manager) Register(accel string, handler Handler) error {
	acc, err := Parse(accel)
	if err != nil {
		return err
	}
	return m.RegisterAccelerator(acc, handler)
}

// RegisterAccelerator binds handler to an already parsed accelerator.
func (m *Manager) RegisterAccelerator(acc Accelerator, handler Handler) error {
	if handler == nil {
		return fmt.Errorf("register %s: nil handler", acc)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := acc.String()
	if old, ok := m.regs[key]; ok {
		m.release(key, old)
	}

	binding, err := m.backend(acc)
	if err != nil {
		return fmt.Errorf("register %s: %w", key, err)
	}
	if err := binding.Register(); err != nil {
		return fmt.Errorf("register %s: %w", key, err)
	}

	reg := &registration{
		binding: binding,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	m.regs[key] = reg
	go m.dispatch(acc, reg, handler)

	m.logger.Info("Shortcut registered", "shortcut", key)
	return nil
}

func (m *Manager) dispatch(acc Accelerator, reg *registration, handler Handler) {
	defer close(reg.done)

	down, up := reg.binding.Keydown(), reg.binding.Keyup()
	for {
		select {
		case <-reg.stop:
			return
		case _, ok := <-down:
			if !ok {
				return
			}
			handler(acc, Pressed)
		case _, ok := <-up:
			if !ok {
				return
			}
			handler(acc, Released)
		}
	}
}

// Unregister removes the binding for accel.
func (m *Manager) Unregister(accel string) error {
	acc, err := Parse(accel)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := acc.String()
	reg, ok := m.regs[key]
	if !ok {
		return fmt.Errorf("unregister %s: %w", key, ErrNotRegistered)
	}
	return m.release(key, reg)
}

// release must be called with m.mu held.
func (m *Manager) release(key string, reg *registration) error {
	delete(m.regs, key)
	close(reg.stop)
	<-reg.done

	if err := reg.binding.Unregister(); err != nil {
		m.logger.Warn("Failed to unregister shortcut", "shortcut", key, "error", err)
		return fmt.Errorf("unregister %s: %w", key, err)
	}
	m.logger.Info("Shortcut unregistered", "shortcut", key)
	return nil
}

// IsRegistered reports whether accel currently has a binding.
func (m *Manager) IsRegistered(accel string) bool {
	acc, err := Parse(accel)
	if err != nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.regs[acc.String()]
	return ok
}

// Close releases every registration.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for key, reg := range m.regs {
		if err := m.release(key, reg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
