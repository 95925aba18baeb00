package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"quickcmd/internal/config"
	"quickcmd/internal/database"
	repoerrors "quickcmd/internal/infrastructure/errors"
	"quickcmd/internal/infrastructure/logging"
	"quickcmd/internal/platform"
	"quickcmd/internal/repository"
	"quickcmd/internal/services"
	"quickcmd/internal/shortcut"
	"quickcmd/internal/tray"
	"quickcmd/internal/window"
)

const (
	// Name is the window title and the autostart entry name.
	Name = "QuickCmd"

	shutdownTimeout  = 30 * time.Second
	migrateTimeout   = 30 * time.Second
	healthTimeout    = 5 * time.Second
	reconnectTimeout = 10 * time.Second
)

type shortcutManager interface {
	Register(accel string, handler shortcut.Handler) error
	Unregister(accel string) error
	Close() error
}

type trayIcon interface {
	Start()
	Stop()
}

type autostarter interface {
	IsEnabled() (bool, error)
	Set(enabled bool) error
}

// clipboard is bound to the webview context in Startup.
type clipboard interface {
	GetText() (string, error)
	SetText(text string) error
}

// deps is everything App needs besides the webview context.
type deps struct {
	environment string
	logger      logging.Logger
	config      *config.Holder
	dbService   database.Service
	dbConfig    *database.Config
	commands    *services.CommandService
	icons       *services.IconService
	autostart   autostarter
	shortcuts   shortcutManager
	display     platform.DisplayAPI

	newRuntime   func(ctx context.Context) window.Runtime
	newClipboard func(ctx context.Context) clipboard
	quit         func(ctx context.Context)
}

// App struct represents the main application
type App struct {
	ctx         context.Context
	environment string
	logger      logging.Logger

	config    *config.Holder
	dbService database.Service
	dbConfig  *database.Config
	commands  *services.CommandService
	icons     *services.IconService
	autostart autostarter
	shortcuts shortcutManager
	tray      trayIcon
	display   platform.DisplayAPI

	newRuntime   func(ctx context.Context) window.Runtime
	newClipboard func(ctx context.Context) clipboard
	quit         func(ctx context.Context)

	mu     sync.Mutex
	window *window.Controller
	clip   clipboard

	// shortcutMu is separate from mu: the shortcut handler takes mu, and
	// unregistering waits for the handler to return.
	shortcutMu sync.Mutex
	registered string

	stopWatch context.CancelFunc
	watchDone chan struct{}
}

// NewApp loads the configuration, opens the command database and wires the
// services. An invalid config file or shortcut is returned as an error.
func NewApp(env string, trayIconData []byte) (*App, error) {
	logger := logging.NewDefaultLogger()
	repoerrors.SetRetryLogger(repoerrors.NewLoggerBridge(logging.WithComponent(logger, "retry")))

	path := config.Path()
	cfg, fromFile, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if !fromFile {
		logger.Warn("Config file not found, using defaults", "path", path)
	}
	if _, err := shortcut.Parse(cfg.Shortcut); err != nil {
		return nil, fmt.Errorf("config shortcut: %w", err)
	}

	dataDir, err := config.AppDataDir()
	if err != nil {
		return nil, err
	}

	dbConfig := database.ConfigForEnvironment(env, dataDir)
	if err := dbConfig.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	// database verbosity follows the environment profile unless the
	// global level is set explicitly
	dbLogger := logger
	if os.Getenv(logging.LevelEnv) == "" {
		dbLogger = logging.NewLogger(os.Stderr, dbConfig.LogLevel)
	}

	dbService := database.NewSQLiteService(dbLogger)
	if err := connectAndMigrate(context.Background(), dbService, dbConfig); err != nil {
		return nil, err
	}
	if version, err := dbService.GetMigrationVersion(context.Background()); err == nil {
		logger.Info("Database ready", "path", dbConfig.Path, "schema_version", version)
	}

	repo := repository.NewSQLiteRepository(dbService, logger)

	var auto autostarter
	if a, err := services.NewAutostart(Name, logger); err != nil {
		logger.Warn("Autostart unavailable", "error", err)
	} else {
		auto = a
	}

	a := newApp(deps{
		environment:  env,
		logger:       logger,
		config:       config.NewHolder(path, cfg, logging.WithComponent(logger, "config")),
		dbService:    dbService,
		dbConfig:     dbConfig,
		commands:     services.NewCommandService(repo, nil, logger),
		icons:        services.NewIconService(filepath.Join(dataDir, "icons"), logger),
		autostart:    auto,
		shortcuts:    shortcut.NewManager(logging.WithComponent(logger, "shortcut")),
		display:      platform.NewDisplayAPI(),
		newRuntime:   func(ctx context.Context) window.Runtime { return window.NewWailsRuntime(ctx) },
		newClipboard: func(ctx context.Context) clipboard { return newWailsClipboard(ctx) },
		quit:         quitWails,
	})
	a.tray = tray.New(a.trayOptions(trayIconData), logger)

	logger.Info("Application initialized", "environment", env)
	return a, nil
}

func newApp(d deps) *App {
	if d.logger == nil {
		d.logger = logging.NewDefaultLogger()
	}
	return &App{
		environment:  d.environment,
		logger:       d.logger,
		config:       d.config,
		dbService:    d.dbService,
		dbConfig:     d.dbConfig,
		commands:     d.commands,
		icons:        d.icons,
		autostart:    d.autostart,
		shortcuts:    d.shortcuts,
		display:      d.display,
		newRuntime:   d.newRuntime,
		newClipboard: d.newClipboard,
		quit:         d.quit,
	}
}

func (a *App) trayOptions(icon []byte) tray.Options {
	return tray.Options{
		Icon:    icon,
		Tooltip: Name,
		OnShow:  a.showWindow,
		OnQuit:  a.quitApp,
	}
}

// Startup is called at application startup
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	cfg := a.config.Get()

	a.mu.Lock()
	a.window = window.NewController(a.newRuntime(ctx), a.display, Name, cfg.OffsetX, cfg.OffsetY, a.logger)
	if a.newClipboard != nil {
		a.clip = a.newClipboard(ctx)
	}
	a.mu.Unlock()

	if err := a.checkDatabase(ctx); err != nil {
		logging.LogError(a.logger, err, "startup", map[string]interface{}{
			"phase": "database",
		})
	}

	a.registerShortcut(cfg.Shortcut)
	a.config.OnChange(a.onConfigChange)

	if a.tray != nil {
		a.tray.Start()
	}

	watchCtx, cancel := context.WithCancel(ctx)
	a.stopWatch = cancel
	a.watchDone = make(chan struct{})
	go func() {
		defer close(a.watchDone)
		if err := a.config.Watch(watchCtx); err != nil {
			a.logger.Warn("Config watcher stopped", "path", a.config.Path(), "error", err)
		}
	}()

	a.logger.Info("Application started", "environment", a.environment)
}

// checkDatabase pings the database and reconnects once when the failure
// is transient.
func (a *App) checkDatabase(ctx context.Context) error {
	if a.dbService == nil {
		return repoerrors.NewRepositoryError("startup",
			fmt.Errorf("database service not initialized"),
			repoerrors.ErrCodeConnection)
	}

	healthCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	err := a.dbService.Health(healthCtx)
	if err == nil {
		return nil
	}
	if !repoerrors.IsRetryable(err) || a.dbConfig == nil {
		return repoerrors.NewRepositoryErrorWithContext("startup",
			err,
			repoerrors.ClassifyError(err),
			map[string]string{
				"operation": "health_check",
			})
	}

	a.logger.Warn("Database connection lost, attempting to reconnect", "error", err)
	reconnectCtx, reconnectCancel := context.WithTimeout(ctx, reconnectTimeout)
	defer reconnectCancel()

	if err := connectAndMigrate(reconnectCtx, a.dbService, a.dbConfig.Clone()); err != nil {
		return repoerrors.NewRepositoryErrorWithContext("startup",
			err,
			repoerrors.ErrCodeConnection,
			map[string]string{
				"operation": "reconnect",
				"db_path":   a.dbConfig.Path,
			})
	}
	a.logger.Info("Database reconnected")
	return nil
}

// registerShortcut drops the current binding, if any, then binds accel.
// Failures are logged; the launcher keeps running without a hotkey.
func (a *App) registerShortcut(accel string) {
	a.shortcutMu.Lock()
	defer a.shortcutMu.Unlock()

	previous := a.registered
	if previous == "" {
		previous = accel
	}
	if err := a.shortcuts.Unregister(previous); err != nil && !errors.Is(err, shortcut.ErrNotRegistered) {
		a.logger.Warn("Failed to unregister shortcut", "shortcut", previous, "error", err)
	}
	a.registered = ""

	if err := a.shortcuts.Register(accel, a.onShortcut); err != nil {
		a.logger.Error("Failed to register shortcut", "shortcut", accel, "error", err)
		return
	}
	a.registered = accel
}

func (a *App) unregisterShortcut() {
	a.shortcutMu.Lock()
	defer a.shortcutMu.Unlock()

	if a.registered == "" {
		return
	}
	if err := a.shortcuts.Unregister(a.registered); err != nil && !errors.Is(err, shortcut.ErrNotRegistered) {
		a.logger.Warn("Failed to unregister shortcut", "shortcut", a.registered, "error", err)
	}
	a.registered = ""
}

func (a *App) onShortcut(acc shortcut.Accelerator, state shortcut.State) {
	switch state {
	case shortcut.Pressed:
		if w := a.windowController(); w != nil {
			w.Toggle()
		}
	case shortcut.Released:
		a.logger.Debug("Shortcut released", "shortcut", acc.String())
	}
}

func (a *App) onConfigChange(old, updated config.AppConfig) {
	if updated.Shortcut != old.Shortcut {
		if _, err := shortcut.Parse(updated.Shortcut); err != nil {
			a.logger.Error("Ignoring invalid shortcut from config", "shortcut", updated.Shortcut, "error", err)
		} else {
			a.registerShortcut(updated.Shortcut)
		}
	}
	if updated.OffsetX != old.OffsetX || updated.OffsetY != old.OffsetY {
		if w := a.windowController(); w != nil {
			w.SetOffset(updated.OffsetX, updated.OffsetY)
		}
	}
}

func (a *App) windowController() *window.Controller {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.window
}

func (a *App) showWindow() {
	if w := a.windowController(); w != nil {
		w.ShowOnActiveMonitor()
	}
}

func (a *App) quitApp() {
	a.logger.Info("Quit requested from tray")
	if a.quit != nil && a.ctx != nil {
		a.quit(a.ctx)
	}
}

// DomReady is called after front-end resources have been loaded
func (a *App) DomReady(ctx context.Context) {}

// BeforeClose releases the global shortcut. Closing is never prevented.
func (a *App) BeforeClose(ctx context.Context) (prevent bool) {
	a.unregisterShortcut()
	return false
}

// Shutdown is called at application termination
func (a *App) Shutdown(ctx context.Context) {
	a.logger.Info("Starting application shutdown sequence")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if a.stopWatch != nil {
		a.stopWatch()
		select {
		case <-a.watchDone:
		case <-shutdownCtx.Done():
			a.logger.Warn("Config watcher did not stop in time")
		}
	}

	if a.tray != nil {
		a.tray.Stop()
	}

	a.shortcutMu.Lock()
	if err := a.shortcuts.Close(); err != nil {
		a.logger.Warn("Failed to release shortcuts", "error", err)
	}
	a.registered = ""
	a.shortcutMu.Unlock()

	if err := a.closeDatabaseConnection(shutdownCtx); err != nil {
		logging.LogError(a.logger, err, "shutdown", nil)
	}

	a.logger.Info("Application shutdown completed")
}

// closeDatabaseConnection closes the database unless ctx expires first.
func (a *App) closeDatabaseConnection(ctx context.Context) error {
	if a.dbService == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- a.dbService.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return repoerrors.NewRepositoryErrorWithContext("shutdown",
				err,
				repoerrors.ClassifyError(err),
				map[string]string{
					"operation": "close_connection",
				})
		}
		a.logger.Info("Database connection closed")
		return nil
	case <-ctx.Done():
		return repoerrors.NewRepositoryError("shutdown",
			ctx.Err(),
			repoerrors.ErrCodeTimeout)
	}
}

// IconHandler serves user icons to the webview asset server.
func (a *App) IconHandler() http.Handler {
	return a.icons
}

// GetLogger returns the application's structured logger
func (a *App) GetLogger() logging.Logger {
	return a.logger
}
