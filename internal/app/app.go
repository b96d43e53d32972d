package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dori/shiftbook/internal/config"
	"github.com/dori/shiftbook/internal/db"
	"github.com/gofrs/flock"
)

// App holds the application state and dependencies
type App struct {
	DB       *db.DB
	Config   *config.Config
	DataDir  string
	lockFile *flock.Flock
}

// New creates a new application instance. A store that fails to open or
// upgrade is fatal: the caller gets the error and the UI never starts.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		Config:  cfg,
		DataDir: cfg.DataDir,
	}

	// Acquire lock to ensure single instance
	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database

	return app, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "shiftbook.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of shiftbook is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
