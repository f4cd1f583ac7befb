// Package sqlite implements the SQLite storage backend for the tool
// inventory. The database file is the source of truth; the backend owns the
// connection lifecycle, the schema, and the SQL for the tools table.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/inventory/pkg/types"
)

// Backend is the storage module: a single SQLite database holding the tools
// table. Readers run concurrently; the engine serialises writers. The mutex
// guards only the attach state.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	path     string
	logger   *slog.Logger
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to open the database.
func NewBackend() *Backend {
	return &Backend{logger: slog.Default().With("component", "sqlite")}
}

// SetLogger replaces the backend's logger. A nil logger is ignored.
func (b *Backend) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	b.mu.Lock()
	b.logger = logger.With("component", "sqlite")
	b.mu.Unlock()
}

// Attach opens the database described by config. It creates DataDir if it
// does not exist, opens DataDir/inventory.db, and creates or upgrades the
// schema. An existing database is kept as is.
// Returns ErrAlreadyAttached if already attached and ErrSchemaTooNew if the
// file was written by a newer build.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, types.DatabaseName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return fmt.Errorf("setting busy timeout: %w", err)
	}

	version, err := migrate(db)
	if err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.config = config
	b.path = dbPath
	b.attached = true

	b.logger.Info("database attached", "path", dbPath, "schema_version", version)
	return nil
}

// Detach closes the database. After Detach, every operation returns
// ErrDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
		b.db = nil
	}

	b.attached = false
	b.logger.Info("database detached", "path", b.path)
	return nil
}

// Readable returns the handle for read operations.
func (b *Backend) Readable() (*sql.DB, error) {
	return b.handle()
}

// Writable returns the handle for write operations.
func (b *Backend) Writable() (*sql.DB, error) {
	return b.handle()
}

func (b *Backend) handle() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.db, nil
}

// Path returns the database file path, or "" when detached.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}
