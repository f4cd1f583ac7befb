// Package inventory is the public entry point to the tool inventory. It
// opens the storage backend, the change notification registry, and the
// provider that routes requests by content URI, wired together.
//
// Example:
//
//	inv, err := inventory.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".inventory-db",
//	})
//	if err != nil {
//	    return err
//	}
//	defer inv.Close()
//
//	uri, err := inv.Provider.Insert(inv.CollectionURI(), tool.Values())
package inventory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mesh-intelligence/inventory/internal/notify"
	"github.com/mesh-intelligence/inventory/internal/provider"
	"github.com/mesh-intelligence/inventory/internal/sqlite"
	"github.com/mesh-intelligence/inventory/pkg/types"
)

// Version is the release version of the inventory module.
const Version = "0.1.0"

// Inventory bundles the wired components. Provider is the only component
// presentation code should issue requests through.
type Inventory struct {
	Provider *provider.Provider
	Notifier *notify.Resolver

	backend *sqlite.Backend
	watcher *notify.FileWatcher
	logger  *slog.Logger
}

type options struct {
	logger   *slog.Logger
	watch    bool
	debounce time.Duration
}

// Option configures Open.
type Option func(*options)

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithFileWatch makes the inventory watch its database file so writes from
// other processes reach subscribers. A zero debounce uses the default.
func WithFileWatch(debounce time.Duration) Option {
	return func(o *options) {
		o.watch = true
		o.debounce = debounce
	}
}

// Open attaches the backend described by config and wires the provider.
// The caller must call Close.
func Open(config types.Config, opts ...Option) (*Inventory, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	backend := sqlite.NewBackend()
	backend.SetLogger(o.logger)
	if err := backend.Attach(config); err != nil {
		return nil, fmt.Errorf("attaching backend: %w", err)
	}

	resolver := notify.NewResolver(o.logger)
	inv := &Inventory{
		Provider: provider.New(backend, resolver, provider.NewMatcher(config.GetAuthority()), o.logger),
		Notifier: resolver,
		backend:  backend,
		logger:   o.logger,
	}

	if o.watch {
		fw, err := notify.NewFileWatcher(resolver, backend.Path(), o.debounce, o.logger)
		if err == nil {
			err = fw.Start()
		}
		if err != nil {
			if fw != nil {
				fw.Stop()
			}
			inv.Close()
			return nil, fmt.Errorf("starting file watcher: %w", err)
		}
		inv.watcher = fw
	}

	return inv, nil
}

// CollectionURI returns the address of every tool under the configured
// authority.
func (inv *Inventory) CollectionURI() string {
	return inv.Provider.Matcher().URI(types.Collection())
}

// ItemURI returns the address of the tool with id.
func (inv *Inventory) ItemURI(id int64) string {
	return inv.Provider.Matcher().URI(types.Item(id))
}

// Backend exposes the storage backend for maintenance tasks such as JSONL
// backup. Reads and writes go through Provider.
func (inv *Inventory) Backend() *sqlite.Backend {
	return inv.backend
}

// Import adds the tools in a JSONL backup read from r. Every record passes
// the same validation as Provider.Insert; rejected and malformed lines are
// counted in skipped. Collection watchers are notified when anything was
// imported.
func (inv *Inventory) Import(r io.Reader) (imported, skipped int, err error) {
	imported, skipped, err = inv.backend.ImportJSONL(r, provider.Validate)
	if err != nil {
		return 0, 0, err
	}
	if imported > 0 {
		inv.Notifier.NotifyChange(types.Collection())
	}
	return imported, skipped, nil
}

// Close stops the file watcher, closes every subscription, and detaches the
// backend.
func (inv *Inventory) Close() error {
	var errs []error
	if inv.watcher != nil {
		errs = append(errs, inv.watcher.Stop())
	}
	inv.Notifier.Close()
	errs = append(errs, inv.backend.Detach())
	return errors.Join(errs...)
}
