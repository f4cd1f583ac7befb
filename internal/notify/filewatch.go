package notify

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mesh-intelligence/inventory/pkg/types"
)

// DefaultDebounce is how long the watcher waits after the last write before
// it publishes a change.
const DefaultDebounce = 100 * time.Millisecond

// Notifier receives change signals. *Resolver satisfies it.
type Notifier interface {
	NotifyChange(addr types.Address)
}

// FileWatcher watches the database file and its journal for writes and
// publishes a collection-wide change after each burst. It lets a process
// observe writes made by another process sharing the same database. Writes
// made in-process are also seen and produce one extra, harmless signal.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	notifier Notifier
	dbPath   string
	debounce time.Duration
	logger   *slog.Logger

	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
	stopped bool
}

// NewFileWatcher creates a watcher for the database at dbPath. The watcher
// must be started with Start before it publishes anything. A zero debounce
// uses DefaultDebounce.
func NewFileWatcher(notifier Notifier, dbPath string, debounce time.Duration, logger *slog.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileWatcher{
		watcher:  w,
		notifier: notifier,
		dbPath:   dbPath,
		debounce: debounce,
		logger:   logger.With("component", "filewatch"),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching the directory that holds the database. The
// directory is watched rather than the file so the WAL and journal files
// are seen as they come and go.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.running {
		return fmt.Errorf("watcher already running")
	}
	if fw.stopped {
		return fmt.Errorf("watcher stopped")
	}

	dir := filepath.Dir(fw.dbPath)
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	fw.running = true
	fw.wg.Add(1)
	go fw.processEvents()

	fw.logger.Info("watching database", "path", fw.dbPath)
	return nil
}

// Stop releases the underlying fsnotify watcher and waits for the event
// loop to exit. It is safe to call after a failed Start, and it is
// idempotent.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if fw.stopped {
		fw.mu.Unlock()
		return nil
	}
	fw.stopped = true
	wasRunning := fw.running
	fw.running = false
	fw.mu.Unlock()

	if wasRunning {
		close(fw.done)
	}
	err := fw.watcher.Close()
	fw.wg.Wait()
	if err != nil {
		return fmt.Errorf("closing watcher: %w", err)
	}
	return nil
}

func (fw *FileWatcher) processEvents() {
	defer fw.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-fw.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(fw.debounce)
			} else {
				timer.Reset(fw.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			fw.notifier.NotifyChange(types.Collection())

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("watch error", "error", err)
		}
	}
}

// relevant reports whether event is a write to the database or one of its
// companion files (-wal, -journal, -shm excluded since it changes on reads).
func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
		return false
	}
	base := filepath.Base(fw.dbPath)
	name := filepath.Base(event.Name)
	if name == base {
		return true
	}
	if !strings.HasPrefix(name, base+"-") {
		return false
	}
	suffix := strings.TrimPrefix(name, base+"-")
	return suffix == "wal" || suffix == "journal"
}
