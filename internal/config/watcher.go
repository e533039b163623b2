package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadTimeout bounds the storage read triggered by a file-change event.
const reloadTimeout = 5 * time.Second

// Watcher reloads cached domain configs when their files change on disk.
// Reloads are best-effort: a file that fails validation is logged and the
// previously published snapshot stays retrievable, so a bad edit never
// replaces a good config.
type Watcher struct {
	store  *Store
	logger *slog.Logger

	fsw  *fsnotify.Watcher
	done chan struct{}
}

// NewWatcher starts watching the store's config directory. The caller must
// Close the watcher to release the underlying notify handle.
func NewWatcher(store *Store, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(store.loader.dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		store:  store,
		logger: logger,
		fsw:    fsw,
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Remove) {
		return
	}

	base := filepath.Base(event.Name)
	if !strings.HasSuffix(base, configExt) {
		return
	}
	name := strings.TrimSuffix(base, configExt)

	if event.Op.Has(fsnotify.Remove) {
		w.store.Evict(name)
		w.logger.Info("domain config evicted", "domain", name)
		return
	}

	// Only refresh domains already in the cache; uncached domains load
	// lazily on first request and need no eager refresh.
	if _, cached := w.store.Get(name); !cached {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	if _, err := w.store.Reload(ctx, name); err != nil {
		w.logger.Error("domain config reload failed, keeping previous snapshot",
			"domain", name,
			"error", err)
		return
	}
	w.logger.Info("domain config reloaded", "domain", name)
}
