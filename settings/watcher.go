package settings

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher reloads a file-backed Store when another process rewrites the
// settings file.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	settle   time.Duration
	log      logrus.FieldLogger
	reloaded chan struct{}
}

// NewWatcher watches the directory containing store's file. Editors often
// replace files instead of writing in place, so the directory is watched
// rather than the file itself.
func NewWatcher(store *Store, log logrus.FieldLogger) (*Watcher, error) {
	if store.Path() == "" {
		return nil, errors.New("settings watcher needs a file-backed store")
	}
	if log == nil {
		log = discardLogger()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(store.Path())); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(store.Path()), err)
	}
	return &Watcher{
		store:    store,
		watcher:  fw,
		settle:   100 * time.Millisecond,
		log:      log,
		reloaded: make(chan struct{}, 1),
	}, nil
}

// Reloaded receives a value after each successful reload.
func (w *Watcher) Reloaded() <-chan struct{} {
	return w.reloaded
}

// Run blocks until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	target := filepath.Clean(w.store.Path())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			// let the writer finish
			time.Sleep(w.settle)
			if err := w.store.Reload(); err != nil {
				w.log.WithError(err).Warn("settings: reload failed")
				continue
			}
			w.log.WithField("path", target).Debug("settings: reloaded")
			select {
			case w.reloaded <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("settings: watch error")
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
