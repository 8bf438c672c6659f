package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/rkcad/rk/editor"
	"github.com/rkcad/rk/logging"
)

// Manager watches a config file on disk and republishes it onto an
// editor.Store's action queue whenever it changes, per SPEC_FULL.md
// §6.4. Load failures after startup are logged and skipped: a bad edit
// to the file shouldn't crash a running editor.
type Manager struct {
	path    string
	store   *editor.Store
	watcher *fsnotify.Watcher
	logger  logging.Logger
	done    chan struct{}
}

// NewManager loads path once (via Load, so a missing file yields
// Defaults()) and returns a Manager ready to Watch.
func NewManager(path string, store *editor.Store, logger logging.Logger) (*Manager, Values, error) {
	if logger == nil {
		logger = logging.NewTestLogger()
	}
	v, err := Load(path)
	if err != nil {
		return nil, Defaults(), err
	}
	return &Manager{
		path:   path,
		store:  store,
		logger: logger.Named("config"),
		done:   make(chan struct{}),
	}, v, nil
}

// Watch starts an fsnotify watch on the config file's directory (the
// file itself may be replaced atomically by an editor, which fsnotify
// sees as a rename+create rather than a write) and runs until Stop is
// called. It enqueues a Changed action on every write/create event that
// successfully reloads.
func (m *Manager) Watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	m.watcher = w

	dir := filepath.Dir(m.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return err
	}

	go m.loop()
	return nil
}

func (m *Manager) loop() {
	for {
		select {
		case <-m.done:
			return
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if event.Name != m.path {
				continue
			}
			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			v, err := Load(m.path)
			if err != nil {
				m.logger.Warnw("config reload failed", "error", err)
				continue
			}
			m.store.Enqueue(Changed{Values: v})
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.logger.Warnw("config watch error", "error", err)
		}
	}
}

// Stop ends the watch goroutine and closes the underlying fsnotify
// watcher.
func (m *Manager) Stop() {
	close(m.done)
	if m.watcher != nil {
		m.watcher.Close()
	}
}
