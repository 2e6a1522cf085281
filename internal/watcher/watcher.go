// Package watcher reports changes to files the UI depends on, such as a
// custom theme file, as Bubble Tea messages.
package watcher

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/robertguss/scifi-stories-go/internal/logging"
)

// ChangedMsg is sent when a watched file was written or recreated
type ChangedMsg struct {
	Path string
}

// ErrorMsg is sent when watcher encounters an error
type ErrorMsg struct {
	Error error
}

// Sender delivers messages to the UI. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Watcher monitors files for changes and sends ChangedMsg
type Watcher struct {
	watcher  *fsnotify.Watcher
	sender   Sender
	paths    []string
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}

	// Debounce tracking
	pending     bool
	pendingPath string
}

// New creates a new file watcher
func New(debounce time.Duration, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Watcher{
		debounce: debounce,
		logger:   logger,
		paths:    make([]string, 0),
		stopCh:   make(chan struct{}),
	}
}

// SetSender sets where messages are delivered, usually the tea.Program
func (w *Watcher) SetSender(s Sender) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sender = s
}

// AddPath adds a path to watch
func (w *Watcher) AddPath(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.paths = append(w.paths, path)

	if w.watcher != nil && w.running {
		_ = w.watcher.Add(path)
	}
}

// Start begins watching for file changes
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	var err error
	w.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}

	// Add all configured paths
	for _, path := range w.paths {
		// Editors replace files on save, so watch the parent directory
		dir := filepath.Dir(path)
		if err := w.watcher.Add(dir); err != nil {
			w.logger.Warn("failed to watch directory", "dir", dir, "err", err)
		}
	}

	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	go w.run()
	return nil
}

// Stop stops watching for file changes
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.stopCh)

	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// run is the main event loop
func (w *Watcher) run() {
	debounceTimer := time.NewTimer(w.debounce)
	debounceTimer.Stop()

	for {
		select {
		case <-w.stopCh:
			debounceTimer.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Check if this is a file we're interested in
			if !w.isWatchedPath(event.Name) {
				continue
			}

			// Only react to write and create events
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// Reset debounce timer
			w.mu.Lock()
			w.pending = true
			w.pendingPath = event.Name
			w.mu.Unlock()

			debounceTimer.Reset(w.debounce)

		case <-debounceTimer.C:
			w.mu.Lock()
			pending, path := w.pending, w.pendingPath
			w.pending = false
			w.mu.Unlock()

			if pending {
				w.logger.Debug("watched file changed", "path", path)
				w.sendMsg(ChangedMsg{Path: path})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "err", err)
			w.sendMsg(ErrorMsg{Error: err})
		}
	}
}

// isWatchedPath checks if the given path matches any watched path
func (w *Watcher) isWatchedPath(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	absPath, _ := filepath.Abs(path)

	for _, watchedPath := range w.paths {
		absWatched, _ := filepath.Abs(watchedPath)
		if absPath == absWatched {
			return true
		}
	}
	return false
}

// sendMsg safely sends a message to the tea.Program
func (w *Watcher) sendMsg(msg tea.Msg) {
	w.mu.Lock()
	sender := w.sender
	w.mu.Unlock()

	if sender != nil {
		sender.Send(msg)
	}
}

// WatchTheme creates a watcher configured for a custom theme file
func WatchTheme(themePath string, debounce time.Duration, logger *slog.Logger) *Watcher {
	w := New(debounce, logger)
	w.AddPath(themePath)
	return w
}
