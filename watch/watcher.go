// Package watch regenerates calibration artifacts when dataset documents
// change on disk. It debounces filesystem events and hashes file content so
// editor save churn does not trigger duplicate regenerations.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

const (
	// eventChannelBuffer is the size of the watch event channel.
	eventChannelBuffer = 64

	// defaultDebounce is used when no delay is configured.
	defaultDebounce = 500 * time.Millisecond
)

// Operation indicates the type of dataset file change.
type Operation string

// OpCreate, OpModify, and OpDelete enumerate the dataset change types.
const (
	OpCreate Operation = "create"
	OpModify Operation = "modify"
	OpDelete Operation = "delete"
)

// Event represents one dataset document change.
type Event struct {
	// Path is the absolute path of the changed document.
	Path string

	// Operation is the type of change.
	Operation Operation
}

// Watcher watches dataset documents matched by glob patterns and emits
// debounced change events.
type Watcher struct {
	patterns []string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	// Debouncing: collect changes before processing
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	// Hash-based change detection
	hashMu sync.RWMutex
	hashes map[string]string

	// Output channel
	events chan Event

	// Metrics
	droppedEvents atomic.Int64
}

// New creates a watcher over the dataset documents matching patterns.
func New(patterns []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		patterns: patterns,
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
		pending:  make(map[string]fsnotify.Op),
		hashes:   make(map[string]string),
		events:   make(chan Event, eventChannelBuffer),
	}, nil
}

// Events returns the channel of dataset change events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start seeds content hashes for the current matches, adds directory
// watches and begins emitting events.
func (w *Watcher) Start(ctx context.Context) error {
	matches, err := w.glob()
	if err != nil {
		return err
	}

	dirs := make(map[string]bool)
	for _, path := range matches {
		dirs[filepath.Dir(path)] = true
		if content, err := os.ReadFile(path); err == nil {
			w.setHash(path, contentHash(content))
		}
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.logger.Warn("Failed to watch directory",
				"path", dir,
				"error", err)
		} else {
			w.logger.Debug("Watching directory", "path", dir)
		}
	}

	go w.processEvents(ctx)

	w.logger.Info("Dataset watcher started",
		"patterns", w.patterns,
		"documents", len(matches),
		"debounce", w.debounce)
	return nil
}

// Stop stops the watcher.
// The events channel is closed by processEvents when it exits.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// DroppedEvents returns the number of events dropped due to channel overflow.
func (w *Watcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

func (w *Watcher) glob() ([]string, error) {
	var out []string
	for _, pattern := range w.patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, err
		}
		out = append(out, matches...)
	}
	return out, nil
}

// matchesPattern reports whether path is covered by any watch pattern.
func (w *Watcher) matchesPattern(path string) bool {
	for _, pattern := range w.patterns {
		if ok, err := doublestar.PathMatch(filepath.ToSlash(pattern), filepath.ToSlash(path)); err == nil && ok {
			return true
		}
	}
	return false
}

func (w *Watcher) setHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = hash
}

func (w *Watcher) getHash(path string) (string, bool) {
	w.hashMu.RLock()
	defer w.hashMu.RUnlock()
	hash, ok := w.hashes[path]
	return hash, ok
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleFSEvent accumulates one fsnotify event for the next flush.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name
	if strings.ToLower(filepath.Ext(path)) != ".yaml" || !w.matchesPattern(path) {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Dataset change detected",
		"path", path,
		"op", event.Op.String())
}

// flushPending processes accumulated changes.
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		event := Event{Path: path}

		if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
			event.Operation = OpDelete
			w.hashMu.Lock()
			delete(w.hashes, path)
			w.hashMu.Unlock()
			w.sendEvent(event)
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			event.Operation = OpDelete
			w.sendEvent(event)
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			w.logger.Warn("Failed to read document for hash check",
				"path", path,
				"error", err)
			continue
		}

		newHash := contentHash(content)
		oldHash, hadHash := w.getHash(path)
		if hadHash && oldHash == newHash {
			// Content unchanged, skip
			continue
		}
		w.setHash(path, newHash)

		if op.Has(fsnotify.Create) || !hadHash {
			event.Operation = OpCreate
		} else {
			event.Operation = OpModify
		}
		w.sendEvent(event)
	}
}

// sendEvent sends an event to the output channel.
func (w *Watcher) sendEvent(event Event) {
	select {
	case w.events <- event:
		w.logger.Debug("Sent watch event",
			"path", event.Path,
			"op", event.Operation)
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("Event channel full, dropping event",
			"path", event.Path,
			"total_dropped", dropped)
	}
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
