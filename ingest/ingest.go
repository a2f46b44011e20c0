package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pulsedrive/calres/dataset"
)

// Reader parses one archive format into dataset documents.
type Reader interface {
	// Read parses the file at path. Each legacy sheet becomes one document.
	Read(path string) ([]dataset.Document, error)
	// Extensions lists the file extensions the reader handles, with dot.
	Extensions() []string
}

var (
	mu      sync.RWMutex
	readers = make(map[string]Reader)
)

// Register makes a reader available for its extensions. Later registrations
// win, so callers can override the built-in formats.
func Register(r Reader) {
	mu.Lock()
	defer mu.Unlock()
	for _, ext := range r.Extensions() {
		readers[strings.ToLower(ext)] = r
	}
}

// ForPath returns the reader handling the file's extension.
func ForPath(path string) (Reader, bool) {
	mu.RLock()
	defer mu.RUnlock()
	r, ok := readers[strings.ToLower(filepath.Ext(path))]
	return r, ok
}

// ReadFile parses the archive at path with the registered reader for its
// extension.
func ReadFile(path string) ([]dataset.Document, error) {
	r, ok := ForPath(path)
	if !ok {
		return nil, fmt.Errorf("no reader for %q", filepath.Ext(path))
	}
	return r.Read(path)
}

func init() {
	Register(&SqliteReader{})
	Register(&CSVReader{})
}
