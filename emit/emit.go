package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pulsedrive/calres/caltab"
)

// Output formats.
const (
	FormatC    = "c"
	FormatYAML = "yaml"
)

// Info identifies one generation run in emitted artifacts.
type Info struct {
	Tool    string
	Version string
	Source  string // dataset origin, e.g. "embedded" or the glob patterns
	RunID   string
	Date    time.Time
	Context caltab.Context
}

// NewInfo stamps a generation run with a fresh run ID.
func NewInfo(tool, version, source string, ctx caltab.Context) Info {
	return Info{
		Tool:    tool,
		Version: version,
		Source:  source,
		RunID:   uuid.NewString(),
		Date:    time.Now().UTC(),
		Context: ctx,
	}
}

// WriteFiles renders the table in every requested format under dir, using
// base as the file stem. It returns the paths written.
func WriteFiles(dir, base string, formats []string, tab *caltab.Table, info Info) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var paths []string
	write := func(name string, render func(*os.File) error) error {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := render(f); err != nil {
			f.Close()
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		paths = append(paths, path)
		return nil
	}

	for _, format := range formats {
		switch format {
		case FormatC:
			if err := write(base+".h", func(f *os.File) error {
				return WriteHeader(f, base, tab, info)
			}); err != nil {
				return nil, err
			}
			if err := write(base+".c", func(f *os.File) error {
				return WriteSource(f, base, tab, info)
			}); err != nil {
				return nil, err
			}
		case FormatYAML:
			if err := write(base+".yaml", func(f *os.File) error {
				return WriteYAML(f, tab, info)
			}); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unknown output format %q", format)
		}
	}
	return paths, nil
}
