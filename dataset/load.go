package dataset

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/pulsedrive/calres/caltab"
)

//go:embed data/*.yaml
var embedded embed.FS

// Embedded compiles the calibration dataset shipped with the binary.
func Embedded() (*caltab.Dataset, error) {
	names, err := fs.Glob(embedded, "data/*.yaml")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	docs := make([]Document, 0, len(names))
	for _, name := range names {
		raw, err := embedded.ReadFile(name)
		if err != nil {
			return nil, err
		}
		doc, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		docs = append(docs, doc)
	}
	return Compile(docs...)
}

// Load reads every document matching the glob patterns and compiles them
// into one dataset. Patterns support doublestar globs; matches are merged
// in sorted path order so loading is deterministic.
func Load(patterns ...string) (*caltab.Dataset, error) {
	var paths []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad dataset pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no dataset documents match %v", patterns)
	}
	sort.Strings(paths)

	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		doc, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		docs = append(docs, doc)
	}
	return Compile(docs...)
}

// Decode parses one dataset document. Unknown fields are rejected so typos
// in calibration data fail loudly instead of silently dropping constants.
func Decode(raw []byte) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}
