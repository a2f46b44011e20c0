package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pulsedrive/calres/dataset"
)

// CSVReader parses one per-sheet CSV export. The file's base name is the
// sheet name.
type CSVReader struct{}

// Extensions implements Reader.
func (*CSVReader) Extensions() []string { return []string{".csv"} }

// Read implements Reader.
func (*CSVReader) Read(path string) ([]dataset.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // sheets have ragged rows
	grid, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	sheet := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc, err := parseGrid(sheet, grid)
	if err != nil {
		return nil, err
	}
	return []dataset.Document{doc}, nil
}
