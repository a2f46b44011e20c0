package ingest

import (
	"fmt"
	"strings"

	"github.com/pulsedrive/calres/dataset"
)

// Grid columns recognized in sheet headers. The mot and hsg columns carry
// per-target values; value carries scalars. A row may use one or the other,
// never both.
const (
	colName    = "name"
	colType    = "type"
	colUnit    = "unit"
	colComment = "comment"
	colValue   = "value"
	colMot     = "mot"
	colHsg     = "hsg"
)

// parseGrid converts one sheet grid into a dataset document. The first row
// is the header; every following non-empty row declares one constant.
func parseGrid(sheet string, grid [][]string) (dataset.Document, error) {
	if len(grid) == 0 {
		return dataset.Document{}, fmt.Errorf("sheet %q: empty grid", sheet)
	}

	cols := make(map[string]int, len(grid[0]))
	for i, h := range grid[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols[colName]; !ok {
		return dataset.Document{}, fmt.Errorf("sheet %q: no name column", sheet)
	}
	if _, ok := cols[colType]; !ok {
		return dataset.Document{}, fmt.Errorf("sheet %q: no type column", sheet)
	}

	cell := func(row []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	doc := dataset.Document{Version: dataset.SchemaVersion}
	for n, row := range grid[1:] {
		name := cell(row, colName)
		if name == "" {
			continue
		}
		cd := dataset.ConstantDoc{
			Name:    name,
			Type:    cell(row, colType),
			Unit:    cell(row, colUnit),
			Comment: cell(row, colComment),
		}
		scalar := cell(row, colValue)
		mot, hsg := cell(row, colMot), cell(row, colHsg)
		switch {
		case scalar != "" && (mot != "" || hsg != ""):
			return dataset.Document{}, fmt.Errorf("sheet %q row %d: %q mixes scalar and per-target values", sheet, n+2, name)
		case scalar != "":
			cd.Value = scalar
		case mot != "" && hsg != "":
			cd.Values = []string{mot, hsg}
		default:
			return dataset.Document{}, fmt.Errorf("sheet %q row %d: %q has no value", sheet, n+2, name)
		}
		doc.Constants = append(doc.Constants, cd)
	}
	if len(doc.Constants) == 0 {
		return dataset.Document{}, fmt.Errorf("sheet %q: no constants", sheet)
	}
	return doc, nil
}
