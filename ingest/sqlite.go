package ingest

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/pulsedrive/calres/dataset"
)

// SqliteReader parses the editor's archive databases: a sheets table naming
// each grid and a cells table holding its row/column values.
type SqliteReader struct{}

// Extensions implements Reader.
func (*SqliteReader) Extensions() []string { return []string{".db", ".sqlite"} }

// Read implements Reader. Sheets convert in name order so the resulting
// documents merge deterministically.
func (*SqliteReader) Read(path string) ([]dataset.Document, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	sheets, err := readSheets(db)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	docs := make([]dataset.Document, 0, len(sheets))
	for _, s := range sheets {
		grid, err := readGrid(db, s.id)
		if err != nil {
			return nil, fmt.Errorf("%s sheet %q: %w", path, s.name, err)
		}
		doc, err := parseGrid(s.name, grid)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

type sheetRow struct {
	id   int64
	name string
}

func readSheets(db *sql.DB) ([]sheetRow, error) {
	rows, err := db.Query(`SELECT id, name FROM sheets ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sheetRow
	for rows.Next() {
		var s sheetRow
		if err := rows.Scan(&s.id, &s.name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// readGrid materializes a sheet's sparse cells into a dense grid. Missing
// cells read as empty strings.
func readGrid(db *sql.DB, sheetID int64) ([][]string, error) {
	rows, err := db.Query(
		`SELECT row, col, value FROM cells WHERE sheet_id = ? ORDER BY row, col`, sheetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type cell struct {
		row, col int
		value    string
	}
	var cells []cell
	maxRow, maxCol := -1, -1
	for rows.Next() {
		var c cell
		if err := rows.Scan(&c.row, &c.col, &c.value); err != nil {
			return nil, err
		}
		if c.row < 0 || c.col < 0 {
			return nil, fmt.Errorf("negative cell index (%d, %d)", c.row, c.col)
		}
		if c.row > maxRow {
			maxRow = c.row
		}
		if c.col > maxCol {
			maxCol = c.col
		}
		cells = append(cells, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	grid := make([][]string, maxRow+1)
	for i := range grid {
		grid[i] = make([]string, maxCol+1)
	}
	for _, c := range cells {
		grid[c.row][c.col] = c.value
	}
	return grid, nil
}
