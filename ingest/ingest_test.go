package ingest

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestParseGrid(t *testing.T) {
	t.Run("scalar and per-target rows", func(t *testing.T) {
		doc, err := parseGrid("globals", [][]string{
			{"name", "type", "unit", "value", "mot", "hsg"},
			{"PWM_PERIOD", "u32", "ns", "250000", "", ""},
			{"INV_DEADTIME", "u16", "ns", "", "2000", "2200"},
		})
		require.NoError(t, err)
		require.Len(t, doc.Constants, 2)

		assert.Equal(t, "250000", doc.Constants[0].Value)
		assert.Empty(t, doc.Constants[0].Values)
		assert.Equal(t, []string{"2000", "2200"}, doc.Constants[1].Values)
	})

	t.Run("skips blank rows", func(t *testing.T) {
		doc, err := parseGrid("globals", [][]string{
			{"name", "type", "value"},
			{"", "", ""},
			{"A", "u8", "1"},
		})
		require.NoError(t, err)
		assert.Len(t, doc.Constants, 1)
	})

	t.Run("rejects mixed scalar and per-target", func(t *testing.T) {
		_, err := parseGrid("globals", [][]string{
			{"name", "type", "value", "mot", "hsg"},
			{"A", "u8", "1", "2", "3"},
		})
		assert.Error(t, err)
	})

	t.Run("rejects missing value", func(t *testing.T) {
		_, err := parseGrid("globals", [][]string{
			{"name", "type", "value"},
			{"A", "u8", ""},
		})
		assert.Error(t, err)
	})

	t.Run("rejects header without name column", func(t *testing.T) {
		_, err := parseGrid("globals", [][]string{{"type", "value"}})
		assert.Error(t, err)
	})
}

func TestCSVReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "globals.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"name,type,unit,value,mot,hsg\n"+
			"PWM_PERIOD,u32,ns,250000,,\n"+
			"CUR_ADC_OFFSET,u16,LSB,,2048,2048\n"), 0o644))

	docs, err := (&CSVReader{}).Read(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	require.Len(t, doc.Constants, 2)
	assert.Equal(t, "PWM_PERIOD", doc.Constants[0].Name)
	assert.Equal(t, []string{"2048", "2048"}, doc.Constants[1].Values)
}

func TestSqliteReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "archive.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE sheets (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
		CREATE TABLE cells (
			sheet_id INTEGER NOT NULL,
			row INTEGER NOT NULL,
			col INTEGER NOT NULL,
			value TEXT NOT NULL
		);
		INSERT INTO sheets (id, name) VALUES (1, 'globals');
		INSERT INTO cells (sheet_id, row, col, value) VALUES
			(1, 0, 0, 'name'), (1, 0, 1, 'type'), (1, 0, 2, 'value'),
			(1, 1, 0, 'PWM_PERIOD'), (1, 1, 1, 'u32'), (1, 1, 2, '250000');
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	docs, err := (&SqliteReader{}).Read(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Len(t, docs[0].Constants, 1)
	assert.Equal(t, "PWM_PERIOD", docs[0].Constants[0].Name)
	assert.Equal(t, "250000", docs[0].Constants[0].Value)
}

func TestReadFile(t *testing.T) {
	t.Run("routes by extension", func(t *testing.T) {
		r, ok := ForPath("/tmp/archive.DB")
		require.True(t, ok)
		assert.IsType(t, &SqliteReader{}, r)

		r, ok = ForPath("sheet.csv")
		require.True(t, ok)
		assert.IsType(t, &CSVReader{}, r)
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := ReadFile("archive.xlsx")
		assert.Error(t, err)
	})
}
