// Package ingest converts legacy calibration sheet exports into dataset
// documents. The historical editor kept constants in spreadsheet grids,
// archived either as sqlite databases (one table of sheets, one of cells)
// or as per-sheet CSV exports. Ingestion parses those grids into constant
// declarations; branch structure and derivations are authored in YAML.
package ingest
