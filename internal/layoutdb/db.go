// Package layoutdb exports computed array layouts to a standalone SQLite
// file, so downstream analysis pipelines can join per-unit data against
// the layout's unit indices.
package layoutdb

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/pmtarray/internal/geom"
)

type DB struct {
	*sql.DB
}

// NewDB opens the layout export database at path, creating the file and
// schema if needed.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS layouts (
			layout_id         TEXT PRIMARY KEY,
			model             TEXT,
			lattice           TEXT,
			pitch             DOUBLE,
			n_units           BIGINT,
			timestamp         TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS units (
			layout_id         TEXT,
			unit_index        BIGINT,
			x                 DOUBLE,
			y                 DOUBLE,
			FOREIGN KEY(layout_id) REFERENCES layouts(layout_id)
		);
	`)
	if err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// RecordLayout writes the layout metadata and one row per unit, in layout
// order, inside a single transaction. It returns the generated layout id.
func (db *DB) RecordLayout(model string, layout *geom.ArrayLayout) (string, error) {
	id := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO layouts (layout_id, model, lattice, pitch, n_units) VALUES (?, ?, ?, ?, ?)`,
		id, model, layout.Spec.Kind, layout.Spec.Pitch, layout.NumUnits(),
	); err != nil {
		return "", fmt.Errorf("failed to insert layout: %v", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO units (layout_id, unit_index, x, y) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()
	for _, rec := range layout.Table() {
		if _, err := stmt.Exec(id, rec.Index, rec.X, rec.Y); err != nil {
			return "", fmt.Errorf("failed to insert unit %d: %v", rec.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// LayoutUnits reads back the per-unit rows of a layout in index order.
func (db *DB) LayoutUnits(layoutID string) ([]geom.UnitRecord, error) {
	rows, err := db.Query(
		`SELECT unit_index, x, y FROM units WHERE layout_id = ? ORDER BY unit_index`, layoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []geom.UnitRecord
	for rows.Next() {
		var rec geom.UnitRecord
		if err := rows.Scan(&rec.Index, &rec.X, &rec.Y); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
