// Package sqlitedict persists memdict dictionaries in SQLite. Dictionaries
// are read fully into memory when opened, so tokenizing never touches the
// database.
package sqlitedict

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/cognicore/runome/pkg/runome/dict"
	"github.com/cognicore/runome/pkg/runome/dict/memdict"
	"github.com/cognicore/runome/pkg/runome/internalerr"
)

func openDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY,
	surface TEXT NOT NULL,
	left_id INTEGER NOT NULL,
	right_id INTEGER NOT NULL,
	cost INTEGER NOT NULL,
	pos TEXT NOT NULL,
	infl_type TEXT NOT NULL,
	infl_form TEXT NOT NULL,
	base_form TEXT NOT NULL,
	reading TEXT NOT NULL,
	phonetic TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS connections (
	right_id INTEGER NOT NULL,
	left_id INTEGER NOT NULL,
	cost INTEGER NOT NULL,
	PRIMARY KEY(right_id, left_id)
);

CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Save writes d to the database at path, replacing any dictionary stored
// there.
func Save(ctx context.Context, path string, d *memdict.Dict) error {
	db, err := openDB(ctx, path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"entries", "connections", "meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := insertEntries(ctx, tx, d.Entries()); err != nil {
		return fmt.Errorf("insert entries: %w", err)
	}
	if err := insertConnections(ctx, tx, d.Matrix()); err != nil {
		return fmt.Errorf("insert connections: %w", err)
	}

	m := d.Matrix()
	meta := map[string]int{
		"rows": m.Rows,
		"cols": m.Cols,
		"bos":  d.BOSContextID(),
		"eos":  d.EOSContextID(),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, k, strconv.Itoa(v)); err != nil {
			return fmt.Errorf("insert meta %s: %w", k, err)
		}
	}
	return tx.Commit()
}

func insertEntries(ctx context.Context, tx *sql.Tx, entries []dict.Entry) error {
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO entries (id, surface, left_id, right_id, cost, pos, infl_type, infl_form, base_form, reading, phonetic)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for id, e := range entries {
		if _, err := stmt.ExecContext(ctx, id, e.Surface, e.LeftID, e.RightID, e.Cost,
			e.POS, e.InflType, e.InflForm, e.BaseForm, e.Reading, e.Phonetic); err != nil {
			return err
		}
	}
	return nil
}

// insertConnections stores the non-zero cells of m.
func insertConnections(ctx context.Context, tx *sql.Tx, m memdict.Matrix) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO connections (right_id, left_id, cost) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for right := 0; right < m.Rows; right++ {
		for left := 0; left < m.Cols; left++ {
			cost := m.At(right, left)
			if cost == 0 {
				continue
			}
			if _, err := stmt.ExecContext(ctx, right, left, cost); err != nil {
				return err
			}
		}
	}
	return nil
}

// Open loads the dictionary stored at path.
func Open(ctx context.Context, path string) (*memdict.Dict, error) {
	db, err := openDB(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	meta, err := loadMeta(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("load meta: %w", err)
	}
	for _, k := range []string{"rows", "cols", "bos", "eos"} {
		if _, ok := meta[k]; !ok {
			return nil, fmt.Errorf("%s: missing %q metadata: %w", path, k, internalerr.ErrNotFound)
		}
	}

	m := memdict.NewMatrix(meta["rows"], meta["cols"])
	if err := loadConnections(ctx, db, m); err != nil {
		return nil, fmt.Errorf("load connections: %w", err)
	}

	d := memdict.New(m)
	d.SetContextIDs(meta["bos"], meta["eos"])
	if err := loadEntries(ctx, db, d); err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	return d, nil
}

func loadMeta(ctx context.Context, db *sql.DB) (map[string]int, error) {
	rows, err := db.QueryContext(ctx, `SELECT key, value FROM meta`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meta := make(map[string]int)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("meta %s=%q: %w", k, v, internalerr.ErrInvalidInput)
		}
		meta[k] = n
	}
	return meta, rows.Err()
}

func loadConnections(ctx context.Context, db *sql.DB, m memdict.Matrix) error {
	rows, err := db.QueryContext(ctx, `SELECT right_id, left_id, cost FROM connections`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var right, left, cost int
		if err := rows.Scan(&right, &left, &cost); err != nil {
			return err
		}
		m.Set(right, left, cost)
	}
	return rows.Err()
}

func loadEntries(ctx context.Context, db *sql.DB, d *memdict.Dict) error {
	rows, err := db.QueryContext(ctx, `
SELECT id, surface, left_id, right_id, cost, pos, infl_type, infl_form, base_form, reading, phonetic
FROM entries ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var e dict.Entry
		if err := rows.Scan(&id, &e.Surface, &e.LeftID, &e.RightID, &e.Cost,
			&e.POS, &e.InflType, &e.InflForm, &e.BaseForm, &e.Reading, &e.Phonetic); err != nil {
			return err
		}
		if got := d.Add(e); got != id {
			return internalerr.Internalf("entry %d loaded as %d", id, got)
		}
	}
	return rows.Err()
}
