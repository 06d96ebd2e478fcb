// Package snapshot exports resolved layer views into a SQLite file.
//
// This is CLI-side tooling around the property store, not store
// persistence: the store itself lives and dies in memory, and a snapshot
// is a one-way dump of the fully-resolved view of every layer at export
// time. Nothing reads a snapshot back into stores.
package snapshot

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/strata/internal/layerdoc"
)

//go:embed schema.sql
var schemaSQL string

// Writer owns a snapshot database handle.
type Writer struct {
	db *sql.DB
}

// Open creates or opens a snapshot database at the given path and
// applies the schema. Idempotent.
func Open(path string) (*Writer, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to snapshot database: %w", err)
	}

	// SQLite allows one writer; a snapshot has exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply snapshot schema: %w", err)
	}
	return &Writer{db: db}, nil
}

// Close closes the database handle.
func (w *Writer) Close() error {
	if w.db == nil {
		return nil
	}
	return w.db.Close()
}

// WriteDocument builds the document and writes every layer's fully
// resolved view in one transaction. Values are JSON-encoded; a value
// JSON cannot represent fails the whole export.
//
// Re-exporting a layer replaces its previous rows.
func (w *Writer) WriteDocument(ctx context.Context, doc *layerdoc.Document) error {
	stores, err := doc.Build()
	if err != nil {
		return fmt.Errorf("build document: %w", err)
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	for _, layer := range doc.Layers {
		store := stores[layer.Name]
		frozen := 0
		if store.Frozen() {
			frozen = 1
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO layers (name, parent, frozen)
			VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET parent = excluded.parent, frozen = excluded.frozen
		`, layer.Name, layer.Parent, frozen); err != nil {
			return fmt.Errorf("write layer %q: %w", layer.Name, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE layer = ?`, layer.Name); err != nil {
			return fmt.Errorf("clear entries of layer %q: %w", layer.Name, err)
		}

		for name, value := range store.All(true) {
			encoded, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("encode %s/%s: %w", layer.Name, name, err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO entries (layer, name, value)
				VALUES (?, ?, ?)
			`, layer.Name, name, string(encoded)); err != nil {
				return fmt.Errorf("write entry %s/%s: %w", layer.Name, name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Write is the one-shot form: open, export, close.
func Write(ctx context.Context, path string, doc *layerdoc.Document) error {
	w, err := Open(path)
	if err != nil {
		return err
	}
	defer w.Close()
	return w.WriteDocument(ctx, doc)
}
