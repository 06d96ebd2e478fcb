package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/strata/internal/layerdoc"
)

func testDocument() *layerdoc.Document {
	return &layerdoc.Document{Layers: []layerdoc.Layer{
		{
			Name:       "defaults",
			Properties: map[string]any{"host": "localhost", "port": 8080},
		},
		{
			Name:       "site",
			Parent:     "defaults",
			Properties: map[string]any{"host": "example.com"},
			Deleted:    []string{"port"},
			Frozen:     true,
		},
	}}
}

func TestOpen_CreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.db")

	w, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer w.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.db")

	for i := 0; i < 2; i++ {
		w, err := Open(path)
		if err != nil {
			t.Fatalf("Open() #%d failed: %v", i+1, err)
		}
		w.Close()
	}
}

func TestWriteDocument_ResolvedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.db")

	if err := Write(context.Background(), path, testDocument()); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	w, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer w.Close()

	var frozen int
	var parent string
	err = w.db.QueryRow(`SELECT parent, frozen FROM layers WHERE name = 'site'`).Scan(&parent, &frozen)
	if err != nil {
		t.Fatalf("query layer: %v", err)
	}
	if parent != "defaults" || frozen != 1 {
		t.Errorf("layer row = (%q, %d), want (\"defaults\", 1)", parent, frozen)
	}

	// site's resolved view: own host, inherited port tombstoned away.
	rows := map[string]string{}
	rs, err := w.db.Query(`SELECT name, value FROM entries WHERE layer = 'site'`)
	if err != nil {
		t.Fatalf("query entries: %v", err)
	}
	defer rs.Close()
	for rs.Next() {
		var name, value string
		if err := rs.Scan(&name, &value); err != nil {
			t.Fatalf("scan: %v", err)
		}
		rows[name] = value
	}
	if err := rs.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("site entries = %v, want exactly one", rows)
	}
	if rows["host"] != `"example.com"` {
		t.Errorf("host = %s, want %q", rows["host"], `"example.com"`)
	}

	// defaults keeps both of its own entries.
	var count int
	if err := w.db.QueryRow(`SELECT COUNT(*) FROM entries WHERE layer = 'defaults'`).Scan(&count); err != nil {
		t.Fatalf("count defaults entries: %v", err)
	}
	if count != 2 {
		t.Errorf("defaults entry count = %d, want 2", count)
	}
}

func TestWriteDocument_ReexportReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.db")
	ctx := context.Background()

	if err := Write(ctx, path, testDocument()); err != nil {
		t.Fatalf("first Write() failed: %v", err)
	}

	smaller := &layerdoc.Document{Layers: []layerdoc.Layer{
		{Name: "site", Properties: map[string]any{"only": true}},
	}}
	if err := Write(ctx, path, smaller); err != nil {
		t.Fatalf("second Write() failed: %v", err)
	}

	w, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer w.Close()

	var count int
	if err := w.db.QueryRow(`SELECT COUNT(*) FROM entries WHERE layer = 'site'`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("site entry count after re-export = %d, want 1", count)
	}
}

func TestWriteDocument_InvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.db")
	bad := &layerdoc.Document{Layers: []layerdoc.Layer{{Name: "a", Parent: "ghost"}}}

	if err := Write(context.Background(), path, bad); err == nil {
		t.Fatal("Write() succeeded for document with unknown parent")
	}
}
