// Package storage implements the on-disk persistence format for a
// core.Database: a single JSON document, written atomically via a
// temp-file-plus-rename so a concurrent reader never observes a truncated
// write.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"josedb/internal/core"
)

// documentFile is the top-level persistence document: one field, `tables`,
// mapping table name to a tableDocument. This intermediate DTO is decoupled
// from core.Database/core.Table on purpose, so the wire shape does not leak
// unexported fields or change shape just because the in-memory model does.
type documentFile struct {
	Tables map[string]tableDocument `json:"tables"`
}

type tableDocument struct {
	Columns       [][2]string `json:"columns"`
	PrimaryKey    *string     `json:"primary_key"`
	UniqueColumns []string    `json:"unique_columns"`
	Rows          [][]any     `json:"rows"`
}

// Save serializes db to path, writing to a sibling temporary file and
// renaming it into place so the write is atomic: a concurrent reader sees
// either the prior snapshot or the new one, never a partial write.
func Save(db *core.Database, path string) error {
	doc := toDocument(db)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return core.WrapIOError(fmt.Errorf("encode database: %w", err))
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return core.WrapIOError(fmt.Errorf("create temp file: %w", err))
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return core.WrapIOError(fmt.Errorf("write temp file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return core.WrapIOError(fmt.Errorf("flush temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return core.WrapIOError(fmt.Errorf("close temp file: %w", err))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return core.WrapIOError(fmt.Errorf("rename into place: %w", err))
	}
	return nil
}

// Load reads and decodes the database at path.
func Load(path string) (*core.Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapIOError(fmt.Errorf("read database file %q: %w", path, err))
	}
	return Decode(data)
}

// Decode parses the document format from raw bytes into a Database,
// rebuilding every constrained-column Index by replaying each row through
// Table.Insert. A missing or unknown top-level shape, or a replay that
// violates a constraint, fails CorruptDatabase. An empty file loads as an
// empty Database.
func Decode(data []byte) (*core.Database, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return core.NewDatabase(), nil
	}

	var doc documentFile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, wrapCorrupt(fmt.Errorf("decode database document: %w", err))
	}
	if doc.Tables == nil {
		return nil, wrapCorrupt(fmt.Errorf("missing top-level \"tables\" field"))
	}

	snapshots, err := fromDocument(doc)
	if err != nil {
		return nil, err
	}
	return core.Restore(snapshots)
}

func wrapCorrupt(err error) error {
	return &core.Error{Kind: core.KindCorruptDatabase, Message: err.Error(), Wrapped: err}
}
