// Package engine implements the Executor: the dispatcher that feeds a
// parsed Command to the Database/Table operations, formats results, and
// auto-persists after mutations. It is the embedding contract's single
// concrete implementation (open/execute/list-tables/describe/close).
package engine

import (
	"os"

	"josedb/internal/core"
	"josedb/internal/queryparser"
	"josedb/internal/storage"
)

// Result is what Execute returns: a short human-readable status string for
// a non-SELECT Command, or the result rows for a SELECT.
type Result struct {
	// Status is populated for CREATE_TABLE/DROP_TABLE/INSERT/UPDATE/DELETE.
	Status string

	// Rows is populated for SELECT, in row order; nil for every other Kind.
	Rows []core.ResultRow
}

// Executor holds a Database and, optionally, the file path it was opened
// from. It is single-threaded: the caller must not invoke Execute
// concurrently from more than one goroutine.
type Executor struct {
	db   *core.Database
	path string // "" if opened in-memory only
}

// Open constructs an Executor. If path is non-empty and the file exists, it
// is loaded; if the file does not exist, Open starts from an empty Database
// (the file is created on the first auto-save). An empty path opens a
// transient, never-persisted in-memory Database.
func Open(path string) (*Executor, error) {
	if path == "" {
		return &Executor{db: core.NewDatabase()}, nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &Executor{db: core.NewDatabase(), path: path}, nil
		}
		return nil, core.WrapIOError(err)
	}

	db, err := storage.Load(path)
	if err != nil {
		return nil, err
	}
	return &Executor{db: db, path: path}, nil
}

// Execute parses text and dispatches it. Mutating commands that complete
// without error trigger an auto-save to the configured path, if any; a
// save failure is surfaced as an IOError without rolling back the
// in-memory mutation (see design notes).
func (e *Executor) Execute(text string) (*Result, error) {
	cmd, err := queryparser.Parse(text)
	if err != nil {
		return nil, err
	}

	result, mutated, err := e.dispatch(cmd)
	if err != nil {
		return nil, err
	}

	if mutated && e.path != "" {
		if err := storage.Save(e.db, e.path); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (e *Executor) dispatch(cmd *queryparser.Command) (*Result, bool, error) {
	switch cmd.Kind {
	case queryparser.CreateTable:
		return e.execCreateTable(cmd)
	case queryparser.DropTable:
		return e.execDropTable(cmd)
	case queryparser.Insert:
		return e.execInsert(cmd)
	case queryparser.Select:
		r, err := e.execSelect(cmd)
		return r, false, err
	case queryparser.Update:
		return e.execUpdate(cmd)
	case queryparser.Delete:
		return e.execDelete(cmd)
	default:
		return nil, false, &core.Error{Kind: core.KindParseError, Message: "unrecognized command kind"}
	}
}

// ListTableNames exposes the Database's table names for the shell.
func (e *Executor) ListTableNames() []string {
	return e.db.ListTableNames()
}

// Describe exposes one table's schema for the shell: its columns, primary
// key (empty if none), and unique-constrained column names.
func (e *Executor) Describe(name string) ([]core.Column, string, []string, error) {
	t, err := e.db.GetTable(name)
	if err != nil {
		return nil, "", nil, err
	}
	return append([]core.Column(nil), t.Columns...), t.PrimaryKey, append([]string(nil), t.UniqueColumns...), nil
}

// Close saves the Database to the configured path. It is idempotent: each
// further call writes the same snapshot again, and on an Executor with no
// configured path it is a no-op.
func (e *Executor) Close() error {
	if e.path == "" {
		return nil
	}
	return storage.Save(e.db, e.path)
}
