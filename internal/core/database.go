package core

import "sort"

// Database is a name->Table mapping. It exclusively owns its Tables; table
// names are case-sensitive and unique within a Database.
type Database struct {
	tables map[string]*Table
}

// NewDatabase constructs an empty Database.
func NewDatabase() *Database {
	return &Database{tables: make(map[string]*Table)}
}

// CreateTable adds a new Table, failing TableExists if the name clashes.
func (d *Database) CreateTable(name string, columns []Column, primaryKey string, uniqueColumns []string) (*Table, error) {
	if _, exists := d.tables[name]; exists {
		return nil, errTableExists(name)
	}
	t, err := NewTable(name, columns, primaryKey, uniqueColumns)
	if err != nil {
		return nil, err
	}
	d.tables[name] = t
	return t, nil
}

// GetTable returns the named Table, failing UnknownTable if absent.
func (d *Database) GetTable(name string) (*Table, error) {
	t, ok := d.tables[name]
	if !ok {
		return nil, errUnknownTable(name)
	}
	return t, nil
}

// DropTable removes the named Table, failing UnknownTable if absent.
func (d *Database) DropTable(name string) error {
	if _, ok := d.tables[name]; !ok {
		return errUnknownTable(name)
	}
	delete(d.tables, name)
	return nil
}

// ListTableNames returns every table name, sorted for deterministic output.
func (d *Database) ListTableNames() []string {
	names := make([]string, 0, len(d.tables))
	for name := range d.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TableSnapshot is the data needed to reconstruct a Table: its schema plus
// every row, used by save/load and by tests asserting round-trip equality.
type TableSnapshot struct {
	Name          string
	Columns       []Column
	PrimaryKey    string
	UniqueColumns []string
	Rows          []Row
}

// Snapshot materializes every table's schema and rows, in table-name order,
// for serialization by internal/storage.
func (d *Database) Snapshot() []TableSnapshot {
	names := d.ListTableNames()
	out := make([]TableSnapshot, 0, len(names))
	for _, name := range names {
		t := d.tables[name]
		out = append(out, TableSnapshot{
			Name:          t.Name,
			Columns:       append([]Column(nil), t.Columns...),
			PrimaryKey:    t.PrimaryKey,
			UniqueColumns: append([]string(nil), t.UniqueColumns...),
			Rows:          t.AllRows(),
		})
	}
	return out
}

// Restore rebuilds a Database from a slice of TableSnapshots by constructing
// each Table (which initializes empty Indexes) and inserting its rows one by
// one through Insert, so Indexes are rebuilt and constraints re-verified.
// If any table or row fails to load, Restore returns a nil Database and a
// CorruptDatabase error.
func Restore(snapshots []TableSnapshot) (*Database, error) {
	d := NewDatabase()
	for _, snap := range snapshots {
		t, err := d.CreateTable(snap.Name, snap.Columns, snap.PrimaryKey, snap.UniqueColumns)
		if err != nil {
			return nil, errCorruptDatabase("table %q: %s", snap.Name, err.Error())
		}
		for i, row := range snap.Rows {
			if _, err := t.Insert(row); err != nil {
				return nil, errCorruptDatabase("table %q row %d: %s", snap.Name, i, err.Error())
			}
		}
	}
	return d, nil
}
