package core

import "sort"

// Row is an ordered tuple of Values whose length equals the column count
// of its Table. Rows carry no identity beyond their position in the
// Table's row vector; that position is the row id.
type Row []Value

// ResultField is one (qualified-name, value) pair in a result row. Using
// an ordered slice rather than a map preserves projection/column order,
// which a string-keyed map cannot guarantee.
type ResultField struct {
	Name  string
	Value Value
}

// ResultRow is a materialized, ordered copy of a row as returned to
// callers — never a borrow into the Table's storage.
type ResultRow []ResultField

// Get returns the value for the given (possibly qualified) name and
// whether it was found.
func (r ResultRow) Get(name string) (Value, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Table is a named, schema-bearing, row-oriented collection. It owns its
// columns, rows, and indexes exclusively.
type Table struct {
	Name           string
	Columns        []Column
	PrimaryKey     string // column name, or "" if none
	UniqueColumns  []string
	rows           []Row
	colPos         map[string]int   // column name -> position
	indexes        map[string]*Index // constrained column name -> Index
	constrainedSeq []string          // constrained columns, in declaration order
}

// NewTable constructs a Table, validating column uniqueness and that the
// primary key and unique columns reference real columns. An Index is
// initialized for the primary key and for every unique column.
func NewTable(name string, columns []Column, primaryKey string, uniqueColumns []string) (*Table, error) {
	colPos := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := colPos[c.Name]; dup {
			return nil, newError(KindSchemaMismatch, name, "duplicate column name %q", c.Name)
		}
		colPos[c.Name] = i
	}

	if primaryKey != "" {
		if _, ok := colPos[primaryKey]; !ok {
			return nil, errUnknownColumn(primaryKey)
		}
	}

	constrained := map[string]bool{}
	var seq []string
	if primaryKey != "" {
		constrained[primaryKey] = true
		seq = append(seq, primaryKey)
	}
	for _, c := range uniqueColumns {
		if _, ok := colPos[c]; !ok {
			return nil, errUnknownColumn(c)
		}
		if !constrained[c] {
			constrained[c] = true
			seq = append(seq, c)
		}
	}

	indexes := make(map[string]*Index, len(seq))
	for _, c := range seq {
		indexes[c] = NewIndex(true)
	}

	return &Table{
		Name:           name,
		Columns:        columns,
		PrimaryKey:     primaryKey,
		UniqueColumns:  uniqueColumns,
		rows:           nil,
		colPos:         colPos,
		indexes:        indexes,
		constrainedSeq: seq,
	}, nil
}

// ColumnCount returns the number of declared columns.
func (t *Table) ColumnCount() int { return len(t.Columns) }

// RowCount returns the current number of rows.
func (t *Table) RowCount() int { return len(t.rows) }

func (t *Table) position(name string) (int, bool) {
	p, ok := t.colPos[name]
	return p, ok
}

func (t *Table) isConstrained(name string) bool {
	_, ok := t.indexes[name]
	return ok
}

// Insert appends a new row, enforcing the SchemaMismatch and
// UniqueViolation checks of the data model before any mutation takes
// place, so that a failed insert leaves the Table unchanged.
func (t *Table) Insert(values []Value) (int, error) {
	if len(values) != len(t.Columns) {
		return -1, errSchemaMismatch(t.Name, len(t.Columns), len(values))
	}

	for _, c := range t.constrainedSeq {
		p := t.colPos[c]
		v := values[p]
		if v.IsNull() {
			continue
		}
		if ids := t.indexes[c].Lookup(v); len(ids) > 0 {
			return -1, errUniqueViolation(c, v)
		}
	}

	rowID := len(t.rows)
	t.rows = append(t.rows, append(Row(nil), values...))

	for _, c := range t.constrainedSeq {
		p := t.colPos[c]
		v := values[p]
		if !v.IsNull() {
			_ = t.indexes[c].Insert(c, v, rowID)
		}
	}
	return rowID, nil
}

// candidateRowIDs computes the row-id set matching an equality predicate
// map, using constrained-column indexes where available and falling back
// to a full scan for the rest. A nil/empty predicate matches every row.
func (t *Table) candidateRowIDs(where map[string]Value) ([]int, error) {
	if len(where) == 0 {
		all := make([]int, len(t.rows))
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	for name := range where {
		if _, ok := t.colPos[name]; !ok {
			return nil, errUnknownColumn(name)
		}
	}

	var indexed []string
	var scanned []string
	for name := range where {
		// The Index holds no Null entries, so a Null predicate is scanned.
		if t.isConstrained(name) && !where[name].IsNull() {
			indexed = append(indexed, name)
		} else {
			scanned = append(scanned, name)
		}
	}
	sort.Strings(indexed)
	sort.Strings(scanned)

	var candidates []int
	if len(indexed) == 0 {
		candidates = make([]int, len(t.rows))
		for i := range candidates {
			candidates[i] = i
		}
	} else {
		sets := make([][]int, len(indexed))
		for i, name := range indexed {
			sets[i] = t.indexes[name].Lookup(where[name])
		}
		sort.Slice(sets, func(i, j int) bool { return len(sets[i]) < len(sets[j]) })
		candidates = intersectSorted(sets)
	}

	for _, name := range scanned {
		p := t.colPos[name]
		want := where[name]
		filtered := candidates[:0:0]
		for _, id := range candidates {
			if t.rows[id][p].Equal(want) {
				filtered = append(filtered, id)
			}
		}
		candidates = filtered
	}

	return candidates, nil
}

// intersectSorted intersects row-id sets, smallest first, preserving
// ascending order in the result.
func intersectSorted(sets [][]int) []int {
	if len(sets) == 0 {
		return nil
	}
	present := map[int]int{}
	for _, id := range sets[0] {
		present[id] = 1
	}
	for _, set := range sets[1:] {
		next := map[int]int{}
		for _, id := range set {
			if present[id] > 0 {
				next[id] = present[id] + 1
			}
		}
		present = next
	}
	need := len(sets)
	var out []int
	for id, count := range present {
		if count == need {
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}

// materialize copies row rowID into a ResultRow, projected to columns if
// given (order preserved), qualified by table name if qualify is set.
func (t *Table) materialize(rowID int, columns []string, qualify bool) (ResultRow, error) {
	names := columns
	if len(names) == 0 {
		names = make([]string, len(t.Columns))
		for i, c := range t.Columns {
			names[i] = c.Name
		}
	}
	out := make(ResultRow, 0, len(names))
	for _, name := range names {
		p, ok := t.colPos[name]
		if !ok {
			return nil, errUnknownColumn(name)
		}
		key := name
		if qualify {
			key = t.Name + "." + name
		}
		out = append(out, ResultField{Name: key, Value: t.rows[rowID][p]})
	}
	return out, nil
}

// Select returns rows matching the equality conjunction where (nil
// matches all), projected to columns (nil/empty means all columns), in
// ascending row-id order.
func (t *Table) Select(columns []string, where map[string]Value) ([]ResultRow, error) {
	ids, err := t.candidateRowIDs(where)
	if err != nil {
		return nil, err
	}
	if len(columns) > 0 {
		for _, c := range columns {
			if _, ok := t.colPos[c]; !ok {
				return nil, errUnknownColumn(c)
			}
		}
	}
	out := make([]ResultRow, 0, len(ids))
	for _, id := range ids {
		rr, err := t.materialize(id, columns, false)
		if err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, nil
}

// Update applies set_values to every row matching where, validating all
// constrained-column uniqueness up front so that a failure leaves the
// Table byte-identical to its pre-call state. Returns the count of
// updated rows.
func (t *Table) Update(setValues map[string]Value, where map[string]Value) (int, error) {
	for name := range setValues {
		if _, ok := t.colPos[name]; !ok {
			return 0, errUnknownColumn(name)
		}
	}

	ids, err := t.candidateRowIDs(where)
	if err != nil {
		return 0, err
	}

	for _, c := range t.constrainedSeq {
		newVal, touched := setValues[c]
		if !touched {
			continue
		}
		if newVal.IsNull() {
			continue
		}
		if len(ids) > 1 {
			// Multiple rows would collide on the same non-Null value.
			return 0, errUniqueViolation(c, newVal)
		}
		p := t.colPos[c]
		for _, id := range ids {
			old := t.rows[id][p]
			if old.Equal(newVal) {
				continue
			}
			if existing := t.indexes[c].Lookup(newVal); len(existing) > 0 {
				outside := false
				for _, eid := range existing {
					if eid != id {
						outside = true
						break
					}
				}
				if outside {
					return 0, errUniqueViolation(c, newVal)
				}
			}
		}
	}

	for _, id := range ids {
		for name, v := range setValues {
			p := t.colPos[name]
			old := t.rows[id][p]
			constrained := t.isConstrained(name)
			if constrained && !old.IsNull() {
				t.indexes[name].Remove(old, id)
			}
			t.rows[id][p] = v
			if constrained && !v.IsNull() {
				_ = t.indexes[name].Insert(name, v, id)
			}
		}
	}

	return len(ids), nil
}

// Delete removes every row matching where in descending row-id order, so
// that the ids of rows still waiting to be removed never shift. After each
// removal, index entries for the surviving rows above the removed id are
// decremented to their new positions. Returns the count of removed rows.
func (t *Table) Delete(where map[string]Value) (int, error) {
	ids, err := t.candidateRowIDs(where)
	if err != nil {
		return 0, err
	}

	sort.Sort(sort.Reverse(sort.IntSlice(ids)))

	for _, id := range ids {
		for _, c := range t.constrainedSeq {
			p := t.colPos[c]
			v := t.rows[id][p]
			if !v.IsNull() {
				t.indexes[c].Remove(v, id)
			}
		}
		t.rows = append(t.rows[:id], t.rows[id+1:]...)
		for _, idx := range t.indexes {
			for _, rowIDs := range idx.entries {
				for j, rid := range rowIDs {
					if rid > id {
						rowIDs[j] = rid - 1
					}
				}
			}
		}
	}

	return len(ids), nil
}

// AllRows returns a defensive copy of the row vector in row-id order (a
// row's position in the result is its row id), used by Database.Snapshot
// for save_to_file.
func (t *Table) AllRows() []Row {
	out := make([]Row, len(t.rows))
	for i, r := range t.rows {
		out[i] = append(Row(nil), r...)
	}
	return out
}

// ValueAt returns the Value of row rowID at the named column.
func (t *Table) ValueAt(rowID int, column string) (Value, bool) {
	p, ok := t.colPos[column]
	if !ok {
		return Value{}, false
	}
	return t.rows[rowID][p], true
}

// IndexedLookup exposes the Index for column, if one exists, for use by
// inner_join's build phase.
func (t *Table) IndexedLookup(column string) (*Index, bool) {
	idx, ok := t.indexes[column]
	return idx, ok
}
