package core

// Index is a hash multimap from a column Value to the set of row ids
// holding that Value, optionally constrained to at most one row per
// Value. Null Values are never inserted: lookups on Null return the
// empty set, and multiple Null entries never conflict with a unique
// constraint.
type Index struct {
	unique  bool
	entries map[indexKey][]int
}

// indexKey is a copy of a Value's (kind, content) fields, used as the Go
// map key of the index entries.
type indexKey struct {
	kind ValueKind
	i    int64
	r    float64
	s    string
	b    bool
}

func keyOf(v Value) indexKey {
	return indexKey{kind: v.kind, i: v.i, r: v.r, s: v.s, b: v.b}
}

// NewIndex creates an empty Index. unique enforces at most one row id per
// non-Null Value.
func NewIndex(unique bool) *Index {
	return &Index{unique: unique, entries: make(map[indexKey][]int)}
}

// Insert adds (v, rowID) to the index. It fails with a UniqueViolation if
// the index is unique, v is non-Null, and v is already mapped to any row
// (including rowID itself).
func (idx *Index) Insert(column string, v Value, rowID int) error {
	if v.IsNull() {
		return nil
	}
	k := keyOf(v)
	if idx.unique {
		if existing := idx.entries[k]; len(existing) > 0 {
			return errUniqueViolation(column, v)
		}
	}
	idx.entries[k] = append(idx.entries[k], rowID)
	return nil
}

// Lookup returns the set of row ids mapped from v, or nil if none. The
// returned slice must be treated as read-only by the caller.
func (idx *Index) Lookup(v Value) []int {
	if v.IsNull() {
		return nil
	}
	return idx.entries[keyOf(v)]
}

// Remove deletes the (v, rowID) entry, pruning the key if it becomes
// empty. It is a no-op if the entry is absent or v is Null.
func (idx *Index) Remove(v Value, rowID int) {
	if v.IsNull() {
		return
	}
	k := keyOf(v)
	ids := idx.entries[k]
	for i, id := range ids {
		if id == rowID {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(idx.entries, k)
	} else {
		idx.entries[k] = ids
	}
}

// Rebuild discards all prior state and re-inserts the given (value, rowID)
// pairs in order, failing with a UniqueViolation if the input itself
// violates uniqueness.
func (idx *Index) Rebuild(column string, pairs []IndexPair) error {
	fresh := make(map[indexKey][]int)
	old := idx.entries
	idx.entries = fresh
	for _, p := range pairs {
		if err := idx.Insert(column, p.Value, p.RowID); err != nil {
			idx.entries = old
			return err
		}
	}
	return nil
}

// IndexPair is a (value, row id) pair used by Rebuild.
type IndexPair struct {
	Value Value
	RowID int
}
