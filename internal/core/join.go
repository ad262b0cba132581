package core

// InnerJoin performs a hash equi-join between t (the left/outer table) and
// other (the right/inner table) on leftCol = rightCol. Build phase uses
// other's Index on rightCol if one exists; otherwise a transient map is
// built by scanning other. Rows with Null in the join column are excluded
// from both phases. Result order is stable: left rows in row-id order,
// and for each, right matches in row-id order.
// InnerJoin returns every joined row fully qualified (all columns of both
// tables), with no where-filtering or projection applied. Callers apply
// ApplyJoinWhere and then ProjectJoinRows in that order, matching the
// join -> filter -> project pipeline of the data model.
func (t *Table) InnerJoin(other *Table, leftCol, rightCol string) ([]ResultRow, error) {
	if _, ok := t.position(leftCol); !ok {
		return nil, errUnknownColumn(leftCol)
	}
	if _, ok := other.position(rightCol); !ok {
		return nil, errUnknownColumn(rightCol)
	}

	build := t.buildRightMap(other, rightCol)

	var out []ResultRow
	for leftID := 0; leftID < len(t.rows); leftID++ {
		lv, _ := t.ValueAt(leftID, leftCol)
		if lv.IsNull() {
			continue
		}
		rightIDs := build[keyOf(lv)]
		for _, rightID := range rightIDs {
			row, err := joinRow(t, leftID, other, rightID)
			if err != nil {
				return nil, err
			}
			out = append(out, row)
		}
	}
	return out, nil
}

// buildRightMap returns value -> right row ids, using other's existing
// Index on rightCol when present, else scanning other directly.
func (t *Table) buildRightMap(other *Table, rightCol string) map[indexKey][]int {
	if idx, ok := other.IndexedLookup(rightCol); ok {
		m := make(map[indexKey][]int, len(idx.entries))
		for k, ids := range idx.entries {
			m[k] = append([]int(nil), ids...)
		}
		return m
	}
	p, _ := other.position(rightCol)
	m := make(map[indexKey][]int)
	for id, row := range other.rows {
		v := row[p]
		if v.IsNull() {
			continue
		}
		k := keyOf(v)
		m[k] = append(m[k], id)
	}
	return m
}

// joinRow materializes one joined result row, qualified by table name for
// every column of both tables.
func joinRow(left *Table, leftID int, right *Table, rightID int) (ResultRow, error) {
	lr, err := left.materialize(leftID, nil, true)
	if err != nil {
		return nil, err
	}
	rr, err := right.materialize(rightID, nil, true)
	if err != nil {
		return nil, err
	}
	return append(append(ResultRow(nil), lr...), rr...), nil
}

// ProjectJoinRows projects already-joined, already-filtered rows down to
// selectColumns (qualified or bare, resolved against left/right), or
// returns rows unchanged if selectColumns is empty.
func ProjectJoinRows(rows []ResultRow, selectColumns []string, left, right *Table) ([]ResultRow, error) {
	if len(selectColumns) == 0 {
		return rows, nil
	}
	names := make([]string, len(selectColumns))
	for i, ref := range selectColumns {
		name, err := resolveColumnRef(ref, left, right)
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	out := make([]ResultRow, 0, len(rows))
	for _, row := range rows {
		projected := make(ResultRow, 0, len(names))
		for i, name := range names {
			v, ok := row.Get(name)
			if !ok {
				return nil, errUnknownColumn(selectColumns[i])
			}
			projected = append(projected, ResultField{Name: name, Value: v})
		}
		out = append(out, projected)
	}
	return out, nil
}

// resolveColumnRef resolves a colref (qualified "table.col" or bare "col")
// against the left and right tables of a join, qualifying the result.
// A bare name owned by both sides is AmbiguousColumn; owned by neither is
// UnknownColumn.
func resolveColumnRef(ref string, left, right *Table) (string, error) {
	if table, col, ok := splitQualified(ref); ok {
		switch table {
		case left.Name:
			if _, ok := left.position(col); !ok {
				return "", errUnknownColumn(ref)
			}
			return left.Name + "." + col, nil
		case right.Name:
			if _, ok := right.position(col); !ok {
				return "", errUnknownColumn(ref)
			}
			return right.Name + "." + col, nil
		default:
			return "", errUnknownColumn(ref)
		}
	}

	_, lok := left.position(ref)
	_, rok := right.position(ref)
	switch {
	case lok && rok:
		return "", errAmbiguousColumn(ref)
	case lok:
		return left.Name + "." + ref, nil
	case rok:
		return right.Name + "." + ref, nil
	default:
		return "", errUnknownColumn(ref)
	}
}

// splitQualified splits "table.col" into its two parts. ok is false for a
// bare identifier.
func splitQualified(ref string) (table, col string, ok bool) {
	for i := 0; i < len(ref); i++ {
		if ref[i] == '.' {
			return ref[:i], ref[i+1:], true
		}
	}
	return "", "", false
}

// ApplyJoinWhere filters rows by resolving each where key (qualified or
// bare) against left/right and keeping only rows whose resolved value
// equals the predicate's value.
func ApplyJoinWhere(rows []ResultRow, where map[string]Value, left, right *Table) ([]ResultRow, error) {
	if len(where) == 0 {
		return rows, nil
	}
	resolved := make(map[string]Value, len(where))
	for ref, v := range where {
		name, err := resolveColumnRef(ref, left, right)
		if err != nil {
			return nil, err
		}
		resolved[name] = v
	}
	out := rows[:0:0]
	for _, row := range rows {
		match := true
		for name, want := range resolved {
			got, ok := row.Get(name)
			if !ok || !got.Equal(want) {
				match = false
				break
			}
		}
		if match {
			out = append(out, row)
		}
	}
	return out, nil
}
