package engine

import (
	"fmt"

	"josedb/internal/core"
	"josedb/internal/queryparser"
)

func (e *Executor) execInsert(cmd *queryparser.Command) (*Result, bool, error) {
	t, err := e.db.GetTable(cmd.TableName)
	if err != nil {
		return nil, false, err
	}
	if _, err := t.Insert(cmd.Values); err != nil {
		return nil, false, err
	}
	return &Result{Status: fmt.Sprintf("1 row inserted into %q", cmd.TableName)}, true, nil
}

func (e *Executor) execUpdate(cmd *queryparser.Command) (*Result, bool, error) {
	t, err := e.db.GetTable(cmd.From)
	if err != nil {
		return nil, false, err
	}

	setValues := make(map[string]core.Value, len(cmd.SetValues))
	for _, a := range cmd.SetValues {
		col, err := resolveBareColumn(a.Column, cmd.From)
		if err != nil {
			return nil, false, err
		}
		setValues[col] = a.Value
	}

	where, err := wherePredicates(cmd.Where, cmd.From)
	if err != nil {
		return nil, false, err
	}

	n, err := t.Update(setValues, where)
	if err != nil {
		return nil, false, err
	}
	return &Result{Status: fmt.Sprintf("%d row(s) updated", n)}, true, nil
}

func (e *Executor) execDelete(cmd *queryparser.Command) (*Result, bool, error) {
	t, err := e.db.GetTable(cmd.From)
	if err != nil {
		return nil, false, err
	}

	where, err := wherePredicates(cmd.Where, cmd.From)
	if err != nil {
		return nil, false, err
	}

	n, err := t.Delete(where)
	if err != nil {
		return nil, false, err
	}
	return &Result{Status: fmt.Sprintf("%d row(s) deleted", n)}, true, nil
}

// wherePredicates converts a flat []Predicate into the equality map the
// core Table operations expect, resolving each colref (qualified or bare)
// against the single table in scope.
func wherePredicates(preds []queryparser.Predicate, table string) (map[string]core.Value, error) {
	if len(preds) == 0 {
		return nil, nil
	}
	out := make(map[string]core.Value, len(preds))
	for _, p := range preds {
		col, err := resolveBareColumn(p.Column, table)
		if err != nil {
			return nil, err
		}
		out[col] = p.Value
	}
	return out, nil
}

// resolveBareColumn validates a colref against the single table in scope:
// a qualified "table.col" must name that table, and a bare "col" is
// returned unchanged. There is no second table in scope outside a JOIN, so
// a qualified ref naming any other table is UnknownColumn.
func resolveBareColumn(ref, table string) (string, error) {
	for i := 0; i < len(ref); i++ {
		if ref[i] == '.' {
			if ref[:i] != table {
				return "", &core.Error{Kind: core.KindUnknownColumn, Entity: ref, Message: "no such column"}
			}
			return ref[i+1:], nil
		}
	}
	return ref, nil
}
