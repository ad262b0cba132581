package engine

import (
	"josedb/internal/core"
	"josedb/internal/queryparser"
)

func (e *Executor) execSelect(cmd *queryparser.Command) (*Result, error) {
	if cmd.Join != nil {
		return e.execJoinSelect(cmd)
	}

	t, err := e.db.GetTable(cmd.From)
	if err != nil {
		return nil, err
	}

	where, err := wherePredicates(cmd.Where, cmd.From)
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(cmd.SelectColumns))
	for i, c := range cmd.SelectColumns {
		col, err := resolveBareColumn(c, cmd.From)
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}

	rows, err := t.Select(columns, where)
	if err != nil {
		return nil, err
	}
	return &Result{Rows: rows}, nil
}

func (e *Executor) execJoinSelect(cmd *queryparser.Command) (*Result, error) {
	left, err := e.db.GetTable(cmd.From)
	if err != nil {
		return nil, err
	}
	right, err := e.db.GetTable(cmd.Join.Table)
	if err != nil {
		return nil, err
	}

	leftCol, err := joinSideColumn(cmd.Join.LeftCol, left.Name, right.Name)
	if err != nil {
		return nil, err
	}
	rightCol, err := joinSideColumn(cmd.Join.RightCol, left.Name, right.Name)
	if err != nil {
		return nil, err
	}

	rows, err := left.InnerJoin(right, leftCol, rightCol)
	if err != nil {
		return nil, err
	}

	where := make(map[string]core.Value, len(cmd.Where))
	for _, p := range cmd.Where {
		where[p.Column] = p.Value
	}
	rows, err = core.ApplyJoinWhere(rows, where, left, right)
	if err != nil {
		return nil, err
	}

	rows, err = core.ProjectJoinRows(rows, cmd.SelectColumns, left, right)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []core.ResultRow{}
	}
	return &Result{Rows: rows}, nil
}

// joinSideColumn resolves one side of a JOIN's ON clause: a qualified
// colref must name left or right, and a bare colref is assumed to belong
// to whichever side core.Table.InnerJoin is about to look it up on (the
// caller already knows which side this is for, since the ON columns are
// positional — left.LeftCol, right.RightCol — so this only validates the
// qualifier, if present, against one of the two known table names).
func joinSideColumn(ref, leftName, rightName string) (string, error) {
	for i := 0; i < len(ref); i++ {
		if ref[i] == '.' {
			table, col := ref[:i], ref[i+1:]
			if table != leftName && table != rightName {
				return "", &core.Error{Kind: core.KindUnknownColumn, Entity: ref, Message: "no such table in join"}
			}
			return col, nil
		}
	}
	return ref, nil
}
