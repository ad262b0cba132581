package engine

import (
	"fmt"

	"josedb/internal/core"
	"josedb/internal/queryparser"
)

func (e *Executor) execCreateTable(cmd *queryparser.Command) (*Result, bool, error) {
	columns := make([]core.Column, len(cmd.Columns))
	for i, c := range cmd.Columns {
		columns[i] = core.Column{Name: c.Name, Type: c.Type}
	}
	if _, err := e.db.CreateTable(cmd.TableName, columns, cmd.PrimaryKey, cmd.UniqueColumns); err != nil {
		return nil, false, err
	}
	return &Result{Status: fmt.Sprintf("table %q created", cmd.TableName)}, true, nil
}

func (e *Executor) execDropTable(cmd *queryparser.Command) (*Result, bool, error) {
	if err := e.db.DropTable(cmd.TableName); err != nil {
		return nil, false, err
	}
	return &Result{Status: fmt.Sprintf("table %q dropped", cmd.TableName)}, true, nil
}
