package queryparser

import (
	"strings"

	"josedb/internal/core"
)

// parseCreateTable parses:
//
//	CREATE TABLE name ( col type [PRIMARY KEY] [UNIQUE] , ... )
func (p *parser) parseCreateTable() (*Command, error) {
	if err := p.expectKeyword("CREATE"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}

	var (
		columns       []ColumnDef
		primaryKey    string
		uniqueColumns []string
	)
	for {
		colName, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		colType, err := p.parseColumnType()
		if err != nil {
			return nil, err
		}
		def := ColumnDef{Name: colName, Type: colType}

		for moreModifiers := true; moreModifiers; {
			switch {
			case p.peekKeyword("PRIMARY"):
				if err := p.advance(); err != nil {
					return nil, err
				}
				if err := p.expectKeyword("KEY"); err != nil {
					return nil, err
				}
				def.PrimaryKey = true
				primaryKey = colName
			case p.peekKeyword("UNIQUE"):
				if err := p.advance(); err != nil {
					return nil, err
				}
				def.Unique = true
				uniqueColumns = append(uniqueColumns, colName)
			default:
				moreModifiers = false
			}
		}
		columns = append(columns, def)

		if p.cur.kind == tokSymbol && p.cur.text == "," {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}

	return &Command{
		Kind:          CreateTable,
		TableName:     name,
		Columns:       columns,
		PrimaryKey:    primaryKey,
		UniqueColumns: uniqueColumns,
	}, nil
}

// parseColumnType consumes one of INTEGER/REAL/TEXT/BOOLEAN, case
// insensitively.
func (p *parser) parseColumnType() (core.ColumnType, error) {
	if p.cur.kind != tokIdent {
		return "", newParseError("expected a column type, got %q", p.cur.text)
	}
	switch strings.ToUpper(p.cur.text) {
	case "INTEGER":
		return core.TypeInteger, p.advance()
	case "REAL":
		return core.TypeReal, p.advance()
	case "TEXT":
		return core.TypeText, p.advance()
	case "BOOLEAN":
		return core.TypeBoolean, p.advance()
	default:
		return "", newParseError("unknown column type %q", p.cur.text)
	}
}

// parseDropTable parses: DROP TABLE name
func (p *parser) parseDropTable() (*Command, error) {
	if err := p.expectKeyword("DROP"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	return &Command{Kind: DropTable, TableName: name}, nil
}
