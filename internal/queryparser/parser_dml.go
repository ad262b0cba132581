package queryparser

import "josedb/internal/core"

// parseInsert parses: INSERT INTO name VALUES ( literal , ... )
func (p *parser) parseInsert() (*Command, error) {
	if err := p.expectKeyword("INSERT"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("INTO"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("VALUES"); err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}

	var values []core.Value
	for {
		v, err := p.expectLiteral()
		if err != nil {
			return nil, err
		}
		values = append(values, v)

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

	return &Command{Kind: Insert, TableName: name, Values: values}, nil
}

// parseUpdate parses: UPDATE name SET col = literal [, ...] [WHERE colref = literal [AND ...]]
func (p *parser) parseUpdate() (*Command, error) {
	if err := p.expectKeyword("UPDATE"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("SET"); err != nil {
		return nil, err
	}

	var assignments []Assignment
	for {
		col, err := p.expectColRef()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol("="); err != nil {
			return nil, err
		}
		v, err := p.expectLiteral()
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, Assignment{Column: col, Value: v})

		if p.cur.kind == tokSymbol && p.cur.text == "," {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	where, err := p.parseOptionalWhere()
	if err != nil {
		return nil, err
	}

	return &Command{Kind: Update, From: name, SetValues: assignments, Where: where}, nil
}

// parseDelete parses: DELETE FROM name [WHERE colref = literal [AND ...]]
func (p *parser) parseDelete() (*Command, error) {
	if err := p.expectKeyword("DELETE"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	where, err := p.parseOptionalWhere()
	if err != nil {
		return nil, err
	}

	return &Command{Kind: Delete, From: name, Where: where}, nil
}

// parseOptionalWhere parses an optional `WHERE colref = literal [AND ...]`
// clause; a missing WHERE means "match all", per the grammar. The grammar
// does not accept parentheses or OR, only a flat AND-conjunction.
func (p *parser) parseOptionalWhere() ([]Predicate, error) {
	if !p.peekKeyword("WHERE") {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var preds []Predicate
	for {
		col, err := p.expectColRef()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol("="); err != nil {
			return nil, err
		}
		v, err := p.expectLiteral()
		if err != nil {
			return nil, err
		}
		preds = append(preds, Predicate{Column: col, Value: v})

		if p.peekKeyword("AND") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return preds, nil
}
