package storage

import (
	"fmt"

	"josedb/internal/core"
)

// toDocument converts the live Database into the wire DTO: columns as
// [name, type] pairs, and every row's Values as native JSON scalars
// (integer, real, string, boolean, null). Indexes are never serialized;
// they are rebuilt by Decode via core.Restore.
func toDocument(db *core.Database) documentFile {
	doc := documentFile{Tables: make(map[string]tableDocument)}
	for _, snap := range db.Snapshot() {
		td := tableDocument{
			Columns:       make([][2]string, len(snap.Columns)),
			UniqueColumns: snap.UniqueColumns,
			Rows:          make([][]any, len(snap.Rows)),
		}
		for i, c := range snap.Columns {
			td.Columns[i] = [2]string{c.Name, string(c.Type)}
		}
		if snap.PrimaryKey != "" {
			pk := snap.PrimaryKey
			td.PrimaryKey = &pk
		}
		for i, row := range snap.Rows {
			encoded := make([]any, len(row))
			for j, v := range row {
				encoded[j] = encodeValue(v)
			}
			td.Rows[i] = encoded
		}
		doc.Tables[snap.Name] = td
	}
	return doc
}

// fromDocument converts the wire DTO into core.TableSnapshots ready for
// core.Restore, decoding each row's native JSON scalars back into typed
// core.Values using the declared column types.
func fromDocument(doc documentFile) ([]core.TableSnapshot, error) {
	out := make([]core.TableSnapshot, 0, len(doc.Tables))
	for name, td := range doc.Tables {
		columns := make([]core.Column, len(td.Columns))
		for i, pair := range td.Columns {
			columns[i] = core.Column{Name: pair[0], Type: core.ColumnType(pair[1])}
		}
		primaryKey := ""
		if td.PrimaryKey != nil {
			primaryKey = *td.PrimaryKey
		}

		rows := make([]core.Row, len(td.Rows))
		for i, encoded := range td.Rows {
			if len(encoded) != len(columns) {
				return nil, wrapCorrupt(fmt.Errorf("table %q row %d: expected %d values, got %d",
					name, i, len(columns), len(encoded)))
			}
			row := make(core.Row, len(encoded))
			for j, raw := range encoded {
				v, err := decodeValue(raw, columns[j].Type)
				if err != nil {
					return nil, wrapCorrupt(fmt.Errorf("table %q row %d column %d: %w", name, i, j, err))
				}
				row[j] = v
			}
			rows[i] = row
		}

		out = append(out, core.TableSnapshot{
			Name:          name,
			Columns:       columns,
			PrimaryKey:    primaryKey,
			UniqueColumns: td.UniqueColumns,
			Rows:          rows,
		})
	}
	return out, nil
}

// encodeValue converts a core.Value to the native JSON scalar the document
// format stores it as: booleans/null are native JSON scalars, not 0/1.
func encodeValue(v core.Value) any {
	switch v.Kind() {
	case core.KindNull:
		return nil
	case core.KindInteger:
		return v.Integer()
	case core.KindReal:
		return v.Real()
	case core.KindText:
		return v.Text()
	case core.KindBoolean:
		return v.Boolean()
	default:
		return nil
	}
}

// decodeValue converts a decoded JSON scalar back into a core.Value.
// encoding/json decodes every JSON number as float64, losing the
// Integer/Real distinction for whole numbers (5 vs 5.0); the column's
// declared type (advisory, but known at decode time) disambiguates that
// case. A non-integral float64 always decodes as Real regardless of the
// declared type, since an Integer Value can never hold a fraction.
func decodeValue(raw any, declared core.ColumnType) (core.Value, error) {
	switch val := raw.(type) {
	case nil:
		return core.NullValue, nil
	case bool:
		return core.BooleanValue(val), nil
	case string:
		return core.TextValue(val), nil
	case float64:
		i := int64(val)
		if float64(i) != val {
			return core.RealValue(val), nil
		}
		if declared == core.TypeReal {
			return core.RealValue(val), nil
		}
		return core.IntegerValue(i), nil
	default:
		return core.Value{}, fmt.Errorf("unsupported literal type %T", raw)
	}
}
