package queryparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"josedb/internal/core"
)

func TestParseCreateTable(t *testing.T) {
	cmd, err := Parse("CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, age INTEGER UNIQUE)")
	require.NoError(t, err)
	assert.Equal(t, CreateTable, cmd.Kind)
	assert.Equal(t, "users", cmd.TableName)
	assert.Equal(t, "id", cmd.PrimaryKey)
	assert.Equal(t, []string{"age"}, cmd.UniqueColumns)
	require.Len(t, cmd.Columns, 3)
	assert.Equal(t, ColumnDef{Name: "id", Type: core.TypeInteger, PrimaryKey: true}, cmd.Columns[0])
	assert.Equal(t, ColumnDef{Name: "name", Type: core.TypeText}, cmd.Columns[1])
	assert.Equal(t, ColumnDef{Name: "age", Type: core.TypeInteger, Unique: true}, cmd.Columns[2])
}

func TestParseDropTable(t *testing.T) {
	cmd, err := Parse("DROP TABLE users")
	require.NoError(t, err)
	assert.Equal(t, DropTable, cmd.Kind)
	assert.Equal(t, "users", cmd.TableName)
}

func TestParseInsert(t *testing.T) {
	cmd, err := Parse("INSERT INTO users VALUES (1, 'Alice', true, null, 3.5)")
	require.NoError(t, err)
	assert.Equal(t, Insert, cmd.Kind)
	assert.Equal(t, "users", cmd.TableName)
	require.Len(t, cmd.Values, 5)
	assert.True(t, cmd.Values[0].Equal(core.IntegerValue(1)))
	assert.True(t, cmd.Values[1].Equal(core.TextValue("Alice")))
	assert.True(t, cmd.Values[2].Equal(core.BooleanValue(true)))
	assert.True(t, cmd.Values[3].Equal(core.NullValue))
	assert.True(t, cmd.Values[4].Equal(core.RealValue(3.5)))
}

func TestParseSelectStar(t *testing.T) {
	cmd, err := Parse("SELECT * FROM users")
	require.NoError(t, err)
	assert.Equal(t, Select, cmd.Kind)
	assert.Equal(t, "users", cmd.From)
	assert.Nil(t, cmd.SelectColumns)
	assert.Nil(t, cmd.Join)
	assert.Nil(t, cmd.Where)
}

func TestParseSelectWithWhereConjunction(t *testing.T) {
	cmd, err := Parse("SELECT name FROM users WHERE age = 30 AND name = 'Alice'")
	require.NoError(t, err)
	require.Len(t, cmd.Where, 2)
	assert.Equal(t, "age", cmd.Where[0].Column)
	assert.True(t, cmd.Where[0].Value.Equal(core.IntegerValue(30)))
	assert.Equal(t, "name", cmd.Where[1].Column)
	assert.True(t, cmd.Where[1].Value.Equal(core.TextValue("Alice")))
}

func TestParseSelectWithJoin(t *testing.T) {
	cmd, err := Parse("SELECT users.name, orders.amt FROM users JOIN orders ON users.id = orders.user_id WHERE users.name = 'Alice'")
	require.NoError(t, err)
	require.NotNil(t, cmd.Join)
	assert.Equal(t, "orders", cmd.Join.Table)
	assert.Equal(t, "users.id", cmd.Join.LeftCol)
	assert.Equal(t, "orders.user_id", cmd.Join.RightCol)
	assert.Equal(t, []string{"users.name", "orders.amt"}, cmd.SelectColumns)
	require.Len(t, cmd.Where, 1)
	assert.Equal(t, "users.name", cmd.Where[0].Column)
}

func TestParseUpdate(t *testing.T) {
	cmd, err := Parse("UPDATE users SET name = 'Carol', age = 22 WHERE id = 2")
	require.NoError(t, err)
	assert.Equal(t, Update, cmd.Kind)
	assert.Equal(t, "users", cmd.From)
	require.Len(t, cmd.SetValues, 2)
	assert.Equal(t, "name", cmd.SetValues[0].Column)
	assert.Equal(t, "age", cmd.SetValues[1].Column)
	require.Len(t, cmd.Where, 1)
}

func TestParseUpdateWithoutWhereMatchesAll(t *testing.T) {
	cmd, err := Parse("UPDATE users SET age = 1")
	require.NoError(t, err)
	assert.Nil(t, cmd.Where)
}

func TestParseDelete(t *testing.T) {
	cmd, err := Parse("DELETE FROM users WHERE id = 2")
	require.NoError(t, err)
	assert.Equal(t, Delete, cmd.Kind)
	assert.Equal(t, "users", cmd.From)
	require.Len(t, cmd.Where, 1)
}

func TestParseDeleteWithoutWhereMatchesAll(t *testing.T) {
	cmd, err := Parse("DELETE FROM users")
	require.NoError(t, err)
	assert.Nil(t, cmd.Where)
}

func TestParseIsCaseInsensitiveForKeywordsButNotIdentifiers(t *testing.T) {
	cmd, err := Parse("select * from Users")
	require.NoError(t, err)
	assert.Equal(t, "Users", cmd.From)
}

func TestParseRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"SELECT FROM",
		"CREATE TABLE t (a NOTATYPE)",
		"INSERT INTO t VALUES (",
		"SELECT * FROM t WHERE",
		"garbage statement",
	}
	for _, text := range cases {
		_, err := Parse(text)
		require.Error(t, err, text)
		var coreErr *core.Error
		require.ErrorAs(t, err, &coreErr, text)
		assert.Equal(t, core.KindParseError, coreErr.Kind, text)
	}
}

func TestParseRejectsTrailingInput(t *testing.T) {
	_, err := Parse("DROP TABLE t EXTRA")
	require.Error(t, err)
}

func TestParseNegativeIntegerLiteral(t *testing.T) {
	cmd, err := Parse("INSERT INTO t VALUES (-5)")
	require.NoError(t, err)
	assert.True(t, cmd.Values[0].Equal(core.IntegerValue(-5)))
}

func TestParseRealLiteralWithExponent(t *testing.T) {
	cmd, err := Parse("INSERT INTO t VALUES (1.5e2)")
	require.NoError(t, err)
	assert.True(t, cmd.Values[0].Equal(core.RealValue(150)))
}

func TestParseBooleanLiteralsCaseInsensitive(t *testing.T) {
	cmd, err := Parse("INSERT INTO t VALUES (TRUE, False)")
	require.NoError(t, err)
	assert.True(t, cmd.Values[0].Equal(core.BooleanValue(true)))
	assert.True(t, cmd.Values[1].Equal(core.BooleanValue(false)))
}
