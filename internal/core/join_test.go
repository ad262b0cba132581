package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildUsersOrders(t *testing.T) (*Table, *Table) {
	t.Helper()
	users, err := NewTable("users", usersColumns(), "id", nil)
	require.NoError(t, err)
	_, _ = users.Insert([]Value{IntegerValue(1), TextValue("Alice"), IntegerValue(30)})
	_, _ = users.Insert([]Value{IntegerValue(2), TextValue("Bob"), IntegerValue(25)})

	orders, err := NewTable("orders", []Column{
		{Name: "oid", Type: TypeInteger},
		{Name: "user_id", Type: TypeInteger},
		{Name: "amt", Type: TypeInteger},
	}, "oid", nil)
	require.NoError(t, err)
	_, _ = orders.Insert([]Value{IntegerValue(101), IntegerValue(1), IntegerValue(500)})
	_, _ = orders.Insert([]Value{IntegerValue(102), IntegerValue(2), IntegerValue(300)})
	_, _ = orders.Insert([]Value{IntegerValue(103), IntegerValue(1), IntegerValue(200)})

	return users, orders
}

// Scenario 3: join, filter by a left-table column, project two qualified
// columns, in row-id order.
func TestInnerJoinFilterAndProject(t *testing.T) {
	users, orders := buildUsersOrders(t)

	rows, err := users.InnerJoin(orders, "id", "user_id")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	rows, err = ApplyJoinWhere(rows, map[string]Value{"users.name": TextValue("Alice")}, users, orders)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	rows, err = ProjectJoinRows(rows, []string{"users.name", "orders.amt"}, users, orders)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	name0, _ := rows[0].Get("users.name")
	amt0, _ := rows[0].Get("orders.amt")
	name1, _ := rows[1].Get("users.name")
	amt1, _ := rows[1].Get("orders.amt")
	assert.Equal(t, TextValue("Alice"), name0)
	assert.Equal(t, IntegerValue(500), amt0)
	assert.Equal(t, TextValue("Alice"), name1)
	assert.Equal(t, IntegerValue(200), amt1)
}

func TestInnerJoinExcludesNullJoinColumn(t *testing.T) {
	left, err := NewTable("l", []Column{{Name: "k", Type: TypeInteger}}, "", nil)
	require.NoError(t, err)
	_, _ = left.Insert([]Value{NullValue})
	_, _ = left.Insert([]Value{IntegerValue(1)})

	right, err := NewTable("r", []Column{{Name: "k", Type: TypeInteger}}, "", nil)
	require.NoError(t, err)
	_, _ = right.Insert([]Value{NullValue})
	_, _ = right.Insert([]Value{IntegerValue(1)})

	rows, err := left.InnerJoin(right, "k", "k")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

// Join symmetry of size: A join B and B join A produce equal-length
// results for tables with no Null in the join columns.
func TestInnerJoinSymmetryOfSize(t *testing.T) {
	users, orders := buildUsersOrders(t)

	ab, err := users.InnerJoin(orders, "id", "user_id")
	require.NoError(t, err)
	ba, err := orders.InnerJoin(users, "user_id", "id")
	require.NoError(t, err)

	assert.Equal(t, len(ab), len(ba))
}

func TestInnerJoinBareAmbiguousColumnFails(t *testing.T) {
	left, err := NewTable("l", []Column{{Name: "k", Type: TypeInteger}, {Name: "shared", Type: TypeText}}, "", nil)
	require.NoError(t, err)
	right, err := NewTable("r", []Column{{Name: "k", Type: TypeInteger}, {Name: "shared", Type: TypeText}}, "", nil)
	require.NoError(t, err)
	_, _ = left.Insert([]Value{IntegerValue(1), TextValue("a")})
	_, _ = right.Insert([]Value{IntegerValue(1), TextValue("b")})

	rows, err := left.InnerJoin(right, "k", "k")
	require.NoError(t, err)

	_, err = ProjectJoinRows(rows, []string{"shared"}, left, right)
	require.Error(t, err)
	var coreErr *Error
	require.ErrorAs(t, err, &coreErr)
	assert.Equal(t, KindAmbiguousColumn, coreErr.Kind)
}

func TestInnerJoinUsesExistingIndexOnRightColumn(t *testing.T) {
	// orders has no index on user_id, but users has one on id (primary
	// key): joining the other direction (orders.user_id = users.id)
	// exercises the IndexedLookup build-phase path instead of the
	// transient-scan path.
	users, orders := buildUsersOrders(t)
	rows, err := orders.InnerJoin(users, "user_id", "id")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
