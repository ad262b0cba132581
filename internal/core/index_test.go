package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexUniqueInsertRejectsDuplicateNonNull(t *testing.T) {
	idx := NewIndex(true)
	require.NoError(t, idx.Insert("id", IntegerValue(1), 0))
	err := idx.Insert("id", IntegerValue(1), 1)
	require.Error(t, err)
	var coreErr *Error
	require.ErrorAs(t, err, &coreErr)
	assert.Equal(t, KindUniqueViolation, coreErr.Kind)
}

func TestIndexNullNeverInsertedOrConflicting(t *testing.T) {
	idx := NewIndex(true)
	require.NoError(t, idx.Insert("x", NullValue, 0))
	require.NoError(t, idx.Insert("x", NullValue, 1))
	assert.Empty(t, idx.Lookup(NullValue))
}

func TestIndexLookupReturnsRowIDs(t *testing.T) {
	idx := NewIndex(false)
	require.NoError(t, idx.Insert("x", IntegerValue(5), 0))
	require.NoError(t, idx.Insert("x", IntegerValue(5), 1))
	assert.ElementsMatch(t, []int{0, 1}, idx.Lookup(IntegerValue(5)))
	assert.Empty(t, idx.Lookup(IntegerValue(6)))
}

func TestIndexRemovePrunesEmptyKey(t *testing.T) {
	idx := NewIndex(false)
	require.NoError(t, idx.Insert("x", IntegerValue(5), 0))
	idx.Remove(IntegerValue(5), 0)
	assert.Empty(t, idx.Lookup(IntegerValue(5)))
}

func TestIndexRemoveIsNoOpForAbsentEntry(t *testing.T) {
	idx := NewIndex(false)
	idx.Remove(IntegerValue(5), 0)
	assert.Empty(t, idx.Lookup(IntegerValue(5)))
}

func TestIndexRebuildDiscardsPriorStateAndReinserts(t *testing.T) {
	idx := NewIndex(true)
	require.NoError(t, idx.Insert("id", IntegerValue(99), 0))

	err := idx.Rebuild("id", []IndexPair{
		{Value: IntegerValue(1), RowID: 0},
		{Value: IntegerValue(2), RowID: 1},
	})
	require.NoError(t, err)
	assert.Empty(t, idx.Lookup(IntegerValue(99)))
	assert.Equal(t, []int{0}, idx.Lookup(IntegerValue(1)))
	assert.Equal(t, []int{1}, idx.Lookup(IntegerValue(2)))
}

func TestIndexRebuildFailsOnDuplicateLeavesPriorStateIntact(t *testing.T) {
	idx := NewIndex(true)
	require.NoError(t, idx.Insert("id", IntegerValue(99), 0))

	err := idx.Rebuild("id", []IndexPair{
		{Value: IntegerValue(1), RowID: 0},
		{Value: IntegerValue(1), RowID: 1},
	})
	require.Error(t, err)
	assert.Equal(t, []int{0}, idx.Lookup(IntegerValue(99)))
}
