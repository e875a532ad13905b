package views

import (
	"testing"

	tsgraph "github.com/tsgraph/core"

	"github.com/stretchr/testify/require"
)

func newMapValue(t *testing.T, r *tsgraph.Registry) tsgraph.AnyValue {
	t.Helper()
	stringType, _ := tsgraph.LookupScalar[string](r)
	int64Type, _ := tsgraph.LookupScalar[int64](r)
	mapType, err := r.BuildMap(stringType, int64Type)
	require.NoError(t, err)

	var v tsgraph.AnyValue
	tsgraph.Emplace(&v, mapType, tsgraph.NewMapData())
	return v
}

func anyString(t *testing.T, r *tsgraph.Registry, s string) tsgraph.AnyValue {
	t.Helper()
	typ, _ := tsgraph.LookupScalar[string](r)
	var v tsgraph.AnyValue
	tsgraph.Emplace(&v, typ, s)
	return v
}

func TestMapViewInsertAtContains(t *testing.T) {
	r := newTestRegistry(t)
	v := newMapValue(t, r)
	m, err := Map(&v)
	require.NoError(t, err)

	key := anyString(t, r, "a")
	require.NoError(t, m.Insert(key, anyInt64(t, r, 1)))
	require.Equal(t, 1, m.Len())
	require.True(t, m.Contains(key))

	got, err := m.At(key)
	require.NoError(t, err)
	val, ok := tsgraph.GetIf[int64](&got)
	require.True(t, ok)
	require.Equal(t, int64(1), val)

	_, err = m.At(anyString(t, r, "missing"))
	require.ErrorIs(t, err, tsgraph.ErrKeyNotFound)
}

func TestMapViewInsertOverwritesExisting(t *testing.T) {
	r := newTestRegistry(t)
	v := newMapValue(t, r)
	m, err := Map(&v)
	require.NoError(t, err)

	key := anyString(t, r, "a")
	require.NoError(t, m.Insert(key, anyInt64(t, r, 1)))
	require.NoError(t, m.Insert(key, anyInt64(t, r, 2)))
	require.Equal(t, 1, m.Len(), "insert on an existing key overwrites rather than duplicates")

	got, _ := m.At(key)
	val, _ := tsgraph.GetIf[int64](&got)
	require.Equal(t, int64(2), val)
}

func TestMapViewSetItemRequiresExistingKey(t *testing.T) {
	r := newTestRegistry(t)
	v := newMapValue(t, r)
	m, err := Map(&v)
	require.NoError(t, err)

	key := anyString(t, r, "a")
	require.ErrorIs(t, m.SetItem(key, anyInt64(t, r, 1)), tsgraph.ErrKeyNotFound)

	require.NoError(t, m.Insert(key, anyInt64(t, r, 1)))
	require.NoError(t, m.SetItem(key, anyInt64(t, r, 2)))
	got, _ := m.At(key)
	val, _ := tsgraph.GetIf[int64](&got)
	require.Equal(t, int64(2), val)
}

func TestMapViewRemoveAndClear(t *testing.T) {
	r := newTestRegistry(t)
	v := newMapValue(t, r)
	m, err := Map(&v)
	require.NoError(t, err)

	a, b := anyString(t, r, "a"), anyString(t, r, "b")
	require.NoError(t, m.Insert(a, anyInt64(t, r, 1)))
	require.NoError(t, m.Insert(b, anyInt64(t, r, 2)))

	require.NoError(t, m.Remove(a))
	require.False(t, m.Contains(a))
	require.True(t, m.Contains(b))

	require.NoError(t, m.Clear())
	require.Equal(t, 0, m.Len())
}

func TestMapViewKeysIsReadOnlyAndOrdered(t *testing.T) {
	r := newTestRegistry(t)
	v := newMapValue(t, r)
	m, err := Map(&v)
	require.NoError(t, err)

	require.NoError(t, m.Insert(anyString(t, r, "b"), anyInt64(t, r, 2)))
	require.NoError(t, m.Insert(anyString(t, r, "a"), anyInt64(t, r, 1)))

	keys := m.Keys()
	require.Equal(t, 2, keys.Len())
	require.True(t, keys.Contains(anyString(t, r, "a")))
	require.False(t, keys.Contains(anyString(t, r, "missing")))

	items := keys.Items()
	first, _ := tsgraph.GetIf[string](&items[0])
	require.Equal(t, "b", first, "insertion order is preserved")
}

func TestMapRejectsNonMapValue(t *testing.T) {
	r := newTestRegistry(t)
	v := anyInt64(t, r, 1)
	_, err := Map(&v)
	require.ErrorIs(t, err, tsgraph.ErrTypeMismatch)
}
