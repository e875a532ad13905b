package views

import (
	"testing"

	tsgraph "github.com/tsgraph/core"

	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *tsgraph.Registry {
	t.Helper()
	r := tsgraph.NewRegistry()
	require.NoError(t, tsgraph.RegisterBuiltinScalars(r))
	return r
}

func anyInt64(t *testing.T, r *tsgraph.Registry, n int64) tsgraph.AnyValue {
	t.Helper()
	typ, ok := tsgraph.LookupScalar[int64](r)
	require.True(t, ok)
	var v tsgraph.AnyValue
	tsgraph.Emplace(&v, typ, n)
	return v
}

func newBundleValue(t *testing.T, r *tsgraph.Registry) (tsgraph.AnyValue, *tsgraph.TypeMeta) {
	t.Helper()
	int64Type, _ := tsgraph.LookupScalar[int64](r)
	fields := []tsgraph.Field{{Name: "price", Type: int64Type}, {Name: "volume", Type: int64Type}}
	bundleType, err := r.BuildBundle("Tick", fields)
	require.NoError(t, err)

	data := &tsgraph.BundleData{Fields: []tsgraph.AnyValue{anyInt64(t, r, 10), anyInt64(t, r, 20)}}
	var v tsgraph.AnyValue
	tsgraph.Emplace(&v, bundleType, data)
	return v, bundleType
}

func TestBundleViewAtAndSetField(t *testing.T) {
	r := newTestRegistry(t)
	value, _ := newBundleValue(t, r)

	b, err := Bundle(&value)
	require.NoError(t, err)
	require.Equal(t, 2, b.FieldCount())
	require.True(t, b.HasField("price"))
	require.False(t, b.HasField("missing"))

	price, err := b.At("price")
	require.NoError(t, err)
	got, ok := tsgraph.GetIf[int64](&price)
	require.True(t, ok)
	require.Equal(t, int64(10), got)

	_, err = b.At("missing")
	require.ErrorIs(t, err, tsgraph.ErrFieldNotFound)

	newVal := anyInt64(t, r, 99)
	require.NoError(t, b.SetField("volume", newVal))
	updated, err := b.At("volume")
	require.NoError(t, err)
	got, ok = tsgraph.GetIf[int64](&updated)
	require.True(t, ok)
	require.Equal(t, int64(99), got)
}

func TestBundleViewAtIndexAndItems(t *testing.T) {
	r := newTestRegistry(t)
	value, _ := newBundleValue(t, r)
	b, err := Bundle(&value)
	require.NoError(t, err)

	first, err := b.AtIndex(0)
	require.NoError(t, err)
	got, ok := tsgraph.GetIf[int64](&first)
	require.True(t, ok)
	require.Equal(t, int64(10), got)

	_, err = b.AtIndex(5)
	require.ErrorIs(t, err, tsgraph.ErrIndexOutOfRange)

	require.Len(t, b.Items(), 2)
}

func TestBundleRejectsNonBundleValue(t *testing.T) {
	r := newTestRegistry(t)
	v := anyInt64(t, r, 1)
	_, err := Bundle(&v)
	require.ErrorIs(t, err, tsgraph.ErrTypeMismatch)
}
