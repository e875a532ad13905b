package views

import (
	"testing"
	"time"

	tsgraph "github.com/tsgraph/core"

	"github.com/stretchr/testify/require"
)

func newCountWindowValue(t *testing.T, r *tsgraph.Registry, maxCount int) tsgraph.AnyValue {
	t.Helper()
	int64Type, _ := tsgraph.LookupScalar[int64](r)
	typ := &tsgraph.TypeMeta{
		Name:        "Window<int64>",
		Kind:        tsgraph.KindWindow,
		ElementType: int64Type,
		MaxCount:    maxCount,
	}
	var v tsgraph.AnyValue
	tsgraph.Emplace(&v, typ, &tsgraph.WindowData{})
	return v
}

func newDurationWindowValue(t *testing.T, r *tsgraph.Registry, d time.Duration) tsgraph.AnyValue {
	t.Helper()
	int64Type, _ := tsgraph.LookupScalar[int64](r)
	typ := &tsgraph.TypeMeta{
		Name:           "Window<int64>",
		Kind:           tsgraph.KindWindow,
		ElementType:    int64Type,
		WindowDuration: d,
	}
	var v tsgraph.AnyValue
	tsgraph.Emplace(&v, typ, &tsgraph.WindowData{})
	return v
}

func TestWindowViewCountBoundedEvicts(t *testing.T) {
	r := newTestRegistry(t)
	v := newCountWindowValue(t, r, 2)
	w, err := Window(&v)
	require.NoError(t, err)

	require.NoError(t, w.PushBack(1, anyInt64(t, r, 10)))
	require.NoError(t, w.PushBack(2, anyInt64(t, r, 20)))
	require.NoError(t, w.PushBack(3, anyInt64(t, r, 30)))

	require.Equal(t, 2, w.Len(), "count window never exceeds MaxCount")

	front, err := w.Front()
	require.NoError(t, err)
	got, _ := tsgraph.GetIf[int64](&front.Value)
	require.Equal(t, int64(20), got)

	back, err := w.Back()
	require.NoError(t, err)
	got, _ = tsgraph.GetIf[int64](&back.Value)
	require.Equal(t, int64(30), got)
}

func TestWindowViewDurationBoundedEvictsByAge(t *testing.T) {
	r := newTestRegistry(t)
	v := newDurationWindowValue(t, r, 2*time.Second)
	w, err := Window(&v)
	require.NoError(t, err)

	require.NoError(t, w.PushBack(0, anyInt64(t, r, 1)))
	require.NoError(t, w.PushBack(tsgraph.EngineTime(1_500_000), anyInt64(t, r, 2)))
	require.NoError(t, w.PushBack(tsgraph.EngineTime(3_000_000), anyInt64(t, r, 3)))

	require.Equal(t, 2, w.Len(), "entries older than 2s relative to the latest push are evicted")

	items := w.Items()
	var vals []int64
	for _, it := range items {
		val, _ := tsgraph.GetIf[int64](&it.Value)
		vals = append(vals, val)
	}
	require.Equal(t, []int64{2, 3}, vals)
}

func TestWindowViewEmptyFrontBackFail(t *testing.T) {
	r := newTestRegistry(t)
	v := newCountWindowValue(t, r, 2)
	w, err := Window(&v)
	require.NoError(t, err)

	_, err = w.Front()
	require.ErrorIs(t, err, tsgraph.ErrEmptyContainer)
	_, err = w.Back()
	require.ErrorIs(t, err, tsgraph.ErrEmptyContainer)
}

func TestWindowRejectsNonWindowValue(t *testing.T) {
	r := newTestRegistry(t)
	v := anyInt64(t, r, 1)
	_, err := Window(&v)
	require.ErrorIs(t, err, tsgraph.ErrTypeMismatch)
}
