package views

import (
	"testing"

	tsgraph "github.com/tsgraph/core"

	"github.com/stretchr/testify/require"
)

func newQueueValue(t *testing.T, r *tsgraph.Registry, maxCapacity int) tsgraph.AnyValue {
	t.Helper()
	int64Type, _ := tsgraph.LookupScalar[int64](r)
	typ := &tsgraph.TypeMeta{
		Name:        "Queue<int64>",
		Kind:        tsgraph.KindQueue,
		ElementType: int64Type,
		FixedSize:   maxCapacity,
	}
	var v tsgraph.AnyValue
	tsgraph.Emplace(&v, typ, &tsgraph.QueueData{MaxCapacity: maxCapacity})
	return v
}

func TestQueueViewPushPopFIFO(t *testing.T) {
	r := newTestRegistry(t)
	v := newQueueValue(t, r, 0)
	q, err := Queue(&v)
	require.NoError(t, err)
	require.LessOrEqual(t, q.MaxCapacity(), 0)

	require.NoError(t, q.PushBack(anyInt64(t, r, 1)))
	require.NoError(t, q.PushBack(anyInt64(t, r, 2)))
	require.Equal(t, 2, q.Len())

	front, err := q.Front()
	require.NoError(t, err)
	got, _ := tsgraph.GetIf[int64](&front)
	require.Equal(t, int64(1), got)

	popped, err := q.PopFront()
	require.NoError(t, err)
	got, _ = tsgraph.GetIf[int64](&popped)
	require.Equal(t, int64(1), got)
	require.Equal(t, 1, q.Len())
}

func TestQueueViewBoundedRejectsOverflow(t *testing.T) {
	r := newTestRegistry(t)
	v := newQueueValue(t, r, 2)
	q, err := Queue(&v)
	require.NoError(t, err)
	require.Equal(t, 2, q.MaxCapacity())

	require.NoError(t, q.PushBack(anyInt64(t, r, 1)))
	require.NoError(t, q.PushBack(anyInt64(t, r, 2)))
	require.ErrorIs(t, q.PushBack(anyInt64(t, r, 3)), tsgraph.ErrFixedSize)
}

func TestQueueViewPopFromEmptyFails(t *testing.T) {
	r := newTestRegistry(t)
	v := newQueueValue(t, r, 0)
	q, err := Queue(&v)
	require.NoError(t, err)

	_, err = q.PopFront()
	require.ErrorIs(t, err, tsgraph.ErrEmptyContainer)
	_, err = q.Front()
	require.ErrorIs(t, err, tsgraph.ErrEmptyContainer)
}

func TestQueueRejectsNonQueueValue(t *testing.T) {
	r := newTestRegistry(t)
	v := anyInt64(t, r, 1)
	_, err := Queue(&v)
	require.ErrorIs(t, err, tsgraph.ErrTypeMismatch)
}
