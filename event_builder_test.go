package tsgraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTsCollectionEventBuilderDedupesByKey(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := LookupScalar[int64](r)

	var key AnyValue
	Emplace(&key, int64Type, int64(1))

	var first, second AnyValue
	Emplace(&first, int64Type, int64(10))
	Emplace(&second, int64Type, int64(20))

	b := NewCollectionEventBuilder(5)
	b.Modify(key, first)
	b.Modify(key, second)

	event, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, EngineTime(5), event.Time)
	require.Equal(t, EventModify, event.Kind)
	require.Len(t, event.Items, 1, "second op on the same key overwrites the first")

	got, ok := GetIf[int64](&event.Items[0].Value)
	require.True(t, ok)
	require.Equal(t, int64(20), got)
}

func TestTsCollectionEventBuilderDistinctKeys(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := LookupScalar[int64](r)

	var key1, key2, val AnyValue
	Emplace(&key1, int64Type, int64(1))
	Emplace(&key2, int64Type, int64(2))
	Emplace(&val, int64Type, int64(100))

	b := NewCollectionEventBuilder(1)
	b.Modify(key1, val)
	b.Reset(key2)
	b.Remove(key1)

	event, err := b.Build()
	require.NoError(t, err)
	require.Len(t, event.Items, 2, "Remove(key1) overwrites the earlier Modify(key1)")
}

func TestTsCollectionEventBuilderEmptyIsNone(t *testing.T) {
	b := NewCollectionEventBuilder(3)
	event, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, EventNone, event.Kind)
	require.Empty(t, event.Items)
}

func TestTsSetEventBuilderBuild(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := LookupScalar[int64](r)
	var a, b AnyValue
	Emplace(&a, int64Type, int64(1))
	Emplace(&b, int64Type, int64(2))

	builder := NewSetEventBuilder(7)
	builder.Add(a).RemoveValue(b)

	event, err := builder.Build()
	require.NoError(t, err)
	require.Equal(t, EventModify, event.Kind)
	require.Len(t, event.Added, 1)
	require.Len(t, event.Removed, 1)
}

func TestTsSetEventBuilderEmptyIsNone(t *testing.T) {
	event, err := NewSetEventBuilder(1).Build()
	require.NoError(t, err)
	require.Equal(t, EventNone, event.Kind)
}
