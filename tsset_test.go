package tsgraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func anyInt64(t *testing.T, r *Registry, n int64) AnyValue {
	t.Helper()
	int64Type, _ := LookupScalar[int64](r)
	var v AnyValue
	Emplace(&v, int64Type, n)
	return v
}

func TestTSSOutputAddRemoveAndDelta(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := LookupScalar[int64](r)
	ctx := &fakeContext{time: 1}

	out := NewTSSOutput(ctx, int64Type)
	a := anyInt64(t, r, 1)
	b := anyInt64(t, r, 2)

	require.NoError(t, out.Add(a))
	require.NoError(t, out.Add(b))
	require.Equal(t, 2, out.Len())
	require.True(t, out.Contains(a))

	delta := out.Delta(1)
	require.Len(t, delta.Added, 2)
	require.Empty(t, delta.Removed)

	ctx.time = 2
	require.NoError(t, out.Remove(a))
	require.False(t, out.Contains(a))
	require.Equal(t, 1, out.Len())

	delta2 := out.Delta(2)
	require.Len(t, delta2.Removed, 1)
	require.Empty(t, delta2.Added)
}

func TestTSSOutputAddAfterRemoveSameCycleIsIdempotent(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := LookupScalar[int64](r)
	ctx := &fakeContext{time: 1}

	out := NewTSSOutput(ctx, int64Type)
	a := anyInt64(t, r, 1)
	require.NoError(t, out.Add(a))

	ctx.time = 2
	require.NoError(t, out.Remove(a))
	require.NoError(t, out.Add(a))

	require.True(t, out.Contains(a))
	delta := out.Delta(2)
	require.Empty(t, delta.Added, "add-after-remove in the same cycle cancels out")
	require.Empty(t, delta.Removed)
}

func TestTSSOutputRemoveAfterAddSameCycleIsIdempotent(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := LookupScalar[int64](r)
	ctx := &fakeContext{time: 1}

	out := NewTSSOutput(ctx, int64Type)
	a := anyInt64(t, r, 1)

	require.NoError(t, out.Add(a))
	require.NoError(t, out.Remove(a))

	require.False(t, out.Contains(a))
	delta := out.Delta(1)
	require.Empty(t, delta.Added)
	require.Empty(t, delta.Removed)
}

func TestTSSOutputContainsOutputRefCounting(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := LookupScalar[int64](r)
	ctx := &fakeContext{time: 1}

	out := NewTSSOutput(ctx, int64Type)
	a := anyInt64(t, r, 1)

	containsA, err := out.ContainsOutput(a)
	require.NoError(t, err)
	v, ok := containsA.Value()
	require.True(t, ok)
	require.False(t, v)

	again, err := out.ContainsOutput(a)
	require.NoError(t, err)
	require.Same(t, containsA, again, "repeated ContainsOutput calls for the same item share one output")

	require.NoError(t, out.Add(a))
	v, ok = containsA.Value()
	require.True(t, ok)
	require.True(t, v)
}

func TestTSSOutputIsEmptyOutputTicks(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := LookupScalar[int64](r)
	ctx := &fakeContext{time: 1}

	out := NewTSSOutput(ctx, int64Type)
	emptyOut := out.IsEmptyOutput()
	v, ok := emptyOut.Value()
	require.True(t, ok)
	require.True(t, v)

	a := anyInt64(t, r, 1)
	require.NoError(t, out.Add(a))
	v, ok = emptyOut.Value()
	require.True(t, ok)
	require.False(t, v)
}

func TestTSSOutputRejectsUnhashableElement(t *testing.T) {
	ctx := &fakeContext{time: 1}
	unhashableType := &TypeMeta{Name: "opaque", Kind: KindScalar}
	out := NewTSSOutput(ctx, unhashableType)

	var v AnyValue
	Emplace(&v, unhashableType, struct{}{})
	err := out.Add(v)
	require.ErrorIs(t, err, ErrUnhashableElement)
}

func TestTSSInputBindReadsSharedMembership(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := LookupScalar[int64](r)
	ctx := &fakeContext{time: 1}

	out := NewTSSOutput(ctx, int64Type)
	a := anyInt64(t, r, 1)
	require.NoError(t, out.Add(a))

	in := NewTSSInput(ctx, int64Type)
	require.NoError(t, in.BindOutput(out))
	require.True(t, in.Bound())
	require.True(t, in.Contains(a))
	require.Equal(t, 1, in.Len())
}

func TestTSSInputBindOutputRejectsTypeMismatch(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := LookupScalar[int64](r)
	stringType, _ := LookupScalar[string](r)
	ctx := &fakeContext{time: 1}

	out := NewTSSOutput(ctx, stringType)
	in := NewTSSInput(ctx, int64Type)
	require.ErrorIs(t, in.BindOutput(out), ErrTypeMismatch)
}

func TestTSSInputCrossBindingDelta(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := LookupScalar[int64](r)
	ctx := &fakeContext{time: 1}

	outA := NewTSSOutput(ctx, int64Type)
	a1 := anyInt64(t, r, 1)
	a2 := anyInt64(t, r, 2)
	require.NoError(t, outA.Add(a1))
	require.NoError(t, outA.Add(a2))

	in := NewTSSInput(ctx, int64Type)
	require.NoError(t, in.BindOutput(outA))

	ctx.time = 2
	outB := NewTSSOutput(ctx, int64Type)
	a2b := anyInt64(t, r, 2)
	a3 := anyInt64(t, r, 3)
	require.NoError(t, outB.Add(a2b))
	require.NoError(t, outB.Add(a3))

	require.NoError(t, in.BindOutput(outB))
	delta := in.Delta(2)
	require.Len(t, delta.Added, 1, "only element 3 is newly present after rebind")
	require.Len(t, delta.Removed, 1, "element 1 disappeared after rebind")
}

func TestTSSInputMakeActiveForwardsNotify(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := LookupScalar[int64](r)
	ctx := &fakeContext{time: 1}

	out := NewTSSOutput(ctx, int64Type)
	in := NewTSSInput(ctx, int64Type)
	require.NoError(t, in.BindOutput(out))
	require.NoError(t, in.MakeActive())

	a := anyInt64(t, r, 1)
	require.NoError(t, out.Add(a))
	require.Equal(t, []EngineTime{1}, ctx.notices)
}

func TestTSSInputUnbindClearsState(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := LookupScalar[int64](r)
	ctx := &fakeContext{time: 1}

	out := NewTSSOutput(ctx, int64Type)
	in := NewTSSInput(ctx, int64Type)
	require.NoError(t, in.BindOutput(out))

	in.Unbind()
	require.False(t, in.Bound())
	require.Equal(t, 0, in.Len())
}
