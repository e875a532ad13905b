package tsgraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeContext struct {
	time    EngineTime
	notices []EngineTime
}

func (c *fakeContext) CurrentEngineTime() EngineTime { return c.time }
func (c *fakeContext) Notify(t EngineTime)           { c.notices = append(c.notices, t) }
func (c *fakeContext) AddBeforeEvaluationNotification(fn Hook) {}
func (c *fakeContext) AddAfterEvaluationNotification(fn Hook)  {}

var _ NotifiableContext = (*fakeContext)(nil)

func TestTSOutputSetValueAndRead(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := LookupScalar[int64](r)
	ctx := &fakeContext{time: 1}

	out := NewTSOutput[int64](ctx, int64Type)
	require.False(t, out.Valid())

	require.NoError(t, out.SetValue(42))
	require.True(t, out.Valid())
	require.True(t, out.Modified(1))

	got, ok := out.Value()
	require.True(t, ok)
	require.Equal(t, int64(42), got)

	event := out.DeltaValue()
	require.Equal(t, EventModify, event.Kind)
}

func TestTSOutputInvalidateAndReset(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := LookupScalar[int64](r)
	ctx := &fakeContext{time: 1}

	out := NewTSOutput[int64](ctx, int64Type)
	require.NoError(t, out.SetValue(1))

	ctx.time = 2
	require.NoError(t, out.Invalidate())
	require.False(t, out.Valid())

	out.Reset()
	require.Equal(t, MinEngineTime, out.LastModifiedTime())
}

func TestTSOutputSubscribeUnsubscribe(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := LookupScalar[int64](r)
	ctx := &fakeContext{time: 1}
	out := NewTSOutput[int64](ctx, int64Type)

	count := 0
	h, err := out.Subscribe(ObserverFunc(func(EngineTime) { count++ }))
	require.NoError(t, err)

	require.NoError(t, out.SetValue(1))
	require.Equal(t, 1, count)

	out.Unsubscribe(h)
	ctx.time = 2
	require.NoError(t, out.SetValue(2))
	require.Equal(t, 1, count, "unsubscribed observer must not be notified")
}

func TestTSOutputAttachToParentNotifiesParent(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := LookupScalar[int64](r)
	ctx := &fakeContext{time: 1}

	parent := NewPeered(nil)
	parentCount := 0
	_, err := parent.AddSubscriber(ObserverFunc(func(EngineTime) { parentCount++ }))
	require.NoError(t, err)

	out := NewTSOutput[int64](ctx, int64Type)
	out.AttachToParent(parent)

	require.NoError(t, out.SetValue(5))
	require.Equal(t, 1, parentCount)
	require.Equal(t, EngineTime(1), parent.ChildModifiedAt())
}

func TestTSOutputNotifyParentNoopWhenUnattached(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := LookupScalar[int64](r)
	ctx := &fakeContext{time: 1}
	out := NewTSOutput[int64](ctx, int64Type)

	require.NotPanics(t, func() { out.NotifyParent(5) })
}
