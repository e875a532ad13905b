package views

import tsgraph "github.com/tsgraph/core"

// QueueView navigates a bounded FIFO queue AnyValue.
type QueueView struct {
	value *tsgraph.AnyValue
	typ   *tsgraph.TypeMeta
}

// Queue wraps v as a QueueView, failing if v does not hold a queue.
func Queue(v *tsgraph.AnyValue) (QueueView, error) {
	if v.Type() == nil || v.Type().Kind != tsgraph.KindQueue {
		return QueueView{}, tsgraph.ErrTypeMismatch
	}
	return QueueView{value: v, typ: v.Type()}, nil
}

func (q QueueView) data() (*tsgraph.QueueData, bool) {
	return tsgraph.GetIf[*tsgraph.QueueData](q.value)
}

// MaxCapacity returns the queue's configured bound, or <= 0 if
// unbounded (QueueData.MaxCapacity is the source of truth; it mirrors
// TypeMeta.FixedSize at construction time).
func (q QueueView) MaxCapacity() int {
	data, ok := q.data()
	if !ok {
		return q.typ.FixedSize
	}
	return data.MaxCapacity
}

// Len returns the current element count.
func (q QueueView) Len() int {
	data, ok := q.data()
	if !ok {
		return 0
	}
	return len(data.Elements)
}

// PushBack appends v, failing with ErrFixedSize once MaxCapacity is
// reached on a bounded queue.
func (q QueueView) PushBack(v tsgraph.AnyValue) error {
	data, ok := q.data()
	if !ok {
		return tsgraph.ErrTypeMismatch
	}
	if data.MaxCapacity > 0 && len(data.Elements) >= data.MaxCapacity {
		return tsgraph.ErrFixedSize
	}
	data.Elements = append(data.Elements, v.Clone())
	return nil
}

// PopFront removes and returns the oldest element.
func (q QueueView) PopFront() (tsgraph.AnyValue, error) {
	data, ok := q.data()
	if !ok {
		return tsgraph.AnyValue{}, tsgraph.ErrTypeMismatch
	}
	if len(data.Elements) == 0 {
		return tsgraph.AnyValue{}, tsgraph.ErrEmptyContainer
	}
	v := data.Elements[0]
	data.Elements = data.Elements[1:]
	return v, nil
}

// Front returns the oldest element without removing it.
func (q QueueView) Front() (tsgraph.AnyValue, error) {
	data, ok := q.data()
	if !ok || len(data.Elements) == 0 {
		return tsgraph.AnyValue{}, tsgraph.ErrEmptyContainer
	}
	return data.Elements[0], nil
}

// Items returns the queue's elements in FIFO order.
func (q QueueView) Items() []tsgraph.AnyValue {
	data, ok := q.data()
	if !ok {
		return nil
	}
	return data.Elements
}
