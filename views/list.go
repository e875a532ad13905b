package views

import tsgraph "github.com/tsgraph/core"

// ListView navigates a list AnyValue's ordered elements.
type ListView struct {
	value *tsgraph.AnyValue
	typ   *tsgraph.TypeMeta
}

// List wraps v as a ListView, failing if v does not hold a list.
func List(v *tsgraph.AnyValue) (ListView, error) {
	if v.Type() == nil || v.Type().Kind != tsgraph.KindList {
		return ListView{}, tsgraph.ErrTypeMismatch
	}
	return ListView{value: v, typ: v.Type()}, nil
}

func (l ListView) data() (*tsgraph.ListData, bool) {
	return tsgraph.GetIf[*tsgraph.ListData](l.value)
}

// ElementType returns the declared element TypeMeta.
func (l ListView) ElementType() *tsgraph.TypeMeta { return l.typ.ElementType }

// IsFixed reports whether the list was built with a fixed size.
func (l ListView) IsFixed() bool { return l.typ.FixedSize > 0 }

// Len returns the current element count.
func (l ListView) Len() int {
	data, ok := l.data()
	if !ok {
		return 0
	}
	return len(data.Elements)
}

// At returns the element at index.
func (l ListView) At(index int) (tsgraph.AnyValue, error) {
	data, ok := l.data()
	if !ok {
		return tsgraph.AnyValue{}, tsgraph.ErrTypeMismatch
	}
	if index < 0 || index >= len(data.Elements) {
		return tsgraph.AnyValue{}, tsgraph.ErrIndexOutOfRange
	}
	return data.Elements[index], nil
}

// PushBack appends v. Per spec.md §4.C's edge case, v is materialized
// into an owned copy before the append, since a growing slice may
// reallocate and a borrowed reference in v must not be invalidated by
// that reallocation happening on this list's backing array rather than
// the source's.
func (l ListView) PushBack(v tsgraph.AnyValue) error {
	data, ok := l.data()
	if !ok {
		return tsgraph.ErrTypeMismatch
	}
	if l.IsFixed() {
		return tsgraph.ErrFixedSize
	}
	data.Elements = append(data.Elements, v.Clone())
	return nil
}

// PopBack removes and returns the last element.
func (l ListView) PopBack() (tsgraph.AnyValue, error) {
	data, ok := l.data()
	if !ok {
		return tsgraph.AnyValue{}, tsgraph.ErrTypeMismatch
	}
	if l.IsFixed() {
		return tsgraph.AnyValue{}, tsgraph.ErrFixedSize
	}
	n := len(data.Elements)
	if n == 0 {
		return tsgraph.AnyValue{}, tsgraph.ErrEmptyContainer
	}
	v := data.Elements[n-1]
	data.Elements = data.Elements[:n-1]
	return v, nil
}

// Resize grows or shrinks the list to exactly n elements, zero-filling
// new slots with empty AnyValues.
func (l ListView) Resize(n int) error {
	data, ok := l.data()
	if !ok {
		return tsgraph.ErrTypeMismatch
	}
	if l.IsFixed() {
		return tsgraph.ErrFixedSize
	}
	if n < 0 {
		n = 0
	}
	if n <= len(data.Elements) {
		data.Elements = data.Elements[:n]
		return nil
	}
	grown := make([]tsgraph.AnyValue, n)
	copy(grown, data.Elements)
	data.Elements = grown
	return nil
}

// Clear empties the list.
func (l ListView) Clear() error {
	data, ok := l.data()
	if !ok {
		return tsgraph.ErrTypeMismatch
	}
	data.Elements = data.Elements[:0]
	return nil
}

// Front returns the first element.
func (l ListView) Front() (tsgraph.AnyValue, error) {
	data, ok := l.data()
	if !ok || len(data.Elements) == 0 {
		return tsgraph.AnyValue{}, tsgraph.ErrEmptyContainer
	}
	return data.Elements[0], nil
}

// Back returns the last element.
func (l ListView) Back() (tsgraph.AnyValue, error) {
	data, ok := l.data()
	if !ok || len(data.Elements) == 0 {
		return tsgraph.AnyValue{}, tsgraph.ErrEmptyContainer
	}
	return data.Elements[len(data.Elements)-1], nil
}
