package views

import tsgraph "github.com/tsgraph/core"

// TupleView navigates a tuple AnyValue's positional elements.
type TupleView struct {
	value *tsgraph.AnyValue
	typ   *tsgraph.TypeMeta
}

// Tuple wraps v as a TupleView, failing if v does not hold a tuple.
func Tuple(v *tsgraph.AnyValue) (TupleView, error) {
	if v.Type() == nil || v.Type().Kind != tsgraph.KindTuple {
		return TupleView{}, tsgraph.ErrTypeMismatch
	}
	return TupleView{value: v, typ: v.Type()}, nil
}

// Len returns the tuple's arity.
func (t TupleView) Len() int { return len(t.typ.Fields) }

// At returns the element at index.
func (t TupleView) At(index int) (tsgraph.AnyValue, error) {
	data, ok := tsgraph.GetIf[*tsgraph.TupleData](t.value)
	if !ok {
		return tsgraph.AnyValue{}, tsgraph.ErrTypeMismatch
	}
	if index < 0 || index >= len(data.Elements) {
		return tsgraph.AnyValue{}, tsgraph.ErrIndexOutOfRange
	}
	return data.Elements[index], nil
}

// ElementType returns the declared TypeMeta at index.
func (t TupleView) ElementType(index int) (*tsgraph.TypeMeta, error) {
	if index < 0 || index >= len(t.typ.Fields) {
		return nil, tsgraph.ErrIndexOutOfRange
	}
	return t.typ.Fields[index].Type, nil
}
