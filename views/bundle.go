// Package views provides zero-copy navigators over composite AnyValues
// (spec.md §4.C): a view is a lightweight, freely copyable pair of a
// payload pointer and a TypeMeta, with mutation exposed through methods
// rather than a separate non-const overload set (the C++ original's
// const/non-const split has no Go analogue; every view method that
// mutates does so through the shared pointer the underlying AnyValue
// already holds).
package views

import tsgraph "github.com/tsgraph/core"

// BundleView navigates a bundle AnyValue's named fields.
type BundleView struct {
	value *tsgraph.AnyValue
	typ   *tsgraph.TypeMeta
}

// Bundle wraps v as a BundleView, failing if v does not hold a bundle.
func Bundle(v *tsgraph.AnyValue) (BundleView, error) {
	if v.Type() == nil || v.Type().Kind != tsgraph.KindBundle {
		return BundleView{}, tsgraph.ErrTypeMismatch
	}
	return BundleView{value: v, typ: v.Type()}, nil
}

func (b BundleView) data() (*tsgraph.BundleData, bool) {
	return tsgraph.GetIf[*tsgraph.BundleData](b.value)
}

// FieldCount returns the number of declared fields.
func (b BundleView) FieldCount() int { return len(b.typ.Fields) }

// HasField reports whether name is a declared field.
func (b BundleView) HasField(name string) bool {
	_, _, ok := b.typ.FieldByName(name)
	return ok
}

// At returns the field named name.
func (b BundleView) At(name string) (tsgraph.AnyValue, error) {
	data, ok := b.data()
	if !ok {
		return tsgraph.AnyValue{}, tsgraph.ErrTypeMismatch
	}
	_, idx, ok := b.typ.FieldByName(name)
	if !ok {
		return tsgraph.AnyValue{}, tsgraph.ErrFieldNotFound
	}
	return data.Fields[idx], nil
}

// AtIndex returns the field at the given declaration-order index.
func (b BundleView) AtIndex(index int) (tsgraph.AnyValue, error) {
	data, ok := b.data()
	if !ok {
		return tsgraph.AnyValue{}, tsgraph.ErrTypeMismatch
	}
	if index < 0 || index >= len(data.Fields) {
		return tsgraph.AnyValue{}, tsgraph.ErrIndexOutOfRange
	}
	return data.Fields[index], nil
}

// SetField overwrites the value stored at name.
func (b BundleView) SetField(name string, v tsgraph.AnyValue) error {
	data, ok := b.data()
	if !ok {
		return tsgraph.ErrTypeMismatch
	}
	_, idx, ok := b.typ.FieldByName(name)
	if !ok {
		return tsgraph.ErrFieldNotFound
	}
	data.Fields[idx] = v
	return nil
}

// Items returns the bundle's fields in declaration order.
func (b BundleView) Items() []tsgraph.AnyValue {
	data, ok := b.data()
	if !ok {
		return nil
	}
	return data.Fields
}
