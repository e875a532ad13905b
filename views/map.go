package views

import tsgraph "github.com/tsgraph/core"

// MapView navigates a map AnyValue's key-value pairs, maintaining
// insertion order the same way SetView does.
type MapView struct {
	value *tsgraph.AnyValue
	typ   *tsgraph.TypeMeta
}

// Map wraps v as a MapView, failing if v does not hold a map.
func Map(v *tsgraph.AnyValue) (MapView, error) {
	if v.Type() == nil || v.Type().Kind != tsgraph.KindMap {
		return MapView{}, tsgraph.ErrTypeMismatch
	}
	return MapView{value: v, typ: v.Type()}, nil
}

func (m MapView) data() (*tsgraph.MapData, bool) {
	return tsgraph.GetIf[*tsgraph.MapData](m.value)
}

// Len returns the current entry count.
func (m MapView) Len() int {
	data, ok := m.data()
	if !ok {
		return 0
	}
	return len(data.KeyOrder)
}

// At returns the value stored at key.
func (m MapView) At(key tsgraph.AnyValue) (tsgraph.AnyValue, error) {
	data, ok := m.data()
	if !ok {
		return tsgraph.AnyValue{}, tsgraph.ErrTypeMismatch
	}
	k, hok := key.HashCode()
	if !hok {
		return tsgraph.AnyValue{}, tsgraph.ErrUnhashableElement
	}
	idx, exists := data.Index[k]
	if !exists {
		return tsgraph.AnyValue{}, tsgraph.ErrKeyNotFound
	}
	return data.Values[idx], nil
}

// Contains reports whether key is present.
func (m MapView) Contains(key tsgraph.AnyValue) bool {
	data, ok := m.data()
	if !ok {
		return false
	}
	k, hok := key.HashCode()
	if !hok {
		return false
	}
	_, exists := data.Index[k]
	return exists
}

// Insert adds or overwrites the entry at key.
func (m MapView) Insert(key, value tsgraph.AnyValue) error {
	data, ok := m.data()
	if !ok {
		return tsgraph.ErrTypeMismatch
	}
	k, hok := key.HashCode()
	if !hok {
		return tsgraph.ErrUnhashableElement
	}
	if idx, exists := data.Index[k]; exists {
		data.Values[idx] = value.Clone()
		return nil
	}
	data.Index[k] = len(data.KeyOrder)
	data.KeyOrder = append(data.KeyOrder, key.Clone())
	data.Values = append(data.Values, value.Clone())
	return nil
}

// SetItem overwrites the value at an already-present key, failing with
// ErrKeyNotFound if key is absent (unlike Insert, which also creates).
func (m MapView) SetItem(key, value tsgraph.AnyValue) error {
	data, ok := m.data()
	if !ok {
		return tsgraph.ErrTypeMismatch
	}
	k, hok := key.HashCode()
	if !hok {
		return tsgraph.ErrUnhashableElement
	}
	idx, exists := data.Index[k]
	if !exists {
		return tsgraph.ErrKeyNotFound
	}
	data.Values[idx] = value.Clone()
	return nil
}

// Remove deletes the entry at key, a no-op if absent.
func (m MapView) Remove(key tsgraph.AnyValue) error {
	data, ok := m.data()
	if !ok {
		return tsgraph.ErrTypeMismatch
	}
	k, hok := key.HashCode()
	if !hok {
		return tsgraph.ErrUnhashableElement
	}
	idx, exists := data.Index[k]
	if !exists {
		return nil
	}
	delete(data.Index, k)
	data.KeyOrder = append(data.KeyOrder[:idx], data.KeyOrder[idx+1:]...)
	data.Values = append(data.Values[:idx], data.Values[idx+1:]...)
	for kk, i := range data.Index {
		if i > idx {
			data.Index[kk] = i - 1
		}
	}
	return nil
}

// Clear empties the map.
func (m MapView) Clear() error {
	data, ok := m.data()
	if !ok {
		return tsgraph.ErrTypeMismatch
	}
	data.KeyOrder = nil
	data.Values = nil
	data.Index = make(map[uint64]int)
	return nil
}

// Keys returns a read-only set-shaped view over the map's keys
// (spec.md §4.C). Resolved as a distinct MapKeysView type rather than
// reusing SetView/SetData (an Open Question decision, see SPEC_FULL.md
// §6): a map's keys have no independent add/remove of their own, only
// what the map's own mutations imply, so giving them SetView's mutating
// methods would let a caller "add a key" without a value, which the map
// has no way to represent.
func (m MapView) Keys() MapKeysView {
	return MapKeysView{value: m.value}
}

// MapKeysView is a read-only, insertion-ordered view over a MapView's
// keys.
type MapKeysView struct {
	value *tsgraph.AnyValue
}

// Len returns the key count.
func (k MapKeysView) Len() int {
	data, ok := tsgraph.GetIf[*tsgraph.MapData](k.value)
	if !ok {
		return 0
	}
	return len(data.KeyOrder)
}

// Contains reports whether key is present in the map.
func (k MapKeysView) Contains(key tsgraph.AnyValue) bool {
	data, ok := tsgraph.GetIf[*tsgraph.MapData](k.value)
	if !ok {
		return false
	}
	hk, hok := key.HashCode()
	if !hok {
		return false
	}
	_, exists := data.Index[hk]
	return exists
}

// Items returns the map's keys in insertion order.
func (k MapKeysView) Items() []tsgraph.AnyValue {
	data, ok := tsgraph.GetIf[*tsgraph.MapData](k.value)
	if !ok {
		return nil
	}
	return data.KeyOrder
}
