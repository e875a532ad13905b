package views

import tsgraph "github.com/tsgraph/core"

// SetView navigates a set AnyValue's elements, maintaining insertion
// order for deterministic, O(n)-total iteration (spec.md §4.C).
type SetView struct {
	value *tsgraph.AnyValue
	typ   *tsgraph.TypeMeta
}

// Set wraps v as a SetView, failing if v does not hold a set.
func Set(v *tsgraph.AnyValue) (SetView, error) {
	if v.Type() == nil || v.Type().Kind != tsgraph.KindSet {
		return SetView{}, tsgraph.ErrTypeMismatch
	}
	return SetView{value: v, typ: v.Type()}, nil
}

func (s SetView) data() (*tsgraph.SetData, bool) {
	return tsgraph.GetIf[*tsgraph.SetData](s.value)
}

// Len returns the current element count.
func (s SetView) Len() int {
	data, ok := s.data()
	if !ok {
		return 0
	}
	return len(data.Order)
}

// Contains reports whether v is a member.
func (s SetView) Contains(v tsgraph.AnyValue) bool {
	data, ok := s.data()
	if !ok {
		return false
	}
	key, hok := v.HashCode()
	if !hok {
		return false
	}
	_, exists := data.Index[key]
	return exists
}

// Add inserts v, a no-op if already present.
func (s SetView) Add(v tsgraph.AnyValue) error {
	data, ok := s.data()
	if !ok {
		return tsgraph.ErrTypeMismatch
	}
	key, hok := v.HashCode()
	if !hok {
		return tsgraph.ErrUnhashableElement
	}
	if _, exists := data.Index[key]; exists {
		return nil
	}
	data.Index[key] = len(data.Order)
	data.Order = append(data.Order, v.Clone())
	return nil
}

// Remove deletes v, a no-op if absent.
func (s SetView) Remove(v tsgraph.AnyValue) error {
	data, ok := s.data()
	if !ok {
		return tsgraph.ErrTypeMismatch
	}
	key, hok := v.HashCode()
	if !hok {
		return tsgraph.ErrUnhashableElement
	}
	idx, exists := data.Index[key]
	if !exists {
		return nil
	}
	delete(data.Index, key)
	data.Order = append(data.Order[:idx], data.Order[idx+1:]...)
	for k, i := range data.Index {
		if i > idx {
			data.Index[k] = i - 1
		}
	}
	return nil
}

// Clear empties the set.
func (s SetView) Clear() error {
	data, ok := s.data()
	if !ok {
		return tsgraph.ErrTypeMismatch
	}
	data.Order = nil
	data.Index = make(map[uint64]int)
	return nil
}

// Items returns the set's elements in insertion order.
func (s SetView) Items() []tsgraph.AnyValue {
	data, ok := s.data()
	if !ok {
		return nil
	}
	return data.Order
}
