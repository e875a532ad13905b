package views

import tsgraph "github.com/tsgraph/core"

// WindowView navigates a time-bounded or count-bounded sliding window
// AnyValue, evicting stale entries on every push.
type WindowView struct {
	value *tsgraph.AnyValue
	typ   *tsgraph.TypeMeta
}

// Window wraps v as a WindowView, failing if v does not hold a window.
func Window(v *tsgraph.AnyValue) (WindowView, error) {
	if v.Type() == nil || v.Type().Kind != tsgraph.KindWindow {
		return WindowView{}, tsgraph.ErrTypeMismatch
	}
	return WindowView{value: v, typ: v.Type()}, nil
}

func (w WindowView) data() (*tsgraph.WindowData, bool) {
	return tsgraph.GetIf[*tsgraph.WindowData](w.value)
}

// Len returns the current entry count.
func (w WindowView) Len() int {
	data, ok := w.data()
	if !ok {
		return 0
	}
	return len(data.Elements)
}

// PushBack records value at t, then evicts entries that have fallen
// outside the window (by count for a tick-count window, by age for a
// duration window).
//
// TypeMeta.WindowDuration is a time.Duration (nanoseconds) but
// EngineTime advances in microseconds (enginetime.go), so the cutoff
// must go through Microseconds() rather than a raw int64 cast — a
// plain conversion would read the duration 1000x too short.
func (w WindowView) PushBack(t tsgraph.EngineTime, value tsgraph.AnyValue) error {
	data, ok := w.data()
	if !ok {
		return tsgraph.ErrTypeMismatch
	}
	data.Elements = append(data.Elements, tsgraph.WindowEntry{Time: t, Value: value.Clone()})

	if w.typ.MaxCount > 0 {
		if excess := len(data.Elements) - w.typ.MaxCount; excess > 0 {
			data.Elements = data.Elements[excess:]
		}
		return nil
	}

	if w.typ.WindowDuration > 0 {
		cutoff := t.Add(-tsgraph.EngineTime(w.typ.WindowDuration.Microseconds()))
		keepFrom := 0
		for keepFrom < len(data.Elements) && data.Elements[keepFrom].Time.Before(cutoff) {
			keepFrom++
		}
		if keepFrom > 0 {
			data.Elements = data.Elements[keepFrom:]
		}
	}
	return nil
}

// Front returns the oldest retained entry.
func (w WindowView) Front() (tsgraph.WindowEntry, error) {
	data, ok := w.data()
	if !ok || len(data.Elements) == 0 {
		return tsgraph.WindowEntry{}, tsgraph.ErrEmptyContainer
	}
	return data.Elements[0], nil
}

// Back returns the most recently pushed entry.
func (w WindowView) Back() (tsgraph.WindowEntry, error) {
	data, ok := w.data()
	if !ok || len(data.Elements) == 0 {
		return tsgraph.WindowEntry{}, tsgraph.ErrEmptyContainer
	}
	return data.Elements[len(data.Elements)-1], nil
}

// Items returns the window's retained entries, oldest first.
func (w WindowView) Items() []tsgraph.WindowEntry {
	data, ok := w.data()
	if !ok {
		return nil
	}
	return data.Elements
}
