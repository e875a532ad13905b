package tsgraph

import "fmt"

// String renders a canonical, human-readable representation of a scalar
// event for logs and debug panels (spec.md §4.D: "both event shapes
// support equality (for tests) and pretty-printing").
func (e TsEvent) String() string {
	switch e.Kind {
	case EventModify:
		return fmt.Sprintf("Modify(%s, %s)", e.Time, e.Payload.String())
	case EventRecover:
		if e.Payload.HasValue() {
			return fmt.Sprintf("Recover(%s, %s)", e.Time, e.Payload.String())
		}
		return fmt.Sprintf("Recover(%s)", e.Time)
	case EventInvalidate:
		return fmt.Sprintf("Invalidate(%s)", e.Time)
	case EventNone:
		return fmt.Sprintf("None(%s)", e.Time)
	default:
		return fmt.Sprintf("UnknownEvent(%s)", e.Time)
	}
}

// Equal reports whether two scalar events are identical: same time,
// same kind, and (when present) equal payloads.
func (e TsEvent) Equal(other TsEvent) bool {
	if e.Time != other.Time || e.Kind != other.Kind {
		return false
	}
	if e.Payload.HasValue() != other.Payload.HasValue() {
		return false
	}
	if !e.Payload.HasValue() {
		return true
	}
	return e.Payload.Equal(&other.Payload)
}

// String renders a canonical representation of a collection event.
func (e TsCollectionEvent) String() string {
	out := fmt.Sprintf("CollectionEvent(%s, %s, [", e.Time, e.Kind)
	for i, it := range e.Items {
		if i > 0 {
			out += ", "
		}
		if it.Op == ItemModify {
			out += fmt.Sprintf("%s:%s=%s", it.Key.String(), it.Op, it.Value.String())
		} else {
			out += fmt.Sprintf("%s:%s", it.Key.String(), it.Op)
		}
	}
	return out + "])"
}

// String renders a canonical representation of a set event.
func (e TsSetEvent) String() string {
	return fmt.Sprintf("SetEvent(%s, %s, +%d, -%d)", e.Time, e.Kind, len(e.Added), len(e.Removed))
}
