package tsgraph

import "github.com/pkg/errors"

// Sentinel errors grouped by the taxonomy in the error handling design:
// type mismatch, temporal violation, invariant breach, and structural
// access error. Each is fatal at the call site and surfaced to the
// caller; the core performs no retries and swallows nothing.
var (
	// ErrTypeMismatch indicates an AnyValue, event payload, or bind
	// target had a TypeMeta different from the one expected.
	ErrTypeMismatch = errors.New("tsgraph: type mismatch")
	// ErrTemporalViolation indicates a second event was applied to a
	// cell at an engine time that already has one.
	ErrTemporalViolation = errors.New("tsgraph: two events at the same engine time")
	// ErrUnbound indicates apply_event was attempted on a NonBound cell.
	ErrUnbound = errors.New("tsgraph: cell is not bound to an output")
	// ErrNoObserver indicates a subscribe call had no observer to register.
	ErrNoObserver = errors.New("tsgraph: subscribing without an observer")
	// ErrNoOrder indicates Less was attempted on a type with no ordering.
	ErrNoOrder = errors.New("tsgraph: type has no ordering")
	// ErrEmptyValue indicates an operation required a non-empty AnyValue.
	ErrEmptyValue = errors.New("tsgraph: operation on an empty value")
	// ErrFieldNotFound indicates a bundle field name was not present.
	ErrFieldNotFound = errors.New("tsgraph: field not found")
	// ErrIndexOutOfRange indicates a list/tuple index was out of bounds.
	ErrIndexOutOfRange = errors.New("tsgraph: index out of range")
	// ErrKeyNotFound indicates a map lookup missed.
	ErrKeyNotFound = errors.New("tsgraph: key not found")
	// ErrEmptyContainer indicates a pop was attempted on an empty
	// list/queue/cyclic buffer.
	ErrEmptyContainer = errors.New("tsgraph: pop from empty container")
	// ErrFixedSize indicates a resize/push was attempted on a fixed-size
	// container.
	ErrFixedSize = errors.New("tsgraph: container has fixed size")
	// ErrUnhashableElement indicates a set/map was built over an
	// element or key TypeMeta that is not Hashable.
	ErrUnhashableElement = errors.New("tsgraph: element type is not hashable")
	// ErrAlreadyRegistered indicates a scalar Go type was registered twice
	// under different type names.
	ErrAlreadyRegistered = errors.New("tsgraph: type already registered")
	// ErrInvalidEvent indicates an event failed its own well-formedness
	// check (is_valid): Modify without a payload, or Invalidate/None
	// with one.
	ErrInvalidEvent = errors.New("tsgraph: malformed event")
	// ErrNilStrategy mirrors the teacher's nil-strategy guard. No function
	// in this module returns it.
	ErrNilStrategy = errors.New("tsgraph: nil builder strategy")
)
