package tsgraph

// EventKind tags the shape of a scalar TsEvent. The kind set is closed
// and dispatched by switch, the same closed-kind-set reasoning as
// TypeMeta.Kind.
type EventKind uint8

const (
	// EventNone carries no payload and does not change validity.
	EventNone EventKind = iota
	// EventRecover re-asserts the current value without a logical
	// change; it admits either a payload or none.
	EventRecover
	// EventModify requires a payload and marks the cell valid.
	EventModify
	// EventInvalidate carries no payload and marks the cell invalid.
	EventInvalidate
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "None"
	case EventRecover:
		return "Recover"
	case EventModify:
		return "Modify"
	case EventInvalidate:
		return "Invalidate"
	default:
		return "Unknown"
	}
}

// TsEvent is the scalar event shape from spec.md §3.5: a timestamp, a
// kind, and an optional payload. Construct one with none/modify/recover/
// invalidate rather than the struct literal, so the well-formedness
// invariant (Modify requires a payload; Invalidate/None require none)
// only has one place it can be violated.
type TsEvent struct {
	Time    EngineTime
	Kind    EventKind
	Payload AnyValue
}

// NoneEvent constructs a well-formed EventNone at t.
func NoneEvent(t EngineTime) TsEvent {
	return TsEvent{Time: t, Kind: EventNone}
}

// ModifyEvent constructs an EventModify at t carrying payload. The event
// is well-formed only if payload holds a value; this is not checked here.
func ModifyEvent(t EngineTime, payload AnyValue) TsEvent {
	return TsEvent{Time: t, Kind: EventModify, Payload: payload}
}

// RecoverEvent constructs an EventRecover at t, optionally carrying
// payload (the zero AnyValue is a valid "no payload" recover).
func RecoverEvent(t EngineTime, payload AnyValue) TsEvent {
	return TsEvent{Time: t, Kind: EventRecover, Payload: payload}
}

// InvalidateEvent constructs a well-formed EventInvalidate at t.
func InvalidateEvent(t EngineTime) TsEvent {
	return TsEvent{Time: t, Kind: EventInvalidate}
}

// IsValid reports whether the event satisfies spec.md §3.5's
// well-formedness rule: Modify requires a payload; Invalidate and None
// require none; Recover admits either.
func (e TsEvent) IsValid() bool {
	switch e.Kind {
	case EventModify:
		return e.Payload.HasValue()
	case EventInvalidate, EventNone:
		return !e.Payload.HasValue()
	case EventRecover:
		return true
	default:
		return false
	}
}

// VisitEventAs runs fn against the event's payload if it holds a T,
// returning false if the event has no payload or the payload is not a
// T. It is the event-level counterpart of GetIf.
func VisitEventAs[T any](e TsEvent, fn func(T)) bool {
	v, ok := GetIf[T](&e.Payload)
	if !ok {
		return false
	}
	fn(v)
	return true
}
