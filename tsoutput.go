package tsgraph

// TSOutput is the write side of a time-series cell of payload type T
// (spec.md §4.F). It owns a fresh Peered TSValue from construction and
// the NotifiableContext of the node that owns it.
type TSOutput[T any] struct {
	owner    NotifiableContext
	expected *TypeMeta
	impl     *Peered
}

// NewTSOutput constructs an output owned by owner, expecting payloads of
// type t.
func NewTSOutput[T any](owner NotifiableContext, t *TypeMeta) *TSOutput[T] {
	return &TSOutput[T]{owner: owner, expected: t, impl: NewPeered(t)}
}

// SetValue builds Modify(current_time, v) and applies it.
func (o *TSOutput[T]) SetValue(v T) error {
	var payload AnyValue
	Emplace(&payload, o.expected, v)
	return o.impl.ApplyEvent(ModifyEvent(o.owner.CurrentEngineTime(), payload))
}

// Invalidate builds Invalidate(current_time) and applies it.
func (o *TSOutput[T]) Invalidate() error {
	return o.impl.ApplyEvent(InvalidateEvent(o.owner.CurrentEngineTime()))
}

// Reset clears state without notifying.
func (o *TSOutput[T]) Reset() { o.impl.Reset() }

// DeltaValue returns the event for the current engine time (possibly
// None).
func (o *TSOutput[T]) DeltaValue() TsEvent {
	return o.impl.QueryEvent(o.owner.CurrentEngineTime())
}

// Subscribe registers n as an observer of this output.
func (o *TSOutput[T]) Subscribe(n Observer) (SubscriberHandle, error) {
	return o.impl.AddSubscriber(n)
}

// Unsubscribe removes a previously registered observer.
func (o *TSOutput[T]) Unsubscribe(h SubscriberHandle) { o.impl.RemoveSubscriber(h) }

// Modified reports whether the output changed exactly at t.
func (o *TSOutput[T]) Modified(t EngineTime) bool { return o.impl.ModifiedAt(t) }

// Valid reports whether the output currently holds a value.
func (o *TSOutput[T]) Valid() bool { return o.impl.Valid() }

// LastModifiedTime is the engine time of the last applied event.
func (o *TSOutput[T]) LastModifiedTime() EngineTime { return o.impl.LastModifiedTime() }

// Value returns the current typed value and whether one is present.
func (o *TSOutput[T]) Value() (T, bool) {
	v := o.impl.Value()
	return GetIf[T](&v)
}

// NotifyParent forwards "child modified at t" to the owning composite
// output, if this output is nested inside one (spec.md §4.F
// notify_parent). A non-nested output is a no-op.
func (o *TSOutput[T]) NotifyParent(t EngineTime) {
	if o.impl.childLink != nil {
		o.impl.childLink.parent.markChildModified(t)
	}
}

// AttachToParent registers this output's Peered cell as a structural
// child of parent, so that SetValue/Invalidate on this output also marks
// parent modified (spec.md §3.8, §4.J). No constructor in this module
// calls it; code that nests outputs under a composite cell calls it once
// per field/element.
func (o *TSOutput[T]) AttachToParent(parent *Peered) ArenaIndex {
	return parent.AttachChild(o.impl)
}

// PeeredImpl exposes the underlying Peered cell for TSInput.BindOutput,
// which needs to share the same TSValue instance rather than copy it.
func (o *TSOutput[T]) PeeredImpl() *Peered { return o.impl }

// ExpectedType returns the TypeMeta this output was constructed with.
func (o *TSOutput[T]) ExpectedType() *TypeMeta { return o.expected }
