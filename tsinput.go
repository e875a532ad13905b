package tsgraph

import "github.com/pkg/errors"

// TSInput is the read side of a time-series cell of payload type T
// (spec.md §4.F). It starts life unbound (backed by a fresh NonBound
// cell) and may be bound to a TSOutput's Peered cell, sharing that
// instance rather than copying it. TSInput itself implements Observer so
// binding can subscribe it directly on the shared TSValue.
type TSInput[T any] struct {
	owner        NotifiableContext
	expected     *TypeMeta
	impl         TSValue
	boundPeered  *Peered // non-nil iff impl is a Peered shared with an output
	active       bool
	subscription SubscriberHandle
}

// NewTSInput constructs an unbound input owned by owner, expecting
// payloads of type t.
func NewTSInput[T any](owner NotifiableContext, t *TypeMeta) *TSInput[T] {
	return &TSInput[T]{owner: owner, expected: t, impl: NewNonBound(t)}
}

// Notify implements Observer: a notification from the shared Peered
// impl forwards to the owning node so it gets scheduled (spec.md §4.F).
func (in *TSInput[T]) Notify(t EngineTime) {
	in.owner.Notify(t)
}

// BindOutput switches this input onto out's shared TSValue, preserving
// whatever active state the input had (spec.md §4.F bind_output):
//  1. verify expected TypeMetas match
//  2. snapshot active state from the current impl
//  3. switch impl to the output's Peered cell
//  4. if the input was active, re-subscribe on the new impl
func (in *TSInput[T]) BindOutput(out *TSOutput[T]) error {
	if out.ExpectedType() != in.expected {
		return errors.Wrapf(ErrTypeMismatch, "bind_output: expected %s, got %s", in.expected, out.ExpectedType())
	}
	wasActive := in.active
	in.unsubscribeCurrent()

	in.impl = out.PeeredImpl()
	in.boundPeered = out.PeeredImpl()

	if wasActive {
		return in.MakeActive()
	}
	return nil
}

// Unbind switches this input back to a fresh NonBound cell of the same
// expected type, preserving active state and dropping any subscription
// on the old impl.
func (in *TSInput[T]) Unbind() {
	wasActive := in.active
	in.unsubscribeCurrent()

	in.impl = NewNonBound(in.expected)
	in.boundPeered = nil
	in.active = false

	if wasActive {
		_ = in.MakeActive()
	}
}

// CopyFromInput binds this input to the same shared TSValue other is
// bound to, without ever copying the payload (spec.md §4.F
// copy_from_input). other must currently be bound.
func (in *TSInput[T]) CopyFromInput(other *TSInput[T]) error {
	if other.boundPeered == nil {
		return errors.Wrap(ErrUnbound, "copy_from_input: source input is not bound")
	}
	wasActive := in.active
	in.unsubscribeCurrent()

	in.impl = other.boundPeered
	in.boundPeered = other.boundPeered

	if wasActive {
		return in.MakeActive()
	}
	return nil
}

// MakeActive adds this input as a subscriber on the shared impl.
func (in *TSInput[T]) MakeActive() error {
	if in.active && !in.subscription.IsZero() {
		return nil
	}
	h, err := in.impl.AddSubscriber(in)
	if err != nil {
		return err
	}
	in.subscription = h
	in.active = true
	return nil
}

// MakePassive removes this input as a subscriber on the shared impl.
func (in *TSInput[T]) MakePassive() {
	in.unsubscribeCurrent()
	in.active = false
}

// Active reports whether this input is in the shared impl's subscriber
// set.
func (in *TSInput[T]) Active() bool { return in.active }

// Bound reports whether this input currently shares a TSValue with an
// output.
func (in *TSInput[T]) Bound() bool { return in.boundPeered != nil }

// Valid delegates to the shared impl.
func (in *TSInput[T]) Valid() bool { return in.impl.Valid() }

// Modified reports whether the shared impl changed exactly at t.
func (in *TSInput[T]) Modified(t EngineTime) bool { return in.impl.ModifiedAt(t) }

// LastModifiedTime delegates to the shared impl.
func (in *TSInput[T]) LastModifiedTime() EngineTime { return in.impl.LastModifiedTime() }

// Value returns the current typed value and whether one is present.
func (in *TSInput[T]) Value() (T, bool) {
	v := in.impl.Value()
	return GetIf[T](&v)
}

// DeltaValue returns the event for t from the shared impl.
func (in *TSInput[T]) DeltaValue(t EngineTime) TsEvent { return in.impl.QueryEvent(t) }

func (in *TSInput[T]) unsubscribeCurrent() {
	if in.active && !in.subscription.IsZero() {
		in.impl.RemoveSubscriber(in.subscription)
	}
	in.subscription = SubscriberHandle{}
}
