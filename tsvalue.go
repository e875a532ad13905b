package tsgraph

import "github.com/pkg/errors"

// TSValue is the observable storage cell behind a TSOutput and any
// TSInput bound to it (spec.md §3.6). The two implementations —
// NonBound and Peered — are interchangeable behind this interface so
// TSInput can rebind from one to the other without its callers caring.
type TSValue interface {
	// Value returns the current value, or an empty AnyValue if invalid.
	Value() AnyValue
	// Valid reports whether the last event's kind was Modify or Recover.
	Valid() bool
	// ModifiedAt reports whether the last event happened exactly at t.
	ModifiedAt(t EngineTime) bool
	// LastModifiedTime is the last event's time, or MinEngineTime if the
	// cell has never received a non-None event.
	LastModifiedTime() EngineTime
	// ExpectedType is the payload TypeMeta this cell was constructed with.
	ExpectedType() *TypeMeta
	// ApplyEvent validates and applies e, notifying subscribers before
	// returning (spec.md §5: synchronous, no suspension points).
	ApplyEvent(e TsEvent) error
	// QueryEvent returns the last event iff it happened at t, else a
	// well-formed None event at t.
	QueryEvent(t EngineTime) TsEvent
	// Reset clears value and last event without notifying.
	Reset()
	// MarkInvalid builds and applies an Invalidate event at t.
	MarkInvalid(t EngineTime) error
	// NotifySubscribers calls Notify(t) on every current subscriber.
	NotifySubscribers(t EngineTime)
	// AddSubscriber registers o, returning a handle for RemoveSubscriber.
	AddSubscriber(o Observer) (SubscriberHandle, error)
	// RemoveSubscriber unregisters a previously added subscriber.
	RemoveSubscriber(h SubscriberHandle)
}

// NonBound is the TSValue behind an unbound TSInput (spec.md §4.E).
// It never holds a value and cannot accept events; it only remembers
// whether the input was made active so that binding later can restore
// that state on the Peered cell it migrates to.
type NonBound struct {
	expected *TypeMeta
	active   bool
}

// NewNonBound constructs a NonBound cell expecting values of t.
func NewNonBound(expected *TypeMeta) *NonBound {
	return &NonBound{expected: expected}
}

func (n *NonBound) Value() AnyValue              { return AnyValue{} }
func (n *NonBound) Valid() bool                   { return false }
func (n *NonBound) ModifiedAt(t EngineTime) bool  { return false }
func (n *NonBound) LastModifiedTime() EngineTime  { return MinEngineTime }
func (n *NonBound) ExpectedType() *TypeMeta        { return n.expected }
func (n *NonBound) Reset()                         {}
func (n *NonBound) NotifySubscribers(EngineTime)   {}

func (n *NonBound) ApplyEvent(TsEvent) error {
	return errors.Wrap(ErrUnbound, "apply_event on an unbound cell")
}

func (n *NonBound) QueryEvent(t EngineTime) TsEvent { return NoneEvent(t) }

func (n *NonBound) MarkInvalid(EngineTime) error {
	return errors.Wrap(ErrUnbound, "mark_invalid on an unbound cell")
}

// AddSubscriber has nothing to notify from, so it only records that the
// caller wants to be active; subscriber identity is not tracked, matching
// spec.md §4.E.
func (n *NonBound) AddSubscriber(o Observer) (SubscriberHandle, error) {
	if o == nil {
		return SubscriberHandle{}, ErrNoObserver
	}
	n.active = true
	return SubscriberHandle{}, nil
}

// RemoveSubscriber clears the local active flag.
func (n *NonBound) RemoveSubscriber(SubscriberHandle) { n.active = false }

// Active reports the locally tracked active flag.
func (n *NonBound) Active() bool { return n.active }

// Peered is the TSValue shared between a TSOutput and every TSInput
// bound to it (spec.md §4.E). It is the only TSValue implementation
// that actually stores a value, a last event, and a subscriber set.
type Peered struct {
	expected        *TypeMeta
	current         AnyValue
	lastEvent       TsEvent
	subscribers     *SubscriberSet
	childModifiedAt EngineTime
	childLink       *ChildLink
	children        *CellArena[*Peered]
}

// NewPeered constructs a fresh Peered cell expecting values of t, with
// no value and no last event.
func NewPeered(expected *TypeMeta) *Peered {
	return &Peered{
		expected:        expected,
		lastEvent:       NoneEvent(MinEngineTime),
		subscribers:     NewSubscriberSet(),
		childModifiedAt: MinEngineTime,
	}
}

func (p *Peered) Value() AnyValue       { return p.current }
func (p *Peered) ExpectedType() *TypeMeta { return p.expected }

func (p *Peered) Valid() bool {
	return p.lastEvent.Kind == EventModify || p.lastEvent.Kind == EventRecover
}

func (p *Peered) LastModifiedTime() EngineTime {
	if p.lastEvent.Kind == EventNone {
		return MinEngineTime
	}
	return p.lastEvent.Time
}

func (p *Peered) ModifiedAt(t EngineTime) bool {
	return p.lastEvent.Kind != EventNone && p.lastEvent.Time == t
}

// ApplyEvent enforces the two validations from spec.md §3.6: at most one
// event per (cell, time), and the payload's TypeMeta must equal the
// cell's expected type. It then updates current value, records the
// event, and notifies subscribers before returning.
func (p *Peered) ApplyEvent(e TsEvent) error {
	if !e.IsValid() {
		return errors.Wrap(ErrInvalidEvent, "apply_event")
	}
	if p.lastEvent.Kind != EventNone && p.lastEvent.Time == e.Time {
		return errors.Wrapf(ErrTemporalViolation, "cell already has an event at %s", e.Time)
	}

	switch e.Kind {
	case EventModify, EventRecover:
		if e.Payload.HasValue() {
			if e.Payload.Type() != p.expected {
				return errors.Wrapf(ErrTypeMismatch, "expected %s, got %s", p.expected, e.Payload.Type())
			}
			p.current = e.Payload
		}
	case EventInvalidate:
		p.current = AnyValue{}
	}

	p.lastEvent = e
	p.NotifySubscribers(e.Time)
	return nil
}

// QueryEvent returns the last event iff it happened at t.
func (p *Peered) QueryEvent(t EngineTime) TsEvent {
	if p.lastEvent.Kind != EventNone && p.lastEvent.Time == t {
		return p.lastEvent
	}
	return NoneEvent(t)
}

// Reset clears value and last event without notifying, per spec.md §4.E.
func (p *Peered) Reset() {
	p.current = AnyValue{}
	p.lastEvent = NoneEvent(MinEngineTime)
}

// MarkInvalid builds and applies an Invalidate event at t.
func (p *Peered) MarkInvalid(t EngineTime) error {
	return p.ApplyEvent(InvalidateEvent(t))
}

// NotifySubscribers calls Notify(t) on every current subscriber, then —
// if this cell is itself a child of a composite parent — propagates the
// change upward via markChildModified (spec.md §4.J: "children are
// marked modified before parents").
func (p *Peered) NotifySubscribers(t EngineTime) {
	p.subscribers.NotifyAll(t)
	if p.childLink != nil {
		p.childLink.parent.markChildModified(t)
	}
}

// AddSubscriber registers o on this cell's subscriber set.
func (p *Peered) AddSubscriber(o Observer) (SubscriberHandle, error) {
	return p.subscribers.Add(o)
}

// RemoveSubscriber unregisters a previously added subscriber.
func (p *Peered) RemoveSubscriber(h SubscriberHandle) { p.subscribers.Remove(h) }

// ChildModifiedAt reports the last time a child of this composite cell
// reported a modification, independent of this cell's own last event.
func (p *Peered) ChildModifiedAt() EngineTime { return p.childModifiedAt }

// markChildModified is called by a child cell's NotifySubscribers. It
// records the modification time, notifies this cell's own subscribers
// only if it has any (spec.md §3.8: "without triggering a parent's own
// notification unless the parent has subscribers"), and continues
// propagating to this cell's own parent, if any.
func (p *Peered) markChildModified(t EngineTime) {
	p.childModifiedAt = t
	if p.subscribers.Len() > 0 {
		p.subscribers.NotifyAll(t)
	}
	if p.childLink != nil {
		p.childLink.parent.markChildModified(t)
	}
}

// AttachChild registers child as a structural child of p, returning the
// ArenaIndex the child should remember to DetachChild later, so that
// modifying the child cell marks p modified. The module has no composite
// output type of its own; TSOutput.AttachToParent is the caller here.
func (p *Peered) AttachChild(child *Peered) ArenaIndex {
	if p.children == nil {
		p.children = NewCellArena[*Peered]()
	}
	idx := p.children.Insert(child)
	child.childLink = &ChildLink{parent: p, index: idx}
	return idx
}

// DetachChild removes the child at idx, clearing its back-link.
func (p *Peered) DetachChild(idx ArenaIndex) {
	if p.children == nil {
		return
	}
	if child, ok := p.children.Get(idx); ok {
		child.childLink = nil
	}
	p.children.Remove(idx)
}

var (
	_ TSValue = (*NonBound)(nil)
	_ TSValue = (*Peered)(nil)
)
