package tsgraph

// SubscriberHandle identifies one registration in a SubscriberSet. Using
// an opaque handle instead of keying off the Observer value itself
// sidesteps a real Go landmine: Observer is an interface, and a func-typed
// implementation (ObserverFunc) is not comparable, so a map keyed by
// Observer would panic the first time someone subscribed a function
// literal. A monotonically increasing id has no such restriction and is
// the shape TSInput already needs anyway (it must remember its own
// subscription to unsubscribe later).
type SubscriberHandle struct {
	id uint64
}

// IsZero reports whether the handle was never issued by Add.
func (h SubscriberHandle) IsZero() bool { return h.id == 0 }

type subscriberEntry struct {
	id       uint64
	observer Observer
}

// SubscriberSet is the deterministic, insertion-ordered subscriber list
// behind a Peered TSValue's notify_subscribers (spec.md §3.6, §4.E), and
// the backing structure the spec's "O(n)-total, deterministic iteration"
// requirement (§4.C) is built on.
type SubscriberSet struct {
	nextID  uint64
	entries []subscriberEntry
}

// NewSubscriberSet creates an empty set.
func NewSubscriberSet() *SubscriberSet {
	return &SubscriberSet{}
}

// Add registers o and returns a handle for later removal.
func (s *SubscriberSet) Add(o Observer) (SubscriberHandle, error) {
	if o == nil {
		return SubscriberHandle{}, ErrNoObserver
	}
	s.nextID++
	h := SubscriberHandle{id: s.nextID}
	s.entries = append(s.entries, subscriberEntry{id: h.id, observer: o})
	return h, nil
}

// Remove unregisters the subscriber identified by h, if still present.
func (s *SubscriberSet) Remove(h SubscriberHandle) {
	for i, e := range s.entries {
		if e.id == h.id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Len reports the number of registered subscribers.
func (s *SubscriberSet) Len() int { return len(s.entries) }

// NotifyAll calls Notify(t) on every subscriber registered at the time
// NotifyAll was invoked, in registration order. A subscriber added by one
// of these calls (re-entrant subscribe-during-notify) is not notified
// for this same pass — spec.md §5's ordering guarantee that "one
// registered during a notification is not called for this cycle's
// event" — because the snapshot is taken up front.
func (s *SubscriberSet) NotifyAll(t EngineTime) {
	snapshot := make([]Observer, len(s.entries))
	for i, e := range s.entries {
		snapshot[i] = e.observer
	}
	for _, o := range snapshot {
		o.Notify(t)
	}
}

// ChildLink connects a child Peered cell to the composite Peered cell
// that owns it (spec.md §3.8, §4.J). It holds a direct Go pointer to the
// parent, used to propagate modifications upward, and the ArenaIndex of
// the child's own slot in the parent's children arena, used by
// DetachChild. The link to the parent is a pointer, not an arena index.
type ChildLink struct {
	parent *Peered
	index  ArenaIndex
}
