package tsgraph

import "github.com/pkg/errors"

// TsCollectionEventBuilder accumulates per-key operations during a
// single evaluation cycle and seals them into one TsCollectionEvent,
// resolving the Open Question on batching (SPEC_FULL.md §6): one
// apply_event per (cell, time), with any number of intra-cycle
// mutations accumulated here first. Adapted from commands.go's
// typed-operation-struct shape, generalized from "one command applied
// immediately" to "many typed ops accumulated, validated once at Build".
type TsCollectionEventBuilder struct {
	time  EngineTime
	kind  EventKind
	items []CollectionItem
	seen  map[string]int // last index per key, so a later op on the same key overwrites rather than appends
}

// NewCollectionEventBuilder starts a builder for events at time t.
func NewCollectionEventBuilder(t EngineTime) *TsCollectionEventBuilder {
	return &TsCollectionEventBuilder{time: t, kind: EventModify, seen: make(map[string]int)}
}

// Modify records that key took value at this tick.
func (b *TsCollectionEventBuilder) Modify(key, value AnyValue) *TsCollectionEventBuilder {
	return b.record(CollectionItem{Key: key, Op: ItemModify, Value: value})
}

// Reset records that key was reset to empty at this tick.
func (b *TsCollectionEventBuilder) Reset(key AnyValue) *TsCollectionEventBuilder {
	return b.record(CollectionItem{Key: key, Op: ItemReset})
}

// Remove records that key was removed at this tick.
func (b *TsCollectionEventBuilder) Remove(key AnyValue) *TsCollectionEventBuilder {
	return b.record(CollectionItem{Key: key, Op: ItemRemove})
}

func (b *TsCollectionEventBuilder) record(item CollectionItem) *TsCollectionEventBuilder {
	keyTag, ok := item.Key.HashCode()
	if !ok {
		// Unhashable keys still get a stable slot by falling back to
		// position-based identity: each unhashable-key op is unique.
		b.items = append(b.items, item)
		return b
	}
	tag := itoa64(int64(keyTag))
	if idx, exists := b.seen[tag]; exists {
		b.items[idx] = item
		return b
	}
	b.seen[tag] = len(b.items)
	b.items = append(b.items, item)
	return b
}

// Build validates and seals the accumulated items into a
// TsCollectionEvent. An empty builder still produces a valid EventNone.
func (b *TsCollectionEventBuilder) Build() (TsCollectionEvent, error) {
	kind := EventNone
	if len(b.items) > 0 {
		kind = EventModify
	}
	event := TsCollectionEvent{Time: b.time, Kind: kind, Items: b.items}
	if !event.IsValid() {
		return TsCollectionEvent{}, errors.Wrap(ErrInvalidEvent, "collection event builder")
	}
	return event, nil
}

// TsSetEventBuilder accumulates added/removed elements during a single
// evaluation cycle, the set-shaped counterpart of
// TsCollectionEventBuilder.
type TsSetEventBuilder struct {
	time    EngineTime
	added   []AnyValue
	removed []AnyValue
}

// NewSetEventBuilder starts a builder for set events at time t.
func NewSetEventBuilder(t EngineTime) *TsSetEventBuilder {
	return &TsSetEventBuilder{time: t}
}

// Add records that value was added to the set at this tick.
func (b *TsSetEventBuilder) Add(value AnyValue) *TsSetEventBuilder {
	b.added = append(b.added, value)
	return b
}

// RemoveValue records that value was removed from the set at this tick.
func (b *TsSetEventBuilder) RemoveValue(value AnyValue) *TsSetEventBuilder {
	b.removed = append(b.removed, value)
	return b
}

// Build validates and seals the accumulated elements into a TsSetEvent.
func (b *TsSetEventBuilder) Build() (TsSetEvent, error) {
	kind := EventNone
	if len(b.added) > 0 || len(b.removed) > 0 {
		kind = EventModify
	}
	event := TsSetEvent{Time: b.time, Kind: kind, Added: b.added, Removed: b.removed}
	if !event.IsValid() {
		return TsSetEvent{}, errors.Wrap(ErrInvalidEvent, "set event builder")
	}
	return event, nil
}
