package tsgraph

// The composite data structs below hold the concrete payload for each
// composite Kind (spec.md §4.C). They live in the root package rather
// than tsgraph/views so that AnyValue can hold them without importing
// the navigator package; tsgraph/views imports this package and adds
// the ergonomic accessors (at/push_back/insert/...) on top, the same
// one-directional layering as the teacher's ecs/storage → ecs split.
//
// Every data struct stores its elements as plain Go slices/maps of
// AnyValue rather than a manually laid-out buffer: there is no SBO for
// composites in the C++ sense (spec.md §4.B's buffer optimization
// applies to the *cell*, not the container payload), so a slice is both
// the simplest and the idiomatic representation.

// BundleData holds a bundle's named fields in declaration order, mirrored
// against its TypeMeta.Fields by index.
type BundleData struct {
	Fields []AnyValue
}

// TupleData holds a tuple's elements in declaration order.
type TupleData struct {
	Elements []AnyValue
}

// ListData holds a list's elements in order. Fixed-size lists reject
// every resize, push_back and pop_back (enforced by tsgraph/views,
// not here — this struct is pure storage).
type ListData struct {
	Elements []AnyValue
}

// SetData holds a set's elements with an insertion-ordered index so
// iteration is deterministic and O(n) total (spec.md §4.C "Ordering and
// iteration"). Order holds elements in insertion order; Index maps each
// element's HashCode to its position in Order for O(1) membership tests.
type SetData struct {
	Order []AnyValue
	Index map[uint64]int
}

// NewSetData constructs an empty SetData.
func NewSetData() *SetData {
	return &SetData{Index: make(map[uint64]int)}
}

// MapData holds a map's entries with the same insertion-ordered index
// structure as SetData, so Keys() can return a deterministically
// ordered set-shaped view (spec.md §4.C "keys() yields a set-shaped
// view").
type MapData struct {
	KeyOrder []AnyValue
	Values   []AnyValue
	Index    map[uint64]int
}

// NewMapData constructs an empty MapData.
func NewMapData() *MapData {
	return &MapData{Index: make(map[uint64]int)}
}

// CyclicData holds a fixed-capacity ring buffer: pushing past capacity
// evicts the oldest element.
type CyclicData struct {
	Elements []AnyValue
	Start    int // index of the oldest element within Elements
	Count    int
	Capacity int
}

// NewCyclicData constructs an empty cyclic buffer of the given capacity.
func NewCyclicData(capacity int) *CyclicData {
	return &CyclicData{Elements: make([]AnyValue, capacity), Capacity: capacity}
}

// QueueData holds a FIFO queue, optionally bounded by MaxCapacity (<= 0
// means unbounded).
type QueueData struct {
	Elements    []AnyValue
	MaxCapacity int
}

// WindowData holds a tick-count or duration window's retained elements,
// each stamped with the engine time it was pushed at so duration windows
// can evict by elapsed time.
type WindowData struct {
	Elements []WindowEntry
}

// WindowEntry pairs a retained window element with its push time.
type WindowEntry struct {
	Time  EngineTime
	Value AnyValue
}

// RefData holds a reference indirection: the AnyValue it points at. The
// referenced value is resolved through Registry.Dereference at the
// TypeMeta level before storage is ever allocated for it, so RefData
// exists mainly to let a REF[TS] schema's TSValue instance still expose
// an AnyValue of the expected (un-dereferenced) TypeMeta to callers that
// haven't dereferenced yet.
type RefData struct {
	Target AnyValue
}
