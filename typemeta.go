package tsgraph

import "time"

// Kind tags the shape a TypeMeta describes. The kind set is closed, so
// composite operations dispatch on Kind directly instead of going through
// a function-pointer op-table; only Scalar types need per-type extension,
// and those get the ScalarOps vtable below.
type Kind uint8

const (
	KindScalar Kind = iota
	KindBundle
	KindTuple
	KindList
	KindSet
	KindMap
	KindCyclicBuffer
	KindQueue
	KindWindow
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "Scalar"
	case KindBundle:
		return "Bundle"
	case KindTuple:
		return "Tuple"
	case KindList:
		return "List"
	case KindSet:
		return "Set"
	case KindMap:
		return "Map"
	case KindCyclicBuffer:
		return "CyclicBuffer"
	case KindQueue:
		return "Queue"
	case KindWindow:
		return "Window"
	case KindRef:
		return "Ref"
	default:
		return "Unknown"
	}
}

// Flags is a bitset describing structural properties of a TypeMeta,
// independent of its Kind.
type Flags uint16

const (
	FlagEquatable Flags = 1 << iota
	FlagComparable
	FlagHashable
	FlagTriviallyCopyable
	FlagTriviallyDestructible
	FlagBufferCompatible
	FlagArithmetic
	FlagIntegral
	FlagContainer
)

// Has reports whether every bit in want is set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }

// Any reports whether any bit in want is set in f.
func (f Flags) Any(want Flags) bool { return f&want != 0 }

// sboThreshold bounds the payload size considered "inline" for the
// purposes of TypeMeta.Flags' BufferCompatible bit and AnyValue.IsInline.
// Go's garbage-collected interface boxing already avoids a separate heap
// allocation for the common small scalar kinds; this constant exists so
// IsInline reports the C++ original's SBO threshold descriptively (see
// anyvalue.go), not because tsgraph places bytes manually.
const sboThreshold = 16

// Field describes one member of a Bundle or Tuple TypeMeta. Offset is the
// member's position within the value's internal field slice (tsgraph
// stores composite payloads as ordered Go slices rather than laid-out
// byte structures, so there is no meaningful byte offset to report).
type Field struct {
	Name   string
	Offset int
	Type   *TypeMeta
}

// ScalarOps is the dynamic dispatch point for a Scalar TypeMeta: the one
// place the core needs user extensibility, since the composite Kinds are
// a closed set handled by kind-switch dispatch elsewhere in the package.
type ScalarOps struct {
	// TypeName is a short human-readable name for the type, e.g. "int64".
	TypeName string
	// Equals reports whether two values of this type are equal. Required
	// when FlagEquatable is set.
	Equals func(a, b any) bool
	// Less reports a strict order between two values. ok is false when
	// the type has no total order even though Equals is defined.
	// Required when FlagComparable is set.
	Less func(a, b any) (less bool, ok bool)
	// Hash returns a content hash for the value. ok is false when the
	// type is not hashable. Required when FlagHashable is set.
	Hash func(a any) (sum uint64, ok bool)
	// ToString renders a canonical, human-readable representation.
	ToString func(a any) string
	// ToNative and FromNative convert to/from the host binding's native
	// representation. Both are optional: nil means the boundary hook is
	// not implemented for this type. The core never calls these itself
	// during propagation; they exist only for the host-facing boundary
	// (spec §6).
	ToNative   func(a any) (any, error)
	FromNative func(native any) (any, error)
	// Arithmetic is non-nil when FlagArithmetic is set.
	Arithmetic *ArithmeticOps
}

// ArithmeticOps supplies the binary arithmetic operators for a Scalar
// TypeMeta with FlagArithmetic set.
type ArithmeticOps struct {
	Add func(a, b any) (any, error)
	Sub func(a, b any) (any, error)
	Mul func(a, b any) (any, error)
	Div func(a, b any) (any, error)
}

// TypeMeta is the runtime descriptor for a storage type: primitives,
// timestamps, opaque objects, or nested composites. Once registered a
// TypeMeta has stable pointer identity for the process lifetime, and
// equality between TypeMetas is always by pointer — never compare two
// TypeMeta values, compare the pointers.
type TypeMeta struct {
	// Name is the fully qualified type name used in structural caches
	// and debug output.
	Name string
	// Size and Alignment describe the layout of one instance. In a
	// garbage-collected language these are informational only (no code
	// in this package ever places a value at a manual byte offset); Size
	// is what RegisterScalar derives the BufferCompatible flag from.
	Size      uintptr
	Alignment uintptr
	Flags     Flags
	Kind      Kind

	// Scalar holds the op-table; non-nil only when Kind == KindScalar.
	Scalar *ScalarOps

	// ElementType is set for List, Set, Map (value type), CyclicBuffer,
	// Queue, Window and Ref.
	ElementType *TypeMeta
	// KeyType is set only for Map.
	KeyType *TypeMeta
	// Fields is set for Bundle and Tuple. Tuple fields have empty Name.
	Fields []Field
	// BundleName participates in the Bundle structural cache key.
	BundleName string
	// FixedSize applies to List, CyclicBuffer and Queue: -1 means
	// dynamic, >0 means fixed at that size.
	FixedSize int
	// MaxCount and WindowDuration apply to Window: a tick-count window
	// sets MaxCount > 0 and WindowDuration == 0; a duration window sets
	// WindowDuration > 0 and MaxCount == 0.
	MaxCount       int
	WindowDuration time.Duration
}

// IsScalar, IsComposite and IsRef are small readability helpers used
// throughout the package and by tsgraph/views.
func (t *TypeMeta) IsScalar() bool    { return t.Kind == KindScalar }
func (t *TypeMeta) IsRef() bool       { return t.Kind == KindRef }
func (t *TypeMeta) IsContainer() bool { return t.Flags.Has(FlagContainer) }

// FieldByName returns the field descriptor and its index, or false if the
// bundle has no field with that name. Valid only for Kind == KindBundle.
func (t *TypeMeta) FieldByName(name string) (Field, int, bool) {
	for i, f := range t.Fields {
		if f.Name == name {
			return f, i, true
		}
	}
	return Field{}, -1, false
}

// String renders the type for logs and debug panels.
func (t *TypeMeta) String() string {
	if t == nil {
		return "<nil TypeMeta>"
	}
	return t.Name
}
