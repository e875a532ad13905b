package tsgraph

// AnyValue is a type-erased container for one value of one TypeMeta. The
// C++ original distinguishes an inline small-buffer-optimized payload
// from a heap-allocated one; Go's `any` already boxes small values
// without a separate allocation for the common scalar kinds, so AnyValue
// stores the payload as `any` and reports IsInline descriptively (from
// TypeMeta.Flags) rather than by inspecting where the bytes actually
// live. See typemeta.go's sboThreshold comment.
//
// AnyValue has two storage modes: owned (the zero value after Emplace)
// and borrowed (after EmplaceRef, backed by an AnyRef). Clone turns a
// borrowed AnyValue into an owned duplicate by materializing the AnyRef.
// A plain Go assignment or pass by value does not: it copies the struct,
// and the copy shares the same AnyRef and stays borrowed.
type AnyValue struct {
	typ   *TypeMeta
	value any
	ref   *AnyRef
}

// Emplace destroys any held value and stores v as an owned value of
// type t. The caller is responsible for v's Go type matching t (the
// core has no way to verify this beyond what GetIf checks on read).
func Emplace[T any](a *AnyValue, t *TypeMeta, v T) {
	a.typ = t
	a.value = v
	a.ref = nil
}

// EmplaceRef stores a borrowed reference to v: reads go through GetIf as
// usual, but the AnyValue does not own the backing storage. The caller
// must keep v alive for as long as the AnyValue (or any clone that has
// not yet been materialized) is read.
func EmplaceRef[T any](a *AnyValue, t *TypeMeta, v *T) {
	a.typ = t
	a.value = nil
	a.ref = newAnyRef(v)
}

// GetIf returns the stored value as T and true if the AnyValue holds a
// value of exactly that Go type (whether owned or borrowed); otherwise
// the zero value and false.
func GetIf[T any](a *AnyValue) (T, bool) {
	var zero T
	if a == nil {
		return zero, false
	}
	if a.ref != nil {
		v, ok := derefAs[T](a.ref)
		return v, ok
	}
	v, ok := a.value.(T)
	return v, ok
}

// Reset clears the AnyValue back to empty.
func (a *AnyValue) Reset() {
	a.typ = nil
	a.value = nil
	a.ref = nil
}

// Swap exchanges the contents of a and b.
func (a *AnyValue) Swap(b *AnyValue) {
	*a, *b = *b, *a
}

// Type returns the AnyValue's TypeMeta, or nil if empty.
func (a *AnyValue) Type() *TypeMeta { return a.typ }

// HasValue reports whether the AnyValue currently holds a value.
func (a *AnyValue) HasValue() bool { return a.typ != nil }

// IsReference reports whether the AnyValue currently holds a borrowed
// reference rather than an owned value.
func (a *AnyValue) IsReference() bool { return a.ref != nil }

// IsInline reports whether the held type would be considered
// small-buffer-optimized in the C++ original (size within sboThreshold).
// This is descriptive metadata only; see the package-level comment.
func (a *AnyValue) IsInline() bool {
	if a.typ == nil {
		return false
	}
	return a.typ.Flags.Has(FlagBufferCompatible)
}

// Clone returns an independent, owned copy of a. If a is a borrowed
// reference, Clone materializes it; the source AnyValue is left
// untouched and remains valid.
func (a AnyValue) Clone() AnyValue {
	if a.ref == nil {
		return a
	}
	materialized := a.ref.materialize()
	return AnyValue{typ: a.typ, value: materialized}
}

// HashCode returns a content hash for the held value using the type's
// ScalarOps.Hash, or false if the type is not hashable or the AnyValue
// is empty. Composite kinds are not hashed: HashCode reports false for
// them.
func (a *AnyValue) HashCode() (uint64, bool) {
	if a.typ == nil || !a.typ.IsScalar() || a.typ.Scalar == nil || a.typ.Scalar.Hash == nil {
		return 0, false
	}
	v, ok := a.scalarValue()
	if !ok {
		return 0, false
	}
	return a.typ.Scalar.Hash(v)
}

// Equal reports whether a and b hold equal values. Two empty AnyValues
// are equal; values of different types are never equal; same-type
// scalars delegate to the type's Equals, falling back to Go's `==` if
// no Equals is supplied (composite kinds have no Equals, so their
// payload pointers are compared by identity, not element by element).
func (a *AnyValue) Equal(b *AnyValue) bool {
	if !a.HasValue() && !b.HasValue() {
		return true
	}
	if a.typ != b.typ {
		return false
	}
	av, aok := a.scalarValue()
	bv, bok := b.scalarValue()
	if !aok || !bok {
		return false
	}
	if a.typ.Scalar != nil && a.typ.Scalar.Equals != nil {
		return a.typ.Scalar.Equals(av, bv)
	}
	return av == bv
}

// Less reports a strict order between a and b, and whether the
// comparison was well-formed (false when either is empty, the types
// differ, or the type has no order).
func (a *AnyValue) Less(b *AnyValue) (bool, bool) {
	if !a.HasValue() || !b.HasValue() {
		return false, false
	}
	if a.typ != b.typ {
		return false, false
	}
	if a.typ.Scalar == nil || a.typ.Scalar.Less == nil {
		return false, false
	}
	av, _ := a.scalarValue()
	bv, _ := b.scalarValue()
	return a.typ.Scalar.Less(av, bv)
}

// String renders the held value using the type's ToString, or a
// placeholder when empty or ToString is not supplied.
func (a *AnyValue) String() string {
	if !a.HasValue() {
		return "<empty>"
	}
	if a.typ.Scalar != nil && a.typ.Scalar.ToString != nil {
		v, _ := a.scalarValue()
		return a.typ.Scalar.ToString(v)
	}
	return toJSONString(a.rawValue())
}

// scalarValue returns the logical value (dereferencing a borrowed
// reference if needed) for use by scalar op-table calls.
func (a *AnyValue) scalarValue() (any, bool) {
	if a.ref != nil {
		return a.ref.derefAny()
	}
	if a.value == nil {
		return nil, false
	}
	return a.value, true
}

// rawValue is scalarValue without the ok flag, for callers (ToString
// fallback) that already know a value is present.
func (a *AnyValue) rawValue() any {
	v, _ := a.scalarValue()
	return v
}
