package tsgraph

// AnyRef is a borrowed, non-owning handle into externally-lived storage.
// It exists to avoid overloading AnyValue with "sometimes I own my
// payload, sometimes I don't" subtlety (Design Notes §9, "Borrowed
// references in AnyValue"): EmplaceRef wraps a caller-supplied
// pointer in an AnyRef, and every read goes through materialize/derefAs,
// which always returns a freshly copied value rather than the pointer
// itself. Because Go is garbage collected there is no destructor to make
// a no-op; the "no-op destroy" invariant from the original simply falls
// out of AnyRef holding no resources of its own.
type AnyRef struct {
	deref func() any
}

// newAnyRef captures ptr in a closure so AnyValue can stay generic-free
// (AnyValue.ref is a concrete *AnyRef, not a parameterized type).
func newAnyRef[T any](ptr *T) *AnyRef {
	return &AnyRef{
		deref: func() any { return *ptr },
	}
}

// materialize reads through the borrow and returns an owned copy of the
// current value. The source pointer remains valid and unaffected.
func (r *AnyRef) materialize() any {
	return r.deref()
}

// derefAny is materialize with a nil-receiver guard, used internally by
// AnyValue's scalarValue helper.
func (r *AnyRef) derefAny() (any, bool) {
	if r == nil {
		return nil, false
	}
	return r.deref(), true
}

// derefAs materializes the borrowed value and type-asserts it to T.
func derefAs[T any](r *AnyRef) (T, bool) {
	var zero T
	if r == nil {
		return zero, false
	}
	v, ok := r.deref().(T)
	if !ok {
		return zero, false
	}
	return v, true
}
