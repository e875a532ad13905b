package tsgraph

import (
	"strconv"
	"strings"
	"time"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// structuralKey hashes a sequence of already-stable components (pointer
// identities rendered as addresses, names, small integers) into a single
// cache key for the TypeMeta and TSType structural interning tables. The
// inputs are themselves only stable because TypeMeta/TSType pointers never
// move once registered (see TypeMeta's doc comment).
func structuralKey(parts ...string) uint64 {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p)
		b.WriteByte(0)
	}
	return xxhash.Sum64String(b.String())
}

func ptrTag(t *TypeMeta) string {
	if t == nil {
		return "nil"
	}
	return strconv.FormatUint(uint64(uintptr(unsafe.Pointer(t))), 16)
}

// tsPtrTag is ptrTag's counterpart for *TSType, used by TSTypeRegistry's
// structural caches the same way ptrTag is used by Registry's.
func tsPtrTag(t *TSType) string {
	if t == nil {
		return "nil"
	}
	return strconv.FormatUint(uint64(uintptr(unsafe.Pointer(t))), 16)
}

// itoa and itoa64 are small string-conversion aliases used when building
// structuralKey inputs, kept local so call sites read as plain names
// rather than repeated strconv.Itoa/FormatInt noise.
func itoa(n int) string { return strconv.Itoa(n) }

func itoa64(n int64) string { return strconv.FormatInt(n, 10) }

// nsToDuration converts a nanosecond count, as returned by the
// time.Duration-shaped interface BuildWindow accepts, back into a
// time.Duration for storage on TypeMeta.
func nsToDuration(ns int64) time.Duration { return time.Duration(ns) }
