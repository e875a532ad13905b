package tsgraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlagsHasAndAny(t *testing.T) {
	f := FlagHashable | FlagComparable
	require.True(t, f.Has(FlagHashable))
	require.True(t, f.Has(FlagHashable|FlagComparable))
	require.False(t, f.Has(FlagHashable|FlagEquatable))
	require.True(t, f.Any(FlagEquatable|FlagComparable))
	require.False(t, f.Any(FlagEquatable|FlagArithmetic))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "Scalar", KindScalar.String())
	require.Equal(t, "Window", KindWindow.String())
	require.Equal(t, "Ref", KindRef.String())
	require.Equal(t, "Unknown", Kind(255).String())
}

func TestTypeMetaFieldByName(t *testing.T) {
	inner := &TypeMeta{Name: "float64", Kind: KindScalar}
	bundle := &TypeMeta{
		Kind: KindBundle,
		Fields: []Field{
			{Name: "price", Offset: 0, Type: inner},
			{Name: "volume", Offset: 1, Type: inner},
		},
	}

	field, idx, ok := bundle.FieldByName("volume")
	require.True(t, ok)
	require.Equal(t, 1, idx)
	require.Equal(t, "volume", field.Name)

	_, _, ok = bundle.FieldByName("missing")
	require.False(t, ok)
}

func TestTypeMetaIsHelpers(t *testing.T) {
	scalar := &TypeMeta{Kind: KindScalar}
	require.True(t, scalar.IsScalar())
	require.False(t, scalar.IsRef())

	ref := &TypeMeta{Kind: KindRef}
	require.True(t, ref.IsRef())
	require.False(t, ref.IsScalar())

	container := &TypeMeta{Kind: KindList, Flags: FlagContainer}
	require.True(t, container.IsContainer())
}
