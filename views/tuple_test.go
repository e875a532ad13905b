package views

import (
	"testing"

	tsgraph "github.com/tsgraph/core"

	"github.com/stretchr/testify/require"
)

func TestTupleViewAtAndElementType(t *testing.T) {
	r := newTestRegistry(t)
	int64Type, _ := tsgraph.LookupScalar[int64](r)
	stringType, _ := tsgraph.LookupScalar[string](r)

	tupleType, err := r.BuildTuple([]*tsgraph.TypeMeta{int64Type, stringType})
	require.NoError(t, err)

	var strVal tsgraph.AnyValue
	tsgraph.Emplace(&strVal, stringType, "hi")
	data := &tsgraph.TupleData{Elements: []tsgraph.AnyValue{anyInt64(t, r, 1), strVal}}

	var v tsgraph.AnyValue
	tsgraph.Emplace(&v, tupleType, data)

	tup, err := Tuple(&v)
	require.NoError(t, err)
	require.Equal(t, 2, tup.Len())

	first, err := tup.At(0)
	require.NoError(t, err)
	got, ok := tsgraph.GetIf[int64](&first)
	require.True(t, ok)
	require.Equal(t, int64(1), got)

	_, err = tup.At(5)
	require.ErrorIs(t, err, tsgraph.ErrIndexOutOfRange)

	elemType, err := tup.ElementType(1)
	require.NoError(t, err)
	require.Same(t, stringType, elemType)

	_, err = tup.ElementType(5)
	require.ErrorIs(t, err, tsgraph.ErrIndexOutOfRange)
}

func TestTupleRejectsNonTupleValue(t *testing.T) {
	r := newTestRegistry(t)
	v := anyInt64(t, r, 1)
	_, err := Tuple(&v)
	require.ErrorIs(t, err, tsgraph.ErrTypeMismatch)
}
