package tsgraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRuntimeDefaults(t *testing.T) {
	rt, err := NewRuntime()
	require.NoError(t, err)
	require.NotNil(t, rt.Types())
	require.NotNil(t, rt.Schemas())
	require.NotNil(t, rt.Logger())

	int64Type, ok := LookupScalar[int64](rt.Types())
	require.True(t, ok, "default runtime has builtin scalars pre-registered")
	require.Equal(t, "int64", int64Type.Name)
}

func TestNewRuntimeWithTypeRegistry(t *testing.T) {
	custom := NewRegistry()
	require.NoError(t, RegisterBuiltinScalars(custom))

	rt, err := NewRuntime(WithTypeRegistry(custom))
	require.NoError(t, err)
	require.Same(t, custom, rt.Types())
}

func TestNewRuntimeWithTSTypeRegistry(t *testing.T) {
	custom := NewTSTypeRegistry()
	rt, err := NewRuntime(WithTSTypeRegistry(custom))
	require.NoError(t, err)
	require.Same(t, custom, rt.Schemas())
}

type captureLogger struct{ msgs []string }

func (l *captureLogger) With(string, any) Logger { return l }
func (l *captureLogger) Info(msg string, kv ...any) { l.msgs = append(l.msgs, msg) }
func (l *captureLogger) Error(msg string, kv ...any) { l.msgs = append(l.msgs, msg) }

func TestNewRuntimeWithLogger(t *testing.T) {
	logger := &captureLogger{}
	rt, err := NewRuntime(WithLogger(logger))
	require.NoError(t, err)
	rt.Logger().Info("hello")
	require.Equal(t, []string{"hello"}, logger.msgs)
}

func TestNewRuntimeWithNilOptionsIgnoresOverride(t *testing.T) {
	rt, err := NewRuntime(WithTypeRegistry(nil), WithTSTypeRegistry(nil), WithLogger(nil))
	require.NoError(t, err)
	require.NotNil(t, rt.Types())
	require.NotNil(t, rt.Schemas())
	require.NotNil(t, rt.Logger())
}
