package tsgraph

// RuntimeOption configures a Runtime constructed by NewRuntime, the
// same functional-options shape as the teacher's WorldOption.
type RuntimeOption func(*Runtime)

// Runtime bundles the process-wide, read-mostly state a host needs to
// wire a dataflow graph: the TypeMeta registry, the TSType schema
// registry, and a Logger. It generalizes the teacher's World (which
// bundles an EntityRegistry, a StorageProvider and a ResourceContainer)
// from "entity/component bookkeeping" to "type/schema bookkeeping" —
// spec.md places the evaluation engine itself out of scope, so Runtime
// does not implement NotifiableContext; it is pure wiring-time state,
// not an engine.
type Runtime struct {
	types   *Registry
	schemas *TSTypeRegistry
	logger  Logger
}

// NewRuntime constructs a Runtime with a fresh TypeMeta registry (with
// the built-in scalars already registered), a fresh TSType registry, and
// a noop Logger, then applies opts.
func NewRuntime(opts ...RuntimeOption) (*Runtime, error) {
	types := NewRegistry()
	if err := RegisterBuiltinScalars(types); err != nil {
		return nil, err
	}
	r := &Runtime{
		types:   types,
		schemas: NewTSTypeRegistry(),
		logger:  noopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// WithTypeRegistry overrides the default TypeMeta registry. The caller
// is responsible for having registered any builtin scalars it needs.
func WithTypeRegistry(registry *Registry) RuntimeOption {
	return func(r *Runtime) {
		if registry != nil {
			r.types = registry
		}
	}
}

// WithTSTypeRegistry overrides the default TSType registry.
func WithTSTypeRegistry(registry *TSTypeRegistry) RuntimeOption {
	return func(r *Runtime) {
		if registry != nil {
			r.schemas = registry
		}
	}
}

// WithLogger overrides the default noop Logger.
func WithLogger(logger Logger) RuntimeOption {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Types exposes the TypeMeta registry.
func (r *Runtime) Types() *Registry { return r.types }

// Schemas exposes the TSType registry.
func (r *Runtime) Schemas() *TSTypeRegistry { return r.schemas }

// Logger exposes the configured Logger.
func (r *Runtime) Logger() Logger { return r.logger }
