package tsgraph

import (
	"reflect"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// Registry produces a stable TypeMeta for each requested scalar or
// composite shape, resolving op-tables at descriptor construction time so
// value-side operations never dispatch on a kind string. It replaces the
// original's process-wide singleton registry with an explicit, long-lived
// context object (Design Notes, "Global mutable state"): callers create
// one Registry and share it, rather than reaching for a package-level
// global.
//
// Adapted from the teacher's storageProvider (register-once/lookup-many
// over a mutex-guarded map, erroring on duplicate registration and on
// lookup miss); the structural composite caches are adapted from
// ecs/storage/sharedStore's find-or-create-by-equality pattern, with a
// precomputed structural hash standing in for sharedStore's
// reflect.DeepEqual scan since TypeMeta element pointers are already
// stable identities.
type Registry struct {
	mu sync.RWMutex

	scalars map[reflect.Type]*TypeMeta

	bundles map[uint64]*TypeMeta
	tuples  map[uint64]*TypeMeta
	lists   map[uint64]*TypeMeta
	sets    map[uint64]*TypeMeta
	maps    map[uint64]*TypeMeta
	windows map[uint64]*TypeMeta
	refs    map[*TypeMeta]*TypeMeta

	dereferenceCache *lru.Cache[*TypeMeta, *TypeMeta]
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	cache, _ := lru.New[*TypeMeta, *TypeMeta](4096)
	return &Registry{
		scalars:          make(map[reflect.Type]*TypeMeta),
		bundles:          make(map[uint64]*TypeMeta),
		tuples:           make(map[uint64]*TypeMeta),
		lists:            make(map[uint64]*TypeMeta),
		sets:             make(map[uint64]*TypeMeta),
		maps:             make(map[uint64]*TypeMeta),
		windows:          make(map[uint64]*TypeMeta),
		refs:             make(map[*TypeMeta]*TypeMeta),
		dereferenceCache: cache,
	}
}

// RegisterScalar returns the TypeMeta for Go type T, building and caching
// it on first use from the supplied op-table. A second registration of the
// same Go type under a different TypeName is rejected; one under the same
// TypeName returns the existing TypeMeta and ignores the new op-table and
// flags, so TypeMeta identity stays stable for the life of the process.
func RegisterScalar[T any](r *Registry, flags Flags, ops ScalarOps) (*TypeMeta, error) {
	var zero T
	goType := reflect.TypeOf(zero)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.scalars[goType]; ok {
		if existing.Scalar.TypeName != ops.TypeName {
			return nil, errors.Wrapf(ErrAlreadyRegistered, "scalar %s", goType)
		}
		return existing, nil
	}

	opsCopy := ops
	tm := &TypeMeta{
		Name:      ops.TypeName,
		Size:      reflect.TypeOf(zero).Size(),
		Alignment: uintptr(reflect.TypeOf(zero).Align()),
		Flags:     flags,
		Kind:      KindScalar,
		Scalar:    &opsCopy,
	}
	if tm.Size <= sboThreshold {
		tm.Flags |= FlagBufferCompatible
	}
	r.scalars[goType] = tm
	return tm, nil
}

// MustRegisterScalar is RegisterScalar for callers (typically package
// init-time wiring of built-in scalar types) that treat a registration
// failure as a programming error.
func MustRegisterScalar[T any](r *Registry, flags Flags, ops ScalarOps) *TypeMeta {
	tm, err := RegisterScalar[T](r, flags, ops)
	if err != nil {
		panic(err)
	}
	return tm
}

// LookupScalar returns the already-registered TypeMeta for Go type T, or
// false if it has not been registered on this Registry.
func LookupScalar[T any](r *Registry) (*TypeMeta, bool) {
	var zero T
	r.mu.RLock()
	defer r.mu.RUnlock()
	tm, ok := r.scalars[reflect.TypeOf(zero)]
	return tm, ok
}

// BuildBundle interns a bundle TypeMeta keyed by its name and ordered
// (name, element type) field sequence.
func (r *Registry) BuildBundle(name string, fields []Field) (*TypeMeta, error) {
	keyParts := make([]string, 0, len(fields)*2+1)
	keyParts = append(keyParts, "bundle", name)
	for _, f := range fields {
		if f.Type == nil {
			return nil, errors.Wrapf(ErrTypeMismatch, "bundle %s: field %s has nil type", name, f.Name)
		}
		keyParts = append(keyParts, f.Name, ptrTag(f.Type))
	}
	key := structuralKey(keyParts...)

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.bundles[key]; ok {
		return existing, nil
	}

	ordered := make([]Field, len(fields))
	flags := FlagEquatable
	for i, f := range fields {
		ordered[i] = Field{Name: f.Name, Offset: i, Type: f.Type}
		if !f.Type.Flags.Has(FlagEquatable) {
			flags &^= FlagEquatable
		}
	}
	tm := &TypeMeta{
		Name:       "Bundle<" + name + ">",
		Kind:       KindBundle,
		Flags:      flags | FlagContainer,
		Fields:     ordered,
		BundleName: name,
	}
	r.bundles[key] = tm
	return tm, nil
}

// BuildTuple interns a tuple TypeMeta keyed by its ordered element type
// sequence.
func (r *Registry) BuildTuple(types []*TypeMeta) (*TypeMeta, error) {
	keyParts := make([]string, 0, len(types)+1)
	keyParts = append(keyParts, "tuple")
	for _, t := range types {
		if t == nil {
			return nil, errors.Wrap(ErrTypeMismatch, "tuple: nil element type")
		}
		keyParts = append(keyParts, ptrTag(t))
	}
	key := structuralKey(keyParts...)

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.tuples[key]; ok {
		return existing, nil
	}

	fields := make([]Field, len(types))
	flags := FlagEquatable
	for i, t := range types {
		fields[i] = Field{Offset: i, Type: t}
		if !t.Flags.Has(FlagEquatable) {
			flags &^= FlagEquatable
		}
	}
	tm := &TypeMeta{Name: "Tuple", Kind: KindTuple, Flags: flags | FlagContainer, Fields: fields}
	r.tuples[key] = tm
	return tm, nil
}

// BuildList interns a list TypeMeta. fixedSize <= 0 means dynamic.
func (r *Registry) BuildList(elem *TypeMeta, fixedSize int) (*TypeMeta, error) {
	if elem == nil {
		return nil, errors.Wrap(ErrTypeMismatch, "list: nil element type")
	}
	if fixedSize < 0 {
		fixedSize = -1
	}
	key := structuralKey("list", ptrTag(elem), itoa(fixedSize))

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.lists[key]; ok {
		return existing, nil
	}
	tm := &TypeMeta{
		Name:        "List<" + elem.Name + ">",
		Kind:        KindList,
		Flags:       FlagContainer | (elem.Flags & FlagEquatable),
		ElementType: elem,
		FixedSize:   fixedSize,
	}
	r.lists[key] = tm
	return tm, nil
}

// BuildSet interns a set TypeMeta. The element type must be Hashable.
func (r *Registry) BuildSet(elem *TypeMeta) (*TypeMeta, error) {
	if elem == nil {
		return nil, errors.Wrap(ErrTypeMismatch, "set: nil element type")
	}
	if !elem.Flags.Has(FlagHashable) {
		return nil, errors.Wrapf(ErrUnhashableElement, "set element %s", elem.Name)
	}
	key := structuralKey("set", ptrTag(elem))

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sets[key]; ok {
		return existing, nil
	}
	tm := &TypeMeta{
		Name:        "Set<" + elem.Name + ">",
		Kind:        KindSet,
		Flags:       FlagContainer | FlagEquatable,
		ElementType: elem,
		FixedSize:   -1,
	}
	r.sets[key] = tm
	return tm, nil
}

// BuildMap interns a map TypeMeta. The key type must be Hashable.
func (r *Registry) BuildMap(key, value *TypeMeta) (*TypeMeta, error) {
	if key == nil || value == nil {
		return nil, errors.Wrap(ErrTypeMismatch, "map: nil key or value type")
	}
	if !key.Flags.Has(FlagHashable) {
		return nil, errors.Wrapf(ErrUnhashableElement, "map key %s", key.Name)
	}
	cacheKey := structuralKey("map", ptrTag(key), ptrTag(value))

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.maps[cacheKey]; ok {
		return existing, nil
	}
	tm := &TypeMeta{
		Name:        "Map<" + key.Name + "," + value.Name + ">",
		Kind:        KindMap,
		Flags:       FlagContainer | FlagEquatable,
		KeyType:     key,
		ElementType: value,
		FixedSize:   -1,
	}
	r.maps[cacheKey] = tm
	return tm, nil
}

// BuildWindow interns a window TypeMeta. Exactly one of maxCount (tick
// count windows) or duration (time windows) must be positive.
func (r *Registry) BuildWindow(elem *TypeMeta, maxCount int, duration interface{ Nanoseconds() int64 }) (*TypeMeta, error) {
	if elem == nil {
		return nil, errors.Wrap(ErrTypeMismatch, "window: nil element type")
	}
	var dur int64
	if duration != nil {
		dur = duration.Nanoseconds()
	}
	if (maxCount > 0) == (dur > 0) {
		return nil, errors.New("tsgraph: window requires exactly one of maxCount or duration")
	}
	key := structuralKey("window", ptrTag(elem), itoa(maxCount), itoa64(dur))

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.windows[key]; ok {
		return existing, nil
	}
	tm := &TypeMeta{
		Name:           "Window<" + elem.Name + ">",
		Kind:           KindWindow,
		Flags:          FlagContainer,
		ElementType:    elem,
		MaxCount:       maxCount,
		WindowDuration: nsToDuration(dur),
	}
	r.windows[key] = tm
	return tm, nil
}

// BuildRef interns a reference TypeMeta pointing at target.
func (r *Registry) BuildRef(target *TypeMeta) (*TypeMeta, error) {
	if target == nil {
		return nil, errors.Wrap(ErrTypeMismatch, "ref: nil target type")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.refs[target]; ok {
		return existing, nil
	}
	tm := &TypeMeta{Name: "Ref<" + target.Name + ">", Kind: KindRef, ElementType: target}
	r.refs[target] = tm
	return tm, nil
}

// ContainsRef reports whether t or any of its structural descendants is a
// Ref TypeMeta. Used by Dereference to short-circuit already-flat schemas.
func ContainsRef(t *TypeMeta) bool {
	if t == nil {
		return false
	}
	if t.Kind == KindRef {
		return true
	}
	switch t.Kind {
	case KindBundle, KindTuple:
		for _, f := range t.Fields {
			if ContainsRef(f.Type) {
				return true
			}
		}
	case KindList, KindSet, KindCyclicBuffer, KindQueue, KindWindow:
		return ContainsRef(t.ElementType)
	case KindMap:
		return ContainsRef(t.KeyType) || ContainsRef(t.ElementType)
	}
	return false
}

// Dereference recursively produces a TypeMeta with every Ref replaced by
// its target, caching the result. Dereference is idempotent:
// Dereference(Dereference(x)) == Dereference(x).
func (r *Registry) Dereference(t *TypeMeta) *TypeMeta {
	if t == nil || !ContainsRef(t) {
		return t
	}
	if cached, ok := r.dereferenceCache.Get(t); ok {
		return cached
	}

	var result *TypeMeta
	switch t.Kind {
	case KindRef:
		result = r.Dereference(t.ElementType)
	case KindBundle:
		fields := make([]Field, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = Field{Name: f.Name, Offset: i, Type: r.Dereference(f.Type)}
		}
		result, _ = r.BuildBundle(t.BundleName, fields)
	case KindTuple:
		types := make([]*TypeMeta, len(t.Fields))
		for i, f := range t.Fields {
			types[i] = r.Dereference(f.Type)
		}
		result, _ = r.BuildTuple(types)
	case KindList:
		result, _ = r.BuildList(r.Dereference(t.ElementType), t.FixedSize)
	case KindSet:
		result, _ = r.BuildSet(r.Dereference(t.ElementType))
	case KindMap:
		result, _ = r.BuildMap(r.Dereference(t.KeyType), r.Dereference(t.ElementType))
	case KindWindow:
		result, _ = r.BuildWindow(r.Dereference(t.ElementType), t.MaxCount, t.WindowDuration)
	case KindCyclicBuffer, KindQueue:
		elem := r.Dereference(t.ElementType)
		if elem == t.ElementType {
			result = t
		} else {
			clone := *t
			clone.ElementType = elem
			result = &clone
		}
	default:
		result = t
	}
	r.dereferenceCache.Add(t, result)
	return result
}
