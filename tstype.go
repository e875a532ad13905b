package tsgraph

import (
	"time"

	"github.com/pkg/errors"
)

// TSTypeKind tags the shape of a catalog-level time-series schema
// (spec.md §3.4, §4.H). It is a separate closed set from TypeMeta's
// Kind: TypeMeta describes a value's shape, TSType describes a
// time-series cell's shape (which wraps a value shape, a set of
// value shapes, or nests other TSTypes).
type TSTypeKind uint8

const (
	TSKindScalar TSTypeKind = iota // TS[T]
	TSKindSet                      // TSS[T]
	TSKindMap                      // TSD[K,V]
	TSKindList                     // TSL[TS, n]
	TSKindBundle                   // TSB[fields]
	TSKindWindow                   // TSW[T, period, min]
	TSKindRef                      // REF[TS]
	TSKindSignal                   // SIGNAL
)

func (k TSTypeKind) String() string {
	switch k {
	case TSKindScalar:
		return "TS"
	case TSKindSet:
		return "TSS"
	case TSKindMap:
		return "TSD"
	case TSKindList:
		return "TSL"
	case TSKindBundle:
		return "TSB"
	case TSKindWindow:
		return "TSW"
	case TSKindRef:
		return "REF"
	case TSKindSignal:
		return "SIGNAL"
	default:
		return "Unknown"
	}
}

// TSField describes one named member of a TSB schema.
type TSField struct {
	Name string
	Type *TSType
}

// TSType is a catalog-level description of a time-series shape, not a
// storage instance (spec.md §3.4). Like TypeMeta, once registered a
// TSType has stable pointer identity for the process lifetime and is
// deduplicated by structural identity.
type TSType struct {
	Kind TSTypeKind

	// Payload is set for TSKindScalar: the TypeMeta of the series' value.
	Payload *TypeMeta
	// Element is set for TSKindSet, TSKindList, TSKindWindow, TSKindRef.
	Element *TSType
	// Key is the TypeMeta of a TSKindMap's key.
	Key *TypeMeta
	// Value is the TSType of a TSKindMap's value series.
	Value *TSType
	// FixedSize applies to TSKindList: -1 dynamic, >0 fixed.
	FixedSize int
	// MaxCount and WindowDuration apply to TSKindWindow, same
	// tick-count-vs-duration exclusivity as TypeMeta's Window fields.
	MaxCount       int
	WindowDuration time.Duration
	// Fields and BundleName apply to TSKindBundle.
	Fields     []TSField
	BundleName string
}

// String renders a catalog-style name for logs and debug panels.
func (t *TSType) String() string {
	if t == nil {
		return "<nil TSType>"
	}
	switch t.Kind {
	case TSKindScalar:
		return "TS[" + t.Payload.String() + "]"
	case TSKindSet:
		return "TSS[" + t.Element.String() + "]"
	case TSKindMap:
		return "TSD[" + t.Key.String() + "," + t.Value.String() + "]"
	case TSKindList:
		return "TSL[" + t.Element.String() + "]"
	case TSKindBundle:
		return "TSB<" + t.BundleName + ">"
	case TSKindWindow:
		return "TSW[" + t.Element.String() + "]"
	case TSKindRef:
		return "REF[" + t.Element.String() + "]"
	case TSKindSignal:
		return "SIGNAL"
	default:
		return "TSType(?)"
	}
}

// TSTypeRegistry interns TSType schemas by structural identity, the
// catalog-level counterpart of Registry for TypeMeta (spec.md §4.H).
// Every Build method follows the same register-once/lookup-many shape
// as Registry's, grounded the same way on storage_provider.go.
type TSTypeRegistry struct {
	scalarCache map[*TypeMeta]*TSType
	setCache    map[uint64]*TSType
	mapCache    map[uint64]*TSType
	listCache   map[uint64]*TSType
	windowCache map[uint64]*TSType
	bundleCache map[uint64]*TSType
	refCache    map[*TSType]*TSType
	signal      *TSType
}

// NewTSTypeRegistry constructs an empty registry.
func NewTSTypeRegistry() *TSTypeRegistry {
	return &TSTypeRegistry{
		scalarCache: make(map[*TypeMeta]*TSType),
		setCache:    make(map[uint64]*TSType),
		mapCache:    make(map[uint64]*TSType),
		listCache:   make(map[uint64]*TSType),
		windowCache: make(map[uint64]*TSType),
		bundleCache: make(map[uint64]*TSType),
		refCache:    make(map[*TSType]*TSType),
	}
}

// TS interns a scalar time-series schema, cached by payload pointer.
func (r *TSTypeRegistry) TS(payload *TypeMeta) (*TSType, error) {
	if payload == nil {
		return nil, errors.Wrap(ErrTypeMismatch, "ts: nil payload type")
	}
	if existing, ok := r.scalarCache[payload]; ok {
		return existing, nil
	}
	tt := &TSType{Kind: TSKindScalar, Payload: payload}
	r.scalarCache[payload] = tt
	return tt, nil
}

// TSS interns a set time-series schema, cached by element.
func (r *TSTypeRegistry) TSS(element *TSType) (*TSType, error) {
	if element == nil {
		return nil, errors.Wrap(ErrTypeMismatch, "tss: nil element type")
	}
	key := structuralKey("tss", tsPtrTag(element))
	if existing, ok := r.setCache[key]; ok {
		return existing, nil
	}
	tt := &TSType{Kind: TSKindSet, Element: element}
	r.setCache[key] = tt
	return tt, nil
}

// TSD interns a map time-series schema, cached by (key, value).
func (r *TSTypeRegistry) TSD(key *TypeMeta, value *TSType) (*TSType, error) {
	if key == nil || value == nil {
		return nil, errors.Wrap(ErrTypeMismatch, "tsd: nil key or value type")
	}
	cacheKey := structuralKey("tsd", ptrTag(key), tsPtrTag(value))
	if existing, ok := r.mapCache[cacheKey]; ok {
		return existing, nil
	}
	tt := &TSType{Kind: TSKindMap, Key: key, Value: value}
	r.mapCache[cacheKey] = tt
	return tt, nil
}

// TSL interns a list-of-series time-series schema, cached by
// (element, fixed_size).
func (r *TSTypeRegistry) TSL(element *TSType, fixedSize int) (*TSType, error) {
	if element == nil {
		return nil, errors.Wrap(ErrTypeMismatch, "tsl: nil element type")
	}
	if fixedSize < 0 {
		fixedSize = -1
	}
	cacheKey := structuralKey("tsl", tsPtrTag(element), itoa(fixedSize))
	if existing, ok := r.listCache[cacheKey]; ok {
		return existing, nil
	}
	tt := &TSType{Kind: TSKindList, Element: element, FixedSize: fixedSize}
	r.listCache[cacheKey] = tt
	return tt, nil
}

// TSW interns a window time-series schema. Exactly one of maxCount or
// duration must be positive, same exclusivity as Registry.BuildWindow.
func (r *TSTypeRegistry) TSW(element *TSType, maxCount int, duration time.Duration) (*TSType, error) {
	if element == nil {
		return nil, errors.Wrap(ErrTypeMismatch, "tsw: nil element type")
	}
	if (maxCount > 0) == (duration > 0) {
		return nil, errors.New("tsgraph: TSW requires exactly one of maxCount or duration")
	}
	cacheKey := structuralKey("tsw", tsPtrTag(element), itoa(maxCount), itoa64(int64(duration)))
	if existing, ok := r.windowCache[cacheKey]; ok {
		return existing, nil
	}
	tt := &TSType{Kind: TSKindWindow, Element: element, MaxCount: maxCount, WindowDuration: duration}
	r.windowCache[cacheKey] = tt
	return tt, nil
}

// TSB interns a bundle time-series schema, cached by the full structural
// key (name plus ordered (field name, field TSType) sequence).
func (r *TSTypeRegistry) TSB(name string, fields []TSField) (*TSType, error) {
	keyParts := make([]string, 0, len(fields)*2+2)
	keyParts = append(keyParts, "tsb", name)
	for _, f := range fields {
		if f.Type == nil {
			return nil, errors.Wrapf(ErrTypeMismatch, "tsb %s: field %s has nil type", name, f.Name)
		}
		keyParts = append(keyParts, f.Name, tsPtrTag(f.Type))
	}
	cacheKey := structuralKey(keyParts...)
	if existing, ok := r.bundleCache[cacheKey]; ok {
		return existing, nil
	}
	ordered := append([]TSField(nil), fields...)
	tt := &TSType{Kind: TSKindBundle, BundleName: name, Fields: ordered}
	r.bundleCache[cacheKey] = tt
	return tt, nil
}

// Ref interns a reference schema pointing at target.
func (r *TSTypeRegistry) Ref(target *TSType) (*TSType, error) {
	if target == nil {
		return nil, errors.Wrap(ErrTypeMismatch, "ref: nil target type")
	}
	if existing, ok := r.refCache[target]; ok {
		return existing, nil
	}
	tt := &TSType{Kind: TSKindRef, Element: target}
	r.refCache[target] = tt
	return tt, nil
}

// Signal returns the singleton valueless-marker schema.
func (r *TSTypeRegistry) Signal() *TSType {
	if r.signal == nil {
		r.signal = &TSType{Kind: TSKindSignal}
	}
	return r.signal
}

// ContainsRefTS recursively searches t (and its structural descendants)
// for a TSKindRef node, the TSType counterpart of ContainsRef.
func ContainsRefTS(t *TSType) bool {
	if t == nil {
		return false
	}
	if t.Kind == TSKindRef {
		return true
	}
	switch t.Kind {
	case TSKindSet, TSKindList, TSKindWindow:
		return ContainsRefTS(t.Element)
	case TSKindMap:
		return ContainsRefTS(t.Value)
	case TSKindBundle:
		for _, f := range t.Fields {
			if ContainsRefTS(f.Type) {
				return true
			}
		}
	}
	return false
}

// Dereference recursively produces a TSType with every Ref replaced by
// its target, the TSType counterpart of Registry.Dereference. It is not
// separately memoized: TSType construction is cheap (no heap-backed
// value op-tables to resolve), and a ref-free schema is returned as is
// after one ContainsRefTS walk, without building anything.
func (r *TSTypeRegistry) Dereference(t *TSType) *TSType {
	if t == nil || !ContainsRefTS(t) {
		return t
	}
	switch t.Kind {
	case TSKindRef:
		return r.Dereference(t.Element)
	case TSKindSet:
		elem, _ := r.TSS(r.Dereference(t.Element))
		return elem
	case TSKindList:
		elem, _ := r.TSL(r.Dereference(t.Element), t.FixedSize)
		return elem
	case TSKindWindow:
		elem, _ := r.TSW(r.Dereference(t.Element), t.MaxCount, t.WindowDuration)
		return elem
	case TSKindMap:
		val, _ := r.TSD(t.Key, r.Dereference(t.Value))
		return val
	case TSKindBundle:
		fields := make([]TSField, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = TSField{Name: f.Name, Type: r.Dereference(f.Type)}
		}
		b, _ := r.TSB(t.BundleName, fields)
		return b
	default:
		return t
	}
}
