package tsgraph

import "github.com/pkg/errors"

// TSSDelta is the added/removed elements visible for one engine time on
// a time-series set (spec.md §4.G).
type TSSDelta struct {
	Added   []AnyValue
	Removed []AnyValue
}

// containsOutputEntry backs TSSOutput.ContainsOutput's ref-counting:
// repeated calls for the same item return the same TSOutput[bool] with
// an incremented ref count, released by ReleaseContainsOutput.
type containsOutputEntry struct {
	output *TSOutput[bool]
	refs   int
}

// tssSharedState is the storage shared between a TSSOutput and every
// TSSInput bound to it — the set counterpart of Peered (spec.md §4.G).
type tssSharedState struct {
	elemType    *TypeMeta
	owner       NotifiableContext
	current     map[uint64]AnyValue
	added       map[uint64]AnyValue
	removed     map[uint64]AnyValue
	deltaTime   EngineTime
	subscribers *SubscriberSet

	containsOutputs map[uint64]*containsOutputEntry
	emptyOutput     *TSOutput[bool]
	emptyRefs       int
}

func newTSSSharedState(owner NotifiableContext, elemType *TypeMeta) *tssSharedState {
	return &tssSharedState{
		elemType:        elemType,
		owner:           owner,
		current:         make(map[uint64]AnyValue),
		added:           make(map[uint64]AnyValue),
		removed:         make(map[uint64]AnyValue),
		deltaTime:       MinEngineTime,
		subscribers:     NewSubscriberSet(),
		containsOutputs: make(map[uint64]*containsOutputEntry),
	}
}

func (s *tssSharedState) keyOf(item AnyValue) (uint64, error) {
	key, ok := item.HashCode()
	if !ok {
		return 0, errors.Wrapf(ErrUnhashableElement, "set element %s", item.Type())
	}
	return key, nil
}

func (s *tssSharedState) resetDeltaForCycle(t EngineTime) {
	if s.deltaTime == t {
		return
	}
	s.added = make(map[uint64]AnyValue)
	s.removed = make(map[uint64]AnyValue)
	s.deltaTime = t
}

// add implements the idempotence-per-cycle rule from spec.md §4.G:
// add(x) after remove(x) in the same cycle is a no-op. The caller
// records the set's emptiness before calling, to tick emptyOutput if it
// flipped.
func (s *tssSharedState) add(t EngineTime, item AnyValue) (changed bool, err error) {
	key, err := s.keyOf(item)
	if err != nil {
		return false, err
	}
	s.resetDeltaForCycle(t)

	if _, present := s.current[key]; present {
		return false, nil
	}
	if _, pendingRemove := s.removed[key]; pendingRemove {
		delete(s.removed, key) // cancel a pending removal of the same item this cycle
		s.current[key] = item
		return false, nil
	}
	if _, pendingAdd := s.added[key]; pendingAdd {
		return false, nil
	}
	s.added[key] = item
	s.current[key] = item
	return true, nil
}

func (s *tssSharedState) remove(t EngineTime, item AnyValue) (changed bool, err error) {
	key, err := s.keyOf(item)
	if err != nil {
		return false, err
	}
	s.resetDeltaForCycle(t)

	if _, present := s.current[key]; !present {
		return false, nil
	}
	if _, pendingAdd := s.added[key]; pendingAdd {
		delete(s.added, key)
		delete(s.current, key)
		return false, nil
	}
	delete(s.current, key)
	s.removed[key] = item
	return true, nil
}

func (s *tssSharedState) deltaAt(t EngineTime) TSSDelta {
	if s.deltaTime != t {
		return TSSDelta{}
	}
	d := TSSDelta{}
	for _, v := range s.added {
		d.Added = append(d.Added, v)
	}
	for _, v := range s.removed {
		d.Removed = append(d.Removed, v)
	}
	return d
}

func (s *tssSharedState) notifyAndTick(t EngineTime, key uint64, nowContains bool, wasEmpty bool) {
	s.subscribers.NotifyAll(t)
	// An output that already ticked at t (e.g. on creation earlier this
	// cycle) is reset first, so the latest value of the cycle replaces it.
	if entry, ok := s.containsOutputs[key]; ok {
		if entry.output.Modified(t) {
			entry.output.Reset()
		}
		_ = entry.output.SetValue(nowContains)
	}
	isEmptyNow := len(s.current) == 0
	if s.emptyOutput != nil && isEmptyNow != wasEmpty {
		if s.emptyOutput.Modified(t) {
			s.emptyOutput.Reset()
		}
		_ = s.emptyOutput.SetValue(isEmptyNow)
	}
}

// ContainsOutput returns a ref-counted TSOutput[bool] ticking true/false
// as item's membership changes (spec.md §4.G).
func (s *tssSharedState) containsOutput(item AnyValue) (*TSOutput[bool], error) {
	key, err := s.keyOf(item)
	if err != nil {
		return nil, err
	}
	if entry, ok := s.containsOutputs[key]; ok {
		entry.refs++
		return entry.output, nil
	}
	boolType, _ := LookupScalar[bool](globalBoolRegistry)
	out := NewTSOutput[bool](s.owner, boolType)
	_, present := s.current[key]
	_ = out.SetValue(present)
	s.containsOutputs[key] = &containsOutputEntry{output: out, refs: 1}
	return out, nil
}

func (s *tssSharedState) releaseContainsOutput(item AnyValue) {
	key, err := s.keyOf(item)
	if err != nil {
		return
	}
	entry, ok := s.containsOutputs[key]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(s.containsOutputs, key)
	}
}

func (s *tssSharedState) isEmptyOutput() *TSOutput[bool] {
	if s.emptyOutput == nil {
		boolType, _ := LookupScalar[bool](globalBoolRegistry)
		s.emptyOutput = NewTSOutput[bool](s.owner, boolType)
		_ = s.emptyOutput.SetValue(len(s.current) == 0)
	}
	s.emptyRefs++
	return s.emptyOutput
}

// globalBoolRegistry backs ContainsOutput/IsEmptyOutput's need for a
// bool TypeMeta without threading a Registry through every TSS call.
// Host applications that build their own Registry and call
// RegisterBuiltinScalars on it populate the same `bool` TypeMeta shape;
// this package-level registry exists solely so the reference-output
// bool type has somewhere stable to live when the caller's own registry
// isn't reachable from here.
var globalBoolRegistry = func() *Registry {
	r := NewRegistry()
	_ = RegisterBuiltinScalars(r)
	return r
}()

// TSSOutput is the write side of a time-series set (spec.md §4.G).
type TSSOutput struct {
	owner NotifiableContext
	state *tssSharedState
}

// NewTSSOutput constructs a fresh time-series set output owned by owner,
// holding elements of type elem.
func NewTSSOutput(owner NotifiableContext, elem *TypeMeta) *TSSOutput {
	return &TSSOutput{owner: owner, state: newTSSSharedState(owner, elem)}
}

// Add inserts item into the set at the current engine time.
func (o *TSSOutput) Add(item AnyValue) error {
	t := o.owner.CurrentEngineTime()
	key, err := o.state.keyOf(item)
	if err != nil {
		return err
	}
	wasEmpty := len(o.state.current) == 0
	changed, err := o.state.add(t, item)
	if err != nil {
		return err
	}
	if changed {
		o.state.notifyAndTick(t, key, true, wasEmpty)
	}
	return nil
}

// Remove deletes item from the set at the current engine time.
func (o *TSSOutput) Remove(item AnyValue) error {
	t := o.owner.CurrentEngineTime()
	key, err := o.state.keyOf(item)
	if err != nil {
		return err
	}
	wasEmpty := len(o.state.current) == 0
	changed, err := o.state.remove(t, item)
	if err != nil {
		return err
	}
	if changed {
		o.state.notifyAndTick(t, key, false, wasEmpty)
	}
	return nil
}

// Delta returns the added/removed elements visible at t.
func (o *TSSOutput) Delta(t EngineTime) TSSDelta { return o.state.deltaAt(t) }

// Contains reports whether item is currently in the set.
func (o *TSSOutput) Contains(item AnyValue) bool {
	key, err := o.state.keyOf(item)
	if err != nil {
		return false
	}
	_, ok := o.state.current[key]
	return ok
}

// Len reports the current element count.
func (o *TSSOutput) Len() int { return len(o.state.current) }

// ContainsOutput returns the ref-counted membership output for item.
func (o *TSSOutput) ContainsOutput(item AnyValue) (*TSOutput[bool], error) {
	return o.state.containsOutput(item)
}

// ReleaseContainsOutput decrements the ref count from ContainsOutput.
func (o *TSSOutput) ReleaseContainsOutput(item AnyValue) { o.state.releaseContainsOutput(item) }

// IsEmptyOutput returns the shared emptiness output for this set.
func (o *TSSOutput) IsEmptyOutput() *TSOutput[bool] { return o.state.isEmptyOutput() }

// Subscribe registers n as an observer of this set.
func (o *TSSOutput) Subscribe(n Observer) (SubscriberHandle, error) {
	return o.state.subscribers.Add(n)
}

// Unsubscribe removes a previously registered observer.
func (o *TSSOutput) Unsubscribe(h SubscriberHandle) { o.state.subscribers.Remove(h) }

// TSSInput is the read side of a time-series set. Before binding it has
// no shared state; BindOutput switches it onto the output's
// tssSharedState, the same migration shape as TSInput.BindOutput.
type TSSInput struct {
	owner        NotifiableContext
	elemType     *TypeMeta
	state        *tssSharedState
	known        map[uint64]AnyValue // last observed full membership, kept for cross-binding delta
	pendingDelta *TSSDelta
	pendingAt    EngineTime
	active       bool
	subscription SubscriberHandle
}

// NewTSSInput constructs an unbound set input expecting elements of elem.
func NewTSSInput(owner NotifiableContext, elem *TypeMeta) *TSSInput {
	return &TSSInput{owner: owner, elemType: elem, known: make(map[uint64]AnyValue)}
}

// Notify implements Observer.
func (in *TSSInput) Notify(t EngineTime) {
	in.syncKnown()
	in.owner.Notify(t)
}

// BindOutput switches this input onto out's shared state. If the input
// was previously bound, it computes a synthetic delta between its last
// known membership and the new state's current membership — the
// cross-binding delta rule from spec.md §4.G — so the owning node sees
// the correct added/removed rather than the new output's own
// cycle-local delta.
func (in *TSSInput) BindOutput(out *TSSOutput) error {
	if out.state.elemType != in.elemType {
		return errors.Wrapf(ErrTypeMismatch, "bind_output: expected %s, got %s", in.elemType, out.state.elemType)
	}

	var synthetic TSSDelta
	hadPrevious := in.state != nil
	previousKnown := in.known

	wasActive := in.active
	in.unsubscribeCurrent()

	in.state = out.state
	if hadPrevious {
		for key, v := range out.state.current {
			if _, had := previousKnown[key]; !had {
				synthetic.Added = append(synthetic.Added, v)
			}
		}
		for key, v := range previousKnown {
			if _, has := out.state.current[key]; !has {
				synthetic.Removed = append(synthetic.Removed, v)
			}
		}
		in.pendingDelta = &synthetic
		in.pendingAt = in.owner.CurrentEngineTime()
	}
	in.syncKnown()

	if wasActive {
		return in.MakeActive()
	}
	return nil
}

// Unbind drops the shared state, returning to an unbound input.
func (in *TSSInput) Unbind() {
	wasActive := in.active
	in.unsubscribeCurrent()
	in.state = nil
	in.known = make(map[uint64]AnyValue)
	in.active = false
	if wasActive {
		_ = in.MakeActive()
	}
}

// MakeActive subscribes this input on the shared state.
func (in *TSSInput) MakeActive() error {
	if in.state == nil {
		in.active = true
		return nil
	}
	if in.active && !in.subscription.IsZero() {
		return nil
	}
	h, err := in.state.subscribers.Add(in)
	if err != nil {
		return err
	}
	in.subscription = h
	in.active = true
	return nil
}

// MakePassive unsubscribes this input from the shared state.
func (in *TSSInput) MakePassive() {
	in.unsubscribeCurrent()
	in.active = false
}

// Active reports whether this input is currently subscribed.
func (in *TSSInput) Active() bool { return in.active }

// Bound reports whether this input shares state with an output.
func (in *TSSInput) Bound() bool { return in.state != nil }

// Delta returns the elements added/removed at t: the synthetic
// cross-binding delta if t matches the time of the most recent rebind,
// otherwise the shared state's own delta for t.
func (in *TSSInput) Delta(t EngineTime) TSSDelta {
	if in.pendingDelta != nil && in.pendingAt == t {
		return *in.pendingDelta
	}
	if in.state == nil {
		return TSSDelta{}
	}
	return in.state.deltaAt(t)
}

// Contains reports whether item is currently in the bound set.
func (in *TSSInput) Contains(item AnyValue) bool {
	if in.state == nil {
		return false
	}
	key, err := in.state.keyOf(item)
	if err != nil {
		return false
	}
	_, ok := in.state.current[key]
	return ok
}

// Len reports the current element count, or 0 if unbound.
func (in *TSSInput) Len() int {
	if in.state == nil {
		return 0
	}
	return len(in.state.current)
}

func (in *TSSInput) syncKnown() {
	if in.state == nil {
		return
	}
	known := make(map[uint64]AnyValue, len(in.state.current))
	for k, v := range in.state.current {
		known[k] = v
	}
	in.known = known
}

func (in *TSSInput) unsubscribeCurrent() {
	if in.state != nil && in.active && !in.subscription.IsZero() {
		in.state.subscribers.Remove(in.subscription)
	}
	in.subscription = SubscriberHandle{}
}
