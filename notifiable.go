package tsgraph

// NotifiableContext is the single interface the core consumes from the
// host evaluation engine (spec.md §4.I). The engine's own scheduler,
// node graph and cycle loop are out of scope for this package; a
// minimal reference implementation lives in tsgraph/harness.
type NotifiableContext interface {
	// CurrentEngineTime returns the engine time of the cycle presently
	// executing.
	CurrentEngineTime() EngineTime

	// Notify is called by an input's TSValue when it observes a change,
	// waking the owning node at t.
	Notify(t EngineTime)

	// AddBeforeEvaluationNotification registers a one-shot callback
	// fired immediately before the next evaluation cycle begins.
	AddBeforeEvaluationNotification(fn Hook)

	// AddAfterEvaluationNotification registers a one-shot callback
	// fired immediately after the current evaluation cycle ends.
	AddAfterEvaluationNotification(fn Hook)
}

// Observer is anything that can be notified of a change at an engine
// time: the owning node of a TSInput, or a parent composite output. It
// is the minimal seam invariants in spec.md §5 talk about ("a
// subscriber registered before notify fires is called in this cycle").
type Observer interface {
	Notify(t EngineTime)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(t EngineTime)

// Notify implements Observer.
func (f ObserverFunc) Notify(t EngineTime) { f(t) }
