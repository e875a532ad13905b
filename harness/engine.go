// Package harness provides a minimal reference NotifiableContext plus a
// tick-driven evaluation loop. It exists to give the core's propagation
// rules something concrete to run against in tests and examples; it is
// not a full evaluation engine (no pull/push source queues, no
// simulation clock beyond a caller-driven tick counter).
package harness

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	tsgraph "github.com/tsgraph/core"
)

// Node is evaluated once per tick, reading its bound TSInputs and
// writing its TSOutputs. Generalizes the teacher's System/WorkGroup
// pair into a single dataflow unit, since a tsgraph node has no
// read/write component-access declarations to validate up front.
type Node interface {
	Evaluate(ctx context.Context, eng *Engine) error
}

// ErrorPolicy controls how the engine responds to a node's evaluation
// error.
type ErrorPolicy uint8

const (
	// ErrorPolicyAbort stops the tick and returns the error.
	ErrorPolicyAbort ErrorPolicy = iota
	// ErrorPolicyContinue logs the error and evaluates remaining nodes.
	ErrorPolicyContinue
)

// NodeConfig declares a node's registration.
type NodeConfig struct {
	ID          string
	Node        Node
	ErrorPolicy ErrorPolicy
}

// NodeHandle references a registered node for later lookup.
type NodeHandle interface {
	ID() string
}

type nodeHandle struct{ id string }

func (h nodeHandle) ID() string { return h.id }

type nodeState struct {
	id     string
	node   Node
	policy ErrorPolicy
}

// EvaluationSummary captures one tick's outcome, published to the
// instrumentation chain after every Tick.
type EvaluationSummary struct {
	CorrelationID  uuid.UUID
	TickIndex      uint64
	Time           tsgraph.EngineTime
	NodesEvaluated int
	NodesFailed    int
	Notifications  uint64
	Duration       time.Duration
	Err            error
}

// Engine is a minimal NotifiableContext implementation: a registration
// order of nodes evaluated synchronously each Tick, with before/after
// evaluation hooks and an instrumentation chain. Adapted from the
// teacher's basicScheduler, generalized from "work groups of systems"
// to "dataflow nodes notified on tick".
type Engine struct {
	mu          sync.RWMutex
	currentTime tsgraph.EngineTime
	order       []string
	nodes       map[string]*nodeState

	beforeHooks *tsgraph.HookQueue
	afterHooks  *tsgraph.HookQueue

	logger   tsgraph.Logger
	observer EvaluationObserver

	tickIndex     uint64
	notifications uint64
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithLogger supplies a structured logger; defaults to a no-op.
func WithLogger(logger tsgraph.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithInstrumentation wires the logging/Prometheus observer chain.
func WithInstrumentation(cfg InstrumentationConfig) EngineOption {
	return func(e *Engine) {
		e.observer = buildObserverChain(e.logger, cfg)
	}
}

// NewEngine constructs an Engine starting at engine time zero.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		nodes:       make(map[string]*nodeState),
		beforeHooks: tsgraph.NewHookQueue(),
		afterHooks:  tsgraph.NewHookQueue(),
		logger:      noopLogger{},
		observer:    noopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.observer == nil {
		e.observer = noopObserver{}
	}
	return e
}

// RegisterNode adds a node to the evaluation order, failing if the ID
// is already taken (mirrors the teacher's RegisterWorkGroup duplicate
// check).
func (e *Engine) RegisterNode(cfg NodeConfig) (NodeHandle, error) {
	if cfg.ID == "" {
		return nil, errors.New("harness: node requires non-empty ID")
	}
	if cfg.Node == nil {
		return nil, errors.New("harness: node requires non-nil implementation")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.nodes[cfg.ID]; exists {
		return nil, errors.Errorf("harness: node %s already registered", cfg.ID)
	}
	e.nodes[cfg.ID] = &nodeState{id: cfg.ID, node: cfg.Node, policy: cfg.ErrorPolicy}
	e.order = append(e.order, cfg.ID)
	return nodeHandle{id: cfg.ID}, nil
}

// CurrentEngineTime implements tsgraph.NotifiableContext.
func (e *Engine) CurrentEngineTime() tsgraph.EngineTime {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.currentTime
}

// Notify implements tsgraph.NotifiableContext. The harness performs no
// fine-grained dependency tracking, so Notify only records that data
// became available at t; evaluation order is driven by Tick, not by
// reacting to individual notifications.
func (e *Engine) Notify(t tsgraph.EngineTime) {
	atomic.AddUint64(&e.notifications, 1)
}

// AddBeforeEvaluationNotification implements tsgraph.NotifiableContext.
func (e *Engine) AddBeforeEvaluationNotification(fn tsgraph.Hook) {
	e.beforeHooks.Push(fn)
}

// AddAfterEvaluationNotification implements tsgraph.NotifiableContext.
func (e *Engine) AddAfterEvaluationNotification(fn tsgraph.Hook) {
	e.afterHooks.Push(fn)
}

// Tick advances engine time by advance, runs every registered node
// once in registration order, and publishes an EvaluationSummary to
// the instrumentation chain.
func (e *Engine) Tick(ctx context.Context, advance tsgraph.EngineTime) (EvaluationSummary, error) {
	e.mu.Lock()
	e.currentTime = e.currentTime.Add(advance)
	now := e.currentTime
	order := append([]string(nil), e.order...)
	states := make([]*nodeState, 0, len(order))
	for _, id := range order {
		states = append(states, e.nodes[id])
	}
	tick := e.tickIndex
	e.tickIndex++
	e.mu.Unlock()

	e.beforeHooks.Drain()

	summary := EvaluationSummary{
		CorrelationID: uuid.New(),
		TickIndex:     tick,
		Time:          now,
	}
	start := time.Now()

	var firstErr error
	for _, state := range states {
		if err := ctx.Err(); err != nil {
			firstErr = err
			break
		}
		if err := state.node.Evaluate(ctx, e); err != nil {
			summary.NodesFailed++
			wrapped := errors.Wrapf(err, "harness: node %s evaluation failed", state.id)
			if state.policy == ErrorPolicyContinue {
				e.logger.Error("node evaluation error", "node", state.id, "err", err)
				continue
			}
			firstErr = wrapped
			break
		}
		summary.NodesEvaluated++
	}

	e.afterHooks.Drain()

	summary.Duration = time.Since(start)
	summary.Notifications = atomic.LoadUint64(&e.notifications)
	summary.Err = firstErr

	e.observer.EvaluationCompleted(summary)
	return summary, firstErr
}

// Run ticks the engine steps times, advancing engine time by advance
// on every step, stopping at the first error.
func (e *Engine) Run(ctx context.Context, steps int, advance tsgraph.EngineTime) error {
	for i := 0; i < steps; i++ {
		if _, err := e.Tick(ctx, advance); err != nil {
			return err
		}
	}
	return nil
}

// TickIndex returns the number of ticks run so far.
func (e *Engine) TickIndex() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tickIndex
}

var _ tsgraph.NotifiableContext = (*Engine)(nil)

type noopLogger struct{}

func (noopLogger) With(string, any) tsgraph.Logger { return noopLogger{} }
func (noopLogger) Info(string, ...any)             {}
func (noopLogger) Error(string, ...any)            {}
