package tsgraph

import "sync"

// Hook is a one-shot callback queued against a NotifiableContext's
// before- or after-evaluation list.
type Hook func()

// HookQueue accumulates one-shot hooks registered during a cycle and
// drains them exactly once, the same accumulate/snapshot/restore/drain
// shape as the teacher's CommandBuffer, repurposed from "deferred world
// mutations" to "before/after-evaluation notifications"
// (NotifiableContext's add_before_evaluation_notification /
// add_after_evaluation_notification in spec.md §4). Restore lets a
// harness roll back hooks registered speculatively within a cycle that
// was abandoned before committing.
type HookQueue struct {
	hooks []Hook
}

// NewHookQueue creates an empty queue.
func NewHookQueue() *HookQueue {
	return &HookQueue{}
}

// Len reports how many hooks are queued.
func (q *HookQueue) Len() int { return len(q.hooks) }

// Push appends a hook to the queue.
func (q *HookQueue) Push(h Hook) {
	if h == nil {
		return
	}
	q.hooks = append(q.hooks, h)
}

// Drain runs and clears every queued hook, in registration order. Hooks
// run in Drain itself (not handed back to the caller) so that a hook
// registered by an earlier hook within the same Drain still runs in the
// same pass, matching the "fires once per cycle" contract.
func (q *HookQueue) Drain() {
	for len(q.hooks) > 0 {
		hooks := q.hooks
		q.hooks = nil
		for _, h := range hooks {
			h()
		}
	}
}

// Snapshot returns the current hook count so callers can Restore later.
func (q *HookQueue) Snapshot() int { return len(q.hooks) }

// Restore truncates the queue back to a prior Snapshot.
func (q *HookQueue) Restore(snapshot int) {
	if snapshot < 0 {
		snapshot = 0
	}
	if snapshot >= len(q.hooks) {
		return
	}
	q.hooks = q.hooks[:snapshot]
}

// HookQueuePool reuses HookQueues across evaluation cycles to avoid
// reallocating a slice every tick, the same pooling the teacher applies
// to CommandBuffer.
type HookQueuePool struct {
	pool sync.Pool
}

// NewHookQueuePool constructs a pool that returns fresh queues.
func NewHookQueuePool() *HookQueuePool {
	p := &HookQueuePool{}
	p.pool.New = func() any { return NewHookQueue() }
	return p
}

// Get retrieves a queue from the pool.
func (p *HookQueuePool) Get() *HookQueue { return p.pool.Get().(*HookQueue) }

// Put drains and returns a queue to the pool.
func (p *HookQueuePool) Put(q *HookQueue) {
	if q == nil {
		return
	}
	q.Drain()
	p.pool.Put(q)
}
