// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

import "errors"

// TraceQueue holds partial traces awaiting completion. The pop discipline
// is entirely the caller's: a LIFO queue yields depth-first enumeration, a
// FIFO queue breadth-first, and a priority queue whatever order its
// priorities encode. [Queue] is discipline-agnostic.
type TraceQueue interface {
	Put(tr *Trace)
	Get() (*Trace, bool)
	Len() int
}

// FIFOQueue is a first-in-first-out [TraceQueue].
type FIFOQueue struct {
	items []*Trace
}

// NewFIFOQueue returns a FIFO queue seeded with the given partial traces.
func NewFIFOQueue(seed ...*Trace) *FIFOQueue {
	return &FIFOQueue{items: append([]*Trace(nil), seed...)}
}

// Put implements [TraceQueue].
func (q *FIFOQueue) Put(tr *Trace) { q.items = append(q.items, tr) }

// Get implements [TraceQueue].
func (q *FIFOQueue) Get() (*Trace, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	tr := q.items[0]
	q.items = q.items[1:]
	return tr, true
}

// Len implements [TraceQueue].
func (q *FIFOQueue) Len() int { return len(q.items) }

// LIFOQueue is a last-in-first-out [TraceQueue].
type LIFOQueue struct {
	items []*Trace
}

// NewLIFOQueue returns a LIFO queue seeded with the given partial traces.
func NewLIFOQueue(seed ...*Trace) *LIFOQueue {
	return &LIFOQueue{items: append([]*Trace(nil), seed...)}
}

// Put implements [TraceQueue].
func (q *LIFOQueue) Put(tr *Trace) { q.items = append(q.items, tr) }

// Get implements [TraceQueue].
func (q *LIFOQueue) Get() (*Trace, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	tr := q.items[len(q.items)-1]
	q.items = q.items[:len(q.items)-1]
	return tr, true
}

// Len implements [TraceQueue].
func (q *LIFOQueue) Len() int { return len(q.items) }

// ExtendFunc maps a partial trace and the site where execution escaped to
// the successor partial traces to enqueue.
type ExtendFunc func(tr *Trace, site *Message) ([]*Trace, error)

// QueueEscapeFunc decides, given the partial trace being replayed and a
// site, whether to stop and branch there.
type QueueEscapeFunc func(partial *Trace, msg *Message) bool

const defaultMaxTries = 1_000_000

type queueConfig struct {
	maxTries   int
	numSamples int
	extendFn   ExtendFunc
	escapeFn   QueueEscapeFunc
}

// QueueOption configures the [Queue] composite.
type QueueOption func(*queueConfig)

// MaxTries bounds the number of partial traces popped before giving up.
func MaxTries(n int) QueueOption {
	return func(c *queueConfig) { c.maxTries = n }
}

// NumSamples caps how many successor traces the default extension produces
// per branch point. Negative means the full support.
func NumSamples(n int) QueueOption {
	return func(c *queueConfig) { c.numSamples = n }
}

// WithExtend replaces the default [EnumExtend] extension.
func WithExtend(fn ExtendFunc) QueueOption {
	return func(c *queueConfig) { c.extendFn = fn }
}

// WithEscape replaces the default [DiscreteEscape] branch predicate.
func WithEscape(fn QueueEscapeFunc) QueueOption {
	return func(c *queueConfig) { c.escapeFn = fn }
}

// Queue builds systematic enumeration over discrete sites from the
// handler stack alone. Each attempt pops a partial trace and runs fn under
// trace ∘ escape ∘ replay: replay pins the sites already decided, escape
// interrupts at the first undecided branch point, and the trace handler
// records everything executed so far. A completed run returns its result;
// an interrupted one extends the recorded prefix across the branch point's
// alternatives and enqueues the successors.
//
// Popping an empty queue fails immediately with [ErrEmptyQueue] rather
// than deadlocking, and exceeding the attempt bound fails with
// [ErrMaxTries].
func Queue(fn Model, q TraceQueue, opts ...QueueOption) Model {
	cfg := queueConfig{maxTries: defaultMaxTries, numSamples: -1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.escapeFn == nil {
		cfg.escapeFn = DiscreteEscape
	}
	if cfg.extendFn == nil {
		cfg.extendFn = func(tr *Trace, site *Message) ([]*Trace, error) {
			return EnumExtend(tr, site, cfg.numSamples)
		}
	}
	return func(rt *Runtime, args ...any) (any, error) {
		for try := 0; try < cfg.maxTries; try++ {
			partial, ok := q.Get()
			if !ok {
				return nil, siteErrorf(ErrEmptyQueue, "", "after %d tries", try)
			}
			tm := TraceHandler()
			wrapped := WrapAll(fn,
				tm,
				Escape(func(msg *Message) bool { return cfg.escapeFn(partial, msg) }),
				Replay(partial),
			)
			out, err := wrapped(rt, args...)
			if err == nil {
				return out, nil
			}
			var exit *NonlocalExit
			if !errors.As(err, &exit) {
				return nil, err
			}
			successors, err := cfg.extendFn(tm.Trace().Copy(), exit.Site)
			if err != nil {
				return nil, err
			}
			for _, tr := range successors {
				q.Put(tr)
			}
		}
		return nil, siteErrorf(ErrMaxTries, "", "%d attempts", cfg.maxTries)
	}
}

// DiscreteEscape is the default branch predicate: stop at unobserved,
// enumerable sample sites not yet decided by the partial trace.
func DiscreteEscape(partial *Trace, msg *Message) bool {
	if msg.Type != TypeSample || msg.IsObserved || partial.Contains(msg.Name) {
		return false
	}
	_, ok := msg.Fn.(Enumerable)
	return ok
}

// EnumExtend is the default extension: one successor per value in the
// branch site's support, each the prefix trace plus the site pinned to
// that value. numSamples caps the branch count; negative takes the full
// support.
func EnumExtend(tr *Trace, site *Message, numSamples int) ([]*Trace, error) {
	en, ok := site.Fn.(Enumerable)
	if !ok {
		return nil, &SiteError{Kind: ErrNotEnumerable, Site: site.Name}
	}
	support, err := en.Support(site.Args...)
	if err != nil {
		return nil, err
	}
	var successors []*Trace
	for i, v := range support {
		if numSamples >= 0 && i >= numSamples {
			break
		}
		next := tr.Copy()
		node := site.Copy()
		node.Value = v
		node.Done = true
		node.Stop = false
		node.Continuation = nil
		if err := next.Add(node); err != nil {
			return nil, err
		}
		successors = append(successors, next)
	}
	return successors, nil
}
