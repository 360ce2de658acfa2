// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

import (
	"iter"
	"reflect"
	"slices"

	"github.com/google/uuid"
)

// Trace is the record of all primitive calls observed during one
// execution: an insertion-ordered map from site name to [Message] plus an
// adjacency structure over site names. A trace is built while an execution
// runs (typically by [TraceMessenger]) and is immutable afterwards except
// for post-hoc annotation such as log-probability caching. Consumers
// handed a trace by reference must not mutate it; take [Trace.Copy] first.
type Trace struct {
	id    string
	nodes map[string]*Message
	order []string
	edges map[string][]string
}

// NewTrace returns an empty trace with a fresh identity.
func NewTrace() *Trace {
	return &Trace{
		id:    uuid.NewString(),
		nodes: make(map[string]*Message),
		edges: make(map[string][]string),
	}
}

// ID returns the trace's unique identity. Copies get their own.
func (t *Trace) ID() string { return t.id }

// Len reports the number of recorded sites.
func (t *Trace) Len() int { return len(t.order) }

// Contains reports whether a site was recorded under name.
func (t *Trace) Contains(name string) bool {
	_, ok := t.nodes[name]
	return ok
}

// Node returns the message recorded under name.
func (t *Trace) Node(name string) (*Message, bool) {
	m, ok := t.nodes[name]
	return m, ok
}

// Names returns the recorded site names in execution order.
func (t *Trace) Names() []string {
	return slices.Clone(t.order)
}

// All iterates the recorded sites in execution order.
func (t *Trace) All() iter.Seq2[string, *Message] {
	return func(yield func(string, *Message) bool) {
		for _, name := range t.order {
			if !yield(name, t.nodes[name]) {
				return
			}
		}
	}
}

// Add records msg under its site name. Site names are unique within a
// trace; a second message under the same name is a programming error in
// the model and is rejected with [ErrDuplicateSite]. The message must have
// its type set.
func (t *Trace) Add(msg *Message) error {
	if msg.Type == "" {
		return siteErrorf(ErrSiteMismatch, msg.Name, "message has no type")
	}
	if _, ok := t.nodes[msg.Name]; ok {
		return &SiteError{Kind: ErrDuplicateSite, Site: msg.Name}
	}
	t.nodes[msg.Name] = msg
	t.order = append(t.order, msg.Name)
	return nil
}

// AddEdge records a dependency from site u to site v.
func (t *Trace) AddEdge(u, v string) {
	if !slices.Contains(t.edges[u], v) {
		t.edges[u] = append(t.edges[u], v)
	}
}

// Successors returns the sites recorded as depending on name.
func (t *Trace) Successors(name string) []string {
	return slices.Clone(t.edges[name])
}

// Copy returns a structurally independent trace: messages are cloned and
// the adjacency structure is copied, so mutating the copy's entries never
// affects the original. The copy carries a fresh identity.
func (t *Trace) Copy() *Trace {
	c := NewTrace()
	c.order = slices.Clone(t.order)
	for name, msg := range t.nodes {
		c.nodes[name] = msg.Copy()
	}
	for u, vs := range t.edges {
		c.edges[u] = slices.Clone(vs)
	}
	return c
}

// Compatible reports whether the values recorded at sites shared with
// other agree. Replay against a compatible trace reproduces those sites
// exactly.
func (t *Trace) Compatible(other *Trace) bool {
	for _, name := range t.order {
		o, ok := other.nodes[name]
		if !ok {
			continue
		}
		if !reflect.DeepEqual(t.nodes[name].Value, o.Value) {
			return false
		}
	}
	return true
}

// LogProbSum accumulates the log-probability of every stochastic site
// under its own primitive, honoring per-site scale factors and masks.
// Each site's score is computed once and cached on the message; repeated
// calls reuse the cache. Requires every unmasked stochastic site's
// primitive to implement [Scored].
func (t *Trace) LogProbSum() (float64, error) {
	total := 0.0
	for _, name := range t.order {
		msg := t.nodes[name]
		if !msg.stochastic() || msg.Masked() {
			continue
		}
		if msg.logProb == nil {
			scored, ok := msg.Fn.(Scored)
			if !ok {
				return 0, &SiteError{Kind: ErrNotScored, Site: name}
			}
			lp, err := scored.Score(msg.Value, msg.Args...)
			if err != nil {
				return 0, err
			}
			msg.logProb = &lp
		}
		total += msg.Scale * *msg.logProb
	}
	return total, nil
}
