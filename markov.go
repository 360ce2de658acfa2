// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

import "iter"

// Infer-map keys written by [MarkovMessenger].
const (
	inferMarkovScope = "_markov_scope"
	inferMarkovDepth = "_markov_depth"
)

// MarkovMessenger declares a Markov dependency context: sample sites in
// its scope see the sites of at most `history` preceding contexts as
// upstream dependencies. The messenger is reentrant — entering the same
// value recursively deepens the context — and is usable as a scoped block,
// a decorator via [Wrap], or a sequence producer via
// [MarkovMessenger.Range].
type MarkovMessenger struct {
	BaseMessenger
	history int
	keep    bool
	dim     int
	name    string

	pos    int
	frames []map[string]struct{}
}

// MarkovOption configures a [MarkovMessenger].
type MarkovOption func(*MarkovMessenger)

// History bounds the lookback window: the number of preceding contexts
// visible from the current one. Zero declares full independence between
// sibling contexts. The default is 1.
func History(n int) MarkovOption {
	return func(m *MarkovMessenger) { m.history = n }
}

// Keep retains exited frames so that sibling contexts at the same depth
// can depend on each other, which matters when replaying branched
// executions. Without it, exited frames are discarded and siblings are
// independent.
func Keep(keep bool) MarkovOption {
	return func(m *MarkovMessenger) { m.keep = keep }
}

// Dim reserves a tensor dimension for this context. Reserved: dimension
// allocation belongs to a tensor backend, and [Markov] rejects the option
// until one exists.
func Dim(dim int) MarkovOption {
	return func(m *MarkovMessenger) { m.dim = dim }
}

// Named reserves a cross-trace matching name for this context. Reserved:
// site matching between models and guides is not implemented, and [Markov]
// rejects the option.
func Named(name string) MarkovOption {
	return func(m *MarkovMessenger) { m.name = name }
}

// Markov returns a Markov dependency context with history 1 unless
// configured otherwise. Panics if a reserved option is set.
func Markov(opts ...MarkovOption) *MarkovMessenger {
	m := &MarkovMessenger{history: 1, pos: -1}
	for _, opt := range opts {
		opt(m)
	}
	if m.dim != 0 || m.name != "" {
		panic("stoch: markov dim/name options are not implemented")
	}
	return m
}

// Enter implements [Messenger].
func (m *MarkovMessenger) Enter(*Runtime) {
	m.pos++
	if len(m.frames) <= m.pos {
		m.frames = append(m.frames, make(map[string]struct{}))
	}
}

// Exit implements [Messenger].
func (m *MarkovMessenger) Exit(*Runtime) {
	if !m.keep {
		m.frames = m.frames[:len(m.frames)-1]
	}
	m.pos--
}

// Process implements [Messenger]. Sample sites accumulate the visible
// window into their markov scope hint, bump their context depth, and are
// recorded into the current frame for contexts that follow.
func (m *MarkovMessenger) Process(msg *Message) error {
	if msg.Type != TypeSample {
		return nil
	}
	scope, ok := msg.Infer[inferMarkovScope].(map[string]int)
	if !ok {
		scope = make(map[string]int)
		msg.Infer[inferMarkovScope] = scope
	}
	lo := m.pos - m.history
	if lo < 0 {
		lo = 0
	}
	for p := lo; p <= m.pos; p++ {
		for name := range m.frames[p] {
			scope[name]++
		}
	}
	depth, _ := msg.Infer[inferMarkovDepth].(int)
	msg.Infer[inferMarkovDepth] = depth + 1
	msg.CondIndepStack = append(msg.CondIndepStack, CondIndepFrame{
		Name:    m.name,
		Dim:     m.dim,
		Size:    -1,
		Counter: m.pos,
	})
	m.frames[m.pos][msg.Name] = struct{}{}
	return nil
}

// Range produces the sequence form: it yields 0..n-1 with one context
// entered per element, cumulatively, so element t sees the `history`
// elements before it. All contexts are exited when the sequence ends,
// including by early break.
//
//	for t := range chain.Range(rt, 10) {
//	    x, err = rt.Sample(fmt.Sprintf("x_%d", t), trans(x))
//	    ...
//	}
func (m *MarkovMessenger) Range(rt *Runtime, n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		depth := rt.Depth()
		defer rt.unwind(depth)
		for i := range n {
			rt.enter(m)
			if !yield(i) {
				return
			}
		}
	}
}
