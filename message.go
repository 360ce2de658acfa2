// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

import "maps"

// MessageType discriminates the kind of primitive statement a message
// describes.
type MessageType string

const (
	// TypeSample marks a stochastic draw from a primitive.
	TypeSample MessageType = "sample"
	// TypeParam marks a learnable-parameter lookup.
	TypeParam MessageType = "param"
	// TypeObserve marks a draw whose value is fixed by observation.
	TypeObserve MessageType = "observe"
)

// Primitive is the opaque callable supplied by the numeric collaborator.
// The handler core invokes it to produce a site value and performs no
// introspection beyond the optional capability interfaces [Scored] and
// [Enumerable], detected by structural assertion at the point of use.
type Primitive interface {
	Call(args []any, kwargs map[string]any) (any, error)
}

// PrimitiveFunc adapts a plain function to the [Primitive] interface.
type PrimitiveFunc func(args []any, kwargs map[string]any) (any, error)

// Call implements [Primitive].
func (f PrimitiveFunc) Call(args []any, kwargs map[string]any) (any, error) {
	return f(args, kwargs)
}

// Scored is implemented by primitives that can report the log-density of a
// value under their distribution. [Trace.LogProbSum] requires it.
type Scored interface {
	Score(value any, args ...any) (float64, error)
}

// Enumerable is implemented by primitives with finite discrete support.
// [EnumExtend] and [DiscreteEscape] require it.
type Enumerable interface {
	Support(args ...any) ([]any, error)
}

// CondIndepFrame records one conditional-independence context a message
// passed through. Context-declaring messengers ([PlateMessenger],
// [MarkovMessenger]) append frames during their inward hook.
type CondIndepFrame struct {
	Name    string
	Dim     int
	Size    int
	Counter int
}

// Continuation is an optional control transfer invoked after both hook
// passes complete. [EscapeMessenger] installs one to signal a non-local
// exit; a non-nil error return propagates to the primitive's caller.
type Continuation func(*Message) error

// Message is the record of one intercepted primitive call. A fresh message
// is built at the call site, flows through the active messenger stack, and
// is discarded (or folded into a [Trace]) when the call returns.
//
// Hooks mutate messages in place. Once Done is set no hook may mutate
// Value; hooks that supply values check Done before writing.
type Message struct {
	// Name identifies the site. It must be unique within one traced
	// execution; [Trace.Add] rejects duplicates.
	Name string

	// Type tags the primitive kind.
	Type MessageType

	// Fn is the underlying primitive, referenced not copied.
	Fn Primitive

	// Args and Kwargs are the call arguments. Inward hooks may rewrite
	// them before the primitive fires.
	Args   []any
	Kwargs map[string]any

	// Value is the site result. Nil means "not yet computed"; it is set
	// either by the primitive or by a handler supplying an observed,
	// conditioned, or replayed value.
	Value any

	// IsObserved reports that Value was fixed externally rather than drawn.
	IsObserved bool

	// Done short-circuits the default primitive invocation.
	// Stop cuts off inward processing by messengers entered earlier.
	Done bool
	Stop bool

	// Scale multiplies the site's log-probability contribution.
	// Mask gates it entirely; nil means unmasked.
	Scale float64
	Mask  *bool

	// CondIndepStack accumulates the independence contexts enclosing the
	// site, innermost last.
	CondIndepStack []CondIndepFrame

	// Infer carries inference-algorithm hints keyed by convention.
	Infer map[string]any

	// Continuation, if set, runs after the outward pass.
	Continuation Continuation

	// cached log-probability, filled lazily by Trace.LogProbSum
	logProb *float64

	pooled bool
}

// Copy returns a deep-enough clone of the message: slices and maps are
// copied so that mutating the clone never affects the original. Fn and
// Value are shared, matching the reference semantics of the primitive and
// its result. Handlers that retain a message beyond the dispatch in
// progress must retain a copy; the original may be pooled.
func (m *Message) Copy() *Message {
	c := &Message{
		Name:         m.Name,
		Type:         m.Type,
		Fn:           m.Fn,
		Value:        m.Value,
		IsObserved:   m.IsObserved,
		Done:         m.Done,
		Stop:         m.Stop,
		Scale:        m.Scale,
		Continuation: m.Continuation,
		logProb:      m.logProb,
	}
	if m.Mask != nil {
		mask := *m.Mask
		c.Mask = &mask
	}
	if len(m.Args) > 0 {
		c.Args = append([]any(nil), m.Args...)
	}
	if len(m.Kwargs) > 0 {
		c.Kwargs = maps.Clone(m.Kwargs)
	}
	if len(m.CondIndepStack) > 0 {
		c.CondIndepStack = append([]CondIndepFrame(nil), m.CondIndepStack...)
	}
	c.Infer = make(map[string]any, len(m.Infer))
	maps.Copy(c.Infer, m.Infer)
	return c
}

// Masked reports whether the site's log-probability contribution is gated
// off by an accumulated mask.
func (m *Message) Masked() bool {
	return m.Mask != nil && !*m.Mask
}

// stochastic reports whether the site carries probability mass.
func (m *Message) stochastic() bool {
	return m.Type == TypeSample || m.Type == TypeObserve
}
