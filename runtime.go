// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

// Runtime owns the ordered stack of active messengers for one logical
// execution context. It is deliberately not package-level state: create
// one runtime per logical execution and pass it to the model. Sharing one
// runtime across concurrent executions is not supported; give each
// concurrent trace its own.
type Runtime struct {
	stack []Messenger
	rng   RNG
}

// Option configures a [Runtime] at construction time.
type Option func(*Runtime)

// WithRNG installs a custom random-state collaborator.
func WithRNG(rng RNG) Option {
	return func(rt *Runtime) { rt.rng = rng }
}

// New constructs a runtime with an empty messenger stack and, unless
// overridden, a PCG-backed RNG with a nondeterministic seed.
func New(opts ...Option) *Runtime {
	rt := &Runtime{}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.rng == nil {
		rt.rng = NewPCGRNG(randomSeed())
	}
	return rt
}

// RNG returns the runtime's random-state collaborator.
func (rt *Runtime) RNG() RNG { return rt.rng }

// Depth reports the number of currently active messengers.
func (rt *Runtime) Depth() int { return len(rt.stack) }

// Scope runs body with m active on the messenger stack. The stack slot is
// acquired before body runs and released unconditionally afterwards: on
// normal return, on error (including a [NonlocalExit] propagating to an
// enclosing catcher), and on panic. Messengers pushed inside body and
// abandoned by an early exit are unwound to the pre-scope depth.
//
// Scopes nest freely; a hook may itself enter scopes and perform primitive
// calls, and a messenger entered during a dispatch participates in the next
// dispatch, not the one in progress.
func (rt *Runtime) Scope(m Messenger, body func() error) error {
	depth := len(rt.stack)
	rt.enter(m)
	defer rt.unwind(depth)
	return body()
}

// enter pushes m and runs its setup. Callers pair it with a deferred
// unwind to the pre-entry depth.
func (rt *Runtime) enter(m Messenger) {
	rt.stack = append(rt.stack, m)
	m.Enter(rt)
}

// unwind pops messengers down to depth, running teardown for each,
// innermost first.
func (rt *Runtime) unwind(depth int) {
	for len(rt.stack) > depth {
		top := rt.stack[len(rt.stack)-1]
		rt.stack = rt.stack[:len(rt.stack)-1]
		top.Exit(rt)
	}
}

// Sample performs a named stochastic draw from fn. With no active
// messengers the primitive is invoked directly; otherwise the call is
// routed through the stack via [Runtime.Apply].
func (rt *Runtime) Sample(name string, fn Primitive, args ...any) (any, error) {
	if len(rt.stack) == 0 {
		if fn == nil {
			return nil, siteErrorf(ErrNilPrimitive, name, "no handler supplied a value")
		}
		return fn.Call(args, nil)
	}
	msg := acquireMessage()
	msg.Name = name
	msg.Type = TypeSample
	msg.Fn = fn
	msg.Args = args
	return rt.finish(msg)
}

// Observe performs a named draw whose value is fixed externally. The
// primitive is never invoked; the site still flows through the stack so
// handlers can record and score it.
func (rt *Runtime) Observe(name string, fn Primitive, value any, args ...any) (any, error) {
	if len(rt.stack) == 0 {
		return value, nil
	}
	msg := acquireMessage()
	msg.Name = name
	msg.Type = TypeObserve
	msg.Fn = fn
	msg.Args = args
	msg.Value = value
	msg.IsObserved = true
	return rt.finish(msg)
}

// Param performs a named learnable-parameter lookup through fn.
func (rt *Runtime) Param(name string, fn Primitive, args ...any) (any, error) {
	if len(rt.stack) == 0 {
		if fn == nil {
			return nil, siteErrorf(ErrNilPrimitive, name, "no handler supplied a value")
		}
		return fn.Call(args, nil)
	}
	msg := acquireMessage()
	msg.Name = name
	msg.Type = TypeParam
	msg.Fn = fn
	msg.Args = args
	return rt.finish(msg)
}

// finish dispatches msg and releases it back to the pool on success. The
// error path keeps the message alive: a [NonlocalExit] carries it to the
// enclosing catcher.
func (rt *Runtime) finish(msg *Message) (any, error) {
	v, err := rt.Apply(msg)
	if err != nil {
		return nil, err
	}
	releaseMessage(msg)
	return v, nil
}
