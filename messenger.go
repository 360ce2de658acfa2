// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

// Messenger is the interface every handler implements: a scoped interceptor
// with an ordered pair of hooks invoked around each primitive call while
// the messenger is on the active stack.
//
// Enter and Exit bracket the messenger's activation lifetime and run
// handler-specific setup and teardown; [Runtime.Scope] guarantees Exit on
// every exit path. Process runs on the inward pass (innermost messenger
// first), PostProcess on the outward pass (in entry order). Default
// implementations are identity transforms; embed [BaseMessenger] and
// override a subset.
//
// Messengers must be self-contained: they communicate only through the
// [Message] fields and their position on the stack, never through another
// messenger's internal state.
type Messenger interface {
	Enter(rt *Runtime)
	Exit(rt *Runtime)
	Process(msg *Message) error
	PostProcess(msg *Message) error
}

// BaseMessenger provides no-op hooks for embedding in concrete messengers.
type BaseMessenger struct{}

// Enter implements [Messenger].
func (BaseMessenger) Enter(*Runtime) {}

// Exit implements [Messenger].
func (BaseMessenger) Exit(*Runtime) {}

// Process implements [Messenger].
func (BaseMessenger) Process(*Message) error { return nil }

// PostProcess implements [Messenger].
func (BaseMessenger) PostProcess(*Message) error { return nil }

// Model is a stochastic function: ordinary code that performs named
// primitive calls through the runtime it receives.
type Model func(rt *Runtime, args ...any) (any, error)

// Wrap returns fn with m installed around each call: the decorator form of
// a handler. The messenger enters the runtime's stack before fn runs and
// leaves it when fn returns, on every exit path.
func Wrap(m Messenger, fn Model) Model {
	return func(rt *Runtime, args ...any) (out any, err error) {
		err = rt.Scope(m, func() error {
			var bodyErr error
			out, bodyErr = fn(rt, args...)
			return bodyErr
		})
		return out, err
	}
}

// WrapAll installs the given messengers around fn, outermost first:
// WrapAll(fn, a, b) behaves as Wrap(a, Wrap(b, fn)).
func WrapAll(fn Model, ms ...Messenger) Model {
	for i := len(ms) - 1; i >= 0; i-- {
		fn = Wrap(ms[i], fn)
	}
	return fn
}
