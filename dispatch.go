// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

// Apply routes one primitive call through the active messenger stack:
//
//  1. Process hooks run innermost-first over the messengers active when
//     the dispatch started. A hook setting msg.Stop cuts off the
//     messengers entered before it.
//  2. If no hook supplied a value and set Done, the underlying primitive
//     fires to populate msg.Value.
//  3. PostProcess hooks run in entry order over exactly the messengers
//     consulted in step 1.
//  4. msg.Continuation, if installed, runs last; it may redirect control
//     non-locally by returning an error.
//
// The stack may grow during hook execution; messengers entered mid-dispatch
// join the next dispatch only. A hook error aborts the remaining passes and
// propagates to the caller; enclosing scopes unwind the stack as it does.
func (rt *Runtime) Apply(msg *Message) (any, error) {
	n := len(rt.stack)
	stop := 0
	for i := n - 1; i >= 0; i-- {
		if err := rt.stack[i].Process(msg); err != nil {
			return nil, err
		}
		if msg.Stop {
			stop = i
			break
		}
	}
	if err := defaultProcess(msg); err != nil {
		return nil, err
	}
	for i := stop; i < n; i++ {
		if err := rt.stack[i].PostProcess(msg); err != nil {
			return nil, err
		}
	}
	if msg.Continuation != nil {
		if err := msg.Continuation(msg); err != nil {
			return nil, err
		}
	}
	return msg.Value, nil
}

// defaultProcess invokes the primitive unless a handler already resolved
// the site. A site that arrives observed, done, or with a value is sealed
// as done; hooks honor the invariant that a done site's value is final.
func defaultProcess(msg *Message) error {
	if msg.Done || msg.IsObserved || msg.Value != nil {
		msg.Done = true
		return nil
	}
	if msg.Fn == nil {
		return siteErrorf(ErrNilPrimitive, msg.Name, "no handler supplied a value")
	}
	v, err := msg.Fn.Call(msg.Args, msg.Kwargs)
	if err != nil {
		return err
	}
	msg.Value = v
	msg.Done = true
	return nil
}
