// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

// NonlocalExit is the control-flow signal raised by [EscapeMessenger]: not
// a failure, but a deliberate early exit carrying the site that triggered
// it. An enclosing algorithm prepared for it ([Queue]) catches it by type
// with errors.As; if nothing catches it, it reaches the caller as an
// ordinary error, indicating a misconfigured enumeration setup. Scopes
// unwind the messenger stack as the signal propagates, exactly as for any
// other error.
type NonlocalExit struct {
	// Site is the message at which the escape predicate fired.
	Site *Message
}

// Error implements the error interface.
func (e *NonlocalExit) Error() string {
	return "stoch: nonlocal exit at site " + e.Site.Name
}

// EscapeFunc decides whether to stop and branch at a site.
type EscapeFunc func(*Message) bool

// EscapeMessenger interrupts execution at the first sample site matching a
// predicate. The site is left unresolved (no value is drawn) and a
// [NonlocalExit] carrying it is raised once both hook passes complete.
type EscapeMessenger struct {
	BaseMessenger
	escapeFn EscapeFunc
}

// Escape returns a messenger escaping at sample sites where fn is true.
func Escape(fn EscapeFunc) *EscapeMessenger {
	return &EscapeMessenger{escapeFn: fn}
}

// Process implements [Messenger].
func (m *EscapeMessenger) Process(msg *Message) error {
	if msg.Type != TypeSample || msg.Done {
		return nil
	}
	if !m.escapeFn(msg) {
		return nil
	}
	msg.Done = true
	msg.Stop = true
	msg.Continuation = func(site *Message) error {
		// The site outlives the dispatch inside the signal; pin a copy so
		// the pooled original cannot be recycled underneath the catcher.
		return &NonlocalExit{Site: site.Copy()}
	}
	return nil
}
