// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stoch provides composable effect handlers for recording and
// modifying the behavior of probabilistic programs in Go.
//
// A probabilistic program is ordinary code that performs named primitive
// operations — stochastic draws, observations, parameter lookups — through
// a [Runtime]. Handlers ("messengers") install themselves around such code
// and intercept each primitive call without the code changing: inference
// algorithms are built by stacking small interceptors rather than by
// rewriting models.
//
// # Dispatch Protocol
//
// Each primitive call builds a [Message] and routes it through the active
// messenger stack via [Runtime.Apply]. Inward hooks run innermost-first,
// the primitive fires unless a handler already resolved the site, and
// outward hooks run in entry order over the same messengers. The stop flag
// cuts both passes off at the messenger that set it, hiding the site from
// everything entered earlier.
//
// Scopes are acquired structurally: [Runtime.Scope] releases its stack
// slot on every exit path, so the stack is exactly empty after the
// outermost scope exits no matter how execution left it. One runtime
// serves one logical execution; concurrent traces each get their own.
//
// # Core Types
//
//   - [Message]: the record of one intercepted primitive call
//   - [Messenger]: the two-hook interceptor interface; embed [BaseMessenger]
//   - [Runtime]: the per-execution messenger stack and primitive surface
//   - [Trace]: the ordered site record of one execution
//   - [Model]: a stochastic function routed through a runtime
//
// # Handlers
//
// Handlers compose by nesting, via [Wrap]/[WrapAll] (decorator form) or
// [Runtime.Scope] (scoped-block form):
//
//   - [Condition]: fix sample sites to observed values
//   - [Uncondition], [Do]: lift observations, intervene on sites
//   - [Replay]: force sites to a reference trace's values
//   - [TraceHandler], [Traced]: record executions
//   - [Block]: hide sites from outer handlers
//   - [Scale], [Mask]: rescale or gate log-probability contributions
//   - [Escape]: interrupt at a matching site with a [NonlocalExit]
//   - [Enum], [InferConfig], [Lift]: annotate and rewrite sites
//   - [Seed]: pin the RNG state within a scope
//   - [Markov], [Plate]: declare dependency and independence contexts
//   - [Span]: one OpenTelemetry span per site
//
// [HandlerName] maps each concrete messenger to its registered name.
//
// # Enumeration
//
// [Queue] layers handler composition with non-local exit and an external
// work queue into systematic search over discrete sites: replay a partial
// trace, escape at the first undecided branch point, extend across its
// support, repeat. The queue discipline decides the search order —
// [NewLIFOQueue] explores depth-first, [NewFIFOQueue] breadth-first.
//
// # Example
//
//	model := func(rt *stoch.Runtime, _ ...any) (any, error) {
//	    return rt.Sample("z", coin)
//	}
//	run := stoch.Traced(stoch.Wrap(stoch.Condition(map[string]any{"z": 1.0}), model))
//	_, tr, err := run(stoch.New())
//	// tr.Node("z") is observed with value 1.0
package stoch
