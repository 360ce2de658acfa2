// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

// TraceMessenger records every fully-resolved message flowing past it into
// a [Trace] keyed by site name. It owns the trace it builds and hands it
// out by reference; downstream consumers copy before mutating.
//
// Each scope entry starts a fresh trace, so one handler value is reusable
// across executions.
type TraceMessenger struct {
	BaseMessenger
	trace *Trace
}

// TraceHandler returns a messenger that records execution traces.
func TraceHandler() *TraceMessenger {
	return &TraceMessenger{trace: NewTrace()}
}

// Trace returns the trace recorded by the most recent scope.
func (m *TraceMessenger) Trace() *Trace { return m.trace }

// Enter implements [Messenger]: each activation records into a fresh trace.
func (m *TraceMessenger) Enter(*Runtime) { m.trace = NewTrace() }

// PostProcess implements [Messenger]. The message is copied before
// recording; the original may be pooled after dispatch. Markov scope hints
// accumulated by context-declaring messengers become dependency edges.
func (m *TraceMessenger) PostProcess(msg *Message) error {
	if err := m.trace.Add(msg.Copy()); err != nil {
		return err
	}
	if scope, ok := msg.Infer[inferMarkovScope].(map[string]int); ok {
		for upstream := range scope {
			m.trace.AddEdge(upstream, msg.Name)
		}
	}
	return nil
}

// Traced wraps fn so that each call records a fresh trace alongside the
// model's return value.
func Traced(fn Model) func(rt *Runtime, args ...any) (any, *Trace, error) {
	return func(rt *Runtime, args ...any) (any, *Trace, error) {
		tm := TraceHandler()
		out, err := Wrap(tm, fn)(rt, args...)
		if err != nil {
			return nil, nil, err
		}
		return out, tm.Trace(), nil
	}
}
