// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

import "sync"

// Message pool for the dispatch hot path. The runtime primitives acquire a
// pooled message per call and release it after a successful dispatch.
// Released messages must not be retained: handlers that keep a message
// beyond the dispatch in progress ([TraceMessenger], [NonlocalExit]) retain
// a [Message.Copy] or ride the error path, which skips the release.

var messagePool = sync.Pool{New: func() any { return new(Message) }}

// acquireMessage returns a pooled message reset to its pre-dispatch state:
// scale 1, empty infer map, no flags.
func acquireMessage() *Message {
	m := messagePool.Get().(*Message)
	m.Scale = 1
	if m.Infer == nil {
		m.Infer = make(map[string]any)
	}
	m.pooled = true
	return m
}

// releaseMessage zeroes and returns m to the pool; no-op if not pooled.
// The infer map and the cond-indep slice keep their capacity.
func releaseMessage(m *Message) {
	if !m.pooled {
		return
	}
	m.Name = ""
	m.Type = ""
	m.Fn = nil
	m.Args = nil
	m.Kwargs = nil
	m.Value = nil
	m.IsObserved = false
	m.Done = false
	m.Stop = false
	m.Scale = 0
	m.Mask = nil
	m.CondIndepStack = m.CondIndepStack[:0]
	clear(m.Infer)
	m.Continuation = nil
	m.logProb = nil
	m.pooled = false
	messagePool.Put(m)
}
