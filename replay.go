// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

// ReplayMessenger forces sample sites to the values recorded in a
// reference trace. Sites absent from the reference run as usual, so a
// partial trace replays a prefix and lets the rest of the model extend it.
type ReplayMessenger struct {
	BaseMessenger
	trace *Trace
}

// Replay returns a messenger replaying values from the reference trace.
func Replay(trace *Trace) *ReplayMessenger {
	return &ReplayMessenger{trace: trace}
}

// Process implements [Messenger].
func (m *ReplayMessenger) Process(msg *Message) error {
	if m.trace == nil || msg.Type != TypeSample || msg.IsObserved || msg.Done {
		return nil
	}
	node, ok := m.trace.Node(msg.Name)
	if !ok {
		return nil
	}
	if node.Type != TypeSample || node.IsObserved {
		return siteErrorf(ErrSiteMismatch, msg.Name,
			"reference site is %s (observed=%t), want an unobserved sample", node.Type, node.IsObserved)
	}
	msg.Value = node.Value
	msg.Done = true
	for k, v := range node.Infer {
		msg.Infer[k] = v
	}
	return nil
}
