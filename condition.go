// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

// ConditionMessenger fixes named sample sites to externally supplied
// values, turning them into observations.
type ConditionMessenger struct {
	BaseMessenger
	data map[string]any
}

// Condition returns a messenger that constrains every sample site named in
// data to the supplied value and marks it observed.
func Condition(data map[string]any) *ConditionMessenger {
	return &ConditionMessenger{data: data}
}

// Process implements [Messenger].
func (m *ConditionMessenger) Process(msg *Message) error {
	if !msg.stochastic() || msg.Done {
		return nil
	}
	v, ok := m.data[msg.Name]
	if !ok {
		return nil
	}
	if msg.IsObserved {
		return siteErrorf(ErrSiteMismatch, msg.Name, "cannot condition an observed site")
	}
	msg.Value = v
	msg.IsObserved = true
	msg.Done = true
	return nil
}

// UnconditionMessenger lifts observations back into stochastic draws so a
// model's joint distribution can be sampled from its prior. The observed
// value is stashed in the infer map under "was_observed"/"obs".
type UnconditionMessenger struct {
	BaseMessenger
}

// Uncondition returns a messenger that un-fixes every observed sample site.
func Uncondition() *UnconditionMessenger {
	return &UnconditionMessenger{}
}

// Process implements [Messenger].
func (m *UnconditionMessenger) Process(msg *Message) error {
	if !msg.stochastic() || !msg.IsObserved {
		return nil
	}
	msg.Infer["was_observed"] = true
	msg.Infer["obs"] = msg.Value
	msg.Type = TypeSample
	msg.IsObserved = false
	msg.Value = nil
	msg.Done = false
	return nil
}

// DoMessenger implements intervention: named sample sites are forced to
// the supplied value without being scored as observations, and the
// intervened sites are hidden from messengers entered earlier.
type DoMessenger struct {
	BaseMessenger
	data map[string]any
}

// Do returns a messenger intervening on the sample sites named in data.
func Do(data map[string]any) *DoMessenger {
	return &DoMessenger{data: data}
}

// Process implements [Messenger].
func (m *DoMessenger) Process(msg *Message) error {
	if msg.Type != TypeSample || msg.Done {
		return nil
	}
	v, ok := m.data[msg.Name]
	if !ok {
		return nil
	}
	msg.Value = v
	msg.IsObserved = false
	msg.Done = true
	msg.Stop = true
	msg.Infer["intervention"] = true
	return nil
}
