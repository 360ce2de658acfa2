// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

// ScaleMessenger rescales the log-probability contribution of every site
// in its scope. Scale factors compose multiplicatively across nested
// scopes.
//
// The annotation is applied on the inward pass so that recording handlers
// entered earlier, whose outward hooks run first, observe the final value.
type ScaleMessenger struct {
	BaseMessenger
	factor float64
}

// Scale returns a messenger multiplying site log-probabilities by factor.
func Scale(factor float64) *ScaleMessenger {
	return &ScaleMessenger{factor: factor}
}

// Process implements [Messenger].
func (m *ScaleMessenger) Process(msg *Message) error {
	msg.Scale *= m.factor
	return nil
}

// MaskMessenger gates the log-probability contribution of every site in
// its scope. Masks conjoin across nested scopes: a site masked off
// anywhere stays masked off.
type MaskMessenger struct {
	BaseMessenger
	mask bool
}

// Mask returns a messenger gating site log-probabilities by mask; a false
// mask zeroes the contribution of every site in scope.
func Mask(mask bool) *MaskMessenger {
	return &MaskMessenger{mask: mask}
}

// Process implements [Messenger].
func (m *MaskMessenger) Process(msg *Message) error {
	if msg.Mask == nil {
		v := m.mask
		msg.Mask = &v
		return nil
	}
	v := *msg.Mask && m.mask
	msg.Mask = &v
	return nil
}
