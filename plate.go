// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

// PlateMessenger declares a named conditional-independence context of a
// known size. Sites in its scope carry the plate on their cond-indep
// stack; when a subsample size is declared, their log-probability is
// rescaled by size/subsample so subsampled executions remain unbiased
// estimates of the full ones. Tensor broadcasting across the plate
// dimension is the numeric collaborator's concern, not this handler's.
type PlateMessenger struct {
	BaseMessenger
	name      string
	size      int
	subsample int
	dim       int
	counter   int
}

// PlateOption configures a [PlateMessenger].
type PlateOption func(*PlateMessenger)

// Subsample declares that only n of the plate's elements run per
// execution.
func Subsample(n int) PlateOption {
	return func(m *PlateMessenger) { m.subsample = n }
}

// PlateDim reserves a tensor dimension for the plate.
func PlateDim(dim int) PlateOption {
	return func(m *PlateMessenger) { m.dim = dim }
}

// Plate returns an independence context named name over size elements.
func Plate(name string, size int, opts ...PlateOption) *PlateMessenger {
	m := &PlateMessenger{name: name, size: size}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Enter implements [Messenger].
func (m *PlateMessenger) Enter(*Runtime) { m.counter++ }

// Process implements [Messenger].
func (m *PlateMessenger) Process(msg *Message) error {
	msg.CondIndepStack = append(msg.CondIndepStack, CondIndepFrame{
		Name:    m.name,
		Dim:     m.dim,
		Size:    m.size,
		Counter: m.counter,
	})
	if msg.stochastic() && m.subsample > 0 && m.subsample < m.size {
		msg.Scale *= float64(m.size) / float64(m.subsample)
	}
	return nil
}
