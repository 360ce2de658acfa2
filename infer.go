// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

// InferEnumerate is the infer-map key marking a site for enumeration.
// [EnumMessenger] sets it and [DiscreteEscape] honors it.
const InferEnumerate = "enumerate"

// EnumStrategySequential enumerates one branch per execution via the
// queue algorithm.
const EnumStrategySequential = "sequential"

// InferConfigMessenger merges handler-computed hints into the infer map of
// every sample and param site in its scope.
type InferConfigMessenger struct {
	BaseMessenger
	configFn func(*Message) map[string]any
}

// InferConfig returns a messenger annotating sites with the hints fn
// computes for them.
func InferConfig(fn func(*Message) map[string]any) *InferConfigMessenger {
	return &InferConfigMessenger{configFn: fn}
}

// Process implements [Messenger].
func (m *InferConfigMessenger) Process(msg *Message) error {
	if m.configFn == nil || (msg.Type != TypeSample && msg.Type != TypeParam) {
		return nil
	}
	for k, v := range m.configFn(msg) {
		msg.Infer[k] = v
	}
	return nil
}

// EnumMessenger marks enumerable sample sites in its scope for sequential
// enumeration. The marking is advisory: expansion into the discrete
// support and branching are carried out by the [Queue] algorithm, which
// escapes at marked sites and extends the partial trace across their
// support.
type EnumMessenger struct {
	BaseMessenger
}

// Enum returns a messenger marking enumerable sample sites for
// enumeration.
func Enum() *EnumMessenger {
	return &EnumMessenger{}
}

// Process implements [Messenger].
func (m *EnumMessenger) Process(msg *Message) error {
	if msg.Type != TypeSample || msg.IsObserved {
		return nil
	}
	if _, ok := msg.Fn.(Enumerable); !ok {
		return nil
	}
	if _, ok := msg.Infer[InferEnumerate]; !ok {
		msg.Infer[InferEnumerate] = EnumStrategySequential
	}
	return nil
}

// LiftMessenger rewrites param sites into sample sites drawn from a prior,
// turning fixed parameters into latent variables.
type LiftMessenger struct {
	BaseMessenger
	priors map[string]Primitive
}

// Lift returns a messenger replacing the named param sites with draws from
// the corresponding priors.
func Lift(priors map[string]Primitive) *LiftMessenger {
	return &LiftMessenger{priors: priors}
}

// Process implements [Messenger].
func (m *LiftMessenger) Process(msg *Message) error {
	if msg.Type != TypeParam || msg.Done {
		return nil
	}
	prior, ok := m.priors[msg.Name]
	if !ok {
		return nil
	}
	msg.Type = TypeSample
	msg.Fn = prior
	msg.Infer["lifted"] = true
	return nil
}
