// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch_test

import (
	"testing"

	"code.hybscloud.com/stoch"
)

func TestInferConfigAnnotates(t *testing.T) {
	rt := stoch.New(stoch.WithRNG(stoch.NewPCGRNG(1)))
	model := func(rt *stoch.Runtime, _ ...any) (any, error) {
		if _, err := rt.Sample("z", constant(1.0)); err != nil {
			return nil, err
		}
		return rt.Observe("y", constant(0.0), 2.0)
	}
	cfg := stoch.InferConfig(func(msg *stoch.Message) map[string]any {
		return map[string]any{"strategy": "parallel"}
	})

	_, tr, err := stoch.Traced(stoch.Wrap(cfg, model))(rt)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	z, _ := tr.Node("z")
	if z.Infer["strategy"] != "parallel" {
		t.Fatalf("sample site hints = %v, want strategy=parallel", z.Infer)
	}
}

func TestEnumMarksEnumerableSites(t *testing.T) {
	rt := stoch.New(stoch.WithRNG(stoch.NewPCGRNG(1)))
	model := func(rt *stoch.Runtime, _ ...any) (any, error) {
		if _, err := rt.Sample("discrete", &bernoulli{rng: rt.RNG(), p: 0.5}); err != nil {
			return nil, err
		}
		return rt.Sample("continuous", constant(0.5))
	}

	_, tr, err := stoch.Traced(stoch.Wrap(stoch.Enum(), model))(rt)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	d, _ := tr.Node("discrete")
	if d.Infer[stoch.InferEnumerate] != stoch.EnumStrategySequential {
		t.Fatalf("enumerable site hints = %v, want %s", d.Infer, stoch.EnumStrategySequential)
	}
	c, _ := tr.Node("continuous")
	if _, ok := c.Infer[stoch.InferEnumerate]; ok {
		t.Fatal("non-enumerable site marked for enumeration")
	}
}

func TestLiftRewritesParams(t *testing.T) {
	rt := stoch.New(stoch.WithRNG(stoch.NewPCGRNG(1)))
	model := func(rt *stoch.Runtime, _ ...any) (any, error) {
		if _, err := rt.Param("theta", constant(0.5)); err != nil {
			return nil, err
		}
		return rt.Param("phi", constant(0.25))
	}
	lifted := stoch.Wrap(stoch.Lift(map[string]stoch.Primitive{
		"theta": constant(0.9),
	}), model)

	_, tr, err := stoch.Traced(lifted)(rt)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	theta, _ := tr.Node("theta")
	if theta.Type != stoch.TypeSample {
		t.Fatalf("lifted site type = %q, want %q", theta.Type, stoch.TypeSample)
	}
	if theta.Value.(float64) != 0.9 {
		t.Fatalf("lifted site value = %v, want the prior's draw 0.9", theta.Value)
	}
	phi, _ := tr.Node("phi")
	if phi.Type != stoch.TypeParam || phi.Value.(float64) != 0.25 {
		t.Fatalf("unlifted site = (%q, %v), want (param, 0.25)", phi.Type, phi.Value)
	}
}
