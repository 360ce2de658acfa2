// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch_test

import (
	"testing"

	"code.hybscloud.com/stoch"
)

func TestPlateAnnotatesSites(t *testing.T) {
	rt := stoch.New(stoch.WithRNG(stoch.NewPCGRNG(1)))
	model := func(rt *stoch.Runtime, _ ...any) (any, error) {
		return rt.Sample("x", constant(1.0))
	}
	data := stoch.Plate("data", 10, stoch.PlateDim(-1))

	_, tr, err := stoch.Traced(stoch.Wrap(data, model))(rt)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	x, _ := tr.Node("x")
	if len(x.CondIndepStack) != 1 {
		t.Fatalf("cond-indep stack depth = %d, want 1", len(x.CondIndepStack))
	}
	frame := x.CondIndepStack[0]
	if frame.Name != "data" || frame.Size != 10 || frame.Dim != -1 {
		t.Fatalf("frame = %+v, want name data, size 10, dim -1", frame)
	}
	if x.Scale != 1 {
		t.Fatalf("scale = %v, want 1 without subsampling", x.Scale)
	}
}

func TestPlateSubsampleRescales(t *testing.T) {
	rt := stoch.New(stoch.WithRNG(stoch.NewPCGRNG(1)))
	model := func(rt *stoch.Runtime, _ ...any) (any, error) {
		if _, err := rt.Sample("x", constant(1.0)); err != nil {
			return nil, err
		}
		return rt.Param("theta", constant(0.5))
	}
	data := stoch.Plate("data", 10, stoch.Subsample(2))

	_, tr, err := stoch.Traced(stoch.Wrap(data, model))(rt)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	x, _ := tr.Node("x")
	if x.Scale != 5 {
		t.Fatalf("stochastic site scale = %v, want 5", x.Scale)
	}
	theta, _ := tr.Node("theta")
	if theta.Scale != 1 {
		t.Fatalf("param site scale = %v, want 1", theta.Scale)
	}
}

func TestPlateNested(t *testing.T) {
	rt := stoch.New(stoch.WithRNG(stoch.NewPCGRNG(1)))
	outer := stoch.Plate("outer", 4)
	inner := stoch.Plate("inner", 3)
	model := func(rt *stoch.Runtime, _ ...any) (any, error) {
		return rt.Sample("x", constant(1.0))
	}

	_, tr, err := stoch.Traced(stoch.Wrap(outer, stoch.Wrap(inner, model)))(rt)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	x, _ := tr.Node("x")
	if len(x.CondIndepStack) != 2 {
		t.Fatalf("cond-indep stack depth = %d, want 2", len(x.CondIndepStack))
	}
	// Inward pass order: the inner plate annotates first.
	if x.CondIndepStack[0].Name != "inner" || x.CondIndepStack[1].Name != "outer" {
		t.Fatalf("frames = %+v, want inner then outer", x.CondIndepStack)
	}
}
