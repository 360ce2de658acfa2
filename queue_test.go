// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/stoch"
)

// coinPair is a two-site discrete model whose return value encodes the
// pair of draws as z1*2 + z2, giving each completion a distinct result.
func coinPair(rt *stoch.Runtime, _ ...any) (any, error) {
	b := &bernoulli{rng: rt.RNG(), p: 0.5}
	v1, err := rt.Sample("z1", b)
	if err != nil {
		return nil, err
	}
	v2, err := rt.Sample("z2", b)
	if err != nil {
		return nil, err
	}
	return v1.(float64)*2 + v2.(float64), nil
}

func TestQueueEnumeratesBreadthFirst(t *testing.T) {
	rt := stoch.New(stoch.WithRNG(stoch.NewPCGRNG(1)))
	q := stoch.NewFIFOQueue(stoch.NewTrace())
	enum := stoch.Queue(coinPair, q)

	// Two binary sites, four completions, in breadth-first order.
	for _, want := range []float64{0, 1, 2, 3} {
		v, err := enum(rt)
		if err != nil {
			t.Fatalf("enumeration failed: %v", err)
		}
		if v.(float64) != want {
			t.Fatalf("got %v, want %v", v, want)
		}
	}

	// The space is exhausted.
	_, err := enum(rt)
	if !errors.Is(err, stoch.ErrEmptyQueue) {
		t.Fatalf("got %v, want ErrEmptyQueue", err)
	}
}

func TestQueueEnumeratesDepthFirst(t *testing.T) {
	rt := stoch.New(stoch.WithRNG(stoch.NewPCGRNG(1)))
	q := stoch.NewLIFOQueue(stoch.NewTrace())
	enum := stoch.Queue(coinPair, q)

	v, err := enum(rt)
	if err != nil {
		t.Fatalf("enumeration failed: %v", err)
	}
	// Depth-first follows the last-extended branch: z1=1 then z2=1.
	if v.(float64) != 3 {
		t.Fatalf("got %v, want 3", v)
	}
}

func TestQueueMaxTries(t *testing.T) {
	rt := stoch.New(stoch.WithRNG(stoch.NewPCGRNG(1)))
	q := stoch.NewFIFOQueue(stoch.NewTrace())
	enum := stoch.Queue(coinPair, q, stoch.MaxTries(1))

	_, err := enum(rt)
	if !errors.Is(err, stoch.ErrMaxTries) {
		t.Fatalf("got %v, want ErrMaxTries", err)
	}
}

func TestQueueUnseeded(t *testing.T) {
	rt := stoch.New(stoch.WithRNG(stoch.NewPCGRNG(1)))
	enum := stoch.Queue(coinPair, stoch.NewFIFOQueue())
	_, err := enum(rt)
	if !errors.Is(err, stoch.ErrEmptyQueue) {
		t.Fatalf("got %v, want ErrEmptyQueue", err)
	}
}

func TestQueueNumSamplesCapsBranching(t *testing.T) {
	rt := stoch.New(stoch.WithRNG(stoch.NewPCGRNG(1)))
	q := stoch.NewFIFOQueue(stoch.NewTrace())
	enum := stoch.Queue(coinPair, q, stoch.NumSamples(1))

	// One branch per site survives, so exactly one completion exists.
	v, err := enum(rt)
	if err != nil {
		t.Fatalf("enumeration failed: %v", err)
	}
	if v.(float64) != 0 {
		t.Fatalf("got %v, want 0", v)
	}
	_, err = enum(rt)
	if !errors.Is(err, stoch.ErrEmptyQueue) {
		t.Fatalf("got %v, want ErrEmptyQueue", err)
	}
}

func TestQueueCustomExtend(t *testing.T) {
	// A custom extension that prunes the z1=1 subtree entirely.
	rt := stoch.New(stoch.WithRNG(stoch.NewPCGRNG(1)))
	q := stoch.NewFIFOQueue(stoch.NewTrace())
	prune := func(tr *stoch.Trace, site *stoch.Message) ([]*stoch.Trace, error) {
		successors, err := stoch.EnumExtend(tr, site, -1)
		if err != nil {
			return nil, err
		}
		kept := successors[:0]
		for _, s := range successors {
			if node, ok := s.Node("z1"); ok && node.Value.(float64) == 1.0 {
				continue
			}
			kept = append(kept, s)
		}
		return kept, nil
	}
	enum := stoch.Queue(coinPair, q, stoch.WithExtend(prune))

	for _, want := range []float64{0, 1} {
		v, err := enum(rt)
		if err != nil {
			t.Fatalf("enumeration failed: %v", err)
		}
		if v.(float64) != want {
			t.Fatalf("got %v, want %v", v, want)
		}
	}
	if _, err := enum(rt); !errors.Is(err, stoch.ErrEmptyQueue) {
		t.Fatalf("got %v, want ErrEmptyQueue", err)
	}
}

func TestEnumExtendNotEnumerable(t *testing.T) {
	site := &stoch.Message{Name: "z", Type: stoch.TypeSample, Fn: constant(0.0), Scale: 1}
	_, err := stoch.EnumExtend(stoch.NewTrace(), site, -1)
	if !errors.Is(err, stoch.ErrNotEnumerable) {
		t.Fatalf("got %v, want ErrNotEnumerable", err)
	}
}
