// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch_test

import (
	"fmt"
	"slices"
	"testing"

	"code.hybscloud.com/stoch"
)

// chainTrace runs an n-step chain model under the given context and
// returns its trace.
func chainTrace(t *testing.T, chain *stoch.MarkovMessenger, n int) *stoch.Trace {
	t.Helper()
	rt := stoch.New(stoch.WithRNG(stoch.NewPCGRNG(1)))
	model := func(rt *stoch.Runtime, _ ...any) (any, error) {
		for i := range chain.Range(rt, n) {
			name := fmt.Sprintf("x_%d", i)
			if _, err := rt.Sample(name, constant(float64(i))); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}
	_, tr, err := stoch.Traced(model)(rt)
	if err != nil {
		t.Fatalf("chain run failed: %v", err)
	}
	return tr
}

func TestMarkovChainWindow(t *testing.T) {
	// Default history 1: each element depends on its predecessor only.
	tr := chainTrace(t, stoch.Markov(), 3)
	for site, want := range map[string][]string{
		"x_0": {"x_1"},
		"x_1": {"x_2"},
		"x_2": nil,
	} {
		got := tr.Successors(site)
		if !slices.Equal(got, want) {
			t.Fatalf("successors of %s = %v, want %v", site, got, want)
		}
	}
}

func TestMarkovHistoryWidensWindow(t *testing.T) {
	tr := chainTrace(t, stoch.Markov(stoch.History(2)), 3)
	got := tr.Successors("x_0")
	slices.Sort(got)
	if want := []string{"x_1", "x_2"}; !slices.Equal(got, want) {
		t.Fatalf("successors of x_0 = %v, want %v", got, want)
	}
}

func TestMarkovZeroHistory(t *testing.T) {
	// History 0 still sees the current context, nothing before it.
	tr := chainTrace(t, stoch.Markov(stoch.History(0)), 3)
	for _, site := range []string{"x_0", "x_1", "x_2"} {
		if got := tr.Successors(site); len(got) != 0 {
			t.Fatalf("successors of %s = %v, want none", site, got)
		}
	}
}

func TestMarkovScopedSiblings(t *testing.T) {
	// Without keep, sibling scopes are independent; with keep, exited
	// frames survive and the second sibling depends on the first.
	run := func(keep bool) *stoch.Trace {
		rt := stoch.New(stoch.WithRNG(stoch.NewPCGRNG(1)))
		m := stoch.Markov(stoch.Keep(keep))
		model := func(rt *stoch.Runtime, _ ...any) (any, error) {
			for i, name := range []string{"a", "b"} {
				err := rt.Scope(m, func() error {
					_, err := rt.Sample(name, constant(float64(i)))
					return err
				})
				if err != nil {
					return nil, err
				}
			}
			return nil, nil
		}
		_, tr, err := stoch.Traced(model)(rt)
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return tr
	}

	if got := run(false).Successors("a"); len(got) != 0 {
		t.Fatalf("independent siblings got edge a -> %v", got)
	}
	if got := run(true).Successors("a"); !slices.Equal(got, []string{"b"}) {
		t.Fatalf("kept siblings: successors of a = %v, want [b]", got)
	}
}

func TestMarkovRangeEarlyBreakUnwinds(t *testing.T) {
	rt := stoch.New(stoch.WithRNG(stoch.NewPCGRNG(1)))
	chain := stoch.Markov()
	for i := range chain.Range(rt, 10) {
		if i == 2 {
			break
		}
	}
	if got := rt.Depth(); got != 0 {
		t.Fatalf("depth after early break = %d, want 0", got)
	}
}

func TestMarkovReservedOptions(t *testing.T) {
	for _, opt := range []stoch.MarkovOption{stoch.Dim(1), stoch.Named("chain")} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatal("reserved option accepted without panic")
				}
			}()
			stoch.Markov(opt)
		}()
	}
}

func TestMarkovCondIndepFrame(t *testing.T) {
	tr := chainTrace(t, stoch.Markov(), 2)
	node, ok := tr.Node("x_1")
	if !ok {
		t.Fatal("site x_1 missing")
	}
	if len(node.CondIndepStack) != 1 {
		t.Fatalf("cond-indep stack depth = %d, want 1", len(node.CondIndepStack))
	}
	frame := node.CondIndepStack[0]
	if frame.Counter != 1 {
		t.Fatalf("frame counter = %d, want 1", frame.Counter)
	}
	if frame.Size != -1 {
		t.Fatalf("frame size = %d, want -1 for an unbounded context", frame.Size)
	}
}
