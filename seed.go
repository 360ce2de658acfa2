// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

// SeedMessenger pins the runtime's RNG to a reproducible state for the
// duration of a scope. On entry it snapshots the generator state and
// reseeds; on exit, the snapshot is restored unconditionally, so draws
// after the scope continue as if the scope had never run.
type SeedMessenger struct {
	BaseMessenger
	seed  uint64
	saved []byte
}

// Seed returns a messenger that reseeds the runtime RNG within its scope.
func Seed(seed uint64) *SeedMessenger {
	return &SeedMessenger{seed: seed}
}

// Enter implements [Messenger].
func (m *SeedMessenger) Enter(rt *Runtime) {
	m.saved = rt.rng.State()
	rt.rng.Seed(m.seed)
}

// Exit implements [Messenger].
func (m *SeedMessenger) Exit(rt *Runtime) {
	// Restoring a snapshot of our own RNG cannot fail.
	_ = rt.rng.SetState(m.saved)
	m.saved = nil
}
