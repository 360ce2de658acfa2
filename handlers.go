// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

// Static registration of handler names. Every concrete messenger shipped
// by the package has exactly one entry here; the name is part of the
// public surface (span attributes, error text) and stays stable across
// releases. Deriving names from type names at runtime is deliberately
// avoided.

// HandlerName returns the registered name of a concrete messenger, or
// "messenger" for external [Messenger] implementations.
func HandlerName(m Messenger) string {
	switch m.(type) {
	case *BlockMessenger:
		return "block"
	case *ConditionMessenger:
		return "condition"
	case *DoMessenger:
		return "do"
	case *EnumMessenger:
		return "enum"
	case *EscapeMessenger:
		return "escape"
	case *InferConfigMessenger:
		return "infer_config"
	case *LiftMessenger:
		return "lift"
	case *MarkovMessenger:
		return "markov"
	case *MaskMessenger:
		return "mask"
	case *PlateMessenger:
		return "plate"
	case *ReplayMessenger:
		return "replay"
	case *ScaleMessenger:
		return "scale"
	case *SeedMessenger:
		return "seed"
	case *SpanMessenger:
		return "span"
	case *TraceMessenger:
		return "trace"
	case *UnconditionMessenger:
		return "uncondition"
	default:
		return "messenger"
	}
}
