package layers

import "zikalyze-engine/internal/market"

// Output is the common shape of a layer opinion. Confidence is always on
// the canonical [0,100] scale; layers that score natively on another scale
// normalize before returning, so blending code never sees mixed scales.
type Output struct {
	Bias       market.Bias `json:"bias"`
	Confidence float64     `json:"confidence"`
	Reasoning  string      `json:"reasoning"`
}

// Neutral is the caution default every layer degrades to when its inputs
// are insufficient or ambiguous.
func Neutral(reason string) Output {
	return Output{
		Bias:       market.BiasNeutral,
		Confidence: 50,
		Reasoning:  reason,
	}
}

// BetaOutput carries the pattern/oscillator layer's opinion. RawConfidence
// is the layer's native [0,1] score, preserved because the consensus safety
// filter is specified against it; Confidence is the normalized value.
type BetaOutput struct {
	Output
	RawConfidence float64 `json:"raw_confidence"`
}

// GammaOutput carries the narrative/macro layer's opinion plus the override
// flag that can refuse a position regardless of Alpha/Beta agreement.
type GammaOutput struct {
	Output
	Override       bool   `json:"override"`
	OverrideReason string `json:"override_reason,omitempty"`
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
