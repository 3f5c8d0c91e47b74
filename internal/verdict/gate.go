package verdict

import (
	"zikalyze-engine/config"
	"zikalyze-engine/internal/consensus"
	"zikalyze-engine/internal/layers"
	"zikalyze-engine/internal/market"
	"zikalyze-engine/internal/patterns"
	"zikalyze-engine/internal/regime"
)

// Gate is the veto hierarchy. Whenever a higher-authority component (safety
// filter, tri-modal verdict) has rejected or down-weighted the trade, every
// derived quality metric must agree with it: the gate caps the displayed
// quality and forces the headline to a non-actionable state. It can only
// tighten a verdict, never loosen one.
type Gate struct {
	cfg config.GateConfig
}

// NewGate creates the consistency gate
func NewGate(cfg config.GateConfig) *Gate {
	return &Gate{cfg: cfg}
}

// GateResult is the gated quality and headline state
type GateResult struct {
	QualityScore     float64     `json:"quality_score"`
	QualityCap       float64     `json:"quality_cap"`
	QualityCapped    bool        `json:"quality_capped"`
	QualityCapReason string      `json:"quality_cap_reason,omitempty"`
	Headline         market.Bias `json:"headline"`
}

// Apply enforces the veto hierarchy in strict priority order:
//
//  1. skipTrade from the safety filter caps quality at SkipTradeCap and
//     forces WAIT, regardless of any locally-computed metric.
//  2. A tri-modal AVOID caps quality at AvoidCap and forces WAIT.
//  3. A layer conflict caps quality at ConflictCap; size is already 25%
//     but the displayed quality must visibly reflect the disagreement.
//  4. Otherwise the local quality stands uncapped.
//
// The local score is always clamped down to the applicable cap, never up.
func (g *Gate) Apply(
	cons consensus.Result,
	tri TriModalVerdict,
	localQuality float64,
	headline market.Bias,
) GateResult {
	res := GateResult{
		QualityScore: localQuality,
		QualityCap:   100,
		Headline:     headline,
	}

	switch {
	case cons.SkipTrade:
		res.QualityCap = g.cfg.SkipTradeCap
		res.QualityCapReason = cons.SkipReason
		res.Headline = market.BiasWait
	case tri.PositionSize == SizeAvoid:
		res.QualityCap = g.cfg.AvoidCap
		res.QualityCapReason = "tri-modal verdict is avoid: " + tri.Reasoning
		res.Headline = market.BiasWait
	case tri.HasConflict:
		res.QualityCap = g.cfg.ConflictCap
		res.QualityCapReason = "layer conflict: " + tri.Reasoning
	}

	// Clamp down only. A local score already under the cap stands, with
	// the cap reason still attached to explain the degraded state.
	if res.QualityScore > res.QualityCap {
		res.QualityScore = res.QualityCap
		res.QualityCapped = true
	}

	return res
}

// LocalQuality is the ungated quality metric: signal-confirmation counts.
// It only ever reaches the verdict through Apply, so it can never
// contradict a veto.
func LocalQuality(
	headline market.Bias,
	alpha layers.Output,
	beta layers.BetaOutput,
	gamma layers.GammaOutput,
	r regime.Result,
	signal *patterns.Signal,
) float64 {
	score := 40.0

	// Each layer agreeing with the headline direction is a confirmation.
	for _, bias := range []market.Bias{alpha.Bias, beta.Bias, gamma.Bias} {
		if bias.Directional() && bias == headline {
			score += 15
		}
	}

	// Trend-following alignment: directional conviction inside a trending
	// regime is worth more than the same signal in chop.
	if r.Regime == regime.Trending && headline.Directional() {
		score += 10
	}

	// Known bad-signal patterns argue against quality even when biases line up.
	if signal != nil && (signal.Name == "exhaustion" || signal.Name == "doji") {
		score -= 10
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return score
}
