package consensus

import (
	"fmt"

	"zikalyze-engine/config"
	"zikalyze-engine/internal/indicators"
	"zikalyze-engine/internal/layers"
	"zikalyze-engine/internal/market"
	"zikalyze-engine/internal/regime"
)

// Result is the regime-weighted blend of the structural and
// pattern/oscillator layers, plus the trade levels it implies.
type Result struct {
	WeightedScore float64 `json:"weighted_score"`
	AlphaWeight   float64 `json:"alpha_weight"`
	BetaWeight    float64 `json:"beta_weight"`
	SkipTrade     bool    `json:"skip_trade"`
	SkipReason    string  `json:"skip_reason,omitempty"`
	Support       float64 `json:"support"`
	Resistance    float64 `json:"resistance"`
	StopLoss      float64 `json:"stop_loss"`
}

// Synthesizer blends Alpha and Beta under regime-dependent weights and
// applies the neural-confidence safety filter.
type Synthesizer struct {
	weights config.ConsensusConfig
	filter  config.SafetyFilterConfig
}

// NewSynthesizer creates a consensus synthesizer
func NewSynthesizer(weights config.ConsensusConfig, filter config.SafetyFilterConfig) *Synthesizer {
	return &Synthesizer{weights: weights, filter: filter}
}

// Weights returns the Alpha/Beta weight pair for a regime. The pair always
// sums to 1.0: Beta is the complement of Alpha.
func (s *Synthesizer) Weights(r regime.Regime) (alphaWeight, betaWeight float64) {
	switch r {
	case regime.Trending:
		alphaWeight = s.weights.TrendingAlphaWeight
	case regime.Ranging:
		alphaWeight = s.weights.RangingAlphaWeight
	default:
		alphaWeight = s.weights.TransitionalAlphaWeight
	}
	return alphaWeight, 1 - alphaWeight
}

// Synthesize computes the weighted score, applies the safety filter and
// derives support/resistance and the stop.
//
// A NEUTRAL layer contributes a flat 50 instead of its confidence, so an
// opinionless layer neither argues for nor against the trade.
func (s *Synthesizer) Synthesize(
	snap *market.MarketSnapshot,
	r regime.Result,
	alpha layers.Output,
	beta layers.BetaOutput,
) Result {
	alphaWeight, betaWeight := s.Weights(r.Regime)

	alphaScore := alpha.Confidence
	if alpha.Bias == market.BiasNeutral {
		alphaScore = 50
	}
	betaScore := beta.RawConfidence * 100
	if beta.Bias == market.BiasNeutral {
		betaScore = 50
	}

	res := Result{
		WeightedScore: alphaScore*alphaWeight + betaScore*betaWeight,
		AlphaWeight:   alphaWeight,
		BetaWeight:    betaWeight,
	}

	// Neural-confidence safety filter: TRENDING only. In RANGING and
	// TRANSITIONAL regimes the weight table already discounts or trusts
	// Beta appropriately, so a second gate would be redundant.
	if r.Regime == regime.Trending {
		threshold := s.filter.BaseThreshold
		relaxed := false
		if alpha.Confidence > s.filter.RelaxAlphaConfidence {
			threshold -= s.filter.Relaxation
			relaxed = true
		}

		if beta.RawConfidence < threshold {
			res.SkipTrade = true
			if relaxed {
				res.SkipReason = fmt.Sprintf(
					"neural confidence %.2f below relaxed threshold %.2f (base %.2f relaxed by %.2f, structural confidence %.0f)",
					beta.RawConfidence, threshold, s.filter.BaseThreshold, s.filter.Relaxation, alpha.Confidence)
			} else {
				res.SkipReason = fmt.Sprintf(
					"neural confidence %.2f below threshold %.2f (no relaxation, structural confidence %.0f)",
					beta.RawConfidence, threshold, alpha.Confidence)
			}
		}
	}

	res.Support, res.Resistance = s.levels(snap)
	res.StopLoss = s.stopLoss(snap, r.Regime, alpha.Bias, res.Support, res.Resistance)

	return res
}

// levels derives support and resistance from the 38.2%/61.8% Fibonacci
// retracement of the 24h range.
func (s *Synthesizer) levels(snap *market.MarketSnapshot) (support, resistance float64) {
	if snap.High24h <= snap.Low24h {
		return snap.Low24h, snap.High24h
	}

	fib := indicators.FibonacciFromRange(snap.High24h, snap.Low24h)
	return fib.Level618, fib.Level382
}

// stopLoss places the stop against the structural level: tight in TRENDING,
// wider in RANGING and TRANSITIONAL where noise needs breathing room.
func (s *Synthesizer) stopLoss(
	snap *market.MarketSnapshot,
	r regime.Regime,
	bias market.Bias,
	support, resistance float64,
) float64 {
	pct := s.weights.RangingStopPct
	if r == regime.Trending {
		pct = s.weights.TrendingStopPct
	}

	if bias == market.BiasShort {
		level := resistance
		if level <= 0 {
			level = snap.High24h
		}
		return level * (1 + pct)
	}

	level := support
	if level <= 0 {
		level = snap.Low24h
	}
	return level * (1 - pct)
}
