package regime

import (
	"zikalyze-engine/config"
	"zikalyze-engine/internal/indicators"
	"zikalyze-engine/internal/market"
)

// Regime is a coarse classification of current market behavior
type Regime string

const (
	Trending     Regime = "TRENDING"
	Ranging      Regime = "RANGING"
	Transitional Regime = "TRANSITIONAL"
)

// Result holds the classified regime and the ADX value that produced it
type Result struct {
	Regime Regime  `json:"regime"`
	ADX    float64 `json:"adx"`
}

// Classifier maps trend strength (ADX) to a market regime
type Classifier struct {
	cfg config.RegimeConfig
}

// NewClassifier creates a regime classifier with the given thresholds
func NewClassifier(cfg config.RegimeConfig) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify derives the regime from candle history. The regime is a step
// function of ADX: TRENDING above the trending threshold, RANGING below the
// ranging threshold, TRANSITIONAL between. Insufficient history yields ADX 0,
// which lands in RANGING territory numerically but is forced to TRANSITIONAL
// as the safe default.
func (c *Classifier) Classify(candles []market.Candle) Result {
	if len(candles) < 2*c.cfg.ADXPeriod+1 {
		return Result{Regime: Transitional, ADX: 0}
	}

	adx := indicators.ADX(candles, c.cfg.ADXPeriod)

	return Result{Regime: c.FromADX(adx), ADX: adx}
}

// FromADX applies the step function to an already-computed ADX value
func (c *Classifier) FromADX(adx float64) Regime {
	switch {
	case adx > c.cfg.TrendingADX:
		return Trending
	case adx < c.cfg.RangingADX:
		return Ranging
	default:
		return Transitional
	}
}
