package layers

import (
	"fmt"
	"strings"

	"zikalyze-engine/config"
	"zikalyze-engine/internal/indicators"
	"zikalyze-engine/internal/market"
	"zikalyze-engine/internal/patterns"
)

// Beta is the pattern/oscillator layer. Despite the historical "neural"
// name it is a deterministic weighted heuristic: oscillator agreement sets
// a base score on [0,1], and merged pattern strength modulates it.
type Beta struct {
	cfg      config.OscillatorConfig
	detector *patterns.Detector
}

// NewBeta creates the pattern/oscillator layer
func NewBeta(oscCfg config.OscillatorConfig, detector *patterns.Detector) *Beta {
	return &Beta{cfg: oscCfg, detector: detector}
}

// Analyze runs the pattern engine's merged signal against RSI and MACD and
// blends them into a bias with a raw [0,1] confidence.
func (b *Beta) Analyze(snap *market.MarketSnapshot) BetaOutput {
	candles := snap.Candles
	if len(candles) < b.cfg.MACDSlow {
		out := Neutral("insufficient candles for oscillator analysis")
		return BetaOutput{Output: out, RawConfidence: 0.5}
	}

	rsi := indicators.RSI(candles, b.cfg.RSIPeriod)
	macd := indicators.MACD(candles, b.cfg.MACDFast, b.cfg.MACDSlow, b.cfg.MACDSignal)

	rsiVote := 0
	switch {
	case rsi > 55:
		rsiVote = 1
	case rsi < 45:
		rsiVote = -1
	}

	macdVote := 0
	switch {
	case macd.Histogram > 0:
		macdVote = 1
	case macd.Histogram < 0:
		macdVote = -1
	}

	// Base score from oscillator agreement.
	var base float64
	switch {
	case rsiVote != 0 && rsiVote == macdVote:
		base = 0.65
	case rsiVote != 0 && macdVote != 0: // opposed
		base = 0.45
	case rsiVote == 0 && macdVote == 0:
		base = 0.50
	default: // one directional, one silent
		base = 0.55
	}

	signal := b.detector.Merge(candles)

	patternVote := 0
	if signal != nil {
		switch signal.Bias {
		case market.BiasLong:
			patternVote = 1
		case market.BiasShort:
			patternVote = -1
		}
	}

	total := rsiVote + macdVote + patternVote
	bias := market.BiasNeutral
	if total > 0 {
		bias = market.BiasLong
	} else if total < 0 {
		bias = market.BiasShort
	}

	// Pattern confluence modulates the oscillator base multiplicatively:
	// agreement scales it up, disagreement scales it down.
	raw := base
	var notes []string
	notes = append(notes, fmt.Sprintf("RSI %.1f", rsi))
	notes = append(notes, fmt.Sprintf("MACD histogram %+.4f", macd.Histogram))

	if signal != nil {
		agrees := (patternVote > 0 && rsiVote+macdVote > 0) ||
			(patternVote < 0 && rsiVote+macdVote < 0)
		switch {
		case agrees:
			raw = base * (1 + signal.Strength/100*0.5)
			notes = append(notes, fmt.Sprintf("pattern %s (%.0f) confirms oscillators", signal.Name, signal.Strength))
		case patternVote != 0 && rsiVote+macdVote != 0:
			raw = base * (1 - signal.Strength/100*0.3)
			notes = append(notes, fmt.Sprintf("pattern %s (%.0f) contradicts oscillators", signal.Name, signal.Strength))
		default:
			notes = append(notes, fmt.Sprintf("pattern %s (%.0f)", signal.Name, signal.Strength))
		}
	} else {
		notes = append(notes, "no pattern detected")
	}

	if raw > 0.95 {
		raw = 0.95
	}
	if raw < 0.05 {
		raw = 0.05
	}

	return BetaOutput{
		Output: Output{
			Bias:       bias,
			Confidence: clampConfidence(raw * 100),
			Reasoning:  strings.Join(notes, "; "),
		},
		RawConfidence: raw,
	}
}
