package layers

import (
	"fmt"
	"strings"
	"time"

	"zikalyze-engine/config"
	"zikalyze-engine/internal/market"
)

// Gamma is the narrative/macro layer: scheduled catalyst proximity and
// expected-effect alignment against the structural bias.
type Gamma struct {
	cfg config.MacroConfig
}

// NewGamma creates the narrative/macro layer
func NewGamma(cfg config.MacroConfig) *Gamma {
	return &Gamma{cfg: cfg}
}

// Analyze scans the macro calendar within the configured window around the
// snapshot time. A HIGH-impact event aligned with the structural bias
// reinforces it; a misaligned one is flagged as an override candidate; any
// HIGH-impact release inside the final override window refuses a position
// outright. An empty calendar degrades to NEUTRAL with no override; macro
// silence never blocks a trade by itself.
func (g *Gamma) Analyze(snap *market.MarketSnapshot, structuralBias market.Bias) GammaOutput {
	now := snap.AsOf
	if now.IsZero() && len(snap.Candles) > 0 {
		now = snap.Candles[len(snap.Candles)-1].Timestamp
	}

	if len(snap.MacroCalendar) == 0 || now.IsZero() {
		return GammaOutput{Output: Neutral("no macro calendar context")}
	}

	window := time.Duration(g.cfg.WindowDays) * 24 * time.Hour
	overrideWindow := time.Duration(g.cfg.OverrideWindowMinutes) * time.Minute

	net := 0.0
	var notes []string
	var warnings []string
	override := false
	overrideReason := ""

	for _, event := range snap.MacroCalendar {
		distance := event.Date.Sub(now)
		if distance > window || distance < -window {
			continue
		}

		if event.Rescheduled {
			warnings = append(warnings, fmt.Sprintf("%s was rescheduled", event.Event))
		}
		if event.DateUnconfirmed {
			warnings = append(warnings, fmt.Sprintf("%s date unconfirmed", event.Event))
		}

		weight := impactWeight(event.Impact) * proximityWeight(distance, window)

		switch event.ExpectedEffect {
		case market.EffectBullish:
			net += weight
			notes = append(notes, fmt.Sprintf("%s (%s) expected bullish", event.Event, event.Impact))
		case market.EffectBearish:
			net -= weight
			notes = append(notes, fmt.Sprintf("%s (%s) expected bearish", event.Event, event.Impact))
		default:
			notes = append(notes, fmt.Sprintf("%s (%s) expected %s", event.Event, event.Impact,
				strings.ToLower(string(event.ExpectedEffect))))
		}

		// Inside the final window before a HIGH-impact release, proximity
		// alone is sufficient reason to refuse any position.
		if event.Impact == market.ImpactHigh && distance >= 0 && distance <= overrideWindow {
			override = true
			overrideReason = fmt.Sprintf("%s (HIGH impact) releases in %s", event.Event, distance.Round(time.Minute))
		}

		// A misaligned imminent HIGH-impact event is an override candidate.
		if event.Impact == market.ImpactHigh && structuralBias.Directional() {
			effectBias := effectToBias(event.ExpectedEffect)
			if effectBias.Directional() && effectBias != structuralBias {
				notes = append(notes, fmt.Sprintf("%s conflicts with %s structural bias (override candidate)",
					event.Event, structuralBias))
			}
		}
	}

	bias := market.BiasNeutral
	if net > 0.5 {
		bias = market.BiasLong
	} else if net < -0.5 {
		bias = market.BiasShort
	}

	confidence := clampConfidence(50 + 12*absFloat(net))
	if confidence > 90 {
		confidence = 90
	}
	if len(notes) == 0 {
		return GammaOutput{Output: Neutral("no macro events inside the analysis window")}
	}

	reasoning := strings.Join(notes, "; ")
	if len(warnings) > 0 {
		// Stale or unconfirmed dates are surfaced but never move the bias.
		reasoning += " [warnings: " + strings.Join(warnings, "; ") + "]"
	}

	return GammaOutput{
		Output: Output{
			Bias:       bias,
			Confidence: confidence,
			Reasoning:  reasoning,
		},
		Override:       override,
		OverrideReason: overrideReason,
	}
}

func impactWeight(impact market.MacroImpact) float64 {
	switch impact {
	case market.ImpactHigh:
		return 3
	case market.ImpactMedium:
		return 2
	default:
		return 1
	}
}

// proximityWeight scales from 1.0 at the event down to 0.25 at the window edge
func proximityWeight(distance, window time.Duration) float64 {
	d := distance
	if d < 0 {
		d = -d
	}
	frac := 1 - float64(d)/float64(window)
	return 0.25 + 0.75*frac
}

func effectToBias(effect market.MacroEffect) market.Bias {
	switch effect {
	case market.EffectBullish:
		return market.BiasLong
	case market.EffectBearish:
		return market.BiasShort
	}
	return market.BiasNeutral
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
