package patterns

import (
	"fmt"

	"zikalyze-engine/config"
	"zikalyze-engine/internal/market"
)

// Detector runs the four family detectors over a candle window. Each family
// contributes zero or one Signal per window.
type Detector struct {
	cfg config.PatternConfig
}

// NewDetector creates a pattern detector with the given tunables
func NewDetector(cfg config.PatternConfig) *Detector {
	return &Detector{cfg: cfg}
}

// Detect runs every family detector and returns the signals found
func (d *Detector) Detect(candles []market.Candle) []Signal {
	var signals []Signal

	if s := d.detectReversal(candles); s != nil {
		signals = append(signals, *s)
	}
	if s := d.detectContinuation(candles); s != nil {
		signals = append(signals, *s)
	}
	if s := d.detectMomentum(candles); s != nil {
		signals = append(signals, *s)
	}
	if s := d.detectGap(candles); s != nil {
		signals = append(signals, *s)
	}

	return signals
}

// Merge reduces the family signals plus the independently-detected candle
// formation to the single signal handed to the oscillator layer.
//
// When both methods agree on bias the combined strength is the average plus
// the confluence bonus, capped at 100. When they disagree the stronger
// signal's bias wins with no bonus and a mixed-signal note. If only one
// method fires, its signal passes through unchanged.
func (d *Detector) Merge(candles []market.Candle) *Signal {
	family := strongest(d.Detect(candles))
	formation := detectFormation(candles)

	switch {
	case family == nil && formation == nil:
		return nil
	case family == nil:
		return formation
	case formation == nil:
		return family
	}

	if family.Bias == formation.Bias {
		combined := (family.Strength+formation.Strength)/2 + d.cfg.ConfluenceBonus
		if combined > 100 {
			combined = 100
		}
		return &Signal{
			Name:     family.Name,
			Family:   family.Family,
			Bias:     family.Bias,
			Strength: combined,
			Description: fmt.Sprintf("%s confirmed by %s (confluence)",
				family.Name, formation.Name),
		}
	}

	winner := family
	if formation.Strength > family.Strength {
		winner = formation
	}

	merged := *winner
	merged.Description = fmt.Sprintf("mixed signals: %s (%s) vs %s (%s), %s prevails",
		family.Name, family.Bias, formation.Name, formation.Bias, winner.Name)

	return &merged
}

// strongest returns the highest-strength signal, or nil for an empty slice
func strongest(signals []Signal) *Signal {
	if len(signals) == 0 {
		return nil
	}

	best := signals[0]
	for _, s := range signals[1:] {
		if s.Strength > best.Strength {
			best = s
		}
	}

	return &best
}
