package verdict

import (
	"fmt"
	"strings"

	"zikalyze-engine/config"
	"zikalyze-engine/internal/layers"
	"zikalyze-engine/internal/market"
)

// PositionSize is the recommended fraction of notional trade size
type PositionSize string

const (
	SizeFull         PositionSize = "FULL"
	SizeThreeQuarter PositionSize = "75%"
	SizeHalf         PositionSize = "50%"
	SizeQuarter      PositionSize = "25%"
	SizeAvoid        PositionSize = "AVOID"
)

// TriModalVerdict is the position-size decision from blending all three
// layers. It is computed independently of the regime-weighted consensus:
// the consensus sizes the trade levels, this sizes the position.
type TriModalVerdict struct {
	PositionSize         PositionSize `json:"position_size"`
	Reasoning            string       `json:"reasoning"`
	HasConflict          bool         `json:"has_conflict"`
	NormalizedConfidence float64      `json:"normalized_confidence"`
	Bias                 market.Bias  `json:"bias"`
}

// TriModal blends Alpha, Beta and Gamma under their nominal split and
// detects inter-layer conflict.
type TriModal struct {
	cfg config.TriModalConfig
}

// NewTriModal creates the tri-modal verdict engine
func NewTriModal(cfg config.TriModalConfig) *TriModal {
	return &TriModal{cfg: cfg}
}

// Decide combines the three layer opinions. Every confidence here is on the
// canonical [0,100] scale; Beta was normalized at its boundary.
//
// Conflict is any bias disagreement between Alpha and Beta, or a Gamma
// override. The size ladder is evaluated top-down, first match wins.
func (t *TriModal) Decide(alpha layers.Output, beta layers.BetaOutput, gamma layers.GammaOutput) TriModalVerdict {
	confidence := alpha.Confidence*t.cfg.AlphaWeight +
		beta.Confidence*t.cfg.BetaWeight +
		gamma.Confidence*t.cfg.GammaWeight

	hasConflict := alpha.Bias != beta.Bias || gamma.Override

	v := TriModalVerdict{
		HasConflict:          hasConflict,
		NormalizedConfidence: confidence,
		Bias:                 t.blendBias(alpha, beta, gamma),
	}

	var notes []string
	notes = append(notes, fmt.Sprintf("blended confidence %.1f (structural %.0f / pattern %.0f / macro %.0f)",
		confidence, alpha.Confidence, beta.Confidence, gamma.Confidence))

	switch {
	case hasConflict:
		v.PositionSize = SizeQuarter
		if gamma.Override {
			notes = append(notes, "macro override: "+gamma.OverrideReason)
		}
		if alpha.Bias != beta.Bias {
			notes = append(notes, fmt.Sprintf("layer conflict: structural %s vs pattern %s", alpha.Bias, beta.Bias))
		}
	case confidence >= t.cfg.FullSizeConfidence:
		v.PositionSize = SizeFull
		notes = append(notes, "all layers aligned at high confidence")
	case confidence >= t.cfg.ThreeQuarterSizeFloor:
		v.PositionSize = SizeThreeQuarter
	case confidence >= t.cfg.HalfSizeFloor:
		v.PositionSize = SizeHalf
	default:
		v.PositionSize = SizeAvoid
		notes = append(notes, "blended confidence too low to justify exposure")
	}

	v.Reasoning = strings.Join(notes, "; ")

	return v
}

// blendBias resolves the headline direction by weighted vote. NEUTRAL
// layers abstain.
func (t *TriModal) blendBias(alpha layers.Output, beta layers.BetaOutput, gamma layers.GammaOutput) market.Bias {
	vote := 0.0
	vote += directionOf(alpha.Bias) * t.cfg.AlphaWeight
	vote += directionOf(beta.Bias) * t.cfg.BetaWeight
	vote += directionOf(gamma.Bias) * t.cfg.GammaWeight

	switch {
	case vote > 0:
		return market.BiasLong
	case vote < 0:
		return market.BiasShort
	default:
		return market.BiasNeutral
	}
}

func directionOf(b market.Bias) float64 {
	switch b {
	case market.BiasLong:
		return 1
	case market.BiasShort:
		return -1
	}
	return 0
}
