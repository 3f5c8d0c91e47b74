package patterns

import "zikalyze-engine/internal/market"

// Family groups detected formations by what they imply about price action
type Family string

const (
	FamilyReversal     Family = "REVERSAL"
	FamilyContinuation Family = "CONTINUATION"
	FamilyMomentum     Family = "MOMENTUM"
	FamilyGap          Family = "GAP"
)

// Signal is a detected formation with its directional bias and strength.
// Strength is on the canonical [0,100] scale.
type Signal struct {
	Name        string      `json:"name"`
	Family      Family      `json:"family"`
	Bias        market.Bias `json:"bias"`
	Strength    float64     `json:"strength"`
	Description string      `json:"description"`
}
