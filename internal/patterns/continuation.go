package patterns

import (
	"zikalyze-engine/internal/market"
)

// Continuation family: flag-style consolidation after a directional impulse.

// detectContinuation looks for a strong directional move followed by a
// tight-range consolidation of at least MinConsolidationBars candles. The
// expected resolution is in the direction of the impulse.
func (d *Detector) detectContinuation(candles []market.Candle) *Signal {
	minBars := d.cfg.MinConsolidationBars
	// Impulse window is twice the consolidation window.
	need := minBars * 3
	if need < 9 {
		need = 9
	}
	if len(candles) < need {
		return nil
	}

	consolidation := candles[len(candles)-minBars:]
	impulse := candles[len(candles)-need : len(candles)-minBars]

	poleStart := impulse[0].Open
	poleEnd := impulse[len(impulse)-1].Close
	if poleStart == 0 {
		return nil
	}
	poleMove := poleEnd - poleStart

	up := poleMove > 0
	poleHeight := poleMove
	if !up {
		poleHeight = -poleMove
	}

	// Impulse must be decisive: most candles in its direction.
	aligned := 0
	for _, c := range impulse {
		if (up && c.Bullish()) || (!up && c.Bearish()) {
			aligned++
		}
	}
	if float64(aligned)/float64(len(impulse)) < 0.6 {
		return nil
	}

	// Consolidation must be tight relative to the pole.
	consHigh, consLow := highLow(consolidation)
	if consHigh-consLow > poleHeight*0.5 {
		return nil
	}

	// Consolidation must hold near the pole's end, not give it back.
	mid := (consHigh + consLow) / 2
	if up && mid < poleStart+poleHeight*0.5 {
		return nil
	}
	if !up && mid > poleStart-poleHeight*0.5 {
		return nil
	}

	if up {
		return &Signal{
			Name:        "bull_flag",
			Family:      FamilyContinuation,
			Bias:        market.BiasLong,
			Strength:    70,
			Description: "tight consolidation holding gains after an upward impulse",
		}
	}

	return &Signal{
		Name:        "bear_flag",
		Family:      FamilyContinuation,
		Bias:        market.BiasShort,
		Strength:    70,
		Description: "tight consolidation holding losses after a downward impulse",
	}
}

func highLow(candles []market.Candle) (high float64, low float64) {
	if len(candles) == 0 {
		return 0, 0
	}
	high, low = candles[0].High, candles[0].Low
	for _, c := range candles {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	return high, low
}
