package patterns

import (
	"fmt"

	"zikalyze-engine/internal/market"
)

// Momentum family: runs of same-direction candles, and exhaustion where the
// body shrinks while wicks grow.

// detectMomentum looks for three or more consecutive same-direction candles.
// A fresh run signals momentum in its direction; a run whose latest candle
// shows exhaustion flips the signal against the run.
func (d *Detector) detectMomentum(candles []market.Candle) *Signal {
	if len(candles) < 3 {
		return nil
	}

	run, up := trailingRun(candles)
	if run < 3 {
		return nil
	}

	bias := market.BiasLong
	if !up {
		bias = market.BiasShort
	}

	last := candles[len(candles)-1]
	prev := candles[len(candles)-2]

	// Exhaustion: body shrinking while total wick grows means the move is
	// being absorbed. Fade the run instead of following it.
	wickLast := last.UpperWick() + last.LowerWick()
	wickPrev := prev.UpperWick() + prev.LowerWick()
	if last.Body() < prev.Body()*0.6 && wickLast > wickPrev {
		return &Signal{
			Name:        "exhaustion",
			Family:      FamilyMomentum,
			Bias:        bias.Opposite(),
			Strength:    60,
			Description: fmt.Sprintf("%d-candle run losing body while wicks grow", run),
		}
	}

	// Strength scales with run length, capped before it dominates confluence.
	strength := 55 + float64(run-3)*5
	if strength > 80 {
		strength = 80
	}

	return &Signal{
		Name:        "momentum_run",
		Family:      FamilyMomentum,
		Bias:        bias,
		Strength:    strength,
		Description: fmt.Sprintf("%d consecutive candles in the same direction", run),
	}
}

// trailingRun counts consecutive same-direction candles ending at the latest
// candle and reports the direction. Flat candles terminate the run.
func trailingRun(candles []market.Candle) (length int, up bool) {
	last := candles[len(candles)-1]
	switch {
	case last.Bullish():
		up = true
	case last.Bearish():
		up = false
	default:
		return 0, false
	}

	for i := len(candles) - 1; i >= 0; i-- {
		c := candles[i]
		if (up && c.Bullish()) || (!up && c.Bearish()) {
			length++
			continue
		}
		break
	}

	return length, up
}
