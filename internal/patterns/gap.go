package patterns

import (
	"zikalyze-engine/internal/indicators"
	"zikalyze-engine/internal/market"
)

// Gap family, adapted for continuous markets: instead of a literal price
// gap, a liquidity void is a sharp single-candle move far beyond typical
// range, with minimal retracement afterwards. Price tends to continue away
// from the void until it is revisited.

// detectGap scans the last few candles for a liquidity void
func (d *Detector) detectGap(candles []market.Candle) *Signal {
	// Need ATR context plus the void candle and its follow-through.
	if len(candles) < 16 {
		return nil
	}

	atr := indicators.ATR(candles[:len(candles)-2], 14)
	if atr == 0 {
		return nil
	}

	void := candles[len(candles)-2]
	follow := candles[len(candles)-1]

	if void.Range() < atr*d.cfg.GapATRMultiple {
		return nil
	}

	// The move must be directional, not a wide indecision bar.
	if void.Body() < void.Range()*0.6 {
		return nil
	}

	// Follow-through must not give the void back.
	var retraced float64
	if void.Bullish() {
		retraced = void.Close - follow.Low
	} else {
		retraced = follow.High - void.Close
	}
	if retraced > void.Range()*d.cfg.MaxGapRetracement {
		return nil
	}

	if void.Bullish() {
		return &Signal{
			Name:        "liquidity_void_up",
			Family:      FamilyGap,
			Bias:        market.BiasLong,
			Strength:    68,
			Description: "sharp single-candle advance holding without retracement",
		}
	}

	return &Signal{
		Name:        "liquidity_void_down",
		Family:      FamilyGap,
		Bias:        market.BiasShort,
		Strength:    68,
		Description: "sharp single-candle decline holding without retracement",
	}
}
