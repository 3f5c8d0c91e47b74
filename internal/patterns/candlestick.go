package patterns

import "zikalyze-engine/internal/market"

// Single-candle and two-candle formation detection. These run independently
// of the family detectors so that agreement between the two methods can be
// rewarded with a confluence bonus instead of trusting either one alone.

// isBullishEngulfing checks for a Bullish Engulfing formation
func isBullishEngulfing(c1, c2 market.Candle) bool {
	// C1: bearish candle
	if !c1.Bearish() {
		return false
	}

	// C2: bullish candle
	if !c2.Bullish() {
		return false
	}

	// C2 body must completely engulf C1 body
	if c2.Open > c1.Close || c2.Close < c1.Open {
		return false
	}

	return true
}

// isBearishEngulfing checks for a Bearish Engulfing formation
func isBearishEngulfing(c1, c2 market.Candle) bool {
	// C1: bullish candle
	if !c1.Bullish() {
		return false
	}

	// C2: bearish candle
	if !c2.Bearish() {
		return false
	}

	// C2 body must completely engulf C1 body
	if c2.Open < c1.Close || c2.Close > c1.Open {
		return false
	}

	return true
}

// isHammer checks for a Hammer formation (bullish when it follows weakness)
func isHammer(c market.Candle, prev *market.Candle) bool {
	body := c.Body()

	// Long lower wick (at least 2x body)
	if c.LowerWick() < body*2 {
		return false
	}

	// Small or no upper wick
	if c.UpperWick() > body*0.5 {
		return false
	}

	// Should appear after a down candle when context is available
	if prev != nil && !prev.Bearish() {
		return false
	}

	return true
}

// isShootingStar checks for a Shooting Star formation (bearish)
func isShootingStar(c market.Candle, prev *market.Candle) bool {
	body := c.Body()

	// Long upper wick (at least 2x body)
	if c.UpperWick() < body*2 {
		return false
	}

	// Small or no lower wick
	if c.LowerWick() > body*0.5 {
		return false
	}

	// Should appear after an up candle when context is available
	if prev != nil && !prev.Bullish() {
		return false
	}

	return true
}

// isDoji checks for a Doji (indecision): tiny body relative to range
func isDoji(c market.Candle) bool {
	rng := c.Range()
	if rng == 0 {
		return false
	}

	return (c.Body() / rng) < 0.10
}

// detectFormation scans the most recent candles for a single-candle or
// two-candle formation and returns the strongest one, or nil.
func detectFormation(candles []market.Candle) *Signal {
	if len(candles) == 0 {
		return nil
	}

	last := candles[len(candles)-1]
	var prev *market.Candle
	if len(candles) >= 2 {
		prev = &candles[len(candles)-2]
	}

	// Two-candle formations take priority: they carry trend context.
	if prev != nil {
		if isBullishEngulfing(*prev, last) {
			return &Signal{
				Name:        "bullish_engulfing",
				Family:      FamilyReversal,
				Bias:        market.BiasLong,
				Strength:    75,
				Description: "bullish candle fully engulfs the prior bearish body",
			}
		}
		if isBearishEngulfing(*prev, last) {
			return &Signal{
				Name:        "bearish_engulfing",
				Family:      FamilyReversal,
				Bias:        market.BiasShort,
				Strength:    75,
				Description: "bearish candle fully engulfs the prior bullish body",
			}
		}
	}

	if isHammer(last, prev) {
		return &Signal{
			Name:        "hammer",
			Family:      FamilyReversal,
			Bias:        market.BiasLong,
			Strength:    65,
			Description: "long lower wick rejects the session low",
		}
	}

	if isShootingStar(last, prev) {
		return &Signal{
			Name:        "shooting_star",
			Family:      FamilyReversal,
			Bias:        market.BiasShort,
			Strength:    65,
			Description: "long upper wick rejects the session high",
		}
	}

	if isDoji(last) {
		return &Signal{
			Name:        "doji",
			Family:      FamilyReversal,
			Bias:        market.BiasNeutral,
			Strength:    50,
			Description: "indecision candle with negligible body",
		}
	}

	return nil
}
