package layers

import (
	"fmt"
	"strings"

	"zikalyze-engine/internal/indicators"
	"zikalyze-engine/internal/market"
)

// Alpha is the rule-based structural layer: order blocks and Fibonacci
// retracement levels, scored by how cleanly price respects or rejects them.
type Alpha struct{}

// NewAlpha creates the structural analysis layer
func NewAlpha() *Alpha {
	return &Alpha{}
}

// orderBlock is the last opposing candle before an impulsive move. Price
// returning to the zone tends to react in the impulse direction.
type orderBlock struct {
	high    float64
	low     float64
	bullish bool
}

// levelTolerance is how close price must come to a level to count as a touch
const levelTolerance = 0.005

// Analyze derives a structural bias and confidence from the candle window
// and the 24h bounds. Confidence rises with confirming touches of support
// and resistance and falls with violations. Ambiguous structure returns
// NEUTRAL at 50.
func (a *Alpha) Analyze(snap *market.MarketSnapshot) Output {
	candles := snap.Candles
	if len(candles) < 10 {
		return Neutral("insufficient candles for structural analysis")
	}
	if snap.High24h <= snap.Low24h || snap.Price <= 0 {
		return Neutral("no usable 24h range")
	}

	fib := indicators.FibonacciFromRange(snap.High24h, snap.Low24h)
	support := fib.Level618
	resistance := fib.Level382

	supTouches, supBreaks := levelRespect(candles, support, true)
	resTouches, resBreaks := levelRespect(candles, resistance, false)

	var notes []string
	score := 0

	// Price position within the retracement structure.
	if snap.Price > fib.Level50 {
		score++
		notes = append(notes, "price above the 50% retracement")
	} else if snap.Price < fib.Level50 {
		score--
		notes = append(notes, "price below the 50% retracement")
	}

	// Level behavior: defended support argues long, defended resistance short.
	if supTouches > supBreaks {
		score++
		notes = append(notes, fmt.Sprintf("support defended (%d touches, %d breaks)", supTouches, supBreaks))
	} else if supBreaks > supTouches {
		score--
		notes = append(notes, fmt.Sprintf("support failing (%d breaks)", supBreaks))
	}
	if resTouches > resBreaks {
		score--
		notes = append(notes, fmt.Sprintf("resistance holding (%d touches, %d breaks)", resTouches, resBreaks))
	} else if resBreaks > resTouches {
		score++
		notes = append(notes, fmt.Sprintf("resistance giving way (%d breaks)", resBreaks))
	}

	// Order-block context.
	if ob := lastOrderBlock(candles); ob != nil {
		if ob.bullish && snap.Price >= ob.low {
			score++
			notes = append(notes, "price holding above a bullish order block")
		} else if !ob.bullish && snap.Price <= ob.high {
			score--
			notes = append(notes, "price capped below a bearish order block")
		}
	}

	if score == 0 {
		return Neutral("structure ambiguous: " + strings.Join(notes, "; "))
	}

	bias := market.BiasLong
	if score < 0 {
		bias = market.BiasShort
	}

	confirming := supTouches + resTouches
	violations := supBreaks + resBreaks
	confidence := 50 + 8*absInt(score) + 4*confirming - 6*violations
	conf := clampConfidence(float64(confidence))
	if conf < 30 {
		conf = 30
	}
	if conf > 95 {
		conf = 95
	}

	return Output{
		Bias:       bias,
		Confidence: conf,
		Reasoning:  strings.Join(notes, "; "),
	}
}

// levelRespect counts confirming touches and violations of a level. A touch
// is a candle that traded into the level band and closed back on the
// defended side; a violation closed through it.
func levelRespect(candles []market.Candle, level float64, isSupport bool) (touches, violations int) {
	if level <= 0 {
		return 0, 0
	}

	band := level * levelTolerance

	for _, c := range candles {
		if isSupport {
			if c.Low > level+band {
				continue // never reached the level
			}
			if c.Close >= level {
				touches++
			} else {
				violations++
			}
		} else {
			if c.High < level-band {
				continue
			}
			if c.Close <= level {
				touches++
			} else {
				violations++
			}
		}
	}

	return touches, violations
}

// lastOrderBlock finds the most recent opposing candle immediately before an
// impulsive move. The impulse must dwarf the typical body in the window.
func lastOrderBlock(candles []market.Candle) *orderBlock {
	if len(candles) < 5 {
		return nil
	}

	avgBody := 0.0
	for _, c := range candles {
		avgBody += c.Body()
	}
	avgBody /= float64(len(candles))
	if avgBody == 0 {
		return nil
	}

	for i := len(candles) - 2; i > 0; i-- {
		impulse := candles[i+1]
		block := candles[i]

		if impulse.Body() < avgBody*1.5 {
			continue
		}

		// Bullish order block: bearish candle before an up impulse.
		if impulse.Bullish() && block.Bearish() {
			return &orderBlock{high: block.High, low: block.Low, bullish: true}
		}
		// Bearish order block: bullish candle before a down impulse.
		if impulse.Bearish() && block.Bullish() {
			return &orderBlock{high: block.High, low: block.Low, bullish: false}
		}
	}

	return nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
