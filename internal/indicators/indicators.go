package indicators

import (
	"math"

	"zikalyze-engine/internal/market"
)

// ============================================================================
// MOVING AVERAGES
// ============================================================================

// SMA calculates the Simple Moving Average of closes over the last period candles
func SMA(candles []market.Candle, period int) float64 {
	if period <= 0 || len(candles) < period {
		return 0
	}

	sum := 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		sum += candles[i].Close
	}

	return sum / float64(period)
}

// EMA calculates the Exponential Moving Average of closes
func EMA(candles []market.Candle, period int) float64 {
	if period <= 0 || len(candles) < period {
		return 0
	}

	// Seed with an SMA, then roll forward
	ema := SMA(candles[:period], period)
	multiplier := 2.0 / float64(period+1)

	for i := period; i < len(candles); i++ {
		ema = (candles[i].Close * multiplier) + (ema * (1 - multiplier))
	}

	return ema
}

// ============================================================================
// RSI (Relative Strength Index)
// ============================================================================

// RSI calculates the Relative Strength Index. Returns 50 (neutral) when
// there is not enough history.
func RSI(candles []market.Candle, period int) float64 {
	if period <= 0 || len(candles) < period+1 {
		return 50.0
	}

	gains := 0.0
	losses := 0.0

	for i := len(candles) - period; i < len(candles); i++ {
		change := candles[i].Close - candles[i-1].Close
		if change > 0 {
			gains += change
		} else {
			losses += -change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0
		}
		return 100.0
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// ============================================================================
// MACD (Moving Average Convergence Divergence)
// ============================================================================

// MACDResult holds MACD indicator values
type MACDResult struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// MACD calculates the MACD line, signal line and histogram using the
// standard fast/slow/signal EMA construction over the close series.
func MACD(candles []market.Candle, fastPeriod, slowPeriod, signalPeriod int) *MACDResult {
	if len(candles) < slowPeriod+signalPeriod {
		return &MACDResult{}
	}

	// Build the MACD series over the signal window so the signal line is a
	// true EMA of MACD values rather than an approximation.
	macdSeries := make([]float64, 0, signalPeriod)
	for i := len(candles) - signalPeriod; i <= len(candles); i++ {
		window := candles[:i]
		if len(window) < slowPeriod {
			continue
		}
		macdSeries = append(macdSeries, EMA(window, fastPeriod)-EMA(window, slowPeriod))
	}

	if len(macdSeries) == 0 {
		return &MACDResult{}
	}

	macdLine := macdSeries[len(macdSeries)-1]

	signal := macdSeries[0]
	multiplier := 2.0 / float64(signalPeriod+1)
	for i := 1; i < len(macdSeries); i++ {
		signal = (macdSeries[i] * multiplier) + (signal * (1 - multiplier))
	}

	return &MACDResult{
		MACD:      macdLine,
		Signal:    signal,
		Histogram: macdLine - signal,
	}
}

// ============================================================================
// ATR (Average True Range)
// ============================================================================

// ATR calculates the Average True Range
func ATR(candles []market.Candle, period int) float64 {
	if period <= 0 || len(candles) < period+1 {
		return 0
	}

	trSum := 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		trSum += trueRange(candles[i], candles[i-1])
	}

	return trSum / float64(period)
}

func trueRange(c, prev market.Candle) float64 {
	return math.Max(
		c.High-c.Low,
		math.Max(
			math.Abs(c.High-prev.Close),
			math.Abs(c.Low-prev.Close),
		),
	)
}

// ============================================================================
// ADX (Average Directional Index)
// ============================================================================

// ADX calculates the Average Directional Index using Wilder smoothing of
// +DM/-DM against true range. Returns 0 when history is insufficient,
// which downstream regime classification treats as TRANSITIONAL.
func ADX(candles []market.Candle, period int) float64 {
	// Need period bars to seed DI and another period of DX values to average
	if period <= 0 || len(candles) < 2*period+1 {
		return 0
	}

	plusDM := make([]float64, len(candles))
	minusDM := make([]float64, len(candles))
	tr := make([]float64, len(candles))

	for i := 1; i < len(candles); i++ {
		upMove := candles[i].High - candles[i-1].High
		downMove := candles[i-1].Low - candles[i].Low

		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
		tr[i] = trueRange(candles[i], candles[i-1])
	}

	// Wilder smoothing seeds
	smPlus, smMinus, smTR := 0.0, 0.0, 0.0
	for i := 1; i <= period; i++ {
		smPlus += plusDM[i]
		smMinus += minusDM[i]
		smTR += tr[i]
	}

	dxSum := 0.0
	dxCount := 0

	for i := period + 1; i < len(candles); i++ {
		smPlus = smPlus - (smPlus / float64(period)) + plusDM[i]
		smMinus = smMinus - (smMinus / float64(period)) + minusDM[i]
		smTR = smTR - (smTR / float64(period)) + tr[i]

		if smTR == 0 {
			continue
		}

		plusDI := 100 * smPlus / smTR
		minusDI := 100 * smMinus / smTR

		diSum := plusDI + minusDI
		if diSum == 0 {
			continue
		}

		dx := 100 * math.Abs(plusDI-minusDI) / diSum
		dxSum += dx
		dxCount++
	}

	if dxCount == 0 {
		return 0
	}

	adx := dxSum / float64(dxCount)
	if adx > 100 {
		adx = 100
	}

	return adx
}

// ============================================================================
// MOMENTUM
// ============================================================================

// Momentum calculates percentage price change over the period
func Momentum(candles []market.Candle, period int) float64 {
	if period <= 0 || len(candles) < period+1 {
		return 0
	}

	current := candles[len(candles)-1].Close
	past := candles[len(candles)-period-1].Close
	if past == 0 {
		return 0
	}

	return ((current - past) / past) * 100
}

// ============================================================================
// FIBONACCI RETRACEMENT LEVELS
// ============================================================================

// FibonacciLevels holds Fibonacci retracement levels of a high/low span
type FibonacciLevels struct {
	Level0   float64 // 0% (high)
	Level236 float64 // 23.6%
	Level382 float64 // 38.2%
	Level50  float64 // 50%
	Level618 float64 // 61.8%
	Level100 float64 // 100% (low)
}

// FibonacciFromRange calculates retracement levels between a high and a low
func FibonacciFromRange(high, low float64) *FibonacciLevels {
	diff := high - low

	return &FibonacciLevels{
		Level0:   high,
		Level236: high - (diff * 0.236),
		Level382: high - (diff * 0.382),
		Level50:  high - (diff * 0.50),
		Level618: high - (diff * 0.618),
		Level100: low,
	}
}

// Fibonacci calculates retracement levels over the last period candles
func Fibonacci(candles []market.Candle, period int) *FibonacciLevels {
	if period <= 0 || len(candles) < period {
		return &FibonacciLevels{}
	}

	high, low := HighLow(candles[len(candles)-period:])
	return FibonacciFromRange(high, low)
}

// HighLow returns the highest high and lowest low of the candle window
func HighLow(candles []market.Candle) (high float64, low float64) {
	if len(candles) == 0 {
		return 0, 0
	}

	high = candles[0].High
	low = candles[0].Low

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

// AverageVolume calculates average volume over the last period candles
func AverageVolume(candles []market.Candle, period int) float64 {
	if len(candles) == 0 {
		return 0
	}
	if period <= 0 || len(candles) < period {
		period = len(candles)
	}

	sum := 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		sum += candles[i].Volume
	}

	return sum / float64(period)
}
