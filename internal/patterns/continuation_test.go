package patterns

import (
	"testing"

	"zikalyze-engine/internal/market"
)

// TestBullFlag tests flag detection after an upward impulse
func TestBullFlag(t *testing.T) {
	d := newTestDetector()

	candles := make([]market.Candle, 9)

	// Upward impulse (6 candles)
	for i := 0; i < 6; i++ {
		open := 100.0 + float64(i)*4
		candles[i] = market.Candle{
			Open:   open,
			High:   open + 4.5,
			Low:    open - 0.5,
			Close:  open + 4,
			Volume: 100,
		}
	}

	// Tight consolidation holding near the highs (3 candles)
	candles[6] = market.Candle{Open: 124, High: 124.5, Low: 122, Close: 122.5, Volume: 80}
	candles[7] = market.Candle{Open: 122.5, High: 123.5, Low: 122, Close: 123, Volume: 70}
	candles[8] = market.Candle{Open: 123, High: 123.8, Low: 122.2, Close: 122.8, Volume: 60}

	signal := d.detectContinuation(candles)
	if signal == nil {
		t.Fatal("should detect bull flag from impulse plus tight consolidation")
	}
	if signal.Name != "bull_flag" {
		t.Errorf("expected bull_flag, got %s", signal.Name)
	}
	if signal.Bias != market.BiasLong {
		t.Errorf("bull flag resolves LONG, got %s", signal.Bias)
	}
}

// TestBearFlag tests flag detection after a downward impulse
func TestBearFlag(t *testing.T) {
	d := newTestDetector()

	candles := make([]market.Candle, 9)

	for i := 0; i < 6; i++ {
		open := 124.0 - float64(i)*4
		candles[i] = market.Candle{
			Open:   open,
			High:   open + 0.5,
			Low:    open - 4.5,
			Close:  open - 4,
			Volume: 100,
		}
	}

	candles[6] = market.Candle{Open: 100, High: 102, Low: 99.5, Close: 101.5, Volume: 80}
	candles[7] = market.Candle{Open: 101.5, High: 102, Low: 100.5, Close: 101, Volume: 70}
	candles[8] = market.Candle{Open: 101, High: 101.8, Low: 100.2, Close: 101.2, Volume: 60}

	signal := d.detectContinuation(candles)
	if signal == nil {
		t.Fatal("should detect bear flag from impulse plus tight consolidation")
	}
	if signal.Name != "bear_flag" {
		t.Errorf("expected bear_flag, got %s", signal.Name)
	}
	if signal.Bias != market.BiasShort {
		t.Errorf("bear flag resolves SHORT, got %s", signal.Bias)
	}
}

// TestFlagRejectsLooseConsolidation makes sure a consolidation that gives
// back the impulse does not count as continuation
func TestFlagRejectsLooseConsolidation(t *testing.T) {
	d := newTestDetector()

	candles := make([]market.Candle, 9)
	for i := 0; i < 6; i++ {
		open := 100.0 + float64(i)*4
		candles[i] = market.Candle{
			Open:   open,
			High:   open + 4.5,
			Low:    open - 0.5,
			Close:  open + 4,
			Volume: 100,
		}
	}

	// "Consolidation" retraces most of the pole.
	candles[6] = market.Candle{Open: 124, High: 124.5, Low: 110, Close: 111, Volume: 80}
	candles[7] = market.Candle{Open: 111, High: 112, Low: 104, Close: 105, Volume: 70}
	candles[8] = market.Candle{Open: 105, High: 106, Low: 101, Close: 102, Volume: 60}

	if signal := d.detectContinuation(candles); signal != nil {
		t.Errorf("deep retracement should not detect a flag, got %+v", signal)
	}
}
