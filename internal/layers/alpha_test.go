package layers

import (
	"math"
	"testing"

	"zikalyze-engine/internal/market"
)

func TestAlphaInsufficientCandles(t *testing.T) {
	a := NewAlpha()

	out := a.Analyze(&market.MarketSnapshot{
		Price:   100,
		High24h: 110,
		Low24h:  90,
		Candles: make([]market.Candle, 5),
	})

	if out.Bias != market.BiasNeutral {
		t.Errorf("short history should be NEUTRAL, got %s", out.Bias)
	}
	if out.Confidence != 50 {
		t.Errorf("neutral confidence should be 50, got %f", out.Confidence)
	}
}

func TestAlphaInvalidRange(t *testing.T) {
	a := NewAlpha()

	candles := make([]market.Candle, 12)
	for i := range candles {
		candles[i] = market.Candle{Open: 100, High: 101, Low: 99, Close: 100.5}
	}

	out := a.Analyze(&market.MarketSnapshot{Price: 100, High24h: 100, Low24h: 100, Candles: candles})
	if out.Bias != market.BiasNeutral {
		t.Errorf("a flat 24h range gives no structure, got %s", out.Bias)
	}
}

func TestAlphaPriceAboveMidpointLeansLong(t *testing.T) {
	a := NewAlpha()

	// 24h range 90..110: support at 97.64, resistance at 102.36, midpoint 100.
	// Candles sit between the level bands: no touches, no breaks, no impulse.
	candles := make([]market.Candle, 12)
	for i := range candles {
		candles[i] = market.Candle{Open: 100.5, High: 101.2, Low: 100.1, Close: 100.8}
	}

	out := a.Analyze(&market.MarketSnapshot{
		Price:   100.8,
		High24h: 110,
		Low24h:  90,
		Candles: candles,
	})

	if out.Bias != market.BiasLong {
		t.Errorf("price above the midpoint with clean structure leans LONG, got %s", out.Bias)
	}
	// One vote, no touches, no violations: 50 + 8.
	if math.Abs(out.Confidence-58) > 1e-9 {
		t.Errorf("confidence: got %f, want 58", out.Confidence)
	}
	if out.Reasoning == "" {
		t.Error("structural reads must explain themselves")
	}
}

func TestAlphaDefendedSupportRaisesConfidence(t *testing.T) {
	a := NewAlpha()

	// 24h range 90..110: support at 97.64, resistance at 102.36.
	candles := make([]market.Candle, 12)
	for i := range candles {
		candles[i] = market.Candle{Open: 99, High: 99.6, Low: 98.6, Close: 99.2}
	}
	// Two dips into the support band that close back above it.
	candles[9] = market.Candle{Open: 98.5, High: 98.9, Low: 97.5, Close: 98.4}
	candles[10] = market.Candle{Open: 98.4, High: 98.8, Low: 97.6, Close: 98.3}

	out := a.Analyze(&market.MarketSnapshot{
		Price:   100.5,
		High24h: 110,
		Low24h:  90,
		Candles: candles,
	})

	if out.Bias != market.BiasLong {
		t.Fatalf("price above midpoint with defended support leans LONG, got %s (%s)", out.Bias, out.Reasoning)
	}
	// Two votes, two confirming touches, no violations: 50 + 16 + 8.
	if math.Abs(out.Confidence-74) > 1e-9 {
		t.Errorf("confidence: got %f, want 74", out.Confidence)
	}
}

func TestAlphaCancellingVotesGoNeutral(t *testing.T) {
	a := NewAlpha()

	// Same structure but price below the midpoint: the position vote and the
	// defended-support vote cancel.
	candles := make([]market.Candle, 12)
	for i := range candles {
		candles[i] = market.Candle{Open: 99, High: 99.6, Low: 98.6, Close: 99.2}
	}
	candles[9] = market.Candle{Open: 98.5, High: 98.9, Low: 97.5, Close: 98.4}
	candles[10] = market.Candle{Open: 98.4, High: 98.8, Low: 97.6, Close: 98.3}

	out := a.Analyze(&market.MarketSnapshot{
		Price:   99,
		High24h: 110,
		Low24h:  90,
		Candles: candles,
	})

	if out.Bias != market.BiasNeutral {
		t.Errorf("cancelling votes should read NEUTRAL, got %s (%s)", out.Bias, out.Reasoning)
	}
}

func TestLevelRespectCounts(t *testing.T) {
	candles := []market.Candle{
		// Dips into the band and closes above: touch.
		{Open: 101, High: 101.5, Low: 99.8, Close: 100.6},
		// Closes through the level: violation.
		{Open: 100.5, High: 100.8, Low: 98.5, Close: 99.0},
		// Never reaches the band: ignored.
		{Open: 103, High: 103.5, Low: 102.5, Close: 103.2},
	}

	touches, violations := levelRespect(candles, 100, true)
	if touches != 1 || violations != 1 {
		t.Errorf("got %d touches / %d violations, want 1/1", touches, violations)
	}
}

func TestLastOrderBlock(t *testing.T) {
	candles := []market.Candle{
		{Open: 100, High: 101, Low: 99.5, Close: 100.5},
		{Open: 100.5, High: 101, Low: 100, Close: 100.7},
		{Open: 100.7, High: 101, Low: 100.2, Close: 100.4},
		// Bearish block candle.
		{Open: 100.4, High: 100.8, Low: 99.9, Close: 100.0},
		// Up impulse dwarfing the typical body.
		{Open: 100.0, High: 103.5, Low: 99.9, Close: 103.2},
	}

	ob := lastOrderBlock(candles)
	if ob == nil {
		t.Fatal("a bearish candle before an up impulse is a bullish order block")
	}
	if !ob.bullish {
		t.Error("block before an up impulse should be bullish")
	}
	if ob.high != 100.8 || ob.low != 99.9 {
		t.Errorf("block bounds: got %f/%f, want 100.8/99.9", ob.high, ob.low)
	}
}
