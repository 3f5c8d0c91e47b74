package engine

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"zikalyze-engine/config"
	"zikalyze-engine/internal/market"
	"zikalyze-engine/internal/regime"
)

var engineNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// trendingSnapshot builds a steadily rising series long enough for every
// indicator in the pipeline.
func trendingSnapshot() *market.MarketSnapshot {
	candles := make([]market.Candle, 40)
	for i := range candles {
		open := 100.0 + float64(i)*2
		candles[i] = market.Candle{
			Timestamp: engineNow.Add(time.Duration(i-len(candles)) * time.Hour),
			Open:      open,
			High:      open + 2.5,
			Low:       open - 0.5,
			Close:     open + 2,
			Volume:    100,
		}
	}

	last := candles[len(candles)-1]
	return &market.MarketSnapshot{
		Symbol:  "BTCUSDT",
		Price:   last.Close,
		High24h: last.High,
		Low24h:  candles[0].Low,
		Volume:  4000,
		Candles: candles,
		AsOf:    engineNow,
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	e := New(config.Default())
	snap := trendingSnapshot()

	first := e.Analyze(snap)
	second := e.Analyze(snap)

	if first.ID != second.ID {
		t.Errorf("identical snapshots must share an ID: %s vs %s", first.ID, second.ID)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical snapshots must yield identical verdicts")
	}
}

func TestAnalyzeTrendingPipeline(t *testing.T) {
	e := New(config.Default())

	v := e.Analyze(trendingSnapshot())

	if v.Regime.Regime != regime.Trending {
		t.Fatalf("a monotonic advance should classify TRENDING, got %s (ADX %f)", v.Regime.Regime, v.Regime.ADX)
	}
	if v.Beta.Bias != market.BiasLong {
		t.Errorf("oscillators should read the advance LONG, got %s", v.Beta.Bias)
	}
	if v.Consensus.SkipTrade {
		t.Errorf("a strong advance should clear the safety filter, got skip: %s", v.Consensus.SkipReason)
	}
	if v.Entry != 180 {
		t.Errorf("entry should be the snapshot price, got %f", v.Entry)
	}
	if v.Stop >= v.Entry {
		t.Errorf("long stop must sit below entry: stop %f, entry %f", v.Stop, v.Entry)
	}
	if v.PositionSize != v.TriModal.PositionSize {
		t.Error("headline position size must mirror the tri-modal verdict")
	}
	if v.QualityScore < 0 || v.QualityScore > 100 {
		t.Errorf("quality out of range: %f", v.QualityScore)
	}
}

func TestAnalyzeDegenerateInput(t *testing.T) {
	e := New(config.Default())

	v := e.Analyze(&market.MarketSnapshot{Symbol: "BTCUSDT"})

	if v.Regime.Regime != regime.Transitional {
		t.Errorf("no history should classify TRANSITIONAL, got %s", v.Regime.Regime)
	}
	if v.Regime.ADX != 0 {
		t.Errorf("no history should report ADX 0, got %f", v.Regime.ADX)
	}
	if v.Alpha.Bias != market.BiasNeutral || v.Beta.Bias != market.BiasNeutral || v.Gamma.Bias != market.BiasNeutral {
		t.Errorf("all layers should degrade to NEUTRAL, got %s/%s/%s", v.Alpha.Bias, v.Beta.Bias, v.Gamma.Bias)
	}
	if v.Bias != market.BiasNeutral {
		t.Errorf("headline should be NEUTRAL, got %s", v.Bias)
	}
	if !strings.Contains(v.Summary, "no directional edge") {
		t.Errorf("summary should state the lack of edge, got %q", v.Summary)
	}
}

func TestAnalyzeSkipTradeForcesWait(t *testing.T) {
	cfg := config.Default()
	// An unreachable threshold makes every trending snapshot fail the filter.
	cfg.SafetyFilter.BaseThreshold = 0.99

	e := New(cfg)
	v := e.Analyze(trendingSnapshot())

	if !v.Consensus.SkipTrade {
		t.Fatal("raised threshold should reject the trade")
	}
	if v.Bias != market.BiasWait {
		t.Errorf("skip trade forces WAIT, got %s", v.Bias)
	}
	if v.QualityScore > 35 {
		t.Errorf("skipped trade quality must stay at or under 35, got %f", v.QualityScore)
	}
	if !strings.HasPrefix(v.Summary, "WAIT:") {
		t.Errorf("summary should lead with the wait reason, got %q", v.Summary)
	}
}

func TestAnalyzeIDChangesWithSnapshot(t *testing.T) {
	e := New(config.Default())

	a := e.Analyze(trendingSnapshot())

	later := trendingSnapshot()
	later.AsOf = engineNow.Add(time.Minute)
	b := e.Analyze(later)

	if a.ID == b.ID {
		t.Error("different snapshot times must produce different IDs")
	}
}
