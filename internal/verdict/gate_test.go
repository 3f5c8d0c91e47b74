package verdict

import (
	"strings"
	"testing"

	"zikalyze-engine/config"
	"zikalyze-engine/internal/consensus"
	"zikalyze-engine/internal/layers"
	"zikalyze-engine/internal/market"
	"zikalyze-engine/internal/patterns"
	"zikalyze-engine/internal/regime"
)

func newTestGate() *Gate {
	return NewGate(config.Default().Gate)
}

func TestGateSkipTradeCapsAndForcesWait(t *testing.T) {
	g := newTestGate()

	res := g.Apply(
		consensus.Result{SkipTrade: true, SkipReason: "neural confidence 0.49 below threshold 0.51"},
		TriModalVerdict{PositionSize: SizeFull},
		85, market.BiasLong,
	)

	if res.QualityScore != 35 {
		t.Errorf("skip trade caps quality at 35, got %f", res.QualityScore)
	}
	if !res.QualityCapped {
		t.Error("an 85 local score under a 35 cap is capped")
	}
	if res.Headline != market.BiasWait {
		t.Errorf("skip trade forces WAIT, got %s", res.Headline)
	}
	if !strings.Contains(res.QualityCapReason, "0.49") {
		t.Errorf("cap reason should carry the skip reason, got %q", res.QualityCapReason)
	}
}

func TestGateAvoidCapsAndForcesWait(t *testing.T) {
	g := newTestGate()

	res := g.Apply(
		consensus.Result{},
		TriModalVerdict{PositionSize: SizeAvoid, Reasoning: "blended confidence too low"},
		70, market.BiasShort,
	)

	if res.QualityScore != 30 {
		t.Errorf("avoid caps quality at 30, got %f", res.QualityScore)
	}
	if res.Headline != market.BiasWait {
		t.Errorf("avoid forces WAIT, got %s", res.Headline)
	}
}

func TestGateConflictCapsButKeepsHeadline(t *testing.T) {
	g := newTestGate()

	res := g.Apply(
		consensus.Result{},
		TriModalVerdict{PositionSize: SizeQuarter, HasConflict: true, Reasoning: "structural LONG vs pattern SHORT"},
		80, market.BiasLong,
	)

	if res.QualityScore != 50 {
		t.Errorf("conflict caps quality at 50, got %f", res.QualityScore)
	}
	if res.Headline != market.BiasLong {
		t.Errorf("conflict keeps the directional headline, got %s", res.Headline)
	}
}

// Skip trade outranks every other veto.
func TestGateSkipTradeOutranksAvoid(t *testing.T) {
	g := newTestGate()

	res := g.Apply(
		consensus.Result{SkipTrade: true, SkipReason: "filtered"},
		TriModalVerdict{PositionSize: SizeAvoid, HasConflict: true, Reasoning: "everything wrong"},
		90, market.BiasLong,
	)

	if res.QualityCap != 35 {
		t.Errorf("skip trade cap is 35 even with avoid and conflict present, got %f", res.QualityCap)
	}
	if res.QualityCapReason != "filtered" {
		t.Errorf("skip reason takes priority, got %q", res.QualityCapReason)
	}
}

func TestGateAvoidOutranksConflict(t *testing.T) {
	g := newTestGate()

	res := g.Apply(
		consensus.Result{},
		TriModalVerdict{PositionSize: SizeAvoid, HasConflict: true, Reasoning: "weak and conflicted"},
		90, market.BiasLong,
	)

	if res.QualityCap != 30 {
		t.Errorf("avoid cap is 30 even with a conflict present, got %f", res.QualityCap)
	}
}

// The gate never lifts a score: a local quality already below the cap stands.
func TestGateClampsDownOnly(t *testing.T) {
	g := newTestGate()

	res := g.Apply(
		consensus.Result{SkipTrade: true, SkipReason: "filtered"},
		TriModalVerdict{PositionSize: SizeFull},
		20, market.BiasLong,
	)

	if res.QualityScore != 20 {
		t.Errorf("a 20 local score under a 35 cap stands, got %f", res.QualityScore)
	}
	if res.QualityCapped {
		t.Error("nothing was clamped")
	}
	if res.QualityCapReason == "" {
		t.Error("the cap reason still explains the degraded state")
	}
}

func TestGateNoVetoPassesThrough(t *testing.T) {
	g := newTestGate()

	res := g.Apply(
		consensus.Result{},
		TriModalVerdict{PositionSize: SizeFull},
		85, market.BiasLong,
	)

	if res.QualityScore != 85 || res.QualityCapped {
		t.Errorf("no veto should leave quality untouched, got %f capped=%v", res.QualityScore, res.QualityCapped)
	}
	if res.Headline != market.BiasLong {
		t.Errorf("headline unchanged, got %s", res.Headline)
	}
}

func TestLocalQualityConfirmations(t *testing.T) {
	aligned := LocalQuality(
		market.BiasLong,
		layers.Output{Bias: market.BiasLong},
		layers.BetaOutput{Output: layers.Output{Bias: market.BiasLong}},
		layers.GammaOutput{Output: layers.Output{Bias: market.BiasLong}},
		regime.Result{Regime: regime.Trending},
		nil,
	)
	// 40 base + 3*15 confirmations + 10 trending alignment.
	if aligned != 95 {
		t.Errorf("fully aligned trending quality: got %f, want 95", aligned)
	}

	lone := LocalQuality(
		market.BiasLong,
		layers.Output{Bias: market.BiasLong},
		layers.BetaOutput{Output: layers.Output{Bias: market.BiasNeutral}},
		layers.GammaOutput{Output: layers.Output{Bias: market.BiasNeutral}},
		regime.Result{Regime: regime.Ranging},
		nil,
	)
	if lone != 55 {
		t.Errorf("single confirmation in ranging: got %f, want 55", lone)
	}
}

func TestLocalQualityPenalizesExhaustion(t *testing.T) {
	base := LocalQuality(
		market.BiasLong,
		layers.Output{Bias: market.BiasLong},
		layers.BetaOutput{Output: layers.Output{Bias: market.BiasLong}},
		layers.GammaOutput{Output: layers.Output{Bias: market.BiasNeutral}},
		regime.Result{Regime: regime.Ranging},
		nil,
	)
	penalized := LocalQuality(
		market.BiasLong,
		layers.Output{Bias: market.BiasLong},
		layers.BetaOutput{Output: layers.Output{Bias: market.BiasLong}},
		layers.GammaOutput{Output: layers.Output{Bias: market.BiasNeutral}},
		regime.Result{Regime: regime.Ranging},
		&patterns.Signal{Name: "exhaustion"},
	)

	if penalized != base-10 {
		t.Errorf("exhaustion should cost 10 points: base %f, penalized %f", base, penalized)
	}
}
