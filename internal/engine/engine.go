package engine

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"zikalyze-engine/config"
	"zikalyze-engine/internal/consensus"
	"zikalyze-engine/internal/layers"
	"zikalyze-engine/internal/market"
	"zikalyze-engine/internal/patterns"
	"zikalyze-engine/internal/regime"
	"zikalyze-engine/internal/verdict"
)

// TradeVerdict is the single output contract. Formatting layers read these
// fields and never recompute quality independently; the gate already
// guarantees every field agrees on whether to act.
type TradeVerdict struct {
	ID         string      `json:"id"`
	Symbol     string      `json:"symbol"`
	Bias       market.Bias `json:"bias"`
	Confidence float64     `json:"confidence"`

	QualityScore     float64 `json:"quality_score"`
	QualityCapReason string  `json:"quality_cap_reason,omitempty"`

	Entry  float64 `json:"entry"`
	Target float64 `json:"target"`
	Stop   float64 `json:"stop"`

	Summary string `json:"summary"`

	Regime       regime.Result           `json:"regime"`
	Alpha        layers.Output           `json:"alpha"`
	Beta         layers.BetaOutput       `json:"beta"`
	Gamma        layers.GammaOutput      `json:"gamma"`
	Consensus    consensus.Result        `json:"consensus"`
	TriModal     verdict.TriModalVerdict `json:"tri_modal"`
	PositionSize verdict.PositionSize    `json:"position_size"`
}

// Engine wires the full pipeline: regime classification, the three layers,
// regime-weighted consensus, tri-modal verdict and the consistency gate.
// It holds no mutable state, so any number of Analyze calls may run
// concurrently.
type Engine struct {
	cfg        *config.Config
	logger     zerolog.Logger
	classifier *regime.Classifier
	detector   *patterns.Detector
	alpha      *layers.Alpha
	beta       *layers.Beta
	gamma      *layers.Gamma
	consensus  *consensus.Synthesizer
	triModal   *verdict.TriModal
	gate       *verdict.Gate
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger attaches a logger; the default is a no-op logger so the
// library stays silent when embedded.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New builds an engine from the tunables config
func New(cfg *config.Config, opts ...Option) *Engine {
	detector := patterns.NewDetector(cfg.Patterns)

	e := &Engine{
		cfg:        cfg,
		logger:     zerolog.Nop(),
		classifier: regime.NewClassifier(cfg.Regime),
		detector:   detector,
		alpha:      layers.NewAlpha(),
		beta:       layers.NewBeta(cfg.Oscillators, detector),
		gamma:      layers.NewGamma(cfg.Macro),
		consensus:  consensus.NewSynthesizer(cfg.Consensus, cfg.SafetyFilter),
		triModal:   verdict.NewTriModal(cfg.TriModal),
		gate:       verdict.NewGate(cfg.Gate),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Analyze runs the full pipeline over one snapshot. It is pure and total:
// identical snapshots yield identical verdicts, and degenerate input
// degrades toward NEUTRAL/WAIT instead of erroring.
func (e *Engine) Analyze(snap *market.MarketSnapshot) TradeVerdict {
	reg := e.classifier.Classify(snap.Candles)

	alpha := e.alpha.Analyze(snap)
	beta := e.beta.Analyze(snap)
	gamma := e.gamma.Analyze(snap, alpha.Bias)

	cons := e.consensus.Synthesize(snap, reg, alpha, beta)
	tri := e.triModal.Decide(alpha, beta, gamma)

	signal := e.detector.Merge(snap.Candles)
	local := verdict.LocalQuality(tri.Bias, alpha, beta, gamma, reg, signal)
	gated := e.gate.Apply(cons, tri, local, tri.Bias)

	v := TradeVerdict{
		ID:               uuid.NewSHA1(uuid.NameSpaceOID, e.fingerprint(snap)).String(),
		Symbol:           snap.Symbol,
		Bias:             gated.Headline,
		Confidence:       tri.NormalizedConfidence,
		QualityScore:     gated.QualityScore,
		QualityCapReason: gated.QualityCapReason,
		Entry:            snap.Price,
		Target:           e.target(snap, cons, gated.Headline),
		Stop:             cons.StopLoss,
		Regime:           reg,
		Alpha:            alpha,
		Beta:             beta,
		Gamma:            gamma,
		Consensus:        cons,
		TriModal:         tri,
		PositionSize:     tri.PositionSize,
	}
	v.Summary = e.summarize(v, signal)

	e.logger.Debug().
		Str("symbol", snap.Symbol).
		Str("regime", string(reg.Regime)).
		Float64("adx", reg.ADX).
		Str("alpha_bias", string(alpha.Bias)).
		Str("beta_bias", string(beta.Bias)).
		Str("gamma_bias", string(gamma.Bias)).
		Bool("skip_trade", cons.SkipTrade).
		Str("position_size", string(tri.PositionSize)).
		Float64("quality", v.QualityScore).
		Msg("analysis complete")

	if cons.SkipTrade || tri.PositionSize == verdict.SizeAvoid {
		e.logger.Info().
			Str("symbol", snap.Symbol).
			Str("reason", v.QualityCapReason).
			Msg("trade vetoed")
	}

	return v
}

// target is the structural level in the trade direction
func (e *Engine) target(snap *market.MarketSnapshot, cons consensus.Result, bias market.Bias) float64 {
	switch bias {
	case market.BiasShort:
		return cons.Support
	case market.BiasLong:
		return cons.Resistance
	default:
		return snap.Price
	}
}

// summarize builds the human-readable verdict line. Pattern names go
// through the display mapping here and nowhere else.
func (e *Engine) summarize(v TradeVerdict, signal *patterns.Signal) string {
	var parts []string

	switch v.Bias {
	case market.BiasWait:
		parts = append(parts, "WAIT: "+v.QualityCapReason)
	case market.BiasNeutral:
		parts = append(parts, "no directional edge")
	default:
		parts = append(parts, string(v.Bias)+" setup, position size "+string(v.PositionSize))
	}

	parts = append(parts, string(v.Regime.Regime)+" regime")

	if signal != nil {
		parts = append(parts, patterns.DisplayName(signal.Name))
	}

	return strings.Join(parts, " | ")
}

// fingerprint gives Analyze a deterministic identity for a snapshot so that
// re-running the pipeline on the same input yields a byte-identical verdict.
func (e *Engine) fingerprint(snap *market.MarketSnapshot) []byte {
	var b strings.Builder
	b.WriteString(snap.Symbol)
	b.WriteString("|")
	b.WriteString(snap.AsOf.UTC().Format("2006-01-02T15:04:05.000Z"))
	if n := len(snap.Candles); n > 0 {
		b.WriteString("|")
		b.WriteString(snap.Candles[n-1].Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"))
	}
	return []byte(b.String())
}
