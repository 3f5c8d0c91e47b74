package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config carries every tunable of the decision pipeline as an explicit,
// versioned struct. Nothing in the engine reads ambient state; varying any
// threshold for a test means passing a different Config.
type Config struct {
	Version string `yaml:"version" default:"1"`

	Regime       RegimeConfig       `yaml:"regime"`
	Patterns     PatternConfig      `yaml:"patterns"`
	Oscillators  OscillatorConfig   `yaml:"oscillators"`
	Consensus    ConsensusConfig    `yaml:"consensus"`
	SafetyFilter SafetyFilterConfig `yaml:"safety_filter"`
	TriModal     TriModalConfig     `yaml:"tri_modal"`
	Gate         GateConfig         `yaml:"gate"`
	Macro        MacroConfig        `yaml:"macro"`
	Server       ServerConfig       `yaml:"server"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// RegimeConfig holds the ADX step-function thresholds
type RegimeConfig struct {
	ADXPeriod   int     `yaml:"adx_period" default:"14" validate:"gt=0"`
	TrendingADX float64 `yaml:"trending_adx" default:"25" validate:"gt=0"`
	RangingADX  float64 `yaml:"ranging_adx" default:"20" validate:"gt=0,ltefield=TrendingADX"`
}

// PatternConfig holds pattern-detector tunables
type PatternConfig struct {
	// PeakTolerance is the band within which successive extrema count as
	// equal when confirming triple-top/bottom structure (0.02 = 2%).
	PeakTolerance float64 `yaml:"peak_tolerance" default:"0.02" validate:"gt=0,lt=1"`
	// ConfluenceBonus is added to the averaged strength when two
	// independently-detected signals agree on bias.
	ConfluenceBonus float64 `yaml:"confluence_bonus" default:"10" validate:"gte=0,lte=50"`
	// MinConsolidationBars is the minimum tight-range stretch after an
	// impulse before a flag counts as a continuation setup.
	MinConsolidationBars int `yaml:"min_consolidation_bars" default:"3" validate:"gt=0"`
	// GapATRMultiple is how many ATRs a single candle must travel to
	// qualify as a liquidity void in a continuous market.
	GapATRMultiple float64 `yaml:"gap_atr_multiple" default:"2.0" validate:"gt=0"`
	// MaxGapRetracement is the maximum share of the void candle's range
	// the following candle may retrace for the void to stay valid.
	MaxGapRetracement float64 `yaml:"max_gap_retracement" default:"0.35" validate:"gt=0,lt=1"`
}

// OscillatorConfig holds momentum-oscillator periods for the Beta layer
type OscillatorConfig struct {
	RSIPeriod  int `yaml:"rsi_period" default:"14" validate:"gt=0"`
	MACDFast   int `yaml:"macd_fast" default:"12" validate:"gt=0"`
	MACDSlow   int `yaml:"macd_slow" default:"26" validate:"gt=0,gtfield=MACDFast"`
	MACDSignal int `yaml:"macd_signal" default:"9" validate:"gt=0"`
}

// ConsensusConfig holds the regime-dependent Alpha weights. The Beta weight
// is always the complement, so each pair sums to 1.0 by construction.
type ConsensusConfig struct {
	TrendingAlphaWeight     float64 `yaml:"trending_alpha_weight" default:"0.70" validate:"gte=0,lte=1"`
	RangingAlphaWeight      float64 `yaml:"ranging_alpha_weight" default:"0.30" validate:"gte=0,lte=1"`
	TransitionalAlphaWeight float64 `yaml:"transitional_alpha_weight" default:"0.50" validate:"gte=0,lte=1"`
	// Stop distance from the structural level, as a fraction of price.
	// TRENDING stops hug the level; RANGING stops sit wider.
	TrendingStopPct float64 `yaml:"trending_stop_pct" default:"0.005" validate:"gt=0,lt=1"`
	RangingStopPct  float64 `yaml:"ranging_stop_pct" default:"0.015" validate:"gt=0,lt=1"`
}

// SafetyFilterConfig holds the neural-confidence gate applied in TRENDING
// regimes. Thresholds compare against Beta's raw [0,1] confidence, not the
// canonical [0,100] scale.
type SafetyFilterConfig struct {
	BaseThreshold float64 `yaml:"base_threshold" default:"0.51" validate:"gt=0,lt=1"`
	// Relaxation lowers the effective threshold, granted only when Alpha
	// confidence exceeds RelaxAlphaConfidence.
	Relaxation           float64 `yaml:"relaxation" default:"0.05" validate:"gte=0,lt=1"`
	RelaxAlphaConfidence float64 `yaml:"relax_alpha_confidence" default:"85" validate:"gte=0,lte=100"`
}

// TriModalConfig holds the nominal layer split and the position-size ladder
type TriModalConfig struct {
	AlphaWeight float64 `yaml:"alpha_weight" default:"0.40" validate:"gte=0,lte=1"`
	BetaWeight  float64 `yaml:"beta_weight" default:"0.35" validate:"gte=0,lte=1"`
	GammaWeight float64 `yaml:"gamma_weight" default:"0.25" validate:"gte=0,lte=1"`

	FullSizeConfidence    float64 `yaml:"full_size_confidence" default:"80" validate:"gte=0,lte=100"`
	ThreeQuarterSizeFloor float64 `yaml:"three_quarter_size_floor" default:"65" validate:"gte=0,lte=100"`
	HalfSizeFloor         float64 `yaml:"half_size_floor" default:"50" validate:"gte=0,lte=100"`
}

// GateConfig holds the consistency-gate quality ceilings
type GateConfig struct {
	SkipTradeCap float64 `yaml:"skip_trade_cap" default:"35" validate:"gte=0,lte=100"`
	AvoidCap     float64 `yaml:"avoid_cap" default:"30" validate:"gte=0,lte=100"`
	ConflictCap  float64 `yaml:"conflict_cap" default:"50" validate:"gte=0,lte=100"`
}

// MacroConfig holds macro-catalyst proximity windows
type MacroConfig struct {
	// WindowDays is the lookback/lookahead window around the snapshot time.
	WindowDays int `yaml:"window_days" default:"3" validate:"gt=0"`
	// OverrideWindowMinutes is the no-trade zone before a HIGH-impact release.
	OverrideWindowMinutes int `yaml:"override_window_minutes" default:"60" validate:"gt=0"`
}

// ServerConfig holds the HTTP API settings
type ServerConfig struct {
	Host string `yaml:"host" default:"0.0.0.0"`
	Port int    `yaml:"port" default:"8090" validate:"gt=0,lt=65536"`
	// RateLimit is max analyze requests per client per minute.
	RateLimit int `yaml:"rate_limit" default:"120" validate:"gt=0"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level   string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
	Console bool   `yaml:"console" default:"true"`
}

// Default returns a Config populated with the documented tunables
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		// Tags are static; a failure here is a programming error.
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return cfg
}

// Load reads a YAML config file, fills unset fields with defaults and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks all tunables against their declared constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	total := c.TriModal.AlphaWeight + c.TriModal.BetaWeight + c.TriModal.GammaWeight
	if total < 0.99 || total > 1.01 {
		return fmt.Errorf("tri-modal weights must sum to 1.0, got %.2f", total)
	}

	return nil
}
