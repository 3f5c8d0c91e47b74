package market

import "time"

// Bias represents the directional opinion of a layer or verdict
type Bias string

const (
	BiasLong    Bias = "LONG"
	BiasShort   Bias = "SHORT"
	BiasNeutral Bias = "NEUTRAL"
	// BiasWait is only ever produced by the consistency gate as the
	// non-actionable headline of a vetoed verdict. Layers never emit it.
	BiasWait Bias = "WAIT"
)

// Opposite returns the inverse directional bias. NEUTRAL and WAIT map to themselves.
func (b Bias) Opposite() Bias {
	switch b {
	case BiasLong:
		return BiasShort
	case BiasShort:
		return BiasLong
	}
	return b
}

// Directional reports whether the bias points long or short.
func (b Bias) Directional() bool {
	return b == BiasLong || b == BiasShort
}

// MacroImpact classifies the expected severity of a scheduled macro event
type MacroImpact string

const (
	ImpactHigh   MacroImpact = "HIGH"
	ImpactMedium MacroImpact = "MEDIUM"
	ImpactLow    MacroImpact = "LOW"
)

// MacroEffect is the calendar provider's expected market reaction
type MacroEffect string

const (
	EffectBullish   MacroEffect = "BULLISH"
	EffectBearish   MacroEffect = "BEARISH"
	EffectVolatile  MacroEffect = "VOLATILE"
	EffectUncertain MacroEffect = "UNCERTAIN"
)

// Candle is a single OHLCV bar. Candle slices are always ordered oldest to newest.
type Candle struct {
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
	Timestamp time.Time `json:"timestamp"`
}

// Body returns the absolute candle body size
func (c Candle) Body() float64 {
	if c.Close >= c.Open {
		return c.Close - c.Open
	}
	return c.Open - c.Close
}

// Range returns the full high-low span
func (c Candle) Range() float64 {
	return c.High - c.Low
}

// UpperWick returns the distance from body top to high
func (c Candle) UpperWick() float64 {
	if c.Close >= c.Open {
		return c.High - c.Close
	}
	return c.High - c.Open
}

// LowerWick returns the distance from body bottom to low
func (c Candle) LowerWick() float64 {
	if c.Close >= c.Open {
		return c.Open - c.Low
	}
	return c.Close - c.Low
}

// Bullish reports whether the candle closed above its open
func (c Candle) Bullish() bool {
	return c.Close > c.Open
}

// Bearish reports whether the candle closed below its open
func (c Candle) Bearish() bool {
	return c.Close < c.Open
}

// MacroCatalyst is a scheduled macro event from the calendar provider.
// The calendar is read-only to the engine and pre-sorted by date.
type MacroCatalyst struct {
	Event           string      `json:"event"`
	Date            time.Time   `json:"date"`
	Impact          MacroImpact `json:"impact"`
	ExpectedEffect  MacroEffect `json:"expected_effect"`
	Rescheduled     bool        `json:"rescheduled,omitempty"`
	DateUnconfirmed bool        `json:"date_unconfirmed,omitempty"`
}

// MarketSnapshot is the immutable input to one analysis call.
// Candles are ordered oldest to newest over a bounded window.
type MarketSnapshot struct {
	Symbol        string          `json:"symbol"`
	Price         float64         `json:"price"`
	High24h       float64         `json:"high_24h"`
	Low24h        float64         `json:"low_24h"`
	Volume        float64         `json:"volume"`
	Candles       []Candle        `json:"candles"`
	MacroCalendar []MacroCatalyst `json:"macro_calendar,omitempty"`
	// AsOf anchors macro proximity checks so identical snapshots always
	// produce identical verdicts regardless of wall-clock time.
	AsOf time.Time `json:"as_of"`
}
