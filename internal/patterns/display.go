package patterns

// displayNames maps internal pattern identifiers to the strings shown to
// users. Presentation only: nothing in scoring reads this table.
var displayNames = map[string]string{
	"triple_top":                  "Triple Top",
	"triple_bottom":               "Triple Bottom",
	"head_and_shoulders":          "Head & Shoulders",
	"inverse_head_and_shoulders":  "Inverse Head & Shoulders",
	"bull_flag":                   "Bull Flag",
	"bear_flag":                   "Bear Flag",
	"momentum_run":                "Momentum Surge",
	"exhaustion":                  "Momentum Exhaustion",
	"liquidity_void_up":           "Liquidity Void (Up)",
	"liquidity_void_down":         "Liquidity Void (Down)",
	"bullish_engulfing":           "Bullish Engulfing",
	"bearish_engulfing":           "Bearish Engulfing",
	"hammer":                      "Hammer",
	"shooting_star":               "Shooting Star",
	"doji":                        "Doji",
}

// DisplayName returns the user-facing name of a pattern identifier, falling
// back to the identifier itself for unknown patterns.
func DisplayName(name string) string {
	if display, ok := displayNames[name]; ok {
		return display
	}
	return name
}
