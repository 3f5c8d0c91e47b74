package patterns

import (
	"zikalyze-engine/internal/market"
)

// Reversal family: triple-top/bottom and head-and-shoulders style
// structures built from local extrema within a tolerance band.

// detectReversal scans for multi-peak reversal structure. Requires at least
// five candles so that three distinct extrema can exist with separation.
func (d *Detector) detectReversal(candles []market.Candle) *Signal {
	if len(candles) < 5 {
		return nil
	}

	highs := localHighs(candles)
	lows := localLows(candles)

	if s := d.classifyPeaks(highs, true); s != nil {
		return s
	}
	if s := d.classifyPeaks(lows, false); s != nil {
		return s
	}

	return nil
}

// classifyPeaks inspects the last three extrema. Three near-equal peaks make
// a triple top/bottom; a dominant middle peak flanked by two near-equal
// shoulders makes a head-and-shoulders.
func (d *Detector) classifyPeaks(peaks []float64, tops bool) *Signal {
	if len(peaks) < 3 {
		return nil
	}

	p1, p2, p3 := peaks[len(peaks)-3], peaks[len(peaks)-2], peaks[len(peaks)-1]

	bias := market.BiasShort
	if !tops {
		bias = market.BiasLong
	}

	// Triple structure: all three within the tolerance band of their mean.
	mean := (p1 + p2 + p3) / 3
	if mean > 0 &&
		withinBand(p1, mean, d.cfg.PeakTolerance) &&
		withinBand(p2, mean, d.cfg.PeakTolerance) &&
		withinBand(p3, mean, d.cfg.PeakTolerance) {

		name, desc := "triple_top", "three failed attempts at the same resistance"
		if !tops {
			name, desc = "triple_bottom", "three successful defenses of the same support"
		}

		return &Signal{
			Name:        name,
			Family:      FamilyReversal,
			Bias:        bias,
			Strength:    72,
			Description: desc,
		}
	}

	// Head and shoulders: middle extremum dominates, shoulders near-equal.
	shouldersMatch := withinBand(p1, p3, d.cfg.PeakTolerance)
	headDominates := false
	if tops {
		headDominates = p2 > p1*(1+d.cfg.PeakTolerance) && p2 > p3*(1+d.cfg.PeakTolerance)
	} else {
		headDominates = p2 < p1*(1-d.cfg.PeakTolerance) && p2 < p3*(1-d.cfg.PeakTolerance)
	}

	if shouldersMatch && headDominates {
		name, desc := "head_and_shoulders", "dominant peak flanked by matching shoulders"
		if !tops {
			name, desc = "inverse_head_and_shoulders", "dominant trough flanked by matching shoulders"
		}

		return &Signal{
			Name:        name,
			Family:      FamilyReversal,
			Bias:        bias,
			Strength:    76,
			Description: desc,
		}
	}

	return nil
}

// localHighs returns highs that exceed both neighbors
func localHighs(candles []market.Candle) []float64 {
	var peaks []float64
	for i := 1; i < len(candles)-1; i++ {
		if candles[i].High >= candles[i-1].High && candles[i].High >= candles[i+1].High {
			peaks = append(peaks, candles[i].High)
		}
	}
	return peaks
}

// localLows returns lows that undercut both neighbors
func localLows(candles []market.Candle) []float64 {
	var troughs []float64
	for i := 1; i < len(candles)-1; i++ {
		if candles[i].Low <= candles[i-1].Low && candles[i].Low <= candles[i+1].Low {
			troughs = append(troughs, candles[i].Low)
		}
	}
	return troughs
}

// withinBand reports whether a is within tolerance of b (relative to b)
func withinBand(a, b, tolerance float64) bool {
	if b == 0 {
		return false
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff/b <= tolerance
}
