package calculator

import (
	"errors"
	"math"

	"CryptoAnalyst/internal/model"
)

// CalculateSupportResistance derives recent support and resistance from a
// centered rolling min of lows and max of highs.
//
// The rolling window for position i covers [i-window/2, i+(window-1)/2] and is
// only valid when it lies fully inside the series. The levels are the min/max
// of the valid rolling values among the last window+1 positions. Short series
// fall back to the plain min low / max high.
func CalculateSupportResistance(bars []model.OHLCV, window int) (support, resistance float64, err error) {
	if window <= 0 {
		return 0, 0, errors.New("window must be positive")
	}
	if len(bars) == 0 {
		return 0, 0, errors.New("no daily bars provided")
	}

	lows := make([]float64, len(bars))
	highs := make([]float64, len(bars))
	for i, b := range bars {
		lows[i] = b.Low
		highs[i] = b.High
	}

	rollMin := centeredRolling(lows, window, math.Min)
	rollMax := centeredRolling(highs, window, math.Max)

	start := len(bars) - window - 1
	if start < 0 {
		start = 0
	}
	support = math.Inf(1)
	resistance = math.Inf(-1)
	for i := start; i < len(bars); i++ {
		if !math.IsNaN(rollMin[i]) && rollMin[i] < support {
			support = rollMin[i]
		}
		if !math.IsNaN(rollMax[i]) && rollMax[i] > resistance {
			resistance = rollMax[i]
		}
	}

	if math.IsInf(support, 1) || math.IsInf(resistance, -1) {
		support, resistance = seriesRange(lows, highs)
	}
	return support, resistance, nil
}

// centeredRolling applies reduce over a centered window. Positions without a
// full window are NaN.
func centeredRolling(values []float64, window int, reduce func(a, b float64) float64) []float64 {
	out := make([]float64, len(values))
	before := window / 2
	after := window - before - 1
	for i := range values {
		lo, hi := i-before, i+after
		if lo < 0 || hi >= len(values) {
			out[i] = math.NaN()
			continue
		}
		acc := values[lo]
		for j := lo + 1; j <= hi; j++ {
			acc = reduce(acc, values[j])
		}
		out[i] = acc
	}
	return out
}

func seriesRange(lows, highs []float64) (low, high float64) {
	low = math.Inf(1)
	high = math.Inf(-1)
	for i := range lows {
		low = math.Min(low, lows[i])
		high = math.Max(high, highs[i])
	}
	return low, high
}
