package calculator

import (
	"errors"

	"CryptoAnalyst/internal/model"
)

const (
	RSIOverboughtLevel = 70.0
	RSIOversoldLevel   = 30.0
)

// CalculateRSI computes RSI from the simple mean of gains and losses over the
// last `period` close-to-close changes (no Wilder smoothing).
// Requires at least period+1 bars. Returns 50.0 if data is insufficient.
func CalculateRSI(bars []model.OHLCV, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < period+1 {
		return 50.0, nil // default when data insufficient
	}

	closes := extractCloses(bars)
	var gain, loss float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gain += change
		} else {
			loss -= change
		}
	}
	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)

	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0, nil // flat series
		}
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}

// RSISignal maps an RSI value to its trading signal label.
func RSISignal(rsi float64) string {
	switch {
	case rsi > RSIOverboughtLevel:
		return model.RSIOverbought
	case rsi < RSIOversoldLevel:
		return model.RSIOversold
	default:
		return model.RSINeutral
	}
}
