package calculator

import (
	"time"

	"CryptoAnalyst/internal/model"
)

// ClassifyTrend describes the SMA50/SMA200 relationship and where price sits against SMA50.
func ClassifyTrend(price, sma50, sma200 float64) string {
	status := model.TrendNeutral
	if sma50 > sma200 {
		status = model.TrendBullish
	} else if sma50 < sma200 {
		status = model.TrendBearish
	}

	if price > sma50 {
		status += model.TrendAboveSMA50
	} else {
		status += model.TrendBelowSMA50
	}
	return status
}

// BuildHistory returns the last n closes as dated chart points (UTC dates).
func BuildHistory(bars []model.OHLCV, n int) []model.PricePoint {
	start := len(bars) - n
	if start < 0 {
		start = 0
	}
	points := make([]model.PricePoint, 0, len(bars)-start)
	for _, b := range bars[start:] {
		points = append(points, model.PricePoint{
			Date:  b.Time.UTC().Format(time.DateOnly),
			Price: b.Close,
		})
	}
	return points
}
