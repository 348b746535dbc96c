package collector

import (
	"context"
	"fmt"
	"log"

	"CryptoAnalyst/internal/calculator"
	"CryptoAnalyst/internal/model"
)

const (
	DefaultLookbackDays = 365
	HistoryDays         = 90
	RSIPeriod           = 14
	LevelWindow         = 20
	VolumeWindow        = 20
)

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher      Fetcher
	LookbackDays int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, lookbackDays int) *Collector {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	return &Collector{Fetcher: fetcher, LookbackDays: lookbackDays}
}

// FetchSeries loads the daily bars for a symbol.
func (c *Collector) FetchSeries(ctx context.Context, symbol string) (*model.PriceSeries, error) {
	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, c.LookbackDays)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("fetch daily bars for %s: %w", symbol, ErrNoData)
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Source:    c.Fetcher.Name(),
		DailyBars: bars,
	}, nil
}

// Analyze computes all indicators for a non-empty series. Indicators that
// cannot be computed fall back to neutral values and are logged.
func Analyze(series *model.PriceSeries) *model.MarketAnalysis {
	bars := series.DailyBars
	currentPrice := series.Last().Close
	ma := &model.MarketAnalysis{Price: currentPrice}

	// SMA50
	if sma, err := calculator.CalculateSMA50(bars); err != nil {
		log.Printf("[WARN] %s SMA50 calculation failed: %v, using current price", series.Symbol, err)
		ma.Trend.SMA50 = currentPrice
	} else {
		ma.Trend.SMA50 = sma
	}

	// SMA200
	if sma, err := calculator.CalculateSMA200(bars); err != nil {
		log.Printf("[WARN] %s SMA200 calculation failed: %v, using current price", series.Symbol, err)
		ma.Trend.SMA200 = currentPrice
	} else {
		ma.Trend.SMA200 = sma
	}
	ma.Trend.Status = calculator.ClassifyTrend(currentPrice, ma.Trend.SMA50, ma.Trend.SMA200)

	// Support / resistance
	if sup, res, err := calculator.CalculateSupportResistance(bars, LevelWindow); err != nil {
		log.Printf("[WARN] %s support/resistance calculation failed: %v", series.Symbol, err)
		ma.SupportResistance = model.SupportResistance{Support: currentPrice, Resistance: currentPrice}
	} else {
		ma.SupportResistance = model.SupportResistance{Support: sup, Resistance: res}
	}

	// RSI
	if len(bars) < RSIPeriod+1 {
		log.Printf("[WARN] %s RSI needs %d bars, have %d, defaulting to 50", series.Symbol, RSIPeriod+1, len(bars))
	}
	rsi, err := calculator.CalculateRSI(bars, RSIPeriod)
	if err != nil {
		log.Printf("[WARN] %s RSI calculation failed: %v, defaulting to 50", series.Symbol, err)
		rsi = 50
	}
	ma.Indicators.RSI = model.RSI{Value: rsi, Signal: calculator.RSISignal(rsi)}

	// Volume
	if vol, err := calculator.AnalyzeVolume(bars, VolumeWindow); err != nil {
		log.Printf("[WARN] %s volume analysis failed: %v", series.Symbol, err)
		last := series.Last().Volume
		ma.Indicators.Volume = model.Volume{Current: last, SMA: last, Status: model.VolumeNormal}
	} else {
		ma.Indicators.Volume = vol
	}

	ma.History = calculator.BuildHistory(bars, HistoryDays)
	return ma
}
