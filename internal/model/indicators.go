package model

// Trend labels.
const (
	TrendBullish    = "Bullish (Golden Cross context)"
	TrendBearish    = "Bearish (Death Cross context)"
	TrendNeutral    = "Neutral"
	TrendAboveSMA50 = " | Price above SMA50"
	TrendBelowSMA50 = " | Price below SMA50"
	RSIOverbought   = "Overbought (Sell Warning)"
	RSIOversold     = "Oversold (Buy Signal)"
	RSINeutral      = "Neutral"
	VolumeSpike     = "High (Spike)"
	VolumeLow       = "Low"
	VolumeNormal    = "Normal"
)

// MarketAnalysis holds all computed technical indicators for one symbol.
type MarketAnalysis struct {
	Price             float64           `json:"price"`
	Trend             Trend             `json:"trend"`
	SupportResistance SupportResistance `json:"support_resistance"`
	Indicators        Indicators        `json:"indicators"`
	History           []PricePoint      `json:"history"`
}

type Trend struct {
	Status string  `json:"status"`
	SMA50  float64 `json:"sma50"`
	SMA200 float64 `json:"sma200"`
}

type SupportResistance struct {
	Support    float64 `json:"support"`
	Resistance float64 `json:"resistance"`
}

type Indicators struct {
	RSI    RSI    `json:"rsi"`
	Volume Volume `json:"volume"`
}

type RSI struct {
	Value  float64 `json:"value"`
	Signal string  `json:"signal"`
}

type Volume struct {
	Current float64 `json:"current"`
	SMA     float64 `json:"sma"`
	Status  string  `json:"status"`
}

// PricePoint is one entry of the chart history.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}
