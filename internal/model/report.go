package model

import "time"

// Report is the full analysis returned for a symbol.
type Report struct {
	Symbol         string          `json:"symbol"`
	MarketAnalysis *MarketAnalysis `json:"market_analysis"`
	News           []NewsItem      `json:"news"`
	Source         string          `json:"source,omitempty"`
	GeneratedAt    time.Time       `json:"generated_at"`

	// NewsError holds the news fetch failure, if any. News is then empty.
	NewsError string `json:"-"`
}
