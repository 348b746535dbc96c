package dashboard

import (
	"fmt"
	"math"
	"strings"
	"time"

	"CryptoAnalyst/internal/model"
)

// Colour classes used by the stylesheet.
const (
	ClassSuccess = "success"
	ClassDanger  = "danger"
	ClassMuted   = "muted"
	ClassPrimary = "primary"
)

// GenericError is shown in place of the dashboard when a report cannot be produced.
const GenericError = "Failed to fetch data. Please check the symbol and try again."

// View is the display-ready form of a report.
type View struct {
	Symbol     string
	Price      string
	Trend      string
	TrendClass string
	Resistance string
	Support    string
	SMA50      string
	SMA200     string

	RSIValue  string
	RSISignal string
	RSIWidth  string
	RSIClass  string

	VolumeCurrent string
	VolumeAverage string
	VolumeStatus  string

	News     []NewsCard
	HasChart bool
	ChartURL string

	GeneratedAt string
}

// NewsCard is one headline card.
type NewsCard struct {
	Title     string
	Link      string
	Date      string
	Sentiment string
	Class     string
}

// NewView builds the view for a report.
func NewView(r *model.Report) View {
	ma := r.MarketAnalysis
	v := View{
		Symbol:        r.Symbol,
		Price:         FormatUSD(ma.Price),
		Trend:         ma.Trend.Status,
		TrendClass:    TrendClass(ma.Trend.Status),
		Resistance:    FormatUSD(ma.SupportResistance.Resistance),
		Support:       FormatUSD(ma.SupportResistance.Support),
		SMA50:         FormatUSD(ma.Trend.SMA50),
		SMA200:        FormatUSD(ma.Trend.SMA200),
		RSIValue:      fmt.Sprintf("%.1f", ma.Indicators.RSI.Value),
		RSISignal:     ma.Indicators.RSI.Signal,
		RSIWidth:      fmt.Sprintf("%g%%", RSIWidth(ma.Indicators.RSI.Value)),
		RSIClass:      RSIClass(ma.Indicators.RSI.Value),
		VolumeCurrent: FormatCompact(ma.Indicators.Volume.Current),
		VolumeAverage: FormatCompact(ma.Indicators.Volume.SMA),
		VolumeStatus:  ma.Indicators.Volume.Status,
		HasChart:      len(ma.History) > 0,
		ChartURL:      "/api/chart/" + r.Symbol,
		News:          make([]NewsCard, 0, len(r.News)),
	}
	if !r.GeneratedAt.IsZero() {
		v.GeneratedAt = r.GeneratedAt.UTC().Format(time.RFC1123)
	}
	for _, n := range r.News {
		v.News = append(v.News, NewsCard{
			Title:     n.Title,
			Link:      n.Link,
			Date:      NewsDate(n.PubDate),
			Sentiment: n.Sentiment,
			Class:     strings.ToLower(n.Sentiment),
		})
	}
	return v
}

// TrendClass colours a trend label. Bearish is checked last and wins.
func TrendClass(status string) string {
	class := ClassMuted
	if strings.Contains(status, "Bullish") {
		class = ClassSuccess
	}
	if strings.Contains(status, "Bearish") {
		class = ClassDanger
	}
	return class
}

// RSIClass colours the RSI gauge by zone.
func RSIClass(rsi float64) string {
	switch {
	case rsi > 70:
		return ClassDanger
	case rsi < 30:
		return ClassSuccess
	default:
		return ClassPrimary
	}
}

// RSIWidth is the gauge fill percentage, clamped to [0, 100].
func RSIWidth(rsi float64) float64 {
	if math.IsNaN(rsi) {
		return 0
	}
	return math.Max(0, math.Min(100, rsi))
}

var pubDateLayouts = []string{
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	time.RFC3339,
}

// NewsDate renders a feed date as M/D/YYYY, or returns it unchanged when unparsable.
func NewsDate(raw string) string {
	s := strings.TrimSpace(raw)
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format("1/2/2006")
		}
	}
	return raw
}
