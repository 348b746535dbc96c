package dashboard

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"CryptoAnalyst/internal/model"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{64000.123, "$64,000.12"},
		{-1.5, "-$1.50"},
		{0, "$0.00"},
		{0.5, "$0.50"},
		{1234567.891, "$1,234,567.89"},
		{999.999, "$1,000.00"},
		{1e19, "$10,000,000,000,000,000,000.00"},
		{-2.5e19, "-$25,000,000,000,000,000,000.00"},
	}
	for _, tt := range tests {
		if got := FormatUSD(tt.in); got != tt.want {
			t.Errorf("FormatUSD(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1200, "1.2K"},
		{12000, "12K"},
		{123400, "123K"},
		{3400000, "3.4M"},
		{5.6e9, "5.6B"},
		{7.8e12, "7.8T"},
		{999999, "1M"},
		{0.04, "0.04"},
		{0.123, "0.12"},
		{-0.5, "-0.5"},
	}
	for _, tt := range tests {
		if got := FormatCompact(tt.in); got != tt.want {
			t.Errorf("FormatCompact(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTrendClass(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{model.TrendBullish + model.TrendAboveSMA50, ClassSuccess},
		{model.TrendBearish + model.TrendBelowSMA50, ClassDanger},
		{model.TrendNeutral + model.TrendAboveSMA50, ClassMuted},
		{"Bullish then Bearish", ClassDanger},
	}
	for _, tt := range tests {
		if got := TrendClass(tt.status); got != tt.want {
			t.Errorf("TrendClass(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestRSIClassAndWidth(t *testing.T) {
	tests := []struct {
		rsi   float64
		class string
		width float64
	}{
		{75, ClassDanger, 75},
		{70, ClassPrimary, 70},
		{30, ClassPrimary, 30},
		{29.9, ClassSuccess, 29.9},
		{120, ClassDanger, 100},
		{-5, ClassSuccess, 0},
	}
	for _, tt := range tests {
		if got := RSIClass(tt.rsi); got != tt.class {
			t.Errorf("RSIClass(%v) = %q, want %q", tt.rsi, got, tt.class)
		}
		if got := RSIWidth(tt.rsi); got != tt.width {
			t.Errorf("RSIWidth(%v) = %v, want %v", tt.rsi, got, tt.width)
		}
	}
}

func TestNewsDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mon, 01 Jan 2024 10:00:00 GMT", "1/1/2024"},
		{"Fri, 15 Mar 2024 23:30:00 +0000", "3/15/2024"},
		{"yesterday", "yesterday"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NewsDate(tt.in); got != tt.want {
			t.Errorf("NewsDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func sampleReport() *model.Report {
	return &model.Report{
		Symbol: "BTC-USD",
		MarketAnalysis: &model.MarketAnalysis{
			Price: 64000.12,
			Trend: model.Trend{
				Status: model.TrendBullish + model.TrendAboveSMA50,
				SMA50:  60000,
				SMA200: 50000,
			},
			SupportResistance: model.SupportResistance{Support: 58000, Resistance: 70000},
			Indicators: model.Indicators{
				RSI:    model.RSI{Value: 55.24, Signal: model.RSINeutral},
				Volume: model.Volume{Current: 3400000, SMA: 1200, Status: model.VolumeSpike},
			},
			History: []model.PricePoint{
				{Date: "2024-01-01", Price: 42000.5},
				{Date: "2024-01-02", Price: 43000},
			},
		},
		News: []model.NewsItem{
			{Title: "Bitcoin <b>surges</b>", Link: "https://example.com/a", PubDate: "Mon, 01 Jan 2024 10:00:00 GMT", Sentiment: model.SentimentPositive},
		},
	}
}

func TestNewView(t *testing.T) {
	v := NewView(sampleReport())

	if v.Price != "$64,000.12" {
		t.Errorf("Price = %q", v.Price)
	}
	if v.TrendClass != ClassSuccess {
		t.Errorf("TrendClass = %q", v.TrendClass)
	}
	if v.RSIValue != "55.2" || v.RSIWidth != "55.24%" || v.RSIClass != ClassPrimary {
		t.Errorf("RSI view = %q %q %q", v.RSIValue, v.RSIWidth, v.RSIClass)
	}
	if v.VolumeCurrent != "3.4M" || v.VolumeAverage != "1.2K" {
		t.Errorf("Volume view = %q %q", v.VolumeCurrent, v.VolumeAverage)
	}
	if !v.HasChart || v.ChartURL != "/api/chart/BTC-USD" {
		t.Errorf("chart = %v %q", v.HasChart, v.ChartURL)
	}
	if len(v.News) != 1 || v.News[0].Class != "positive" || v.News[0].Date != "1/1/2024" {
		t.Errorf("News = %+v", v.News)
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleReport()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		`id="displaySymbol">BTC-USD`,
		"$64,000.12",
		`class="badge success"`,
		`class="news-card positive"`,
		`target="_blank"`,
		`src="/api/chart/BTC-USD"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
	// headline markup is escaped, not injected
	if strings.Contains(html, "<b>surges</b>") {
		t.Error("headline HTML was not escaped")
	}
	if strings.Contains(html, `id="error" class="error"`) {
		t.Error("error panel should be hidden")
	}
}

func TestRender_NoHistoryOmitsChart(t *testing.T) {
	r := sampleReport()
	r.MarketAnalysis.History = nil

	var buf bytes.Buffer
	if err := Render(&buf, r); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(buf.String(), "priceChart") {
		t.Error("chart should be omitted without history")
	}
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderError(&buf, "NOPE"); err != nil {
		t.Fatalf("RenderError: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, `id="error" class="error"`) {
		t.Error("error panel should be visible")
	}
	if !strings.Contains(html, "Failed to fetch data") {
		t.Error("missing generic error message")
	}
	if strings.Contains(html, `id="dashboard"`) {
		t.Error("dashboard should be hidden on error")
	}
}

func TestNewPriceChart(t *testing.T) {
	line, err := NewPriceChart(sampleReport())
	if err != nil {
		t.Fatalf("NewPriceChart: %v", err)
	}
	if len(line.MultiSeries) != 3 {
		t.Fatalf("series = %d, want 3", len(line.MultiSeries))
	}
	names := []string{"Price", "Resistance", "Support"}
	for i, s := range line.MultiSeries {
		if s.Name != names[i] {
			t.Errorf("series[%d] = %q, want %q", i, s.Name, names[i])
		}
	}

	var buf bytes.Buffer
	if err := RenderChart(&buf, sampleReport()); err != nil {
		t.Fatalf("RenderChart: %v", err)
	}
	if !strings.Contains(buf.String(), "2024-01-02") {
		t.Error("chart page missing history dates")
	}
}

func TestNewPriceChart_NoHistory(t *testing.T) {
	r := sampleReport()
	r.MarketAnalysis.History = nil
	if _, err := NewPriceChart(r); !errors.Is(err, ErrNoHistory) {
		t.Errorf("err = %v, want ErrNoHistory", err)
	}
}
