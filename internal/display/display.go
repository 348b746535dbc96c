package display

import (
	"fmt"
	"io"
	"strings"

	"CryptoAnalyst/internal/dashboard"
	"CryptoAnalyst/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorBlue    = lipgloss.Color("#3B82F6")
	colorCyan    = lipgloss.Color("#06B6D4")
	colorMagenta = lipgloss.Color("#D946EF")
	colorGreen   = lipgloss.Color("#10B981")
	colorRed     = lipgloss.Color("#EF4444")
	colorYellow  = lipgloss.Color("#F59E0B")
	colorWhite   = lipgloss.Color("#F9FAFB")

	infoStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	titleStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	metricStyle = lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
	valueStyle  = lipgloss.NewStyle().Foreground(colorMagenta).Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			Foreground(colorWhite).
			Padding(0, 1).
			Width(80)
)

// Info renders a status line, e.g. "Analyzing BTC-USD...".
func Info(msg string) string { return infoStyle.Render(msg) }

// Error renders an error line.
func Error(msg string) string { return errorStyle.Render(msg) }

// SentimentColor maps Positive to green, Negative to red and anything else to yellow.
func SentimentColor(label string) lipgloss.Color {
	switch label {
	case model.SentimentPositive:
		return colorGreen
	case model.SentimentNegative:
		return colorRed
	default:
		return colorYellow
	}
}

// MarketTable renders the indicator summary for a symbol.
func MarketTable(symbol string, ma *model.MarketAnalysis) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBlue)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return metricStyle
			default:
				return valueStyle
			}
		}).
		Headers("Metric", "Value").
		Row("Current Price", dashboard.FormatUSD(ma.Price)).
		Row("Trend", ma.Trend.Status).
		Row("Support (Recent)", dashboard.FormatUSD(ma.SupportResistance.Support)).
		Row("Resistance (Recent)", dashboard.FormatUSD(ma.SupportResistance.Resistance)).
		Row("SMA50", dashboard.FormatUSD(ma.Trend.SMA50)).
		Row("SMA200", dashboard.FormatUSD(ma.Trend.SMA200)).
		Row("RSI (14)", fmt.Sprintf("%.1f %s", ma.Indicators.RSI.Value, ma.Indicators.RSI.Signal)).
		Row("Volume", fmt.Sprintf("%s (%s)", dashboard.FormatCompact(ma.Indicators.Volume.Current), ma.Indicators.Volume.Status))

	return titleStyle.Render("Market Analysis: "+symbol) + "\n" + t.Render()
}

// NewsPanel renders one headline in a box coloured by its sentiment.
func NewsPanel(item model.NewsItem) string {
	var b strings.Builder
	b.WriteString("Read Article: " + item.Link + "\n")
	b.WriteString("Title: " + item.Title + "\n")
	b.WriteString("Published: " + item.PubDate + "\n")
	b.WriteString(fmt.Sprintf("Sentiment: %s (%.2f)", item.Sentiment, item.Polarity))
	return panelStyle.BorderForeground(SentimentColor(item.Sentiment)).Render(b.String())
}

// Report writes the full terminal report. News failures are printed but do not fail the report.
func Report(w io.Writer, r *model.Report) {
	fmt.Fprintln(w, MarketTable(r.Symbol, r.MarketAnalysis))
	fmt.Fprintln(w)

	switch {
	case r.NewsError != "":
		fmt.Fprintln(w, Error("Error fetching news: "+r.NewsError))
	case len(r.News) == 0:
		fmt.Fprintln(w, "No recent news found.")
	default:
		for _, item := range r.News {
			fmt.Fprintln(w, NewsPanel(item))
		}
	}
}
