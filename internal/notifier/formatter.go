package notifier

import (
	"fmt"
	"html"
	"strings"

	"CryptoAnalyst/internal/dashboard"
	"CryptoAnalyst/internal/model"
)

// FormatReport formats an analysis report into a Telegram message.
func FormatReport(r *model.Report) string {
	ma := r.MarketAnalysis
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", html.EscapeString(r.Symbol), dashboard.FormatUSD(ma.Price)))

	b.WriteString(fmt.Sprintf("%s <b>Trend:</b> %s\n", trendIcon(ma.Trend.Status), html.EscapeString(ma.Trend.Status)))
	b.WriteString(fmt.Sprintf("SMA50: %s | SMA200: %s\n\n",
		dashboard.FormatUSD(ma.Trend.SMA50), dashboard.FormatUSD(ma.Trend.SMA200)))

	b.WriteString(fmt.Sprintf("🔺 Resistance: %s\n", dashboard.FormatUSD(ma.SupportResistance.Resistance)))
	b.WriteString(fmt.Sprintf("🔻 Support: %s\n\n", dashboard.FormatUSD(ma.SupportResistance.Support)))

	b.WriteString(fmt.Sprintf("RSI(14): %.1f (%s)\n", ma.Indicators.RSI.Value, ma.Indicators.RSI.Signal))
	b.WriteString(fmt.Sprintf("Volume: %s vs avg %s (%s)\n",
		dashboard.FormatCompact(ma.Indicators.Volume.Current),
		dashboard.FormatCompact(ma.Indicators.Volume.SMA),
		ma.Indicators.Volume.Status))

	if len(r.News) > 0 {
		b.WriteString("\n📰 <b>News</b>\n")
		for _, n := range r.News {
			b.WriteString(fmt.Sprintf("%s <a href=\"%s\">%s</a>\n",
				sentimentIcon(n.Sentiment), html.EscapeString(n.Link), html.EscapeString(n.Title)))
		}
	}
	return b.String()
}

// FormatAlert formats an RSI zone change.
func FormatAlert(r *model.Report, previous string) string {
	ma := r.MarketAnalysis
	icon := "🟢"
	if ma.Indicators.RSI.Signal == model.RSIOverbought {
		icon = "🔴"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>RSI alert</b> | %s\n\n", icon, html.EscapeString(r.Symbol)))
	b.WriteString(fmt.Sprintf("RSI(14): %.1f → %s\n", ma.Indicators.RSI.Value, ma.Indicators.RSI.Signal))
	if previous != "" {
		b.WriteString(fmt.Sprintf("Previous zone: %s\n", previous))
	}
	b.WriteString(fmt.Sprintf("Price: %s\n", dashboard.FormatUSD(ma.Price)))
	b.WriteString(fmt.Sprintf("Support %s | Resistance %s\n",
		dashboard.FormatUSD(ma.SupportResistance.Support), dashboard.FormatUSD(ma.SupportResistance.Resistance)))
	return b.String()
}

// FormatWatchlist lists the symbols refreshed on schedule.
func FormatWatchlist(symbols []string) string {
	if len(symbols) == 0 {
		return "Watchlist is empty."
	}
	var b strings.Builder
	b.WriteString("👀 <b>Watchlist</b>\n\n")
	for _, s := range symbols {
		b.WriteString("• " + html.EscapeString(s) + "\n")
	}
	return b.String()
}

// FormatHelp lists the supported commands.
func FormatHelp() string {
	return "Available commands:\n" +
		"• /analyze &lt;SYMBOL&gt; - full analysis, e.g. /analyze BTC-USD\n" +
		"• /watchlist - symbols refreshed on schedule"
}

func trendIcon(status string) string {
	switch {
	case strings.Contains(status, "Bearish"):
		return "📉"
	case strings.Contains(status, "Bullish"):
		return "📈"
	default:
		return "➖"
	}
}

func sentimentIcon(label string) string {
	switch label {
	case model.SentimentPositive:
		return "🟢"
	case model.SentimentNegative:
		return "🔴"
	default:
		return "⚪"
	}
}
