package collector

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidSymbol is returned for tickers that cannot be mapped to a market.
var ErrInvalidSymbol = errors.New("invalid symbol")

var symbolPattern = regexp.MustCompile(`^[A-Z0-9]{1,15}([-/][A-Z0-9]{1,10})?$`)

// NormalizeSymbol trims and upper-cases a user-entered ticker and validates it.
func NormalizeSymbol(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if !symbolPattern.MatchString(s) {
		return "", ErrInvalidSymbol
	}
	return s, nil
}

// DisplaySymbol appends the default -USD quote when the ticker has none.
func DisplaySymbol(symbol string) string {
	if strings.ContainsAny(symbol, "-/") {
		return symbol
	}
	return symbol + "-USD"
}

// SplitSymbol returns base and quote assets. A bare ticker or a USD quote maps to USDT.
func SplitSymbol(symbol string) (base, quote string) {
	idx := strings.IndexAny(symbol, "-/")
	if idx < 0 {
		return symbol, "USDT"
	}
	base, quote = symbol[:idx], symbol[idx+1:]
	if quote == "USD" {
		quote = "USDT"
	}
	return base, quote
}

// BinancePair maps BTC-USD, BTC/USDT or BTC to BTCUSDT.
func BinancePair(symbol string) string {
	base, quote := SplitSymbol(symbol)
	return base + quote
}

// BaseAsset returns the asset used for news queries, e.g. HBAR for HBAR-USD.
func BaseAsset(symbol string) string {
	base, _ := SplitSymbol(symbol)
	return base
}

// YahooSymbol maps to Yahoo's dash-quoted tickers. Yahoo quotes crypto in USD.
func YahooSymbol(symbol string) string {
	base, quote := SplitSymbol(symbol)
	if quote == "USDT" {
		quote = "USD"
	}
	return base + "-" + quote
}
