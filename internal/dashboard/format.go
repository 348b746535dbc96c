package dashboard

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatUSD renders an amount as US currency, e.g. "$64,000.12" or "-$1.50".
func FormatUSD(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	_, frac, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + "$" + humanize.BigComma(d.BigInt()) + "." + frac
}

var compactUnits = []struct {
	size   float64
	suffix string
}{
	{1, ""},
	{1e3, "K"},
	{1e6, "M"},
	{1e9, "B"},
	{1e12, "T"},
}

// FormatCompact renders a number in short compact notation: 999, 1.2K, 12K, 3.4M, 5.6B.
// Values below 10 of their unit keep one decimal and larger ones are whole.
// Values below 1 keep two significant digits, e.g. 0.04 or 0.12.
func FormatCompact(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	i := 0
	for i+1 < len(compactUnits) && math.Abs(v) >= compactUnits[i+1].size {
		i++
	}
	for {
		scaled := decimal.NewFromFloat(v / compactUnits[i].size)
		places := int32(0)
		switch abs := math.Abs(v / compactUnits[i].size); {
		case abs > 0 && abs < 1:
			places = int32(1 - math.Floor(math.Log10(abs)))
		case abs < 10:
			places = 1
		}
		rounded := scaled.Round(places)
		// 999.96 rounds up into the next unit.
		if rounded.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) && i+1 < len(compactUnits) {
			i++
			continue
		}
		return rounded.String() + compactUnits[i].suffix
	}
}
