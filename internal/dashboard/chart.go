package dashboard

import (
	"errors"
	"fmt"
	"io"

	"CryptoAnalyst/internal/model"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ErrNoHistory is returned when a report carries no price history to plot.
var ErrNoHistory = errors.New("no price history")

const (
	colorPrice      = "#3b82f6"
	colorResistance = "#ef4444"
	colorSupport    = "#10b981"
)

// NewPriceChart builds the price line with constant support and resistance lines.
func NewPriceChart(r *model.Report) (*charts.Line, error) {
	ma := r.MarketAnalysis
	if ma == nil || len(ma.History) == 0 {
		return nil, ErrNoHistory
	}

	dates := make([]string, 0, len(ma.History))
	prices := make([]opts.LineData, 0, len(ma.History))
	supports := make([]opts.LineData, 0, len(ma.History))
	resistances := make([]opts.LineData, 0, len(ma.History))
	for _, p := range ma.History {
		dates = append(dates, p.Date)
		prices = append(prices, opts.LineData{Value: p.Price})
		supports = append(supports, opts.LineData{Value: ma.SupportResistance.Support})
		resistances = append(resistances, opts.LineData{Value: ma.SupportResistance.Resistance})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fmt.Sprintf("%s price", r.Symbol),
			Width:     "100%",
			Height:    "400px",
			Theme:     "dark",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s - %d day price", r.Symbol, len(ma.History)),
			Subtitle: "Price • Support • Resistance",
			Left:     "center",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: true,
			Top:  "8%",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    true,
			Trigger: "axis",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale:     true,
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithXAxisOpts(opts.XAxis{
			SplitNumber: 10,
		}),
	)

	line.SetXAxis(dates).
		AddSeries("Price", prices,
			charts.WithLineStyleOpts(opts.LineStyle{Color: colorPrice, Width: 2}),
		).
		AddSeries("Resistance", resistances,
			charts.WithLineStyleOpts(opts.LineStyle{Color: colorResistance, Width: 1, Type: "dashed"}),
		).
		AddSeries("Support", supports,
			charts.WithLineStyleOpts(opts.LineStyle{Color: colorSupport, Width: 1, Type: "dashed"}),
		)
	return line, nil
}

// RenderChart writes a standalone chart page for the report.
func RenderChart(w io.Writer, r *model.Report) error {
	line, err := NewPriceChart(r)
	if err != nil {
		return err
	}
	return line.Render(w)
}
