// Package chart renders the dashboard equity curve as a self-contained
// HTML page.
package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/challenge"
)

const (
	colorEquity = "#3b82f6"
	colorStart  = "#9ca3af"
)

// RenderEquityCurve writes an HTML line chart of the account's running
// balance. The curve starts at the start balance so a flat baseline is
// visible even before the first trade.
func RenderEquityCurve(w io.Writer, startBalance float64, curve []challenge.EquityPoint) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Equity Curve",
			Subtitle: fmt.Sprintf("start balance $%.2f", startBalance),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "balance ($)", Scale: opts.Bool(true)}),
	)

	xAxis := make([]string, 0, len(curve)+1)
	balances := make([]opts.LineData, 0, len(curve)+1)
	baseline := make([]opts.LineData, 0, len(curve)+1)

	xAxis = append(xAxis, "start")
	balances = append(balances, opts.LineData{Value: startBalance})
	baseline = append(baseline, opts.LineData{Value: startBalance})

	for _, p := range curve {
		xAxis = append(xAxis, p.Time.UTC().Format("2006-01-02 15:04"))
		balances = append(balances, opts.LineData{Value: p.Balance})
		baseline = append(baseline, opts.LineData{Value: startBalance})
	}

	line.SetXAxis(xAxis)
	line.AddSeries("Balance", balances,
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorEquity, Width: 2}))
	line.AddSeries("Start balance", baseline,
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorStart, Width: 1, Type: "dashed"}))

	return line.Render(w)
}
