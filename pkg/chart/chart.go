// Package chart renders hourly cost profiles as HTML line charts.
package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/offshore/core/report"
)

// RenderProfile writes an HTML page with the mean thermal fraction and the
// cost for each hour of the day.
func RenderProfile(w io.Writer, title string, profile []report.Hour) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Hour"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Cost"}),
	)

	xAxis := make([]string, 0, len(profile))
	costs := make([]opts.LineData, 0, len(profile))
	fractions := make([]opts.LineData, 0, len(profile))
	for _, h := range profile {
		xAxis = append(xAxis, fmt.Sprintf("%02d:00", h.Hour))
		cost, _ := report.Money(h.Cost).Float64()
		costs = append(costs, opts.LineData{Value: cost})
		fractions = append(fractions, opts.LineData{Value: h.MeanFraction})
	}
	line.SetXAxis(xAxis).
		AddSeries("Cost", costs).
		AddSeries("Thermal fraction", fractions)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
