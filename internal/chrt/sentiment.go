//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package chrt

import (
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/dict"
	"github.com/e-gun/HipparchiaTextLab/internal/gen"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"sort"
	"strconv"
)

// SentimentLines - net sentiment over time, one line per value of the series docvar (e.g. continent by year)
func SentimentLines(rows []dict.SentimentRow, series string, x string, s Settings) *charts.Line {
	const (
		TITLE = "Net sentiment by %s and %s"
		YNAME = "net %"
		GAP   = "-" // echarts leaves a gap for this value
	)

	cell := make(map[string]map[string]float64)
	var xs []string
	for _, r := range rows {
		sv, xv := r.Vars[series], r.Vars[x]
		if cell[sv] == nil {
			cell[sv] = make(map[string]float64)
		}
		cell[sv][xv] = r.NetPerc
		xs = append(xs, xv)
	}
	xs = gen.Unique(xs)
	sortmaybenumeric(xs)

	line := charts.NewLine()
	line.SetGlobalOptions(append(globals(fmt.Sprintf(TITLE, series, x), s, "axis"),
		legend(),
		charts.WithXAxisOpts(opts.XAxis{Name: x}),
		charts.WithYAxisOpts(opts.YAxis{Name: YNAME}),
	)...)
	line.SetXAxis(xs)

	for _, sv := range gen.SortedKeys(cell) {
		data := make([]opts.LineData, len(xs))
		for i, xv := range xs {
			if v, ok := cell[sv][xv]; ok {
				data[i] = opts.LineData{Value: round(v)}
			} else {
				data[i] = opts.LineData{Value: GAP}
			}
		}
		line.AddSeries(sv, data, charts.WithLineChartOpts(opts.LineChart{Smooth: true}))
	}
	return line
}

// SentimentBars - net sentiment per row (e.g. per country), most positive first
func SentimentBars(rows []dict.SentimentRow, s Settings) *charts.Bar {
	const (
		TITLE = "Net sentiment"
		YNAME = "net %"
	)

	sorted := make([]dict.SentimentRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].NetPerc != sorted[j].NetPerc {
			return sorted[i].NetPerc > sorted[j].NetPerc
		}
		return sorted[i].ID < sorted[j].ID
	})

	ids := make([]string, len(sorted))
	data := make([]opts.BarData, len(sorted))
	for i, r := range sorted {
		ids[i] = r.ID
		data[i] = opts.BarData{Value: round(r.NetPerc)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globals(TITLE, s, "axis"),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Show: true, Rotate: 90, Interval: "0"}}),
		charts.WithYAxisOpts(opts.YAxis{Name: YNAME}),
	)...)
	bar.SetXAxis(ids).AddSeries(YNAME, data)
	return bar
}

// sortmaybenumeric - numeric order if every value is a number, lexical order otherwise
func sortmaybenumeric(ss []string) {
	for i := range ss {
		if _, err := strconv.ParseFloat(ss[i], 64); err != nil {
			sort.Strings(ss)
			return
		}
	}
	sort.SliceStable(ss, func(i, j int) bool {
		a, _ := strconv.ParseFloat(ss[i], 64)
		b, _ := strconv.ParseFloat(ss[j], 64)
		return a < b
	})
}
