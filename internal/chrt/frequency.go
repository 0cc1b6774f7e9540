//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package chrt

import (
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/dfm"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WordCloud - the CloudTopN most frequent features
func WordCloud(feats []dfm.Feature, s Settings) *charts.WordCloud {
	const (
		TITLE  = "Most frequent features"
		SHAPE  = "circle"
		SERIES = "frequency"
	)

	if s.CloudTopN > 0 && len(feats) > s.CloudTopN {
		feats = feats[:s.CloudTopN]
	}

	wc := charts.NewWordCloud()
	wc.SetGlobalOptions(globals(TITLE, s, "item")...)

	data := make([]opts.WordCloudData, len(feats))
	for i, f := range feats {
		data[i] = opts.WordCloudData{Name: f.Term, Value: f.Count}
	}

	wc.AddSeries(SERIES, data,
		charts.WithWorldCloudChartOpts(opts.WordCloudChart{
			SizeRange: []float32{12, 80},
			Shape:     SHAPE,
		}),
	)
	return wc
}

// Frequency - a lollipop chart: thin bars capped with a dot, TopN features by total count
func Frequency(feats []dfm.Feature, s Settings) *charts.Bar {
	const (
		TITLE = "Feature frequency (top %d)"
		STICK = "count"
		CANDY = ""
	)

	if s.TopN > 0 && len(feats) > s.TopN {
		feats = feats[:s.TopN]
	}

	terms := make([]string, len(feats))
	sticks := make([]opts.BarData, len(feats))
	dots := make([]opts.ScatterData, len(feats))
	for i, f := range feats {
		terms[i] = f.Term
		sticks[i] = opts.BarData{Value: f.Count}
		dots[i] = opts.ScatterData{Value: f.Count, Symbol: "circle", SymbolSize: 12}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globals(fmt.Sprintf(TITLE, len(feats)), s, "axis"),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Show: true, Rotate: 60, Interval: "0"}}),
		charts.WithYAxisOpts(opts.YAxis{Name: STICK}),
	)...)
	bar.SetXAxis(terms).AddSeries(STICK, sticks,
		charts.WithBarChartOpts(opts.BarChart{BarGap: "-100%", BarCategoryGap: "85%"}))

	dot := charts.NewScatter()
	dot.SetXAxis(terms).AddSeries(CANDY, dots)
	bar.Overlap(dot)
	return bar
}
