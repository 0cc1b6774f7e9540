//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package chrt

import (
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/dict"
	"github.com/e-gun/HipparchiaTextLab/internal/stm"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	STACK = "total"
)

// TopicShares - expected topic proportions per value of a docvar, stacked to 1
func TopicShares(r *stm.Result, field string, s Settings) (*charts.Bar, error) {
	const (
		TITLE  = "Topic shares by %s"
		SERIES = "Topic %d: %s"
		LABELN = 3
	)

	levels, shares, err := r.TopicShares(field)
	if err != nil {
		return nil, err
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globals(fmt.Sprintf(TITLE, field), s, "axis"),
		legend(),
		charts.WithXAxisOpts(opts.XAxis{Name: field}),
		charts.WithYAxisOpts(opts.YAxis{Name: "share", Max: 1}),
	)...)
	bar.SetXAxis(levels)

	labels := r.Labels(LABELN)
	for k := 0; k < r.K; k++ {
		data := make([]opts.BarData, len(levels))
		for g := range levels {
			data[g] = opts.BarData{Value: round(shares[g][k])}
		}
		bar.AddSeries(fmt.Sprintf(SERIES, k+1, labels[k]), data, charts.WithBarChartOpts(opts.BarChart{Stack: STACK}))
	}
	return bar, nil
}

// TopicTerms - the n most probable terms of topic k as horizontal bars
func TopicTerms(r *stm.Result, k int, n int, s Settings) *charts.Bar {
	const (
		TITLE  = "Topic %d: term probabilities"
		SERIES = "beta"
	)

	tp := r.TopTerms(k, n)
	// reversed so that the most probable term sits at the top once the axes swap
	terms := make([]string, len(tp))
	data := make([]opts.BarData, len(tp))
	for i := range tp {
		j := len(tp) - 1 - i
		terms[j] = tp[i].Term
		data[j] = opts.BarData{Value: round(tp[i].Prob)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(globals(fmt.Sprintf(TITLE, k+1), s, "axis")...)
	bar.SetXAxis(terms).AddSeries(SERIES, data)
	bar.XYReversal()
	return bar
}

// PolicyShares - each row's dictionary hits as proportions, one stacked series per category
func PolicyShares(sc *dict.Scores, s Settings) *charts.Bar {
	const (
		TITLE = "Policy agenda"
	)

	shares := sc.Shares()
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globals(TITLE, s, "axis"),
		legend(),
		charts.WithYAxisOpts(opts.YAxis{Name: "share", Max: 1}),
	)...)
	bar.SetXAxis(sc.IDs())

	for k, cat := range sc.Categories() {
		data := make([]opts.BarData, sc.Len())
		for i := range shares {
			data[i] = opts.BarData{Value: round(shares[i][k])}
		}
		bar.AddSeries(cat, data, charts.WithBarChartOpts(opts.BarChart{Stack: STACK}))
	}
	return bar
}
