//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package chrt draws the pipeline's matrices, scores and model with go-echarts.
package chrt

import (
	"bytes"
	"github.com/e-gun/HipparchiaTextLab/internal/vv"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"math"
	"os"
	"path/filepath"
)

// Settings - sizes and limits shared by every chart of a run
type Settings struct {
	Width     string
	Height    string
	TopN      int // bars in frequency and topic term charts
	CloudTopN int // words in the cloud
	Subtitle  string
}

// DefaultSettings - the vv defaults
func DefaultSettings() Settings {
	return Settings{
		Width:     vv.DEFAULTCHRTWIDTH,
		Height:    vv.DEFAULTCHRTHEIGHT,
		TopN:      vv.DEFAULTCHARTTOPN,
		CloudTopN: vv.DEFAULTCLOUDTOPN,
	}
}

// globals - title, toolbox, tooltip and size, set up the same way for every chart
func globals(title string, s Settings, trigger string) []charts.GlobalOpts {
	const (
		FONTSTYLE = "normal"
		LEFTALIGN = "20"
		TOPALIGN  = "10"
		SAVETYPE  = "png"
		SAVESTR   = "Save to file..."
		TEXTCOLOR = ""
	)

	tst := opts.TextStyle{
		Color:     TEXTCOLOR,
		FontStyle: FONTSTYLE,
		FontSize:  16,
		Padding:   "15",
	}

	sst := opts.TextStyle{
		Color:     TEXTCOLOR,
		FontStyle: FONTSTYLE,
		FontSize:  10,
	}

	tit := opts.Title{
		Title:         title,
		TitleStyle:    &tst,
		Subtitle:      s.Subtitle,
		SubtitleStyle: &sst,
		Top:           TOPALIGN,
		Left:          LEFTALIGN,
	}

	tbs := opts.ToolBoxFeatureSaveAsImage{
		Show:  true,
		Type:  SAVETYPE,
		Name:  title,
		Title: SAVESTR, // get chinese if ""
	}

	tbo := opts.Toolbox{
		Show:    true,
		Orient:  "vertical",
		Right:   LEFTALIGN,
		Feature: &opts.ToolBoxFeature{SaveAsImage: &tbs},
	}

	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: s.Width, Height: s.Height}),
		charts.WithTitleOpts(tit),
		charts.WithToolboxOpts(tbo),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: trigger}),
	}
}

// legend - a legend under the title
func legend() charts.GlobalOpts {
	return charts.WithLegendOpts(opts.Legend{Show: true, Top: "60", Left: "center"})
}

// round - keep the emitted json short
func round(val float64) float32 {
	const (
		PRECISON = 4
	)
	ratio := math.Pow(10, float64(PRECISON))
	return float32(math.Round(val*ratio) / ratio)
}

// Page - one html page holding every chart of a run
func Page(title string, cc ...components.Charter) *components.Page {
	p := components.NewPage()
	p.PageTitle = title
	p.SetLayout(components.PageFlexLayout)
	p.AddCharts(cc...)
	return p
}

// Render - the page as html
func Render(p *components.Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePage - render the page into fn, creating its directory if need be
func WritePage(p *components.Page, fn string) error {
	html, err := Render(p)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(fn), vv.DIRPERMS); err != nil {
		return err
	}
	return os.WriteFile(fn, html, vv.WRITEPERMS)
}
