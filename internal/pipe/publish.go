//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package pipe

import (
	"encoding/csv"
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/chrt"
	"github.com/e-gun/HipparchiaTextLab/internal/dict"
	"github.com/e-gun/HipparchiaTextLab/internal/gen"
	"github.com/e-gun/HipparchiaTextLab/internal/str"
	"github.com/e-gun/HipparchiaTextLab/internal/vv"
	"github.com/go-echarts/go-echarts/v2/components"
	"os"
	"path/filepath"
	"slices"
	"strconv"
)

const (
	PAGEFILE    = "charts.html"
	FEATFILE    = "top_features.csv"
	SENTCTRY    = "sentiment_by_country.csv"
	SENTTIME    = "sentiment_by_continent_year.csv"
	THETAFILE   = "topic_shares.csv"
	TERMSFILE   = "topic_terms.csv"
	PUBSTAGE    = "pipe.Publish"
	FLOATFORMAT = 'f'
)

// Publish - the chart page and the csv exports, all under a.OutDir
func (a *Artifacts) Publish(cfg *str.CurrentConfiguration) error {
	if err := os.MkdirAll(a.OutDir, vv.DIRPERMS); err != nil {
		return err
	}

	s := chrt.Settings{
		Width:     cfg.ChartWidth,
		Height:    cfg.ChartHeight,
		TopN:      cfg.ChartTopN,
		CloudTopN: cfg.CloudTopN,
		Subtitle:  a.RunID,
	}

	cc := []components.Charter{chrt.WordCloud(a.Top, s), chrt.Frequency(a.Top, s)}
	if err := a.write(FEATFILE, a.featurerows()); err != nil {
		return err
	}

	if a.Sentiment != nil {
		cc = append(cc,
			chrt.SentimentLines(a.SentimentOverTime, vv.DVCONTINENT, vv.COLYEAR, s),
			chrt.SentimentBars(a.SentimentByCountry, s),
			chrt.PolicyShares(a.Policy, s))
		if err := a.write(SENTCTRY, sentimentrows(a.SentimentByCountry)); err != nil {
			return err
		}
		if err := a.write(SENTTIME, sentimentrows(a.SentimentOverTime)); err != nil {
			return err
		}
	}

	if a.Topics != nil {
		by := cfg.TopicShareBy
		if by == "" {
			by = vv.DVCONTINENT
		}
		ts, err := chrt.TopicShares(a.Topics, by, s)
		if err != nil {
			return err
		}
		cc = append(cc, ts)
		for k := 0; k < a.Topics.K; k++ {
			cc = append(cc, chrt.TopicTerms(a.Topics, k, vv.STMTOPTERMS, s))
		}
		if err = a.write(THETAFILE, a.thetarows()); err != nil {
			return err
		}
		if err = a.write(TERMSFILE, a.termrows()); err != nil {
			return err
		}
	}

	fn := filepath.Join(a.OutDir, PAGEFILE)
	if err := chrt.WritePage(chrt.Page(fmt.Sprintf("%s: %s", vv.SHORTNAME, a.RunID), cc...), fn); err != nil {
		return err
	}
	a.Written = append(a.Written, fn)
	return nil
}

// write - one csv file in OutDir
func (a *Artifacts) write(name string, rows [][]string) error {
	fn := filepath.Join(a.OutDir, name)
	f, err := os.Create(fn)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err = w.WriteAll(rows); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	a.Written = append(a.Written, fn)
	Msg.TMI(fmt.Sprintf("%s(): wrote %s", PUBSTAGE, fn))
	return nil
}

func (a *Artifacts) featurerows() [][]string {
	rows := [][]string{{"rank", "term", "count", "docfreq"}}
	for _, f := range a.Top {
		rows = append(rows, []string{strconv.Itoa(f.Rank), f.Term, strconv.Itoa(f.Count), strconv.Itoa(f.DocFreq)})
	}
	return rows
}

func sentimentrows(ss []dict.SentimentRow) [][]string {
	var names []string
	for _, r := range ss {
		for n := range r.Vars {
			names = append(names, n)
		}
	}
	names = gen.Unique(names)
	slices.Sort(names)

	head := append([]string{"id"}, names...)
	head = append(head, "positive", "negative", "pos_perc", "neg_perc", "net_perc", "neutral")
	rows := [][]string{head}
	for _, r := range ss {
		row := []string{r.ID}
		for _, n := range names {
			row = append(row, r.Vars[n])
		}
		row = append(row,
			strconv.Itoa(r.Positive),
			strconv.Itoa(r.Negative),
			strconv.FormatFloat(r.PosPerc, FLOATFORMAT, 4, 64),
			strconv.FormatFloat(r.NegPerc, FLOATFORMAT, 4, 64),
			strconv.FormatFloat(r.NetPerc, FLOATFORMAT, 4, 64),
			strconv.FormatBool(r.Neutral))
		rows = append(rows, row)
	}
	return rows
}

// thetarows - one row per fitted document: its topic proportions and the dominant topic
func (a *Artifacts) thetarows() [][]string {
	r := a.Topics
	head := []string{vv.COLDOCID}
	for k := 0; k < r.K; k++ {
		head = append(head, fmt.Sprintf("topic_%d", k+1))
	}
	head = append(head, "dominant")

	rows := [][]string{head}
	dom := r.Dominant()
	for i, id := range r.DocIDs {
		row := []string{id}
		for _, v := range r.Theta.RawRowView(i) {
			row = append(row, strconv.FormatFloat(v, FLOATFORMAT, 6, 64))
		}
		row = append(row, strconv.Itoa(dom[i]+1))
		rows = append(rows, row)
	}
	return rows
}

func (a *Artifacts) termrows() [][]string {
	rows := [][]string{{"topic", "rank", "term", "prob"}}
	for k := 0; k < a.Topics.K; k++ {
		for j, tp := range a.Topics.TopTerms(k, vv.STMTOPTERMS) {
			rows = append(rows, []string{strconv.Itoa(k + 1), strconv.Itoa(j + 1), tp.Term, strconv.FormatFloat(tp.Prob, FLOATFORMAT, 6, 64)})
		}
	}
	return rows
}
