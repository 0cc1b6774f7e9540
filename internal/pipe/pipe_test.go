//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package pipe

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/dict"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"github.com/e-gun/HipparchiaTextLab/internal/mm"
	"github.com/e-gun/HipparchiaTextLab/internal/str"
	"github.com/e-gun/HipparchiaTextLab/internal/tok"
	"github.com/e-gun/HipparchiaTextLab/internal/vv"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var (
	security  = []string{"nuclear", "weapons", "disarmament", "treaty", "missiles", "arsenal", "verification", "warheads"}
	economy   = []string{"debt", "trade", "development", "investment", "tariffs", "commodities", "growth", "finance"}
	countries = []string{"USA", "FRA", "CHN"}
)

// speeches - a csv of n documents, alternately about arms and money, spread over three countries and four years
func speeches(t *testing.T, n int) string {
	t.Helper()
	rows := [][]string{{"doc_id", "text", "country", "session", "year"}}
	for i := 0; i < n; i++ {
		words, mood := security, "conflict danger"
		if i%2 == 1 {
			words, mood = economy, "peace progress"
		}
		var ww []string
		for j := 0; j < 12; j++ {
			ww = append(ww, words[(i+j)%len(words)])
		}
		ww = append(ww, mood, "the", "United", "Nations", "--", "42")
		rows = append(rows, []string{
			fmt.Sprintf("%s_%d_%02d", countries[i%3], 25+i%4, i),
			strings.Join(ww, " "),
			countries[i%3],
			fmt.Sprintf("%d", 25+i%4),
			fmt.Sprintf("%d", 1970+i%4),
		})
	}

	fn := filepath.Join(t.TempDir(), "speeches.csv")
	f, err := os.Create(fn)
	require.NoError(t, err)
	require.NoError(t, csv.NewWriter(f).WriteAll(rows))
	require.NoError(t, f.Close())
	return fn
}

func testconfig(t *testing.T, data string) *str.CurrentConfiguration {
	t.Helper()
	return &str.CurrentConfiguration{
		CaseFold:       true,
		ChartHeight:    vv.DEFAULTCHRTHEIGHT,
		ChartTopN:      10,
		ChartWidth:     vv.DEFAULTCHRTWIDTH,
		CloudTopN:      20,
		DataSource:     data,
		Init:           vv.INITSPECTRAL,
		MaxDocFreq:     1,
		MaxIter:        500,
		MinDocFreq:     0,
		NoisePatterns:  tok.DefaultNoisePatterns,
		OutDir:         t.TempDir(),
		RemovePunct:    true,
		Seed:           vv.STMSEED,
		SentimentNeg:   vv.SENTIMENTNEG,
		SentimentPos:   vv.SENTIMENTPOS,
		Stem:           true,
		StopSupplement: []string{"united", "nations"},
		Tolerance:      1e-4,
		TopicShareBy:   vv.DVCONTINENT,
		Topics:         2,
		WorkerCount:    2,
		ZeroPolicy:     vv.ZEROSKIP,
	}
}

func TestRunAll(t *testing.T) {
	cfg := testconfig(t, speeches(t, 48))
	a, err := Run(context.Background(), cfg, All)
	require.NoError(t, err)

	_, err = uuid.Parse(a.RunID)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.OutDir, a.RunID), a.OutDir)

	assert.Equal(t, 48, a.Corpus.Len())
	assert.True(t, a.Corpus.Docvars().Has(vv.DVCONTINENT))
	assert.Greater(t, a.Tokens.Ntokens(), a.Cleaned.Ntokens(), "the noise patterns drop '--' and '42'")

	for _, w := range []string{"the", "united", "nations", "42"} {
		assert.Equal(t, -1, a.Features.TermIndex(w), w)
	}
	assert.GreaterOrEqual(t, a.Features.TermIndex("development"), 0, "the sentiment branch counts unstemmed features")
	assert.Equal(t, -1, a.TopicFeatures.TermIndex("development"))
	assert.GreaterOrEqual(t, a.TopicFeatures.TermIndex("develop"), 0)

	require.Len(t, a.SentimentByCountry, 3)
	for _, r := range a.SentimentByCountry {
		assert.InDelta(t, 100, r.PosPerc+r.NegPerc, 1e-9)
	}
	assert.Len(t, a.SentimentOverTime, 12, "three continents x four years")
	assert.Equal(t, 3, a.Policy.Len())

	require.NotNil(t, a.Topics)
	assert.Equal(t, 2, a.Topics.K)

	assert.Len(t, a.Written, 6)
	for _, fn := range a.Written {
		_, err = os.Stat(fn)
		assert.NoError(t, err, fn)
	}
	page, err := os.ReadFile(filepath.Join(a.OutDir, PAGEFILE))
	require.NoError(t, err)
	assert.Contains(t, string(page), "Topic shares by continent")
	assert.Contains(t, string(page), "Net sentiment by continent and year")
}

func TestRunFeaturesOnly(t *testing.T) {
	cfg := testconfig(t, speeches(t, 12))
	cfg.OutDir = ""
	a, err := Run(context.Background(), cfg, Features)
	require.NoError(t, err)

	assert.Nil(t, a.Topics)
	assert.Nil(t, a.TopicFeatures)
	assert.Nil(t, a.Sentiment)
	assert.Empty(t, a.Written)
	assert.Empty(t, a.OutDir)
	require.NotEmpty(t, a.Top)
	assert.Equal(t, 1, a.Top[0].Rank)
	assert.LessOrEqual(t, len(a.Top), 20)
}

func TestRunWarnsAboutDocumentsWithoutTokens(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "speeches.csv")
	body := "doc_id,text,country,session,year\n" +
		"USA_25_1970,peace and progress for the nations,USA,25,1970\n" +
		"FRA_25_1970,,FRA,25,1970\n" +
		"CHN_25_1970,   ,CHN,25,1970\n"
	require.NoError(t, os.WriteFile(fn, []byte(body), 0644))

	var buf bytes.Buffer
	Msg = mm.NewMessageMaker("test", "T", "0", mm.MSGWARN, true)
	Msg.Out = &buf
	defer func() { Msg = mm.NewSilentMessageMaker() }()

	cfg := testconfig(t, fn)
	cfg.OutDir = ""
	a, err := Run(context.Background(), cfg, Features)
	require.NoError(t, err)
	assert.Equal(t, []string{"FRA_25_1970", "CHN_25_1970"}, a.Tokens.Empty())
	assert.Contains(t, buf.String(), "2 documents have no tokens: FRA_25_1970, CHN_25_1970")
}

func TestRunSentimentWithoutTopics(t *testing.T) {
	cfg := testconfig(t, speeches(t, 12))
	a, err := Run(context.Background(), cfg, Features|Sentiment)
	require.NoError(t, err)
	assert.Nil(t, a.Topics)
	assert.NotEmpty(t, a.SentimentByCountry)
	assert.Len(t, a.Written, 4)
}

func TestRunRejectsBadSettings(t *testing.T) {
	data := speeches(t, 12)

	cfg := testconfig(t, data)
	cfg.MinDocFreq, cfg.MaxDocFreq = 0.9, 0.1
	_, err := Run(context.Background(), cfg, All)
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	cfg = testconfig(t, data)
	cfg.ZeroPolicy = "ignore"
	_, err = Run(context.Background(), cfg, All)
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	cfg = testconfig(t, data)
	cfg.NoisePatterns = []string{"("}
	_, err = Run(context.Background(), cfg, Features)
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	cfg = testconfig(t, filepath.Join(t.TempDir(), "nothing.csv"))
	_, err = Run(context.Background(), cfg, Features)
	assert.ErrorIs(t, err, errs.ErrDataLoad)
}

func TestRunStopsWhenCancelled(t *testing.T) {
	cfg := testconfig(t, speeches(t, 12))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, cfg, All)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSentimentRowsLayout(t *testing.T) {
	rows := sentimentrows([]dict.SentimentRow{
		{ID: "Asia / 1970", Vars: map[string]string{"year": "1970", "continent": "Asia"}, Positive: 3, Negative: 1, PosPerc: 75, NegPerc: 25, NetPerc: 50},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"id", "continent", "year", "positive", "negative", "pos_perc", "neg_perc", "net_perc", "neutral"}, rows[0])
	assert.Equal(t, []string{"Asia / 1970", "Asia", "1970", "3", "1", "75.0000", "25.0000", "50.0000", "false"}, rows[1])
}

func TestWant(t *testing.T) {
	assert.True(t, All.Has(Topics))
	assert.True(t, (Features | Sentiment).Has(Sentiment))
	assert.False(t, Features.Has(Topics))
}

func TestRunReusesVaultedModel(t *testing.T) {
	cfg := testconfig(t, speeches(t, 24))
	cfg.ModelVault = filepath.Join(t.TempDir(), "models.db")

	first, err := Run(context.Background(), cfg, Features|Topics)
	require.NoError(t, err)
	assert.False(t, first.FromVault)
	assert.Len(t, first.Fingerprint, 32)

	second, err := Run(context.Background(), cfg, Features|Topics)
	require.NoError(t, err)
	assert.True(t, second.FromVault)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.Topics.Theta.RawMatrix().Data, second.Topics.Theta.RawMatrix().Data)
	assert.Equal(t, first.Topics.Labels(3), second.Topics.Labels(3))

	cfg.Topics = 3
	third, err := Run(context.Background(), cfg, Features|Topics)
	require.NoError(t, err)
	assert.False(t, third.FromVault)
	assert.NotEqual(t, first.Fingerprint, third.Fingerprint)
}
