//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package pipe

import (
	"context"
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/corp"
	"github.com/e-gun/HipparchiaTextLab/internal/db"
	"github.com/e-gun/HipparchiaTextLab/internal/dfm"
	"github.com/e-gun/HipparchiaTextLab/internal/dict"
	"github.com/e-gun/HipparchiaTextLab/internal/mm"
	"github.com/e-gun/HipparchiaTextLab/internal/stm"
	"github.com/e-gun/HipparchiaTextLab/internal/stops"
	"github.com/e-gun/HipparchiaTextLab/internal/str"
	"github.com/e-gun/HipparchiaTextLab/internal/tok"
	"github.com/e-gun/HipparchiaTextLab/internal/vv"
	"github.com/google/uuid"
	"path/filepath"
	"strings"
	"time"
)

var Msg = mm.NewSilentMessageMaker()

// Run - load, tokenize, clean, count; then the dictionary and topic branches that were asked for; then write the results
func Run(ctx context.Context, cfg *str.CurrentConfiguration, want Want) (*Artifacts, error) {
	const (
		MSG1 = "%s documents loaded"
		MSG2 = "corpus built with docvars %v"
		MSG3 = "%s documents tokenized (%s tokens, %s types)"
		MSG4 = "tokens cleaned (%s remain)"
		MSG5 = "feature matrix: %s documents x %s features"
		MSG6 = "dictionaries scored: %d sentiment rows by country, %d by continent and year"
		MSG7 = "topic matrix trimmed to %s features"
		MSG8 = "%d topics fitted in %d iterations"
		MSG9 = "results written to %s"
		WRN1 = "%d documents have no tokens: %s"
	)

	start := time.Now()
	previous := start

	stamp := func(letter string, msg string) error {
		Msg.Timer(letter, msg, start, previous)
		previous = time.Now()
		return ctx.Err()
	}

	a := &Artifacts{RunID: uuid.New().String()}

	docs, err := db.Load(ctx, db.Source{Path: cfg.DataSource, Table: cfg.SQLTable, Login: cfg.PGLogin})
	if err != nil {
		return nil, err
	}
	if err = stamp("A1", fmt.Sprintf(MSG1, Msg.N(len(docs)))); err != nil {
		return nil, err
	}

	c, err := corp.New(docs)
	if err != nil {
		return nil, err
	}
	if a.Corpus, err = c.WithDerived(); err != nil {
		return nil, err
	}
	if err = stamp("A2", fmt.Sprintf(MSG2, a.Corpus.Docvars().Names())); err != nil {
		return nil, err
	}

	a.Tokens = tok.Tokenize(a.Corpus, tokoptions(cfg))
	if ee := a.Tokens.Empty(); len(ee) > 0 {
		Msg.WARN(fmt.Sprintf(WRN1, len(ee), strings.Join(ee, ", ")))
	}
	if err = stamp("A3", fmt.Sprintf(MSG3, Msg.N(a.Tokens.Len()), Msg.N(a.Tokens.Ntokens()), Msg.N(a.Tokens.Ntypes()))); err != nil {
		return nil, err
	}

	if a.Cleaned, err = clean(a.Tokens, cfg); err != nil {
		return nil, err
	}
	if err = stamp("A4", fmt.Sprintf(MSG4, Msg.N(a.Cleaned.Ntokens()))); err != nil {
		return nil, err
	}

	sw := stops.English().Union(stops.NewSet(cfg.StopSupplement))
	a.Features, err = dfm.Build(a.Cleaned, a.Corpus.Docvars(), dfm.Options{Lower: cfg.CaseFold, Stopwords: sw})
	if err != nil {
		return nil, err
	}
	a.Top = a.Features.TopFeatures(max(cfg.ChartTopN, cfg.CloudTopN))
	if err = stamp("B1", fmt.Sprintf(MSG5, Msg.N(a.Features.Ndocs()), Msg.N(a.Features.Nterms()))); err != nil {
		return nil, err
	}

	if want.Has(Sentiment) {
		if err = a.score(cfg); err != nil {
			return nil, err
		}
		if err = stamp("C1", fmt.Sprintf(MSG6, len(a.SentimentByCountry), len(a.SentimentOverTime))); err != nil {
			return nil, err
		}
	}

	if want.Has(Topics) {
		full, e := dfm.Build(a.Cleaned, a.Corpus.Docvars(), dfm.Options{Lower: cfg.CaseFold, Stem: cfg.Stem, Stopwords: sw})
		if e != nil {
			return nil, e
		}
		a.TopicFeatures, err = full.Trim(dfm.TrimOptions{MinDocFreq: cfg.MinDocFreq, MaxDocFreq: cfg.MaxDocFreq, MinTermFreq: cfg.MinTermFreq})
		if err != nil {
			return nil, err
		}
		if err = stamp("D1", fmt.Sprintf(MSG7, Msg.N(a.TopicFeatures.Nterms()))); err != nil {
			return nil, err
		}

		if a.Topics, err = a.fit(ctx, cfg.ModelVault, stmoptions(cfg)); err != nil {
			return nil, err
		}
		if err = stamp("D2", fmt.Sprintf(MSG8, a.Topics.K, a.Topics.Iterations)); err != nil {
			return nil, err
		}
	}

	if cfg.OutDir == "" {
		return a, nil
	}
	a.OutDir = filepath.Join(cfg.OutDir, a.RunID)
	if err = a.Publish(cfg); err != nil {
		return nil, err
	}
	_ = stamp("E1", fmt.Sprintf(MSG9, a.OutDir))
	return a, nil
}

// score - sentiment by country and by continent and year; the policy agenda by continent
func (a *Artifacts) score(cfg *str.CurrentConfiguration) error {
	sd, err := dict.LoadOrDefault(cfg.SentimentDict, dict.DEFAULTSENT)
	if err != nil {
		return err
	}
	pd, err := dict.LoadOrDefault(cfg.PolicyDict, dict.DEFAULTPOL)
	if err != nil {
		return err
	}
	zp, err := dict.ParseZeroPolicy(cfg.ZeroPolicy)
	if err != nil {
		return err
	}

	a.Sentiment = dict.Score(a.Features, sd)

	bycountry, err := a.Sentiment.Group(vv.COLCOUNTRY)
	if err != nil {
		return err
	}
	if a.SentimentByCountry, err = dict.Sentiment(bycountry, cfg.SentimentPos, cfg.SentimentNeg, zp); err != nil {
		return err
	}

	overtime, err := a.Sentiment.Group(vv.DVCONTINENT, vv.COLYEAR)
	if err != nil {
		return err
	}
	if a.SentimentOverTime, err = dict.Sentiment(overtime, cfg.SentimentPos, cfg.SentimentNeg, zp); err != nil {
		return err
	}

	a.Policy, err = dict.Score(a.Features, pd).Group(vv.DVCONTINENT)
	return err
}

// fit - reuse a stored model with the same fingerprint, or fit one and store it
func (a *Artifacts) fit(ctx context.Context, vault string, o stm.Options) (*stm.Result, error) {
	const (
		MSG1 = "topic model %s fetched from %s"
		WRN1 = "stored topic model %s is unusable and will be refitted: %s"
		WRN2 = "could not store topic model %s: %s"
	)

	if vault == "" {
		return stm.Fit(ctx, a.TopicFeatures, o)
	}

	v, err := db.OpenVault(ctx, vault)
	if err != nil {
		return nil, err
	}
	defer func() { _ = v.Close() }()

	a.Fingerprint = stm.Fingerprint(a.TopicFeatures, o)
	if v.Check(ctx, a.Fingerprint) {
		data, e := v.Fetch(ctx, a.Fingerprint)
		if e == nil {
			r, ee := stm.Decode(data, a.TopicFeatures)
			if ee == nil {
				a.FromVault = true
				Msg.NOTE(fmt.Sprintf(MSG1, a.Fingerprint, vault))
				return r, nil
			}
			e = ee
		}
		Msg.WARN(fmt.Sprintf(WRN1, a.Fingerprint, e.Error()))
	}

	r, err := stm.Fit(ctx, a.TopicFeatures, o)
	if err != nil {
		return nil, err
	}
	data, err := r.Encode()
	if err == nil {
		err = v.Add(ctx, a.Fingerprint, data)
	}
	if err != nil {
		Msg.WARN(fmt.Sprintf(WRN2, a.Fingerprint, err.Error()))
	}
	return r, nil
}

func tokoptions(cfg *str.CurrentConfiguration) tok.Options {
	return tok.Options{
		RemoveNumbers: cfg.RemoveNumbers,
		RemovePunct:   cfg.RemovePunct,
		RemoveSymbols: cfg.RemoveSymbols,
		RemoveURL:     cfg.RemoveURL,
		SplitHyphens:  cfg.SplitHyphens,
		Workers:       cfg.WorkerCount,
	}
}

// clean - the regex patterns first, then the fixed strings
func clean(t tok.Tokens, cfg *str.CurrentConfiguration) (tok.Tokens, error) {
	if len(cfg.NoisePatterns) > 0 {
		c, err := tok.NewCleaner(cfg.NoisePatterns, tok.Regex, false)
		if err != nil {
			return tok.Tokens{}, err
		}
		t = c.Clean(t)
	}
	if len(cfg.NoiseFixed) > 0 {
		c, err := tok.NewCleaner(cfg.NoiseFixed, tok.Fixed, true)
		if err != nil {
			return tok.Tokens{}, err
		}
		t = c.Clean(t)
	}
	return t, nil
}

func stmoptions(cfg *str.CurrentConfiguration) stm.Options {
	o := stm.DefaultOptions()
	o.K = cfg.Topics
	o.Seed = cfg.Seed
	o.Init = cfg.Init
	o.MaxIterations = cfg.MaxIter
	o.Tolerance = cfg.Tolerance
	o.Covariates = cfg.Covariates
	o.Workers = cfg.WorkerCount
	return o
}
