//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package pipe runs the stages in order and keeps what each of them produced.
package pipe

import (
	"github.com/e-gun/HipparchiaTextLab/internal/corp"
	"github.com/e-gun/HipparchiaTextLab/internal/dfm"
	"github.com/e-gun/HipparchiaTextLab/internal/dict"
	"github.com/e-gun/HipparchiaTextLab/internal/stm"
	"github.com/e-gun/HipparchiaTextLab/internal/tok"
)

// Want - which branches of the pipeline to run; the feature counts are always built
type Want int

const (
	Features Want = 1 << iota
	Sentiment
	Topics
	All = Features | Sentiment | Topics
)

func (w Want) Has(x Want) bool { return w&x == x }

// Artifacts - one field per stage output; nothing is overwritten once set
type Artifacts struct {
	RunID         string
	OutDir        string // OutDir/RunID; "" if nothing was written
	Corpus        *corp.Corpus
	Tokens        tok.Tokens
	Cleaned       tok.Tokens
	Features      *dfm.Matrix // folded, stop words out, unstemmed: frequencies and dictionaries
	TopicFeatures *dfm.Matrix // stemmed if so configured, then trimmed: the topic model's input
	Top           []dfm.Feature

	Sentiment          *dict.Scores
	SentimentByCountry []dict.SentimentRow
	SentimentOverTime  []dict.SentimentRow // continent x year
	Policy             *dict.Scores        // summed by continent

	Topics      *stm.Result
	Fingerprint string // of the topic matrix and options; "" without a vault
	FromVault   bool   // Topics came out of the vault instead of a new fit

	Written []string // files written under OutDir
}
