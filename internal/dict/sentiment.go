//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package dict

import (
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"github.com/e-gun/HipparchiaTextLab/internal/vv"
	"slices"
	"strings"
)

const (
	SSTAGE = "dict.Sentiment"
)

// ZeroPolicy - what to do with a row that has neither positive nor negative hits
type ZeroPolicy int

const (
	Skip    ZeroPolicy = iota // leave the row out and log it
	Neutral                   // 50 / 50 / 0, flagged
	Fail                      // abort with ErrDivisionUndefined
)

// ParseZeroPolicy - "skip", "neutral", "fail"
func ParseZeroPolicy(s string) (ZeroPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case vv.ZEROSKIP, "":
		return Skip, nil
	case vv.ZERONEUTRAL:
		return Neutral, nil
	case vv.ZEROFAIL:
		return Fail, nil
	default:
		return Skip, errs.Config(SSTAGE, "unknown zero policy '%s'", s)
	}
}

func (p ZeroPolicy) String() string {
	switch p {
	case Neutral:
		return vv.ZERONEUTRAL
	case Fail:
		return vv.ZEROFAIL
	default:
		return vv.ZEROSKIP
	}
}

// SentimentRow - the derived metrics for one document or group
type SentimentRow struct {
	ID       string
	Vars     map[string]string
	Positive int
	Negative int
	PosPerc  float64
	NegPerc  float64
	NetPerc  float64
	Neutral  bool // the Neutral policy filled this row in
}

// Percentages - pos/(pos+neg)*100, neg/(pos+neg)*100 and their difference; undefined when pos+neg is 0
func Percentages(pos int, neg int) (float64, float64, float64, error) {
	tot := pos + neg
	if tot == 0 {
		return 0, 0, 0, errs.New(errs.ErrDivisionUndefined, SSTAGE, "positive+negative is zero")
	}
	pp := float64(pos) / float64(tot) * 100
	np := float64(neg) / float64(tot) * 100
	return pp, np, pp - np, nil
}

// Sentiment - derive percentage rows from scores; rows with no hits follow the policy
func Sentiment(s *Scores, posCat string, negCat string, policy ZeroPolicy) ([]SentimentRow, error) {
	const (
		SKP = "dict.Sentiment(): '%s' has no sentiment-bearing terms and is skipped"
		NTR = "dict.Sentiment(): '%s' has no sentiment-bearing terms and is scored as neutral"
	)

	for _, c := range []string{posCat, negCat} {
		if !slices.Contains(s.categories, c) {
			return nil, errs.Config(SSTAGE, "the dictionary has no category '%s'", c)
		}
	}

	names := s.vars.Names()
	var rows []SentimentRow
	for i := 0; i < s.Len(); i++ {
		r := SentimentRow{
			ID:       s.ids[i],
			Vars:     make(map[string]string, len(names)),
			Positive: s.Get(i, posCat),
			Negative: s.Get(i, negCat),
		}
		for _, n := range names {
			r.Vars[n] = s.vars.Value(n, i)
		}

		var err error
		r.PosPerc, r.NegPerc, r.NetPerc, err = Percentages(r.Positive, r.Negative)
		if err != nil {
			switch policy {
			case Fail:
				return nil, errs.New(errs.ErrDivisionUndefined, SSTAGE, "'%s': positive+negative is zero", r.ID)
			case Neutral:
				Msg.FYI(fmt.Sprintf(NTR, r.ID))
				r.PosPerc, r.NegPerc, r.NetPerc, r.Neutral = 50, 50, 0, true
			default:
				Msg.FYI(fmt.Sprintf(SKP, r.ID))
				continue
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}
