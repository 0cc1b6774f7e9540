//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package dfm

import (
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"math"
)

const (
	TSTAGE = "dfm.Trim"
	epsln  = 1e-9
)

// TrimOptions - the document frequency band, as proportions of all documents, plus an optional total count floor
type TrimOptions struct {
	MinDocFreq  float64
	MaxDocFreq  float64
	MinTermFreq int
}

// Validate - both ends in [0, 1] and min <= max
func (o TrimOptions) Validate() error {
	if math.IsNaN(o.MinDocFreq) || o.MinDocFreq < 0 || o.MinDocFreq > 1 {
		return errs.Config(TSTAGE, "min_docfreq %v is not a proportion", o.MinDocFreq)
	}
	if math.IsNaN(o.MaxDocFreq) || o.MaxDocFreq < 0 || o.MaxDocFreq > 1 {
		return errs.Config(TSTAGE, "max_docfreq %v is not a proportion", o.MaxDocFreq)
	}
	if o.MinDocFreq > o.MaxDocFreq {
		return errs.Config(TSTAGE, "min_docfreq %v exceeds max_docfreq %v", o.MinDocFreq, o.MaxDocFreq)
	}
	if o.MinTermFreq < 0 {
		return errs.Config(TSTAGE, "min_termfreq %d is negative", o.MinTermFreq)
	}
	return nil
}

// Bounds - the inclusive document counts a term must fall between in a corpus of n documents
func (o TrimOptions) Bounds(n int) (int, int) {
	lo := int(math.Ceil(o.MinDocFreq*float64(n) - epsln))
	hi := int(math.Floor(o.MaxDocFreq*float64(n) + epsln))
	return lo, hi
}

// Trim - keep the terms whose document frequency lies in the band; every surviving column has a non-zero cell
func (m *Matrix) Trim(o TrimOptions) (*Matrix, error) {
	const (
		MSG = "dfm.Trim(): %s of %s features kept (docfreq between %d and %d of %s documents)"
	)

	if err := o.Validate(); err != nil {
		return nil, err
	}

	lo, hi := o.Bounds(m.Ndocs())
	if lo < 1 {
		lo = 1
	}

	df := m.DocFreq()
	tf := m.TermFreq()
	keep := make([]bool, len(df))
	kept := 0
	for j := range df {
		if df[j] >= lo && df[j] <= hi && tf[j] >= o.MinTermFreq {
			keep[j] = true
			kept++
		}
	}

	if kept == 0 {
		return nil, errs.New(errs.ErrEmptyResult, TSTAGE, "all %d terms removed", len(df))
	}

	Msg.NOTE(fmt.Sprintf(MSG, Msg.N(kept), Msg.N(len(df)), lo, hi, Msg.N(m.Ndocs())))
	return m.keepcolumns(keep), nil
}
