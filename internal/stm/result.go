//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package stm

import (
	"github.com/e-gun/HipparchiaTextLab/internal/corp"
	"github.com/e-gun/HipparchiaTextLab/internal/dfm"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"sort"
	"strings"
)

// Result - a converged fit
type Result struct {
	K          int
	Theta      *mat.Dense // documents x K; rows sum to 1
	Beta       *mat.Dense // K x vocabulary; rows sum to 1
	Vocab      []string
	DocIDs     []string
	Docvars    corp.Docvars
	Dropped    []string   // ids of the documents with no features
	Gamma      *mat.Dense // covariate coefficients, P x K; nil without covariates
	Covariates []string   // names of the rows of Gamma
	Iterations int
	Trace      []float64 // the bound after each iteration
	Init       string
	Seed       uint64
}

func (md *model) result(m *dfm.Matrix, trace []float64, dropped []string, gm *mat.Dense, xnames []string) *Result {
	n := len(md.docs)
	theta := mat.NewDense(n, md.k, nil)
	for i := 0; i < n; i++ {
		theta.SetRow(i, md.theta(i))
	}
	r := &Result{
		K:          md.k,
		Theta:      theta,
		Beta:       mat.NewDense(md.k, md.v, append([]float64(nil), md.beta...)),
		Vocab:      m.Terms(),
		DocIDs:     m.IDs(),
		Docvars:    m.Docvars(),
		Dropped:    dropped,
		Iterations: len(trace),
		Trace:      trace,
		Init:       md.o.Init,
		Seed:       md.o.Seed,
	}
	if gm != nil {
		r.Gamma = gm
		r.Covariates = xnames
	}
	return r
}

// TermProb - a term and its probability under a topic
type TermProb struct {
	Term string
	Prob float64
}

// TopTerms - the n most probable terms of topic k (0-based); ties go to the lexically smaller term
func (r *Result) TopTerms(k int, n int) []TermProb {
	if k < 0 || k >= r.K {
		return nil
	}
	row := r.Beta.RawRowView(k)
	tp := make([]TermProb, len(row))
	for w := range row {
		tp[w] = TermProb{Term: r.Vocab[w], Prob: row[w]}
	}
	sort.Slice(tp, func(a, b int) bool {
		if tp[a].Prob != tp[b].Prob {
			return tp[a].Prob > tp[b].Prob
		}
		return tp[a].Term < tp[b].Term
	})
	if n > 0 && n < len(tp) {
		tp = tp[:n]
	}
	return tp
}

// Labels - "peace, secur, nuclear" style labels built from the top n terms of each topic
func (r *Result) Labels(n int) []string {
	ll := make([]string, r.K)
	for k := 0; k < r.K; k++ {
		var ww []string
		for _, t := range r.TopTerms(k, n) {
			ww = append(ww, t.Term)
		}
		ll[k] = strings.Join(ww, ", ")
	}
	return ll
}

// Shares - mean theta over all documents
func (r *Result) Shares() []float64 {
	n, k := r.Theta.Dims()
	sh := make([]float64, k)
	for i := 0; i < n; i++ {
		floats.Add(sh, r.Theta.RawRowView(i))
	}
	floats.Scale(1/float64(n), sh)
	return sh
}

// TopicShares - mean theta for each value of a docvar; levels are sorted
func (r *Result) TopicShares(field string) ([]string, [][]float64, error) {
	if !r.Docvars.Has(field) {
		return nil, nil, errs.Config("stm.TopicShares", "no docvar named '%s'", field)
	}
	levels := r.Docvars.Levels(field)
	where := make(map[string]int, len(levels))
	for i, l := range levels {
		where[l] = i
	}
	sums := make([][]float64, len(levels))
	counts := make([]float64, len(levels))
	for i := range sums {
		sums[i] = make([]float64, r.K)
	}
	col := r.Docvars.Column(field)
	for i := range col {
		g := where[col[i]]
		floats.Add(sums[g], r.Theta.RawRowView(i))
		counts[g]++
	}
	for g := range sums {
		floats.Scale(1/counts[g], sums[g])
	}
	return levels, sums, nil
}

// Dominant - the most probable topic of each document; ties go to the lower topic
func (r *Result) Dominant() []int {
	n, _ := r.Theta.Dims()
	dd := make([]int, n)
	for i := 0; i < n; i++ {
		dd[i] = floats.MaxIdx(r.Theta.RawRowView(i))
	}
	return dd
}
