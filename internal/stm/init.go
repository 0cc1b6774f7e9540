//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package stm

import (
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/dfm"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"github.com/e-gun/HipparchiaTextLab/internal/vv"
	"github.com/e-gun/nlp"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"math"
)

const (
	recoverysteps = 250
	betafloor     = 1e-12
)

// initbeta - the starting K x V topic-word matrix, stored row-major
func initbeta(m *dfm.Matrix, o Options) ([]float64, error) {
	switch o.Init {
	case vv.INITSPECTRAL:
		return spectralbeta(m, o.K)
	case vv.INITRANDOM:
		return randombeta(m.Nterms(), o.K, o.Seed), nil
	case vv.INITLDA:
		return ldabeta(m, o)
	default:
		return nil, errs.Config(STAGE, "unknown initialization strategy '%s'", o.Init)
	}
}

// randombeta - seeded uniform noise, normalised per topic
func randombeta(v int, k int, seed uint64) []float64 {
	rnd := rand.New(rand.NewSource(seed))
	beta := make([]float64, k*v)
	for i := range beta {
		beta[i] = rnd.Float64() + 1e-2
	}
	normrows(beta, k, v)
	return beta
}

// ldabeta - a short seeded single-process LDA run supplies the starting topics
func ldabeta(m *dfm.Matrix, o Options) ([]float64, error) {
	lda := nlp.NewLatentDirichletAllocation(o.K)
	lda.Iterations = vv.LDAINITITER
	lda.BurnInPasses = vv.LDAINITBURNIN
	lda.TransformationPasses = vv.LDAINITXFORMPS
	lda.Processes = 1
	lda.Rnd = rand.New(rand.NewSource(o.Seed))

	if _, err := lda.FitTransform(m.TermDocDense()); err != nil {
		return nil, errs.Wrap(errs.ErrInvalidConfiguration, STAGE, fmt.Errorf("lda initialization: %w", err))
	}

	comp := lda.Components()
	k, v := comp.Dims()
	beta := make([]float64, k*v)
	for t := 0; t < k; t++ {
		for w := 0; w < v; w++ {
			beta[t*v+w] = comp.At(t, w) + betafloor
		}
	}
	normrows(beta, k, v)
	return beta, nil
}

// spectralbeta - anchor words on the normalised co-occurrence matrix, then a simplex recovery of every other word
func spectralbeta(m *dfm.Matrix, k int) ([]float64, error) {
	const (
		MSG = "stm spectral init: anchors %v"
	)

	v := m.Nterms()
	if v > vv.STMMAXSPECTRL {
		return nil, errs.Config(STAGE, "%d features is too many for spectral initialization (limit %d): trim harder or use '%s'",
			v, vv.STMMAXSPECTRL, vv.INITLDA)
	}
	if k > v {
		return nil, errs.Config(STAGE, "cannot find %d anchor words among %d features", k, v)
	}

	q, pw := cooccurrence(m)

	anchors, err := anchorwords(q, k)
	if err != nil {
		return nil, err
	}

	terms := m.Terms()
	aw := make([]string, k)
	for i, a := range anchors {
		aw[i] = terms[a]
	}
	Msg.PEEK(fmt.Sprintf(MSG, aw))

	x := mat.NewDense(k, v, nil)
	for i, a := range anchors {
		x.SetRow(i, q.RawRowView(a))
	}
	var xxt mat.Dense
	xxt.Mul(x, x.T())
	var xy mat.Dense
	xy.Mul(x, q.T())

	beta := make([]float64, k*v)
	c := make([]float64, k)
	g := make([]float64, k)
	for w := 0; w < v; w++ {
		simplexfit(&xxt, mat.Col(nil, w, &xy), c, g)
		for t := 0; t < k; t++ {
			beta[t*v+w] = c[t]*pw[w] + betafloor
		}
	}
	normrows(beta, k, v)
	return beta, nil
}

// cooccurrence - Qbar (rows sum to 1, or 0 for a word that never shares a document) and p(w)
func cooccurrence(m *dfm.Matrix) (*mat.Dense, []float64) {
	v := m.Nterms()
	q := mat.NewDense(v, v, nil)
	used := 0
	for i := 0; i < m.Ndocs(); i++ {
		row := m.Row(i)
		nd := float64(m.RowSum(i))
		if nd < 2 {
			continue
		}
		used++
		norm := nd * (nd - 1)
		for _, a := range row {
			for _, b := range row {
				val := float64(a.Count * b.Count)
				if a.Term == b.Term {
					val -= float64(a.Count)
				}
				if val != 0 {
					q.Set(a.Term, b.Term, q.At(a.Term, b.Term)+val/norm)
				}
			}
		}
	}
	if used > 0 {
		q.Scale(1/float64(used), q)
	}

	pw := make([]float64, v)
	for w := 0; w < v; w++ {
		r := q.RawRowView(w)
		pw[w] = floats.Sum(r)
		if pw[w] > 0 {
			floats.Scale(1/pw[w], r)
		}
	}
	return q, pw
}

// anchorwords - greedy Gram-Schmidt: take the row furthest from the span of those already taken
func anchorwords(q *mat.Dense, k int) ([]int, error) {
	v, _ := q.Dims()
	res := mat.DenseCopyOf(q)
	taken := make([]bool, v)
	anchors := make([]int, 0, k)

	for len(anchors) < k {
		best, bestn := -1, 0.0
		for w := 0; w < v; w++ {
			if taken[w] {
				continue
			}
			n := floats.Dot(res.RawRowView(w), res.RawRowView(w))
			if n > bestn {
				best, bestn = w, n
			}
		}
		if best < 0 || bestn < 1e-20 {
			return nil, errs.New(errs.ErrEmptyResult, STAGE, "only %d distinct anchor words exist; lower K", len(anchors))
		}
		taken[best] = true
		anchors = append(anchors, best)

		basis := make([]float64, v)
		copy(basis, res.RawRowView(best))
		floats.Scale(1/math.Sqrt(bestn), basis)
		for w := 0; w < v; w++ {
			r := res.RawRowView(w)
			floats.AddScaled(r, -floats.Dot(r, basis), basis)
		}
	}
	return anchors, nil
}

// simplexfit - exponentiated gradient for min ||y - X'c||^2 with c on the simplex; works from X X' and X y
func simplexfit(xxt *mat.Dense, xy []float64, c []float64, g []float64) {
	k := len(c)
	for t := range c {
		c[t] = 1 / float64(k)
	}
	for s := 0; s < recoverysteps; s++ {
		gmax := 0.0
		for t := 0; t < k; t++ {
			g[t] = 2 * (floats.Dot(xxt.RawRowView(t), c) - xy[t])
			if a := math.Abs(g[t]); a > gmax {
				gmax = a
			}
		}
		if gmax < 1e-300 {
			return
		}
		eta := 1 / gmax
		for t := 0; t < k; t++ {
			c[t] *= math.Exp(-eta * g[t])
		}
		floats.Scale(1/floats.Sum(c), c)
	}
}

// normrows - make each of the k rows of a row-major k x v slice sum to 1
func normrows(b []float64, k int, v int) {
	for t := 0; t < k; t++ {
		r := b[t*v : (t+1)*v]
		floats.Scale(1/floats.Sum(r), r)
	}
}
