//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package stm fits a K-topic mixture model with topic prevalence covariates by variational EM.
package stm

import (
	"context"
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/dfm"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"github.com/e-gun/HipparchiaTextLab/internal/mm"
	"github.com/e-gun/HipparchiaTextLab/internal/vv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"
	"math"
	"runtime"
	"strings"
	"sync"
	"time"
)

var Msg = mm.NewSilentMessageMaker()

// document - the sparse counts of one row
type document struct {
	words  []int
	counts []float64
	total  float64
}

// model - the state carried between EM iterations
type model struct {
	k, v  int
	docs  []document
	beta  []float64 // k x v, row-major
	alpha [][]float64
	gamma [][]float64
	o     Options
}

// Fit - estimate Theta and Beta; a fit that does not converge inside the budget returns *NonConvergenceError and no Result
func Fit(ctx context.Context, m *dfm.Matrix, o Options) (*Result, error) {
	const (
		DRP = "stm.Fit(): %d documents have no features left and were dropped: %s"
		ITR = "stm.Fit(): iteration %d; bound %.4f; relative change %.3g"
		CNV = "stm.Fit(): converged after %d iterations"
	)

	start := time.Now()

	if err := o.Validate(); err != nil {
		return nil, err
	}
	if m == nil || m.Ndocs() == 0 || m.Nterms() == 0 {
		return nil, errs.New(errs.ErrEmptyResult, STAGE, "nothing to model")
	}
	if o.Workers < 1 {
		o.Workers = runtime.NumCPU()
	}

	full, dropped := m.DropEmpty()
	if len(dropped) > 0 {
		Msg.WARN(fmt.Sprintf(DRP, len(dropped), strings.Join(dropped, ", ")))
	}
	if full.Ndocs() == 0 {
		return nil, errs.New(errs.ErrEmptyResult, STAGE, "every document is empty")
	}

	x, xnames, err := DesignMatrix(full.Docvars(), o.Covariates)
	if err != nil {
		return nil, err
	}

	beta, err := initbeta(full, o)
	if err != nil {
		return nil, err
	}
	Msg.Timer("S1", fmt.Sprintf("stm.Fit(): %s initialization", o.Init), start, start)

	md := newmodel(full, o, beta)
	_, p := x.Dims()
	var gm *mat.Dense

	var trace []float64
	prev := math.Inf(-1)
	change := math.Inf(1)
	previous := time.Now()

	for it := 1; it <= o.MaxIterations; it++ {
		if e := ctx.Err(); e != nil {
			return nil, fmt.Errorf("%s: interrupted at iteration %d: %w", STAGE, it, e)
		}

		md.estep()
		md.mstep()

		if p > 1 {
			gm, err = md.prevalence(x)
			if err != nil {
				return nil, errs.Wrap(errs.ErrInvalidConfiguration, STAGE, fmt.Errorf("prevalence regression: %w", err))
			}
		}

		bound := md.bound()
		trace = append(trace, bound)
		if it > 1 {
			change = math.Abs((bound - prev) / prev)
		}
		prev = bound
		Msg.TMI(fmt.Sprintf(ITR, it, bound, change))

		if it > 1 && change < o.Tolerance {
			Msg.Timer("S2", fmt.Sprintf(CNV, it), start, previous)
			return md.result(full, trace, dropped, gm, xnames), nil
		}
	}

	return nil, &NonConvergenceError{Iterations: o.MaxIterations, Change: change, Tolerance: o.Tolerance}
}

func newmodel(m *dfm.Matrix, o Options, beta []float64) *model {
	md := &model{k: o.K, v: m.Nterms(), beta: beta, o: o}
	md.docs = make([]document, m.Ndocs())
	md.alpha = make([][]float64, m.Ndocs())
	md.gamma = make([][]float64, m.Ndocs())
	for i := range md.docs {
		row := m.Row(i)
		d := document{words: make([]int, len(row)), counts: make([]float64, len(row))}
		for j, c := range row {
			d.words[j] = c.Term
			d.counts[j] = float64(c.Count)
			d.total += float64(c.Count)
		}
		md.docs[i] = d
		md.alpha[i] = make([]float64, o.K)
		for t := range md.alpha[i] {
			md.alpha[i][t] = o.Alpha
		}
		md.gamma[i] = make([]float64, o.K)
	}
	return md
}

// blocks - fixed runs of vv.STMBLOCK documents; they do not depend on the worker count
func (md *model) blocks() [][2]int {
	var bb [][2]int
	for lo := 0; lo < len(md.docs); lo += vv.STMBLOCK {
		hi := lo + vv.STMBLOCK
		if hi > len(md.docs) {
			hi = len(md.docs)
		}
		bb = append(bb, [2]int{lo, hi})
	}
	return bb
}

// overblocks - run fn on every block with o.Workers goroutines
func (md *model) overblocks(fn func(b int, lo int, hi int)) {
	bb := md.blocks()
	next := make(chan int, len(bb))
	for b := range bb {
		next <- b
	}
	close(next)

	var wg sync.WaitGroup
	for w := 0; w < md.o.Workers && w < len(bb); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range next {
				fn(b, bb[b][0], bb[b][1])
			}
		}()
	}
	wg.Wait()
}

// estep - update gamma for every document against the current beta and alpha
func (md *model) estep() {
	md.overblocks(func(_ int, lo int, hi int) {
		phi := make([]float64, md.k)
		for i := lo; i < hi; i++ {
			md.docgamma(i, phi)
		}
	})
}

// docgamma - the per-document variational fixed point
func (md *model) docgamma(i int, phi []float64) {
	d := md.docs[i]
	alpha := md.alpha[i]
	gamma := md.gamma[i]
	k := md.k

	for t := 0; t < k; t++ {
		gamma[t] = alpha[t] + d.total/float64(k)
	}
	expel := make([]float64, k)
	newg := make([]float64, k)

	for s := 0; s < md.o.EStepIter; s++ {
		for t := 0; t < k; t++ {
			expel[t] = math.Exp(mathext.Digamma(gamma[t]))
		}
		copy(newg, alpha)
		for j, w := range d.words {
			md.phi(w, expel, phi)
			floats.AddScaled(newg, d.counts[j], phi)
		}
		delta := 0.0
		for t := 0; t < k; t++ {
			delta += math.Abs(newg[t] - gamma[t])
		}
		copy(gamma, newg)
		if delta/float64(k) < md.o.EStepTol {
			break
		}
	}
}

// phi - the topic responsibilities of word w given exp(E[log theta])
func (md *model) phi(w int, expel []float64, phi []float64) {
	s := 0.0
	for t := 0; t < md.k; t++ {
		phi[t] = md.beta[t*md.v+w] * expel[t]
		s += phi[t]
	}
	if s > 0 {
		floats.Scale(1/s, phi)
	}
}

// mstep - beta from the expected counts; blocks are summed in document order
func (md *model) mstep() {
	bb := md.blocks()
	partial := make([][]float64, len(bb))

	md.overblocks(func(b int, lo int, hi int) {
		acc := make([]float64, md.k*md.v)
		phi := make([]float64, md.k)
		expel := make([]float64, md.k)
		for i := lo; i < hi; i++ {
			for t := 0; t < md.k; t++ {
				expel[t] = math.Exp(mathext.Digamma(md.gamma[i][t]))
			}
			d := md.docs[i]
			for j, w := range d.words {
				md.phi(w, expel, phi)
				for t := 0; t < md.k; t++ {
					acc[t*md.v+w] += d.counts[j] * phi[t]
				}
			}
		}
		partial[b] = acc
	})

	nb := make([]float64, md.k*md.v)
	for i := range nb {
		nb[i] = md.o.Eta
	}
	for b := range partial {
		floats.Add(nb, partial[b])
	}
	normrows(nb, md.k, md.v)
	md.beta = nb
}

// prevalence - regress centred log theta on the covariates and reset every alpha to Alpha*K*softmax(X Gamma)
func (md *model) prevalence(x *mat.Dense) (*mat.Dense, error) {
	n := len(md.docs)
	y := mat.NewDense(n, md.k, nil)
	for i := 0; i < n; i++ {
		th := md.theta(i)
		mean := 0.0
		for t := range th {
			th[t] = math.Log(th[t])
			mean += th[t]
		}
		mean /= float64(md.k)
		for t := range th {
			th[t] -= mean
		}
		y.SetRow(i, th)
	}

	gm, err := ridge(x, y, md.o.Ridge)
	if err != nil {
		return nil, err
	}

	var eta mat.Dense
	eta.Mul(x, gm)
	scale := md.o.Alpha * float64(md.k)
	for i := 0; i < n; i++ {
		r := eta.RawRowView(i)
		mx := floats.Max(r)
		s := 0.0
		for t := range r {
			md.alpha[i][t] = math.Exp(r[t] - mx)
			s += md.alpha[i][t]
		}
		for t := range r {
			md.alpha[i][t] *= scale / s
		}
	}
	return gm, nil
}

// theta - normalised gamma of document i
func (md *model) theta(i int) []float64 {
	th := make([]float64, md.k)
	copy(th, md.gamma[i])
	floats.Scale(1/floats.Sum(th), th)
	return th
}

// bound - sum over documents of sum_w n_dw log sum_k theta_dk beta_kw
func (md *model) bound() float64 {
	per := make([]float64, len(md.docs))
	md.overblocks(func(_ int, lo int, hi int) {
		for i := lo; i < hi; i++ {
			th := md.theta(i)
			d := md.docs[i]
			ll := 0.0
			for j, w := range d.words {
				p := 0.0
				for t := 0; t < md.k; t++ {
					p += th[t] * md.beta[t*md.v+w]
				}
				ll += d.counts[j] * math.Log(p)
			}
			per[i] = ll
		}
	})
	total := 0.0
	for i := range per {
		total += per[i]
	}
	return total
}
