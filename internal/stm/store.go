//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package stm

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/dfm"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"gonum.org/v1/gonum/mat"
)

// stored - a Result flattened for json; docvars are not kept and come back from the matrix
type stored struct {
	K          int
	Theta      []float64
	Beta       []float64
	Vocab      []string
	DocIDs     []string
	Dropped    []string
	Gamma      []float64
	Covariates []string
	Iterations int
	Trace      []float64
	Init       string
	Seed       uint64
}

// Fingerprint - derive a unique md5 for a matrix and every option that changes a fit
func Fingerprint(m *dfm.Matrix, o Options) string {
	const (
		MSG1 = "stm.Fingerprint(): "
	)

	h := md5.New()
	// Workers is left out: it never changes the result
	_, _ = fmt.Fprintf(h, "%d|%d|%s|%d|%g|%g|%g|%d|%g|%g|%q\n", o.K, o.Seed, o.Init, o.MaxIterations, o.Tolerance,
		o.Alpha, o.Eta, o.EStepIter, o.EStepTol, o.Ridge, o.Covariates)
	_, _ = fmt.Fprintf(h, "%q\n", m.Terms())
	for i, id := range m.IDs() {
		_, _ = fmt.Fprintf(h, "%q:%v\n", id, m.Row(i))
	}
	dv := m.Docvars()
	for _, c := range o.Covariates {
		if dv.Has(c) {
			_, _ = fmt.Fprintf(h, "%q:%q\n", c, dv.Column(c))
		}
	}

	fp := fmt.Sprintf("%x", h.Sum(nil))
	Msg.TMI(MSG1 + fp)
	return fp
}

// Encode - the Result as json
func (r *Result) Encode() ([]byte, error) {
	s := stored{
		K:          r.K,
		Theta:      mat.DenseCopyOf(r.Theta).RawMatrix().Data,
		Beta:       mat.DenseCopyOf(r.Beta).RawMatrix().Data,
		Vocab:      r.Vocab,
		DocIDs:     r.DocIDs,
		Dropped:    r.Dropped,
		Covariates: r.Covariates,
		Iterations: r.Iterations,
		Trace:      r.Trace,
		Init:       r.Init,
		Seed:       r.Seed,
	}
	if r.Gamma != nil {
		s.Gamma = mat.DenseCopyOf(r.Gamma).RawMatrix().Data
	}
	return json.Marshal(s)
}

// Decode - rebuild a Result from Encode output; m must be the matrix the model was fitted to
func Decode(data []byte, m *dfm.Matrix) (*Result, error) {
	const (
		STG = "stm.Decode"
	)

	var s stored
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, STG, err)
	}
	n, v := len(s.DocIDs), len(s.Vocab)
	if s.K < 1 || len(s.Theta) != n*s.K || len(s.Beta) != s.K*v {
		return nil, errs.New(errs.ErrDataLoad, STG, "a stored model has inconsistent dimensions")
	}

	fitted, err := m.Subset(s.DocIDs)
	if err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, STG, err)
	}

	r := &Result{
		K:          s.K,
		Theta:      mat.NewDense(n, s.K, s.Theta),
		Beta:       mat.NewDense(s.K, v, s.Beta),
		Vocab:      s.Vocab,
		DocIDs:     s.DocIDs,
		Docvars:    fitted.Docvars(),
		Dropped:    s.Dropped,
		Covariates: s.Covariates,
		Iterations: s.Iterations,
		Trace:      s.Trace,
		Init:       s.Init,
		Seed:       s.Seed,
	}
	if len(s.Gamma) > 0 {
		if len(s.Gamma) != len(s.Covariates)*s.K {
			return nil, errs.New(errs.ErrDataLoad, STG, "a stored model has inconsistent covariates")
		}
		r.Gamma = mat.NewDense(len(s.Covariates), s.K, s.Gamma)
	}
	return r, nil
}
