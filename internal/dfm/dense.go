//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package dfm

import (
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"github.com/e-gun/nlp"
	"gonum.org/v1/gonum/mat"
)

// TermDocDense - terms x documents, the orientation the nlp transformers expect
func (m *Matrix) TermDocDense() *mat.Dense {
	if m.Nterms() == 0 || m.Ndocs() == 0 {
		return nil
	}
	d := mat.NewDense(m.Nterms(), m.Ndocs(), nil)
	for i := range m.rows {
		for _, c := range m.rows[i] {
			d.Set(c.Term, i, float64(c.Count))
		}
	}
	return d
}

// Weight - tf-idf weights, documents x terms
func (m *Matrix) Weight() (*mat.Dense, error) {
	td := m.TermDocDense()
	if td == nil {
		return nil, errs.New(errs.ErrEmptyResult, "dfm.Weight", "nothing to weight")
	}
	tfidf := nlp.NewTfidfTransformer()
	w, err := tfidf.FitTransform(td)
	if err != nil {
		return nil, errs.Wrap(errs.ErrInvalidConfiguration, "dfm.Weight", err)
	}
	out := mat.DenseCopyOf(w.T())
	return out, nil
}
