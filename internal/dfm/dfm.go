//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package dfm builds, trims and reshapes sparse document-feature matrices.
package dfm

import (
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/corp"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"github.com/e-gun/HipparchiaTextLab/internal/mm"
	"github.com/e-gun/HipparchiaTextLab/internal/stops"
	"github.com/e-gun/HipparchiaTextLab/internal/tok"
	"github.com/kljensen/snowball/english"
	"golang.org/x/text/cases"
	"slices"
	"sort"
)

const (
	STAGE = "dfm.Build"
)

var Msg = mm.NewSilentMessageMaker()

// Options - how tokens become features
type Options struct {
	Lower     bool
	Stem      bool
	Stopwords stops.Set
}

// Cell - one non-zero count; Term indexes Matrix.Terms()
type Cell struct {
	Term  int
	Count int
}

// Matrix - documents x terms, stored as sorted sparse rows
type Matrix struct {
	ids   []string
	terms []string
	rows  [][]Cell
	vars  corp.Docvars
}

// Build - fold, drop stop words, stem, count; columns appear in order of first appearance
func Build(t tok.Tokens, vars corp.Docvars, o Options) (*Matrix, error) {
	const (
		MSG = "dfm.Build(): %s documents x %s features"
	)

	if t.Len() == 0 {
		return nil, errs.New(errs.ErrEmptyResult, STAGE, "no documents to count")
	}
	if vars.Len() != t.Len() {
		return nil, errs.Config(STAGE, "%d docvar rows for %d documents", vars.Len(), t.Len())
	}

	fold := cases.Fold()
	index := make(map[string]int)
	m := &Matrix{ids: t.IDs(), rows: make([][]Cell, t.Len()), vars: vars}

	for i := 0; i < t.Len(); i++ {
		counts := make(map[int]int)
		for _, w := range t.Doc(i) {
			f := fold.String(w)
			if o.Stopwords.Has(f) {
				continue
			}
			if o.Lower {
				w = f
			}
			if o.Stem {
				w = english.Stem(w, true)
			}
			if w == "" {
				continue
			}
			j, ok := index[w]
			if !ok {
				j = len(m.terms)
				index[w] = j
				m.terms = append(m.terms, w)
			}
			counts[j]++
		}
		m.rows[i] = tocells(counts)
	}

	Msg.FYI(fmt.Sprintf(MSG, Msg.N(m.Ndocs()), Msg.N(m.Nterms())))
	return m, nil
}

func tocells(counts map[int]int) []Cell {
	cc := make([]Cell, 0, len(counts))
	for j, n := range counts {
		cc = append(cc, Cell{Term: j, Count: n})
	}
	sort.Slice(cc, func(a, b int) bool { return cc[a].Term < cc[b].Term })
	return cc
}

// Ndocs - number of rows
func (m *Matrix) Ndocs() int { return len(m.ids) }

// Nterms - number of columns
func (m *Matrix) Nterms() int { return len(m.terms) }

// IDs - row names
func (m *Matrix) IDs() []string { return slices.Clone(m.ids) }

// Terms - column names
func (m *Matrix) Terms() []string { return slices.Clone(m.terms) }

// Docvars - metadata for the rows
func (m *Matrix) Docvars() corp.Docvars { return m.vars }

// Row - a copy of the non-zero cells of row i
func (m *Matrix) Row(i int) []Cell { return slices.Clone(m.rows[i]) }

// RowSum - total count in row i
func (m *Matrix) RowSum(i int) int {
	n := 0
	for _, c := range m.rows[i] {
		n += c.Count
	}
	return n
}

// Count - the count of term j in row i
func (m *Matrix) Count(i int, j int) int {
	r := m.rows[i]
	k := sort.Search(len(r), func(x int) bool { return r[x].Term >= j })
	if k < len(r) && r[k].Term == j {
		return r[k].Count
	}
	return 0
}

// TermIndex - the column of a term, or -1
func (m *Matrix) TermIndex(term string) int {
	return slices.Index(m.terms, term)
}

// DocFreq - for each term, the number of documents that contain it
func (m *Matrix) DocFreq() []int {
	df := make([]int, len(m.terms))
	for i := range m.rows {
		for _, c := range m.rows[i] {
			df[c.Term]++
		}
	}
	return df
}

// TermFreq - for each term, its total count
func (m *Matrix) TermFreq() []int {
	tf := make([]int, len(m.terms))
	for i := range m.rows {
		for _, c := range m.rows[i] {
			tf[c.Term] += c.Count
		}
	}
	return tf
}

// Feature - one line of a frequency table
type Feature struct {
	Term    string
	Count   int
	DocFreq int
	Rank    int
}

// TopFeatures - the n most frequent terms; ties go to the lexically smaller term; n < 1 means all
func (m *Matrix) TopFeatures(n int) []Feature {
	tf := m.TermFreq()
	df := m.DocFreq()
	ff := make([]Feature, len(m.terms))
	for j := range m.terms {
		ff[j] = Feature{Term: m.terms[j], Count: tf[j], DocFreq: df[j]}
	}
	sort.Slice(ff, func(a, b int) bool {
		if ff[a].Count != ff[b].Count {
			return ff[a].Count > ff[b].Count
		}
		return ff[a].Term < ff[b].Term
	})
	if n > 0 && n < len(ff) {
		ff = ff[:n]
	}
	for i := range ff {
		ff[i].Rank = i + 1
	}
	return ff
}

// keepcolumns - a new matrix holding only the flagged columns, renumbered in their old order
func (m *Matrix) keepcolumns(keep []bool) *Matrix {
	remap := make([]int, len(m.terms))
	var terms []string
	for j := range m.terms {
		remap[j] = -1
		if keep[j] {
			remap[j] = len(terms)
			terms = append(terms, m.terms[j])
		}
	}
	nm := &Matrix{ids: slices.Clone(m.ids), terms: terms, rows: make([][]Cell, len(m.rows)), vars: m.vars}
	for i := range m.rows {
		var r []Cell
		for _, c := range m.rows[i] {
			if remap[c.Term] >= 0 {
				r = append(r, Cell{Term: remap[c.Term], Count: c.Count})
			}
		}
		nm.rows[i] = r
	}
	return nm
}

// SelectRows - a new matrix with the listed rows in the listed order; columns are left alone
func (m *Matrix) SelectRows(rows []int) *Matrix {
	nm := &Matrix{terms: slices.Clone(m.terms), vars: m.vars.Select(rows)}
	for _, r := range rows {
		nm.ids = append(nm.ids, m.ids[r])
		nm.rows = append(nm.rows, slices.Clone(m.rows[r]))
	}
	return nm
}

// Subset - the rows whose ids are listed; unknown ids are an error
func (m *Matrix) Subset(ids []string) (*Matrix, error) {
	where := make(map[string]int, len(m.ids))
	for i, id := range m.ids {
		where[id] = i
	}
	rows := make([]int, 0, len(ids))
	for _, id := range ids {
		i, ok := where[id]
		if !ok {
			return nil, errs.Config("dfm.Subset", "no document '%s'", id)
		}
		rows = append(rows, i)
	}
	return m.SelectRows(rows), nil
}

// DropEmpty - a new matrix without the all-zero rows, and the ids that were dropped
func (m *Matrix) DropEmpty() (*Matrix, []string) {
	var keep []int
	var dropped []string
	for i := range m.rows {
		if len(m.rows[i]) == 0 {
			dropped = append(dropped, m.ids[i])
			continue
		}
		keep = append(keep, i)
	}
	if len(dropped) == 0 {
		return m, nil
	}
	return m.SelectRows(keep), dropped
}

// Group - sum rows that share a docvar value; groups are sorted by value and keep that docvar only
func (m *Matrix) Group(field string) (*Matrix, error) {
	if !m.vars.Has(field) {
		return nil, errs.Config("dfm.Group", "no docvar named '%s'", field)
	}
	col := m.vars.Column(field)
	levels := m.vars.Levels(field)
	where := make(map[string]int, len(levels))
	for i, l := range levels {
		where[l] = i
	}

	acc := make([]map[int]int, len(levels))
	for i := range acc {
		acc[i] = make(map[int]int)
	}
	for i := range m.rows {
		g := where[col[i]]
		for _, c := range m.rows[i] {
			acc[g][c.Term] += c.Count
		}
	}

	nm := &Matrix{ids: slices.Clone(levels), terms: slices.Clone(m.terms), rows: make([][]Cell, len(levels))}
	for g := range acc {
		nm.rows[g] = tocells(acc[g])
	}
	var err error
	nm.vars, err = corp.NewDocvars(len(levels)).With(field, levels)
	if err != nil {
		return nil, err
	}
	return nm, nil
}
