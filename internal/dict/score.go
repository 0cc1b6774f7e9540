//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package dict

import (
	"github.com/e-gun/HipparchiaTextLab/internal/corp"
	"github.com/e-gun/HipparchiaTextLab/internal/dfm"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"slices"
	"strings"
)

// Scores - rows (documents or groups) x dictionary categories
type Scores struct {
	ids        []string
	categories []string
	counts     [][]int
	vars       corp.Docvars
}

// Score - sum the counts of every term that matches each category; unmatched terms are dropped
func Score(m *dfm.Matrix, d *Dictionary) *Scores {
	terms := m.Terms()
	hits := make([][]int, len(terms))
	for j, t := range terms {
		hits[j] = d.Matches(t)
	}

	s := &Scores{
		ids:        m.IDs(),
		categories: d.Categories(),
		counts:     make([][]int, m.Ndocs()),
		vars:       m.Docvars(),
	}
	for i := 0; i < m.Ndocs(); i++ {
		row := make([]int, len(s.categories))
		for _, c := range m.Row(i) {
			for _, k := range hits[c.Term] {
				row[k] += c.Count
			}
		}
		s.counts[i] = row
	}
	return s
}

// IDs - row names
func (s *Scores) IDs() []string { return slices.Clone(s.ids) }

// Categories - column names
func (s *Scores) Categories() []string { return slices.Clone(s.categories) }

// Docvars - metadata for the rows
func (s *Scores) Docvars() corp.Docvars { return s.vars }

// Len - number of rows
func (s *Scores) Len() int { return len(s.ids) }

// Row - a copy of row i
func (s *Scores) Row(i int) []int { return slices.Clone(s.counts[i]) }

// Get - the count for row i and a named category; -1 if there is no such category
func (s *Scores) Get(i int, cat string) int {
	k := slices.Index(s.categories, cat)
	if k < 0 {
		return -1
	}
	return s.counts[i][k]
}

// Totals - per category sums over all rows
func (s *Scores) Totals() []int {
	tt := make([]int, len(s.categories))
	for i := range s.counts {
		for k, n := range s.counts[i] {
			tt[k] += n
		}
	}
	return tt
}

// Shares - each row as proportions of its own total; an all-zero row stays all zero
func (s *Scores) Shares() [][]float64 {
	out := make([][]float64, len(s.counts))
	for i := range s.counts {
		tot := 0
		for _, n := range s.counts[i] {
			tot += n
		}
		out[i] = make([]float64, len(s.counts[i]))
		if tot == 0 {
			continue
		}
		for k, n := range s.counts[i] {
			out[i][k] = float64(n) / float64(tot)
		}
	}
	return out
}

// Group - sum rows that share the values of the named docvars; keys are joined with " / " and sorted
func (s *Scores) Group(fields ...string) (*Scores, error) {
	const (
		STAGE = "dict.Group"
		JOIN  = " / "
	)
	if len(fields) == 0 {
		return nil, errs.Config(STAGE, "no fields to group by")
	}
	for _, f := range fields {
		if !s.vars.Has(f) {
			return nil, errs.Config(STAGE, "no docvar named '%s'", f)
		}
	}

	where := make(map[string]int)
	var keys []string
	var first []int
	rowkey := make([]string, len(s.ids))
	for i := range s.ids {
		parts := make([]string, len(fields))
		for k, f := range fields {
			parts[k] = s.vars.Value(f, i)
		}
		rowkey[i] = strings.Join(parts, JOIN)
		if _, ok := where[rowkey[i]]; !ok {
			where[rowkey[i]] = -1
			keys = append(keys, rowkey[i])
			first = append(first, i)
		}
	}

	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int { return strings.Compare(keys[a], keys[b]) })

	g := &Scores{categories: slices.Clone(s.categories), counts: make([][]int, len(keys))}
	reps := make([]int, len(keys))
	for pos, k := range order {
		where[keys[k]] = pos
		g.ids = append(g.ids, keys[k])
		g.counts[pos] = make([]int, len(s.categories))
		reps[pos] = first[k]
	}
	for i := range s.ids {
		pos := where[rowkey[i]]
		for k, n := range s.counts[i] {
			g.counts[pos][k] += n
		}
	}

	// the grouping fields are constant within a group, so the first member speaks for it
	dv := s.vars.Select(reps)
	g.vars = corp.NewDocvars(len(keys))
	var err error
	for _, f := range fields {
		if g.vars, err = g.vars.With(f, dv.Column(f)); err != nil {
			return nil, err
		}
	}
	return g, nil
}
