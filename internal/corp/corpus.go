//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package corp wraps loaded documents into an ordered corpus with append-only docvars.
package corp

import (
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"github.com/e-gun/HipparchiaTextLab/internal/gen"
	"github.com/e-gun/HipparchiaTextLab/internal/str"
	"github.com/e-gun/HipparchiaTextLab/internal/vv"
	"slices"
	"strconv"
)

const (
	STAGE = "corp"
)

// Docvars - per-document metadata; every column has one value per document, in corpus order
type Docvars struct {
	names []string
	cols  map[string][]string
	n     int
}

// NewDocvars - an empty set of docvars for n documents
func NewDocvars(n int) Docvars {
	return Docvars{cols: make(map[string][]string), n: n}
}

// Len - the number of documents the docvars describe
func (dv Docvars) Len() int { return dv.n }

// Names - column names in the order they were added
func (dv Docvars) Names() []string { return slices.Clone(dv.names) }

// Has - is there a column with this name?
func (dv Docvars) Has(name string) bool {
	_, ok := dv.cols[name]
	return ok
}

// Column - a copy of the named column, or nil
func (dv Docvars) Column(name string) []string {
	return slices.Clone(dv.cols[name])
}

// Value - the value of a column for document i
func (dv Docvars) Value(name string, i int) string {
	c, ok := dv.cols[name]
	if !ok || i < 0 || i >= len(c) {
		return ""
	}
	return c[i]
}

// With - a new Docvars with one more column; the receiver is untouched
func (dv Docvars) With(name string, values []string) (Docvars, error) {
	if name == "" {
		return dv, errs.Config(STAGE, "docvar names cannot be empty")
	}
	if dv.Has(name) {
		return dv, errs.Config(STAGE, "docvar '%s' already exists and cannot be replaced", name)
	}
	if len(values) != dv.n {
		return dv, errs.Config(STAGE, "docvar '%s' has %d values for %d documents", name, len(values), dv.n)
	}

	nd := Docvars{
		names: append(slices.Clone(dv.names), name),
		cols:  make(map[string][]string, len(dv.cols)+1),
		n:     dv.n,
	}
	for k, v := range dv.cols {
		nd.cols[k] = v
	}
	nd.cols[name] = slices.Clone(values)
	return nd, nil
}

// Select - a new Docvars holding only the listed rows, in the listed order
func (dv Docvars) Select(rows []int) Docvars {
	nd := Docvars{
		names: slices.Clone(dv.names),
		cols:  make(map[string][]string, len(dv.cols)),
		n:     len(rows),
	}
	for k, v := range dv.cols {
		c := make([]string, len(rows))
		for i, r := range rows {
			c[i] = v[r]
		}
		nd.cols[k] = c
	}
	return nd
}

// Levels - the distinct values of a column, sorted
func (dv Docvars) Levels(name string) []string {
	lv := gen.Unique(dv.cols[name])
	slices.Sort(lv)
	return lv
}

// Corpus - the documents and their docvars; immutable once built
type Corpus struct {
	docs []str.Document
	vars Docvars
}

// New - build a corpus; the loader columns plus any extra columns become docvars
func New(docs []str.Document) (*Corpus, error) {
	if len(docs) == 0 {
		return nil, errs.New(errs.ErrEmptyResult, STAGE, "a corpus needs at least one document")
	}

	seen := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		if _, dup := seen[d.ID]; dup {
			return nil, errs.New(errs.ErrDataLoad, STAGE, "duplicate document id '%s'", d.ID)
		}
		seen[d.ID] = struct{}{}
	}

	n := len(docs)
	country := make([]string, n)
	session := make([]string, n)
	year := make([]string, n)
	extra := make(map[string][]string)

	for i, d := range docs {
		country[i] = d.Country
		session[i] = strconv.Itoa(d.Session)
		year[i] = strconv.Itoa(d.Year)
		for k := range d.Extra {
			if _, ok := extra[k]; !ok {
				extra[k] = make([]string, n)
			}
		}
	}
	for k, c := range extra {
		for i, d := range docs {
			c[i] = d.Extra[k]
		}
	}

	var err error
	dv := NewDocvars(n)
	for _, col := range []struct {
		name string
		vals []string
	}{{vv.COLCOUNTRY, country}, {vv.COLSESSION, session}, {vv.COLYEAR, year}} {
		if dv, err = dv.With(col.name, col.vals); err != nil {
			return nil, err
		}
	}
	for _, k := range gen.SortedKeys(extra) {
		if dv.Has(k) {
			continue
		}
		if dv, err = dv.With(k, extra[k]); err != nil {
			return nil, err
		}
	}

	return &Corpus{docs: slices.Clone(docs), vars: dv}, nil
}

// Len - the number of documents
func (c *Corpus) Len() int { return len(c.docs) }

// Doc - document i
func (c *Corpus) Doc(i int) str.Document { return c.docs[i] }

// IDs - the document ids in corpus order
func (c *Corpus) IDs() []string {
	ids := make([]string, len(c.docs))
	for i := range c.docs {
		ids[i] = c.docs[i].ID
	}
	return ids
}

// Texts - the raw texts in corpus order
func (c *Corpus) Texts() []string {
	tt := make([]string, len(c.docs))
	for i := range c.docs {
		tt[i] = c.docs[i].Text
	}
	return tt
}

// Docvars - the metadata; Docvars values are never modified in place
func (c *Corpus) Docvars() Docvars { return c.vars }

// WithDocvar - a new corpus with one more docvar column
func (c *Corpus) WithDocvar(name string, values []string) (*Corpus, error) {
	nv, err := c.vars.With(name, values)
	if err != nil {
		return nil, err
	}
	return &Corpus{docs: c.docs, vars: nv}, nil
}

// WithDocvarFunc - compute a new docvar column from each document
func (c *Corpus) WithDocvarFunc(name string, fn func(d str.Document) string) (*Corpus, error) {
	vals := make([]string, len(c.docs))
	for i := range c.docs {
		vals[i] = fn(c.docs[i])
	}
	return c.WithDocvar(name, vals)
}

// WithDerived - add the continent and decade docvars unless they are already present
func (c *Corpus) WithDerived() (*Corpus, error) {
	out := c
	var err error
	if !out.vars.Has(vv.DVCONTINENT) {
		out, err = out.WithDocvarFunc(vv.DVCONTINENT, func(d str.Document) string { return Continent(d.Country) })
		if err != nil {
			return nil, err
		}
	}
	if !out.vars.Has(vv.DVDECADE) {
		out, err = out.WithDocvarFunc(vv.DVDECADE, func(d str.Document) string { return Decade(d.Year) })
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Decade - 1987 --> "1980s"
func Decade(y int) string {
	d := y - y%10
	if y < 0 && y%10 != 0 {
		d -= 10
	}
	return fmt.Sprintf("%ds", d)
}
