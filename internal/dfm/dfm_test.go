//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package dfm

import (
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/corp"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"github.com/e-gun/HipparchiaTextLab/internal/stops"
	"github.com/e-gun/HipparchiaTextLab/internal/str"
	"github.com/e-gun/HipparchiaTextLab/internal/tok"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func buildfrom(t *testing.T, texts []string, countries []string, o Options) *Matrix {
	t.Helper()
	docs := make([]str.Document, len(texts))
	for i := range texts {
		docs[i] = str.Document{ID: fmt.Sprintf("d%d", i+1), Text: texts[i], Country: countries[i%len(countries)], Year: 1970 + i}
	}
	c, err := corp.New(docs)
	require.NoError(t, err)
	m, err := Build(tok.Tokenize(c, tok.Options{}), c.Docvars(), o)
	require.NoError(t, err)
	return m
}

func quickfox(t *testing.T) *Matrix {
	return buildfrom(t, []string{"the quick fox", "the lazy dog", "the quick dog"}, []string{"USA"},
		Options{Lower: true, Stopwords: stops.NewSet([]string{"the"})})
}

func TestBuildQuickFox(t *testing.T) {
	m := quickfox(t)
	assert.Equal(t, []string{"quick", "fox", "lazy", "dog"}, m.Terms())
	assert.Equal(t, []int{2, 1, 1, 2}, m.DocFreq())
	assert.Equal(t, 3, m.Ndocs())
	assert.Equal(t, -1, m.TermIndex("the"))
	assert.Equal(t, 1, m.Count(2, m.TermIndex("dog")))
	assert.Equal(t, 0, m.Count(0, m.TermIndex("dog")))
}

func TestTrimQuickFox(t *testing.T) {
	m := quickfox(t)
	tr, err := m.Trim(TrimOptions{MinDocFreq: 0.5, MaxDocFreq: 1.0})
	require.NoError(t, err)
	assert.Equal(t, []string{"quick", "dog"}, tr.Terms())
	assert.Equal(t, []int{2, 2}, tr.DocFreq())
	assert.Equal(t, 4, m.Nterms(), "the untrimmed matrix must not change")
	assert.Equal(t, []Cell{{Term: 0, Count: 1}, {Term: 1, Count: 1}}, tr.Row(2))
}

func TestBuildFoldsAndStems(t *testing.T) {
	m := buildfrom(t, []string{"Nation nations NATIONS the The"}, []string{"USA"},
		Options{Lower: true, Stem: true, Stopwords: stops.English()})
	assert.Equal(t, []string{"nation"}, m.Terms())
	assert.Equal(t, []int{3}, m.TermFreq())

	raw := buildfrom(t, []string{"Nation nation The"}, []string{"USA"}, Options{Stopwords: stops.NewSet([]string{"the"})})
	assert.Equal(t, []string{"Nation", "nation"}, raw.Terms())
}

func TestBuildRejects(t *testing.T) {
	_, err := Build(tok.NewTokens(nil, nil), corp.NewDocvars(0), Options{})
	assert.ErrorIs(t, err, errs.ErrEmptyResult)

	_, err = Build(tok.NewTokens([]string{"a"}, [][]string{{"x"}}), corp.NewDocvars(2), Options{})
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestTrimBounds(t *testing.T) {
	o := TrimOptions{MinDocFreq: 0.075, MaxDocFreq: 0.90}
	for _, tc := range []struct{ n, lo, hi int }{
		{100, 8, 90}, {40, 3, 36}, {10, 1, 9}, {3, 1, 2}, {1000, 75, 900},
	} {
		lo, hi := o.Bounds(tc.n)
		assert.Equal(t, tc.lo, lo, "lo for %d", tc.n)
		assert.Equal(t, tc.hi, hi, "hi for %d", tc.n)
	}

	lo, hi := TrimOptions{MinDocFreq: 0.5, MaxDocFreq: 1}.Bounds(3)
	assert.Equal(t, 2, lo)
	assert.Equal(t, 3, hi)

	// 0.3 * 10 is 3.0000000000000004 in floating point
	lo, _ = TrimOptions{MinDocFreq: 0.3, MaxDocFreq: 1}.Bounds(10)
	assert.Equal(t, 3, lo)
}

// terms in fewer than ceil(0.075N) or more than floor(0.9N) documents are gone; the rest remain
func TestTrimBandProperty(t *testing.T) {
	var texts []string
	for i := 0; i < 40; i++ {
		s := "always"
		if i < 37 {
			s += " mostly"
		}
		if i < 36 {
			s += " often"
		}
		if i < 3 {
			s += " seldom"
		}
		if i < 2 {
			s += " rare"
		}
		texts = append(texts, s)
	}
	m := buildfrom(t, texts, []string{"USA"}, Options{Lower: true})
	tr, err := m.Trim(TrimOptions{MinDocFreq: 0.075, MaxDocFreq: 0.90})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"often", "seldom"}, tr.Terms())
	for _, df := range tr.DocFreq() {
		assert.GreaterOrEqual(t, df, 1)
	}
}

func TestTrimErrors(t *testing.T) {
	m := quickfox(t)

	_, err := m.Trim(TrimOptions{MinDocFreq: 0.8, MaxDocFreq: 0.2})
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	_, err = m.Trim(TrimOptions{MinDocFreq: -0.1, MaxDocFreq: 0.2})
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	_, err = m.Trim(TrimOptions{MinDocFreq: 0.1, MaxDocFreq: 1.2})
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	_, err = m.Trim(TrimOptions{MinDocFreq: 0.9, MaxDocFreq: 1.0})
	assert.ErrorIs(t, err, errs.ErrEmptyResult)
	assert.Equal(t, TSTAGE, errs.Stage(err))

	tr, err := m.Trim(TrimOptions{MinDocFreq: 0, MaxDocFreq: 1, MinTermFreq: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"quick", "dog"}, tr.Terms())
}

func TestTopFeatures(t *testing.T) {
	m := quickfox(t)
	top := m.TopFeatures(3)
	require.Len(t, top, 3)
	assert.Equal(t, Feature{Term: "dog", Count: 2, DocFreq: 2, Rank: 1}, top[0])
	assert.Equal(t, "quick", top[1].Term)
	assert.Equal(t, "fox", top[2].Term)
	assert.Len(t, m.TopFeatures(0), 4)
}

func TestGroupIsAdditive(t *testing.T) {
	m := buildfrom(t, []string{"peace war", "peace", "trade peace", "war war"}, []string{"USA", "FRA"}, Options{Lower: true})
	g, err := m.Group("country")
	require.NoError(t, err)
	assert.Equal(t, []string{"FRA", "USA"}, g.IDs())
	assert.Equal(t, 1, g.Count(0, g.TermIndex("peace")))
	assert.Equal(t, 2, g.Count(0, g.TermIndex("war")))
	assert.Equal(t, 2, g.Count(1, g.TermIndex("peace")))
	assert.Equal(t, 0, g.Count(0, g.TermIndex("trade")))
	assert.Equal(t, 1, g.Count(1, g.TermIndex("war")))
	assert.Equal(t, []string{"FRA", "USA"}, g.Docvars().Column("country"))

	_, err = m.Group("bloc")
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestSubsetAndDropEmpty(t *testing.T) {
	m := buildfrom(t, []string{"peace", "", "war"}, []string{"USA", "FRA", "CHN"}, Options{})
	ne, dropped := m.DropEmpty()
	assert.Equal(t, []string{"d2"}, dropped)
	assert.Equal(t, []string{"d1", "d3"}, ne.IDs())
	assert.Equal(t, []string{"USA", "CHN"}, ne.Docvars().Column("country"))

	s, err := m.Subset([]string{"d3", "d1"})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count(0, s.TermIndex("war")))

	_, err = m.Subset([]string{"d9"})
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestDenseAndWeight(t *testing.T) {
	m := quickfox(t)
	td := m.TermDocDense()
	r, c := td.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 1.0, td.At(m.TermIndex("fox"), 0))

	w, err := m.Weight()
	require.NoError(t, err)
	wr, wc := w.Dims()
	assert.Equal(t, 3, wr)
	assert.Equal(t, 4, wc)
	// fox is rarer than quick, so it weighs more in the document holding both
	assert.Greater(t, w.At(0, m.TermIndex("fox")), w.At(0, m.TermIndex("quick")))
	assert.Equal(t, 0.0, w.At(0, m.TermIndex("lazy")))
}
