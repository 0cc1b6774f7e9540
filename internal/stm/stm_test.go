//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package stm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/corp"
	"github.com/e-gun/HipparchiaTextLab/internal/dfm"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"github.com/e-gun/HipparchiaTextLab/internal/mm"
	"github.com/e-gun/HipparchiaTextLab/internal/str"
	"github.com/e-gun/HipparchiaTextLab/internal/tok"
	"github.com/e-gun/HipparchiaTextLab/internal/vv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"strings"
	"testing"
)

var (
	security = []string{"peace", "security", "nuclear", "disarmament", "treaty"}
	economy  = []string{"trade", "growth", "debt", "market", "export"}
)

// twotopics - even documents talk security, odd ones economics; every fifth document mixes in a little of the other
func twotopics(t *testing.T, n int) *dfm.Matrix {
	t.Helper()
	docs := make([]str.Document, n)
	for i := 0; i < n; i++ {
		main, other := security, economy
		country := "USA"
		if i%2 == 1 {
			main, other = economy, security
			country = "FRA"
		}
		var ww []string
		for j := 0; j < 12; j++ {
			ww = append(ww, main[(i+j)%len(main)])
		}
		if i%5 == 0 {
			ww = append(ww, other[i%len(other)])
		}
		ww = append(ww, "nations")
		docs[i] = str.Document{ID: fmt.Sprintf("doc%03d", i), Text: strings.Join(ww, " "), Country: country, Year: 1970 + i%20}
	}
	c, err := corp.New(docs)
	require.NoError(t, err)
	m, err := dfm.Build(tok.Tokenize(c, tok.Options{}), c.Docvars(), dfm.Options{Lower: true})
	require.NoError(t, err)
	return m
}

func testoptions() Options {
	o := DefaultOptions()
	o.K = 2
	o.Tolerance = 1e-4
	o.MaxIterations = 500
	o.Workers = 2
	return o
}

func rowsums(t *testing.T, r *Result) {
	t.Helper()
	n, k := r.Theta.Dims()
	assert.Equal(t, r.K, k)
	for i := 0; i < n; i++ {
		assert.InDelta(t, 1.0, floats.Sum(r.Theta.RawRowView(i)), 1e-9)
	}
	for i := 0; i < r.K; i++ {
		assert.InDelta(t, 1.0, floats.Sum(r.Beta.RawRowView(i)), 1e-9)
	}
}

func TestFitSeparatesTopics(t *testing.T) {
	m := twotopics(t, 40)
	r, err := Fit(context.Background(), m, testoptions())
	require.NoError(t, err)
	rowsums(t, r)

	assert.Equal(t, 40, len(r.DocIDs))
	assert.Equal(t, r.Iterations, len(r.Trace))
	assert.GreaterOrEqual(t, r.Iterations, 2)

	dom := r.Dominant()
	assert.NotEqual(t, dom[0], dom[1])
	for i := range dom {
		assert.Equal(t, dom[i%2], dom[i], "document %d", i)
	}

	sec := r.TopTerms(dom[0], 5)
	require.Len(t, sec, 5)
	for _, tp := range sec {
		assert.Contains(t, security, tp.Term)
	}
	assert.Len(t, r.Labels(3), 2)

	sh := r.Shares()
	assert.InDelta(t, 1.0, floats.Sum(sh), 1e-9)
}

func TestFitIsDeterministic(t *testing.T) {
	m := twotopics(t, 150)
	for _, init := range []string{vv.INITSPECTRAL, vv.INITRANDOM} {
		o := testoptions()
		o.Init = init
		o.Workers = 1
		one, err := Fit(context.Background(), m, o)
		require.NoError(t, err, init)

		o.Workers = 7
		many, err := Fit(context.Background(), m, o)
		require.NoError(t, err, init)

		again, err := Fit(context.Background(), m, o)
		require.NoError(t, err, init)

		assert.Equal(t, one.Theta.RawMatrix().Data, many.Theta.RawMatrix().Data, init)
		assert.Equal(t, one.Beta.RawMatrix().Data, many.Beta.RawMatrix().Data, init)
		assert.Equal(t, many.Theta.RawMatrix().Data, again.Theta.RawMatrix().Data, init)
		assert.Equal(t, one.Trace, again.Trace, init)
	}
}

func TestFitWithCovariates(t *testing.T) {
	m := twotopics(t, 60)
	o := testoptions()
	o.Covariates = []string{vv.COLCOUNTRY, vv.COLYEAR}

	r, err := Fit(context.Background(), m, o)
	require.NoError(t, err)
	rowsums(t, r)

	require.NotNil(t, r.Gamma)
	p, k := r.Gamma.Dims()
	assert.Equal(t, 3, p)
	assert.Equal(t, 2, k)
	assert.Equal(t, []string{"(intercept)", "country=USA", vv.COLYEAR}, r.Covariates)

	levels, shares, err := r.TopicShares(vv.COLCOUNTRY)
	require.NoError(t, err)
	assert.Equal(t, []string{"FRA", "USA"}, levels)
	for _, s := range shares {
		assert.InDelta(t, 1.0, floats.Sum(s), 1e-9)
	}
	// the two countries talk about different things
	assert.NotEqual(t, floats.MaxIdx(shares[0]), floats.MaxIdx(shares[1]))

	_, _, err = r.TopicShares("bloc")
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	o.Covariates = []string{"bloc"}
	_, err = Fit(context.Background(), m, o)
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestFitNonConvergence(t *testing.T) {
	o := testoptions()
	o.MaxIterations = 1
	r, err := Fit(context.Background(), twotopics(t, 20), o)
	assert.Nil(t, r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNonConvergence))

	var nce *NonConvergenceError
	require.True(t, errors.As(err, &nce))
	assert.Equal(t, 1, nce.Iterations)
}

func TestFitDropsEmptyDocuments(t *testing.T) {
	m := twotopics(t, 20)
	padded, err := dfm.Build(tok.NewTokens(append(m.IDs(), "blank"), append(rebuildtokens(m), nil)),
		extend(t, m.Docvars()), dfm.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	Msg = mm.NewMessageMaker("test", "T", "0", mm.MSGWARN, true)
	Msg.Out = &buf
	defer func() { Msg = mm.NewSilentMessageMaker() }()

	r, err := Fit(context.Background(), padded, testoptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"blank"}, r.Dropped)
	assert.Contains(t, buf.String(), "were dropped: blank")
	assert.Len(t, r.DocIDs, 20)
}

func rebuildtokens(m *dfm.Matrix) [][]string {
	terms := m.Terms()
	out := make([][]string, m.Ndocs())
	for i := 0; i < m.Ndocs(); i++ {
		for _, c := range m.Row(i) {
			for n := 0; n < c.Count; n++ {
				out[i] = append(out[i], terms[c.Term])
			}
		}
	}
	return out
}

func extend(t *testing.T, dv corp.Docvars) corp.Docvars {
	t.Helper()
	nd := corp.NewDocvars(dv.Len() + 1)
	for _, name := range dv.Names() {
		var err error
		nd, err = nd.With(name, append(dv.Column(name), "0"))
		require.NoError(t, err)
	}
	return nd
}

func TestFitRejects(t *testing.T) {
	m := twotopics(t, 10)
	for name, mod := range map[string]func(o *Options){
		"k too small":  func(o *Options) { o.K = 1 },
		"k too large":  func(o *Options) { o.K = vv.STMMAXTOPICS + 1 },
		"unknown init": func(o *Options) { o.Init = "kmeans" },
		"no budget":    func(o *Options) { o.MaxIterations = 0 },
		"bad tol":      func(o *Options) { o.Tolerance = 0 },
	} {
		o := testoptions()
		mod(&o)
		_, err := Fit(context.Background(), m, o)
		assert.ErrorIs(t, err, errs.ErrInvalidConfiguration, name)
	}

	o := testoptions()
	o.K = 20
	_, err := Fit(context.Background(), m, o)
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration, "more anchors than features")
}

func TestFitHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Fit(ctx, twotopics(t, 10), testoptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLDAInitialization(t *testing.T) {
	o := testoptions()
	o.Init = vv.INITLDA
	r, err := Fit(context.Background(), twotopics(t, 30), o)
	require.NoError(t, err)
	rowsums(t, r)
	assert.Equal(t, vv.INITLDA, r.Init)
}

func TestDesignMatrix(t *testing.T) {
	dv := corp.NewDocvars(4)
	dv, err := dv.With("year", []string{"1970", "1980", "1990", "2000"})
	require.NoError(t, err)
	dv, err = dv.With("continent", []string{"Asia", "Europe", "Africa", "Asia"})
	require.NoError(t, err)
	dv, err = dv.With("flat", []string{"x", "x", "x", "x"})
	require.NoError(t, err)

	x, names, err := DesignMatrix(dv, []string{"year", "continent", "flat"})
	require.NoError(t, err)
	assert.Equal(t, []string{"(intercept)", "year", "continent=Asia", "continent=Europe"}, names)
	r, c := x.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 4, c)
	assert.InDelta(t, 0.0, floats.Sum([]float64{x.At(0, 1), x.At(1, 1), x.At(2, 1), x.At(3, 1)}), 1e-12)
	assert.Equal(t, []float64{1, 0, 0, 1}, []float64{x.At(0, 2), x.At(1, 2), x.At(2, 2), x.At(3, 2)})
}
