//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package corp

import (
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"github.com/e-gun/HipparchiaTextLab/internal/str"
	"github.com/e-gun/HipparchiaTextLab/internal/vv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func speeches() []str.Document {
	return []str.Document{
		{ID: "USA_25_1970", Text: "peace and trade", Country: "USA", Session: 25, Year: 1970, Extra: map[string]string{"speaker": "Nixon"}},
		{ID: "FRA_34_1979", Text: "la paix", Country: "FRA", Session: 34, Year: 1979},
		{ID: "XXX_40_1985", Text: "", Country: "XXX", Session: 40, Year: 1985},
	}
}

func TestNew(t *testing.T) {
	c, err := New(speeches())
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"USA_25_1970", "FRA_34_1979", "XXX_40_1985"}, c.IDs())

	dv := c.Docvars()
	assert.Equal(t, []string{vv.COLCOUNTRY, vv.COLSESSION, vv.COLYEAR, "speaker"}, dv.Names())
	assert.Equal(t, "1979", dv.Value(vv.COLYEAR, 1))
	assert.Equal(t, []string{"Nixon", "", ""}, dv.Column("speaker"))
}

func TestNewRejects(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, errs.ErrEmptyResult)

	d := speeches()
	d[2].ID = d[0].ID
	_, err = New(d)
	assert.ErrorIs(t, err, errs.ErrDataLoad)
}

func TestWithDocvarIsAppendOnly(t *testing.T) {
	c, err := New(speeches())
	require.NoError(t, err)

	c2, err := c.WithDocvar("bloc", []string{"west", "west", "none"})
	require.NoError(t, err)
	assert.True(t, c2.Docvars().Has("bloc"))
	assert.False(t, c.Docvars().Has("bloc"), "the original corpus must not change")

	_, err = c2.WithDocvar("bloc", []string{"a", "b", "c"})
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	_, err = c2.WithDocvar(vv.COLCOUNTRY, []string{"a", "b", "c"})
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	_, err = c.WithDocvar("short", []string{"a"})
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestWithDerived(t *testing.T) {
	c, err := New(speeches())
	require.NoError(t, err)
	c, err = c.WithDerived()
	require.NoError(t, err)

	dv := c.Docvars()
	assert.Equal(t, []string{"Americas", "Europe", vv.UNKNOWNCONT}, dv.Column(vv.DVCONTINENT))
	assert.Equal(t, []string{"1970s", "1970s", "1980s"}, dv.Column(vv.DVDECADE))
	assert.Equal(t, []string{"1970s", "1980s"}, dv.Levels(vv.DVDECADE))

	// a second call is a no-op rather than an error
	c2, err := c.WithDerived()
	require.NoError(t, err)
	assert.Equal(t, dv.Names(), c2.Docvars().Names())
}

func TestSelect(t *testing.T) {
	c, err := New(speeches())
	require.NoError(t, err)
	sub := c.Docvars().Select([]int{2, 0})
	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, []string{"XXX", "USA"}, sub.Column(vv.COLCOUNTRY))
}

func TestContinentAndDecade(t *testing.T) {
	assert.Equal(t, "Africa", Continent("nga"))
	assert.Equal(t, "Oceania", Continent(" NZL "))
	assert.Equal(t, "Asia", Continent("IND"))
	assert.Equal(t, vv.UNKNOWNCONT, Continent(""))
	assert.Equal(t, "2010s", Decade(2019))
	assert.Equal(t, "1940s", Decade(1946))
}
