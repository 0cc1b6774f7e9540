//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tok

import (
	"bytes"
	"github.com/e-gun/HipparchiaTextLab/internal/corp"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"github.com/e-gun/HipparchiaTextLab/internal/mm"
	"github.com/e-gun/HipparchiaTextLab/internal/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"regexp"
	"strings"
	"testing"
	"unicode"
)

const speech = "Mr. President, the 1970 Session of the General-Assembly met (again) in New York; see http://un.org or write to info@un.org -- $5 + 3.5% ... OK?"

func TestNoFlagsIsWhitespaceSplit(t *testing.T) {
	got := TokenizeText(speech, Options{})
	assert.Equal(t, strings.Fields(speech), got)
	assert.Contains(t, got, "Mr.")
	assert.Contains(t, got, "General-Assembly")

	assert.Empty(t, TokenizeText("", Options{}))
	assert.Empty(t, TokenizeText(" \t\n ", Options{}))
}

func TestNoFlagsKeepsDecomposedBytes(t *testing.T) {
	text := "Cafe\u0301 de\u0301veloppement"
	got := TokenizeText(text, Options{})
	assert.Equal(t, strings.Fields(text), got)
	assert.Len(t, got[0], 6)

	folded := TokenizeText(text, Options{RemovePunct: true})
	assert.Equal(t, []string{"Caf\u00e9", "d\u00e9veloppement"}, folded)
}

func TestRemovalFlags(t *testing.T) {
	o := Options{RemoveNumbers: true, RemovePunct: true, RemoveSymbols: true, RemoveURL: true, SplitHyphens: true}
	got := TokenizeText(speech, o)
	want := []string{"Mr", "President", "the", "Session", "of", "the", "General", "Assembly", "met", "again",
		"in", "New", "York", "see", "or", "write", "to", "OK"}
	assert.Equal(t, want, got)
}

func TestSplitHyphensKeepsHyphen(t *testing.T) {
	got := TokenizeText("self-determination now", Options{SplitHyphens: true})
	assert.Equal(t, []string{"self", "-", "determination", "now"}, got)
}

func TestRemoveNumbers(t *testing.T) {
	got := TokenizeText("1945 -12 3,000 2.5 G77 1990s", Options{RemoveNumbers: true})
	assert.Equal(t, []string{"G77", "1990s"}, got)
}

func TestTokenizeIsDeterministic(t *testing.T) {
	var docs []str.Document
	for i := 0; i < 57; i++ {
		docs = append(docs, str.Document{ID: string(rune('A'+i%26)) + strings.Repeat("x", i), Text: strings.Repeat("peace and security ", i%7), Country: "USA", Year: 1970 + i})
	}
	c, err := corp.New(docs)
	require.NoError(t, err)

	one := Tokenize(c, Options{RemovePunct: true, Workers: 1})
	many := Tokenize(c, Options{RemovePunct: true, Workers: 9})
	assert.Equal(t, one, many)
	assert.Equal(t, c.IDs(), many.IDs())
	assert.Equal(t, 504, many.Ntokens())
	assert.Equal(t, 3, many.Ntypes())
	assert.Len(t, many.Empty(), 9)
}

func TestDefaultCleaner(t *testing.T) {
	in := []string{"nations", "1945", "12-34", "--", "...", "!?", "of", "UN", "a", "peace", "x1", "É", "self-help", "año"}
	tt := NewTokens([]string{"d1"}, [][]string{in})
	got := DefaultCleaner().Clean(tt).Doc(0)
	assert.Equal(t, []string{"nations", "peace", "self-help", "año"}, got)
}

// every token that is digits (and hyphens), pure punctuation or of length <= 2 goes; the rest stay in order
func TestDefaultCleanerProperty(t *testing.T) {
	digits := regexp.MustCompile(`^[\p{Nd}-]+$`)
	tokens := TokenizeText(speech+" 42 ab abc ,,, 2024-25 peace", Options{})

	got := DefaultCleaner().Clean(NewTokens([]string{"x"}, [][]string{tokens})).Doc(0)

	var want []string
	for _, w := range tokens {
		pure := digits.MatchString(w) || strings.IndexFunc(w, func(r rune) bool { return !unicode.IsPunct(r) }) < 0
		if pure || len([]rune(w)) <= 2 {
			assert.NotContains(t, got, w)
			continue
		}
		want = append(want, w)
	}
	assert.Equal(t, want, got)
}

func TestCleanerModes(t *testing.T) {
	tt := NewTokens([]string{"d"}, [][]string{{"Nation", "nations", "international", "peace"}})

	fx, err := NewCleaner([]string{"nation"}, Fixed, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"nations", "international", "peace"}, fx.Clean(tt).Doc(0))

	gl, err := NewCleaner([]string{"nation*"}, Glob, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Nation", "international", "peace"}, gl.Clean(tt).Doc(0))

	rx, err := NewCleaner([]string{"nation"}, Regex, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"peace"}, rx.Clean(tt).Doc(0))

	_, err = NewCleaner([]string{"(unclosed"}, Regex, false)
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	_, err = ParseMatchMode("soundex")
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestCleanWarnsButKeepsEmptyDocs(t *testing.T) {
	var buf bytes.Buffer
	Msg = mm.NewMessageMaker("test", "T", "0", mm.MSGWARN, true)
	Msg.Out = &buf
	defer func() { Msg = mm.NewSilentMessageMaker() }()

	tt := NewTokens([]string{"full", "noise", "blank"}, [][]string{{"peace"}, {"42", "!!"}, {}})
	out := DefaultCleaner().Clean(tt)

	assert.Equal(t, 3, out.Len())
	assert.Equal(t, []string{"noise", "blank"}, out.Empty())
	assert.Contains(t, buf.String(), "'noise' has no tokens left")
	assert.NotContains(t, buf.String(), "'blank'")
	assert.Equal(t, []string{"42", "!!"}, tt.Doc(1), "the input must not change")
}
