//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package tok turns texts into token sequences and strips noise from them.
package tok

import (
	"github.com/e-gun/HipparchiaTextLab/internal/corp"
	"github.com/e-gun/HipparchiaTextLab/internal/gen"
	"github.com/e-gun/HipparchiaTextLab/internal/mm"
	"golang.org/x/text/unicode/norm"
	"regexp"
	"runtime"
	"slices"
	"strings"
	"sync"
	"unicode"
)

var (
	Msg     = mm.NewSilentMessageMaker()
	numbers = regexp.MustCompile(`^[+-]?\p{N}+([.,:/]\p{N}+)*%?$`)
	urls    = regexp.MustCompile(`(?i)^(https?://|ftp://|www\.)\S+$|^[^@\s]+@[^@\s]+\.[a-z]{2,}$`)
	hyphens = "-\u2010\u2011"
)

// Options - what the tokenizer strips; all false means split on whitespace and nothing else
type Options struct {
	RemoveNumbers bool
	RemovePunct   bool
	RemoveSymbols bool
	RemoveURL     bool
	SplitHyphens  bool
	Workers       int
}

// Tokens - one token sequence per document, in corpus order
type Tokens struct {
	ids  []string
	toks [][]string
}

// NewTokens - assemble Tokens from ids and sequences of equal length
func NewTokens(ids []string, toks [][]string) Tokens {
	tt := Tokens{ids: slices.Clone(ids), toks: make([][]string, len(toks))}
	for i := range toks {
		tt.toks[i] = slices.Clone(toks[i])
	}
	return tt
}

// Len - the number of documents
func (t Tokens) Len() int { return len(t.ids) }

// IDs - the document ids
func (t Tokens) IDs() []string { return slices.Clone(t.ids) }

// Doc - a copy of the tokens of document i
func (t Tokens) Doc(i int) []string { return slices.Clone(t.toks[i]) }

// Ntokens - total tokens across all documents
func (t Tokens) Ntokens() int {
	n := 0
	for i := range t.toks {
		n += len(t.toks[i])
	}
	return n
}

// Ntypes - distinct tokens across all documents
func (t Tokens) Ntypes() int {
	seen := make(map[string]struct{})
	for i := range t.toks {
		for _, w := range t.toks[i] {
			seen[w] = struct{}{}
		}
	}
	return len(seen)
}

// Empty - ids of the documents with no tokens
func (t Tokens) Empty() []string {
	var ee []string
	for i := range t.toks {
		if len(t.toks[i]) == 0 {
			ee = append(ee, t.ids[i])
		}
	}
	return ee
}

// Tokenize - split every document of the corpus; the output order is the corpus order whatever the worker count
func Tokenize(c *corp.Corpus, o Options) Tokens {
	texts := c.Texts()
	out := Tokens{ids: c.IDs(), toks: make([][]string, len(texts))}
	parallel(len(texts), o.Workers, func(i int) {
		out.toks[i] = TokenizeText(texts[i], o)
	})
	return out
}

// TokenizeText - split one text; NFC applies only when some removal flag is set, so no flags returns the raw fields
func TokenizeText(text string, o Options) []string {
	if o.removes() {
		text = norm.NFC.String(text)
	}
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))

	for _, f := range fields {
		if o.RemoveURL && urls.MatchString(f) {
			continue
		}
		var pieces []string
		if o.SplitHyphens {
			pieces = splithyphens(f)
		} else {
			pieces = []string{f}
		}
		for _, p := range pieces {
			if p = o.strip(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func (o Options) removes() bool {
	return o.RemoveNumbers || o.RemovePunct || o.RemoveSymbols || o.RemoveURL || o.SplitHyphens
}

// strip - apply the punctuation, symbol and number rules to one token; "" means drop it
func (o Options) strip(w string) string {
	if o.RemovePunct {
		w = strings.TrimFunc(w, unicode.IsPunct)
	}
	if o.RemoveSymbols {
		w = strings.TrimFunc(w, unicode.IsSymbol)
		if o.RemovePunct {
			// "($5)." needs both passes
			w = strings.TrimFunc(w, func(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) })
		}
	}
	if o.RemoveNumbers && numbers.MatchString(w) {
		return ""
	}
	return w
}

// splithyphens - "self-determination" --> "self", "-", "determination"
func splithyphens(w string) []string {
	if !strings.ContainsAny(w, hyphens) {
		return []string{w}
	}
	var pp []string
	var sb strings.Builder
	for _, r := range w {
		if strings.ContainsRune(hyphens, r) {
			if sb.Len() > 0 {
				pp = append(pp, sb.String())
				sb.Reset()
			}
			pp = append(pp, "-")
			continue
		}
		sb.WriteRune(r)
	}
	if sb.Len() > 0 {
		pp = append(pp, sb.String())
	}
	return pp
}

// parallel - run fn over [0, n) with w workers; each index is visited exactly once
func parallel(n int, w int, fn func(i int)) {
	if w < 1 {
		w = runtime.NumCPU()
	}
	var wg sync.WaitGroup
	for _, sp := range gen.Spans(n, w) {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(sp[0], sp[1])
	}
	wg.Wait()
}
