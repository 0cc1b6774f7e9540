//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tok

import (
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"golang.org/x/text/cases"
	"regexp"
	"strings"
)

const (
	CSTAGE = "tok.Clean"
)

// MatchMode - how a removal pattern is compared with a token
type MatchMode int

const (
	Regex MatchMode = iota // the pattern matches anywhere in the token unless anchored
	Fixed                  // the token equals the pattern
	Glob                   // "*" and "?" wildcards over the whole token
)

// DefaultNoisePatterns - OCR debris: runs of digits and hyphens, bare punctuation, fragments of one or two characters
var DefaultNoisePatterns = []string{
	`^[\p{Nd}\-]+$`,
	`^\p{P}+$`,
	`^.{1,2}$`,
}

// ParseMatchMode - "regex", "fixed", "glob"
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(s) {
	case "regex", "":
		return Regex, nil
	case "fixed":
		return Fixed, nil
	case "glob":
		return Glob, nil
	default:
		return Regex, errs.Config(CSTAGE, "unknown match mode '%s'", s)
	}
}

// Cleaner - an ordered list of removal patterns
type Cleaner struct {
	mode  MatchMode
	ci    bool
	res   []*regexp.Regexp
	fixed map[string]struct{}
}

// NewCleaner - compile the patterns; a bad pattern is a configuration error
func NewCleaner(patterns []string, mode MatchMode, caseInsensitive bool) (*Cleaner, error) {
	c := &Cleaner{mode: mode, ci: caseInsensitive}

	switch mode {
	case Fixed:
		c.fixed = make(map[string]struct{}, len(patterns))
		for _, p := range patterns {
			if caseInsensitive {
				p = cases.Fold().String(p)
			}
			c.fixed[p] = struct{}{}
		}
	case Regex, Glob:
		for _, p := range patterns {
			src := p
			if mode == Glob {
				src = GlobToRegex(p)
			}
			if caseInsensitive {
				src = "(?i)" + src
			}
			re, err := regexp.Compile(src)
			if err != nil {
				return nil, errs.Config(CSTAGE, "cannot compile pattern '%s': %s", p, err.Error())
			}
			c.res = append(c.res, re)
		}
	default:
		return nil, errs.Config(CSTAGE, "unknown match mode %d", mode)
	}
	return c, nil
}

// DefaultCleaner - a regex Cleaner built from DefaultNoisePatterns
func DefaultCleaner() *Cleaner {
	c, err := NewCleaner(DefaultNoisePatterns, Regex, false)
	if err != nil {
		panic(err)
	}
	return c
}

// Matches - would this token be removed?
func (c *Cleaner) Matches(w string) bool {
	if c.mode == Fixed {
		if c.ci {
			w = cases.Fold().String(w)
		}
		_, ok := c.fixed[w]
		return ok
	}
	for _, re := range c.res {
		if re.MatchString(w) {
			return true
		}
	}
	return false
}

// Clean - a new Tokens without the matching tokens; documents emptied by cleaning are kept and reported
func (c *Cleaner) Clean(t Tokens) Tokens {
	const (
		WRN = "tok.Clean(): '%s' has no tokens left after cleaning"
	)

	out := Tokens{ids: t.IDs(), toks: make([][]string, len(t.toks))}
	for i := range t.toks {
		kept := make([]string, 0, len(t.toks[i]))
		for _, w := range t.toks[i] {
			if !c.Matches(w) {
				kept = append(kept, w)
			}
		}
		if len(kept) == 0 && len(t.toks[i]) > 0 {
			Msg.WARN(fmt.Sprintf(WRN, t.ids[i]))
		}
		out.toks[i] = kept
	}
	return out
}

// GlobToRegex - "nation*" --> "^nation.*$"
func GlobToRegex(g string) string {
	var sb strings.Builder
	sb.WriteString("^")
	for _, r := range g {
		switch r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")
	return sb.String()
}
