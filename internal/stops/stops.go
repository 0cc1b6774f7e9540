//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package stops holds the stop word lists: the Snowball English list plus a supplementary list kept in ~/.config.
package stops

import (
	"encoding/json"
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/gen"
	"github.com/e-gun/HipparchiaTextLab/internal/mm"
	"github.com/e-gun/HipparchiaTextLab/internal/vv"
	"golang.org/x/text/cases"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var Msg = mm.NewSilentMessageMaker()

// Set - stop words, already case folded
type Set map[string]struct{}

// NewSet - build a Set; entries are trimmed and case folded, blanks are ignored
func NewSet(words ...[]string) Set {
	fold := cases.Fold()
	s := make(Set)
	for _, ww := range words {
		for _, w := range ww {
			w = strings.TrimSpace(w)
			if w == "" {
				continue
			}
			s[fold.String(w)] = struct{}{}
		}
	}
	return s
}

// Has - is w (already folded) a stop word?
func (s Set) Has(w string) bool {
	_, ok := s[w]
	return ok
}

// Union - a new set holding both
func (s Set) Union(o Set) Set {
	u := make(Set, len(s)+len(o))
	for k := range s {
		u[k] = struct{}{}
	}
	for k := range o {
		u[k] = struct{}{}
	}
	return u
}

// Sorted - the members in lexical order
func (s Set) Sorted() []string {
	return gen.SortedKeys(s)
}

// English - the Snowball English stop list
func English() Set {
	return NewSet(snowballenglish)
}

// DefaultSupplement - words that fill every General Debate speech and say nothing about it
func DefaultSupplement() []string {
	return []string{"also", "assembly", "can", "country", "countries", "delegation", "general", "government",
		"international", "mr", "must", "nation", "nations", "new", "one", "organization", "people", "peoples",
		"president", "session", "shall", "state", "states", "united", "us", "will", "world", "year", "years"}
}

// ReadSupplement - read the vv.CONFIGSTOPSUPP file in confdir and return its words; if it does not exist, generate it
func ReadSupplement(confdir string) []string {
	const (
		ERR1 = "ReadSupplement() cannot find UserHomeDir"
		ERR2 = "ReadSupplement() failed to parse "
		MSG1 = "ReadSupplement() wrote stop word supplement file: "
		MSG2 = "ReadSupplement() read stop word supplement from: "
	)

	stops := DefaultSupplement()

	if confdir == "" {
		h, e := os.UserHomeDir()
		if e != nil {
			Msg.MAND(ERR1)
			return stops
		}
		confdir = fmt.Sprintf(vv.CONFIGALTAPTH, h)
	}

	fn := filepath.Join(confdir, vv.CONFIGSTOPSUPP)

	_, yes := os.Stat(fn)

	if yes != nil {
		sort.Strings(stops)
		content, err := json.MarshalIndent(stops, vv.JSONINDENT, vv.JSONINDENT)
		Msg.EC(err, "ReadSupplement")

		if err = os.MkdirAll(confdir, vv.DIRPERMS); err == nil {
			err = os.WriteFile(fn, content, vv.WRITEPERMS)
		}
		Msg.EC(err, "ReadSupplement")
		if err == nil {
			Msg.PEEK(MSG1 + fn)
		}
	} else {
		loadedcfg, _ := os.Open(fn)
		decoderc := json.NewDecoder(loadedcfg)
		var stp []string
		errc := decoderc.Decode(&stp)
		_ = loadedcfg.Close()
		if errc != nil {
			Msg.CRIT(ERR2 + fn)
		} else {
			stops = stp
		}
		Msg.TMI(MSG2 + fn)
	}
	return stops
}

var snowballenglish = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "your", "yours", "yourself",
	"yourselves", "he", "him", "his", "himself", "she", "her", "hers", "herself", "it", "its", "itself",
	"they", "them", "their", "theirs", "themselves", "what", "which", "who", "whom", "this", "that",
	"these", "those", "am", "is", "are", "was", "were", "be", "been", "being", "have", "has", "had",
	"having", "do", "does", "did", "doing", "would", "should", "could", "ought", "i'm", "you're", "he's",
	"she's", "it's", "we're", "they're", "i've", "you've", "we've", "they've", "i'd", "you'd", "he'd",
	"she'd", "we'd", "they'd", "i'll", "you'll", "he'll", "she'll", "we'll", "they'll", "isn't", "aren't",
	"wasn't", "weren't", "hasn't", "haven't", "hadn't", "doesn't", "don't", "didn't", "won't", "wouldn't",
	"shan't", "shouldn't", "can't", "cannot", "couldn't", "mustn't", "let's", "that's", "who's", "what's",
	"here's", "there's", "when's", "where's", "why's", "how's", "a", "an", "the", "and", "but", "if", "or",
	"because", "as", "until", "while", "of", "at", "by", "for", "with", "about", "against", "between",
	"into", "through", "during", "before", "after", "above", "below", "to", "from", "up", "down", "in",
	"out", "on", "off", "over", "under", "again", "further", "then", "once", "here", "there", "when",
	"where", "why", "how", "all", "any", "both", "each", "few", "more", "most", "other", "some", "such",
	"no", "nor", "not", "only", "own", "same", "so", "than", "too", "very", "will",
}
