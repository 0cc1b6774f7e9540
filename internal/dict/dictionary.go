//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package dict scores feature matrices against category lexicons.
package dict

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"github.com/e-gun/HipparchiaTextLab/internal/mm"
	"github.com/e-gun/HipparchiaTextLab/internal/tok"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

const (
	LSTAGE      = "dict.Load"
	DEFAULTSENT = "efs/sentiment.yml"
	DEFAULTPOL  = "efs/policy.yml"
)

//go:embed efs
var efs embed.FS

var Msg = mm.NewSilentMessageMaker()

// Dictionary - a fixed, ordered set of categories, each with its glob patterns
type Dictionary struct {
	Name       string
	categories []string
	patterns   map[string][]string
	matchers   map[string][]*regexp.Regexp
}

// New - build a dictionary from category -> patterns; categories are kept in the order given
func New(name string, categories []string, patterns map[string][]string) (*Dictionary, error) {
	const (
		STAGE = "dict.New"
	)
	if len(categories) == 0 {
		return nil, errs.Config(STAGE, "dictionary '%s' has no categories", name)
	}

	fold := cases.Fold()
	d := &Dictionary{
		Name:     name,
		patterns: make(map[string][]string, len(categories)),
		matchers: make(map[string][]*regexp.Regexp, len(categories)),
	}
	for _, c := range categories {
		if slices.Contains(d.categories, c) {
			return nil, errs.Config(STAGE, "dictionary '%s' lists category '%s' twice", name, c)
		}
		pp := patterns[c]
		if len(pp) == 0 {
			return nil, errs.Config(STAGE, "category '%s' of '%s' has no patterns", c, name)
		}
		d.categories = append(d.categories, c)
		for _, p := range pp {
			p = fold.String(strings.TrimSpace(p))
			if p == "" {
				continue
			}
			re, err := regexp.Compile(tok.GlobToRegex(p))
			if err != nil {
				return nil, errs.Config(STAGE, "bad pattern '%s' in '%s': %s", p, c, err.Error())
			}
			d.patterns[c] = append(d.patterns[c], p)
			d.matchers[c] = append(d.matchers[c], re)
		}
	}
	return d, nil
}

// Categories - in dictionary order
func (d *Dictionary) Categories() []string { return slices.Clone(d.categories) }

// Patterns - the folded patterns of one category
func (d *Dictionary) Patterns(cat string) []string { return slices.Clone(d.patterns[cat]) }

// Matches - the indices of the categories whose patterns match the term; each category at most once
func (d *Dictionary) Matches(term string) []int {
	term = cases.Fold().String(term)
	var hits []int
	for i, c := range d.categories {
		for _, re := range d.matchers[c] {
			if re.MatchString(term) {
				hits = append(hits, i)
				break
			}
		}
	}
	return hits
}

// Load - read a YAML or LIWC-style .dic lexicon; "" loads nothing and is an error
func Load(path string) (*Dictionary, error) {
	if path == "" {
		return nil, errs.Config(LSTAGE, "no dictionary path supplied")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, LSTAGE, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return parseyaml(name, data)
	case ".dic":
		return parsedic(name, data)
	default:
		return nil, errs.New(errs.ErrDataLoad, LSTAGE, "do not know how to read '%s'", path)
	}
}

// LoadOrDefault - Load(path), or the embedded lexicon when path is empty
func LoadOrDefault(path string, fallback string) (*Dictionary, error) {
	const (
		MSG = "dict.LoadOrDefault(): using the built-in lexicon '%s'"
	)
	if path != "" {
		return Load(path)
	}
	data, err := efs.ReadFile(fallback)
	if err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, LSTAGE, err)
	}
	Msg.FYI(fmt.Sprintf(MSG, fallback))
	return parseyaml(strings.TrimSuffix(filepath.Base(fallback), filepath.Ext(fallback)), data)
}

// parseyaml - mappings nest categories ("security.disarmament"); sequences hold patterns
func parseyaml(name string, data []byte) (*Dictionary, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, LSTAGE, err)
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, errs.New(errs.ErrDataLoad, LSTAGE, "'%s' is not a mapping of categories", name)
	}

	var cats []string
	pats := make(map[string][]string)

	var walk func(prefix string, n *yaml.Node) error
	walk = func(prefix string, n *yaml.Node) error {
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if prefix != "" {
				key = prefix + "." + key
			}
			val := n.Content[i+1]
			switch val.Kind {
			case yaml.MappingNode:
				if err := walk(key, val); err != nil {
					return err
				}
			case yaml.SequenceNode:
				var pp []string
				if err := val.Decode(&pp); err != nil {
					return fmt.Errorf("%s: %w", key, err)
				}
				cats = append(cats, key)
				pats[key] = pp
			case yaml.ScalarNode:
				cats = append(cats, key)
				pats[key] = []string{val.Value}
			default:
				return fmt.Errorf("%s: unexpected yaml node", key)
			}
		}
		return nil
	}

	if err := walk("", root.Content[0]); err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, LSTAGE, err)
	}
	return New(name, cats, pats)
}

// parsedic - "%" fences a block of "id<TAB>category" lines; then "pattern<TAB>id id ..." lines follow
func parsedic(name string, data []byte) (*Dictionary, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	fences := 0
	ids := make(map[string]string)
	var cats []string
	pats := make(map[string][]string)

	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "%" {
			fences++
			continue
		}
		ff := strings.Fields(line)
		switch {
		case fences == 1:
			if len(ff) < 2 {
				return nil, errs.New(errs.ErrDataLoad, LSTAGE, "%s.dic line %d: bad category line", name, ln)
			}
			if _, err := strconv.Atoi(ff[0]); err != nil {
				return nil, errs.New(errs.ErrDataLoad, LSTAGE, "%s.dic line %d: bad category id '%s'", name, ln, ff[0])
			}
			ids[ff[0]] = ff[1]
			cats = append(cats, ff[1])
		case fences >= 2:
			if len(ff) < 2 {
				return nil, errs.New(errs.ErrDataLoad, LSTAGE, "%s.dic line %d: pattern without a category", name, ln)
			}
			for _, id := range ff[1:] {
				c, ok := ids[id]
				if !ok {
					return nil, errs.New(errs.ErrDataLoad, LSTAGE, "%s.dic line %d: unknown category id '%s'", name, ln, id)
				}
				pats[c] = append(pats[c], ff[0])
			}
		default:
			return nil, errs.New(errs.ErrDataLoad, LSTAGE, "%s.dic line %d: text before the category block", name, ln)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, LSTAGE, err)
	}
	return New(name, cats, pats)
}
