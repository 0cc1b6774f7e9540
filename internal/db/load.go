//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package db reads the speech table from whatever holds it: a flat file, an SQLite file, or PostgreSQL.
package db

import (
	"context"
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"github.com/e-gun/HipparchiaTextLab/internal/mm"
	"github.com/e-gun/HipparchiaTextLab/internal/str"
	"github.com/e-gun/HipparchiaTextLab/internal/vv"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const (
	STAGE = "db.Load"
)

var (
	Msg      = mm.NewSilentMessageMaker()
	sqlident = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	required = []string{vv.COLDOCID, vv.COLTEXT, vv.COLCOUNTRY, vv.COLSESSION, vv.COLYEAR}
)

// Source - where the documents live
type Source struct {
	Path  string // file path, postgres:// DSN, or "pg"
	Table string // for SQLite and PostgreSQL
	Login str.PostgresLogin
}

// Load - read every document from the source; all or nothing
func Load(ctx context.Context, src Source) ([]str.Document, error) {
	const (
		MSG = "%s documents read from %s"
	)

	if src.Path == "" {
		return nil, errs.Config(STAGE, "no data source supplied")
	}

	tbl := src.Table
	if tbl == "" {
		tbl = vv.DEFAULTSQLTABLE
	}

	var rows []map[string]string
	var err error

	switch kind := SourceKind(src.Path); kind {
	case "postgres":
		if !sqlident.MatchString(tbl) {
			return nil, errs.Config(STAGE, "'%s' is not an acceptable table name", tbl)
		}
		url := src.Path
		if url == "pg" {
			url = src.Login.URL()
		}
		rows, err = pgrows(ctx, url, tbl)
	case "sqlite":
		if !sqlident.MatchString(tbl) {
			return nil, errs.Config(STAGE, "'%s' is not an acceptable table name", tbl)
		}
		if _, e := os.Stat(src.Path); e != nil {
			return nil, errs.Wrap(errs.ErrDataLoad, STAGE, e)
		}
		rows, err = sqliterows(ctx, src.Path, tbl)
	case "csv", "tsv":
		rows, err = csvrows(src.Path, kind == "tsv")
	case "json":
		rows, err = jsonrows(src.Path)
	case "jsonl":
		rows, err = jsonlrows(src.Path)
	default:
		return nil, errs.New(errs.ErrDataLoad, STAGE, "do not know how to read '%s'", src.Path)
	}

	if err != nil {
		return nil, err
	}

	docs, err := RowsToDocuments(rows)
	if err != nil {
		return nil, err
	}

	Msg.NOTE(fmt.Sprintf(MSG, Msg.N(len(docs)), src.Path))
	return docs, nil
}

// SourceKind - guess the format from the DSN scheme or the file extension
func SourceKind(p string) string {
	if p == "pg" || strings.HasPrefix(p, "postgres://") || strings.HasPrefix(p, "postgresql://") {
		return "postgres"
	}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".csv":
		return "csv"
	case ".tsv", ".tab":
		return "tsv"
	case ".json":
		return "json"
	case ".jsonl", ".ndjson":
		return "jsonl"
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	default:
		return ""
	}
}

// RowsToDocuments - convert column-name keyed rows into documents; ids must be unique
func RowsToDocuments(rows []map[string]string) ([]str.Document, error) {
	if len(rows) == 0 {
		return nil, errs.New(errs.ErrDataLoad, STAGE, "the source holds no rows")
	}

	seen := make(map[string]int, len(rows))
	docs := make([]str.Document, len(rows))

	for i, r := range rows {
		for _, c := range required {
			if _, ok := r[c]; !ok {
				if i == 0 {
					return nil, errs.New(errs.ErrDataLoad, STAGE, "required column '%s' is missing", c)
				}
				return nil, errs.New(errs.ErrDataLoad, STAGE, "row %d has no '%s'", i+1, c)
			}
		}
		id := strings.TrimSpace(r[vv.COLDOCID])
		if id == "" {
			return nil, errs.New(errs.ErrDataLoad, STAGE, "row %d has an empty %s", i+1, vv.COLDOCID)
		}
		if j, dup := seen[id]; dup {
			return nil, errs.New(errs.ErrDataLoad, STAGE, "rows %d and %d share the %s '%s'", j+1, i+1, vv.COLDOCID, id)
		}
		seen[id] = i

		ses, e := atoi(r[vv.COLSESSION])
		if e != nil {
			return nil, errs.New(errs.ErrDataLoad, STAGE, "row %d (%s): bad %s value '%s'", i+1, id, vv.COLSESSION, r[vv.COLSESSION])
		}
		yr, e := atoi(r[vv.COLYEAR])
		if e != nil {
			return nil, errs.New(errs.ErrDataLoad, STAGE, "row %d (%s): bad %s value '%s'", i+1, id, vv.COLYEAR, r[vv.COLYEAR])
		}

		d := str.Document{
			ID:      id,
			Text:    r[vv.COLTEXT],
			Country: strings.TrimSpace(r[vv.COLCOUNTRY]),
			Session: ses,
			Year:    yr,
		}

		for k, v := range r {
			if isrequired(k) {
				continue
			}
			if d.Extra == nil {
				d.Extra = make(map[string]string)
			}
			d.Extra[k] = v
		}
		docs[i] = d
	}
	return docs, nil
}

func isrequired(c string) bool {
	for _, r := range required {
		if r == c {
			return true
		}
	}
	return false
}

// atoi - tolerate "1970.0" and surrounding space, which spreadsheets and SQLite REALs like to produce
func atoi(s string) (int, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("%s is not a whole number", s)
	}
	return int(f), nil
}
