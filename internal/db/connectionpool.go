//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"strings"
)

// NewPool - build a pgxpool from a postgres:// url; failures are reported and returned, not fatal
func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	const (
		FAIL1   = "Configuration error. Could not execute ParseConfig(url) via '%s'"
		FAIL2   = "Could not connect to PostgreSQL"
		ERRRUN  = `dial error`
		FAILRUN = `'%s': the PostgreSQL server cannot be found; check that it is running`
		ERRSRV  = `server error`
		FAILSRV = `'%s': there is configuration problem; see the following response from PostgreSQL:`
	)

	config, e := pgxpool.ParseConfig(url)
	if e != nil {
		Msg.CRIT(fmt.Sprintf(FAIL1, redact(url)))
		return nil, errs.Wrap(errs.ErrDataLoad, STAGE, e)
	}

	// one reader: the table is read in a single pass
	config.MaxConns = 2
	config.MinConns = 1

	thepool, e := pgxpool.NewWithConfig(ctx, config)
	if e == nil {
		e = thepool.Ping(ctx)
	}
	if e != nil {
		Msg.CRIT(FAIL2)
		if strings.Contains(e.Error(), ERRRUN) {
			Msg.CRIT(fmt.Sprintf(FAILRUN, ERRRUN))
		}
		if strings.Contains(e.Error(), ERRSRV) {
			Msg.CRIT(fmt.Sprintf(FAILSRV, ERRSRV))
			parts := strings.Split(e.Error(), ERRSRV)
			Msg.CRIT(parts[len(parts)-1])
		}
		if thepool != nil {
			thepool.Close()
		}
		return nil, errs.Wrap(errs.ErrDataLoad, STAGE, e)
	}
	return thepool, nil
}

// pgrows - SELECT * from the table; every column is read back as text
func pgrows(ctx context.Context, url string, tbl string) ([]map[string]string, error) {
	const (
		QTP = `SELECT * FROM %s`
	)

	pool, err := NewPool(ctx, url)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	foundrows, err := pool.Query(ctx, fmt.Sprintf(QTP, pgx.Identifier{tbl}.Sanitize()))
	if err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, STAGE, err)
	}
	defer foundrows.Close()

	fields := foundrows.FieldDescriptions()
	var rows []map[string]string
	for foundrows.Next() {
		vals, e := foundrows.Values()
		if e != nil {
			return nil, errs.Wrap(errs.ErrDataLoad, STAGE, e)
		}
		row := make(map[string]string, len(fields))
		for i, f := range fields {
			row[f.Name] = cell(vals[i])
		}
		rows = append(rows, row)
	}
	if err = foundrows.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, STAGE, err)
	}
	return rows, nil
}

// redact - keep passwords out of the terminal
func redact(url string) string {
	at := strings.LastIndex(url, "@")
	sch := strings.Index(url, "://")
	if at < 0 || sch < 0 || at < sch {
		return url
	}
	cred := url[sch+3 : at]
	if c := strings.Index(cred, ":"); c >= 0 {
		return url[:sch+3] + cred[:c] + ":xxxxx" + url[at:]
	}
	return url
}
