//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	_ "modernc.org/sqlite"
)

// sqliterows - SELECT * from a table inside an SQLite file
func sqliterows(ctx context.Context, fn string, tbl string) ([]map[string]string, error) {
	const (
		QTP = `SELECT * FROM "%s"`
	)

	dbh, err := sql.Open("sqlite", fn)
	if err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, STAGE, err)
	}
	defer func() { _ = dbh.Close() }()

	foundrows, err := dbh.QueryContext(ctx, fmt.Sprintf(QTP, tbl))
	if err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, STAGE, err)
	}
	defer func() { _ = foundrows.Close() }()

	cols, err := foundrows.Columns()
	if err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, STAGE, err)
	}

	var rows []map[string]string
	for foundrows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if e := foundrows.Scan(ptrs...); e != nil {
			return nil, errs.Wrap(errs.ErrDataLoad, STAGE, e)
		}
		row := make(map[string]string, len(cols))
		for i, c := range cols {
			row[c] = cell(vals[i])
		}
		rows = append(rows, row)
	}
	if err = foundrows.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, STAGE, err)
	}
	return rows, nil
}
