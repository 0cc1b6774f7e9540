//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"bytes"
	"compress/gzip"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"github.com/e-gun/HipparchiaTextLab/internal/vv"
	"io"
	"os"
	"path/filepath"
)

const (
	VSTAGE = "db.Vault"
)

// Vault - gzipped model blobs stored by fingerprint in an SQLite file
type Vault struct {
	fn  string
	dbh *sql.DB
}

// OpenVault - open (or create) the vault file and its table
func OpenVault(ctx context.Context, fn string) (*Vault, error) {
	const (
		CREATE = `
			CREATE TABLE IF NOT EXISTS %s
			(
			  fingerprint character(32) PRIMARY KEY,
			  modelsize   int,
			  modeldata   blob
			)`
	)

	if err := os.MkdirAll(filepath.Dir(fn), vv.DIRPERMS); err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, VSTAGE, err)
	}
	dbh, err := sql.Open("sqlite", fn)
	if err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, VSTAGE, err)
	}
	if _, err = dbh.ExecContext(ctx, fmt.Sprintf(CREATE, vv.VAULTTABLE)); err != nil {
		_ = dbh.Close()
		return nil, errs.Wrap(errs.ErrDataLoad, VSTAGE, err)
	}
	Msg.TMI(fmt.Sprintf("OpenVault(): %s", fn))
	return &Vault{fn: fn, dbh: dbh}, nil
}

func (v *Vault) Close() error { return v.dbh.Close() }

// Check - has a model with this fingerprint already been stored?
func (v *Vault) Check(ctx context.Context, fp string) bool {
	const (
		Q = `SELECT fingerprint FROM %s WHERE fingerprint = ? LIMIT 1`
		F = `Vault.Check() found %s`
	)
	var found string
	err := v.dbh.QueryRowContext(ctx, fmt.Sprintf(Q, vv.VAULTTABLE), fp).Scan(&found)
	if err != nil {
		// sql.ErrNoRows if you did not find the fingerprint
		return false
	}
	Msg.TMI(fmt.Sprintf(F, found))
	return true
}

// Add - compress and store; an existing entry with the same fingerprint is replaced
func (v *Vault) Add(ctx context.Context, fp string, data []byte) error {
	const (
		MSG1 = "Vault.Add(): %s compression: %s -> %s bytes"
		INS  = `
			INSERT OR REPLACE INTO %s
				(fingerprint, modelsize, modeldata)
			VALUES (?, ?, ?)`
		GZ = gzip.BestSpeed
	)

	if len(data) == 0 {
		return errs.New(errs.ErrEmptyResult, VSTAGE, "nothing to store for %s", fp)
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, GZ)
	if err != nil {
		return err
	}
	if _, err = zw.Write(data); err != nil {
		return err
	}
	if err = zw.Close(); err != nil {
		return err
	}

	b := buf.Bytes()
	if _, err = v.dbh.ExecContext(ctx, fmt.Sprintf(INS, vv.VAULTTABLE), fp, len(b), b); err != nil {
		return errs.Wrap(errs.ErrDataLoad, VSTAGE, err)
	}
	Msg.PEEK(fmt.Sprintf(MSG1, fp, Msg.N(len(data)), Msg.N(len(b))))
	return nil
}

// Fetch - the uncompressed blob stored under fp
func (v *Vault) Fetch(ctx context.Context, fp string) ([]byte, error) {
	const (
		Q = `SELECT modeldata FROM %s WHERE fingerprint = ? LIMIT 1`
	)

	var blob []byte
	err := v.dbh.QueryRowContext(ctx, fmt.Sprintf(Q, vv.VAULTTABLE), fp).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.New(errs.ErrDataLoad, VSTAGE, "no model stored under %s", fp)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, VSTAGE, err)
	}

	// the data in the table is zipped and needs unzipping
	zr, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, VSTAGE, err)
	}
	defer func() { _ = zr.Close() }()
	decompr, err := io.ReadAll(zr)
	if err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, VSTAGE, err)
	}
	return decompr, nil
}

// Count - how many models are stored
func (v *Vault) Count(ctx context.Context) (int, error) {
	const (
		Q = `SELECT count(*) FROM %s`
	)
	var n int
	err := v.dbh.QueryRowContext(ctx, fmt.Sprintf(Q, vv.VAULTTABLE)).Scan(&n)
	return n, err
}

// Reset - forget every stored model
func (v *Vault) Reset(ctx context.Context) error {
	const (
		MSG1 = "Vault.Reset() emptied %s"
		E    = `DELETE FROM %s`
	)
	if _, err := v.dbh.ExecContext(ctx, fmt.Sprintf(E, vv.VAULTTABLE)); err != nil {
		return err
	}
	Msg.NOTE(fmt.Sprintf(MSG1, v.fn))
	return nil
}
