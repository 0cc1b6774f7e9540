//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"io"
	"os"
	"strings"
)

// csvrows - the header row names the columns
func csvrows(fn string, tabbed bool) ([]map[string]string, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, STAGE, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(bufio.NewReader(f))
	if tabbed {
		r.Comma = '\t'
		r.LazyQuotes = true
	}
	r.ReuseRecord = false

	header, err := r.Read()
	if err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, STAGE, fmt.Errorf("%s: cannot read header: %w", fn, err))
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var rows []map[string]string
	for {
		rec, e := r.Read()
		if e == io.EOF {
			break
		}
		if e != nil {
			return nil, errs.Wrap(errs.ErrDataLoad, STAGE, fmt.Errorf("%s: %w", fn, e))
		}
		row := make(map[string]string, len(header))
		for i, h := range header {
			row[h] = rec[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// jsonrows - a single array of objects
func jsonrows(fn string) ([]map[string]string, error) {
	data, err := os.ReadFile(fn)
	if err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, STAGE, err)
	}
	var raw []map[string]any
	if err = json.Unmarshal(data, &raw); err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, STAGE, fmt.Errorf("%s: %w", fn, err))
	}
	rows := make([]map[string]string, len(raw))
	for i := range raw {
		rows[i] = stringify(raw[i])
	}
	return rows, nil
}

// jsonlrows - one object per line; blank lines are skipped
func jsonlrows(fn string) ([]map[string]string, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, STAGE, err)
	}
	defer func() { _ = f.Close() }()

	var rows []map[string]string
	sc := bufio.NewScanner(f)
	// speeches run long: allow lines of up to 16MB
	sc.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var obj map[string]any
		if e := json.Unmarshal([]byte(line), &obj); e != nil {
			return nil, errs.Wrap(errs.ErrDataLoad, STAGE, fmt.Errorf("%s line %d: %w", fn, ln, e))
		}
		rows = append(rows, stringify(obj))
	}
	if err = sc.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrDataLoad, STAGE, err)
	}
	return rows, nil
}

func stringify(obj map[string]any) map[string]string {
	row := make(map[string]string, len(obj))
	for k, v := range obj {
		row[k] = cell(v)
	}
	return row
}

// cell - render one value as text; json numbers arrive as float64
func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
