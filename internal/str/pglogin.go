//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import "fmt"

type PostgresLogin struct {
	Host   string
	Port   int
	User   string
	Pass   string
	DBName string
}

// URL - the pgxpool connection string for these credentials
func (pl PostgresLogin) URL() string {
	const (
		UTPL = "postgres://%s:%s@%s:%d/%s"
	)
	return fmt.Sprintf(UTPL, pl.User, pl.Pass, pl.Host, pl.Port, pl.DBName)
}
