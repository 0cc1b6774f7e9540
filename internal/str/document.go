//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

// Document - one speech as it arrives from the loader; never modified afterwards
type Document struct {
	ID      string
	Text    string
	Country string
	Session int
	Year    int
	Extra   map[string]string // any further columns in the source table
}
