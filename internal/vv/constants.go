//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	MYNAME    = "Hipparchia Text Lab"
	SHORTNAME = "HTL"
	VERSION   = "0.3.2"

	BLACKANDWHITE  = false
	CONFIGALTAPTH  = "%s/.config/" // %s = os.UserHomeDir()
	CONFIGBASIC    = "htl-conf.json"
	CONFIGSTOPSUPP = "htl-stops-supplement.json"
	JSONINDENT     = "  "
	WRITEPERMS     = 0644
	DIRPERMS       = 0755

	DEFAULTGOLOGLEVEL = 2
	DEFAULTOUTDIR     = "htl_output"
	DEFAULTSQLTABLE   = "speeches"
	DEFAULTVAULT      = "htl-models.db" // inside DEFAULTOUTDIR
	VAULTTABLE        = "topicmodels"
	DEFAULTCHARTTOPN  = 40
	DEFAULTCLOUDTOPN  = 150

	DEFAULTPSQLHOST = "127.0.0.1"
	DEFAULTPSQLUSER = "htl_rd"
	DEFAULTPSQLPORT = 5432
	DEFAULTPSQLDB   = "speechesDB"

	// columns of the input dataset
	COLDOCID   = "doc_id"
	COLTEXT    = "text"
	COLCOUNTRY = "country"
	COLSESSION = "session"
	COLYEAR    = "year"

	// derived docvars
	DVCONTINENT = "continent"
	DVDECADE    = "decade"
	UNKNOWNCONT = "Unknown"

	// sentiment categories of the default lexicon
	SENTIMENTPOS = "positive"
	SENTIMENTNEG = "negative"

	// what to do with a row whose positive+negative total is zero
	ZEROSKIP    = "skip"
	ZERONEUTRAL = "neutral"
	ZEROFAIL    = "fail"
	ZERODEFAULT = ZEROSKIP
)
