//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	TRIMMINDOCFREQ = 0.075
	TRIMMAXDOCFREQ = 0.90
	TRIMMINTERMFRQ = 0

	STMTOPICS     = 8
	STMMINTOPICS  = 2
	STMMAXTOPICS  = 100
	STMSEED       = 8458
	STMINIT       = "spectral"
	STMMAXITER    = 500
	STMTOLERANCE  = 1e-5
	STMALPHA      = 0.1  // per topic concentration under uniform prevalence
	STMETA        = 1e-3 // topic-word smoothing added in the M-step
	STMBLOCK      = 64   // documents per reduction block
	STMESTEPITER  = 100
	STMESTEPTOL   = 1e-6
	STMRIDGE      = 1e-2 // prevalence regression penalty
	STMTOPTERMS   = 10
	STMMAXSPECTRL = 5000 // vocabulary cap for the V x V co-occurrence matrix

	INITSPECTRAL = "spectral"
	INITRANDOM   = "random"
	INITLDA      = "lda"

	LDAINITITER    = 50
	LDAINITBURNIN  = 2
	LDAINITXFORMPS = 25

	DEFAULTCHRTWIDTH  = "1400px"
	DEFAULTCHRTHEIGHT = "800px"
)
