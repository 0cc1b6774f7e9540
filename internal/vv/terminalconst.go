//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	TERMINALTEXT = `Copyright (C) %s / %s
      %s

      This program comes with ABSOLUTELY NO WARRANTY; without even the  
      implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.

      This is free software, and you are welcome to redistribute it and/or 
      modify it under the terms of the GNU General Public License version 3.`

	PROJYEAR = "2022-24"
	PROJAUTH = "E. Gunderson"
	PROJURL  = "https://github.com/e-gun/HipparchiaTextLab"

	LONGHELP = `C5S1{{.name}}S0C0 turns a corpus of speeches into feature counts, dictionary scores and a topic model.

S3stagesS0: load C6→C0 corpus C6→C0 tokens C6→C0 clean C6→C0 dfm C6→C0 trim C6→C0 dictionaries C6→C0 topic model C6→C0 charts

   C1--dataC0 C2{path|dsn}C0      .csv, .tsv, .json, .jsonl, .db/.sqlite or a postgres:// DSN
   C1--policyC0 C2{path}C0        policy-topic lexicon (.yml or .dic)
   C1--sentimentC0 C2{path}C0     sentiment lexicon (.yml or .dic)
   C1--topicsC0 C2{num}C0         number of topics [C6currentC0: C3{{.topics}}C0]
   C1--min-docfreqC0 C2{prop}C0   lower document frequency bound [C6currentC0: C3{{.mindf}}C0]
   C1--max-docfreqC0 C2{prop}C0   upper document frequency bound [C6currentC0: C3{{.maxdf}}C0]
   C1--seedC0 C2{num}C0           topic model seed [C6currentC0: C3{{.seed}}C0]

     S1NB:S0 a JSON file named "C3{{.conffile}}C0" in "C3{{.home}}C0" configures everything for you;
         command line flags override it.`
)
