//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

type CurrentConfiguration struct {
	BlackAndWhite  bool
	ChartHeight    string
	ChartTopN      int
	ChartWidth     string
	CloudTopN      int
	CaseFold       bool
	Covariates     []string
	DataSource     string // path to a file, a postgres:// DSN, or "pg" to use PGLogin
	Init           string // "spectral", "random", "lda"
	LogLevel       int
	MaxDocFreq     float64
	MaxIter        int
	MinDocFreq     float64
	MinTermFreq    int
	ModelVault     string // sqlite file of fitted topic models; "" fits every time
	NoiseFixed     []string
	NoisePatterns  []string
	OutDir         string
	PGLogin        PostgresLogin
	PolicyDict     string
	ProfileCPU     bool
	ProfileMEM     bool
	QuietStart     bool
	RemoveNumbers  bool
	RemovePunct    bool
	RemoveSymbols  bool
	RemoveURL      bool
	Seed           uint64
	SentimentDict  string
	SentimentNeg   string
	SentimentPos   string
	SplitHyphens   bool
	SQLTable       string
	Stem           bool
	StopSupplement []string
	Tolerance      float64
	TopicShareBy   string
	Topics         int
	WorkerCount    int
	ZeroPolicy     string // "skip", "neutral", "fail"
}
