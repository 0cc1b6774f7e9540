//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/dfm"
	"github.com/e-gun/HipparchiaTextLab/internal/dict"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"github.com/e-gun/HipparchiaTextLab/internal/mm"
	"github.com/e-gun/HipparchiaTextLab/internal/stm"
	"github.com/e-gun/HipparchiaTextLab/internal/str"
	"github.com/e-gun/HipparchiaTextLab/internal/tok"
	"github.com/e-gun/HipparchiaTextLab/internal/vv"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"text/template"
)

const (
	STAGE = "lnch.Validate"
)

var (
	Config = BuildDefaultConfig()
	Msg    = mm.NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION, vv.DEFAULTGOLOGLEVEL, vv.BLACKANDWHITE)
)

// BuildDefaultConfig - return a CurrentConfiguration filled out with various default values
func BuildDefaultConfig() *str.CurrentConfiguration {
	var c str.CurrentConfiguration
	c.BlackAndWhite = vv.BLACKANDWHITE
	c.CaseFold = true
	c.ChartHeight = vv.DEFAULTCHRTHEIGHT
	c.ChartTopN = vv.DEFAULTCHARTTOPN
	c.ChartWidth = vv.DEFAULTCHRTWIDTH
	c.CloudTopN = vv.DEFAULTCLOUDTOPN
	c.Covariates = []string{}
	c.Init = vv.STMINIT
	c.LogLevel = vv.DEFAULTGOLOGLEVEL
	c.MaxDocFreq = vv.TRIMMAXDOCFREQ
	c.MaxIter = vv.STMMAXITER
	c.MinDocFreq = vv.TRIMMINDOCFREQ
	c.MinTermFreq = vv.TRIMMINTERMFRQ
	c.ModelVault = filepath.Join(vv.DEFAULTOUTDIR, vv.DEFAULTVAULT)
	c.NoiseFixed = []string{}
	c.NoisePatterns = append([]string{}, tok.DefaultNoisePatterns...)
	c.OutDir = vv.DEFAULTOUTDIR
	c.ProfileCPU = false
	c.ProfileMEM = false
	c.QuietStart = false
	c.RemoveNumbers = true
	c.RemovePunct = true
	c.RemoveSymbols = true
	c.RemoveURL = true
	c.Seed = vv.STMSEED
	c.SentimentNeg = vv.SENTIMENTNEG
	c.SentimentPos = vv.SENTIMENTPOS
	c.SplitHyphens = false
	c.SQLTable = vv.DEFAULTSQLTABLE
	c.Stem = true
	c.StopSupplement = []string{}
	c.Tolerance = vv.STMTOLERANCE
	c.TopicShareBy = vv.DVCONTINENT
	c.Topics = vv.STMTOPICS
	c.WorkerCount = runtime.NumCPU()
	c.ZeroPolicy = vv.ZERODEFAULT

	c.PGLogin = str.PostgresLogin{
		Host:   vv.DEFAULTPSQLHOST,
		Port:   vv.DEFAULTPSQLPORT,
		User:   vv.DEFAULTPSQLUSER,
		Pass:   "",
		DBName: vv.DEFAULTPSQLDB,
	}
	return &c
}

// ConfigPath - the explicit path if there is one, otherwise ~/.config/htl-conf.json
func ConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return vv.CONFIGBASIC
	}
	return filepath.Join(fmt.Sprintf(vv.CONFIGALTAPTH, h), vv.CONFIGBASIC)
}

// OverlayConfigFile - decode a JSON configuration on top of cfg; keys that are absent keep their current values
func OverlayConfigFile(cfg *str.CurrentConfiguration, fn string, required bool) error {
	const (
		FAIL1 = "Could not parse the information in '%s'. Skipping and attempting to use built-in defaults instead."
		FAIL2 = "Could not open '%s'"
		MSG1  = "'%s' loaded"
	)

	data, err := os.ReadFile(fn)
	if err != nil {
		if required {
			return errs.Wrap(errs.ErrInvalidConfiguration, STAGE, err)
		}
		Msg.TMI(fmt.Sprintf(FAIL2, fn))
		return nil
	}

	// decode into a copy so that a half-read file leaves cfg untouched
	trial := *cfg
	trial.Covariates = slices.Clone(cfg.Covariates)
	trial.NoiseFixed = slices.Clone(cfg.NoiseFixed)
	trial.NoisePatterns = slices.Clone(cfg.NoisePatterns)
	trial.StopSupplement = slices.Clone(cfg.StopSupplement)
	if err = json.Unmarshal(data, &trial); err != nil {
		if required {
			return errs.Wrap(errs.ErrInvalidConfiguration, STAGE, err)
		}
		Msg.CRIT(fmt.Sprintf(FAIL1, fn))
		return nil
	}
	*cfg = trial
	Msg.TMI(fmt.Sprintf(MSG1, fn))
	return nil
}

// Validate - refuse impossible settings before any stage starts; clamp the ones that can be repaired
func Validate(cfg *str.CurrentConfiguration) error {
	const (
		FAIL5 = "Refusing to set a workercount greater than NumCPU: %d > %d ---> setting workercount value to NumCPU: %d"
		FAIL6 = "Workercount %d is meaningless ---> setting workercount value to 1"
		FAIL7 = "Loglevel %d is out of range ---> setting loglevel to %d"
	)

	if cfg.DataSource == "" {
		return errs.Config(STAGE, "no data source: use --data or set DataSource in '%s'", vv.CONFIGBASIC)
	}
	if cfg.Topics < vv.STMMINTOPICS || cfg.Topics > vv.STMMAXTOPICS {
		return errs.Config(STAGE, "the number of topics must lie between %d and %d; got %d", vv.STMMINTOPICS, vv.STMMAXTOPICS, cfg.Topics)
	}

	tr := dfm.TrimOptions{MinDocFreq: cfg.MinDocFreq, MaxDocFreq: cfg.MaxDocFreq, MinTermFreq: cfg.MinTermFreq}
	if err := tr.Validate(); err != nil {
		return err
	}

	so := stm.DefaultOptions()
	so.K, so.Init, so.MaxIterations, so.Tolerance = cfg.Topics, cfg.Init, cfg.MaxIter, cfg.Tolerance
	if err := so.Validate(); err != nil {
		return err
	}

	if _, err := dict.ParseZeroPolicy(cfg.ZeroPolicy); err != nil {
		return err
	}
	if cfg.SentimentPos == "" || cfg.SentimentNeg == "" || cfg.SentimentPos == cfg.SentimentNeg {
		return errs.Config(STAGE, "sentiment categories '%s' and '%s' must be two different names", cfg.SentimentPos, cfg.SentimentNeg)
	}
	if cfg.ChartTopN < 1 || cfg.CloudTopN < 1 {
		return errs.Config(STAGE, "chart sizes must be positive")
	}

	if cfg.WorkerCount > runtime.NumCPU() {
		Msg.CRIT(fmt.Sprintf(FAIL5, cfg.WorkerCount, runtime.NumCPU(), runtime.NumCPU()))
		cfg.WorkerCount = runtime.NumCPU()
	}
	if cfg.WorkerCount < 1 {
		Msg.CRIT(fmt.Sprintf(FAIL6, cfg.WorkerCount))
		cfg.WorkerCount = 1
	}
	if cfg.LogLevel < mm.MSGMAND || cfg.LogLevel > mm.MSGTMI {
		ll := min(max(cfg.LogLevel, mm.MSGCRIT), mm.MSGTMI)
		Msg.CRIT(fmt.Sprintf(FAIL7, cfg.LogLevel, ll))
		cfg.LogLevel = ll
	}
	return nil
}

// HelpText - vv.LONGHELP filled in with the current settings
func HelpText(cfg *str.CurrentConfiguration) string {
	const (
		FAIL = "HelpText() failed to execute help text template"
	)

	h, err := os.UserHomeDir()
	if err != nil {
		h = "(unknown)"
	}

	m := map[string]interface{}{
		"name":     vv.MYNAME,
		"topics":   cfg.Topics,
		"mindf":    cfg.MinDocFreq,
		"maxdf":    cfg.MaxDocFreq,
		"seed":     cfg.Seed,
		"conffile": vv.CONFIGBASIC,
		"home":     fmt.Sprintf(vv.CONFIGALTAPTH, h),
	}

	t := template.Must(template.New("").Parse(vv.LONGHELP))
	var b bytes.Buffer
	if ee := t.Execute(&b, m); ee != nil {
		Msg.CRIT(FAIL)
	}
	return Msg.ColStyle(b.String())
}

// SampleConfig - the current configuration as indented JSON, ready to be saved as vv.CONFIGBASIC
func SampleConfig(cfg *str.CurrentConfiguration) (string, error) {
	c := *cfg
	c.PGLogin.Pass = ""
	js, err := json.MarshalIndent(c, "", vv.JSONINDENT)
	if err != nil {
		return "", errors.Join(errs.ErrInvalidConfiguration, err)
	}
	return string(js), nil
}
