//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/pipe"
	"github.com/e-gun/HipparchiaTextLab/internal/stops"
	"github.com/e-gun/HipparchiaTextLab/internal/str"
	"github.com/e-gun/HipparchiaTextLab/internal/vv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"strings"
)

// StartHook - called with the final configuration just before a pipeline runs; the returned func runs when it ends
type StartHook func(cfg *str.CurrentConfiguration) (stop func())

// NewRootCommand - the command tree; flags write straight into a fresh Config
func NewRootCommand(hooks ...StartHook) *cobra.Command {
	Config = BuildDefaultConfig()
	var cf string

	root := &cobra.Command{
		Use:           "HipparchiaTextLab",
		Short:         vv.MYNAME + ": feature counts, dictionary scores and topic models for a corpus of speeches",
		Long:          HelpText(Config),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return prepare(cmd, cf)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cf, "config", "", fmt.Sprintf("JSON configuration file (default: ~/.config/%s)", vv.CONFIGBASIC))
	bindflags(pf, Config)

	root.AddCommand(
		pipelinecmd("run", "every stage: features, dictionaries, topics and charts", pipe.All, hooks),
		pipelinecmd("features", "load, tokenize, clean and count; chart the most frequent features", pipe.Features, hooks),
		pipelinecmd("sentiment", "the feature counts plus sentiment and policy dictionary scores", pipe.Features|pipe.Sentiment, hooks),
		pipelinecmd("topics", "the feature counts plus the topic model", pipe.Features|pipe.Topics, hooks),
		versioncmd(),
		configcmd(),
	)
	return root
}

// bindflags - every flag defaults to the current value of the field it sets
func bindflags(fs *pflag.FlagSet, c *str.CurrentConfiguration) {
	fs.StringVar(&c.DataSource, "data", c.DataSource, "dataset: .csv, .tsv, .json, .jsonl, .db/.sqlite, a postgres:// DSN, or 'pg'")
	fs.StringVar(&c.SQLTable, "table", c.SQLTable, "table to read from SQLite or PostgreSQL")
	fs.StringVar(&c.PGLogin.Host, "pg-host", c.PGLogin.Host, "PostgreSQL host when --data=pg")
	fs.IntVar(&c.PGLogin.Port, "pg-port", c.PGLogin.Port, "PostgreSQL port when --data=pg")
	fs.StringVar(&c.PGLogin.User, "pg-user", c.PGLogin.User, "PostgreSQL user when --data=pg")
	fs.StringVar(&c.PGLogin.Pass, "pg-pass", c.PGLogin.Pass, "PostgreSQL password when --data=pg")
	fs.StringVar(&c.PGLogin.DBName, "pg-db", c.PGLogin.DBName, "PostgreSQL database when --data=pg")
	fs.StringVar(&c.OutDir, "out", c.OutDir, "directory that receives one subdirectory per run")

	fs.BoolVar(&c.RemoveNumbers, "remove-numbers", c.RemoveNumbers, "drop numeric tokens")
	fs.BoolVar(&c.RemovePunct, "remove-punct", c.RemovePunct, "strip punctuation")
	fs.BoolVar(&c.RemoveSymbols, "remove-symbols", c.RemoveSymbols, "strip symbols")
	fs.BoolVar(&c.RemoveURL, "remove-url", c.RemoveURL, "drop urls and e-mail addresses")
	fs.BoolVar(&c.SplitHyphens, "split-hyphens", c.SplitHyphens, "split hyphenated words")
	fs.StringSliceVar(&c.NoisePatterns, "noise", c.NoisePatterns, "regular expressions for tokens to remove")
	fs.StringSliceVar(&c.NoiseFixed, "noise-fixed", c.NoiseFixed, "exact tokens to remove (case-insensitive)")
	fs.StringSliceVar(&c.StopSupplement, "stops", c.StopSupplement, fmt.Sprintf("stop words added to the English list (default: ~/.config/%s)", vv.CONFIGSTOPSUPP))
	fs.BoolVar(&c.CaseFold, "casefold", c.CaseFold, "fold case before counting")
	fs.BoolVar(&c.Stem, "stem", c.Stem, "stem the topic model's features")

	fs.Float64Var(&c.MinDocFreq, "min-docfreq", c.MinDocFreq, "lowest document frequency kept, as a proportion")
	fs.Float64Var(&c.MaxDocFreq, "max-docfreq", c.MaxDocFreq, "highest document frequency kept, as a proportion")
	fs.IntVar(&c.MinTermFreq, "min-termfreq", c.MinTermFreq, "lowest total count kept")

	fs.StringVar(&c.SentimentDict, "sentiment", c.SentimentDict, "sentiment lexicon (.yml or .dic); built-in if empty")
	fs.StringVar(&c.PolicyDict, "policy", c.PolicyDict, "policy lexicon (.yml or .dic); built-in if empty")
	fs.StringVar(&c.SentimentPos, "positive", c.SentimentPos, "positive category of the sentiment lexicon")
	fs.StringVar(&c.SentimentNeg, "negative", c.SentimentNeg, "negative category of the sentiment lexicon")
	fs.StringVar(&c.ZeroPolicy, "zero-policy", c.ZeroPolicy, "rows without sentiment hits: skip, neutral or fail")

	fs.IntVarP(&c.Topics, "topics", "k", c.Topics, "number of topics")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "random seed for the topic model")
	fs.StringVar(&c.Init, "init", c.Init, "topic initialization: spectral, random or lda")
	fs.IntVar(&c.MaxIter, "max-iter", c.MaxIter, "EM iterations before giving up")
	fs.Float64Var(&c.Tolerance, "tolerance", c.Tolerance, "relative change in the bound that counts as converged")
	fs.StringSliceVar(&c.Covariates, "covariates", c.Covariates, "docvars that drive topic prevalence")
	fs.StringVar(&c.ModelVault, "vault", c.ModelVault, "sqlite file that keeps fitted topic models for reuse; empty to always refit")
	fs.StringVar(&c.TopicShareBy, "share-by", c.TopicShareBy, "docvar for the topic share chart")

	fs.IntVar(&c.ChartTopN, "chart-topn", c.ChartTopN, "features in the frequency chart")
	fs.IntVar(&c.CloudTopN, "cloud-topn", c.CloudTopN, "features in the word cloud")
	fs.StringVar(&c.ChartWidth, "chart-width", c.ChartWidth, "chart width")
	fs.StringVar(&c.ChartHeight, "chart-height", c.ChartHeight, "chart height")

	fs.IntVarP(&c.WorkerCount, "workers", "w", c.WorkerCount, "goroutines for tokenizing and fitting")
	fs.IntVar(&c.LogLevel, "loglevel", c.LogLevel, "message level: -1 (mandatory only) to 5 (everything)")
	fs.BoolVar(&c.BlackAndWhite, "bw", c.BlackAndWhite, "no colors in terminal output")
	fs.BoolVarP(&c.QuietStart, "quiet", "q", c.QuietStart, "no copyright notice at launch")
	fs.BoolVar(&c.ProfileCPU, "cpuprofile", c.ProfileCPU, "write a cpu profile into the output directory")
	fs.BoolVar(&c.ProfileMEM, "memprofile", c.ProfileMEM, "write a memory profile into the output directory")
}

// prepare - defaults, then the JSON file, then whatever was set on the command line
func prepare(cmd *cobra.Command, cf string) error {
	scalars := make(map[string]string)
	lists := make(map[string][]string)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			lists[f.Name] = sv.GetSlice()
		} else {
			scalars[f.Name] = f.Value.String()
		}
	})

	if err := OverlayConfigFile(Config, ConfigPath(cf), cf != ""); err != nil {
		return err
	}

	var err error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			err = sv.Replace(lists[f.Name])
		} else if e := f.Value.Set(scalars[f.Name]); e != nil {
			err = e
		}
	})
	if err != nil {
		return err
	}

	UpdateMessageMakerWithConfig(NewMessageMakerConfigured(Config, cmd.OutOrStdout()))
	return nil
}

func pipelinecmd(use string, short string, want pipe.Want, hooks []StartHook) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := Validate(Config); err != nil {
				return err
			}
			if len(Config.StopSupplement) == 0 {
				Config.StopSupplement = stops.ReadSupplement("")
			}
			if !Config.QuietStart {
				Msg.MAND(VersionLine(Config))
				Msg.FYI(Copyright())
			}

			for _, h := range hooks {
				if stop := h(Config); stop != nil {
					defer stop()
				}
			}

			a, err := pipe.Run(cmd.Context(), Config, want)
			if err != nil {
				return err
			}
			report(cmd, a)
			return nil
		},
	}
}

// report - a short summary of a finished run
func report(cmd *cobra.Command, a *pipe.Artifacts) {
	const (
		NTOP = 10
		RUN  = "run %s: %d documents, %d features\n"
		TOP  = "most frequent: %s\n"
		SENT = "sentiment: %d countries scored\n"
		TPC  = "topic %d: %s\n"
		OUT  = "results: %s\n"
	)

	cmd.Printf(RUN, a.RunID, a.Features.Ndocs(), a.Features.Nterms())

	var tt []string
	for _, f := range a.Top[:min(NTOP, len(a.Top))] {
		tt = append(tt, f.Term)
	}
	cmd.Printf(TOP, strings.Join(tt, ", "))

	if a.Sentiment != nil {
		cmd.Printf(SENT, len(a.SentimentByCountry))
	}
	if a.Topics != nil {
		for k, l := range a.Topics.Labels(vv.STMTOPTERMS / 2) {
			cmd.Printf(TPC, k+1, l)
		}
	}
	if a.OutDir != "" {
		cmd.Printf(OUT, a.OutDir)
	}
}

func versioncmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print version and build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			PrintVersion(cmd.OutOrStdout(), Config)
			PrintBuildInfo(cmd.OutOrStdout(), Config)
		},
	}
}

func configcmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: fmt.Sprintf("print the effective configuration as JSON (save it as ~/.config/%s)", vv.CONFIGBASIC),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			js, err := SampleConfig(Config)
			if err != nil {
				return err
			}
			cmd.Println(js)
			return nil
		},
	}
}
