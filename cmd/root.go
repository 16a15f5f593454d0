// Package cmd defines the podscope command line. Each pipeline stage is a
// subcommand reading and writing whole JSON files, so stages can be run
// one at a time or chained through analyze.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/podscope/podscope/config"
	"github.com/podscope/podscope/pipeline"
)

var (
	cfgFile string
	cfg     *config.Root
	log     = logrus.New()
	pipe    *pipeline.Pipeline
)

var rootCmd = &cobra.Command{
	Use:   "podscope",
	Short: "Analyze the conversation dynamics of a two-speaker podcast",
	Long: `podscope merges a word-level ASR transcript with speaker diarization
intervals and computes speaking-time statistics, windowed speaking rate,
interruption/backchannel events and turn-taking patterns, writing every
result as a JSON file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		lvl, err := logrus.ParseLevel(cfg.Pipeline.LogLvl)
		if err != nil {
			lvl = logrus.InfoLevel
		}
		log.SetLevel(lvl)
		pipe = pipeline.New(cfg, log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default podscope.yaml in the working directory)")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
