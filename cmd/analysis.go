package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/podscope/podscope/pipeline"
)

// The analysis subcommands all take the merged transcript as their single
// argument and accept -o for the output path.

var statsOut string

var statsCmd = &cobra.Command{
	Use:   "stats <merged-transcript.json>",
	Short: "Per-speaker speaking time, word count and words per minute",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipe.Stats(args[0], analysisOut(statsOut, pipeline.FileStats))
	},
}

var timeseriesOut string

var timeseriesCmd = &cobra.Command{
	Use:   "timeseries <merged-transcript.json>",
	Short: "Windowed speaking-rate series per speaker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipe.Timeseries(args[0], analysisOut(timeseriesOut, pipeline.FileTimeseries))
	},
}

var interruptionsOut string

var interruptionsCmd = &cobra.Command{
	Use:   "interruptions <merged-transcript.json>",
	Short: "Detect interruptions and backchannels between speakers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipe.Interruptions(args[0], analysisOut(interruptionsOut, pipeline.FileInterruptions))
	},
}

var turnsOut string

var turnsCmd = &cobra.Command{
	Use:   "turns <merged-transcript.json>",
	Short: "Turn-taking transitions, alternation rate and run statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipe.Turns(args[0], analysisOut(turnsOut, pipeline.FileTurns))
	},
}

func analysisOut(flag, name string) string {
	if flag != "" {
		return flag
	}
	return filepath.Join(cfg.Paths.Outputs, name)
}

func init() {
	statsCmd.Flags().StringVarP(&statsOut, "out", "o", "", "output JSON path")
	timeseriesCmd.Flags().StringVarP(&timeseriesOut, "out", "o", "", "output JSON path")
	interruptionsCmd.Flags().StringVarP(&interruptionsOut, "out", "o", "", "output JSON path")
	turnsCmd.Flags().StringVarP(&turnsOut, "out", "o", "", "output JSON path")

	rootCmd.AddCommand(statsCmd, timeseriesCmd, interruptionsCmd, turnsCmd)
}
