package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	analyzeTranscript  string
	analyzeDiarization string
	analyzeOutDir      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full chain: merge, stats, timeseries, interruptions, turns",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := pipe.Analyze(analyzeTranscript, analyzeDiarization, analyzeOutDir)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory for transcript/diarization pairs and analyze them",
	Long: `watch monitors a directory for files named <name>.transcript.json and
<name>.diarization.json. When both halves of a pair exist the full analysis
runs and its outputs land under the configured outputs root.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipe.Watch(cmd.Context(), args[0])
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeTranscript, "transcript", "t", "", "ASR transcript JSON")
	analyzeCmd.Flags().StringVarP(&analyzeDiarization, "diarization", "d", "", "diarization JSON")
	analyzeCmd.Flags().StringVar(&analyzeOutDir, "out-dir", "", "output directory (default: new session directory)")
	_ = analyzeCmd.MarkFlagRequired("transcript")
	_ = analyzeCmd.MarkFlagRequired("diarization")

	rootCmd.AddCommand(analyzeCmd, watchCmd)
}
