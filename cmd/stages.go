package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/podscope/podscope/pipeline"
)

var transcribeOut string

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe audio via the ASR service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := transcribeOut
		if out == "" {
			out = filepath.Join(cfg.Paths.Outputs, pipeline.FileTranscript)
		}
		return pipe.Transcribe(cmd.Context(), args[0], out)
	},
}

var diarizeOut string

var diarizeCmd = &cobra.Command{
	Use:   "diarize <audio-file>",
	Short: "Diarize audio via the diarization service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := diarizeOut
		if out == "" {
			out = filepath.Join(cfg.Paths.Outputs, pipeline.FileDiarization)
		}
		return pipe.Diarize(cmd.Context(), args[0], out)
	},
}

var (
	mergeTranscript  string
	mergeDiarization string
	mergeOut         string
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge transcript and diarization into a speaker-labeled transcript",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := mergeOut
		if out == "" {
			out = filepath.Join(cfg.Paths.Outputs, pipeline.FileMerged)
		}
		_, err := pipe.Merge(mergeTranscript, mergeDiarization, out)
		return err
	},
}

func init() {
	transcribeCmd.Flags().StringVarP(&transcribeOut, "out", "o", "", "output transcript JSON path")
	diarizeCmd.Flags().StringVarP(&diarizeOut, "out", "o", "", "output diarization JSON path")

	mergeCmd.Flags().StringVarP(&mergeTranscript, "transcript", "t", "", "ASR transcript JSON")
	mergeCmd.Flags().StringVarP(&mergeDiarization, "diarization", "d", "", "diarization JSON")
	mergeCmd.Flags().StringVarP(&mergeOut, "out", "o", "", "output merged transcript JSON path")
	_ = mergeCmd.MarkFlagRequired("transcript")
	_ = mergeCmd.MarkFlagRequired("diarization")

	rootCmd.AddCommand(transcribeCmd, diarizeCmd, mergeCmd)
}
