package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/podscope/podscope/config"
)

var (
	relabelKind string
	relabelOut  string
)

var relabelCmd = &cobra.Command{
	Use:   "relabel <file.json>",
	Short: "Rewrite speaker labels using the configured mapping",
	Long: `relabel applies the speakers.labels mapping from the configuration to a
diarization or merged transcript file, e.g. turning raw "S0"/"S1" labels
into display names. Without -o the file is rewritten in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := relabelOut
		if out == "" {
			out = args[0]
		}
		res, err := pipe.RelabelFile(args[0], out, relabelKind)
		if err != nil {
			return err
		}
		for label, n := range res.After {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d segments\n", label, n)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "changed %d segment labels\n", res.Changed)
		return nil
	},
}

var configInitOut string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.WriteDefault(configInitOut); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), configInitOut)
		return nil
	},
}

func init() {
	relabelCmd.Flags().StringVar(&relabelKind, "kind", "diarization", "file kind: diarization or merged")
	relabelCmd.Flags().StringVarP(&relabelOut, "out", "o", "", "output path (default: in place)")

	configInitCmd.Flags().StringVarP(&configInitOut, "out", "o", "podscope.yaml", "where to write the config file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(relabelCmd, configCmd)
}
