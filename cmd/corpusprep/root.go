package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "corpusprep",
		Short: "Normalize speech corpus manifests into train and eval lists",
		Long: `corpusprep reads the manifests of one or more speech datasets
(LJ Speech, M-AILABS, TWEB, TTS-Portuguese, Nancy, Common Voice or a
feature cache), converts every row to a (text, audio path) record and
writes a training and an evaluation manifest in the cache format.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env", ".env", "path to .env file")

	cmd.AddCommand(newPrepareCmd(opts))
	cmd.AddCommand(newFormatsCmd())
	return cmd
}
