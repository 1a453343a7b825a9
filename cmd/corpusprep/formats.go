package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maauso/corpusprep/internal/corpus"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported dataset formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, f := range corpus.Formats() {
				if aliases := f.Aliases(); len(aliases) > 0 {
					fmt.Fprintf(w, "%s (%s)\n", f, strings.Join(aliases, ", "))
					continue
				}
				fmt.Fprintln(w, f)
			}
			return nil
		},
	}
}
