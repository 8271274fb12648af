package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "libarch version %s\n", Version)
			fmt.Fprintln(cmd.OutOrStdout(), "Arduino library architecture resolver")
			fmt.Fprintln(cmd.OutOrStdout(), "https://github.com/arc-language/libarch")
		},
	}
}
