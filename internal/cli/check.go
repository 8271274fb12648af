package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) newCheckCmd() *cobra.Command {
	var library, properties string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a library supports the target architecture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.resolver()
			if err != nil {
				return err
			}

			root, err := a.library(library)
			if err != nil {
				return err
			}

			res, err := r.Check(cmd.Context(), root, properties)
			if err != nil {
				return err
			}

			declared := "*"
			if len(res.Architectures) > 0 {
				declared = strings.Join(res.Architectures, ",")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s supports %s (declares: %s)\n", res.Library, r.Platform().Arch, declared)
			return nil
		},
	}

	cmd.Flags().StringVarP(&library, "library", "l", ".", "library directory or tarball")
	cmd.Flags().StringVar(&properties, "properties", "", "explicit library.properties path")

	return cmd
}
