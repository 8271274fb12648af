package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arc-language/libarch/pkg/registry"
)

func (a *app) newArchsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archs",
		Short: "List known architectures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.Load(a.config.Registry)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tVENDOR\tDESCRIPTION")
			for _, arch := range reg.All() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", arch.Name, arch.Vendor, arch.Description)
			}
			return tw.Flush()
		},
	}
}
