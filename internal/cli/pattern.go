package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/libarch/pkg/arch"
	"github.com/arc-language/libarch/pkg/registry"
)

func (a *app) newPatternCmd() *cobra.Command {
	var archs []string

	cmd := &cobra.Command{
		Use:   "pattern",
		Short: "Print the regular expression matching unsupported architecture tags",
		Long: `Print the regular expression that matches sources tagged with architectures
outside --archs. Nothing is printed when every architecture is supported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.Load(a.config.Registry)
			if err != nil {
				return err
			}
			if p := arch.UnsupportedPattern(archs, reg.Names()); p != "" {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&archs, "archs", nil, "supported architectures, comma separated")
	_ = cmd.MarkFlagRequired("archs")

	return cmd
}
