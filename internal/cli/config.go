package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/libarch/pkg/config"
	"github.com/arc-language/libarch/pkg/platform"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the libarch configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-arch <arch>",
		Short: "Persist the default target architecture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plat, err := platform.New(args[0])
			if err != nil {
				return err
			}

			cfg, err := config.LoadFile(a.cfgFile)
			if err != nil {
				return err
			}
			cfg.Arch = plat.Arch
			if err := config.SaveConfig(cfg, a.cfgFile); err != nil {
				return err
			}
			a.config.Arch = plat.Arch

			fmt.Fprintf(cmd.OutOrStdout(), "default architecture set to %s\n", plat.Arch)
			return nil
		},
	})

	return cmd
}
