package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/libarch/pkg/fetch"
)

func (a *app) newFetchCmd() *cobra.Command {
	opts := fetch.Options{}

	cmd := &cobra.Command{
		Use:   "fetch <git-url>",
		Short: "Clone a git-hosted library into the cache",
		Long: `Clone a library repository into the libarch cache and print its path, which
can be passed to --library.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.URL = args[0]
			opts.CacheDir = a.config.CachePath
			if a.config.Debug {
				opts.Progress = cmd.ErrOrStderr()
			}

			a.logger.Info("fetching library", "url", opts.URL, "ref", opts.Ref)
			dir, err := fetch.Fetch(cmd.Context(), opts)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Ref, "ref", "", "branch or tag to check out")
	cmd.Flags().IntVar(&opts.Depth, "depth", 1, "history depth, 0 for full history")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "re-clone even if cached")

	return cmd
}
