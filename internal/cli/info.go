package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arc-language/libarch"
)

func (a *app) newInfoCmd() *cobra.Command {
	var library, properties string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show a library's metadata",
		Long:  `Display the fields of a library's library.properties.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.library(library)
			if err != nil {
				return err
			}

			md, err := libarch.ReadMetadata(root, properties)
			if err != nil {
				return err
			}

			// Display info
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name: %s\n", md.Name)
			fmt.Fprintf(out, "Version: %s\n", md.Version)
			if md.Author != "" {
				fmt.Fprintf(out, "Author: %s\n", md.Author)
			}
			if md.Maintainer != "" {
				fmt.Fprintf(out, "Maintainer: %s\n", md.Maintainer)
			}
			if md.Sentence != "" {
				fmt.Fprintf(out, "Sentence: %s\n", md.Sentence)
			}
			if md.Category != "" {
				fmt.Fprintf(out, "Category: %s\n", md.Category)
			}
			if md.URL != "" {
				fmt.Fprintf(out, "URL: %s\n", md.URL)
			}
			if md.HasArchitectures {
				fmt.Fprintf(out, "Architectures: %s\n", strings.Join(md.Architectures, ", "))
			} else {
				fmt.Fprintln(out, "Architectures: (not declared)")
			}
			if len(md.Depends) > 0 {
				fmt.Fprintf(out, "Depends: %s\n", strings.Join(md.Depends, ", "))
			}
			fmt.Fprintf(out, "Metadata: %s\n", md.Path)

			return nil
		},
	}

	cmd.Flags().StringVarP(&library, "library", "l", ".", "library directory or tarball")
	cmd.Flags().StringVar(&properties, "properties", "", "explicit library.properties path")

	return cmd
}
