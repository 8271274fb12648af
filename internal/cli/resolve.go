package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arc-language/libarch"
)

// Output formats of the resolve command
const (
	FormatLines = "lines"
	FormatCMake = "cmake"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

type resolveOptions struct {
	library    string
	properties string
	include    []string
	exclude    []string
	format     string
}

func (a *app) newResolveCmd() *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve [sources...]",
		Short: "Print the library sources that apply to the target architecture",
		Long: `Filter a library's source files for the target architecture.

Sources are taken from the arguments, or discovered from the library when none
are given. Files tagged with an architecture the library does not support are
dropped. Exits with status 2 if the library does not support the target.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runResolve(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.library, "library", "l", ".", "library directory or tarball")
	cmd.Flags().StringVar(&opts.properties, "properties", "", "explicit library.properties path")
	cmd.Flags().StringArrayVar(&opts.include, "include", nil, "glob of discovered sources to keep (repeatable)")
	cmd.Flags().StringArrayVar(&opts.exclude, "exclude", nil, "glob of discovered sources to skip (repeatable)")
	cmd.Flags().StringVarP(&opts.format, "format", "o", FormatLines, "output format: lines, cmake, json, yaml")

	return cmd
}

func (a *app) runResolve(cmd *cobra.Command, opts *resolveOptions, args []string) error {
	switch opts.format {
	case FormatLines, FormatCMake, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	r, err := a.resolver()
	if err != nil {
		return err
	}

	root, err := a.library(opts.library)
	if err != nil {
		return err
	}

	res, err := r.Resolve(cmd.Context(), &libarch.Request{
		LibraryRoot:    root,
		PropertiesFile: opts.properties,
		Sources:        args,
		Discover:       len(args) == 0,
		Include:        opts.include,
		Exclude:        opts.exclude,
	})
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), opts.format, r.Platform().Arch, res)
}

type resultDoc struct {
	Library       string   `json:"library" yaml:"library"`
	Root          string   `json:"root" yaml:"root"`
	Arch          string   `json:"arch" yaml:"arch"`
	Metadata      string   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Architectures []string `json:"architectures" yaml:"architectures"`
	Pattern       string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Sources       []string `json:"sources" yaml:"sources"`
	Excluded      []string `json:"excluded" yaml:"excluded"`
	Includes      []string `json:"includes" yaml:"includes"`
}

func writeResult(w io.Writer, format, arch string, res *libarch.Result) error {
	switch format {
	case FormatCMake:
		_, err := fmt.Fprintln(w, strings.Join(res.Sources, ";"))
		return err
	case FormatJSON, FormatYAML:
		doc := resultDoc{
			Library:       res.Library,
			Root:          res.Root,
			Arch:          arch,
			Metadata:      res.MetadataPath,
			Architectures: nonNil(res.Architectures),
			Pattern:       res.Pattern,
			Sources:       nonNil(res.Sources),
			Excluded:      nonNil(res.Excluded),
			Includes:      nonNil(res.Includes),
		}
		if format == FormatJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, s := range res.Sources {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
		}
		return nil
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
