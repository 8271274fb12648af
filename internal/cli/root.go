package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/arc-language/libarch"
	"github.com/arc-language/libarch/pkg/config"
	"github.com/arc-language/libarch/pkg/platform"
	"github.com/arc-language/libarch/pkg/registry"
)

// Version is the libarch release, overridden at link time
var Version = "0.1.0"

// app carries state shared by the subcommands of one invocation
type app struct {
	cfgFile  string
	arch     string
	registry string
	debug    bool

	config *config.Config
	logger *log.Logger
}

// Execute executes the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "libarch",
		Short: "Arduino library architecture resolver",
		Long: `libarch - Arduino library architecture resolver

Reads a library's library.properties, checks the target architecture against
the architectures it declares and prints the source files that should be
compiled for that target.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/libarch/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.arch, "arch", "", "target architecture (overrides $"+config.EnvArch+" and the config file)")
	rootCmd.PersistentFlags().StringVar(&a.registry, "registry", "", "TOML file with additional architectures")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(a.newResolveCmd())
	rootCmd.AddCommand(a.newCheckCmd())
	rootCmd.AddCommand(a.newPatternCmd())
	rootCmd.AddCommand(a.newInfoCmd())
	rootCmd.AddCommand(a.newArchsCmd())
	rootCmd.AddCommand(a.newFetchCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(a.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Override config with flags
	if a.registry != "" {
		cfg.Registry = a.registry
	}
	if a.debug {
		cfg.Debug = true
	}
	a.config = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg)

	return nil
}

func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "libarch",
	})

	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	} else if cfg.LogLevel != "" {
		if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
			logger.SetLevel(lvl)
		}
	}

	return logger
}

// resolver builds a Resolver for the configured target
func (a *app) resolver() (*libarch.Resolver, error) {
	plat, err := platform.Detect(a.arch, os.Getenv(config.EnvArch), a.config.Arch)
	if err != nil {
		return nil, fmt.Errorf("detecting platform: %w (use --arch or set %s)", err, config.EnvArch)
	}

	reg, err := registry.Load(a.config.Registry)
	if err != nil {
		return nil, err
	}

	if err := plat.Validate(reg); err != nil {
		a.logger.Warn("target architecture is not in the registry", "arch", plat.Arch)
	}
	a.logger.Debug("target platform", "platform", plat.String())

	return libarch.NewResolver(plat, &libarch.Options{
		Registry:         reg,
		Logger:           a.logger,
		SourceExtensions: a.config.SourceExtensions,
	})
}

// library opens --library, unpacking archives into the cache
func (a *app) library(path string) (string, error) {
	if path == "" {
		path = "."
	}
	return libarch.OpenLibrary(path, a.config.CachePath)
}
