// Package cli implements the vfxtool command-line interface.
//
// All commands support --verbose (-v) for debug-level logging. The root
// command attaches its logger to the command context, so subcommands and
// the packages they call log through the same handler.
//
// # Commands
//
// The main commands are:
//   - convert: Convert .vfx binaries to XML and XML back to .vfx
//   - graph: Draw an effect graph as DOT, SVG, PDF, or PNG
//   - inspect: Browse the nodes and property values of a file
//   - hash: Print string and path codes for text
//   - cache: Manage the dictionary table cache
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vfxtool/pkg/buildinfo"
	"github.com/matzehuels/vfxtool/pkg/cache"
	"github.com/matzehuels/vfxtool/pkg/config"
	"github.com/matzehuels/vfxtool/pkg/convert"
	"github.com/matzehuels/vfxtool/pkg/schema"
	"github.com/matzehuels/vfxtool/pkg/vfx"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "vfxtool"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath  string
	definitions string
	workers     int
	noCache     bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// Files given directly to the root command are converted, so dropping
// files onto the executable works like "vfxtool convert".
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "vfxtool [files...]",
		Short: "vfxtool converts VFX effect graphs between binary and XML",
		Long: `vfxtool converts VFX node-graph files (.vfx) to an editable XML tree
and back. Files ending in .vfx become .vfx.xml; files ending in .xml are
written back without the .xml suffix.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return c.runConvert(cmd.Context(), args)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "config file (default: "+config.FileName+" next to the executable or in the working directory)")
	flags.StringVar(&c.definitions, "definitions", "", "override the definitions directory")
	flags.IntVar(&c.workers, "workers", 0, "dictionary hashing workers (0 = config value)")
	flags.BoolVar(&c.noCache, "no-cache", false, "rebuild dictionary tables instead of using the cache")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.hashCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Codec Setup
// =============================================================================

// loadConfig resolves the config file and applies command-line overrides.
// Without a config file the defaults are rooted next to the executable.
func (c *CLI) loadConfig() (config.Config, error) {
	var cfg config.Config
	if path := config.Find(c.configPath); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
		c.Logger.Debug("loaded config", "path", path)
	} else {
		cfg = config.Default(exeDir())
	}

	if c.definitions != "" {
		cfg.Definitions = c.definitions
	}
	if c.workers > 0 {
		cfg.Workers = c.workers
	}
	if c.noCache {
		cfg.NoCache = true
	}
	return cfg, cfg.Validate()
}

// loadCodec loads definitions and dictionaries behind a spinner.
func (c *CLI) loadCodec(ctx context.Context, cfg config.Config) (*vfx.Codec, error) {
	cc, err := newCache(cfg.NoCache)
	if err != nil {
		return nil, err
	}
	defer cc.Close()

	sp := startSpinner(ctx, os.Stderr, "Loading definitions and dictionaries...")
	codec, err := convert.LoadCodec(ctx, cfg, cc, c.Logger)
	if err != nil {
		sp.fail("Could not load definitions and dictionaries")
		return nil, err
	}
	sp.succeed("%s", loadSummary(codec))
	return codec, nil
}

// loadSummary describes what a loaded codec holds.
func loadSummary(codec *vfx.Codec) string {
	return fmt.Sprintf("Loaded %d definitions (%d GZ, %d TPP), %d string and %d path words",
		codec.Registry.Len(schema.GZ)+codec.Registry.Len(schema.TPP),
		codec.Registry.Len(schema.GZ), codec.Registry.Len(schema.TPP),
		codec.Strings.Len(), codec.Paths.Len())
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/vfxtool/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// exeDir returns the directory of the running executable, or the working
// directory when it cannot be determined.
func exeDir() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Dir(exe)
	}
	return "."
}
