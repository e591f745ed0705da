package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vfxtool/pkg/convert"
	"github.com/matzehuels/vfxtool/pkg/errors"
	"github.com/matzehuels/vfxtool/pkg/observability"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <files...>",
		Short: "Convert .vfx files to XML and XML files back to .vfx",
		Long: `Convert each file in the direction given by its extension.

  effect.vfx      -> effect.vfx.xml
  effect.vfx.xml  -> effect.vfx

Other files are skipped. A failing file does not stop the batch; the
command exits non-zero if any file failed. Hashes that no dictionary word
resolved are written to the hash dump files, replacing their previous
contents.`,
		Example: `  vfxtool convert fx/*.vfx
  vfxtool convert --config ./vfxtool.toml effect.vfx.xml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), args)
		},
	}
}

// runConvert converts paths and prints one line per file plus a summary.
func (c *CLI) runConvert(ctx context.Context, paths []string) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	stats := &statsCollector{}
	observability.SetConversionHooks(stats)
	defer observability.Reset()

	prog := newProgress(logger)
	codec, err := c.loadCodec(ctx, cfg)
	if err != nil {
		return err
	}

	runner := convert.NewRunner(codec, logger)
	results := runner.Run(ctx, paths)

	for _, r := range results {
		switch {
		case r.Direction == convert.Skip:
			printWarning("Skipped %s", r.Input)
		case r.Err != nil:
			printError("%s: %s", r.Input, errors.UserMessage(r.Err))
		default:
			printSuccess("%s %s", r.Direction, filepath.Base(r.Input))
			printFile(r.Output)
		}
	}

	if err := runner.WriteHashDumps(cfg.HashDumpDir); err != nil {
		printWarning("Could not write hash dumps: %v", err)
	} else if strs, ps := runner.Unresolved(); len(strs)+len(ps) > 0 {
		printDetail("%d unresolved string hashes, %d unresolved path hashes in %s", len(strs), len(ps), cfg.HashDumpDir)
	}

	printStats(stats.snapshot())
	prog.done(fmt.Sprintf("Processed %d files", len(results)))

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if failed := convert.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
