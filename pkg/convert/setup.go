package convert

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vfxtool/pkg/cache"
	"github.com/matzehuels/vfxtool/pkg/config"
	"github.com/matzehuels/vfxtool/pkg/dictionary"
	"github.com/matzehuels/vfxtool/pkg/errors"
	"github.com/matzehuels/vfxtool/pkg/schema"
	"github.com/matzehuels/vfxtool/pkg/vfx"
)

// LoadCodec builds a codec from the configured definitions and
// dictionaries. The registry and both tables are built once and shared by
// every conversion of the run. A nil cache disables table caching.
func LoadCodec(ctx context.Context, cfg config.Config, c cache.Cache, logger *log.Logger) (*vfx.Codec, error) {
	if logger == nil {
		logger = log.Default()
	}
	if _, err := os.Stat(cfg.Definitions); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "definitions directory")
	}
	reg, err := schema.LoadRegistry(os.DirFS(cfg.Definitions), ".")
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded definitions",
		"dir", cfg.Definitions,
		"gz", reg.Len(schema.GZ),
		"tpp", reg.Len(schema.TPP))

	hasher := cfg.Hasher()
	opts := dictionary.LoadOptions{
		Hasher:  hasher,
		Workers: cfg.Workers,
		Cache:   c,
		Logger:  logger,
	}
	strs, err := dictionary.Load(ctx, cfg.StringDictionary, dictionary.StringCode, opts)
	if err != nil {
		return nil, err
	}
	paths, err := dictionary.Load(ctx, cfg.PathDictionary, dictionary.PathCode, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded dictionaries", "strings", strs.Len(), "paths", paths.Len())

	return &vfx.Codec{
		Registry: reg,
		Strings:  strs,
		Paths:    paths,
		Hasher:   hasher,
		Logger:   logger,
	}, nil
}
