package catalog

import (
	"context"

	"kuse-store/internal/config"

	"github.com/rs/zerolog"
)

// FromConfig returns the Source selected by cfg: the built-in catalog when no
// seed file is set, else the file read from S3 with a local fallback, or from
// disk only when S3 is disabled.
func FromConfig(ctx context.Context, cfg *config.Config, logger zerolog.Logger) Source {
	if cfg.Seed.File == "" {
		logger.Info().Msg("using built-in sample catalog")
		return Builtin()
	}

	fileLoader := NewFileLoader(logger)
	var s3Loader Loader

	if cfg.S3.Enabled {
		loader, err := NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = loader
		}
	} else {
		logger.Info().Msg("using local file system for the sample catalog (S3 disabled)")
	}

	return NewSource(NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger), cfg.Seed.File)
}
