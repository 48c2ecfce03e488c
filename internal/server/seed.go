package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/playperu/arcade/internal/catalog"
)

// RestoreCatalog swaps in the most recent uploaded catalog, if any.
// Idempotent: leaves cat alone when nothing was ever uploaded.
func RestoreCatalog(ctx context.Context, logger *slog.Logger, results ResultStore, cat *catalog.Catalog) error {
	src, err := results.LatestCatalog(ctx)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	rounds, err := catalog.Parse("stored.hcl", src)
	if err != nil {
		return err
	}
	cat.Replace(rounds, src)

	logger.Info("restored uploaded catalog", "rounds", len(rounds))
	return nil
}

// LoadCatalog picks the round set at boot. An operator file at path wins
// outright; otherwise the embedded heroes are used, overridden by the last
// admin upload.
func LoadCatalog(ctx context.Context, logger *slog.Logger, results ResultStore, path string) (*catalog.Catalog, error) {
	if path != "" {
		rounds, src, err := catalog.LoadFile(path)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded catalog file", "path", path, "rounds", len(rounds))
		return catalog.New(rounds, src), nil
	}

	cat := catalog.NewDefault()
	if err := RestoreCatalog(ctx, logger, results, cat); err != nil {
		return nil, fmt.Errorf("restoring catalog: %w", err)
	}
	return cat, nil
}
