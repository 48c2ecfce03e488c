package server

import (
	"context"

	"github.com/playperu/arcade/internal/arcade"
)

// ResultStore persists finished sessions and uploaded catalogs.
type ResultStore interface {
	RecordOutcome(ctx context.Context, o arcade.Outcome) error
	ListOutcomes(ctx context.Context, kind arcade.GameKind, limit int) ([]arcade.Outcome, error)
	TopOutcomes(ctx context.Context, kind arcade.GameKind, limit int) ([]arcade.Outcome, error)

	SaveCatalog(ctx context.Context, source []byte, rounds int, uploadedBy string) error
	LatestCatalog(ctx context.Context) ([]byte, error)
}
