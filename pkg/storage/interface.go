package storage

import (
	"context"
	"time"

	"github.com/sunplan/sunplan/pkg/types"
)

// Database persists computed forecasts and advice so the surrounding
// application can chart past recommendations. Configuration and tariffs are
// deliberately not persisted here; they are inputs owned by the caller.
type Database interface {
	InsertForecast(ctx context.Context, rec types.ForecastRecord) error
	InsertAdvice(ctx context.Context, rec types.AdviceRecord) error

	GetForecastHistory(ctx context.Context, start, end time.Time) ([]types.ForecastRecord, error)
	GetAdviceHistory(ctx context.Context, start, end time.Time) ([]types.AdviceRecord, error)

	Close() error
}
