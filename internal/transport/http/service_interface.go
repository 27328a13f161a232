package http

import (
	"context"

	"childmon/internal/analytics"
	"childmon/internal/ingest"
	"childmon/pkg/contracts/domain"
)

// DatasetProvider is the pipeline surface the handlers consume. The
// concrete implementation is services.DatasetService; tests substitute
// a fake.
type DatasetProvider interface {
	Dataset(ctx context.Context) (*ingest.Dataset, error)
	Filtered(ctx context.Context, f analytics.Filter) ([]domain.ChildRecord, error)
	Summary(ctx context.Context, f analytics.Filter) (analytics.Summary, error)
	Conformity(ctx context.Context, f analytics.Filter) ([]analytics.IndicatorRate, error)
	UnitAverages(ctx context.Context, f analytics.Filter) ([]analytics.UnitScore, error)
	Units(ctx context.Context) ([]string, error)
	Warnings(ctx context.Context) ([]ingest.SheetWarning, error)
}
