// Package services wires the ingestion pipeline to its consumers. The
// dataset service loads and scores the workbook once and serves the
// immutable result until the source file changes on disk.
package services

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"childmon/internal/analytics"
	"childmon/internal/config"
	"childmon/internal/infrastructure"
	"childmon/internal/ingest"
	"childmon/internal/scoring"
	"childmon/pkg/contracts/domain"
)

// DatasetService serves the scored dataset. The cache key is the workbook
// path plus its modification time; a changed file triggers a full reload,
// a filter change only re-filters. Cached datasets are immutable, so
// concurrent readers need no further coordination.
type DatasetService struct {
	workbookPath string
	logger       *slog.Logger
	metrics      *infrastructure.PipelineMetrics

	mu     sync.RWMutex
	cached *ingest.Dataset
}

// NewDatasetService creates a dataset service. metrics may be nil.
func NewDatasetService(cfg *config.Config, logger *slog.Logger, metrics *infrastructure.PipelineMetrics) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("dataset service initialized",
		slog.String("workbook", cfg.Data.WorkbookPath()))

	return &DatasetService{
		workbookPath: cfg.Data.WorkbookPath(),
		logger:       logger,
		metrics:      metrics,
	}
}

// Dataset returns the scored dataset, loading the workbook only when the
// cache is cold or the file changed since the last load.
func (s *DatasetService) Dataset(ctx context.Context) (*ingest.Dataset, error) {
	if info, err := os.Stat(s.workbookPath); err == nil {
		s.mu.RLock()
		cached := s.cached
		s.mu.RUnlock()

		if cached != nil && cached.SourcePath == s.workbookPath && cached.ModTime.Equal(info.ModTime()) {
			if s.metrics != nil {
				s.metrics.CacheHits.Add(ctx, 1)
			}
			return cached, nil
		}
	}

	ds, err := ingest.Load(s.workbookPath)
	if err != nil {
		return nil, err
	}
	scoring.Apply(ds.Records)

	if s.metrics != nil {
		s.metrics.WorkbookLoads.Add(ctx, 1)
		s.metrics.RecordsIngested.Add(ctx, int64(len(ds.Records)))
		s.metrics.SheetsSkipped.Add(ctx, int64(len(ds.Warnings)))
	}

	s.logger.InfoContext(ctx, "dataset loaded",
		slog.String("workbook", s.workbookPath),
		slog.Int("records", len(ds.Records)),
		slog.Int("warnings", len(ds.Warnings)))

	s.mu.Lock()
	s.cached = ds
	s.mu.Unlock()

	return ds, nil
}

// Filtered returns the records passing the filter.
func (s *DatasetService) Filtered(ctx context.Context, f analytics.Filter) ([]domain.ChildRecord, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Apply(ds.Records, f), nil
}

// Summary returns the overall metrics of the filtered set.
func (s *DatasetService) Summary(ctx context.Context, f analytics.Filter) (analytics.Summary, error) {
	records, err := s.Filtered(ctx, f)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(records), nil
}

// Conformity returns the per-indicator conformity rates of the filtered set.
func (s *DatasetService) Conformity(ctx context.Context, f analytics.Filter) ([]analytics.IndicatorRate, error) {
	records, err := s.Filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.ConformityRates(records), nil
}

// UnitAverages returns the per-unit average scores of the filtered set.
func (s *DatasetService) UnitAverages(ctx context.Context, f analytics.Filter) ([]analytics.UnitScore, error) {
	records, err := s.Filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.UnitAverages(records), nil
}

// Units returns the distinct unit names in the full dataset.
func (s *DatasetService) Units(ctx context.Context) ([]string, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Units(ds.Records), nil
}

// Warnings returns the sheet-skipped warnings of the last load.
func (s *DatasetService) Warnings(ctx context.Context) ([]ingest.SheetWarning, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Warnings, nil
}
