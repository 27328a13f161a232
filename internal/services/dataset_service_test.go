package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"childmon/internal/analytics"
	"childmon/internal/config"
	"childmon/internal/ingest"
	"childmon/pkg/contracts/domain"
)

// writeWorkbook builds a single-sheet monitoring workbook with the given
// child rows: (name, birth date, five practices).
func writeWorkbook(t *testing.T, path, sheet string, children [][]string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	rows := [][]interface{}{
		{"MONITORAMENTO DA SAÚDE DA CRIANÇA"},
		{""},
		{""},
		{
			"Nome", "DN", "Data 1ª Puericultura", "Dias 1ª Puericultura",
			"Prática A", "Qtd Puericultura", "Prática B", "Qtd Peso/Altura",
			"Prática C", "Data 1ª Visita ACS", "Dias 1ª Visita ACS",
			"Data 2ª Visita ACS", "Dias 2ª Visita ACS", "Prática D", "Prática E",
		},
	}
	for _, c := range children {
		rows = append(rows, []interface{}{
			c[0], c[1], "10/02/2024", "31",
			c[2], "4", c[3], "3",
			c[4], "05/02/2024", "26",
			"20/03/2024", "70", c[5], c[6],
		})
	}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func newTestService(t *testing.T, workbookPath string) *DatasetService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Data.Dir = filepath.Dir(workbookPath)
	cfg.Data.WorkbookFile = filepath.Base(workbookPath)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewDatasetService(cfg, logger, nil)
}

func TestDatasetService_LoadsAndScores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitoramento.xlsx")
	writeWorkbook(t, path, "Clinic A", [][]string{
		{"Ana Souza", "10/01/2024", "OK", "OK", "OK", "OK", "OK"},
		{"Bruno Lima", "15/03/2024", "OK", "Não", "OK", "", "OK"},
	})

	svc := newTestService(t, path)
	ds, err := svc.Dataset(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)

	assert.Equal(t, 100, ds.Records[0].Score)
	assert.Equal(t, domain.ClassificationExcellent, ds.Records[0].Classification)
	assert.Equal(t, 60, ds.Records[1].Score)
	assert.Equal(t, domain.ClassificationGood, ds.Records[1].Classification)
}

func TestDatasetService_CacheHit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitoramento.xlsx")
	writeWorkbook(t, path, "Clinic A", [][]string{
		{"Ana Souza", "10/01/2024", "OK", "OK", "OK", "OK", "OK"},
	})

	svc := newTestService(t, path)
	first, err := svc.Dataset(context.Background())
	require.NoError(t, err)
	second, err := svc.Dataset(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second, "unchanged file must serve the cached dataset")
}

func TestDatasetService_ReloadsOnFileChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitoramento.xlsx")
	writeWorkbook(t, path, "Clinic A", [][]string{
		{"Ana Souza", "10/01/2024", "OK", "OK", "OK", "OK", "OK"},
	})

	svc := newTestService(t, path)
	first, err := svc.Dataset(context.Background())
	require.NoError(t, err)
	require.Len(t, first.Records, 1)

	writeWorkbook(t, path, "Clinic A", [][]string{
		{"Ana Souza", "10/01/2024", "OK", "OK", "OK", "OK", "OK"},
		{"Bruno Lima", "15/03/2024", "OK", "OK", "OK", "OK", "OK"},
	})
	// Make sure the mod time moves even on coarse filesystem clocks.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	second, err := svc.Dataset(context.Background())
	require.NoError(t, err)
	assert.Len(t, second.Records, 2)
}

func TestDatasetService_FileNotFound(t *testing.T) {
	svc := newTestService(t, filepath.Join(t.TempDir(), "missing.xlsx"))

	_, err := svc.Dataset(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ingest.ErrFileNotFound)
}

func TestDatasetService_FilteredSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitoramento.xlsx")
	writeWorkbook(t, path, "Clinic A", [][]string{
		{"Ana Souza", "10/01/2024", "OK", "OK", "OK", "OK", "OK"},
		{"Bruno Lima", "15/03/2024", "Não", "Não", "Não", "Não", "Não"},
	})

	svc := newTestService(t, path)
	ctx := context.Background()

	records, err := svc.Filtered(ctx, analytics.Filter{
		Classifications: []domain.Classification{domain.ClassificationExcellent},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ana Souza", records[0].Name)

	summary, err := svc.Summary(ctx, analytics.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 50.0, summary.AverageScore, 1e-9)
	assert.Equal(t, domain.ClassificationSufficient, summary.Classification)

	units, err := svc.Units(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Clinic A"}, units)
}
