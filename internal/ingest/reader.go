package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"childmon/pkg/contracts/domain"
)

// Dataset is the output of one workbook load: every accepted row across all
// accepted sheets, in workbook order, plus the warnings for skipped sheets.
// A Dataset is never mutated after scoring; consumers filter copies of it.
type Dataset struct {
	Records    []domain.ChildRecord `json:"records"`
	Warnings   []SheetWarning       `json:"warnings,omitempty"`
	SourcePath string               `json:"source_path"`
	ModTime    time.Time            `json:"mod_time"`
	LoadedAt   time.Time            `json:"loaded_at"`
}

// Empty reports whether filtering left no rows. This is the "accepted
// sheets but zero surviving rows" case, distinct from NoValidDataError.
func (d *Dataset) Empty() bool {
	return len(d.Records) == 0
}

// Load reads the workbook at path and normalizes every sheet into the fixed
// schema. Fatal outcomes are ErrFileNotFound, ErrEmptyWorkbook and
// *ParseError; a workbook where every sheet was rejected yields
// *NoValidDataError. The source file is never modified.
func Load(path string) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyWorkbook, path)
	}

	var (
		records  []domain.ChildRecord
		warnings []SheetWarning
		accepted int
	)

	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("sheet %q: %w", sheet, err)}
		}

		sheetRecords, warning := normalizeSheet(sheet, rows)
		if warning != nil {
			slog.Warn("sheet skipped",
				slog.String("sheet", warning.Sheet),
				slog.String("reason", warning.Reason))
			warnings = append(warnings, *warning)
			continue
		}

		accepted++
		records = append(records, sheetRecords...)
		slog.Debug("sheet accepted",
			slog.String("sheet", sheet),
			slog.Int("rows", len(sheetRecords)))
	}

	if accepted == 0 {
		return nil, &NoValidDataError{Path: path, Warnings: warnings}
	}

	records = dropIncomplete(records)

	slog.Info("workbook loaded",
		slog.String("path", path),
		slog.Int("sheets_accepted", accepted),
		slog.Int("sheets_skipped", len(warnings)),
		slog.Int("records", len(records)))

	return &Dataset{
		Records:    records,
		Warnings:   warnings,
		SourcePath: path,
		ModTime:    info.ModTime(),
		LoadedAt:   time.Now(),
	}, nil
}

// normalizeSheet maps one sheet's rows onto the fixed schema. It returns a
// warning (and no records) when the sheet does not carry enough non-empty
// columns to cover the schema.
func normalizeSheet(sheet string, rows [][]string) ([]domain.ChildRecord, *SheetWarning) {
	headerRow := skipRows
	if len(rows) <= headerRow+1 {
		return nil, &SheetWarning{Sheet: sheet, Reason: "no data rows below the header"}
	}
	data := rows[headerRow+1:]

	kept := nonEmptyColumns(data)
	if len(kept) < SchemaWidth {
		return nil, &SheetWarning{
			Sheet:  sheet,
			Reason: fmt.Sprintf("only %d non-empty columns, need %d", len(kept), SchemaWidth),
		}
	}
	kept = kept[:SchemaWidth]

	unit := strings.TrimSpace(sheet)
	records := make([]domain.ChildRecord, 0, len(data))
	cells := make([]string, SchemaWidth)
	for _, row := range data {
		for i, col := range kept {
			if col < len(row) {
				cells[i] = row[col]
			} else {
				cells[i] = ""
			}
		}
		records = append(records, recordFromRow(cells, unit))
	}
	return records, nil
}

// nonEmptyColumns returns the indices of every column that holds at least
// one value across the data rows, in column order. Fully-empty columns are
// dropped before the positional schema is applied.
func nonEmptyColumns(data [][]string) []int {
	width := 0
	for _, row := range data {
		if len(row) > width {
			width = len(row)
		}
	}

	var kept []int
	for col := 0; col < width; col++ {
		for _, row := range data {
			if col < len(row) && row[col] != "" {
				kept = append(kept, col)
				break
			}
		}
	}
	return kept
}

// dropIncomplete removes rows missing a name or a parseable birth date.
// Birth dates that failed to parse were nulled by parseBirthDate, so they
// fall out here together with rows that never had one.
func dropIncomplete(records []domain.ChildRecord) []domain.ChildRecord {
	out := records[:0]
	for _, r := range records {
		if r.Name == "" || r.BirthDate == nil {
			continue
		}
		out = append(out, r)
	}
	return out
}
