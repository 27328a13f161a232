// Package exporter writes scored datasets to CSV for use outside the
// dashboard.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"childmon/pkg/contracts/domain"
)

// csvHeaders is the column order of exported files: identity, unit,
// the five practices, then the derived fields.
var csvHeaders = []string{
	"name", "birth_date", "unit",
	"practice_a", "practice_b", "practice_c", "practice_d", "practice_e",
	"score", "classification",
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	Append    bool
	BOMPrefix bool // UTF-8 BOM so Excel opens accented names correctly
}

// WriteCSV writes the scored records to path, creating parent
// directories as needed.
func WriteCSV(path string, records []domain.ChildRecord, options WriteOptions) error {
	slog.Info("writing CSV file",
		slog.String("path", path),
		slog.Int("record_count", len(records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix && !options.Append {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if !options.Append {
		if err := writer.Write(csvHeaders); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i := range records {
		if err := writer.Write(csvRow(&records[i])); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func csvRow(r *domain.ChildRecord) []string {
	birthDate := ""
	if r.BirthDate != nil {
		birthDate = r.BirthDate.Format("2006-01-02")
	}

	row := make([]string, 0, len(csvHeaders))
	row = append(row, r.Name, birthDate, r.Unit)
	practices := r.Practices()
	row = append(row, practices[:]...)
	row = append(row, strconv.Itoa(r.Score), string(r.Classification))
	return row
}
