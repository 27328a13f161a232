// Command scorecsv scores a monitoring workbook and writes the result
// to CSV, for offline analysis without the web dashboard.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"childmon/internal/exporter"
	"childmon/internal/ingest"
	"childmon/internal/scoring"
)

func main() {
	in := flag.String("in", "data/monitoramento.xlsx", "path of the source workbook")
	out := flag.String("out", "scores.csv", "path of the CSV to write")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(*in, *out); err != nil {
		logger.Error("export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(in, out string) error {
	dataset, err := ingest.Load(in)
	if err != nil {
		var noData *ingest.NoValidDataError
		if errors.As(err, &noData) {
			for _, warning := range noData.Warnings {
				slog.Warn("sheet skipped", slog.String("reason", warning.String()))
			}
		}
		return err
	}

	for _, warning := range dataset.Warnings {
		slog.Warn("sheet skipped", slog.String("reason", warning.String()))
	}

	scoring.Apply(dataset.Records)

	if err := exporter.WriteCSV(out, dataset.Records, exporter.WriteOptions{BOMPrefix: true}); err != nil {
		return err
	}

	fmt.Printf("wrote %d scored records to %s\n", len(dataset.Records), out)
	return nil
}
