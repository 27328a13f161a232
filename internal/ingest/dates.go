package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// birthDateLayouts are tried in order against the formatted cell value.
// Workbooks from the field arrive with a mix of Brazilian day-first dates,
// ISO dates and excelize's default short format.
var birthDateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"01-02-06",
	"2/1/2006",
	"02/01/2006 15:04:05",
	"2006-01-02 15:04:05",
}

// parseBirthDate converts a cell value into a calendar date. Unparseable
// values yield nil instead of an error: the row-level required-field filter
// decides what happens to the record.
func parseBirthDate(value string) *time.Time {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}

	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}

	// Cells kept in General format surface as raw Excel serial numbers.
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return &t
		}
	}

	return nil
}
