package ingest

import (
	"childmon/pkg/contracts/domain"
)

// SchemaWidth is the number of positional columns every accepted sheet must
// carry after fully-empty columns are removed. Extra trailing columns are
// discarded.
const SchemaWidth = 15

// skipRows is the number of decorative preamble rows at the top of every
// sheet. The row immediately after them is the column header row, so data
// starts at skipRows+1 (0-based).
const skipRows = 3

// recordFromRow maps the first SchemaWidth cells of a normalized row onto
// the fixed schema, in workbook column order. The birth date is parsed
// leniently; unparseable values leave the field nil rather than failing
// the row here (required-field filtering happens after concatenation).
func recordFromRow(cells []string, unit string) domain.ChildRecord {
	cell := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}

	return domain.ChildRecord{
		Name:              cell(0),
		BirthDate:         parseBirthDate(cell(1)),
		FirstVisitDate:    cell(2),
		DaysToFirstVisit:  cell(3),
		PracticeA:         cell(4),
		VisitCount:        cell(5),
		PracticeB:         cell(6),
		WeightHeightCount: cell(7),
		PracticeC:         cell(8),
		ACSVisit1Date:     cell(9),
		ACSVisit1Days:     cell(10),
		ACSVisit2Date:     cell(11),
		ACSVisit2Days:     cell(12),
		PracticeD:         cell(13),
		PracticeE:         cell(14),
		Unit:              unit,
	}
}
