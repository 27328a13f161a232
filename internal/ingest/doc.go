// Package ingest reads the multi-sheet monitoring workbook and normalizes
// every sheet into the fixed ChildRecord schema. Each sheet holds the rows
// of one health unit; the sheet name becomes the unit name. Sheets that do
// not carry the full schema are skipped with a warning, structural failures
// abort the whole load.
package ingest
