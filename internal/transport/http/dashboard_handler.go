package http

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"childmon/internal/analytics"
	apierrors "childmon/internal/errors"
	"childmon/pkg/contracts/domain"
)

// DashboardHandler serves the HTML dashboard and the detail table.
type DashboardHandler struct {
	service      DatasetProvider
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler

	dashboardTmpl *template.Template
	tableTmpl     *template.Template
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service DatasetProvider, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:       service,
		logger:        logger.With(slog.String("component", "dashboard_handler")),
		errorHandler:  errorHandler,
		dashboardTmpl: template.Must(template.New("dashboard").Parse(dashboardHTML)),
		tableTmpl:     template.Must(template.New("table").Parse(tableHTML)),
	}
}

type dashboardView struct {
	Summary      analytics.Summary
	AverageScore string
	Units        []string
	Warnings     []string
	Query        string
}

type practiceCell struct {
	Value string
	Class string
}

type tableRow struct {
	Name           string
	BirthDate      string
	Unit           string
	Score          int
	ScoreStyle     template.CSS
	Classification domain.Classification
	Practices      []practiceCell
}

type tableView struct {
	PracticeNames []string
	Rows          []tableRow
	Count         int
	Query         string
}

// Dashboard renders the landing page: headline metrics, chart frames
// and navigation. Filters carry through to the charts via the query
// string.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	units, err := h.service.Units(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	warnings, err := h.service.Warnings(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	warningTexts := make([]string, len(warnings))
	for i, warning := range warnings {
		warningTexts[i] = warning.String()
	}

	view := dashboardView{
		Summary:      summary,
		AverageScore: fmt.Sprintf("%.1f", summary.AverageScore),
		Units:        units,
		Warnings:     warningTexts,
		Query:        r.URL.RawQuery,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.dashboardTmpl.Execute(w, view); err != nil {
		h.logger.Error("failed to render dashboard", slog.String("error", err.Error()))
	}
}

// Table renders the per-child detail table with the same coloring as
// the dashboard charts: practice cells green when fulfilled, red when
// not, score on a red-to-green gradient.
func (h *DashboardHandler) Table(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	records, err := h.service.Filtered(r.Context(), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	rows := make([]tableRow, 0, len(records))
	for i := range records {
		rows = append(rows, newTableRow(&records[i]))
	}

	view := tableView{
		PracticeNames: domain.PracticeNames[:],
		Rows:          rows,
		Count:         len(rows),
		Query:         r.URL.RawQuery,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tableTmpl.Execute(w, view); err != nil {
		h.logger.Error("failed to render table", slog.String("error", err.Error()))
	}
}

func newTableRow(r *domain.ChildRecord) tableRow {
	// Three states: fulfilled (green), missed (red), absent (neutral).
	// A cell without a value means "not measured", never "failed".
	practices := r.Practices()
	cells := make([]practiceCell, len(practices))
	for i, value := range practices {
		switch {
		case value == domain.PracticeOK:
			cells[i] = practiceCell{Value: value, Class: "fulfilled"}
		case value != "":
			cells[i] = practiceCell{Value: value, Class: "missed"}
		default:
			cells[i] = practiceCell{Value: "-", Class: "absent"}
		}
	}

	birthDate := "-"
	if r.BirthDate != nil {
		birthDate = r.BirthDate.Format("02/01/2006")
	}

	return tableRow{
		Name:           r.Name,
		BirthDate:      birthDate,
		Unit:           r.Unit,
		Score:          r.Score,
		ScoreStyle:     scoreStyle(r.Score),
		Classification: r.Classification,
		Practices:      cells,
	}
}

// scoreStyle maps a 0-100 score onto a red-to-green background, red at
// zero and green at a full score.
func scoreStyle(score int) template.CSS {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	hue := score * 120 / 100
	return template.CSS(fmt.Sprintf("background-color: hsl(%d, 70%%, 85%%)", hue))
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Child Healthcare Monitoring</title>
<style>
body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; margin: 0; background: #f5f6fa; color: #2c3e50; }
header { background: #2c3e50; color: #fff; padding: 16px 32px; }
header h1 { margin: 0; font-size: 22px; }
main { padding: 24px 32px; }
.cards { display: flex; gap: 16px; flex-wrap: wrap; margin-bottom: 24px; }
.card { background: #fff; border-radius: 8px; padding: 16px 24px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); min-width: 180px; }
.card .label { font-size: 13px; color: #7f8c8d; text-transform: uppercase; }
.card .value { font-size: 28px; font-weight: 600; margin-top: 4px; }
.charts { display: grid; grid-template-columns: 1fr 1fr; gap: 16px; }
.charts iframe { width: 100%; height: 660px; border: none; background: #fff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
.warnings { background: #fff3cd; color: #856404; border-radius: 8px; padding: 12px 16px; margin-bottom: 24px; }
.warnings ul { margin: 4px 0 0; padding-left: 20px; }
nav a { color: #2980b9; margin-right: 16px; text-decoration: none; }
@media (max-width: 900px) { .charts { grid-template-columns: 1fr; } }
</style>
</head>
<body>
<header><h1>Child Healthcare Monitoring</h1></header>
<main>
<nav>
<a href="/table{{if .Query}}?{{.Query}}{{end}}">Detail table</a>
<a href="/api/children{{if .Query}}?{{.Query}}{{end}}">Children (JSON)</a>
<a href="/api/summary{{if .Query}}?{{.Query}}{{end}}">Summary (JSON)</a>
</nav>
{{if .Warnings}}
<div class="warnings">
Some sheets were skipped during ingestion:
<ul>{{range .Warnings}}<li>{{.}}</li>{{end}}</ul>
</div>
{{end}}
<div class="cards">
<div class="card"><div class="label">Children</div><div class="value">{{.Summary.Count}}</div></div>
<div class="card"><div class="label">Average score</div><div class="value">{{.AverageScore}}</div></div>
<div class="card"><div class="label">Classification</div><div class="value">{{.Summary.Classification}}</div></div>
<div class="card"><div class="label">Health units</div><div class="value">{{len .Units}}</div></div>
</div>
<div class="charts">
<iframe src="/charts/units{{if .Query}}?{{.Query}}{{end}}" title="Average score per unit"></iframe>
<iframe src="/charts/conformity{{if .Query}}?{{.Query}}{{end}}" title="Conformity per practice"></iframe>
</div>
</main>
</body>
</html>
`

const tableHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Child Healthcare Monitoring - Detail</title>
<style>
body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; margin: 0; background: #f5f6fa; color: #2c3e50; }
header { background: #2c3e50; color: #fff; padding: 16px 32px; }
header h1 { margin: 0; font-size: 22px; }
main { padding: 24px 32px; }
nav a { color: #2980b9; margin-right: 16px; text-decoration: none; }
table { border-collapse: collapse; width: 100%; background: #fff; border-radius: 8px; overflow: hidden; box-shadow: 0 1px 3px rgba(0,0,0,0.1); margin-top: 16px; }
th, td { padding: 8px 12px; text-align: left; border-bottom: 1px solid #ecf0f1; font-size: 14px; }
th { background: #34495e; color: #fff; position: sticky; top: 0; }
td.fulfilled { background-color: #d4edda; color: #155724; }
td.missed { background-color: #f8d7da; color: #721c24; }
td.absent { color: #7f8c8d; text-align: center; }
td.score { font-weight: 600; text-align: center; }
</style>
</head>
<body>
<header><h1>Detail Table ({{.Count}} children)</h1></header>
<main>
<nav><a href="/{{if .Query}}?{{.Query}}{{end}}">Dashboard</a></nav>
<table>
<thead>
<tr>
<th>Name</th><th>Birth Date</th><th>Unit</th>
{{range .PracticeNames}}<th>{{.}}</th>{{end}}
<th>Score</th><th>Classification</th>
</tr>
</thead>
<tbody>
{{range .Rows}}
<tr>
<td>{{.Name}}</td>
<td>{{.BirthDate}}</td>
<td>{{.Unit}}</td>
{{range .Practices}}<td class="{{.Class}}">{{.Value}}</td>{{end}}
<td class="score" style="{{.ScoreStyle}}">{{.Score}}</td>
<td>{{.Classification}}</td>
</tr>
{{end}}
</tbody>
</table>
</main>
</body>
</html>
`
