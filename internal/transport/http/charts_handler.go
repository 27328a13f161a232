package http

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	apierrors "childmon/internal/errors"
)

// ChartsHandler renders the dashboard charts as self-contained HTML pages
// using go-echarts.
type ChartsHandler struct {
	service      DatasetProvider
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewChartsHandler creates a charts handler.
func NewChartsHandler(service DatasetProvider, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ChartsHandler {
	return &ChartsHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "charts_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the chart routes.
func (h *ChartsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/units", h.UnitScoresChart)
	r.Get("/conformity", h.ConformityChart)
	return r
}

// UnitScoresChart renders the average score per health unit as a
// horizontal bar chart, best unit on top.
func (h *ChartsHandler) UnitScoresChart(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	scores, err := h.service.UnitAverages(r.Context(), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	// XYReversal puts categories on the Y axis; reverse the order so the
	// highest average renders at the top.
	units := make([]string, 0, len(scores))
	values := make([]opts.BarData, 0, len(scores))
	for i := len(scores) - 1; i >= 0; i-- {
		units = append(units, scores[i].Unit)
		values = append(values, opts.BarData{Value: round1(scores[i].AverageScore)})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Average Score per Unit", Width: "100%", Height: "640px"}),
		charts.WithTitleOpts(opts.Title{Title: "Average Score per Health Unit"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Max: 100, Name: "Average score"}),
	)
	bar.SetXAxis(units).
		AddSeries("average score", values,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "right"}),
		)
	bar.XYReversal()

	h.renderChart(w, r, bar.Render)
}

// ConformityChart renders the conformity percentage of every practice
// indicator as a bar chart.
func (h *ChartsHandler) ConformityChart(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	rates, err := h.service.Conformity(r.Context(), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	indicators := make([]string, 0, len(rates))
	values := make([]opts.BarData, 0, len(rates))
	for _, rate := range rates {
		indicators = append(indicators, rate.Indicator)
		values = append(values, opts.BarData{Value: round1(rate.Rate)})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Conformity per Practice", Width: "100%", Height: "640px"}),
		charts.WithTitleOpts(opts.Title{Title: "Conformity per Practice (%)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Max: 100, Name: "Conformity (%)"}),
	)
	bar.SetXAxis(indicators).
		AddSeries("conformity", values,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	h.renderChart(w, r, bar.Render)
}

func (h *ChartsHandler) renderChart(w http.ResponseWriter, r *http.Request, renderFn func(io.Writer) error) {
	var buf bytes.Buffer
	if err := renderFn(&buf); err != nil {
		h.errorHandler.HandleError(w, r,
			apierrors.NewWithDetails(http.StatusInternalServerError, "CHART_RENDER_FAILED",
				fmt.Sprintf("failed to render chart: %v", err), nil))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
