package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"childmon/internal/analytics"
	apierrors "childmon/internal/errors"
	"childmon/pkg/contracts/domain"
)

// DatasetHandler serves the scored dataset and its aggregate views as JSON.
type DatasetHandler struct {
	service      DatasetProvider
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDatasetHandler creates a dataset handler.
func NewDatasetHandler(service DatasetProvider, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DatasetHandler {
	return &DatasetHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dataset_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dataset API routes.
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/children", h.GetChildren)
	r.Get("/summary", h.GetSummary)
	r.Get("/conformity", h.GetConformity)
	r.Get("/units", h.GetUnits)
	r.Get("/unit-scores", h.GetUnitScores)
	r.Get("/warnings", h.GetWarnings)

	return r
}

// parseFilter reads the unit and classification query parameters. Both may
// repeat; an absent parameter places no constraint.
func parseFilter(r *http.Request) (analytics.Filter, error) {
	query := r.URL.Query()

	f := analytics.Filter{Units: query["unit"]}
	for _, c := range query["classification"] {
		classification := domain.Classification(c)
		if !validClassification(classification) {
			return analytics.Filter{}, apierrors.ErrValidation("classification",
				fmt.Sprintf("unknown classification %q", c))
		}
		f.Classifications = append(f.Classifications, classification)
	}
	return f, nil
}

func validClassification(c domain.Classification) bool {
	for _, known := range domain.AllClassifications {
		if c == known {
			return true
		}
	}
	return false
}

// GetChildren handles GET /api/children.
func (h *DatasetHandler) GetChildren(w http.ResponseWriter, r *http.Request) {
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

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   records,
		"count":  len(records),
	})
}

// GetSummary handles GET /api/summary.
func (h *DatasetHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
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

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// GetConformity handles GET /api/conformity.
func (h *DatasetHandler) GetConformity(w http.ResponseWriter, r *http.Request) {
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

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   rates,
	})
}

// GetUnits handles GET /api/units.
func (h *DatasetHandler) GetUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.service.Units(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   units,
		"count":  len(units),
	})
}

// GetUnitScores handles GET /api/unit-scores.
func (h *DatasetHandler) GetUnitScores(w http.ResponseWriter, r *http.Request) {
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

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   scores,
	})
}

// GetWarnings handles GET /api/warnings.
func (h *DatasetHandler) GetWarnings(w http.ResponseWriter, r *http.Request) {
	warnings, err := h.service.Warnings(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   warnings,
		"count":  len(warnings),
	})
}
