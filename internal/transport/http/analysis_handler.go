package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"savi/internal/config"
	apierrors "savi/internal/errors"
	"savi/internal/filter"
)

// requestDateLayout is the wire format for filter date bounds.
const requestDateLayout = "2006-01-02"

// AnalysisRequest is the JSON body for filtered analysis and report requests.
// Empty fields mean "no restriction"; the currency sentinel "Todas" is
// equivalent to omitting the currency.
type AnalysisRequest struct {
	Products       []string `json:"products" validate:"omitempty,dive,min=1"`
	Customers      []string `json:"customers" validate:"omitempty,dive,min=1"`
	Channels       []string `json:"channels" validate:"omitempty,dive,min=1"`
	Currency       string   `json:"currency"`
	DateFrom       string   `json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo         string   `json:"date_to" validate:"omitempty,datetime=2006-01-02"`
	IncludeSummary *bool    `json:"include_summary"`
}

// Criteria converts the request into engine criteria. Validation must have
// passed first; date parse errors cannot occur after the datetime tag.
func (req *AnalysisRequest) Criteria() filter.Criteria {
	criteria := filter.Criteria{
		Products:  req.Products,
		Customers: req.Customers,
		Channels:  req.Channels,
		Currency:  req.Currency,
	}
	if req.DateFrom != "" {
		from, _ := time.Parse(requestDateLayout, req.DateFrom)
		criteria.DateFrom = &from
	}
	if req.DateTo != "" {
		to, _ := time.Parse(requestDateLayout, req.DateTo)
		criteria.DateTo = &to
	}
	return criteria
}

func (req *AnalysisRequest) includeSummary() bool {
	if req.IncludeSummary == nil {
		return true
	}
	return *req.IncludeSummary
}

// AnalysisHandler handles data loading, analysis and report HTTP requests.
type AnalysisHandler struct {
	service      AnalysisServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewAnalysisHandler creates an analysis handler with RFC 7807 error handling.
func NewAnalysisHandler(service AnalysisServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "analysis_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Routes returns the analysis routes.
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/load", h.LoadData)
	r.Post("/analyze", h.Analyze)
	r.Post("/report", h.BuildReport)
	r.Get("/report", h.DownloadReport)
	r.Get("/reports", h.ListReports)
	r.Get("/reports/{filename}", h.DownloadStoredReport)

	return r
}

// LoadData handles POST /api/data/load. It (re)loads the three input
// workbooks from the data directory.
func (h *AnalysisHandler) LoadData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.logger.InfoContext(ctx, "loading dataset",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	dataset, err := h.service.LoadData(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load dataset",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":    "success",
		"loaded_at": dataset.LoadedAt,
		"counts": map[string]int{
			"sales":    len(dataset.Sales),
			"payments": len(dataset.Payments),
			"stock":    len(dataset.Stock),
		},
	})
}

// Analyze handles POST /api/data/analyze. An empty body means an unfiltered
// analysis over the full dataset.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := h.decodeRequest(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "running analysis",
		slog.Int("products", len(req.Products)),
		slog.Int("customers", len(req.Customers)),
		slog.Int("channels", len(req.Channels)),
		slog.String("currency", req.Currency),
	)

	result, err := h.service.Analyze(ctx, req.Criteria())
	if err != nil {
		h.logger.ErrorContext(ctx, "analysis failed",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// BuildReport handles POST /api/data/report. The response body is the
// spreadsheet itself, served as a timestamped attachment.
func (h *AnalysisHandler) BuildReport(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeRequest(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.serveReport(w, r, req.Criteria(), req.includeSummary())
}

// DownloadReport handles GET /api/data/report: an unfiltered report with the
// summary sheet, for clients that just want the export.
func (h *AnalysisHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, filter.Criteria{}, true)
}

func (h *AnalysisHandler) serveReport(w http.ResponseWriter, r *http.Request, criteria filter.Criteria, includeSummary bool) {
	ctx := r.Context()

	data, err := h.service.BuildReport(ctx, criteria, includeSummary)
	if err != nil {
		h.logger.ErrorContext(ctx, "report generation failed",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := time.Now().Format(config.ReportFilePattern)

	h.logger.InfoContext(ctx, "serving report",
		slog.String("filename", filename),
		slog.Int("bytes", len(data)))

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ListReports handles GET /api/data/reports: the generated reports on disk,
// newest first.
func (h *AnalysisHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListReports()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list reports",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   reports,
		"count":  len(reports),
	})
}

// DownloadStoredReport handles GET /api/data/reports/{filename}, streaming a
// previously generated workbook.
func (h *AnalysisHandler) DownloadStoredReport(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	f, err := h.service.OpenReport(filename)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if info, err := f.Stat(); err == nil {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size()))
	}
	io.Copy(w, f)
}

// decodeRequest parses and validates the JSON body. A missing or empty body
// yields the zero request, which means no filtering.
func (h *AnalysisHandler) decodeRequest(r *http.Request) (*AnalysisRequest, error) {
	var req AnalysisRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			return nil, apierrors.NewValidationError("invalid request body: " + err.Error())
		}
	}
	if err := h.validate.Struct(&req); err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}
	return &req, nil
}
