package errors

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"savi/internal/infrastructure"
)

// Problem is an RFC 7807 style error payload returned by the HTTP boundary.
type Problem struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Status  int    `json:"status"`
	Detail  string `json:"detail,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorHandler provides centralized error handling for HTTP handlers.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{logger: logger.With(slog.String("component", "error_handler"))}
}

// HandleError logs err with request context and writes the mapped problem
// response.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	traceID := infrastructure.GetTraceID(r.Context())

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("trace_id", traceID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	problem := ErrorToProblem(err)
	problem.TraceID = traceID

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	if encErr := json.NewEncoder(w).Encode(problem); encErr != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode problem response",
			slog.String("error", encErr.Error()))
	}
}

// ErrorToProblem maps application errors to problem responses. Unknown errors
// map to a generic 500 without leaking internals.
func ErrorToProblem(err error) *Problem {
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return &Problem{
			Type:   "/errors/data/not-found",
			Title:  "Input files not found",
			Status: http.StatusNotFound,
			Detail: notFound.Error(),
		}
	}

	var schema *SchemaError
	if errors.As(err, &schema) {
		return &Problem{
			Type:   "/errors/data/schema",
			Title:  "Input table schema invalid",
			Status: http.StatusUnprocessableEntity,
			Detail: schema.Error(),
		}
	}

	var app *AppError
	if errors.As(err, &app) {
		switch app.Type {
		case ErrTypeValidation:
			return &Problem{
				Type:   "/errors/validation",
				Title:  "Request validation failed",
				Status: http.StatusBadRequest,
				Detail: app.Message,
			}
		case ErrTypeParsing:
			return &Problem{
				Type:   "/errors/data/parsing",
				Title:  "Input data could not be parsed",
				Status: http.StatusUnprocessableEntity,
				Detail: app.Message,
			}
		case ErrTypeReport:
			return &Problem{
				Type:   "/errors/report",
				Title:  "Report generation failed",
				Status: http.StatusInternalServerError,
				Detail: app.Message,
			}
		}
	}

	return &Problem{
		Type:   "/errors/internal",
		Title:  "Internal server error",
		Status: http.StatusInternalServerError,
	}
}
