// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Money is rendered as a JSON number, not a quoted string.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

func Message(w http.ResponseWriter, message string) {
	OK(w, MessageResponse{Message: message})
}

// JSONError renders an AppError as-is. Anything else is logged against the
// request and hidden behind a generic 500.
func JSONError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := AsAppError(err); ok {
		JSON(w, appErr.Status, ErrorResponse{
			Error:   appErr.Message,
			Details: appErr.Details,
		})
		return
	}

	InternalServerError(w, r, err)
}

func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, ErrorResponse{Error: message})
}

// ValidationFailed writes a 400 whose details map each offending JSON field to
// the rule it broke.
func ValidationFailed(w http.ResponseWriter, err error) {
	JSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   "Validation failed",
		Details: FormatValidationError(err),
	})
}

func NotFound(w http.ResponseWriter, resource string) {
	appErr := NotFoundError(resource)
	JSON(w, appErr.Status, ErrorResponse{Error: appErr.Message})
}

func InternalServerError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	attrs := []any{
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", RequestIDFromContext(ctx),
	}
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		attrs = append(attrs, "trace_id", traceID)
	}

	slog.ErrorContext(ctx, "internal server error", attrs...)
	JSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: "Internal server error",
	})
}

func FormatValidationError(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describeRule(fe)
	}
	return fields
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "uuid", "uuid4":
		return "must be a valid id"
	case "dive":
		return "contains an invalid entry"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
