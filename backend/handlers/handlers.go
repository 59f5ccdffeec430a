// ABOUTME: HTTP handlers for the rainwater assessment API
// ABOUTME: Shared JSON helpers and the error-to-status mapping used by every endpoint

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Eswari2225/DropSaviors/backend/config"
	"github.com/Eswari2225/DropSaviors/backend/dataset"
	"github.com/Eswari2225/DropSaviors/backend/middleware"
	"github.com/Eswari2225/DropSaviors/backend/models"
	"github.com/Eswari2225/DropSaviors/backend/ratecard"
	"github.com/Eswari2225/DropSaviors/backend/services"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	cfg      *config.Config
	store    *dataset.Store
	assessor *services.Assessor
	card     *ratecard.RateCard
}

func NewHandler(cfg *config.Config, store *dataset.Store, assessor *services.Assessor, card *ratecard.RateCard) *Handler {
	return &Handler{
		cfg:      cfg,
		store:    store,
		assessor: assessor,
		card:     card,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeErrorWithDetails(w, message, "", code)
}

func (h *Handler) writeErrorWithDetails(w http.ResponseWriter, message, details string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}

// decodeJSON reads a request body of at most maxBodyBytes into v.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			h.writeError(w, fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
		case errors.Is(err, io.EOF):
			h.writeError(w, "Request body is required", http.StatusBadRequest)
		default:
			h.writeErrorWithDetails(w, "Invalid JSON", err.Error(), http.StatusBadRequest)
		}
		return false
	}
	return true
}

// writeServiceError maps pipeline errors onto status codes. Anything that is
// not a known class is logged and reported without internal detail.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrContractViolation):
		h.writeErrorWithDetails(w, "Invalid request", err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrStationNotFound):
		h.writeErrorWithDetails(w, "Not found", err.Error(), http.StatusNotFound)
	case errors.Is(err, context.DeadlineExceeded):
		h.writeError(w, "Request timed out", http.StatusGatewayTimeout)
	case errors.Is(err, context.Canceled):
		slog.Debug("Request cancelled by client", "request_id", middleware.RequestID(r))
		h.writeError(w, "Request cancelled", http.StatusServiceUnavailable)
	default:
		slog.Error("Request failed",
			"request_id", middleware.RequestID(r),
			"method", r.Method,
			"error", err,
		)
		h.writeError(w, "Internal server error", http.StatusInternalServerError)
	}
}
