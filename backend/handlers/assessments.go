// ABOUTME: HTTP handlers for assessments, system design and custom volume calculation
// ABOUTME: Decode a bounded JSON body, run the pipeline, map errors to status codes

package handlers

import (
	"net/http"

	"github.com/Eswari2225/DropSaviors/backend/models"
	"github.com/Eswari2225/DropSaviors/backend/services"
)

// CreateAssessment runs forecast, harvest and structure selection for one rooftop.
func (h *Handler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	var req models.AssessmentRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	assessment, err := h.assessor.Assess(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, assessment)
}

// CalculateSystem packs and costs a chosen structure.
func (h *Handler) CalculateSystem(w http.ResponseWriter, r *http.Request) {
	var req models.SystemDesignRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	design, err := h.assessor.DesignSystem(req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, design)
}

// GeometryVolume converts shape dimensions into liters and cubic meters.
// Unsupported shapes and non-positive dimensions return a degenerate zero
// result rather than an error.
func (h *Handler) GeometryVolume(w http.ResponseWriter, r *http.Request) {
	var req models.VolumeRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result := services.VolumeFromShape(models.ParseGeometry(req.Shape, req.Dimensions))
	h.writeJSON(w, http.StatusOK, result)
}
