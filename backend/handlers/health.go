// ABOUTME: HTTP handlers for service health and client metadata
// ABOUTME: Metadata lists districts, stations, roof types and structure reference data

package handlers

import (
	"net/http"

	"github.com/Eswari2225/DropSaviors/backend/models"
)

// Health reports dataset and cache status. It returns 503 until a dataset
// with at least one observation is loaded.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Current()
	resp := models.HealthResponse{
		Status:  "ok",
		Dataset: snap.Status(),
		Cache: models.CacheStatus{
			ForecastEntries: h.assessor.CachedForecasts(),
		},
	}

	status := http.StatusOK
	if snap.Len() == 0 {
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, resp)
}

// Meta returns everything a client needs to build an assessment form.
func (h *Handler) Meta(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Current()
	start, end := h.assessor.Window()

	h.writeJSON(w, http.StatusOK, models.MetaResponse{
		Districts:         snap.Districts(),
		Stations:          snap.StationMap(),
		RoofTypes:         h.card.RoofTypes(),
		SystemInfo:        models.SystemCatalog(),
		ForecastStartYear: start,
		ForecastEndYear:   end,
	})
}
