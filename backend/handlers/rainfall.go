// ABOUTME: HTTP handlers for rainfall observations, station forecasts and district outlooks
// ABOUTME: Read-only views over the current dataset snapshot

package handlers

import (
	"net/http"

	"github.com/Eswari2225/DropSaviors/backend/models"
	"github.com/Eswari2225/DropSaviors/backend/services"
)

// Rainfall lists observations, optionally filtered by district and station.
func (h *Handler) Rainfall(w http.ResponseWriter, r *http.Request) {
	district := services.NormalizeLocation(r.URL.Query().Get("district"))
	station := services.NormalizeLocation(r.URL.Query().Get("station"))

	for field, value := range map[string]string{"district": district, "station": station} {
		if value == "" {
			continue
		}
		if err := services.ValidateLocationName(field, value); err != nil {
			h.writeErrorWithDetails(w, "Invalid request", err.Error(), http.StatusBadRequest)
			return
		}
	}

	obs := h.store.Current().Filter(district, station)
	h.writeJSON(w, http.StatusOK, models.RainfallResponse{
		District:     district,
		Station:      station,
		Count:        len(obs),
		Observations: obs,
	})
}

// Forecast returns a station's history and projected rainfall.
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.assessor.StationForecast(r.Context(), q.Get("district"), q.Get("station"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// DistrictOutlook summarizes the forecast of every station in a district.
func (h *Handler) DistrictOutlook(w http.ResponseWriter, r *http.Request) {
	outlook, err := h.assessor.DistrictOutlook(r.Context(), r.PathValue("district"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, outlook)
}
