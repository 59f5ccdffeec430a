// ABOUTME: Shared httptest backend for command tests
// ABOUTME: Serves canned meta, forecast, outlook, assessment and design responses

package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Eswari2225/DropSaviors/cli/internal/client"
)

// fakeBackend records the last decoded request body per path
type fakeBackend struct {
	*httptest.Server
	assessment *client.AssessmentInput
	design     *client.DesignInput
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/meta", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.Meta{
			Districts: []string{"Chennai", "Erode"},
			Stations: map[string][]string{
				"Chennai": {"Taramani"},
				"Erode":   {"Bhavani", "Kodivery"},
			},
			RoofTypes: []string{"concrete", "tile"},
		})
	})
	mux.HandleFunc("GET /api/v1/forecast", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("station") != "Bhavani" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(client.ErrorResponse{Error: "not found", Details: "unknown station", Code: 404})
			return
		}
		json.NewEncoder(w).Encode(client.Forecast{
			District: "Erode",
			Station:  "Bhavani",
			History:  []client.YearlyAverage{{Year: 2010, MeanValue: 10}},
			Series:   client.Series{"2025": 160, "2026": 170},
			PeakYear: 2026, PeakRainfallMM: 170,
		})
	})
	mux.HandleFunc("GET /api/v1/districts/{district}/outlook", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.Outlook{
			District:  r.PathValue("district"),
			StartYear: 2025, EndYear: 2036,
			Stations: []client.StationOutlook{
				{Station: "Bhavani", PeakYear: 2036, PeakRainfallMM: 270, FirstValue: 160, LastValue: 270, Trend: "rising"},
			},
		})
	})
	mux.HandleFunc("POST /api/v1/assessments", func(w http.ResponseWriter, r *http.Request) {
		var in client.AssessmentInput
		json.NewDecoder(r.Body).Decode(&in)
		fb.assessment = &in
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(client.Assessment{
			ID: "a-1", District: in.District, Station: in.Station, RoofType: in.RoofType,
			RoofAreaM2: in.RoofAreaM2, PeakYear: 2036, PeakRainfallMM: 270,
			RunoffCoefficient: 0.85, HarvestedLiters: 22950,
			RainfallSeries: client.Series{"2025": 160, "2036": 270},
			Recommendation: client.Recommendation{
				StructureType: "Recharge Trench",
				Feasibility:   "YES",
				Dimensions:    client.Dimensions{Shape: "rectangular", Length: 3, Width: 1, Depth: 1.5},
				CostSummary:   map[string]int{"total": 45000},
			},
		})
	})
	mux.HandleFunc("POST /api/v1/systems/calculate", func(w http.ResponseWriter, r *http.Request) {
		var in client.DesignInput
		json.NewDecoder(r.Body).Decode(&in)
		fb.design = &in
		json.NewEncoder(w).Encode(client.Design{
			SystemType:             in.SystemType,
			Purpose:                "storage",
			RequiredCapacityLiters: 18000,
			Components:             []client.Component{{Label: "10000 L tank", Count: 2, UnitVolumeLiters: 10000}},
			Cost: client.CostBreakdown{
				Items:   []client.CostLineItem{{Label: "10000 L tank", Quantity: 2, Unit: "nos", Costs: map[string]int{"material": 131000}}},
				Summary: map[string]int{"material": 131000, "total": 131000},
			},
		})
	})

	fb.Server = httptest.NewServer(mux)
	t.Cleanup(fb.Close)

	apiURL = fb.URL
	t.Cleanup(func() { apiURL = ""; jsonOutput = false })
	return fb
}
