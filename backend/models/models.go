// ABOUTME: Shared API envelope types for the rainwater service
// ABOUTME: JSON-serializable responses for health, metadata and errors

package models

import "time"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

// DatasetStatus describes the rainfall snapshot currently being served
type DatasetStatus struct {
	Source       string    `json:"source"`
	Districts    int       `json:"districts"`
	Stations     int       `json:"stations"`
	Observations int       `json:"observations"`
	LoadedAt     time.Time `json:"loaded_at"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status  string        `json:"status"`
	Dataset DatasetStatus `json:"dataset"`
	Cache   CacheStatus   `json:"cache"`
}

// CacheStatus reports forecast cache occupancy
type CacheStatus struct {
	ForecastEntries int `json:"forecast_entries"`
}

// MetaResponse lists everything a client needs to build an assessment form
type MetaResponse struct {
	Districts         []string            `json:"districts"`
	Stations          map[string][]string `json:"stations"`
	RoofTypes         []string            `json:"roof_types"`
	SystemInfo        []SystemInfo        `json:"system_info"`
	ForecastStartYear int                 `json:"forecast_start_year"`
	ForecastEndYear   int                 `json:"forecast_end_year"`
}
