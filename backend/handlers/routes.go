// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import "net/http"

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL pattern (e.g., "/api/v1/districts/{district}/outlook")
	Handler http.HandlerFunc // Handler function
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & metadata
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},
		{Method: http.MethodGet, Path: "/api/v1/meta", Handler: h.Meta},

		// Rainfall
		{Method: http.MethodGet, Path: "/api/v1/rainfall", Handler: h.Rainfall},
		{Method: http.MethodGet, Path: "/api/v1/forecast", Handler: h.Forecast},
		{Method: http.MethodGet, Path: "/api/v1/districts/{district}/outlook", Handler: h.DistrictOutlook},

		// Assessment & sizing
		{Method: http.MethodPost, Path: "/api/v1/assessments", Handler: h.CreateAssessment},
		{Method: http.MethodPost, Path: "/api/v1/systems/calculate", Handler: h.CalculateSystem},
		{Method: http.MethodPost, Path: "/api/v1/geometry/volume", Handler: h.GeometryVolume},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}
