// ABOUTME: HTTP client for the rainwater harvesting API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"
)

// Client is the API client for the rainwater backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("backend error: %s: %s", e.Message, e.Details)
	}
	return fmt.Sprintf("backend error: %s", e.Message)
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents the /api/v1/health endpoint response
type HealthResponse struct {
	Status  string        `json:"status"`
	Dataset DatasetStatus `json:"dataset"`
	Cache   CacheStatus   `json:"cache"`
}

type DatasetStatus struct {
	Source       string    `json:"source"`
	Districts    int       `json:"districts"`
	Stations     int       `json:"stations"`
	Observations int       `json:"observations"`
	LoadedAt     time.Time `json:"loaded_at"`
}

type CacheStatus struct {
	ForecastEntries int `json:"forecast_entries"`
}

// Meta lists districts, stations and roof types known to the backend
type Meta struct {
	Districts         []string            `json:"districts"`
	Stations          map[string][]string `json:"stations"`
	RoofTypes         []string            `json:"roof_types"`
	SystemInfo        []SystemInfo        `json:"system_info"`
	ForecastStartYear int                 `json:"forecast_start_year"`
	ForecastEndYear   int                 `json:"forecast_end_year"`
}

type SystemInfo struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	BaseCost    int      `json:"base_cost"`
	TypicalSize string   `json:"typical_size"`
	Shapes      []string `json:"shapes"`
}

// Series is a per-year rainfall projection keyed by year
type Series map[string]float64

// Points returns the series in ascending year order.
func (s Series) Points() ([]int, []float64) {
	years := make([]int, 0, len(s))
	for key := range s {
		if year, err := strconv.Atoi(key); err == nil {
			years = append(years, year)
		}
	}
	sort.Ints(years)
	values := make([]float64, len(years))
	for i, year := range years {
		values[i] = s[strconv.Itoa(year)]
	}
	return years, values
}

type YearlyAverage struct {
	Year      int     `json:"year"`
	MeanValue float64 `json:"mean_value"`
}

// Forecast represents the /api/v1/forecast endpoint response
type Forecast struct {
	District       string          `json:"district"`
	Station        string          `json:"station"`
	History        []YearlyAverage `json:"history"`
	Series         Series          `json:"series"`
	PeakYear       int             `json:"peak_year"`
	PeakRainfallMM float64         `json:"peak_rainfall_mm"`
}

type StationOutlook struct {
	Station        string  `json:"station"`
	PeakYear       int     `json:"peak_year"`
	PeakRainfallMM float64 `json:"peak_rainfall_mm"`
	FirstValue     float64 `json:"first_value"`
	LastValue      float64 `json:"last_value"`
	Trend          string  `json:"trend"`
}

// Outlook represents a district outlook response
type Outlook struct {
	District  string           `json:"district"`
	StartYear int              `json:"start_year"`
	EndYear   int              `json:"end_year"`
	Stations  []StationOutlook `json:"stations"`
}

// AssessmentInput is the body of POST /api/v1/assessments
type AssessmentInput struct {
	District     string  `json:"district"`
	Station      string  `json:"station"`
	RoofType     string  `json:"roof_type"`
	RoofAreaM2   float64 `json:"roof_area_m2"`
	HasOpenSpace bool    `json:"has_open_space"`
	OpenAreaM2   float64 `json:"open_area_m2,omitempty"`
}

// Dimensions carries rectangular or cylindrical sizes; unused fields are zero
type Dimensions struct {
	Shape    string  `json:"shape"`
	Length   float64 `json:"length,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Depth    float64 `json:"depth,omitempty"`
	Diameter float64 `json:"diameter,omitempty"`
	Height   float64 `json:"height,omitempty"`
}

type Recommendation struct {
	StructureType        string         `json:"structure_type"`
	Feasibility          string         `json:"feasibility"`
	Purpose              string         `json:"purpose"`
	RequiredVolumeLiters float64        `json:"required_volume_liters"`
	Description          string         `json:"description"`
	TypicalSize          string         `json:"typical_size"`
	Message              string         `json:"message,omitempty"`
	Dimensions           Dimensions     `json:"dimensions"`
	CostSummary          map[string]int `json:"cost_summary"`
}

// Assessment represents a completed assessment
type Assessment struct {
	ID                string         `json:"id"`
	District          string         `json:"district"`
	Station           string         `json:"station"`
	RoofType          string         `json:"roof_type"`
	RoofAreaM2        float64        `json:"roof_area_m2"`
	OpenAreaM2        float64        `json:"open_area_m2"`
	RainfallSeries    Series         `json:"rainfall_series"`
	PeakYear          int            `json:"peak_year"`
	PeakRainfallMM    float64        `json:"peak_rainfall_mm"`
	RunoffCoefficient float64        `json:"runoff_coefficient"`
	HarvestedLiters   int            `json:"harvested_liters"`
	Recommendation    Recommendation `json:"recommendation"`
	CreatedAt         time.Time      `json:"created_at"`
}

// DesignInput is the body of POST /api/v1/systems/calculate
type DesignInput struct {
	HarvestedLiters float64            `json:"harvested_liters"`
	SystemType      string             `json:"system_type"`
	Shape           string             `json:"shape,omitempty"`
	Material        string             `json:"material,omitempty"`
	Lined           *bool              `json:"lined,omitempty"`
	Dimensions      map[string]float64 `json:"dimensions,omitempty"`
}

type Component struct {
	Label            string  `json:"label"`
	Count            int     `json:"count"`
	UnitVolumeLiters float64 `json:"unit_volume_liters"`
}

type CostLineItem struct {
	Label            string         `json:"label"`
	Quantity         float64        `json:"quantity"`
	Unit             string         `json:"unit"`
	UnitVolumeLiters float64        `json:"unit_volume_liters,omitempty"`
	Costs            map[string]int `json:"costs"`
}

type CostBreakdown struct {
	Items   []CostLineItem `json:"items"`
	Summary map[string]int `json:"summary"`
}

type GeometryResult struct {
	Liters      float64 `json:"liters"`
	CubicMeters float64 `json:"volume_m3"`
	Degenerate  bool    `json:"degenerate"`
}

// Design represents a sized and costed system
type Design struct {
	SystemType             string          `json:"system_type"`
	Purpose                string          `json:"purpose"`
	RequiredCapacityLiters int             `json:"required_capacity_liters"`
	Components             []Component     `json:"components"`
	RemainderLiters        int             `json:"remainder_liters"`
	CustomVolume           *GeometryResult `json:"custom_volume,omitempty"`
	Cost                   CostBreakdown   `json:"cost"`
}

// Health calls GET /api/v1/health. A 503 still carries a health body, so it
// is decoded rather than treated as an error.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &health, http.StatusOK, http.StatusServiceUnavailable); err != nil {
		return nil, err
	}
	return &health, nil
}

// Meta calls GET /api/v1/meta
func (c *Client) Meta(ctx context.Context) (*Meta, error) {
	var meta Meta
	if err := c.do(ctx, http.MethodGet, "/api/v1/meta", nil, &meta, http.StatusOK); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Forecast calls GET /api/v1/forecast
func (c *Client) Forecast(ctx context.Context, district, station string) (*Forecast, error) {
	q := url.Values{}
	q.Set("district", district)
	q.Set("station", station)

	var fc Forecast
	if err := c.do(ctx, http.MethodGet, "/api/v1/forecast?"+q.Encode(), nil, &fc, http.StatusOK); err != nil {
		return nil, err
	}
	return &fc, nil
}

// Outlook calls GET /api/v1/districts/{district}/outlook
func (c *Client) Outlook(ctx context.Context, district string) (*Outlook, error) {
	var outlook Outlook
	path := "/api/v1/districts/" + url.PathEscape(district) + "/outlook"
	if err := c.do(ctx, http.MethodGet, path, nil, &outlook, http.StatusOK); err != nil {
		return nil, err
	}
	return &outlook, nil
}

// Assess calls POST /api/v1/assessments
func (c *Client) Assess(ctx context.Context, input *AssessmentInput) (*Assessment, error) {
	var assessment Assessment
	if err := c.do(ctx, http.MethodPost, "/api/v1/assessments", input, &assessment, http.StatusCreated); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// DesignSystem calls POST /api/v1/systems/calculate
func (c *Client) DesignSystem(ctx context.Context, input *DesignInput) (*Design, error) {
	var design Design
	if err := c.do(ctx, http.MethodPost, "/api/v1/systems/calculate", input, &design, http.StatusOK); err != nil {
		return nil, err
	}
	return &design, nil
}

// do sends body as JSON when non-nil and decodes the response into out when
// the status is one of accept.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, accept ...int) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	accepted := false
	for _, code := range accept {
		if resp.StatusCode == code {
			accepted = true
			break
		}
	}
	if !accepted {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error, Details: errResp.Details}
}
