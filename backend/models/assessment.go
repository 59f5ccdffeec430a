// ABOUTME: Request and result types for site assessments and system design
// ABOUTME: Assessment chains forecast, harvest and structure selection for one rooftop

package models

import "time"

// AssessmentRequest describes one rooftop at one station
type AssessmentRequest struct {
	District     string  `json:"district"`
	Station      string  `json:"station"`
	RoofType     string  `json:"roof_type"`
	RoofAreaM2   float64 `json:"roof_area_m2"`
	HasOpenSpace bool    `json:"has_open_space"`
	OpenAreaM2   float64 `json:"open_area_m2,omitempty"`
}

// Assessment is the full estimation result for one rooftop
type Assessment struct {
	ID                string         `json:"id"`
	District          string         `json:"district"`
	Station           string         `json:"station"`
	RoofType          string         `json:"roof_type"`
	RoofAreaM2        float64        `json:"roof_area_m2"`
	OpenAreaM2        float64        `json:"open_area_m2"`
	RainfallSeries    ForecastSeries `json:"rainfall_series"`
	PeakYear          int            `json:"peak_year"`
	PeakRainfallMM    float64        `json:"peak_rainfall_mm"`
	RunoffCoefficient float64        `json:"runoff_coefficient"`
	HarvestedLiters   int            `json:"harvested_liters"`
	Recommendation    Recommendation `json:"recommendation"`
	CreatedAt         time.Time      `json:"created_at"`
}

// SystemDesignRequest sizes and costs a chosen structure. Lined defaults to
// true when omitted.
type SystemDesignRequest struct {
	HarvestedLiters float64            `json:"harvested_liters"`
	SystemType      string             `json:"system_type"`
	Shape           string             `json:"shape,omitempty"`
	Material        string             `json:"material,omitempty"`
	Lined           *bool              `json:"lined,omitempty"`
	Dimensions      map[string]float64 `json:"dimensions,omitempty"`
}

func (r SystemDesignRequest) IsLined() bool {
	return r.Lined == nil || *r.Lined
}

// SystemDesign is a packed and costed structure
type SystemDesign struct {
	SystemType             string          `json:"system_type"`
	Purpose                Purpose         `json:"purpose"`
	RequiredCapacityLiters int             `json:"required_capacity_liters"`
	Components             []Component     `json:"components"`
	RemainderLiters        int             `json:"remainder_liters"`
	CustomVolume           *GeometryResult `json:"custom_volume,omitempty"`
	Cost                   CostBreakdown   `json:"cost"`
}

// Trend is the direction of a station forecast
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendFlat    Trend = "flat"
)

// StationOutlook summarizes one station's forecast
type StationOutlook struct {
	Station        string  `json:"station"`
	PeakYear       int     `json:"peak_year"`
	PeakRainfallMM float64 `json:"peak_rainfall_mm"`
	FirstValue     float64 `json:"first_value"`
	LastValue      float64 `json:"last_value"`
	Trend          Trend   `json:"trend"`
}

// DistrictOutlook collects outlooks for every station in a district
type DistrictOutlook struct {
	District  string           `json:"district"`
	StartYear int              `json:"start_year"`
	EndYear   int              `json:"end_year"`
	Stations  []StationOutlook `json:"stations"`
}

// ForecastResponse is returned by the forecast endpoint
type ForecastResponse struct {
	District       string          `json:"district"`
	Station        string          `json:"station"`
	History        []YearlyAverage `json:"history"`
	Series         ForecastSeries  `json:"series"`
	PeakYear       int             `json:"peak_year"`
	PeakRainfallMM float64         `json:"peak_rainfall_mm"`
}
