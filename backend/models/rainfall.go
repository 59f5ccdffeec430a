// ABOUTME: Rainfall observations, yearly aggregates and forecast series
// ABOUTME: ForecastSeries serializes as a year-keyed JSON object

package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Observation is one rainfall reading (mm) for a station.
type Observation struct {
	District string  `json:"district" db:"district"`
	Station  string  `json:"station" db:"station"`
	Year     int     `json:"year" db:"year"`
	Value    float64 `json:"value" db:"value"`
}

// YearlyAverage is the mean observation value for one station-year.
type YearlyAverage struct {
	Year      int     `json:"year"`
	MeanValue float64 `json:"mean_value"`
}

// ForecastSeries holds one predicted value per year, starting at StartYear
// with no gaps.
type ForecastSeries struct {
	StartYear int
	Values    []float64
}

func (s ForecastSeries) Len() int { return len(s.Values) }

// EndYear is the last year covered. An empty series returns StartYear-1.
func (s ForecastSeries) EndYear() int { return s.StartYear + len(s.Values) - 1 }

func (s ForecastSeries) Years() []int {
	years := make([]int, len(s.Values))
	for i := range s.Values {
		years[i] = s.StartYear + i
	}
	return years
}

func (s ForecastSeries) Value(year int) (float64, bool) {
	i := year - s.StartYear
	if i < 0 || i >= len(s.Values) {
		return 0, false
	}
	return s.Values[i], true
}

// Peak returns the year with the highest prediction; ties go to the earliest year.
func (s ForecastSeries) Peak() (year int, value float64, ok bool) {
	if len(s.Values) == 0 {
		return 0, 0, false
	}
	best := 0
	for i, v := range s.Values {
		if v > s.Values[best] {
			best = i
		}
	}
	return s.StartYear + best, s.Values[best], true
}

func (s ForecastSeries) MarshalJSON() ([]byte, error) {
	out := make(map[string]float64, len(s.Values))
	for i, v := range s.Values {
		out[strconv.Itoa(s.StartYear+i)] = v
	}
	return json.Marshal(out)
}

func (s *ForecastSeries) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		*s = ForecastSeries{}
		return nil
	}

	years := make([]int, 0, len(raw))
	byYear := make(map[int]float64, len(raw))
	for key, v := range raw {
		year, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("forecast key %q is not a year", key)
		}
		years = append(years, year)
		byYear[year] = v
	}
	sort.Ints(years)

	values := make([]float64, len(years))
	for i, year := range years {
		if year != years[0]+i {
			return fmt.Errorf("forecast years are not contiguous at %d", year)
		}
		values[i] = byYear[year]
	}
	*s = ForecastSeries{StartYear: years[0], Values: values}
	return nil
}

// RainfallResponse is returned by the rainfall listing endpoint
type RainfallResponse struct {
	District     string        `json:"district,omitempty"`
	Station      string        `json:"station,omitempty"`
	Count        int           `json:"count"`
	Observations []Observation `json:"observations"`
}
