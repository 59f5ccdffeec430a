// ABOUTME: Rainfall forecaster fitting a linear trend to yearly station averages
// ABOUTME: Falls back to a constant forecast when fewer than two distinct years exist

package services

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/Eswari2225/DropSaviors/backend/models"
)

// Forecast projects yearly rainfall over [startYear, endYear] from history.
// With two or more distinct years an ordinary least-squares line of value
// on year is extrapolated; otherwise every year gets the mean of the
// history, or 0 when there is none. Values are rounded to 2 decimals.
// Non-finite history values are ignored.
func Forecast(history []models.YearlyAverage, startYear, endYear int) (models.ForecastSeries, error) {
	if endYear < startYear {
		return models.ForecastSeries{}, fmt.Errorf("forecast %d-%d: %w", startYear, endYear, models.ErrInvalidWindow)
	}

	xs := make([]float64, 0, len(history))
	ys := make([]float64, 0, len(history))
	years := make(map[int]struct{}, len(history))
	for _, h := range history {
		if math.IsNaN(h.MeanValue) || math.IsInf(h.MeanValue, 0) {
			continue
		}
		xs = append(xs, float64(h.Year))
		ys = append(ys, h.MeanValue)
		years[h.Year] = struct{}{}
	}

	predict := constantModel(ys)
	if len(years) >= 2 {
		alpha, beta := stat.LinearRegression(xs, ys, nil, false)
		predict = func(year float64) float64 { return alpha + beta*year }
	}

	values := make([]float64, endYear-startYear+1)
	for i := range values {
		values[i] = roundTo(predict(float64(startYear+i)), 2)
	}
	return models.ForecastSeries{StartYear: startYear, Values: values}, nil
}

func constantModel(ys []float64) func(float64) float64 {
	var level float64
	if len(ys) > 0 {
		level = stat.Mean(ys, nil)
	}
	return func(float64) float64 { return level }
}

// TrendOf classifies a forecast by comparing its first and last values.
func TrendOf(series models.ForecastSeries) models.Trend {
	if series.Len() < 2 {
		return models.TrendFlat
	}
	first, last := series.Values[0], series.Values[series.Len()-1]
	switch {
	case last > first:
		return models.TrendRising
	case last < first:
		return models.TrendFalling
	default:
		return models.TrendFlat
	}
}
