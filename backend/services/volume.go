// ABOUTME: Harvestable volume from roof area, rainfall and runoff coefficient
// ABOUTME: Also converts structure geometry into liters and cubic meters

package services

import (
	"math"
	"strings"

	"github.com/Eswari2225/DropSaviors/backend/models"
	"github.com/Eswari2225/DropSaviors/backend/ratecard"
)

// VolumeEstimator turns rainfall over a roof into collectible liters
type VolumeEstimator struct {
	runoff ratecard.Runoff
}

func NewVolumeEstimator(card *ratecard.RateCard) *VolumeEstimator {
	return &VolumeEstimator{runoff: card.Runoff}
}

// RunoffCoefficient looks up a roof material, case-insensitively. Unknown
// materials get the default coefficient.
func (e *VolumeEstimator) RunoffCoefficient(material string) float64 {
	if coeff, ok := e.runoff.Coefficients[strings.ToLower(strings.TrimSpace(material))]; ok {
		return coeff
	}
	return e.runoff.Default
}

// HarvestableLiters is area (m²) × rainfall (mm) × coefficient, rounded to
// 2 decimals; 1 mm over 1 m² is 1 liter. Negative or non-finite inputs
// count as zero.
func (e *VolumeEstimator) HarvestableLiters(roofAreaM2, rainfallMM float64, material string) float64 {
	area := nonNegative(roofAreaM2)
	rain := nonNegative(rainfallMM)
	return roundTo(area*rain*e.RunoffCoefficient(material), 2)
}

// VolumeFromShape reports liters (2 decimals) and cubic meters (4 decimals).
// A nil or degenerate geometry yields an explicit zero result.
func VolumeFromShape(g models.Geometry) models.GeometryResult {
	if g == nil || g.Degenerate() {
		return models.GeometryResult{Degenerate: true}
	}
	m3 := g.CubicMeters()
	return models.GeometryResult{
		Liters:      roundTo(m3*1000, 2),
		CubicMeters: roundTo(m3, 4),
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
