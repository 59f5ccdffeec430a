// ABOUTME: Itemized cost breakdown types for tank and recharge costing
// ABOUTME: Line items carry named cost parts; the summary carries named totals

package models

import "strings"

// Cost part names used in CostLineItem.Costs
const (
	CostMaterial    = "material"
	CostInstall     = "install"
	CostExcavation  = "excavation"
	CostLining      = "lining"
	CostFilterMedia = "filter_media"
	CostLabour      = "labour"
)

// Summary keys used in CostBreakdown.Summary
const (
	SummaryMaterialTotal   = "material_total"
	SummaryInstallTotal    = "install_total"
	SummaryPipingFittings  = "piping_fittings"
	SummaryFirstFlush      = "first_flush"
	SummaryFilterUnit      = "filter_unit"
	SummaryLabour          = "labour"
	SummaryExcavationTotal = "excavation_total"
	SummaryLiningTotal     = "lining_total"
	SummaryMediaTotal      = "media_total"
	SummaryLabourTotal     = "labour_total"
	SummaryTotal           = "total"
)

// CostLineItem is one row of a bill: a packed component or a raw material.
type CostLineItem struct {
	Label            string         `json:"label"`
	Quantity         float64        `json:"quantity"`
	Unit             string         `json:"unit"`
	UnitVolumeLiters float64        `json:"unit_volume_liters,omitempty"`
	Costs            map[string]int `json:"costs"`
}

// Subtotal sums every cost part of the item.
func (i CostLineItem) Subtotal() int {
	total := 0
	for _, v := range i.Costs {
		total += v
	}
	return total
}

// CostBreakdown is an itemized estimate. Amounts are whole currency units.
type CostBreakdown struct {
	Items   []CostLineItem `json:"items"`
	Summary map[string]int `json:"summary"`
}

func (b CostBreakdown) Total() int { return b.Summary[SummaryTotal] }

// TankMaterial selects tank rates
type TankMaterial string

const (
	MaterialPlastic TankMaterial = "plastic"
	MaterialRCC     TankMaterial = "rcc"
)

// ParseTankMaterial maps client input to a material. Anything that is not a
// concrete spelling, including empty input, is plastic. Unrecognised names are
// therefore priced at the cheaper plastic rates; the older service charged RCC
// rates for every material other than "plastic".
func ParseTankMaterial(s string) TankMaterial {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rcc", "concrete", "reinforced concrete":
		return MaterialRCC
	default:
		return MaterialPlastic
	}
}
