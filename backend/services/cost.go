// ABOUTME: Itemized cost estimation for storage tanks and recharge structures
// ABOUTME: Prices packed components and, for custom dimensions, a derived bill of quantities

package services

import (
	"math"

	"github.com/Eswari2225/DropSaviors/backend/models"
	"github.com/Eswari2225/DropSaviors/backend/ratecard"
)

// Concrete mix per m³ of concrete
const (
	cementBagsPerM3  = 7.0
	sandM3PerM3      = 0.5
	aggregateM3PerM3 = 0.8
	steelKgPerM3     = 75.0
	formworkFraction = 0.2
)

// Recharge filter media and lining
const (
	gravelFraction     = 0.4
	mediaSandFraction  = 0.3
	charcoalUnitsPerM3 = 0.5
	liningThicknessM   = 0.15
)

// CostEstimator prices decompositions against a rate card
type CostEstimator struct {
	rates ratecard.Costs
}

func NewCostEstimator(card *ratecard.RateCard) *CostEstimator {
	return &CostEstimator{rates: card.Costs}
}

// TankCost prices storage tanks. Each component is charged a per-liter
// material rate and a per-unit install charge for the material. When
// geometry is given for an RCC tank, the material total is replaced by the
// concrete bill of quantities for that geometry; install charges remain.
// Piping, first flush, filter unit and labour are always added.
func (e *CostEstimator) TankCost(components []models.Component, material models.TankMaterial, geom models.Geometry) models.CostBreakdown {
	perLiter, installUnit := e.rates.TankPerLiterPlastic, e.rates.TankInstallUnit
	if material == models.MaterialRCC {
		perLiter, installUnit = e.rates.TankPerLiterRCC, e.rates.RCCInstallUnit
	}

	items := make([]models.CostLineItem, 0, len(components)+5)
	var materialTotal, installTotal float64
	for _, c := range components {
		count := float64(c.Count)
		matCost := perLiter * c.UnitVolumeLiters * count
		instCost := installUnit * count
		items = append(items, models.CostLineItem{
			Label:            c.Label,
			Quantity:         count,
			Unit:             "unit",
			UnitVolumeLiters: c.UnitVolumeLiters,
			Costs: map[string]int{
				models.CostMaterial: roundCurrency(matCost),
				models.CostInstall:  roundCurrency(instCost),
			},
		})
		materialTotal += matCost
		installTotal += instCost
	}

	if geom != nil && material == models.MaterialRCC {
		bill, total := e.concreteBill(VolumeFromShape(geom).CubicMeters)
		items = append(items, bill...)
		materialTotal = total
	}

	fixed := e.rates.PipeFittings + e.rates.FirstFlush + e.rates.LabourSystem + e.rates.FilterUnit
	return models.CostBreakdown{
		Items: items,
		Summary: map[string]int{
			models.SummaryMaterialTotal:  roundCurrency(materialTotal),
			models.SummaryInstallTotal:   roundCurrency(installTotal),
			models.SummaryPipingFittings: roundCurrency(e.rates.PipeFittings),
			models.SummaryFirstFlush:     roundCurrency(e.rates.FirstFlush),
			models.SummaryFilterUnit:     roundCurrency(e.rates.FilterUnit),
			models.SummaryLabour:         roundCurrency(e.rates.LabourSystem),
			models.SummaryTotal:          roundCurrency(materialTotal + installTotal + fixed),
		},
	}
}

// concreteBill prices cement, sand, aggregate, steel and formwork for a
// volume of reinforced concrete.
func (e *CostEstimator) concreteBill(m3 float64) ([]models.CostLineItem, float64) {
	cementBags := m3 * cementBagsPerM3
	sandM3 := m3 * sandM3PerM3
	aggregateM3 := m3 * aggregateM3PerM3
	steelKg := m3 * steelKgPerM3

	cement := cementBags * e.rates.CementPerBag
	sand := sandM3 * e.rates.SandPerCum
	aggregate := aggregateM3 * e.rates.AggregatePerCum
	steel := steelKg * e.rates.SteelPerKg
	formwork := (cement + sand + aggregate + steel) * formworkFraction

	items := []models.CostLineItem{
		materialItem("Cement", roundTo(cementBags, 1), "bags", models.CostMaterial, cement),
		materialItem("Sand", roundTo(sandM3, 2), "m3", models.CostMaterial, sand),
		materialItem("Aggregate", roundTo(aggregateM3, 2), "m3", models.CostMaterial, aggregate),
		materialItem("Steel", roundTo(steelKg, 1), "kg", models.CostMaterial, steel),
		materialItem("Formwork", 1, "lot", models.CostMaterial, formwork),
	}
	for i := range items {
		items[i].Costs[models.CostInstall] = 0
	}
	return items, cement + sand + aggregate + steel + formwork
}

// RechargeCost prices recharge structures. Each component is charged
// excavation, optional PCC lining, filter media and labour. When geometry is
// given, filter media for that volume is added to the media total and, if
// lined, a PCC lining bill for its surface area is added to the lining total.
func (e *CostEstimator) RechargeCost(components []models.Component, lined bool, geom models.Geometry) models.CostBreakdown {
	items := make([]models.CostLineItem, 0, len(components)+6)
	var excavationTotal, liningTotal, mediaTotal, labourTotal float64

	for _, c := range components {
		count := float64(c.Count)
		m3 := c.UnitVolumeLiters / 1000
		excavation := m3 * e.rates.ExcavationPerM3 * count
		var lining float64
		if lined {
			lining = m3 * e.rates.PCCLiningPerM3 * count
		}
		media := e.rates.FilterMediaPerUnit * count
		labour := e.rates.LabourRechargePerUnit * count

		items = append(items, models.CostLineItem{
			Label:            c.Label,
			Quantity:         count,
			Unit:             "unit",
			UnitVolumeLiters: c.UnitVolumeLiters,
			Costs:            rechargeCosts(excavation, lining, media, labour),
		})
		excavationTotal += excavation
		liningTotal += lining
		mediaTotal += media
		labourTotal += labour
	}

	if geom != nil {
		m3 := VolumeFromShape(geom).CubicMeters

		gravelM3 := m3 * gravelFraction
		sandM3 := m3 * mediaSandFraction
		charcoalUnits := charcoalUnitsFor(m3)

		gravel := gravelM3 * e.rates.GravelPerM3
		sand := sandM3 * e.rates.SandPerM3
		charcoal := float64(charcoalUnits) * e.rates.CharcoalPerUnit
		mediaTotal += gravel + sand + charcoal

		items = append(items,
			mediaItem("Gravel", roundTo(gravelM3, 2), "m3", models.CostFilterMedia, gravel),
			mediaItem("Sand", roundTo(sandM3, 2), "m3", models.CostFilterMedia, sand),
			mediaItem("Charcoal", float64(charcoalUnits), "unit", models.CostFilterMedia, charcoal),
		)

		if lined {
			pccM3 := geom.SurfaceArea() * liningThicknessM
			cementBags := pccM3 * cementBagsPerM3
			sandPCC := pccM3 * sandM3PerM3
			aggregatePCC := pccM3 * aggregateM3PerM3

			cement := cementBags * e.rates.CementPerBag
			sandCost := sandPCC * e.rates.SandPerCum
			aggregate := aggregatePCC * e.rates.AggregatePerCum
			liningTotal += cement + sandCost + aggregate

			items = append(items,
				mediaItem("Cement (lining)", roundTo(cementBags, 1), "bags", models.CostLining, cement),
				mediaItem("Sand (lining)", roundTo(sandPCC, 2), "m3", models.CostLining, sandCost),
				mediaItem("Aggregate (lining)", roundTo(aggregatePCC, 2), "m3", models.CostLining, aggregate),
			)
		}
	}

	return models.CostBreakdown{
		Items: items,
		Summary: map[string]int{
			models.SummaryExcavationTotal: roundCurrency(excavationTotal),
			models.SummaryLiningTotal:     roundCurrency(liningTotal),
			models.SummaryMediaTotal:      roundCurrency(mediaTotal),
			models.SummaryLabourTotal:     roundCurrency(labourTotal),
			models.SummaryTotal:           roundCurrency(excavationTotal + liningTotal + mediaTotal + labourTotal),
		},
	}
}

// charcoalUnitsFor returns half a unit per m³, at least one, and none for
// an empty structure.
func charcoalUnitsFor(m3 float64) int {
	if m3 <= 0 {
		return 0
	}
	return int(math.Max(1, math.Floor(m3*charcoalUnitsPerM3)))
}

func materialItem(label string, quantity float64, unit, part string, cost float64) models.CostLineItem {
	return models.CostLineItem{
		Label:    label,
		Quantity: quantity,
		Unit:     unit,
		Costs:    map[string]int{part: roundCurrency(cost)},
	}
}

// mediaItem is a raw-material row in a recharge bill. All four recharge cost
// parts are present so rows line up with component rows.
func mediaItem(label string, quantity float64, unit, part string, cost float64) models.CostLineItem {
	item := models.CostLineItem{
		Label:    label,
		Quantity: quantity,
		Unit:     unit,
		Costs:    rechargeCosts(0, 0, 0, 0),
	}
	item.Costs[part] = roundCurrency(cost)
	return item
}

func rechargeCosts(excavation, lining, media, labour float64) map[string]int {
	return map[string]int{
		models.CostExcavation:  roundCurrency(excavation),
		models.CostLining:      roundCurrency(lining),
		models.CostFilterMedia: roundCurrency(media),
		models.CostLabour:      roundCurrency(labour),
	}
}
