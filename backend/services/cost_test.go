// ABOUTME: Tests for tank and recharge costing
// ABOUTME: Pins totals for component pricing, RCC bill of quantities and recharge media/lining

package services

import (
	"reflect"
	"testing"

	"github.com/Eswari2225/DropSaviors/backend/models"
	"github.com/Eswari2225/DropSaviors/backend/ratecard"
)

func newTestCostEstimator() *CostEstimator {
	return NewCostEstimator(ratecard.Default())
}

func findItem(t *testing.T, b models.CostBreakdown, label string) models.CostLineItem {
	t.Helper()
	for _, item := range b.Items {
		if item.Label == label {
			return item
		}
	}
	t.Fatalf("Expected line item %q in %+v", label, b.Items)
	return models.CostLineItem{}
}

func TestTankCost_Plastic(t *testing.T) {
	e := newTestCostEstimator()
	components := []models.Component{
		{Label: "5000L Tank", Count: 2, UnitVolumeLiters: 5000},
		{Label: "2000L Tank", Count: 1, UnitVolumeLiters: 2000},
	}

	b := e.TankCost(components, models.MaterialPlastic, nil)

	want := map[string]int{
		models.SummaryMaterialTotal:  72000,
		models.SummaryInstallTotal:   6000,
		models.SummaryPipingFittings: 3000,
		models.SummaryFirstFlush:     2500,
		models.SummaryFilterUnit:     4500,
		models.SummaryLabour:         3000,
		models.SummaryTotal:          91000,
	}
	if !reflect.DeepEqual(b.Summary, want) {
		t.Errorf("Expected summary %v, got %v", want, b.Summary)
	}

	tank := findItem(t, b, "5000L Tank")
	if tank.Costs[models.CostMaterial] != 60000 || tank.Costs[models.CostInstall] != 4000 {
		t.Errorf("Unexpected 5000L line costs %v", tank.Costs)
	}
	if tank.Quantity != 2 || tank.UnitVolumeLiters != 5000 {
		t.Errorf("Unexpected 5000L line %+v", tank)
	}
}

func TestTankCost_RCCWithoutDimensions(t *testing.T) {
	e := newTestCostEstimator()
	components := []models.Component{{Label: "5000L Tank", Count: 1, UnitVolumeLiters: 5000}}

	b := e.TankCost(components, models.MaterialRCC, nil)

	if b.Summary[models.SummaryMaterialTotal] != 20000 {
		t.Errorf("Expected RCC material 20000, got %d", b.Summary[models.SummaryMaterialTotal])
	}
	if b.Summary[models.SummaryInstallTotal] != 8000 {
		t.Errorf("Expected RCC install 8000, got %d", b.Summary[models.SummaryInstallTotal])
	}
	if b.Total() != 41000 {
		t.Errorf("Expected total 41000, got %d", b.Total())
	}
	if len(b.Items) != 1 {
		t.Errorf("Expected no bill of quantities without dimensions, got %d items", len(b.Items))
	}
}

func TestTankCost_RCCBillOfQuantitiesReplacesMaterial(t *testing.T) {
	e := newTestCostEstimator()
	components := []models.Component{{Label: "5000L Tank", Count: 1, UnitVolumeLiters: 5000}}
	geom := models.Rectangular{Length: 2, Width: 2, Depth: 2}

	b := e.TankCost(components, models.MaterialRCC, geom)

	// 8 m3: cement 22400 + sand 7200 + aggregate 10240 + steel 42000 + formwork 16368
	if b.Summary[models.SummaryMaterialTotal] != 98208 {
		t.Errorf("Expected material total 98208, got %d", b.Summary[models.SummaryMaterialTotal])
	}
	if b.Summary[models.SummaryInstallTotal] != 8000 {
		t.Errorf("Expected install 8000 kept, got %d", b.Summary[models.SummaryInstallTotal])
	}
	if b.Total() != 119208 {
		t.Errorf("Expected total 119208, got %d", b.Total())
	}
	if len(b.Items) != 6 {
		t.Fatalf("Expected 1 component + 5 material lines, got %d", len(b.Items))
	}

	tests := []struct {
		label    string
		quantity float64
		cost     int
	}{
		{"Cement", 56, 22400},
		{"Sand", 4, 7200},
		{"Aggregate", 6.4, 10240},
		{"Steel", 600, 42000},
		{"Formwork", 1, 16368},
	}
	for _, tt := range tests {
		item := findItem(t, b, tt.label)
		if item.Quantity != tt.quantity {
			t.Errorf("%s: expected quantity %v, got %v", tt.label, tt.quantity, item.Quantity)
		}
		if item.Costs[models.CostMaterial] != tt.cost {
			t.Errorf("%s: expected cost %d, got %d", tt.label, tt.cost, item.Costs[models.CostMaterial])
		}
		if item.Costs[models.CostInstall] != 0 {
			t.Errorf("%s: expected zero install, got %d", tt.label, item.Costs[models.CostInstall])
		}
	}
}

func TestTankCost_PlasticIgnoresDimensions(t *testing.T) {
	e := newTestCostEstimator()
	components := []models.Component{{Label: "2000L Tank", Count: 3, UnitVolumeLiters: 2000}}

	without := e.TankCost(components, models.MaterialPlastic, nil)
	with := e.TankCost(components, models.MaterialPlastic, models.Cylindrical{Diameter: 2, Height: 2})

	if !reflect.DeepEqual(without, with) {
		t.Errorf("Expected plastic costing to ignore dimensions:\n%+v\n%+v", without, with)
	}
}

func TestTankCost_DegenerateRCCGeometry(t *testing.T) {
	e := newTestCostEstimator()
	components := []models.Component{{Label: "1000L Barrel", Count: 1, UnitVolumeLiters: 1000}}

	b := e.TankCost(components, models.MaterialRCC, models.Rectangular{Length: 2, Width: 0, Depth: 2})

	if b.Summary[models.SummaryMaterialTotal] != 0 {
		t.Errorf("Expected zero material for degenerate geometry, got %d", b.Summary[models.SummaryMaterialTotal])
	}
	for _, label := range []string{"Cement", "Sand", "Aggregate", "Steel", "Formwork"} {
		if item := findItem(t, b, label); item.Subtotal() != 0 {
			t.Errorf("%s: expected zero-cost line, got %v", label, item.Costs)
		}
	}
	if b.Total() != 8000+13000 {
		t.Errorf("Expected install plus fixed items 21000, got %d", b.Total())
	}
}

func TestTankCost_NoComponents(t *testing.T) {
	b := newTestCostEstimator().TankCost(nil, models.MaterialPlastic, nil)
	if b.Total() != 13000 {
		t.Errorf("Expected fixed items only 13000, got %d", b.Total())
	}
	if len(b.Items) != 0 {
		t.Errorf("Expected no items, got %d", len(b.Items))
	}
}

func TestRechargeCost_Components(t *testing.T) {
	e := newTestCostEstimator()
	components := []models.Component{
		{Label: "Trench (20m3)", Count: 1, UnitVolumeLiters: 20000},
		{Label: "Medium Pit (5m3)", Count: 1, UnitVolumeLiters: 5000},
	}

	tests := []struct {
		name  string
		lined bool
		want  map[string]int
	}{
		{
			name:  "lined",
			lined: true,
			want: map[string]int{
				models.SummaryExcavationTotal: 10000,
				models.SummaryLiningTotal:     125000,
				models.SummaryMediaTotal:      5000,
				models.SummaryLabourTotal:     7000,
				models.SummaryTotal:           147000,
			},
		},
		{
			name:  "unlined",
			lined: false,
			want: map[string]int{
				models.SummaryExcavationTotal: 10000,
				models.SummaryLiningTotal:     0,
				models.SummaryMediaTotal:      5000,
				models.SummaryLabourTotal:     7000,
				models.SummaryTotal:           22000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := e.RechargeCost(components, tt.lined, nil)
			if !reflect.DeepEqual(b.Summary, tt.want) {
				t.Errorf("Expected summary %v, got %v", tt.want, b.Summary)
			}
		})
	}
}

func TestRechargeCost_CustomRectangularLined(t *testing.T) {
	e := newTestCostEstimator()

	b := e.RechargeCost(nil, true, models.Rectangular{Length: 2, Width: 2, Depth: 2})

	// media: gravel 9600 + sand 3600 + 4 charcoal 2000
	if b.Summary[models.SummaryMediaTotal] != 15200 {
		t.Errorf("Expected media 15200, got %d", b.Summary[models.SummaryMediaTotal])
	}
	// lining: 20 m2 x 0.15 = 3 m3 PCC -> cement 8400 + sand 2700 + aggregate 3840
	if b.Summary[models.SummaryLiningTotal] != 14940 {
		t.Errorf("Expected lining 14940, got %d", b.Summary[models.SummaryLiningTotal])
	}
	if b.Total() != 30140 {
		t.Errorf("Expected total 30140, got %d", b.Total())
	}
	if len(b.Items) != 6 {
		t.Errorf("Expected 6 material lines, got %d", len(b.Items))
	}

	charcoal := findItem(t, b, "Charcoal")
	if charcoal.Quantity != 4 || charcoal.Costs[models.CostFilterMedia] != 2000 {
		t.Errorf("Unexpected charcoal line %+v", charcoal)
	}
	cement := findItem(t, b, "Cement (lining)")
	if cement.Quantity != 21 || cement.Costs[models.CostLining] != 8400 {
		t.Errorf("Unexpected lining cement line %+v", cement)
	}
	if cement.Costs[models.CostExcavation] != 0 || cement.Costs[models.CostLabour] != 0 {
		t.Errorf("Expected other parts zero on material line, got %v", cement.Costs)
	}
}

func TestRechargeCost_CustomShaftLined(t *testing.T) {
	e := newTestCostEstimator()

	b := e.RechargeCost(nil, true, models.Cylindrical{Diameter: 2, Height: 3})

	if b.Summary[models.SummaryMediaTotal] != 17551 {
		t.Errorf("Expected media 17551, got %d", b.Summary[models.SummaryMediaTotal])
	}
	if b.Summary[models.SummaryLiningTotal] != 16427 {
		t.Errorf("Expected lining 16427, got %d", b.Summary[models.SummaryLiningTotal])
	}
	if b.Total() != 33978 {
		t.Errorf("Expected total 33978, got %d", b.Total())
	}
	if cement := findItem(t, b, "Cement (lining)"); cement.Quantity != 23.1 {
		t.Errorf("Expected 23.1 bags of lining cement, got %v", cement.Quantity)
	}
}

func TestRechargeCost_MediaAddsToComponents(t *testing.T) {
	e := newTestCostEstimator()
	components := []models.Component{{Label: "Small Pit (2m3)", Count: 1, UnitVolumeLiters: 2000}}

	base := e.RechargeCost(components, false, nil)
	custom := e.RechargeCost(components, false, models.Rectangular{Length: 2, Width: 2, Depth: 2})

	if got := custom.Summary[models.SummaryMediaTotal] - base.Summary[models.SummaryMediaTotal]; got != 15200 {
		t.Errorf("Expected custom media to add 15200, added %d", got)
	}
	if custom.Summary[models.SummaryLiningTotal] != 0 {
		t.Errorf("Expected no lining when unlined, got %d", custom.Summary[models.SummaryLiningTotal])
	}
	if _, ok := findItemOK(custom, "Cement (lining)"); ok {
		t.Error("Expected no lining lines when unlined")
	}
}

func TestRechargeCost_DegenerateGeometry(t *testing.T) {
	b := newTestCostEstimator().RechargeCost(nil, true, models.Cylindrical{Diameter: 0, Height: 3})

	if b.Total() != 0 {
		t.Errorf("Expected zero total for degenerate geometry, got %d", b.Total())
	}
	for _, item := range b.Items {
		if item.Subtotal() != 0 {
			t.Errorf("%s: expected zero-cost line, got %v", item.Label, item.Costs)
		}
	}
}

func TestCosting_Deterministic(t *testing.T) {
	e := newTestCostEstimator()
	components := []models.Component{{Label: "Large Pit (10m3)", Count: 3, UnitVolumeLiters: 10000}}
	geom := models.Cylindrical{Diameter: 1.7, Height: 2.3}

	first := e.RechargeCost(components, true, geom)
	second := e.RechargeCost(components, true, geom)
	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical recharge breakdowns for identical inputs")
	}

	tankA := e.TankCost([]models.Component{{Label: "5000L Tank", Count: 1, UnitVolumeLiters: 5000}}, models.MaterialRCC, geom)
	tankB := e.TankCost([]models.Component{{Label: "5000L Tank", Count: 1, UnitVolumeLiters: 5000}}, models.MaterialRCC, geom)
	if !reflect.DeepEqual(tankA, tankB) {
		t.Error("Expected identical tank breakdowns for identical inputs")
	}
}

func findItemOK(b models.CostBreakdown, label string) (models.CostLineItem, bool) {
	for _, item := range b.Items {
		if item.Label == label {
			return item, true
		}
	}
	return models.CostLineItem{}, false
}
