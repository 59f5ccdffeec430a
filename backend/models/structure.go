// ABOUTME: Structure categories, feasibility and their fixed reference metadata
// ABOUTME: Recommendation is the selector's per-assessment output

package models

import "strings"

// StructureType names a recharge or storage structure category
type StructureType string

const (
	StructurePercolationPit  StructureType = "Percolation Pit"
	StructureRechargeTrench  StructureType = "Recharge Trench"
	StructureRechargeShaft   StructureType = "Recharge Shaft"
	StructureLargeTank       StructureType = "Large Storage Tank"
	StructureStorageForReuse StructureType = "Storage Tank for Reuse"
)

// IsStorage reports whether a system type string names a storage tank.
// Free-form client values are accepted, so this matches on substring.
func IsStorage(systemType string) bool {
	return strings.Contains(systemType, "Storage Tank")
}

type Feasibility string

const (
	FeasibilityYes Feasibility = "YES"
	FeasibilityNo  Feasibility = "NO"
)

// Purpose says what happens to harvested water
type Purpose string

const (
	PurposeRecharge Purpose = "recharge"
	PurposeStorage  Purpose = "storage"
)

// SystemInfo is static reference data for a structure category
type SystemInfo struct {
	Type        StructureType `json:"type"`
	Description string        `json:"description"`
	BaseCost    int           `json:"base_cost"`
	TypicalSize string        `json:"typical_size"`
	Shapes      []Shape       `json:"shapes"`
	Dimensions  Geometry      `json:"dimensions"`
}

var systemCatalog = []SystemInfo{
	{
		Type:        StructurePercolationPit,
		Description: "Small household pit; recharges shallow groundwater.",
		BaseCost:    15000,
		TypicalSize: "2m x 2m x 2m",
		Shapes:      []Shape{ShapeRectangular, ShapeCircular},
		Dimensions:  Rectangular{Length: 2, Width: 2, Depth: 2},
	},
	{
		Type:        StructureRechargeTrench,
		Description: "Shallow trench with filter material; good for medium rooftops.",
		BaseCost:    25000,
		TypicalSize: "10m x 1m x 1m",
		Shapes:      []Shape{ShapeRectangular},
		Dimensions:  Rectangular{Length: 10, Width: 1, Depth: 1},
	},
	{
		Type:        StructureRechargeShaft,
		Description: "Vertical shaft for deeper percolation; needs soil depth.",
		BaseCost:    40000,
		TypicalSize: "2m diameter x 3m depth",
		Shapes:      []Shape{ShapeCircular},
		Dimensions:  Cylindrical{Diameter: 2, Height: 3},
	},
	{
		Type:        StructureLargeTank,
		Description: "Stores large volumes for later use.",
		BaseCost:    60000,
		TypicalSize: "Varies based on requirement",
		Shapes:      []Shape{ShapeRectangular, ShapeCircular},
		Dimensions:  Cylindrical{Diameter: 4, Height: 3},
	},
}

// SystemCatalog returns the reference metadata in ladder order.
func SystemCatalog() []SystemInfo {
	out := make([]SystemInfo, len(systemCatalog))
	copy(out, systemCatalog)
	return out
}

func LookupSystem(t StructureType) (SystemInfo, bool) {
	for _, info := range systemCatalog {
		if info.Type == t {
			return info, true
		}
	}
	return SystemInfo{}, false
}

// Recommendation is the structure chosen for one assessment
type Recommendation struct {
	StructureType        StructureType  `json:"structure_type"`
	Feasibility          Feasibility    `json:"feasibility"`
	Purpose              Purpose        `json:"purpose"`
	RequiredVolumeLiters float64        `json:"required_volume_liters"`
	Description          string         `json:"description"`
	TypicalSize          string         `json:"typical_size"`
	Message              string         `json:"message,omitempty"`
	Dimensions           Geometry       `json:"dimensions"`
	CostSummary          map[string]int `json:"cost_summary"`
}
