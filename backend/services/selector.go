// ABOUTME: Structure selection from harvestable volume and open-space availability
// ABOUTME: Threshold ladder for recharge structures, storage-for-reuse when there is no open space

package services

import "github.com/Eswari2225/DropSaviors/backend/models"

// Ladder upper bounds in liters, exclusive
const (
	percolationPitLimit = 20000
	rechargeTrenchLimit = 80000
	rechargeShaftLimit  = 200000
)

const (
	reuseStorageFraction = 0.8
	reuseBaseCost        = 35000
	reuseMessage         = "Not suitable for recharge due to no open space, but you can store and reuse water."
	reuseDescription     = "Covered tank storing roof runoff for household reuse."
)

// ClassifyVolume maps harvestable liters onto the structure ladder.
func ClassifyVolume(harvestedLiters float64) models.StructureType {
	switch {
	case harvestedLiters < percolationPitLimit:
		return models.StructurePercolationPit
	case harvestedLiters < rechargeTrenchLimit:
		return models.StructureRechargeTrench
	case harvestedLiters < rechargeShaftLimit:
		return models.StructureRechargeShaft
	default:
		return models.StructureLargeTank
	}
}

// SelectStructure recommends a structure. Without open space the ladder is
// skipped entirely and a reuse tank sized to 80% of the harvest is returned
// as infeasible for recharge.
func SelectStructure(harvestedLiters float64, hasOpenSpace bool) models.Recommendation {
	harvested := nonNegative(harvestedLiters)

	if !hasOpenSpace {
		storage := roundTo(harvested*reuseStorageFraction, 2)
		return models.Recommendation{
			StructureType:        models.StructureStorageForReuse,
			Feasibility:          models.FeasibilityNo,
			Purpose:              models.PurposeStorage,
			RequiredVolumeLiters: storage,
			Description:          reuseDescription,
			TypicalSize:          "Sized to 80% of harvested volume",
			Message:              reuseMessage,
			Dimensions:           reuseTankDimensions(storage),
			CostSummary:          map[string]int{"system_cost": reuseBaseCost},
		}
	}

	structure := ClassifyVolume(harvested)
	info, _ := models.LookupSystem(structure)
	purpose := models.PurposeRecharge
	if structure == models.StructureLargeTank {
		purpose = models.PurposeStorage
	}
	return models.Recommendation{
		StructureType:        structure,
		Feasibility:          models.FeasibilityYes,
		Purpose:              purpose,
		RequiredVolumeLiters: harvested,
		Description:          info.Description,
		TypicalSize:          info.TypicalSize,
		Dimensions:           info.Dimensions,
		CostSummary:          map[string]int{"system_cost": info.BaseCost},
	}
}

func reuseTankDimensions(storageLiters float64) models.Rectangular {
	switch {
	case storageLiters <= 5000:
		return models.Rectangular{Length: 2, Width: 1.5, Depth: 1.5}
	case storageLiters <= 10000:
		return models.Rectangular{Length: 2.5, Width: 2, Depth: 2}
	default:
		return models.Rectangular{Length: 3, Width: 2.5, Depth: 2.5}
	}
}
