// ABOUTME: Greedy capacity packer decomposing a volume into standard component sizes
// ABOUTME: Largest sizes first, then one smallest unit to cover any shortfall

package services

import (
	"math"
	"sort"

	"github.com/Eswari2225/DropSaviors/backend/models"
)

// shortfallTolerance absorbs float noise left after subtracting whole units.
const shortfallTolerance = 1e-9

// GreedyFill packs requiredLiters using options, largest unit volume first.
// Any shortfall after whole units is covered by one extra unit of the
// smallest option, merged into that option's entry if already present, so
// a positive requirement never yields an empty decomposition. The reported
// remainder is clamped at zero, so an exact fit and an overshoot look the
// same. Options with non-positive volume are ignored.
//
// An empty catalogue returns ErrEmptyCatalogue alongside an empty result.
// A non-positive requirement returns an empty result and no error.
func GreedyFill(requiredLiters float64, options []models.ComponentOption) (models.Decomposition, error) {
	sorted := make([]models.ComponentOption, 0, len(options))
	for _, opt := range options {
		if opt.UnitVolumeLiters > 0 {
			sorted = append(sorted, opt)
		}
	}
	if len(sorted) == 0 {
		return models.Decomposition{Components: []models.Component{}}, models.ErrEmptyCatalogue
	}
	if math.IsNaN(requiredLiters) || requiredLiters <= 0 {
		return models.Decomposition{Components: []models.Component{}}, nil
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UnitVolumeLiters > sorted[j].UnitVolumeLiters
	})

	components := []models.Component{}
	remaining := requiredLiters
	for _, opt := range sorted {
		count := int(math.Floor(remaining / opt.UnitVolumeLiters))
		if count > 0 {
			components = append(components, models.Component{
				Label:            opt.Label,
				Count:            count,
				UnitVolumeLiters: opt.UnitVolumeLiters,
			})
			remaining -= float64(count) * opt.UnitVolumeLiters
		}
	}

	if remaining > shortfallTolerance {
		smallest := sorted[len(sorted)-1]
		if n := len(components); n > 0 && components[n-1].Label == smallest.Label {
			components[n-1].Count++
		} else {
			components = append(components, models.Component{
				Label:            smallest.Label,
				Count:            1,
				UnitVolumeLiters: smallest.UnitVolumeLiters,
			})
		}
		remaining -= smallest.UnitVolumeLiters
	}

	return models.Decomposition{
		Components:      components,
		RemainderLiters: math.Max(0, roundTo(remaining, 2)),
	}, nil
}
