// ABOUTME: Standard component catalogue entries and packed decompositions
// ABOUTME: Produced by the greedy capacity packer and consumed by costing

package models

// ComponentOption is one standard tank or pit size
type ComponentOption struct {
	Label            string  `json:"label" yaml:"label"`
	UnitVolumeLiters float64 `json:"unit_volume_liters" yaml:"unit_volume_liters"`
}

// Component is Count units of one catalogue option
type Component struct {
	Label            string  `json:"label"`
	Count            int     `json:"count"`
	UnitVolumeLiters float64 `json:"unit_volume_liters"`
}

func (c Component) TotalLiters() float64 {
	return c.UnitVolumeLiters * float64(c.Count)
}

// Decomposition lists packed components, largest first, plus any
// undersupplied capacity (never negative).
type Decomposition struct {
	Components      []Component `json:"components"`
	RemainderLiters float64     `json:"remainder_liters"`
}

func (d Decomposition) ProvidedLiters() float64 {
	var total float64
	for _, c := range d.Components {
		total += c.TotalLiters()
	}
	return total
}

func (d Decomposition) Units() int {
	n := 0
	for _, c := range d.Components {
		n += c.Count
	}
	return n
}
