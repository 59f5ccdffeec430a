// ABOUTME: Built-in synthetic rainfall dataset for demos and fallback
// ABOUTME: Seeded generator so every process serves identical sample data

package dataset

import (
	"context"
	"math"
	"math/rand"

	"github.com/Eswari2225/DropSaviors/backend/models"
)

const (
	sampleFirstYear = 2010
	sampleLastYear  = 2023
	sampleSeed      = 2010
)

var sampleStations = []struct {
	district string
	stations []string
}{
	{"Erode", []string{"Kodivery", "Bhavani", "Sathyamangalam"}},
	{"Chennai", []string{"Nungambakkam", "Meenambakkam", "Taramani"}},
	{"Coimbatore", []string{"Peelamedu", "Sulur", "Mettupalayam"}},
	{"Madurai", []string{"Airport", "Melur", "Usilampatti"}},
	{"Salem", []string{"Airport", "Mettur", "Yercaud"}},
}

// SampleSource generates twelve monthly readings per station-year.
type SampleSource struct {
	seed int64
}

func NewSampleSource() *SampleSource {
	return &SampleSource{seed: sampleSeed}
}

func (s *SampleSource) Name() string { return "sample" }

func (s *SampleSource) Load(ctx context.Context) ([]models.Observation, error) {
	rng := rand.New(rand.NewSource(s.seed))
	var out []models.Observation

	for _, d := range sampleStations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, station := range d.stations {
			for year := sampleFirstYear; year <= sampleLastYear; year++ {
				base := 8 + rng.Float64()*17
				for month := 0; month < 12; month++ {
					v := math.Max(0, base-5+rng.Float64()*15)
					out = append(out, models.Observation{
						District: d.district,
						Station:  station,
						Year:     year,
						Value:    math.Round(v*100) / 100,
					})
				}
			}
		}
	}
	return out, nil
}
