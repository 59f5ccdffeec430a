// ABOUTME: Unit rates, runoff coefficients and component catalogues
// ABOUTME: Ships an embedded default; a YAML file may replace it at startup

package ratecard

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Eswari2225/DropSaviors/backend/models"
)

//go:embed ratecard.yaml
var defaultYAML []byte

// Runoff maps roof material to the fraction of rainfall collected.
type Runoff struct {
	Default      float64            `yaml:"default"`
	Coefficients map[string]float64 `yaml:"coefficients"`
}

// Costs holds unit prices in whole currency units.
type Costs struct {
	TankPerLiterPlastic   float64 `yaml:"tank_per_l_plastic"`
	TankPerLiterRCC       float64 `yaml:"tank_per_l_rcc"`
	TankInstallUnit       float64 `yaml:"tank_install_unit"`
	RCCInstallUnit        float64 `yaml:"rcc_install_unit"`
	PipeFittings          float64 `yaml:"pipe_fittings"`
	FirstFlush            float64 `yaml:"first_flush"`
	LabourSystem          float64 `yaml:"labour_system"`
	FilterUnit            float64 `yaml:"filter_unit"`
	ExcavationPerM3       float64 `yaml:"excavation_per_m3"`
	PCCLiningPerM3        float64 `yaml:"pcc_lining_per_m3"`
	FilterMediaPerUnit    float64 `yaml:"filter_media_per_unit"`
	LabourRechargePerUnit float64 `yaml:"labour_recharge_per_unit"`
	GravelPerM3           float64 `yaml:"gravel_per_m3"`
	SandPerM3             float64 `yaml:"sand_per_m3"`
	CharcoalPerUnit       float64 `yaml:"charcoal_per_unit"`
	CementPerBag          float64 `yaml:"cement_per_bag"`
	SandPerCum            float64 `yaml:"sand_per_cum"`
	AggregatePerCum       float64 `yaml:"aggregate_per_cum"`
	BricksPer1000         float64 `yaml:"bricks_per_1000"`
	SteelPerKg            float64 `yaml:"steel_per_kg"`
	PlumbingFittings      float64 `yaml:"plumbing_fittings"`
}

// Catalogues lists the standard sizes the packer may choose from.
type Catalogues struct {
	Tank     []models.ComponentOption `yaml:"tank"`
	Recharge []models.ComponentOption `yaml:"recharge"`
}

type RateCard struct {
	Runoff     Runoff     `yaml:"runoff"`
	Costs      Costs      `yaml:"costs"`
	Catalogues Catalogues `yaml:"catalogues"`
}

// Default returns a fresh copy of the embedded rate card.
func Default() *RateCard {
	card, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded rate card is invalid: %v", err))
	}
	return card
}

// Load reads a rate card from path. An empty path returns Default().
func Load(path string) (*RateCard, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rate card: %w", err)
	}
	card, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rate card %s: %w", path, err)
	}
	return card, nil
}

// Parse decodes and validates YAML. Unknown keys are rejected so a typo in
// an override file cannot silently zero a rate.
func Parse(data []byte) (*RateCard, error) {
	var card RateCard
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&card); err != nil {
		return nil, fmt.Errorf("parsing rate card: %w", err)
	}

	normalized := make(map[string]float64, len(card.Runoff.Coefficients))
	for material, coeff := range card.Runoff.Coefficients {
		normalized[strings.ToLower(strings.TrimSpace(material))] = coeff
	}
	card.Runoff.Coefficients = normalized

	if err := card.Validate(); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *RateCard) Validate() error {
	if !validCoefficient(c.Runoff.Default) {
		return fmt.Errorf("default runoff coefficient %v must be in (0, 1]", c.Runoff.Default)
	}
	for material, coeff := range c.Runoff.Coefficients {
		if !validCoefficient(coeff) {
			return fmt.Errorf("runoff coefficient for %q is %v, must be in (0, 1]", material, coeff)
		}
	}

	for name, rate := range c.Costs.rates() {
		if rate < 0 {
			return fmt.Errorf("cost %s must not be negative, got %v", name, rate)
		}
	}

	for name, options := range map[string][]models.ComponentOption{
		"tank":     c.Catalogues.Tank,
		"recharge": c.Catalogues.Recharge,
	} {
		if len(options) == 0 {
			return fmt.Errorf("%s catalogue: %w", name, models.ErrEmptyCatalogue)
		}
		for _, opt := range options {
			if opt.UnitVolumeLiters <= 0 {
				return fmt.Errorf("%s catalogue option %q has non-positive volume %v", name, opt.Label, opt.UnitVolumeLiters)
			}
		}
	}
	return nil
}

// RoofTypes lists materials with a known coefficient, sorted.
func (c *RateCard) RoofTypes() []string {
	types := make([]string, 0, len(c.Runoff.Coefficients))
	for material := range c.Runoff.Coefficients {
		types = append(types, material)
	}
	sort.Strings(types)
	return types
}

func validCoefficient(v float64) bool {
	return v > 0 && v <= 1
}

func (c Costs) rates() map[string]float64 {
	return map[string]float64{
		"tank_per_l_plastic":       c.TankPerLiterPlastic,
		"tank_per_l_rcc":           c.TankPerLiterRCC,
		"tank_install_unit":        c.TankInstallUnit,
		"rcc_install_unit":         c.RCCInstallUnit,
		"pipe_fittings":            c.PipeFittings,
		"first_flush":              c.FirstFlush,
		"labour_system":            c.LabourSystem,
		"filter_unit":              c.FilterUnit,
		"excavation_per_m3":        c.ExcavationPerM3,
		"pcc_lining_per_m3":        c.PCCLiningPerM3,
		"filter_media_per_unit":    c.FilterMediaPerUnit,
		"labour_recharge_per_unit": c.LabourRechargePerUnit,
		"gravel_per_m3":            c.GravelPerM3,
		"sand_per_m3":              c.SandPerM3,
		"charcoal_per_unit":        c.CharcoalPerUnit,
		"cement_per_bag":           c.CementPerBag,
		"sand_per_cum":             c.SandPerCum,
		"aggregate_per_cum":        c.AggregatePerCum,
		"bricks_per_1000":          c.BricksPer1000,
		"steel_per_kg":             c.SteelPerKg,
		"plumbing_fittings":        c.PlumbingFittings,
	}
}
