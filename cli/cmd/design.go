// ABOUTME: Design command for the rainwater CLI
// ABOUTME: Packs a harvest volume into catalogue units and costs the structure

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Eswari2225/DropSaviors/cli/internal/client"
	"github.com/Eswari2225/DropSaviors/cli/internal/tui"
	"github.com/spf13/cobra"
)

var (
	designHarvested  float64
	designSystemType string
	designMaterial   string
	designUnlined    bool
	designShape      string
	designLength     float64
	designWidth      float64
	designDepth      float64
	designDiameter   float64
	designHeight     float64
)

var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Size and cost a harvesting system",
	Long: `Split a harvested volume into catalogue tanks or recharge units and produce a
bill of quantities. Supplying a shape and its dimensions also costs a custom-built structure.`,
	Example: `  rainwater design --harvested 20000 --system-type "Storage Tank for Reuse"
  rainwater design --harvested 9000 --system-type "Recharge Shaft" --shape circular --diameter 2 --depth 3 --unlined`,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runDesign)
	},
}

func init() {
	f := designCmd.Flags()
	f.Float64Var(&designHarvested, "harvested", 0, "Harvested volume in liters")
	f.StringVar(&designSystemType, "system-type", "", "Structure type, e.g. \"Percolation Pit\" or \"Storage Tank for Reuse\"")
	f.StringVar(&designMaterial, "material", "", "Tank material (plastic or rcc)")
	f.BoolVar(&designUnlined, "unlined", false, "Recharge structure without PCC lining")
	f.StringVar(&designShape, "shape", "", "Custom structure shape (rectangular or circular); dimensions alone mean rectangular")
	f.Float64Var(&designLength, "length", 0, "Length in meters")
	f.Float64Var(&designWidth, "width", 0, "Width in meters")
	f.Float64Var(&designDepth, "depth", 0, "Depth in meters")
	f.Float64Var(&designDiameter, "diameter", 0, "Diameter in meters")
	f.Float64Var(&designHeight, "height", 0, "Height in meters")
	rootCmd.AddCommand(designCmd)
}

func runDesign(ctx context.Context, w io.Writer) int {
	input, err := designInputFromFlags()
	if err != nil {
		return fail(w, err)
	}

	design, err := client.New(GetAPIURL()).DesignSystem(ctx, input)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		return writeJSON(w, design)
	}
	fmt.Fprintln(w, tui.RenderDesign(design))
	return 0
}

// designInputFromFlags builds the request; zero-valued dimensions are omitted
func designInputFromFlags() (*client.DesignInput, error) {
	if designHarvested <= 0 {
		return nil, errors.New("--harvested must be greater than 0")
	}
	if designSystemType == "" {
		return nil, errors.New("--system-type is required")
	}

	input := &client.DesignInput{
		HarvestedLiters: designHarvested,
		SystemType:      designSystemType,
		Shape:           designShape,
		Material:        designMaterial,
	}
	if designUnlined {
		lined := false
		input.Lined = &lined
	}

	dims := map[string]float64{}
	for key, v := range map[string]float64{
		"length":   designLength,
		"width":    designWidth,
		"depth":    designDepth,
		"diameter": designDiameter,
		"height":   designHeight,
	} {
		if v != 0 {
			dims[key] = v
		}
	}
	if len(dims) > 0 || designShape != "" {
		input.Dimensions = dims
	}
	return input, nil
}
