// ABOUTME: Assess command for the rainwater CLI
// ABOUTME: Estimates a roof's harvest and recommends a structure, from flags or a wizard

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Eswari2225/DropSaviors/cli/internal/client"
	"github.com/Eswari2225/DropSaviors/cli/internal/tui"
	"github.com/Eswari2225/DropSaviors/cli/internal/tui/styles"
	"github.com/spf13/cobra"
)

var (
	assessDistrict    string
	assessStation     string
	assessRoofType    string
	assessRoofArea    float64
	assessNoOpenSpace bool
	assessOpenArea    float64
	assessInteractive bool
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess a roof for rainwater harvesting",
	Long: `Estimate the yearly harvest of a roof from the station's peak forecast rainfall,
then recommend a storage tank or recharge structure and cost it.

Use --interactive to pick the location and roof in a guided form.`,
	Example: `  rainwater assess --district Erode --station Bhavani --roof-area 120
  rainwater assess --district Erode --station Bhavani --roof-type tile --roof-area 80 --no-open-space
  rainwater assess --interactive`,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runAssess)
	},
}

func init() {
	assessCmd.Flags().StringVar(&assessDistrict, "district", "", "District name")
	assessCmd.Flags().StringVar(&assessStation, "station", "", "Station name")
	assessCmd.Flags().StringVar(&assessRoofType, "roof-type", "concrete", "Roof type (concrete, tile, asbestos, thatch)")
	assessCmd.Flags().Float64Var(&assessRoofArea, "roof-area", 0, "Roof area in square meters")
	assessCmd.Flags().BoolVar(&assessNoOpenSpace, "no-open-space", false, "Site has no open ground for a recharge structure")
	assessCmd.Flags().Float64Var(&assessOpenArea, "open-area", 0, "Open ground area in square meters")
	assessCmd.Flags().BoolVarP(&assessInteractive, "interactive", "i", false, "Collect the inputs with a guided form")
	rootCmd.AddCommand(assessCmd)
}

func runAssess(ctx context.Context, w io.Writer) int {
	c := client.New(GetAPIURL())

	var (
		result *client.Assessment
		err    error
	)
	if assessInteractive {
		result, err = assessInteractively(ctx, c)
		if errors.Is(err, tui.ErrCancelled) {
			fmt.Fprintln(w, "Assessment cancelled")
			return 1
		}
	} else {
		var input *client.AssessmentInput
		if input, err = assessInputFromFlags(); err == nil {
			result, err = c.Assess(ctx, input)
		}
	}
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		return writeJSON(w, result)
	}
	fmt.Fprintln(w, styles.Panel.Render(tui.RenderAssessment(result)))
	return 0
}

func assessInteractively(ctx context.Context, c *client.Client) (*client.Assessment, error) {
	meta, err := c.Meta(ctx)
	if err != nil {
		return nil, err
	}
	return tui.Run(ctx, c, meta)
}

// assessInputFromFlags validates the assess flags into a request body
func assessInputFromFlags() (*client.AssessmentInput, error) {
	var missing []string
	if assessDistrict == "" {
		missing = append(missing, "--district")
	}
	if assessStation == "" {
		missing = append(missing, "--station")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s required (or use --interactive)", strings.Join(missing, " and "))
	}
	if assessRoofArea <= 0 {
		return nil, errors.New("--roof-area must be greater than 0")
	}
	if assessOpenArea < 0 {
		return nil, errors.New("--open-area cannot be negative")
	}

	input := &client.AssessmentInput{
		District:     assessDistrict,
		Station:      assessStation,
		RoofType:     assessRoofType,
		RoofAreaM2:   assessRoofArea,
		HasOpenSpace: !assessNoOpenSpace,
	}
	if input.HasOpenSpace {
		input.OpenAreaM2 = assessOpenArea
	}
	return input, nil
}
