// ABOUTME: Forecast command for the rainwater CLI
// ABOUTME: Prints a station's projected yearly rainfall as a table and sparkline

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
	forecastDistrict string
	forecastStation  string
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast yearly rainfall for a station",
	Long:  `Fit the station's yearly history and print the projected rainfall for each forecast year.`,
	Example: `  rainwater forecast --district Erode --station Bhavani
  rainwater forecast --district Erode --station Bhavani --json`,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runForecast)
	},
}

func init() {
	forecastCmd.Flags().StringVar(&forecastDistrict, "district", "", "District name (required)")
	forecastCmd.Flags().StringVar(&forecastStation, "station", "", "Station name (required)")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(ctx context.Context, w io.Writer) int {
	if forecastDistrict == "" || forecastStation == "" {
		return fail(w, errors.New("--district and --station are required"))
	}

	fc, err := client.New(GetAPIURL()).Forecast(ctx, forecastDistrict, forecastStation)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		return writeJSON(w, fc)
	}
	fmt.Fprintln(w, tui.RenderForecast(fc))
	return 0
}
