// ABOUTME: Stations command for the rainwater CLI
// ABOUTME: Lists districts, or the stations of one district

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Eswari2225/DropSaviors/cli/internal/client"
	"github.com/Eswari2225/DropSaviors/cli/internal/tui/styles"
	"github.com/spf13/cobra"
)

var stationsCmd = &cobra.Command{
	Use:   "stations [district]",
	Short: "List districts and rain gauge stations",
	Long: `List every district the backend has observations for, with its station count.
Given a district, list the stations in it instead.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		district := ""
		if len(args) == 1 {
			district = args[0]
		}
		runWithSignals(func(ctx context.Context, w io.Writer) int {
			return runStations(ctx, w, district)
		})
	},
}

func init() {
	rootCmd.AddCommand(stationsCmd)
}

// runStations prints districts, or the stations of district when given
func runStations(ctx context.Context, w io.Writer, district string) int {
	meta, err := client.New(GetAPIURL()).Meta(ctx)
	if err != nil {
		return fail(w, err)
	}

	if district == "" {
		if IsJSONOutput() {
			return writeJSON(w, meta.Stations)
		}
		for _, d := range meta.Districts {
			fmt.Fprintln(w, styles.KeyValue(d, fmt.Sprintf("%d stations", len(meta.Stations[d]))))
		}
		return 0
	}

	stations, ok := lookupDistrict(meta, district)
	if !ok {
		return fail(w, fmt.Errorf("unknown district %q", district))
	}
	if IsJSONOutput() {
		return writeJSON(w, stations)
	}
	for _, s := range stations {
		fmt.Fprintln(w, s)
	}
	return 0
}

// lookupDistrict matches district names case-insensitively
func lookupDistrict(meta *client.Meta, district string) ([]string, bool) {
	for name, stations := range meta.Stations {
		if strings.EqualFold(name, district) {
			return stations, true
		}
	}
	return nil, false
}
