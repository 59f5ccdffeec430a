// ABOUTME: Health command for the rainwater CLI
// ABOUTME: Checks backend connectivity and dataset status

package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Eswari2225/DropSaviors/cli/internal/client"
	"github.com/Eswari2225/DropSaviors/cli/internal/tui/widgets"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the rainwater backend and report which rainfall dataset it has loaded.`,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(runHealth)
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := client.New(url)

	resp, err := c.Health(ctx)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		writeJSON(w, healthOutput{Backend: url, HealthResponse: resp})
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
	}

	if resp.Status != "ok" {
		return 1
	}
	return 0
}

type healthOutput struct {
	Backend string `json:"backend"`
	*client.HealthResponse
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *client.HealthResponse) string {
	level := widgets.StatusOK
	if resp.Status != "ok" {
		level = widgets.StatusCritical
	}
	loaded := "never"
	if !resp.Dataset.LoadedAt.IsZero() {
		loaded = resp.Dataset.LoadedAt.Local().Format(time.RFC3339)
	}
	return fmt.Sprintf(`Backend:      %s
Status:       %s %s
Dataset:      %s
Districts:    %d
Stations:     %d
Observations: %d
Loaded:       %s
Forecasts:    %d cached`, url, widgets.StatusBadge(level), resp.Status, resp.Dataset.Source, resp.Dataset.Districts,
		resp.Dataset.Stations, resp.Dataset.Observations, loaded, resp.Cache.ForecastEntries)
}
