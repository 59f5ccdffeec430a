// ABOUTME: Root command for the rainwater CLI
// ABOUTME: Handles global flags, configuration and shared output helpers

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8080"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "rainwater",
	Short: "CLI for the rainwater harvesting estimator",
	Long: `rainwater is a command-line interface for the rainwater harvesting backend.

It forecasts station rainfall, estimates how much a roof can harvest and
sizes and costs a storage tank or recharge structure for it.

Environment Variables:
  RAINWATER_API_URL  Backend API URL (default: http://localhost:8080)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides RAINWATER_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("RAINWATER_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// runWithSignals runs fn with a context canceled on SIGINT/SIGTERM and exits
// with its code when non-zero.
func runWithSignals(fn func(ctx context.Context, w io.Writer) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := fn(ctx, os.Stdout)
	cancel()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v interface{}) int {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(w, string(data))
	return 0
}

// fail prints err and returns the error exit code
func fail(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	return 1
}
