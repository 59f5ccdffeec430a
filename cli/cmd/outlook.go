// ABOUTME: Outlook command for the rainwater CLI
// ABOUTME: Summarizes the forecast trend of every station in a district

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/Eswari2225/DropSaviors/cli/internal/client"
	"github.com/Eswari2225/DropSaviors/cli/internal/tui"
	"github.com/spf13/cobra"
)

var outlookCmd = &cobra.Command{
	Use:     "outlook <district>",
	Short:   "Show the rainfall trend for each station in a district",
	Example: `  rainwater outlook "The Nilgiris"`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context, w io.Writer) int {
			return runOutlook(ctx, w, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(outlookCmd)
}

func runOutlook(ctx context.Context, w io.Writer, district string) int {
	outlook, err := client.New(GetAPIURL()).Outlook(ctx, district)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		return writeJSON(w, outlook)
	}
	fmt.Fprintln(w, tui.RenderOutlook(outlook))
	return 0
}
