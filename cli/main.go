// ABOUTME: Entry point for the rainwater CLI
// ABOUTME: Forecasts rainfall and sizes harvesting structures against the backend API

package main

import (
	"fmt"
	"os"

	"github.com/Eswari2225/DropSaviors/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
