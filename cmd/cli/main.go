// Package main is the entry point for the ratecard CLI.
package main

import (
	"os"

	"github.com/expertlane/ratecard/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
