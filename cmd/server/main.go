// Package main is the entry point for the combat API server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mythweaver",
	Short: "Mythweaver Combat API Server",
	Long:  `Mythweaver provides an HTTP API for running D&D 5e combat encounters: initiative, action economy, and spell slots.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
