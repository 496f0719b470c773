// Package main provides the entry point for the GigMatch skill-matching service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gigmatch",
	Short: "GigMatch skill-matching and ranking service",
	Long:  "GigMatch scores gig applicants against required skill sets using fuzzy skill matching and serves gig, user, and dashboard endpoints over REST.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
