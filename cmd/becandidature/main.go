// Package main provides the entry point for the BeCandidature server and tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "becandidature",
	Short: "BeCandidature job application tracker",
	Long:  "BeCandidature tracks job applications: REST API with accounts and follow-up scheduling, spreadsheet import, and draft extraction from pasted emails or job posting URLs.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
