package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag     string
	creatorFlag string
	rootCmd     = &cobra.Command{
		Use:   "fanctl",
		Short: "CLI client for the fanpulse REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Fanpulse service base URL")
	rootCmd.PersistentFlags().StringVarP(&creatorFlag, "creator", "c", "", "Creator ID (required)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
