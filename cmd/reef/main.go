// Package main is the entry point for the reef CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reef",
	Short: "reef - build and link storefronts on the Tide edge runtime",
	Long: `reef is a toolchain for e-commerce storefronts hosted on the Shopwave
platform. It scaffolds projects from platform templates, links a local
project to exactly one remote storefront, and runs the bundler that
produces Tide edge runtime deployments.

A linked project records its storefront in .reef/config.yaml. Session
material comes from the environment: REEF_API_TOKEN (required) and
REEF_API_URL (optional endpoint override).`,
	Version: Version,
	// Show help when no subcommand is provided
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Set version template
	rootCmd.SetVersionTemplate("reef version {{.Version}}\n")
}
