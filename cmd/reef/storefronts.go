package main

import (
	"fmt"
	"os"

	"github.com/driftware/reef/internal/api"
	"github.com/driftware/reef/internal/cli"
	"github.com/driftware/reef/internal/storage"
	"github.com/spf13/cobra"
)

var storefrontsCmd = &cobra.Command{
	Use:   "storefronts",
	Short: "List the shop's storefronts",
	Long: `List all storefronts on the shop configured in .reef/config.yaml.

The currently linked storefront is marked with an asterisk.`,
	RunE: runStorefronts,
}

var storefrontsPath string

func init() {
	storefrontsCmd.Flags().StringVar(&storefrontsPath, "path", ".", "project root")
	rootCmd.AddCommand(storefrontsCmd)
}

func runStorefronts(cmd *cobra.Command, args []string) error {
	s, err := storage.Open(storefrontsPath)
	if err != nil {
		return err
	}

	pf, err := s.LoadProject()
	if err != nil {
		return err
	}
	session, err := buildSession(pf)
	if err != nil {
		return err
	}
	cfg, err := s.LoadConfig()
	if err != nil {
		return err
	}

	client := api.NewClient(apiBaseURL(cfg), session)
	storefronts, err := client.ListStorefronts(cmd.Context())
	if err != nil {
		return err
	}

	if len(storefronts) == 0 {
		fmt.Println("No storefronts found.")
		return nil
	}

	table := cli.NewTable()
	table.SetMaxWidth(1, cli.DefaultMaxTitleWidth)
	for _, sf := range storefronts {
		marker := " "
		if pf.Linked() && pf.Storefront.ID == sf.ID {
			marker = "*"
		}
		table.AddRow(marker, sf.Title, sf.ID, sf.ProductionURL)
	}
	table.Render(os.Stdout)
	return nil
}
