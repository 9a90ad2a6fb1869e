package main

import (
	"fmt"

	"github.com/driftware/reef/internal/storage"
	"github.com/driftware/reef/internal/ui"
	"github.com/spf13/cobra"
)

var unlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Remove this project's storefront link",
	RunE:  runUnlink,
}

var unlinkPath string

func init() {
	unlinkCmd.Flags().StringVar(&unlinkPath, "path", ".", "project root")
	rootCmd.AddCommand(unlinkCmd)
}

func runUnlink(cmd *cobra.Command, args []string) error {
	s, err := storage.Open(unlinkPath)
	if err != nil {
		return err
	}

	pf, err := s.LoadProject()
	if err != nil {
		return err
	}
	if !pf.Linked() {
		fmt.Println("This project is not linked to a storefront.")
		return nil
	}

	title := pf.Storefront.Title
	if err := s.ClearStorefront(); err != nil {
		return err
	}

	ui.Successf("Unlinked from %s", title)
	return nil
}
