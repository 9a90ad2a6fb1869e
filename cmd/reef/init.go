package main

import (
	"fmt"
	"io"
	"os"

	"github.com/driftware/reef/internal/api"
	"github.com/driftware/reef/internal/cli"
	"github.com/driftware/reef/internal/scaffold"
	"github.com/driftware/reef/internal/storage"
	"github.com/driftware/reef/internal/ui"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a new storefront project",
	Long: `Download a platform template and create a .reef/ directory for it.

The shop comes from --shop, ` + envShop + `, or default_shop in .reefconfig.yaml.
Run ` + "`reef link`" + ` afterwards to attach the project to a storefront.

Fails if .reef/ already exists in the target directory.`,
	RunE: runInit,
}

var (
	initTemplate string
	initShop     string
	initPath     string
)

func init() {
	initCmd.Flags().StringVar(&initTemplate, "template", "tide-starter", "platform template to scaffold from")
	initCmd.Flags().StringVar(&initShop, "shop", os.Getenv(envShop), "shop domain (also "+envShop+")")
	initCmd.Flags().StringVar(&initPath, "path", ".", "directory to scaffold into")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	// Refuse before downloading anything: extraction into an existing
	// project would clobber its files.
	if storage.Exists(initPath) {
		return fmt.Errorf(".reef/ directory already exists in %s", initPath)
	}

	cfg, err := storage.LoadConfigDir(initPath)
	if err != nil {
		return err
	}
	shop, err := resolveInitShop(initShop, cfg)
	if err != nil {
		return err
	}
	token := os.Getenv(envAPIToken)
	if token == "" {
		return &cli.ConfigurationError{
			Message: "not logged in to the platform",
			Hint:    "export " + envAPIToken + " with a platform access token",
		}
	}

	client := api.NewClient(apiBaseURL(cfg), api.Session{Shop: shop, Token: token})

	// Stage the tarball to a temp file so the archive can be walked twice:
	// once to size the progress bar, once to extract.
	tarball, err := client.DownloadTemplate(cmd.Context(), initTemplate)
	if err != nil {
		return err
	}
	defer tarball.Close()

	tmp, err := os.CreateTemp("", "reef-template-*.tgz")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, tarball); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save template: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}

	total, err := countTemplateFiles(tmpPath)
	if err != nil {
		return err
	}

	f, err := os.Open(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to reopen template: %w", err)
	}
	defer f.Close()

	bar := ui.NewProgressBar(total, "Extracting "+initTemplate)
	err = scaffold.ExtractTemplate(f, initPath, func(string) {
		bar.Add(1)
	})
	if err != nil {
		return err
	}

	if _, err := storage.Init(initPath, shop); err != nil {
		return err
	}

	ui.Successf("Scaffolded %s in %s", initTemplate, initPath)
	ui.Mutedf("Run `reef link` to attach a storefront.")
	return nil
}

// resolveInitShop picks the shop for the new project: the --shop flag
// (or its env default), then default_shop from the user config.
func resolveInitShop(flagShop string, cfg *storage.Config) (string, error) {
	if flagShop != "" {
		return flagShop, nil
	}
	if cfg.DefaultShop != "" {
		return cfg.DefaultShop, nil
	}
	return "", &cli.ConfigurationError{
		Message: "no shop specified",
		Hint:    "pass --shop <domain>, export " + envShop + ", or set default_shop in .reefconfig.yaml",
	}
}

func countTemplateFiles(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open template: %w", err)
	}
	defer f.Close()
	return scaffold.CountFiles(f)
}
