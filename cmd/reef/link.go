package main

import (
	"os"

	"github.com/driftware/reef/internal/api"
	"github.com/driftware/reef/internal/cli"
	"github.com/driftware/reef/internal/model"
	"github.com/driftware/reef/internal/ops"
	"github.com/driftware/reef/internal/storage"
	"github.com/driftware/reef/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this project to a remote storefront",
	Long: `Link the project to exactly one storefront on the shop configured in
.reef/config.yaml.

Without --storefront, presents an interactive picker over the shop's
storefronts plus the option to create a new one. Creating a storefront
also waits for its API tokens to finish provisioning.

If the project is already linked, asks before overwriting unless --force
is given. Declining leaves the link untouched and exits 0. An explicit
--storefront with no exact title match prints a warning and exits 0.

Examples:
  reef link
  reef link --force
  reef link --storefront "My Cool Shop"
  reef link --path ../other-project`,
	RunE: runLink,
}

var (
	linkForce      bool
	linkPath       string
	linkStorefront string
)

func init() {
	linkCmd.Flags().BoolVarP(&linkForce, "force", "f", false, "overwrite an existing link without asking")
	linkCmd.Flags().StringVar(&linkPath, "path", ".", "project root")
	linkCmd.Flags().StringVar(&linkStorefront, "storefront", os.Getenv(envStorefront),
		"link to the storefront with this exact title (also "+envStorefront+")")
	rootCmd.AddCommand(linkCmd)
}

func runLink(cmd *cobra.Command, args []string) error {
	s, err := storage.Open(linkPath)
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

	// Both the picker and the overwrite confirmation read from stdin;
	// refuse up front rather than hang a script on a hidden prompt.
	if linkNeedsPrompt(pf, linkForce, linkStorefront) && !cli.IsTerminal(os.Stdin) {
		return &cli.ConfigurationError{
			Message: "interactive input required but stdin is not a terminal",
			Hint:    "pass --storefront <title>, and --force if the project is already linked",
		}
	}

	client := api.NewClient(apiBaseURL(cfg), session)
	ctx := cmd.Context()

	// Session validation and package-manager detection are independent;
	// run them concurrently and join before orchestration starts.
	var pm string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.Ping(gctx)
	})
	g.Go(func() error {
		pm = detectPackageManager(s.Root())
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	result, err := ops.LinkStorefront(ctx, s, client, cli.StdPrompter(), &ui.PhaseReporter{}, ops.LinkOptions{
		Force:      linkForce,
		Storefront: linkStorefront,
	})
	if err != nil {
		return err
	}

	switch result.Status {
	case ops.LinkStatusDeclined:
		// Existing link kept; nothing to report.
		return nil
	case ops.LinkStatusNotFound:
		ui.Warnf("no storefront titled %q on %s", linkStorefront, session.Shop)
		ui.Mutedf("Run `reef storefronts` to see what exists.")
		return nil
	}

	ui.Successf("Linked to %s", result.Storefront.Title)
	ui.Mutedf("Run `%s` to start developing.", devCommand(pm))
	return nil
}

// linkNeedsPrompt reports whether a link invocation would have to ask the
// user something: pick a storefront, or confirm overwriting an existing link.
func linkNeedsPrompt(pf *model.ProjectFile, force bool, storefront string) bool {
	if storefront == "" {
		return true
	}
	return pf.Linked() && !force
}
