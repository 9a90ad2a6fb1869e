// Package ops implements the business logic operations for reef commands.
package ops

import (
	"context"

	"github.com/driftware/reef/internal/cli"
	"github.com/driftware/reef/internal/model"
)

// Store defines the persistence interface required by link operations.
// The concrete implementation is storage.Storage, but this interface allows
// in-memory backends for testing.
type Store interface {
	Root() string
	LoadProject() (*model.ProjectFile, error)
	SaveStorefront(sf *model.Storefront) error
}

// StorefrontAPI defines the remote platform surface the orchestrator needs.
// The concrete implementation is api.Client.
type StorefrontAPI interface {
	ListStorefronts(ctx context.Context) ([]model.Storefront, error)
	CreateStorefront(ctx context.Context, title string) (*model.Storefront, string, error)
	WaitForJob(ctx context.Context, jobID string) error
}

// Prompter defines the interactive prompts link operations use.
// The concrete implementation is cli.Prompter.
type Prompter interface {
	Confirm(message string, def bool) (bool, error)
	Select(message string, options []string) (int, error)
	Input(message, def string) (string, error)
}

// LinkStatus classifies the outcome of a link attempt. Declined and
// not-found both produce no persisted change; callers attach their own
// diagnostics per status.
type LinkStatus int

const (
	// LinkStatusLinked means a storefront was resolved and persisted.
	LinkStatusLinked LinkStatus = iota
	// LinkStatusDeclined means the user declined to overwrite an existing link.
	LinkStatusDeclined
	// LinkStatusNotFound means the explicitly named storefront does not exist.
	LinkStatusNotFound
)

// LinkResult is the outcome of LinkStorefront. Storefront is set only when
// Status is LinkStatusLinked.
type LinkResult struct {
	Status     LinkStatus
	Storefront *model.Storefront
}

// LinkOptions controls LinkStorefront.
type LinkOptions struct {
	// Force skips the overwrite confirmation when already linked.
	Force bool
	// Storefront selects by exact title match instead of prompting.
	Storefront string
}

// createSentinel is the menu entry that routes to the creation pipeline.
const createSentinel = "Create a new storefront"

// LinkStorefront resolves a single storefront for the project and persists
// it as the project's link. The storefront list is fetched exactly once; the
// config is written at most once, and only after a selection fully resolves.
func LinkStorefront(ctx context.Context, store Store, client StorefrontAPI, p Prompter, r Reporter, opts LinkOptions) (*LinkResult, error) {
	pf, err := store.LoadProject()
	if err != nil {
		return nil, err
	}
	if pf.Shop == "" {
		// Fatal: surfaced to the user before any network call.
		return nil, &cli.ConfigurationError{
			Message: "no shop configured for this project",
			Hint:    "set `shop` in .reef/config.yaml or export REEF_SHOP",
		}
	}

	if pf.Linked() && !opts.Force {
		ok, err := p.Confirm("This project is already linked to "+pf.Storefront.Title+". Link it to a different storefront?", false)
		if err != nil {
			return nil, err
		}
		if !ok {
			// Idempotent no-op: nothing is written.
			return &LinkResult{Status: LinkStatusDeclined}, nil
		}
	}

	storefronts, err := client.ListStorefronts(ctx)
	if err != nil {
		return nil, err
	}

	var selected *model.Storefront
	if opts.Storefront != "" {
		// Branch 1: explicit name, exact case-sensitive title match.
		for i := range storefronts {
			if storefronts[i].Title == opts.Storefront {
				selected = &storefronts[i]
				break
			}
		}
		if selected == nil {
			return &LinkResult{Status: LinkStatusNotFound}, nil
		}
	} else {
		// Branch 2: interactive pick over the fetched list, plus a
		// sentinel entry that routes to the creation pipeline.
		options := make([]string, 0, len(storefronts)+1)
		for _, sf := range storefronts {
			options = append(options, sf.Title)
		}
		options = append(options, createSentinel)

		idx, err := p.Select("Select a storefront to link:", options)
		if err != nil {
			return nil, err
		}
		if idx == len(storefronts) {
			selected, err = CreateNewStorefront(ctx, store.Root(), client, p, r)
			if err != nil {
				return nil, err
			}
		} else {
			selected = &storefronts[idx]
		}
	}

	if err := store.SaveStorefront(selected); err != nil {
		return nil, err
	}
	return &LinkResult{Status: LinkStatusLinked, Storefront: selected}, nil
}
