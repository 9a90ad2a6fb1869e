package main

import (
	"os"
	"path/filepath"

	"github.com/driftware/reef/internal/api"
	"github.com/driftware/reef/internal/cli"
	"github.com/driftware/reef/internal/model"
	"github.com/driftware/reef/internal/storage"
)

// Environment variables consumed by reef commands.
const (
	envAPIToken   = "REEF_API_TOKEN"
	envAPIURL     = "REEF_API_URL"
	envShop       = "REEF_SHOP"
	envStorefront = "REEF_STOREFRONT"
)

// buildSession assembles an authenticated session for the project.
// The shop comes from project config; the token from the environment.
func buildSession(pf *model.ProjectFile) (api.Session, error) {
	if pf.Shop == "" {
		return api.Session{}, &cli.ConfigurationError{
			Message: "no shop configured for this project",
			Hint:    "set `shop` in .reef/config.yaml or re-run `reef init --shop <domain>`",
		}
	}

	token := os.Getenv(envAPIToken)
	if token == "" {
		return api.Session{}, &cli.ConfigurationError{
			Message: "not logged in to the platform",
			Hint:    "export " + envAPIToken + " with a platform access token",
		}
	}

	return api.Session{Shop: pf.Shop, Token: token}, nil
}

// apiBaseURL resolves the platform endpoint: env override, then user
// config, then the default.
func apiBaseURL(cfg *storage.Config) string {
	if url := os.Getenv(envAPIURL); url != "" {
		return url
	}
	if cfg != nil && cfg.APIURL != "" {
		return cfg.APIURL
	}
	return storage.DefaultAPIURL
}

// detectPackageManager sniffs the project's lockfiles to pick the package
// manager used in next-step hints.
func detectPackageManager(root string) string {
	for _, probe := range []struct {
		lockfile string
		pm       string
	}{
		{"pnpm-lock.yaml", "pnpm"},
		{"yarn.lock", "yarn"},
		{"package-lock.json", "npm"},
	} {
		if _, err := os.Stat(filepath.Join(root, probe.lockfile)); err == nil {
			return probe.pm
		}
	}
	return "npm"
}

// devCommand returns the dev-server invocation for a package manager.
func devCommand(pm string) string {
	switch pm {
	case "yarn":
		return "yarn dev"
	case "pnpm":
		return "pnpm dev"
	default:
		return "npm run dev"
	}
}
