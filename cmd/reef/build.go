package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/driftware/reef/internal/storage"
	"github.com/driftware/reef/internal/ui"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the storefront for the Tide edge runtime",
	Long: `Run the project's bundler to produce a Tide edge runtime deployment.

The bundler command defaults to "` + storage.DefaultBuildCommand + `" and can be
overridden with build_command in .reefconfig.yaml. The build runs with an
explicit production environment; nothing is mutated in reef's own process
environment.`,
	RunE: runBuild,
}

var (
	buildPath       string
	buildSourcemaps bool
)

func init() {
	buildCmd.Flags().StringVar(&buildPath, "path", ".", "project root")
	buildCmd.Flags().BoolVar(&buildSourcemaps, "sourcemaps", false, "emit sourcemaps")
	rootCmd.AddCommand(buildCmd)
}

// buildEnv is the explicit environment handed to the bundler process.
type buildEnv struct {
	NodeEnv    string
	Sourcemaps bool
}

// environ returns the bundler process environment: the current environment
// plus the build settings, appended last so they win.
func (e buildEnv) environ() []string {
	env := append(os.Environ(), "NODE_ENV="+e.NodeEnv)
	if e.Sourcemaps {
		env = append(env, "TIDEPACK_SOURCEMAPS=1")
	}
	return env
}

func runBuild(cmd *cobra.Command, args []string) error {
	s, err := storage.Open(buildPath)
	if err != nil {
		return err
	}

	cfg, err := s.LoadConfig()
	if err != nil {
		return err
	}

	parts := strings.Fields(cfg.BuildCommand)
	if len(parts) == 0 {
		return fmt.Errorf("empty build_command in %s", s.ConfigPath())
	}

	start := time.Now()
	bundler := exec.CommandContext(cmd.Context(), parts[0], parts[1:]...)
	bundler.Dir = s.Root()
	bundler.Env = buildEnv{NodeEnv: "production", Sourcemaps: buildSourcemaps}.environ()
	bundler.Stdout = os.Stdout
	bundler.Stderr = os.Stderr

	if err := bundler.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("bundler exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run bundler: %w", err)
	}

	ui.Successf("Built in %s", time.Since(start).Round(time.Millisecond))
	return nil
}
