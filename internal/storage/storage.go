// Package storage provides file system operations for .reef/ directories.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/driftware/reef/internal/model"
	"gopkg.in/yaml.v3"
)

const (
	// reefDir is the name of the reef directory.
	reefDir = ".reef"
	// configFile is the name of the config file within .reef/.
	configFile = "config.yaml"
)

// Storage provides access to a .reef/ directory.
type Storage struct {
	root string // path to directory containing .reef/
}

// Open returns a Storage for the given directory.
// Returns error if .reef/ does not exist.
func Open(dir string) (*Storage, error) {
	reefPath := filepath.Join(dir, reefDir)
	info, err := os.Stat(reefPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(".reef/ directory not found in %s (run `reef init` first)", dir)
		}
		return nil, fmt.Errorf("failed to access .reef/: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(".reef is not a directory")
	}

	return &Storage{root: dir}, nil
}

// Init creates .reef/ with a config file for the given shop.
// Returns error if .reef/ already exists.
func Init(dir string, shop string) (*Storage, error) {
	reefPath := filepath.Join(dir, reefDir)

	// Check if .reef/ already exists
	if _, err := os.Stat(reefPath); err == nil {
		return nil, fmt.Errorf(".reef/ directory already exists in %s", dir)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check for .reef/: %w", err)
	}

	if err := os.MkdirAll(reefPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .reef/: %w", err)
	}

	s := &Storage{root: dir}
	pf := &model.ProjectFile{Version: 1, Shop: shop}
	if err := s.SaveProject(pf); err != nil {
		// Clean up on failure
		os.RemoveAll(reefPath)
		return nil, fmt.Errorf("failed to write config.yaml: %w", err)
	}

	return s, nil
}

// Exists checks if dir already contains a .reef/ directory.
func Exists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, reefDir))
	return err == nil && info.IsDir()
}

// Root returns the root directory containing .reef/.
func (s *Storage) Root() string {
	return s.root
}

// ReefPath returns the path to the .reef/ directory.
func (s *Storage) ReefPath() string {
	return filepath.Join(s.root, reefDir)
}

// configPath returns the path to .reef/config.yaml.
func (s *Storage) configPath() string {
	return filepath.Join(s.root, reefDir, configFile)
}

// LoadProject loads the project config from .reef/config.yaml.
func (s *Storage) LoadProject() (*model.ProjectFile, error) {
	path := s.configPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config.yaml not found in %s", s.ReefPath())
		}
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	var pf model.ProjectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse config.yaml: %w", err)
	}

	return &pf, nil
}

// SaveProject writes the project config to .reef/config.yaml.
func (s *Storage) SaveProject(pf *model.ProjectFile) error {
	data, err := yaml.Marshal(pf)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(s.configPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write config.yaml: %w", err)
	}
	return nil
}

// SaveStorefront records the given storefront as the project's link.
// This is the single config write a link invocation performs.
func (s *Storage) SaveStorefront(sf *model.Storefront) error {
	pf, err := s.LoadProject()
	if err != nil {
		return err
	}
	pf.Storefront = &model.LinkedStorefront{ID: sf.ID, Title: sf.Title}
	return s.SaveProject(pf)
}

// ClearStorefront removes the project's link, if any.
func (s *Storage) ClearStorefront() error {
	pf, err := s.LoadProject()
	if err != nil {
		return err
	}
	if pf.Storefront == nil {
		return nil
	}
	pf.Storefront = nil
	return s.SaveProject(pf)
}
