/*
 * config.go, part of gorex.
 *
 * Copyright 2024 The goRex Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package config handles the configuration of the goRex analysis.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	rex "github.com/rmera/gorex"
	"github.com/rmera/gorex/chemstat"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	NBlocks              int                `yaml:"nblocks"`
	NBins                int                `yaml:"nbins"`
	Torsions             []TorsionConfig    `yaml:"torsions"`
	ShowTransitionMatrix bool               `yaml:"show_transition_matrix"`
	Inefficiency         InefficiencyConfig `yaml:"inefficiency"`
	Plots                PlotsConfig        `yaml:"plots"`
	LaTeX                bool               `yaml:"latex"`

	// If true, coordinates are not read, and no torsion is analyzed.
	SkipPositions bool `yaml:"skip_positions"`

	// Number of archives analyzed concurrently.
	Workers int `yaml:"workers"`
}

// TorsionConfig defines a dihedral angle by the indexes (from 0)
// of its 4 atoms.
type TorsionConfig struct {
	Name  string `yaml:"name"`
	Atoms [4]int `yaml:"atoms"`
}

// InefficiencyConfig holds the statistical inefficiency settings.
type InefficiencyConfig struct {
	Fast    bool `yaml:"fast"`
	MinTime int  `yaml:"mintime"`
}

// PlotsConfig holds plot settings. An empty Dir disables plots.
type PlotsConfig struct {
	Dir         string `yaml:"dir"`
	MaxReplicas int    `yaml:"max_replicas"`
}

// Default returns the default configuration. The default torsions are
// the phi and psi angles of alanine dipeptide, with the atom order of
// the usual 22-atom topology.
func Default() *Config {
	return &Config{
		NBlocks: rex.DefaultBlocks,
		NBins:   rex.DefaultBins,
		Torsions: []TorsionConfig{
			{Name: "phi", Atoms: [4]int{4, 6, 8, 14}},
			{Name: "psi", Atoms: [4]int{6, 8, 14, 16}},
		},
		Inefficiency: InefficiencyConfig{MinTime: chemstat.DefaultMinTime},
		Plots:        PlotsConfig{MaxReplicas: 8},
		LaTeX:        true,
		Workers:      1,
	}
}

// Load loads configuration from a file, on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns the default if path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration, and returns all the problems
// found, joined, or nil.
func (c *Config) Validate() error {
	var errs []error
	if c.NBlocks < 1 {
		errs = append(errs, fmt.Errorf("nblocks must be positive, got %d", c.NBlocks))
	}
	if c.NBins < 2 {
		errs = append(errs, fmt.Errorf("nbins must be at least 2, got %d", c.NBins))
	}
	if c.Inefficiency.MinTime < 0 {
		errs = append(errs, fmt.Errorf("inefficiency.mintime can't be negative, got %d", c.Inefficiency.MinTime))
	}
	if c.Plots.MaxReplicas < 1 {
		errs = append(errs, fmt.Errorf("plots.max_replicas must be positive, got %d", c.Plots.MaxReplicas))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	names := make(map[string]bool, len(c.Torsions))
	for i, t := range c.Torsions {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("torsion %d has no name", i))
		} else if names[t.Name] {
			errs = append(errs, fmt.Errorf("torsion name %q repeated", t.Name))
		}
		names[t.Name] = true
		seen := make(map[int]bool, 4)
		for _, a := range t.Atoms {
			if a < 0 {
				errs = append(errs, fmt.Errorf("torsion %q has negative atom index %d", t.Name, a))
			}
			if seen[a] {
				errs = append(errs, fmt.Errorf("torsion %q repeats atom %d", t.Name, a))
			}
			seen[a] = true
		}
	}
	return errors.Join(errs...)
}

// RexTorsions returns the torsions to analyze.
func (c *Config) RexTorsions() []rex.Torsion {
	ret := make([]rex.Torsion, len(c.Torsions))
	for i, t := range c.Torsions {
		ret[i] = rex.Torsion{Name: t.Name, Atoms: t.Atoms}
	}
	return ret
}

// InefficiencyOptions returns the options for the statistical
// inefficiency estimators.
func (c *Config) InefficiencyOptions() chemstat.Options {
	return chemstat.Options{Fast: c.Inefficiency.Fast, MinTime: c.Inefficiency.MinTime}
}
