// Package config holds flowmine's tunable knobs (spec.md §6): the
// blue-fringe divergence threshold, the guard-search window bound,
// the inductive-miner bootstrap switch, and log downsampling — plus
// loading them from a YAML file on disk.
//
// Grounded on codenerd's internal/config/config.go: a yaml-tagged
// struct, a DefaultConfig constructor, and Load/Save against a path
// rather than a fixed well-known location. cmd/flowmine has no config
// flag and does not call Load: its subcommands take the same knobs as
// their own flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds every knob spec.md §6 names.
type Config struct {
	// DivergenceThreshold is the blue-fringe merge threshold θ ∈ [0,1]
	// (spec.md §4.D); raising it yields fewer merges and a larger
	// EFSM.
	DivergenceThreshold float64 `yaml:"divergence_threshold"`

	// MaxConjuncts bounds guard-search window length k (spec.md §4.E);
	// raising it yields longer, more specific guards.
	MaxConjuncts int `yaml:"max_conjuncts"`

	// UseInductiveMiner bypasses PTA construction and blue-fringe
	// merging, deriving EFSM states directly from an
	// externally-discovered Petri net's places with all-true guards
	// (spec.md §4's bootstrapping mode).
	UseInductiveMiner bool `yaml:"use_inductive_miner"`

	// LogSampleRatio ∈ (0,1] is the fraction of cases to keep before
	// learning; 1 means no downsampling. It is validated, loaded and
	// saved here, but no pipeline step in this module reads it, so no
	// cases are ever dropped.
	LogSampleRatio float64 `yaml:"log_sample_ratio"`
}

// DefaultDivergenceThreshold, DefaultMaxConjuncts, and
// DefaultLogSampleRatio are spec.md §6's stated defaults.
const (
	DefaultDivergenceThreshold = 0.3
	DefaultMaxConjuncts        = 3
	DefaultLogSampleRatio      = 1.0
)

// DefaultConfig returns the configuration spec.md §6 prescribes absent
// any overrides.
func DefaultConfig() *Config {
	return &Config{
		DivergenceThreshold: DefaultDivergenceThreshold,
		MaxConjuncts:        DefaultMaxConjuncts,
		UseInductiveMiner:   false,
		LogSampleRatio:      DefaultLogSampleRatio,
	}
}

// Load reads a YAML configuration file at path, starting from
// DefaultConfig and overlaying whatever fields the file sets. A
// missing file is not an error: it yields the defaults, the same
// graceful-absence behavior codenerd's config.Load has for its own
// well-known path.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, creating parent directories as
// needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create directory %s: %w", dir, err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate checks that Config's numeric fields fall within the ranges
// spec.md §6 declares.
func (c *Config) Validate() error {
	if c.DivergenceThreshold < 0 || c.DivergenceThreshold > 1 {
		return fmt.Errorf("config: divergence_threshold %v out of [0,1]", c.DivergenceThreshold)
	}
	if c.MaxConjuncts < 1 {
		return fmt.Errorf("config: max_conjuncts %d must be >= 1", c.MaxConjuncts)
	}
	if c.LogSampleRatio <= 0 || c.LogSampleRatio > 1 {
		return fmt.Errorf("config: log_sample_ratio %v out of (0,1]", c.LogSampleRatio)
	}
	return nil
}
