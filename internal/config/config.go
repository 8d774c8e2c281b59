// Package config holds the explicit configuration threaded into every
// pipeline invocation. Nothing here is global: a flag influencing pass
// behavior travels in this struct, never in package state.
package config

import (
	"fmt"
	"os"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

// Config controls pipeline behavior.
type Config struct {
	// Debug collects per-pass notes and enables debug dumps in the driver.
	Debug bool `yaml:"debug"`

	// DisabledPasses lists pass names to skip, for bisecting bad rewrites.
	DisabledPasses []string `yaml:"disabled_passes"`

	// PreferredNames is the closed tag-to-binder-name table used when
	// renaming synthetic binders of tagged tuples. Lookups are exact; there
	// is deliberately no substring or prefix fallback.
	PreferredNames map[string]string `yaml:"preferred_names"`

	// ResultTag is the atom used when wrapping a handler's final expression
	// into a tagged result tuple.
	ResultTag string `yaml:"result_tag"`

	// AliasMinUses is how many qualified calls to the same module it takes
	// before an alias directive is injected.
	AliasMinUses int `yaml:"alias_min_uses"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		PreferredNames: map[string]string{
			"ok":    "result",
			"error": "reason",
		},
		ResultTag:    "noreply",
		AliasMinUses: 2,
	}
}

// Load reads a YAML config file over the defaults and applies environment
// overrides. An empty path yields Default plus environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	// The env package caches os.Environ on first read; reload so variables
	// set after process start (or by a test) are seen.
	env.Load()
	if env.Bool("EXFORM_DEBUG") {
		c.Debug = true
	}
	if tag := env.Str("EXFORM_RESULT_TAG"); tag != "" {
		c.ResultTag = tag
	}
}

func (c *Config) validate() error {
	if c.ResultTag == "" {
		return fmt.Errorf("config: result_tag must not be empty")
	}
	if c.AliasMinUses < 1 {
		return fmt.Errorf("config: alias_min_uses must be at least 1, got %d", c.AliasMinUses)
	}
	return nil
}

// PassDisabled reports whether the named pass is switched off.
func (c *Config) PassDisabled(name string) bool {
	for _, d := range c.DisabledPasses {
		if d == name {
			return true
		}
	}
	return false
}
