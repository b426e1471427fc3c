// Package config provides reading and writing of docdex configuration.
// Supports both global (~/.docdex/config.yaml) and local (.docdex/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.docdex/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .docdex/config.yaml
	ScopeLocal
)

// Author represents the author metadata recorded in the audit log.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Scan holds scan-related configuration options.
type Scan struct {
	MaxDepth *int `yaml:"max_depth,omitempty"`
}

// Search holds search-related configuration options.
type Search struct {
	Limit *int `yaml:"limit,omitempty"`
}

// Defaults applied when not configured.
const (
	// DefaultMaxDepth of 0 means unlimited recursion below scan roots.
	DefaultMaxDepth = 0
	// DefaultSearchLimit caps search results.
	DefaultSearchLimit = 50
)

// Validation bounds for configuration values.
const (
	MinMaxDepth    = 0
	MaxMaxDepth    = 64
	MinSearchLimit = 1
	MaxSearchLimit = 1000
)

// Config contains configuration for docdex.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Scan   Scan   `yaml:"scan,omitempty"`
	Search Search `yaml:"search,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Scan.MaxDepth != nil {
		v := *c.Scan.MaxDepth
		if v < MinMaxDepth || v > MaxMaxDepth {
			return fmt.Errorf("%w: scan.max_depth must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxDepth, MaxMaxDepth, v)
		}
	}
	if c.Search.Limit != nil {
		v := *c.Search.Limit
		if v < MinSearchLimit || v > MaxSearchLimit {
			return fmt.Errorf("%w: search.limit must be between %d and %d, got %d",
				ErrInvalidValue, MinSearchLimit, MaxSearchLimit, v)
		}
	}
	return nil
}

// MaxDepth returns the scan recursion limit (defaults to 0, unlimited).
func (c *Config) MaxDepth() int {
	if c.Scan.MaxDepth == nil {
		return DefaultMaxDepth
	}
	return *c.Scan.MaxDepth
}

// SearchLimit returns the maximum number of search results (defaults to 50).
func (c *Config) SearchLimit() int {
	if c.Search.Limit == nil {
		return DefaultSearchLimit
	}
	return *c.Search.Limit
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".docdex", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.docdex/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".docdex", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
