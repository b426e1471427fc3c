// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. This separation allows config.go to focus on YAML structure
// and loading, while this file handles the MCP and CLI interface where config
// is accessed by string keys (e.g., "search.limit").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero". This enables proper
// defaulting - we only apply defaults when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"scan.max_depth",
		"search.limit",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "scan.max_depth":
		return strconv.Itoa(c.MaxDepth()), nil
	case "search.limit":
		return strconv.Itoa(c.SearchLimit()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "scan.max_depth":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinMaxDepth || n > MaxMaxDepth {
			return fmt.Errorf("%w: scan.max_depth must be an integer between %d and %d",
				ErrInvalidValue, MinMaxDepth, MaxMaxDepth)
		}
		c.Scan.MaxDepth = &n
	case "search.limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinSearchLimit || n > MaxSearchLimit {
			return fmt.Errorf("%w: search.limit must be an integer between %d and %d",
				ErrInvalidValue, MinSearchLimit, MaxSearchLimit)
		}
		c.Search.Limit = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"author.name":    c.Author.Name,
		"author.email":   c.Author.Email,
		"scan.max_depth": strconv.Itoa(c.MaxDepth()),
		"search.limit":   strconv.Itoa(c.SearchLimit()),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "scan.max_depth":
		return c.Scan.MaxDepth != nil
	case "search.limit":
		return c.Search.Limit != nil
	default:
		return false
	}
}
