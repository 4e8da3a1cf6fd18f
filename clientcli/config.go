package clientcli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultEndpoint is the default server endpoint URL.
const DefaultEndpoint = "http://localhost:5708"

// Profile holds configuration for a single server profile.
type Profile struct {
	Name     string `yaml:"name"`
	Endpoint string `yaml:"endpoint"`
	Prefix   string `yaml:"prefix,omitempty"`
	Default  bool   `yaml:"default,omitempty"`
}

// ConfigFile holds the full config file structure with multiple profiles.
type ConfigFile struct {
	Profiles []Profile `yaml:"profiles"`
}

func (c *ConfigFile) index(name string) int {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return i
		}
	}
	return -1
}

// Lookup returns the named profile, or the default one when name is empty.
func (c *ConfigFile) Lookup(name string) (*Profile, error) {
	if len(c.Profiles) == 0 {
		return nil, ErrNoProfiles
	}
	if name == "" {
		return c.Default(), nil
	}
	if i := c.index(name); i >= 0 {
		return &c.Profiles[i], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
}

// Default returns the profile marked default, falling back to the first
// one. It is nil for an empty file.
func (c *ConfigFile) Default() *Profile {
	for i := range c.Profiles {
		if c.Profiles[i].Default {
			return &c.Profiles[i]
		}
	}
	if len(c.Profiles) > 0 {
		return &c.Profiles[0]
	}
	return nil
}

// DefaultName is the name of Default, or "" for an empty file.
func (c *ConfigFile) DefaultName() string {
	if p := c.Default(); p != nil {
		return p.Name
	}
	return ""
}

// Put adds p or replaces the profile with the same name and reports
// whether one was replaced. A default p takes the flag from all others.
func (c *ConfigFile) Put(p Profile) bool {
	if p.Default {
		for i := range c.Profiles {
			c.Profiles[i].Default = false
		}
	}
	if i := c.index(p.Name); i >= 0 {
		c.Profiles[i] = p
		return true
	}
	c.Profiles = append(c.Profiles, p)
	return false
}

// Remove deletes the named profile.
func (c *ConfigFile) Remove(name string) error {
	i := c.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	c.Profiles = append(c.Profiles[:i], c.Profiles[i+1:]...)
	return nil
}

// SetDefault marks the named profile as the only default.
func (c *ConfigFile) SetDefault(name string) error {
	i := c.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	for j := range c.Profiles {
		c.Profiles[j].Default = j == i
	}
	return nil
}

// Save writes the config to the specified path.
// Creates the parent directory if it doesn't exist.
func (c *ConfigFile) Save(path string) error {
	cleanPath := filepath.Clean(path)

	dir := filepath.Dir(cleanPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(cleanPath, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// LoadConfigFile loads the config file from the specified path.
func LoadConfigFile(path string) (*ConfigFile, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) //#nosec G304 -- path is user-provided config file
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg ConfigFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &cfg, nil
}

// DefaultConfigPath returns the default config file path (~/.kvtodo/config.yaml).
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kvtodo", "config.yaml")
}

// Config holds resolved client configuration for a single server.
// This is what the Client uses after profile resolution.
type Config struct {
	Endpoint string
	// Prefix is an optional path segment placed before /todos.
	Prefix string
}

// Validate checks the endpoint and prefix without applying defaults.
func (c *Config) Validate() error {
	if c.Endpoint != "" {
		if err := ValidateEndpoint(c.Endpoint); err != nil {
			return err
		}
	}
	if strings.Contains(strings.Trim(c.Prefix, "/"), "/") {
		return fmt.Errorf("%w: %s", ErrBadPrefix, c.Prefix)
	}
	return nil
}

// WithDefaults returns a copy of the config with default values applied.
// If Endpoint is empty, it defaults to DefaultEndpoint.
func (c *Config) WithDefaults() *Config {
	cfg := *c
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	cfg.Prefix = strings.Trim(cfg.Prefix, "/")
	return &cfg
}

// ValidateEndpoint checks that endpoint is an absolute http(s) URL.
func ValidateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s", ErrInvalidEndpoint, endpoint)
	}
	return nil
}

// ConfigFromProfile creates a Config from a Profile.
func ConfigFromProfile(p *Profile) *Config {
	if p == nil {
		return &Config{}
	}
	return &Config{
		Endpoint: p.Endpoint,
		Prefix:   p.Prefix,
	}
}

// ConfigFromEnv loads config from environment variables.
func ConfigFromEnv() *Config {
	return &Config{
		Endpoint: os.Getenv("KVTODO_ENDPOINT"),
		Prefix:   os.Getenv("KVTODO_PREFIX"),
	}
}

// ProfileFromEnv returns the profile name from KVTODO_PROFILE environment variable.
func ProfileFromEnv() string {
	return os.Getenv("KVTODO_PROFILE")
}

// ConfigPathFromEnv returns the config file path from KVTODO_CONFIG environment variable.
func ConfigPathFromEnv() string {
	return os.Getenv("KVTODO_CONFIG")
}

// MergeConfig merges multiple configs, with later configs taking precedence.
// Empty strings in later configs do not override non-empty values in earlier configs.
func MergeConfig(configs ...*Config) *Config {
	result := &Config{}
	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		if cfg.Endpoint != "" {
			result.Endpoint = cfg.Endpoint
		}
		if cfg.Prefix != "" {
			result.Prefix = cfg.Prefix
		}
	}
	return result
}
