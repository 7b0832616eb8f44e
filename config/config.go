// Package config persists user defaults for the upv tool: the drive letter,
// account domain and username used when the drive commands are run without
// flags. Settings live in a YAML file in the user's config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/upv-tools/upv-cli/common"
	"github.com/upv-tools/upv-cli/drive"
)

// Config represents the application configuration.
type Config struct {
	// DefaultDrive is the letter used when --drive is not given.
	DefaultDrive string `yaml:"default_drive"`
	// DefaultDomain is the account domain used when no domain is given.
	DefaultDomain string `yaml:"default_domain"`
	// DefaultUsername is the account used when no username is given.
	DefaultUsername string `yaml:"default_username"`
	// Verbose enables debug logging without passing --verbose.
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultDrive:  string(common.DefaultDriveLetter),
		DefaultDomain: string(drive.DomainAlumno),
	}
}

// Load reads the configuration from the config file. If the file doesn't
// exist, it creates one with default values.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.SaveTo(path); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening configuration: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing configuration: %w", err)
	}

	cfg.normalize()
	return &cfg, nil
}

// normalize replaces unusable values with defaults instead of failing: a
// broken config file should never lock the user out of the tool.
func (c *Config) normalize() {
	if _, err := drive.ParseLetter(c.DefaultDrive); err != nil {
		c.DefaultDrive = string(common.DefaultDriveLetter)
	}
	if c.DefaultDomain != "" {
		domain, err := drive.ParseDomain(c.DefaultDomain)
		if err != nil {
			c.DefaultDomain = string(drive.DomainAlumno)
		} else {
			c.DefaultDomain = string(domain)
		}
	} else {
		c.DefaultDomain = string(drive.DomainAlumno)
	}
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error serializing configuration: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("error saving configuration: %w", err)
	}
	return nil
}

func configPath() (string, error) {
	dir, err := common.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, common.ConfigFileName), nil
}
