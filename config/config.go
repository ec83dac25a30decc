// Package config loads the YAML file describing one index's
// configuration: which field to index, locale defaults, blacklist/
// whitelist sources, and which substrate backend to run against. Missing
// file is a non-fatal "no config" condition, following the teacher's
// LoadConfig precedent, not a panic.
package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Backend names which substrate.Tree implementation a Config wires up.
type Backend string

const (
	BackendMemory    Backend = "memory"
	BackendPostgres  Backend = "postgres"
	BackendSQLServer Backend = "sqlserver"
)

// Config is one index's full configuration, as read from YAML.
type Config struct {
	// Key is the record field to index.
	Key string `yaml:"key"`

	// TextLocaleKey, if set, names a field carrying a per-record locale
	// override.
	TextLocaleKey string `yaml:"textLocaleKey"`
	DefaultLocale string `yaml:"defaultLocale"`

	MinLength int `yaml:"minLength"`
	MaxLength int `yaml:"maxLength"`

	UseStoplist bool `yaml:"useStoplist"`

	// BlacklistFile/WhitelistFile each name a newline-delimited word list
	// file; empty means "no list".
	BlacklistFile string `yaml:"blacklistFile"`
	WhitelistFile string `yaml:"whitelistFile"`

	MinimumWildcardWordLength int `yaml:"minimumWildcardWordLength"`

	Backend    Backend `yaml:"backend"`
	Connection string  `yaml:"connection"`
}

// Load reads path as YAML into a Config. A missing file returns a
// zero-value Config and a nil error -- absence of a config file is not an
// error condition, mirroring the teacher's tolerant LoadConfig behavior.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// LoadWordList reads path as a newline-delimited word list into a set.
// An empty path yields an empty, non-nil set.
func LoadWordList(path string) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading word list %s: %w", path, err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			set[word] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: reading word list %s: %w", path, err)
	}
	return set, nil
}
