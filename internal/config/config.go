// Copyright 2016 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads cmd/smtserver's YAML configuration, with
// ${VAR}/${VAR:-default} environment substitution applied to the file
// before it's parsed.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads filename, substitutes ${VAR}/${VAR:-default} environment
// references, parses the result as YAML, applies defaults, and validates
// it.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", filename, err)
	}

	var c Config
	if err := yaml.Unmarshal([]byte(substituteEnvVars(string(data))), &c); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", filename, err)
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Config is the top-level shape of smtserver's YAML config file.
type Config struct {
	RPC     RPCConfig     `yaml:"rpc"`
	Storage StorageConfig `yaml:"storage"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// RPCConfig holds the gRPC listener settings.
type RPCConfig struct {
	Address string `yaml:"address"`
}

// StorageConfig selects and configures the Store backend.
type StorageConfig struct {
	// Backend is "memory" or "mysql".
	Backend string `yaml:"backend"`
	MySQL   MySQLConfig `yaml:"mysql"`
	Cache   CacheConfig `yaml:"cache"`
}

// MySQLConfig is read when Storage.Backend == "mysql".
type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

// CacheConfig optionally wraps the chosen Store with a Redis read-through
// cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

// MetricsConfig holds the Prometheus exposition listener settings.
type MetricsConfig struct {
	Address string `yaml:"address"`
}

// LoggingConfig mirrors glog's own flags so the config file can set them
// without requiring command-line arguments in containerized deployments.
type LoggingConfig struct {
	Verbosity int `yaml:"verbosity"`
}

var envPattern = regexp.MustCompile(`\$\{([A-Z_][A-Z0-9_]*)(:-([^}]*))?\}`)

// substituteEnvVars replaces ${VAR} and ${VAR:-default} occurrences in
// input with the named environment variable's value, or default if the
// variable is unset. A ${VAR} with no default and an unset variable is
// left untouched, the same compromise DanDo385-go-edu's config loader
// makes: the literal "${VAR}" text reaches the parsed config instead of
// silently becoming an empty string.
func substituteEnvVars(input string) string {
	return envPattern.ReplaceAllStringFunc(input, func(match string) string {
		parts := envPattern.FindStringSubmatch(match)
		name, def := parts[1], parts[3]
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		if strings.Contains(match, ":-") {
			return def
		}
		return match
	})
}

// ApplyDefaults fills in zero-value fields with this binary's defaults.
func (c *Config) ApplyDefaults() {
	if c.RPC.Address == "" {
		c.RPC.Address = ":8500"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "memory"
	}
	if c.Metrics.Address == "" {
		c.Metrics.Address = ":8501"
	}
}

// Validate reports every configuration problem it finds, joined into a
// single error.
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Backend {
	case "memory", "mysql":
	default:
		problems = append(problems, fmt.Sprintf("storage.backend must be \"memory\" or \"mysql\", got %q", c.Storage.Backend))
	}
	if c.Storage.Backend == "mysql" && c.Storage.MySQL.DSN == "" {
		problems = append(problems, "storage.mysql.dsn is required when storage.backend is \"mysql\"")
	}
	if c.Storage.Cache.Enabled && c.Storage.Cache.Address == "" {
		problems = append(problems, "storage.cache.address is required when storage.cache.enabled is true")
	}
	if c.RPC.Address == "" {
		problems = append(problems, "rpc.address must not be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
