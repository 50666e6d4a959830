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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSubstituteEnvVars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		envVars  map[string]string
		expected string
	}{
		{"simple variable", "address: ${RPC_ADDR}", map[string]string{"RPC_ADDR": ":9000"}, "address: :9000"},
		{"default used when unset", "address: ${RPC_ADDR:-:8500}", nil, "address: :8500"},
		{"default ignored when set", "address: ${RPC_ADDR:-:8500}", map[string]string{"RPC_ADDR": ":9000"}, "address: :9000"},
		{"undefined without default stays as-is", "dsn: ${UNDEFINED_VAR}", nil, "dsn: ${UNDEFINED_VAR}"},
		{"no substitution needed", "plain: text", nil, "plain: text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				os.Setenv(k, v)
				defer os.Unsetenv(k)
			}
			os.Unsetenv("UNDEFINED_VAR")
			if got := substituteEnvVars(tt.input); got != tt.expected {
				t.Errorf("substituteEnvVars(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	var c Config
	c.ApplyDefaults()
	if c.RPC.Address != ":8500" {
		t.Errorf("RPC.Address = %q, want :8500", c.RPC.Address)
	}
	if c.Storage.Backend != "memory" {
		t.Errorf("Storage.Backend = %q, want memory", c.Storage.Backend)
	}
	if c.Metrics.Address != ":8501" {
		t.Errorf("Metrics.Address = %q, want :8501", c.Metrics.Address)
	}

	set := Config{RPC: RPCConfig{Address: ":1234"}, Storage: StorageConfig{Backend: "mysql"}}
	set.ApplyDefaults()
	if set.RPC.Address != ":1234" {
		t.Errorf("existing RPC.Address overwritten: got %q", set.RPC.Address)
	}
	if set.Storage.Backend != "mysql" {
		t.Errorf("existing Storage.Backend overwritten: got %q", set.Storage.Backend)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errText string
	}{
		{
			name:   "valid memory backend",
			config: Config{RPC: RPCConfig{Address: ":8500"}, Storage: StorageConfig{Backend: "memory"}},
		},
		{
			name:    "unknown backend",
			config:  Config{RPC: RPCConfig{Address: ":8500"}, Storage: StorageConfig{Backend: "bogus"}},
			wantErr: true,
			errText: "backend",
		},
		{
			name:    "mysql backend without dsn",
			config:  Config{RPC: RPCConfig{Address: ":8500"}, Storage: StorageConfig{Backend: "mysql"}},
			wantErr: true,
			errText: "dsn",
		},
		{
			name: "mysql backend with dsn is valid",
			config: Config{RPC: RPCConfig{Address: ":8500"}, Storage: StorageConfig{
				Backend: "mysql",
				MySQL:   MySQLConfig{DSN: "user:pass@tcp(localhost:3306)/smt"},
			}},
		},
		{
			name: "cache enabled without address",
			config: Config{RPC: RPCConfig{Address: ":8500"}, Storage: StorageConfig{
				Backend: "memory",
				Cache:   CacheConfig{Enabled: true},
			}},
			wantErr: true,
			errText: "cache.address",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), tt.errText) {
					t.Fatalf("Validate() = %v, want error containing %q", err, tt.errText)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlBody := `
rpc:
  address: ${RPC_ADDR:-:9000}
storage:
  backend: memory
metrics:
  address: :9100
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(yamlBody), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.RPC.Address != ":9000" {
		t.Errorf("RPC.Address = %q, want :9000 (from default)", c.RPC.Address)
	}
	if c.Metrics.Address != ":9100" {
		t.Errorf("Metrics.Address = %q, want :9100", c.Metrics.Address)
	}
}

func TestLoadAppliesEnvOverride(t *testing.T) {
	dir := t.TempDir()
	os.Setenv("SMT_TEST_RPC_ADDR", ":7777")
	defer os.Unsetenv("SMT_TEST_RPC_ADDR")

	yamlBody := `
rpc:
  address: ${SMT_TEST_RPC_ADDR}
storage:
  backend: memory
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(yamlBody), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.RPC.Address != ":7777" {
		t.Errorf("RPC.Address = %q, want :7777", c.RPC.Address)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  backend: bogus\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted a config with an unknown storage backend")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load succeeded for a nonexistent file")
	}
}
