package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Dataset.Path = "rows.json"
	cfg.Dataset.Schema = "struct{k1: str, v: int32}"
	cfg.Dataset.KeyFields = []string{"k1"}
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidate_CacheOnlyNeedsNoDataset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Report.CachePath = "reports/missingness.json"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("cache-only config must validate, got %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		expected string
	}{
		{
			name:     "no dataset and no cache",
			mutate:   func(c *Config) { c.Dataset.Path = ""; c.Report.CachePath = "" },
			expected: "either a dataset",
		},
		{
			name:     "dataset without schema",
			mutate:   func(c *Config) { c.Dataset.Schema = "" },
			expected: "schema descriptor is required",
		},
		{
			name:     "dataset without key fields",
			mutate:   func(c *Config) { c.Dataset.KeyFields = nil },
			expected: "at least one key field",
		},
		{
			name:     "duplicate key fields",
			mutate:   func(c *Config) { c.Dataset.KeyFields = []string{"k1", "k1"} },
			expected: "duplicate key field",
		},
		{
			name:     "empty key field name",
			mutate:   func(c *Config) { c.Dataset.KeyFields = []string{""} },
			expected: "must not be empty",
		},
		{
			name: "source enabled but incomplete",
			mutate: func(c *Config) {
				c.Source.Enabled = true
				c.Source.Host = "h"
				c.Source.User = "u"
				c.Source.Database = "d"
				// table missing
			},
			expected: "source.table",
		},
		{
			name: "bad source port",
			mutate: func(c *Config) {
				c.Source.Enabled = true
				c.Source.Host = "h"
				c.Source.User = "u"
				c.Source.Database = "d"
				c.Source.Table = "t"
				c.Source.Port = 70000
			},
			expected: "source.port",
		},
		{
			name: "bad TLS mode",
			mutate: func(c *Config) {
				c.Source.Enabled = true
				c.Source.Host = "h"
				c.Source.User = "u"
				c.Source.Database = "d"
				c.Source.Table = "t"
				c.Source.TLS = "maybe"
			},
			expected: "source.tls",
		},
		{
			name:     "negative workers",
			mutate:   func(c *Config) { c.Report.Workers = -1 },
			expected: "report.workers",
		},
		{
			name:     "bad log level",
			mutate:   func(c *Config) { c.Logging.Level = "verbose" },
			expected: "logging.level",
		},
		{
			name:     "bad log format",
			mutate:   func(c *Config) { c.Logging.Format = "xml" },
			expected: "logging.format",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.expected) {
				t.Errorf("expected error containing %q, got %v", tc.expected, err)
			}
		})
	}
}
