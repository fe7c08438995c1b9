// Package config provides configuration structures and loading for gomissing.
package config

// Config represents the complete application configuration.
type Config struct {
	Dataset Dataset       `yaml:"dataset" mapstructure:"dataset"`
	Source  Database      `yaml:"source" mapstructure:"source"`
	Report  Report        `yaml:"report" mapstructure:"report"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// Dataset describes where rows come from and how they are shaped.
type Dataset struct {
	// Path to a JSON file holding an ordered array of row documents.
	// Ignored when the MySQL source is enabled.
	Path string `yaml:"path" mapstructure:"path"`
	// Schema is the compact type descriptor of a row, e.g.
	// struct{k1: str, detailed_struct: struct{long_field1: int32}}.
	Schema string `yaml:"schema" mapstructure:"schema"`
	// KeyFields are the field names whose projection identifies a row.
	KeyFields []string `yaml:"key_fields" mapstructure:"key_fields"`
	// Normalize replaces empty list-of-record values with null before
	// traversal, satisfying the walker's precondition.
	Normalize bool `yaml:"normalize" mapstructure:"normalize"`
}

// Database represents the optional MySQL dataset source: ordered JSON
// row documents read from one column of one table.
type Database struct {
	Enabled            bool   `yaml:"enabled" mapstructure:"enabled"`
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	Table              string `yaml:"table" mapstructure:"table"`
	DocColumn          string `yaml:"doc_column" mapstructure:"doc_column"`
	OrderColumn        string `yaml:"order_column" mapstructure:"order_column"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// Report controls the aggregation pass and caching.
type Report struct {
	// CachePath, when set, short-circuits to a previously persisted
	// report if present, and persists the computed report otherwise.
	CachePath string `yaml:"cache_path" mapstructure:"cache_path"`
	// Workers bounds the parallel dataset pass; 0 means GOMAXPROCS.
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// ApplyOverrides applies CLI flag values over the loaded configuration.
// Zero values leave the configuration untouched.
func (c *Config) ApplyOverrides(logLevel, logFormat, cachePath string, workers int, normalize bool) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if cachePath != "" {
		c.Report.CachePath = cachePath
	}
	if workers > 0 {
		c.Report.Workers = workers
	}
	if normalize {
		c.Dataset.Normalize = true
	}
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Dataset: Dataset{
			Normalize: false,
		},
		Source: Database{
			Enabled:            false,
			Port:               3306,
			DocColumn:          "doc",
			TLS:                "preferred",
			MaxConnections:     10,
			MaxIdleConnections: 5,
		},
		Report: Report{
			Workers: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}
