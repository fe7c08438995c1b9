package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
	cachePath string
	workers   int
	normalize bool
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "gomissing",
	Short: "Nested-schema missingness reports",
	Long: `A CLI tool for computing missingness reports over tabular datasets
with arbitrarily nested records and lists of records.

For every field reachable through the nested schema it reports how many
rows have the field missing, which row keys are affected, and the
percentage of rows affected. Fields beneath an absent ancestor are
charged to the ancestor only, never double counted.

Reports can be cached to a file and reloaded on later runs.`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "gomissing.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Report overrides
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", "",
		"Override report cache path")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0,
		"Override worker count for the dataset pass")
	rootCmd.PersistentFlags().BoolVar(&normalize, "normalize", false,
		"Replace empty lists of records with null before traversal")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored table output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel  string
	LogFormat string
	CachePath string
	Workers   int
	Normalize bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		CachePath: cachePath,
		Workers:   workers,
		Normalize: normalize,
	}
}
