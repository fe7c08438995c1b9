package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecute(t *testing.T) {
	// Execute() calls os.Exit(1) on error, so only its existence is
	// checked here; command behavior is tested per subcommand.
	assert.NotNil(t, Execute)
}

func TestVersionVariables(t *testing.T) {
	assert.NotEmpty(t, Version, "Version should not be empty")
	assert.NotEmpty(t, Commit, "Commit should not be empty")
}

func TestRootFlags(t *testing.T) {
	assert.Equal(t, "gomissing.yaml", cfgFile, "cfgFile should default to gomissing.yaml")

	flags := rootCmd.PersistentFlags()
	for _, name := range []string{"config", "log-level", "log-format", "cache", "workers", "normalize", "no-color"} {
		assert.NotNil(t, flags.Lookup(name), "flag %s should be registered", name)
	}
}

func TestGetCLIOverrides(t *testing.T) {
	originalLevel := logLevel
	originalCache := cachePath
	defer func() {
		logLevel = originalLevel
		cachePath = originalCache
	}()

	logLevel = "debug"
	cachePath = "/tmp/report.json"

	overrides := GetCLIOverrides()
	assert.Equal(t, "debug", overrides.LogLevel)
	assert.Equal(t, "/tmp/report.json", overrides.CachePath)
}

func TestSubcommandsRegistered(t *testing.T) {
	expected := map[string]bool{
		"report":   false,
		"fields":   false,
		"validate": false,
		"version":  false,
	}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := expected[cmd.Name()]; ok {
			expected[cmd.Name()] = true
		}
	}
	for name, found := range expected {
		assert.True(t, found, "%s command should be added to root command", name)
	}
}
