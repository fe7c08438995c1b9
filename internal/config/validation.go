package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errs ValidationErrors

	errs = append(errs, c.validateDataset()...)
	if c.Source.Enabled {
		errs = append(errs, c.validateSource()...)
	}
	errs = append(errs, c.validateReport()...)
	errs = append(errs, c.validateLogging()...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (c *Config) validateDataset() ValidationErrors {
	var errs ValidationErrors

	// A cache-only run needs neither rows nor a schema; when rows are
	// supplied, both the schema and the key fields are required.
	hasRows := c.Dataset.Path != "" || c.Source.Enabled
	if !hasRows && c.Report.CachePath == "" {
		errs = append(errs, ValidationError{
			Field:   "dataset",
			Message: "either a dataset (path or enabled source) or report.cache_path must be set",
		})
	}
	if hasRows {
		if c.Dataset.Schema == "" {
			errs = append(errs, ValidationError{
				Field:   "dataset.schema",
				Message: "schema descriptor is required when a dataset is supplied",
			})
		}
		if len(c.Dataset.KeyFields) == 0 {
			errs = append(errs, ValidationError{
				Field:   "dataset.key_fields",
				Message: "at least one key field is required when a dataset is supplied",
			})
		}
	}
	seen := make(map[string]bool, len(c.Dataset.KeyFields))
	for _, name := range c.Dataset.KeyFields {
		if name == "" {
			errs = append(errs, ValidationError{
				Field:   "dataset.key_fields",
				Message: "key field names must not be empty",
			})
			continue
		}
		if seen[name] {
			errs = append(errs, ValidationError{
				Field:   "dataset.key_fields",
				Message: fmt.Sprintf("duplicate key field %q", name),
			})
		}
		seen[name] = true
	}
	return errs
}

func (c *Config) validateSource() ValidationErrors {
	var errs ValidationErrors

	required := map[string]string{
		"source.host":     c.Source.Host,
		"source.user":     c.Source.User,
		"source.database": c.Source.Database,
		"source.table":    c.Source.Table,
	}
	for field, value := range required {
		if value == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}
	if c.Source.Port <= 0 || c.Source.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "source.port",
			Message: fmt.Sprintf("must be between 1 and 65535, got %d", c.Source.Port),
		})
	}
	switch c.Source.TLS {
	case "", "disable", "preferred", "required":
	default:
		errs = append(errs, ValidationError{
			Field:   "source.tls",
			Message: fmt.Sprintf("must be one of disable, preferred, required; got %q", c.Source.TLS),
		})
	}
	return errs
}

func (c *Config) validateReport() ValidationErrors {
	var errs ValidationErrors
	if c.Report.Workers < 0 {
		errs = append(errs, ValidationError{
			Field:   "report.workers",
			Message: fmt.Sprintf("must be >= 0, got %d", c.Report.Workers),
		})
	}
	return errs
}

func (c *Config) validateLogging() ValidationErrors {
	var errs ValidationErrors
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error; got %q", c.Logging.Level),
		})
	}
	switch c.Logging.Format {
	case "", "json", "text":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("must be json or text; got %q", c.Logging.Format),
		})
	}
	return errs
}
