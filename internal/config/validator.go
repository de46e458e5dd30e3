package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string // The config field path (e.g., "optimizer.max_depth")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels.
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation
// errors found.
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validatePersonas()...)
	errors = append(errors, c.validateOptimizer()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validatePersonas() []ValidationError {
	var errors []ValidationError
	if len(c.Personas.Dirs) == 0 {
		errors = append(errors, ValidationError{
			Field:   "personas.dirs",
			Value:   c.Personas.Dirs,
			Message: "at least one persona directory is required",
		})
	}
	for _, dir := range c.Personas.Dirs {
		if strings.TrimSpace(dir) == "" {
			errors = append(errors, ValidationError{
				Field:   "personas.dirs",
				Value:   dir,
				Message: "persona directory must not be empty",
			})
		}
	}
	return errors
}

func (c *Config) validateOptimizer() []ValidationError {
	var errors []ValidationError
	if c.Optimizer.MaxPathLength < 1 {
		errors = append(errors, ValidationError{
			Field:   "optimizer.max_path_length",
			Value:   c.Optimizer.MaxPathLength,
			Message: "must be at least 1",
		})
	}
	if c.Optimizer.MaxDepth < 1 {
		errors = append(errors, ValidationError{
			Field:   "optimizer.max_depth",
			Value:   c.Optimizer.MaxDepth,
			Message: "must be at least 1",
		})
	}
	if c.Optimizer.CacheSize < 0 {
		errors = append(errors, ValidationError{
			Field:   "optimizer.cache_size",
			Value:   c.Optimizer.CacheSize,
			Message: "must not be negative",
		})
	}
	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError
	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must not be negative",
		})
	}
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must not be negative",
		})
	}
	return errors
}
