package config

import (
	"strings"
	"testing"
)

func TestValidate_DefaultsAreValid(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default config must validate cleanly, got %v", errs)
	}
}

func TestValidate_Personas(t *testing.T) {
	cfg := Default()
	cfg.Personas.Dirs = nil
	errs := cfg.Validate()
	if !hasFieldError(errs, "personas.dirs") {
		t.Errorf("Expected personas.dirs error, got %v", errs)
	}

	cfg = Default()
	cfg.Personas.Dirs = []string{"personas", "  "}
	errs = cfg.Validate()
	if !hasFieldError(errs, "personas.dirs") {
		t.Errorf("Expected error for blank persona directory, got %v", errs)
	}
}

func TestValidate_Optimizer(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero max_path_length", func(c *Config) { c.Optimizer.MaxPathLength = 0 }, "optimizer.max_path_length"},
		{"zero max_depth", func(c *Config) { c.Optimizer.MaxDepth = 0 }, "optimizer.max_depth"},
		{"negative cache_size", func(c *Config) { c.Optimizer.CacheSize = -1 }, "optimizer.cache_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if !hasFieldError(cfg.Validate(), tt.field) {
				t.Errorf("Expected %s error", tt.field)
			}
		})
	}
}

func TestValidate_Logging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"
	if !hasFieldError(cfg.Validate(), "logging.level") {
		t.Error("Expected logging.level error for unknown level")
	}

	cfg = Default()
	cfg.Logging.Level = "DEBUG"
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Level check must be case-insensitive, got %v", errs)
	}

	cfg = Default()
	cfg.Logging.MaxSizeMB = -1
	cfg.Logging.MaxBackups = -1
	errs := cfg.Validate()
	if !hasFieldError(errs, "logging.max_size_mb") || !hasFieldError(errs, "logging.max_backups") {
		t.Errorf("Expected rotation bound errors, got %v", errs)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	single := ValidationErrors{{Field: "optimizer.max_depth", Value: 0, Message: "must be at least 1"}}
	if got := single.Error(); !strings.Contains(got, "optimizer.max_depth") {
		t.Errorf("Single error format wrong: %q", got)
	}

	multi := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: 2, Message: "worse"},
	}
	got := multi.Error()
	if !strings.Contains(got, "2 validation errors") || !strings.Contains(got, "2. b") {
		t.Errorf("Multi error format wrong: %q", got)
	}

	if (ValidationErrors{}).Error() != "" {
		t.Error("Empty collection must render as empty string")
	}
}

func hasFieldError(errs []ValidationError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
