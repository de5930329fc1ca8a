package config

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestValidConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected no validation errors, got: %v", err)
	}
}

func TestValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero omega_m", func(c *Config) { c.Cosmology.OmegaM = 0; c.Cosmology.OmegaL = 1 - c.Cosmology.OmegaR }, "cosmology.omega_m"},
		{"negative omega_r", func(c *Config) { c.Cosmology.OmegaR = -0.01 }, "cosmology.omega_r"},
		{"negative omega_l", func(c *Config) { c.Cosmology.OmegaL = -0.1 }, "cosmology.omega_l"},
		{"not flat", func(c *Config) { c.Cosmology.OmegaL = 0.685 }, "cosmology"},
		{"omega_b above omega_m", func(c *Config) { c.Cosmology.OmegaB = 0.4 }, "cosmology.omega_b"},
		{"zero omega_b", func(c *Config) { c.Cosmology.OmegaB = 0 }, "cosmology.omega_b"},
		{"zero h0", func(c *Config) { c.Cosmology.H0 = 0 }, "cosmology.h0_km_s_mpc"},
		{"rel_tol too loose", func(c *Config) { c.Integration.RelTol = 1e-3 }, "integration.rel_tol"},
		{"negative abs_tol", func(c *Config) { c.Integration.AbsTol = -1 }, "integration.abs_tol"},
		{"no tolerance", func(c *Config) { c.Integration.RelTol = 0 }, "integration"},
		{"zero max_intervals", func(c *Config) { c.Integration.MaxIntervals = 0 }, "integration.max_intervals"},
		{"zero overdensity", func(c *Config) { c.Collapse.Overdensity = 0 }, "collapse.overdensity"},
		{"infinite overdensity", func(c *Config) { c.Collapse.Overdensity = math.Inf(1) }, "collapse.overdensity"},
		{"zero reference mass", func(c *Config) { c.Collapse.ReferenceMassLog = 0 }, "collapse.reference_mass_log"},
		{"sfe above one", func(c *Config) { c.MassLimit.SFE = 1.2 }, "mass_limit.sfe"},
		{"zero sf_time_fraction", func(c *Config) { c.MassLimit.SFTimeFraction = 0 }, "mass_limit.sf_time_fraction"},
		{"zero progenitor_sfe", func(c *Config) { c.Catalog.ProgenitorSFE = 0 }, "catalog.progenitor_sfe"},
		{"empty epochs", func(c *Config) { c.Grids.Epochs = nil }, "grids.epochs"},
		{"negative growth redshift", func(c *Config) { c.Grids.Growth = []float64{2, -1} }, "grids.growth[1]"},
		{"nan feasibility redshift", func(c *Config) { c.Grids.Feasibility = []float64{math.NaN()} }, "grids.feasibility[0]"},
		{"negative enhancement redshift", func(c *Config) { c.Grids.EnhancementRedshift = -2 }, "grids.enhancement_redshift"},
		{"one series point", func(c *Config) { c.Grids.SeriesPoints = 1 }, "grids.series_points"},
		{"zero concurrency", func(c *Config) { c.Processing.Concurrency = 0 }, "processing.concurrency"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error for %s", tt.field)
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			found := false
			for _, v := range verrs {
				if v.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error for field %q, got: %v", tt.field, err)
			}
		})
	}
}

func TestMultipleValidationErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Collapse.Overdensity = -1
	cfg.Processing.Concurrency = -1
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}

	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(verrs), err)
	}
}

func TestValidationErrorFormat(t *testing.T) {
	err := ValidationError{Field: "collapse.overdensity", Message: "overdensity must be positive"}
	if err.Error() != "collapse.overdensity: overdensity must be positive" {
		t.Errorf("unexpected format: %s", err.Error())
	}

	errs := ValidationErrors{
		{Field: "a", Message: "first"},
		{Field: "b", Message: "second"},
	}
	msg := errs.Error()
	if !strings.HasPrefix(msg, "validation failed:") {
		t.Errorf("expected prefix 'validation failed:', got %s", msg)
	}
	if !strings.Contains(msg, "a: first") || !strings.Contains(msg, "b: second") {
		t.Errorf("expected both errors in message, got %s", msg)
	}

	if (ValidationErrors{}).Error() != "" {
		t.Error("expected empty message for no errors")
	}
}
