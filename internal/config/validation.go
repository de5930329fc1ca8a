package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/dbsmedya/goinertia/internal/cosmology"
)

// maxRelTol is the loosest relative tolerance accepted for quadrature.
const maxRelTol = 1e-6

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
	var errors ValidationErrors

	errors = append(errors, c.validateCosmology()...)
	errors = append(errors, c.validateIntegration()...)
	errors = append(errors, c.validateCollapse()...)
	errors = append(errors, c.validateMassLimit()...)
	errors = append(errors, c.validateCatalog()...)
	errors = append(errors, c.validateGrids()...)
	errors = append(errors, c.validateProcessing()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateCosmology() ValidationErrors {
	var errors ValidationErrors
	cc := c.Cosmology

	if !positive(cc.OmegaM) {
		errors = append(errors, ValidationError{
			Field:   "cosmology.omega_m",
			Message: "omega_m must be positive",
		})
	}

	if !(cc.OmegaR >= 0) || math.IsInf(cc.OmegaR, 0) {
		errors = append(errors, ValidationError{
			Field:   "cosmology.omega_r",
			Message: "omega_r cannot be negative",
		})
	}

	if !(cc.OmegaL >= 0) || math.IsInf(cc.OmegaL, 0) {
		errors = append(errors, ValidationError{
			Field:   "cosmology.omega_l",
			Message: "omega_l cannot be negative",
		})
	}

	if sum := cc.OmegaM + cc.OmegaR + cc.OmegaL; !(math.Abs(sum-1) <= cosmology.FlatnessTolerance) {
		errors = append(errors, ValidationError{
			Field:   "cosmology",
			Message: fmt.Sprintf("omega_m + omega_r + omega_l must equal 1 (got %.10g)", sum),
		})
	}

	if !positive(cc.OmegaB) || cc.OmegaB > cc.OmegaM {
		errors = append(errors, ValidationError{
			Field:   "cosmology.omega_b",
			Message: "omega_b must be positive and at most omega_m",
		})
	}

	if !positive(cc.H0) {
		errors = append(errors, ValidationError{
			Field:   "cosmology.h0_km_s_mpc",
			Message: "h0_km_s_mpc must be positive",
		})
	}

	return errors
}

func (c *Config) validateIntegration() ValidationErrors {
	var errors ValidationErrors
	ic := c.Integration

	if !(ic.RelTol >= 0 && ic.RelTol <= maxRelTol) {
		errors = append(errors, ValidationError{
			Field:   "integration.rel_tol",
			Message: fmt.Sprintf("rel_tol must be between 0 and %g", maxRelTol),
		})
	}

	if !(ic.AbsTol >= 0) || math.IsInf(ic.AbsTol, 0) {
		errors = append(errors, ValidationError{
			Field:   "integration.abs_tol",
			Message: "abs_tol cannot be negative",
		})
	}

	if ic.RelTol == 0 && ic.AbsTol == 0 {
		errors = append(errors, ValidationError{
			Field:   "integration",
			Message: "at least one of rel_tol and abs_tol must be positive",
		})
	}

	if ic.MaxIntervals < 1 {
		errors = append(errors, ValidationError{
			Field:   "integration.max_intervals",
			Message: "max_intervals must be at least 1",
		})
	}

	return errors
}

func (c *Config) validateCollapse() ValidationErrors {
	var errors ValidationErrors

	if !positive(c.Collapse.Overdensity) {
		errors = append(errors, ValidationError{
			Field:   "collapse.overdensity",
			Message: "overdensity must be positive",
		})
	}

	if !positive(c.Collapse.ReferenceMassLog) {
		errors = append(errors, ValidationError{
			Field:   "collapse.reference_mass_log",
			Message: "reference_mass_log must be positive (log10 solar masses)",
		})
	}

	return errors
}

func (c *Config) validateMassLimit() ValidationErrors {
	var errors ValidationErrors

	if !fraction(c.MassLimit.SFE) {
		errors = append(errors, ValidationError{
			Field:   "mass_limit.sfe",
			Message: "sfe must be in (0, 1]",
		})
	}

	if !fraction(c.MassLimit.SFTimeFraction) {
		errors = append(errors, ValidationError{
			Field:   "mass_limit.sf_time_fraction",
			Message: "sf_time_fraction must be in (0, 1]",
		})
	}

	return errors
}

func (c *Config) validateCatalog() ValidationErrors {
	var errors ValidationErrors

	if !fraction(c.Catalog.ProgenitorSFE) {
		errors = append(errors, ValidationError{
			Field:   "catalog.progenitor_sfe",
			Message: "progenitor_sfe must be in (0, 1]",
		})
	}

	return errors
}

func (c *Config) validateGrids() ValidationErrors {
	var errors ValidationErrors

	grids := []struct {
		name   string
		values []float64
	}{
		{"epochs", c.Grids.Epochs},
		{"mass_limits", c.Grids.MassLimits},
		{"feasibility", c.Grids.Feasibility},
		{"growth", c.Grids.Growth},
	}
	for _, g := range grids {
		if len(g.values) == 0 {
			errors = append(errors, ValidationError{
				Field:   "grids." + g.name,
				Message: "at least one redshift is required",
			})
			continue
		}
		for i, z := range g.values {
			if !(z >= 0) || math.IsInf(z, 0) {
				errors = append(errors, ValidationError{
					Field:   fmt.Sprintf("grids.%s[%d]", g.name, i),
					Message: "redshift must be finite and non-negative",
				})
			}
		}
	}

	if !(c.Grids.EnhancementRedshift >= 0) || math.IsInf(c.Grids.EnhancementRedshift, 0) {
		errors = append(errors, ValidationError{
			Field:   "grids.enhancement_redshift",
			Message: "enhancement_redshift must be finite and non-negative",
		})
	}

	if c.Grids.SeriesPoints < 2 {
		errors = append(errors, ValidationError{
			Field:   "grids.series_points",
			Message: "series_points must be at least 2",
		})
	}

	return errors
}

func (c *Config) validateProcessing() ValidationErrors {
	var errors ValidationErrors

	if c.Processing.Concurrency <= 0 {
		errors = append(errors, ValidationError{
			Field:   "processing.concurrency",
			Message: "concurrency must be positive",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func fraction(v float64) bool {
	return v > 0 && v <= 1
}
