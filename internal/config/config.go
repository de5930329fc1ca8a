// Package config provides configuration structures and loading for goinertia.
package config

import (
	"github.com/dbsmedya/goinertia/internal/cosmology"
	"github.com/dbsmedya/goinertia/internal/quad"
	"github.com/dbsmedya/goinertia/internal/units"
)

// Config represents the complete application configuration.
type Config struct {
	Cosmology   CosmologyConfig   `yaml:"cosmology" mapstructure:"cosmology"`
	Integration IntegrationConfig `yaml:"integration" mapstructure:"integration"`
	Collapse    CollapseConfig    `yaml:"collapse" mapstructure:"collapse"`
	MassLimit   MassLimitConfig   `yaml:"mass_limit" mapstructure:"mass_limit"`
	Catalog     CatalogConfig     `yaml:"catalog" mapstructure:"catalog"`
	Grids       GridsConfig       `yaml:"grids" mapstructure:"grids"`
	Processing  ProcessingConfig  `yaml:"processing" mapstructure:"processing"`
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Metrics     MetricsConfig     `yaml:"metrics" mapstructure:"metrics"`
}

// CosmologyConfig holds the background density fractions and Hubble constant.
type CosmologyConfig struct {
	OmegaM float64 `yaml:"omega_m" mapstructure:"omega_m"`
	OmegaR float64 `yaml:"omega_r" mapstructure:"omega_r"`
	OmegaL float64 `yaml:"omega_l" mapstructure:"omega_l"`
	OmegaB float64 `yaml:"omega_b" mapstructure:"omega_b"`
	H0     float64 `yaml:"h0_km_s_mpc" mapstructure:"h0_km_s_mpc"` // km/s/Mpc
}

// IntegrationConfig holds quadrature tolerances.
type IntegrationConfig struct {
	RelTol       float64 `yaml:"rel_tol" mapstructure:"rel_tol"`
	AbsTol       float64 `yaml:"abs_tol" mapstructure:"abs_tol"`
	MaxIntervals int     `yaml:"max_intervals" mapstructure:"max_intervals"`
}

// CollapseConfig holds cloud model settings.
type CollapseConfig struct {
	Overdensity      float64 `yaml:"overdensity" mapstructure:"overdensity"`
	ReferenceMassLog float64 `yaml:"reference_mass_log" mapstructure:"reference_mass_log"` // log10 Msun
}

// MassLimitConfig holds the star formation parameters of the mass-limit estimators.
type MassLimitConfig struct {
	SFE            float64 `yaml:"sfe" mapstructure:"sfe"`
	SFTimeFraction float64 `yaml:"sf_time_fraction" mapstructure:"sf_time_fraction"`
}

// CatalogConfig selects the galaxy catalog.
type CatalogConfig struct {
	Path          string  `yaml:"path" mapstructure:"path"` // empty = embedded catalog
	ProgenitorSFE float64 `yaml:"progenitor_sfe" mapstructure:"progenitor_sfe"`
}

// GridsConfig holds the redshift grids of each analysis section.
type GridsConfig struct {
	Epochs              []float64 `yaml:"epochs" mapstructure:"epochs"`
	MassLimits          []float64 `yaml:"mass_limits" mapstructure:"mass_limits"`
	Feasibility         []float64 `yaml:"feasibility" mapstructure:"feasibility"`
	Growth              []float64 `yaml:"growth" mapstructure:"growth"`
	EnhancementRedshift float64   `yaml:"enhancement_redshift" mapstructure:"enhancement_redshift"`
	SeriesPoints        int       `yaml:"series_points" mapstructure:"series_points"`
}

// ProcessingConfig represents batch evaluation settings.
type ProcessingConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// MetricsConfig represents the Prometheus textfile export.
type MetricsConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // empty = disabled
}

// DefaultConfig returns a Config with the Planck 2018 cosmology and the
// analysis grids of the reference study.
func DefaultConfig() *Config {
	planck := cosmology.Planck18()
	integ := quad.Default()
	return &Config{
		Cosmology: CosmologyConfig{
			OmegaM: planck.OmegaM,
			OmegaR: planck.OmegaR,
			OmegaL: planck.OmegaL,
			OmegaB: planck.OmegaB,
			H0:     67.4,
		},
		Integration: IntegrationConfig{
			RelTol:       integ.RelTol,
			AbsTol:       integ.AbsTol,
			MaxIntervals: integ.MaxIntervals,
		},
		Collapse: CollapseConfig{
			Overdensity:      5.0,
			ReferenceMassLog: 10,
		},
		MassLimit: MassLimitConfig{
			SFE:            0.1,
			SFTimeFraction: 0.5,
		},
		Catalog: CatalogConfig{
			ProgenitorSFE: 0.1,
		},
		Grids: GridsConfig{
			Epochs:              []float64{0, 2, 4, 6, 8, 10, 12, 14, 17, 20},
			MassLimits:          []float64{6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 17, 20},
			Feasibility:         []float64{6, 8, 10, 12, 14, 17, 20},
			Growth:              []float64{2, 4, 6, 8, 10, 12, 14},
			EnhancementRedshift: 12,
			SeriesPoints:        100,
		},
		Processing: ProcessingConfig{
			Concurrency: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Parameters converts the configured cosmology to model parameters.
func (c CosmologyConfig) Parameters() cosmology.Parameters {
	return cosmology.Parameters{
		OmegaM: c.OmegaM,
		OmegaR: c.OmegaR,
		OmegaL: c.OmegaL,
		OmegaB: c.OmegaB,
		H0:     units.HubbleFromKmSMpc(c.H0),
		C:      units.C,
		G:      units.G,
	}
}

// Integrator converts the configured tolerances to a quadrature integrator.
func (c IntegrationConfig) Integrator() *quad.Integrator {
	return &quad.Integrator{
		RelTol:       c.RelTol,
		AbsTol:       c.AbsTol,
		MaxIntervals: c.MaxIntervals,
	}
}
