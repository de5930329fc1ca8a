// Package masslimit estimates the largest stellar mass that can be assembled
// by redshift z under standard structure formation and under modified
// inertia.
package masslimit

import (
	"fmt"
	"math"

	"github.com/dbsmedya/goinertia/internal/cosmology"
	"github.com/dbsmedya/goinertia/internal/domain"
	"github.com/dbsmedya/goinertia/internal/units"
)

// Scenario identifies which framework produced a Result.
type Scenario string

const (
	ScenarioStandard Scenario = "standard"
	ScenarioModified Scenario = "modified"
)

// Defaults for the two estimators.
const (
	DefaultSFE            = 0.1
	DefaultSFTimeFraction = 0.5
)

// Standard estimator constants.
const (
	// PeakHeight is the significance of the rarest halo expected in the
	// observable volume.
	PeakHeight = 4.0
	// Sigma8 is the present-day rms fluctuation on 8 Mpc/h.
	Sigma8 = 0.811
	// PivotHaloMass is the halo mass, in solar masses, at which sigma = Sigma8.
	PivotHaloMass = 1e13
)

// Modified estimator constants.
const (
	OnsetRedshift      = 30.0
	CollapseTime       = 20 * units.Myr
	GenerationYield    = 0.1
	MaxEfficiency      = 0.5
	ReservoirVolumeMpc = 1.0
)

// Result is one mass-limit estimate. Masses are in kg.
type Result struct {
	Redshift    float64
	Scenario    Scenario
	StellarMass float64
	// ReservoirMass is the host halo mass for the standard scenario and the
	// baryon reservoir for the modified one.
	ReservoirMass float64
	Efficiency    float64
	// Generations is the number of collapse cycles; zero for the standard scenario.
	Generations float64
	// PeakHeight is set only for the standard scenario.
	PeakHeight float64
	// SigmaNeeded is set only for the standard scenario.
	SigmaNeeded float64
	// AvailableTime is set only for the modified scenario, in seconds.
	AvailableTime float64
}

// StellarMassMsun returns the stellar mass in solar masses.
func (r *Result) StellarMassMsun() float64 { return units.ToMsun(r.StellarMass) }

// LogStellarMass returns log10(M*/Msun).
func (r *Result) LogStellarMass() float64 { return units.Log10Msun(r.StellarMass) }

// LogReservoirMass returns log10 of the reservoir mass in solar masses.
func (r *Result) LogReservoirMass() float64 { return units.Log10Msun(r.ReservoirMass) }

// Model evaluates both estimators against one background cosmology.
type Model struct {
	cosmo *cosmology.Model
}

// NewModel creates a mass-limit Model.
func NewModel(cosmo *cosmology.Model) *Model {
	return &Model{cosmo: cosmo}
}

// Standard returns the maximum stellar mass in a LCDM universe at z for star
// formation efficiency sfe.
//
// The halo mass follows from requiring a nu = 4 peak to collapse by z:
// sigma_needed = delta_c / (nu D_norm(z)), then M_halo = M_pivot (sigma8 /
// sigma_needed)^3. The cube law is an order-of-magnitude calibration of
// sigma(M), not a fitted power spectrum.
func (m *Model) Standard(z, sfe float64) (*Result, error) {
	if !(sfe > 0 && sfe <= 1) {
		return nil, domain.Invalid("sfe", sfe, "star formation efficiency must be in (0, 1]")
	}

	d, err := m.cosmo.NormalizedGrowthFactor(z)
	if err != nil {
		return nil, fmt.Errorf("failed to compute standard mass limit: %w", err)
	}

	sigmaNeeded := cosmology.DefaultDeltaC / (PeakHeight * d)
	ratio := Sigma8 / sigmaNeeded
	halo := units.FromMsun(PivotHaloMass) * ratio * ratio * ratio
	fb := m.cosmo.Parameters().BaryonFraction()

	return &Result{
		Redshift:      z,
		Scenario:      ScenarioStandard,
		StellarMass:   sfe * fb * halo,
		ReservoirMass: halo,
		Efficiency:    sfe,
		PeakHeight:    PeakHeight,
		SigmaNeeded:   sigmaNeeded,
	}, nil
}

// Modified returns the maximum stellar mass under modified inertia at z when
// a fraction tSfFraction of the time since OnsetRedshift is spent forming
// stars.
//
// Each CollapseTime cycle converts GenerationYield of the remaining gas, so
// after n cycles the cumulative efficiency is 1 - (1-yield)^n, capped at
// MaxEfficiency. The reservoir is the mean baryon mass in ReservoirVolumeMpc
// cubic megaparsecs.
func (m *Model) Modified(z, tSfFraction float64) (*Result, error) {
	if !(tSfFraction > 0 && tSfFraction <= 1) {
		return nil, domain.Invalid("sf_time_fraction", tSfFraction, "star formation time fraction must be in (0, 1]")
	}

	avail, err := m.AvailableTime(z)
	if err != nil {
		return nil, fmt.Errorf("failed to compute modified mass limit: %w", err)
	}

	n := tSfFraction * avail / CollapseTime
	eff := Efficiency(n)

	side := ReservoirVolumeMpc * units.Mpc
	reservoir := m.cosmo.BaryonDensity0() * side * side * side

	return &Result{
		Redshift:      z,
		Scenario:      ScenarioModified,
		StellarMass:   eff * reservoir,
		ReservoirMass: reservoir,
		Efficiency:    eff,
		Generations:   n,
		AvailableTime: avail,
	}, nil
}

// AvailableTime returns age(z) - age(OnsetRedshift) in seconds, clamped at
// zero for z at or beyond the onset.
func (m *Model) AvailableTime(z float64) (float64, error) {
	age, err := m.cosmo.CosmicAge(z)
	if err != nil {
		return 0, err
	}
	if z >= OnsetRedshift {
		return 0, nil
	}
	onset, err := m.cosmo.CosmicAge(OnsetRedshift)
	if err != nil {
		return 0, err
	}
	return math.Max(age-onset, 0), nil
}

// Efficiency returns the cumulative star formation efficiency after n
// collapse generations.
func Efficiency(n float64) float64 {
	if n <= 0 {
		return 0
	}
	return math.Min(1-math.Pow(1-GenerationYield, n), MaxEfficiency)
}
