// Package cosmology implements the homogeneous background model: expansion
// rate, critical acceleration scale, cosmic age and linear growth factor as
// functions of redshift.
package cosmology

import (
	"math"

	"github.com/dbsmedya/goinertia/internal/domain"
	"github.com/dbsmedya/goinertia/internal/units"
)

// FlatnessTolerance bounds |OmegaM + OmegaR + OmegaL - 1|.
const FlatnessTolerance = 1e-9

// Parameters are the fixed cosmological constants of a run.
type Parameters struct {
	OmegaM float64 // matter density fraction
	OmegaR float64 // radiation density fraction
	OmegaL float64 // dark-energy density fraction
	OmegaB float64 // baryon density fraction
	H0     float64 // present-day Hubble rate, 1/s
	C      float64 // speed of light, m/s
	G      float64 // gravitational constant, m^3 kg^-1 s^-2
}

// Planck18 returns the Planck 2018 parameters with H0 = 67.4 km/s/Mpc.
// The dark-energy fraction closes the flat-universe constraint.
func Planck18() Parameters {
	const (
		omegaM = 0.315
		omegaR = 9.1e-5
	)
	return Parameters{
		OmegaM: omegaM,
		OmegaR: omegaR,
		OmegaL: 1 - omegaM - omegaR,
		OmegaB: 0.0493,
		H0:     units.HubbleFromKmSMpc(67.4),
		C:      units.C,
		G:      units.G,
	}
}

// Validate checks the density fractions and physical constants.
func (p Parameters) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"omega_m", p.OmegaM},
		{"omega_r", p.OmegaR},
		{"omega_l", p.OmegaL},
		{"omega_b", p.OmegaB},
		{"h0", p.H0},
		{"c", p.C},
		{"g", p.G},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return domain.Invalid(f.name, f.value, "must be finite")
		}
	}

	if p.OmegaM <= 0 {
		return domain.Invalid("omega_m", p.OmegaM, "must be positive")
	}
	if p.OmegaR < 0 {
		return domain.Invalid("omega_r", p.OmegaR, "cannot be negative")
	}
	if p.OmegaL < 0 {
		return domain.Invalid("omega_l", p.OmegaL, "cannot be negative")
	}
	if sum := p.OmegaM + p.OmegaR + p.OmegaL; math.Abs(sum-1) > FlatnessTolerance {
		return domain.Invalid("omega_m+omega_r+omega_l", sum, "density fractions must sum to 1")
	}
	if p.OmegaB <= 0 || p.OmegaB > p.OmegaM {
		return domain.Invalid("omega_b", p.OmegaB, "must be positive and at most omega_m")
	}
	if p.H0 <= 0 {
		return domain.Invalid("h0", p.H0, "must be positive")
	}
	if p.C <= 0 {
		return domain.Invalid("c", p.C, "must be positive")
	}
	if p.G <= 0 {
		return domain.Invalid("g", p.G, "must be positive")
	}
	return nil
}

// BaryonFraction is OmegaB / OmegaM.
func (p Parameters) BaryonFraction() float64 {
	return p.OmegaB / p.OmegaM
}

// CriticalDensity0 is the present-day critical density 3 H0^2 / (8 pi G) in kg/m^3.
func (p Parameters) CriticalDensity0() float64 {
	return 3 * p.H0 * p.H0 / (8 * math.Pi * p.G)
}
