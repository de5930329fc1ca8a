// Package collapse estimates how fast a uniform protogalactic cloud
// collapses under standard gravity and under modified inertia.
package collapse

import (
	"fmt"
	"math"

	"github.com/dbsmedya/goinertia/internal/cosmology"
	"github.com/dbsmedya/goinertia/internal/domain"
	"github.com/dbsmedya/goinertia/internal/inertia"
	"github.com/dbsmedya/goinertia/internal/units"
)

// DefaultOverdensity is the cloud density in units of the cosmic mean at turnaround.
const DefaultOverdensity = 5.0

// Result holds every intermediate and final quantity of one collapse
// evaluation, in SI units.
type Result struct {
	BaryonicMass float64 // kg
	Redshift     float64
	Overdensity  float64

	CloudDensity         float64 // kg/m^3
	Radius               float64 // m
	EdgeAcceleration     float64 // G M / R^2, m/s^2
	CriticalAcceleration float64 // a0(z), m/s^2
	AccelerationRatio    float64 // g / a0
	ModifiedAcceleration float64 // m/s^2
	Enhancement          float64 // a_mod / g

	FreeFallStandard float64 // sqrt(3 pi / (32 G rho)), s
	FreeFallScaled   float64 // t_std / sqrt(eta), s
	FreeFallConstant float64 // sqrt(2 R / a0), s
	FreeFallBlended  float64 // geometric mean of scaled and constant, s
}

// BaryonicMassMsun returns the cloud mass in solar masses.
func (r *Result) BaryonicMassMsun() float64 { return units.ToMsun(r.BaryonicMass) }

// RadiusKpc returns the cloud radius in kiloparsecs.
func (r *Result) RadiusKpc() float64 { return units.ToKpc(r.Radius) }

// FreeFallStandardMyr returns the standard free-fall time in Myr.
func (r *Result) FreeFallStandardMyr() float64 { return units.ToMyr(r.FreeFallStandard) }

// FreeFallScaledMyr returns the sqrt(eta)-scaled estimate in Myr.
func (r *Result) FreeFallScaledMyr() float64 { return units.ToMyr(r.FreeFallScaled) }

// FreeFallConstantMyr returns the constant-acceleration estimate in Myr.
func (r *Result) FreeFallConstantMyr() float64 { return units.ToMyr(r.FreeFallConstant) }

// FreeFallBlendedMyr returns the reported modified collapse time in Myr.
func (r *Result) FreeFallBlendedMyr() float64 { return units.ToMyr(r.FreeFallBlended) }

// SpeedUp returns how many times faster the modified collapse is.
func (r *Result) SpeedUp() float64 { return r.FreeFallStandard / r.FreeFallBlended }

// Model computes collapse timescales.
type Model struct {
	cosmo  *cosmology.Model
	solver *inertia.Solver
}

// NewModel creates a collapse Model.
func NewModel(cosmo *cosmology.Model, solver *inertia.Solver) *Model {
	return &Model{cosmo: cosmo, solver: solver}
}

// Timescale models a uniform sphere of baryonic mass (kg) at redshift z with
// density overdensity times the cosmic mean.
//
// Two modified estimates are combined: the free-fall time scaled by
// 1/sqrt(eta), and the constant-acceleration time sqrt(2R/a0) that holds
// deep in the modified regime. The reported time is their geometric mean.
func (m *Model) Timescale(mass, z, overdensity float64) (*Result, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return nil, domain.Invalid("mass", mass, "baryonic mass must be positive and finite")
	}
	if !(overdensity > 0) || math.IsInf(overdensity, 0) {
		return nil, domain.Invalid("overdensity", overdensity, "overdensity must be positive and finite")
	}

	rhoMean, err := m.cosmo.MeanMatterDensity(z)
	if err != nil {
		return nil, err
	}
	grav := m.cosmo.Parameters().G

	rho := overdensity * rhoMean
	radius := math.Cbrt(3 * mass / (4 * math.Pi * rho))
	g := grav * mass / (radius * radius)

	tStd := math.Sqrt(3 * math.Pi / (32 * grav * rho))

	acc, err := m.solver.ModifiedAcceleration(g, z)
	if err != nil {
		return nil, fmt.Errorf("failed to solve modified acceleration: %w", err)
	}

	tScaled := tStd / math.Sqrt(acc.Enhancement)
	tConst := math.Sqrt(2 * radius / acc.Critical)
	tBlend := math.Sqrt(tScaled * tConst)

	return &Result{
		BaryonicMass:         mass,
		Redshift:             z,
		Overdensity:          overdensity,
		CloudDensity:         rho,
		Radius:               radius,
		EdgeAcceleration:     g,
		CriticalAcceleration: acc.Critical,
		AccelerationRatio:    acc.Ratio(),
		ModifiedAcceleration: acc.Modified,
		Enhancement:          acc.Enhancement,
		FreeFallStandard:     tStd,
		FreeFallScaled:       tScaled,
		FreeFallConstant:     tConst,
		FreeFallBlended:      tBlend,
	}, nil
}
