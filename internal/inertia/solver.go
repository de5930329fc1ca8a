// Package inertia maps a Newtonian acceleration to the self-consistent
// acceleration under modified inertia.
//
// With inertial mass m_i(a) = m_g [1 - (a0/a)^2] the equation of motion
// m_i a = m_g g becomes a^2 - g a - a0^2 = 0, whose positive root is
//
//	a = (g + sqrt(g^2 + 4 a0^2)) / 2
//
// For g >> a0 the enhancement a/g tends to 1 (Newtonian limit); for g << a0
// the acceleration tends to a0 and the enhancement to a0/g.
package inertia

import (
	"fmt"
	"math"

	"github.com/dbsmedya/goinertia/internal/cosmology"
	"github.com/dbsmedya/goinertia/internal/domain"
)

// Acceleration is the solution at one (g, z) pair. All values in m/s^2
// except Enhancement, which is dimensionless.
type Acceleration struct {
	Newtonian   float64
	Critical    float64
	Modified    float64
	Enhancement float64
}

// Ratio returns g / a0.
func (a Acceleration) Ratio() float64 {
	return a.Newtonian / a.Critical
}

// Solver evaluates the modified-inertia law against a background model.
type Solver struct {
	cosmo *cosmology.Model
}

// NewSolver creates a Solver.
func NewSolver(cosmo *cosmology.Model) *Solver {
	return &Solver{cosmo: cosmo}
}

// ModifiedAcceleration solves the consistency relation for Newtonian
// acceleration g at redshift z.
func (s *Solver) ModifiedAcceleration(g, z float64) (Acceleration, error) {
	if math.IsNaN(g) || math.IsInf(g, 0) || g < 0 {
		return Acceleration{}, domain.Invalid("g", g, "newtonian acceleration must be finite and non-negative")
	}
	if g == 0 {
		return Acceleration{}, fmt.Errorf("cannot compute enhancement at z=%g: %w", z, domain.ErrZeroAcceleration)
	}

	a0, err := s.cosmo.CriticalAcceleration(z)
	if err != nil {
		return Acceleration{}, err
	}

	mod := Solve(g, a0)
	return Acceleration{
		Newtonian:   g,
		Critical:    a0,
		Modified:    mod,
		Enhancement: mod / g,
	}, nil
}

// Solve returns the positive root of a^2 - g a - a0^2 = 0.
func Solve(g, a0 float64) float64 {
	return (g + math.Hypot(g, 2*a0)) / 2
}

// Residual returns a^2 - g a - a0^2.
func Residual(a, g, a0 float64) float64 {
	return a*a - g*a - a0*a0
}
