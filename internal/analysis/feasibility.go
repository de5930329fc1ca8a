package analysis

import (
	"context"
	"fmt"

	"github.com/dbsmedya/goinertia/internal/collapse"
	"github.com/dbsmedya/goinertia/internal/units"
)

// FeasibilityRow compares the collapse time of the reference cloud with the
// time available at one redshift.
type FeasibilityRow struct {
	Z             float64
	Collapse      *collapse.Result
	AvailableTime float64 // s
	Collapses     float64 // AvailableTime / modified collapse time
	Feasible      bool    // at least one modified collapse fits
}

// AvailableTimeMyr returns the available time in Myr.
func (r FeasibilityRow) AvailableTimeMyr() float64 { return units.ToMyr(r.AvailableTime) }

// ReferenceMass returns the baryonic mass (kg) of the feasibility-grid cloud.
func (a *Analyzer) ReferenceMass() float64 {
	return units.FromLog10Msun(a.cfg.Collapse.ReferenceMassLog)
}

// Feasibility evaluates the reference cloud over the feasibility grid.
func (a *Analyzer) Feasibility(ctx context.Context) ([]FeasibilityRow, error) {
	mass := a.ReferenceMass()
	return batch(ctx, a, "feasibility", a.cfg.Grids.Feasibility, func(_ context.Context, z float64) (FeasibilityRow, error) {
		r, err := a.Collapse(mass, z)
		if err != nil {
			return FeasibilityRow{}, fmt.Errorf("feasibility z=%g: %w", z, err)
		}
		avail, err := a.masses.AvailableTime(z)
		if err != nil {
			return FeasibilityRow{}, fmt.Errorf("feasibility z=%g: %w", z, err)
		}
		n := avail / r.FreeFallBlended
		return FeasibilityRow{
			Z:             z,
			Collapse:      r,
			AvailableTime: avail,
			Collapses:     n,
			Feasible:      n >= 1,
		}, nil
	})
}
