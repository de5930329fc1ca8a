package analysis

import (
	"context"
	"fmt"

	"github.com/dbsmedya/goinertia/internal/cosmology"
	"github.com/dbsmedya/goinertia/internal/masslimit"
	"github.com/dbsmedya/goinertia/internal/units"
)

// MassLimitRow compares the stellar mass ceilings at one redshift.
type MassLimitRow struct {
	Z           float64
	Age         float64           // s
	Standard    *masslimit.Result // at the configured SFE
	StandardMax *masslimit.Result // at SFE = 1
	Modified    *masslimit.Result
	PeakHeight  float64 // nu of a sigma0 = 2 fluctuation collapsing at Z
}

// AgeMyr returns the cosmic age in Myr.
func (r MassLimitRow) AgeMyr() float64 { return units.ToMyr(r.Age) }

// MassLimits tabulates the standard and modified stellar mass limits over the
// mass-limit grid.
func (a *Analyzer) MassLimits(ctx context.Context) ([]MassLimitRow, error) {
	return batch(ctx, a, "mass_limits", a.cfg.Grids.MassLimits, func(_ context.Context, z float64) (MassLimitRow, error) {
		row, err := a.massLimitRow(z)
		if err != nil {
			return MassLimitRow{}, fmt.Errorf("mass limit z=%g: %w", z, err)
		}
		return row, nil
	})
}

func (a *Analyzer) massLimitRow(z float64) (MassLimitRow, error) {
	a.metrics.ObserveEvaluation(OpMassLimit)

	age, err := a.cosmo.CosmicAge(z)
	if err != nil {
		return MassLimitRow{}, err
	}
	std, err := a.masses.Standard(z, a.cfg.MassLimit.SFE)
	if err != nil {
		return MassLimitRow{}, err
	}
	stdMax, err := a.masses.Standard(z, 1.0)
	if err != nil {
		return MassLimitRow{}, err
	}
	mod, err := a.masses.Modified(z, a.cfg.MassLimit.SFTimeFraction)
	if err != nil {
		return MassLimitRow{}, err
	}
	nu, err := a.cosmo.PeakHeight(z, cosmology.DefaultSigma0, cosmology.DefaultDeltaC)
	if err != nil {
		return MassLimitRow{}, err
	}

	a.logger.Debugw("Mass limits evaluated",
		"z", z,
		"log_mstar_standard", std.LogStellarMass(),
		"log_mstar_modified", mod.LogStellarMass(),
	)
	return MassLimitRow{
		Z:           z,
		Age:         age,
		Standard:    std,
		StandardMax: stdMax,
		Modified:    mod,
		PeakHeight:  nu,
	}, nil
}
