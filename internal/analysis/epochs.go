package analysis

import (
	"context"
	"fmt"

	"github.com/dbsmedya/goinertia/internal/units"
)

// EpochRow is one line of the critical-acceleration table.
type EpochRow struct {
	Z       float64
	E       float64 // H(z)/H0
	A0      float64 // m/s^2
	A0Ratio float64 // a0(z)/a0(0)
	Age     float64 // s
}

// AgeMyr returns the cosmic age in Myr.
func (r EpochRow) AgeMyr() float64 { return units.ToMyr(r.Age) }

// Epochs tabulates E(z), a0(z) and the cosmic age over the epoch grid.
func (a *Analyzer) Epochs(ctx context.Context) ([]EpochRow, error) {
	a0Now, err := a.cosmo.CriticalAcceleration(0)
	if err != nil {
		return nil, err
	}

	return batch(ctx, a, "epochs", a.cfg.Grids.Epochs, func(_ context.Context, z float64) (EpochRow, error) {
		a.metrics.ObserveEvaluation(OpEpoch)
		st, err := a.cosmo.State(z)
		if err != nil {
			return EpochRow{}, fmt.Errorf("epoch z=%g: %w", z, err)
		}
		return EpochRow{
			Z:       z,
			E:       st.E,
			A0:      st.A0,
			A0Ratio: st.A0 / a0Now,
			Age:     st.Age,
		}, nil
	})
}
