package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/dbsmedya/goinertia/internal/units"
)

// Series names.
const (
	SeriesCriticalAcceleration = "critical_acceleration"
	SeriesCollapseTimes        = "collapse_times"
	SeriesStellarMassLimits    = "stellar_mass_limits"
	SeriesAccelerationRatio    = "acceleration_ratio"
	SeriesGalaxies             = "galaxies"
)

// Series is one table of figure data. When Labels is non-empty it is a
// leading text column and Columns names it first.
type Series struct {
	Name    string
	Columns []string
	Labels  []string
	Rows    [][]float64
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// Series computes the data behind the four summary panels plus the observed
// galaxies. The base resolution is grids.series_points; the a0(z) curve uses
// twice as many points and the mass-limit curves half as many.
func (a *Analyzer) Series(ctx context.Context) ([]*Series, error) {
	n := a.cfg.Grids.SeriesPoints

	builders := []func(context.Context, int) (*Series, error){
		a.criticalAccelerationSeries,
		a.collapseTimesSeries,
		a.stellarMassLimitSeries,
		a.accelerationRatioSeries,
	}

	out := make([]*Series, 0, len(builders)+1)
	for _, build := range builders {
		s, err := build(ctx, n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	out = append(out, a.galaxySeries())
	return out, nil
}

func (a *Analyzer) criticalAccelerationSeries(ctx context.Context, n int) (*Series, error) {
	a0Now, err := a.cosmo.CriticalAcceleration(0)
	if err != nil {
		return nil, err
	}
	rows, err := batch(ctx, a, SeriesCriticalAcceleration, Linspace(0, 25, 2*n), func(_ context.Context, z float64) ([]float64, error) {
		a.metrics.ObserveEvaluation(OpSeriesPoint)
		a0, err := a.cosmo.CriticalAcceleration(z)
		if err != nil {
			return nil, err
		}
		return []float64{z, a0, a0 / a0Now}, nil
	})
	if err != nil {
		return nil, err
	}
	return &Series{
		Name:    SeriesCriticalAcceleration,
		Columns: []string{"z", "a0_m_s2", "a0_over_a0_today"},
		Rows:    rows,
	}, nil
}

func (a *Analyzer) collapseTimesSeries(ctx context.Context, n int) (*Series, error) {
	mass := a.ReferenceMass()
	rows, err := batch(ctx, a, SeriesCollapseTimes, Linspace(5, 22, n), func(_ context.Context, z float64) ([]float64, error) {
		a.metrics.ObserveEvaluation(OpSeriesPoint)
		r, err := a.collapse.Timescale(mass, z, a.cfg.Collapse.Overdensity)
		if err != nil {
			return nil, err
		}
		avail, err := a.masses.AvailableTime(z)
		if err != nil {
			return nil, err
		}
		return []float64{z, units.ToMyr(avail), r.FreeFallStandardMyr(), r.FreeFallBlendedMyr()}, nil
	})
	if err != nil {
		return nil, err
	}
	return &Series{
		Name:    SeriesCollapseTimes,
		Columns: []string{"z", "t_avail_myr", "t_ff_std_myr", "t_ff_mod_myr"},
		Rows:    rows,
	}, nil
}

func (a *Analyzer) stellarMassLimitSeries(ctx context.Context, n int) (*Series, error) {
	points := n / 2
	if points < 2 {
		points = 2
	}
	rows, err := batch(ctx, a, SeriesStellarMassLimits, Linspace(5, 18, points), func(_ context.Context, z float64) ([]float64, error) {
		a.metrics.ObserveEvaluation(OpSeriesPoint)
		full, err := a.masses.Standard(z, 1.0)
		if err != nil {
			return nil, err
		}
		cfgSFE, err := a.masses.Standard(z, a.cfg.MassLimit.SFE)
		if err != nil {
			return nil, err
		}
		mod, err := a.masses.Modified(z, a.cfg.MassLimit.SFTimeFraction)
		if err != nil {
			return nil, err
		}
		return []float64{z, full.LogStellarMass(), cfgSFE.LogStellarMass(), logOrNaN(mod.StellarMassMsun())}, nil
	})
	if err != nil {
		return nil, err
	}
	return &Series{
		Name:    SeriesStellarMassLimits,
		Columns: []string{"z", "log_mstar_lcdm_sfe100", fmt.Sprintf("log_mstar_lcdm_sfe%.4g", 100*a.cfg.MassLimit.SFE), "log_mstar_modified"},
		Rows:    rows,
	}, nil
}

var ratioMasses = []float64{9, 10, 11}

func (a *Analyzer) accelerationRatioSeries(ctx context.Context, n int) (*Series, error) {
	rows, err := batch(ctx, a, SeriesAccelerationRatio, Linspace(5, 20, n), func(_ context.Context, z float64) ([]float64, error) {
		a.metrics.ObserveEvaluation(OpSeriesPoint)
		row := []float64{z}
		for _, logM := range ratioMasses {
			r, err := a.collapse.Timescale(units.FromLog10Msun(logM), z, a.cfg.Collapse.Overdensity)
			if err != nil {
				return nil, err
			}
			row = append(row, r.AccelerationRatio)
		}
		return row, nil
	})
	if err != nil {
		return nil, err
	}

	cols := []string{"z"}
	for _, logM := range ratioMasses {
		cols = append(cols, fmt.Sprintf("g_over_a0_1e%gmsun", logM))
	}
	return &Series{Name: SeriesAccelerationRatio, Columns: cols, Rows: rows}, nil
}

func (a *Analyzer) galaxySeries() *Series {
	obs := a.catalog.Observations()
	s := &Series{
		Name:    SeriesGalaxies,
		Columns: []string{"name", "z", "log_mstar", "log_mstar_err"},
		Labels:  make([]string, 0, len(obs)),
		Rows:    make([][]float64, 0, len(obs)),
	}
	for _, o := range obs {
		s.Labels = append(s.Labels, o.Name)
		s.Rows = append(s.Rows, []float64{o.Redshift, o.Log10Mass, o.Log10MassErr})
	}
	return s
}

func logOrNaN(v float64) float64 {
	if v <= 0 {
		return math.NaN()
	}
	return math.Log10(v)
}
