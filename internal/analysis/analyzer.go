// Package analysis runs the modified-inertia study over the configured
// redshift grids and galaxy catalog: epoch table, per-galaxy collapse
// assessment, stellar mass limits, feasibility grid, growth and peak-height
// analysis, and the data series behind the summary figure.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/dbsmedya/goinertia/internal/catalog"
	"github.com/dbsmedya/goinertia/internal/collapse"
	"github.com/dbsmedya/goinertia/internal/config"
	"github.com/dbsmedya/goinertia/internal/cosmology"
	"github.com/dbsmedya/goinertia/internal/inertia"
	"github.com/dbsmedya/goinertia/internal/logger"
	"github.com/dbsmedya/goinertia/internal/masslimit"
	"github.com/dbsmedya/goinertia/internal/metrics"
)

// Operation labels recorded per evaluation.
const (
	OpEpoch       = "epoch"
	OpCollapse    = "collapse"
	OpMassLimit   = "mass_limit"
	OpGrowth      = "growth"
	OpSeriesPoint = "series_point"
)

// Analyzer wires the physics models to one configuration.
// It is safe for concurrent use.
type Analyzer struct {
	cfg      *config.Config
	cosmo    *cosmology.Model
	solver   *inertia.Solver
	collapse *collapse.Model
	masses   *masslimit.Model
	catalog  *catalog.Catalog
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

// New builds the models from cfg. A nil logger logs nowhere; a nil metrics
// records nothing.
func New(cfg *config.Config, cat *catalog.Catalog, log *logger.Logger, m *metrics.Metrics) (*Analyzer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if log == nil {
		log = logger.NewNop()
	}

	opts := []cosmology.Option{cosmology.WithIntegrator(cfg.Integration.Integrator())}
	if m != nil {
		opts = append(opts, cosmology.WithRecorder(m))
	}
	cosmo, err := cosmology.NewModel(cfg.Cosmology.Parameters(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build cosmology model: %w", err)
	}

	solver := inertia.NewSolver(cosmo)
	return &Analyzer{
		cfg:      cfg,
		cosmo:    cosmo,
		solver:   solver,
		collapse: collapse.NewModel(cosmo, solver),
		masses:   masslimit.NewModel(cosmo),
		catalog:  cat,
		logger:   log,
		metrics:  m,
	}, nil
}

// Cosmology returns the background model.
func (a *Analyzer) Cosmology() *cosmology.Model {
	return a.cosmo
}

// Catalog returns the galaxy catalog.
func (a *Analyzer) Catalog() *catalog.Catalog {
	return a.catalog
}

// Config returns the configuration the analyzer was built from.
func (a *Analyzer) Config() *config.Config {
	return a.cfg
}

// Collapse evaluates a single cloud of baryonic mass (kg) at redshift z with
// the configured overdensity.
func (a *Analyzer) Collapse(mass, z float64) (*collapse.Result, error) {
	a.metrics.ObserveEvaluation(OpCollapse)
	r, err := a.collapse.Timescale(mass, z, a.cfg.Collapse.Overdensity)
	if err != nil {
		return nil, err
	}
	a.logger.Debugw("Collapse evaluated",
		"z", z,
		"mass_msun", r.BaryonicMassMsun(),
		"radius_kpc", r.RadiusKpc(),
		"g_over_a0", r.AccelerationRatio,
		"t_mod_myr", r.FreeFallBlendedMyr(),
	)
	return r, nil
}

// batch runs one named section through the bounded worker pool.
func batch[T, R any](ctx context.Context, a *Analyzer, name string, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	start := time.Now()
	a.logger.Infow("Starting batch", "batch", name, "items", len(items), "concurrency", a.cfg.Processing.Concurrency)

	out, err := evaluate(ctx, a.cfg.Processing.Concurrency, items, fn)
	elapsed := time.Since(start)
	a.metrics.ObserveBatch(name, elapsed)
	if err != nil {
		a.logger.Errorw("Batch failed", "batch", name, "error", err)
		return nil, fmt.Errorf("failed to compute %s: %w", name, err)
	}

	a.logger.Infow("Batch completed", "batch", name, "items", len(items), "duration", elapsed)
	return out, nil
}
