package analysis

import (
	"context"
	"fmt"

	"github.com/dbsmedya/goinertia/internal/cosmology"
)

// Rarity classifies how exceptional a fluctuation of a given peak height is.
type Rarity string

const (
	RarityCommon      Rarity = "Common"
	RarityRare        Rarity = "Rare but expected"
	RarityVeryRare    Rarity = "Very rare"
	RarityNearlyNever Rarity = "Essentially impossible"
	RarityImpossible  Rarity = "IMPOSSIBLE (>10 sigma)"
)

// RarityFor classifies peak height nu.
func RarityFor(nu float64) Rarity {
	switch {
	case nu < 3:
		return RarityCommon
	case nu < 5:
		return RarityRare
	case nu < 7:
		return RarityVeryRare
	case nu < 10:
		return RarityNearlyNever
	default:
		return RarityImpossible
	}
}

// DefaultTargetPeakHeights are the peak heights for which the required
// growth enhancement is reported.
var DefaultTargetPeakHeights = []float64{3, 4, 5}

// GrowthRow is the standard peak height of a sigma0 = 2 fluctuation.
type GrowthRow struct {
	Z          float64
	GrowthNorm float64 // D(z)/D(0)
	PeakHeight float64
	Rarity     Rarity
}

// EnhancementRow is the growth boost that would bring the peak height at the
// reference redshift down to Target.
type EnhancementRow struct {
	Target       float64
	GrowthNeeded float64 // D(z)/D(0) required
	Enhancement  float64 // GrowthNeeded / actual D(z)/D(0)
}

// Growth tabulates the normalized growth factor and peak height over the
// growth grid.
func (a *Analyzer) Growth(ctx context.Context) ([]GrowthRow, error) {
	return batch(ctx, a, "growth", a.cfg.Grids.Growth, func(_ context.Context, z float64) (GrowthRow, error) {
		a.metrics.ObserveEvaluation(OpGrowth)
		d, err := a.cosmo.NormalizedGrowthFactor(z)
		if err != nil {
			return GrowthRow{}, fmt.Errorf("growth z=%g: %w", z, err)
		}
		nu, err := a.cosmo.PeakHeight(z, cosmology.DefaultSigma0, cosmology.DefaultDeltaC)
		if err != nil {
			return GrowthRow{}, fmt.Errorf("growth z=%g: %w", z, err)
		}
		return GrowthRow{Z: z, GrowthNorm: d, PeakHeight: nu, Rarity: RarityFor(nu)}, nil
	})
}

// RequiredEnhancement returns, for each target peak height, the growth
// enhancement needed at redshift z.
func (a *Analyzer) RequiredEnhancement(z float64, targets []float64) ([]EnhancementRow, error) {
	d, err := a.cosmo.NormalizedGrowthFactor(z)
	if err != nil {
		return nil, fmt.Errorf("failed to compute growth enhancement at z=%g: %w", z, err)
	}

	rows := make([]EnhancementRow, 0, len(targets))
	for _, nu := range targets {
		if !(nu > 0) {
			return nil, fmt.Errorf("target peak height must be positive, got %g", nu)
		}
		needed := cosmology.DefaultDeltaC / (cosmology.DefaultSigma0 * nu)
		rows = append(rows, EnhancementRow{
			Target:       nu,
			GrowthNeeded: needed,
			Enhancement:  needed / d,
		})
	}
	return rows, nil
}
