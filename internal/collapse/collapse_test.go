package collapse

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/goinertia/internal/cosmology"
	"github.com/dbsmedya/goinertia/internal/domain"
	"github.com/dbsmedya/goinertia/internal/inertia"
	"github.com/dbsmedya/goinertia/internal/units"
)

func newModel(t *testing.T) *Model {
	t.Helper()
	cosmo, err := cosmology.NewModel(cosmology.Planck18())
	require.NoError(t, err)
	return NewModel(cosmo, inertia.NewSolver(cosmo))
}

func TestTimescale_ReferenceCloud(t *testing.T) {
	m := newModel(t)

	r, err := m.Timescale(units.FromMsun(1e10), 10, DefaultOverdensity)
	require.NoError(t, err)

	assert.InEpsilon(t, 1e10, r.BaryonicMassMsun(), 1e-12)
	assert.Equal(t, 10.0, r.Redshift)
	assert.Equal(t, DefaultOverdensity, r.Overdensity)

	assert.InEpsilon(t, 1.788818e-23, r.CloudDensity, 1e-6)
	assert.InDelta(t, 20.8276, r.RadiusKpc(), 1e-3)
	assert.InEpsilon(t, 3.213915e-12, r.EdgeAcceleration, 1e-6)
	assert.InEpsilon(t, 1.344078e-8, r.CriticalAcceleration, 1e-6)
	assert.InEpsilon(t, 2.391167e-4, r.AccelerationRatio, 1e-6)
	assert.InDelta(t, 4182.558, r.Enhancement, 1e-2)

	assert.InDelta(t, 497.7241, r.FreeFallStandardMyr(), 1e-3)
	assert.InDelta(t, 7.696046, r.FreeFallScaledMyr(), 1e-5)
	assert.InDelta(t, 9.799496, r.FreeFallConstantMyr(), 1e-5)
	assert.InDelta(t, 8.684318, r.FreeFallBlendedMyr(), 1e-5)

	// Deep modified regime and well under 100 Myr.
	assert.Less(t, r.AccelerationRatio, 1.0)
	assert.Less(t, r.FreeFallBlendedMyr(), 100.0)
	assert.InDelta(t, 57.31, r.SpeedUp(), 0.01)
}

func TestTimescale_MassScaling(t *testing.T) {
	m := newModel(t)

	for _, z := range []float64{6, 10, 14.2} {
		for _, logM := range []float64{8, 10, 12} {
			base, err := m.Timescale(units.FromLog10Msun(logM), z, 5)
			require.NoError(t, err)
			doubled, err := m.Timescale(2*units.FromLog10Msun(logM), z, 5)
			require.NoError(t, err)

			assert.InEpsilon(t, math.Cbrt(2), doubled.Radius/base.Radius, 1e-12)
			assert.InEpsilon(t, 1/math.Cbrt(2), doubled.EdgeAcceleration/base.EdgeAcceleration, 1e-12)
			assert.Equal(t, base.CloudDensity, doubled.CloudDensity)
			assert.InEpsilon(t, base.FreeFallStandard, doubled.FreeFallStandard, 1e-15)
		}
	}
}

func TestTimescale_BlendLiesBetweenEstimators(t *testing.T) {
	m := newModel(t)

	for _, z := range []float64{0, 2, 5, 8, 10, 12, 15, 20, 25} {
		for _, logM := range []float64{6, 8, 9, 10, 11, 12, 14} {
			for _, od := range []float64{1, 5, 200} {
				r, err := m.Timescale(units.FromLog10Msun(logM), z, od)
				require.NoError(t, err)

				lo := math.Min(r.FreeFallScaled, r.FreeFallConstant)
				hi := math.Max(r.FreeFallScaled, r.FreeFallConstant)
				assert.GreaterOrEqual(t, r.FreeFallBlended, lo*(1-1e-15))
				assert.LessOrEqual(t, r.FreeFallBlended, hi*(1+1e-15))
				assert.LessOrEqual(t, r.FreeFallScaled, r.FreeFallStandard)
			}
		}
	}
}

func TestTimescale_InvalidInput(t *testing.T) {
	m := newModel(t)

	tests := []struct {
		name        string
		mass        float64
		z           float64
		overdensity float64
		field       string
	}{
		{"zero mass", 0, 10, 5, "mass"},
		{"negative mass", -1, 10, 5, "mass"},
		{"nan mass", math.NaN(), 10, 5, "mass"},
		{"infinite mass", math.Inf(1), 10, 5, "mass"},
		{"zero overdensity", units.FromMsun(1e10), 10, 0, "overdensity"},
		{"negative overdensity", units.FromMsun(1e10), 10, -5, "overdensity"},
		{"redshift below -1", units.FromMsun(1e10), -3, 5, "z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := m.Timescale(tt.mass, tt.z, tt.overdensity)
			require.Error(t, err)
			assert.Nil(t, r)
			assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

			var iae *domain.InvalidArgumentError
			require.True(t, errors.As(err, &iae))
			assert.Equal(t, tt.field, iae.Field)
		})
	}
}

func TestTimescale_OverdensityScaling(t *testing.T) {
	m := newModel(t)
	mass := units.FromMsun(1e10)

	low, err := m.Timescale(mass, 10, 5)
	require.NoError(t, err)
	high, err := m.Timescale(mass, 10, 40)
	require.NoError(t, err)

	// eightfold density halves the radius and the standard free-fall time scales as rho^-1/2
	assert.InEpsilon(t, 0.5, high.Radius/low.Radius, 1e-12)
	assert.InEpsilon(t, 1/math.Sqrt(8), high.FreeFallStandard/low.FreeFallStandard, 1e-12)
}
