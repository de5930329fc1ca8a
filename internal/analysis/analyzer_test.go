package analysis

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/goinertia/internal/catalog"
	"github.com/dbsmedya/goinertia/internal/config"
	"github.com/dbsmedya/goinertia/internal/domain"
	"github.com/dbsmedya/goinertia/internal/logger"
	"github.com/dbsmedya/goinertia/internal/metrics"
	"github.com/dbsmedya/goinertia/internal/units"
)

func newAnalyzer(t *testing.T, mutate func(*config.Config)) (*Analyzer, *metrics.Metrics) {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	cat, err := catalog.Default()
	require.NoError(t, err)
	m := metrics.New()
	a, err := New(cfg, cat, logger.NewNop(), m)
	require.NoError(t, err)
	return a, m
}

func TestNew_Errors(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	_, err = New(nil, cat, nil, nil)
	assert.Error(t, err)

	_, err = New(config.DefaultConfig(), nil, nil, nil)
	assert.Error(t, err)

	cfg := config.DefaultConfig()
	cfg.Cosmology.OmegaL = 0.5
	_, err = New(cfg, cat, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Contains(t, err.Error(), "failed to build cosmology model")
}

func TestNew_NilLoggerAndMetrics(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	a, err := New(config.DefaultConfig(), cat, nil, nil)
	require.NoError(t, err)

	rows, err := a.Epochs(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 10)
	assert.Same(t, cat, a.Catalog())
	assert.NotNil(t, a.Cosmology())
	assert.Equal(t, 5.0, a.Config().Collapse.Overdensity)
}

func TestEpochs(t *testing.T) {
	a, m := newAnalyzer(t, nil)

	rows, err := a.Epochs(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 10)

	assert.Equal(t, 0.0, rows[0].Z)
	assert.InDelta(t, 1.0, rows[0].E, 1e-12)
	assert.InDelta(t, 1.0, rows[0].A0Ratio, 1e-12)
	assert.InDelta(t, 13791.114, rows[0].AgeMyr(), 0.01)

	assert.Equal(t, 10.0, rows[5].Z)
	assert.InDelta(t, 20.525161, rows[5].E, 1e-5)
	assert.InDelta(t, rows[5].E, rows[5].A0Ratio, 1e-9)
	assert.InDelta(t, 470.1331, rows[5].AgeMyr(), 1e-3)

	assert.Equal(t, 20.0, rows[9].Z)
	assert.InDelta(t, 54.181156, rows[9].E, 1e-5)
	assert.InDelta(t, 177.595, rows[9].AgeMyr(), 1e-2)

	for i := 1; i < len(rows); i++ {
		assert.Greater(t, rows[i].A0, rows[i-1].A0)
		assert.Less(t, rows[i].Age, rows[i-1].Age)
	}

	path := filepath.Join(t.TempDir(), "run.prom")
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `goinertia_evaluations_total{operation="epoch"} 10`)
	assert.Contains(t, string(data), `goinertia_batch_duration_seconds_count{batch="epochs"} 1`)
}

func TestEpochs_InvalidRedshift(t *testing.T) {
	a, _ := newAnalyzer(t, func(c *config.Config) {
		c.Grids.Epochs = []float64{0, -2}
	})

	_, err := a.Epochs(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Contains(t, err.Error(), "failed to compute epochs")
}

func TestGalaxies(t *testing.T) {
	a, _ := newAnalyzer(t, nil)

	gs, err := a.Galaxies(context.Background())
	require.NoError(t, err)
	require.Len(t, gs, 8)

	// catalog order is kept
	for i, name := range a.Catalog().Names() {
		assert.Equal(t, name, gs[i].Galaxy.Name)
	}

	tests := []struct {
		name      string
		radiusKpc float64
		tStdMyr   float64
		tModMyr   float64
		availMyr  float64
		ageMyr    float64
		collapses float64
	}{
		{"JADES-GS-z14-0", 11.97261, 306.4166, 5.165965, 190.3534, 289.0123, 36.84760},
		{"GN-z11", 19.75033, 459.6113, 8.126640, 335.3906, 434.0495, 41.27051},
		{"CEERS-3", 58.06932, 732.7390, 17.58855, 593.9181, 692.5770, 33.76731},
	}

	byName := make(map[string]*GalaxyAssessment, len(gs))
	for _, g := range gs {
		byName[g.Galaxy.Name] = g
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ok := byName[tt.name]
			require.True(t, ok)

			assert.InEpsilon(t, 10*g.Galaxy.StellarMass(), g.ProgenitorMass, 1e-12)
			assert.InDelta(t, tt.radiusKpc, g.Collapse.RadiusKpc(), 1e-3)
			assert.InDelta(t, tt.tStdMyr, g.Collapse.FreeFallStandardMyr(), 1e-2)
			assert.InDelta(t, tt.tModMyr, g.Collapse.FreeFallBlendedMyr(), 1e-3)
			assert.InDelta(t, tt.availMyr, g.AvailableTimeMyr(), 1e-2)
			assert.InDelta(t, tt.ageMyr, g.AgeMyr(), 1e-2)
			assert.InDelta(t, tt.collapses, g.Collapses, 1e-2)

			assert.False(t, g.StandardInTime)
			assert.True(t, g.ModifiedInTime)
			assert.Equal(t, VerdictEasy, g.Verdict)
		})
	}

	assert.Equal(t, VerdictCounts{Easy: 8}, CountVerdicts(gs))
}

func TestVerdictFor(t *testing.T) {
	tests := []struct {
		n    float64
		want Verdict
	}{
		{0, VerdictTight},
		{0.99, VerdictTight},
		{1, VerdictFeasible},
		{2.5, VerdictFeasible},
		{3, VerdictEasy},
		{40, VerdictEasy},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerdictFor(tt.n), "n=%g", tt.n)
	}
}

func TestCountVerdicts(t *testing.T) {
	gs := []*GalaxyAssessment{
		{Verdict: VerdictEasy},
		{Verdict: VerdictTight},
		{Verdict: VerdictFeasible},
		{Verdict: VerdictTight},
	}
	assert.Equal(t, VerdictCounts{Easy: 1, Feasible: 1, Tight: 2}, CountVerdicts(gs))
	assert.Equal(t, VerdictCounts{}, CountVerdicts(nil))
}

func TestMassLimits(t *testing.T) {
	a, _ := newAnalyzer(t, nil)

	rows, err := a.MassLimits(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 12)

	var z10 *MassLimitRow
	for i := range rows {
		if rows[i].Z == 10 {
			z10 = &rows[i]
		}
	}
	require.NotNil(t, z10)

	assert.InDelta(t, 470.1331, z10.AgeMyr(), 1e-3)
	assert.InDelta(t, 9.225993, z10.Standard.LogStellarMass(), 1e-4)
	assert.InDelta(t, 10.225993, z10.StandardMax.LogStellarMass(), 1e-4)
	assert.InDelta(t, 9.492351, z10.Modified.LogStellarMass(), 1e-4)
	assert.InDelta(t, 7.3491, z10.PeakHeight, 1e-3)

	for i := 1; i < len(rows); i++ {
		assert.Less(t, rows[i].Standard.StellarMass, rows[i-1].Standard.StellarMass, "z=%g", rows[i].Z)
	}
}

func TestFeasibility(t *testing.T) {
	a, _ := newAnalyzer(t, nil)
	assert.InDelta(t, 1e10, units.ToMsun(a.ReferenceMass()), 1e-3)

	rows, err := a.Feasibility(context.Background())
	require.NoError(t, err)

	want := []struct {
		z, avail, tStd, tMod, n float64
	}{
		{6, 828.182, 980.462, 15.2659, 54.25},
		{8, 536.947, 672.534, 11.1581, 48.12},
		{10, 371.474, 497.724, 8.6843, 42.78},
		{12, 267.025, 387.403, 7.0478, 37.89},
		{14, 196.174, 312.565, 5.8931, 33.29},
		{17, 125.383, 237.777, 4.6914, 26.73},
		{20, 78.936, 188.690, 3.8684, 20.40},
	}
	require.Len(t, rows, len(want))

	for i, w := range want {
		r := rows[i]
		assert.Equal(t, w.z, r.Z)
		assert.InDelta(t, w.avail, r.AvailableTimeMyr(), 1e-2, "z=%g", w.z)
		assert.InDelta(t, w.tStd, r.Collapse.FreeFallStandardMyr(), 1e-2, "z=%g", w.z)
		assert.InDelta(t, w.tMod, r.Collapse.FreeFallBlendedMyr(), 1e-3, "z=%g", w.z)
		assert.InDelta(t, w.n, r.Collapses, 1e-2, "z=%g", w.z)
		assert.True(t, r.Feasible)
	}
}

func TestGrowth(t *testing.T) {
	a, _ := newAnalyzer(t, nil)

	rows, err := a.Growth(context.Background())
	require.NoError(t, err)

	want := []GrowthRow{
		{2, 0.416684, 2.0231, RarityCommon},
		{4, 0.252505, 3.3386, RarityRare},
		{6, 0.180514, 4.6700, RarityRare},
		{8, 0.140325, 6.0075, RarityVeryRare},
		{10, 0.114709, 7.3491, RarityNearlyNever},
		{12, 0.096962, 8.6941, RarityNearlyNever},
		{14, 0.083944, 10.0424, RarityImpossible},
	}
	require.Len(t, rows, len(want))

	for i, w := range want {
		assert.Equal(t, w.Z, rows[i].Z)
		assert.InDelta(t, w.GrowthNorm, rows[i].GrowthNorm, 1e-5, "z=%g", w.Z)
		assert.InDelta(t, w.PeakHeight, rows[i].PeakHeight, 1e-3, "z=%g", w.Z)
		assert.Equal(t, w.Rarity, rows[i].Rarity, "z=%g", w.Z)
	}
}

func TestRarityFor(t *testing.T) {
	tests := []struct {
		nu   float64
		want Rarity
	}{
		{0, RarityCommon},
		{2.99, RarityCommon},
		{3, RarityRare},
		{4.99, RarityRare},
		{5, RarityVeryRare},
		{7, RarityNearlyNever},
		{9.99, RarityNearlyNever},
		{10, RarityImpossible},
		{25, RarityImpossible},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RarityFor(tt.nu), "nu=%g", tt.nu)
	}
}

func TestRequiredEnhancement(t *testing.T) {
	a, _ := newAnalyzer(t, nil)

	rows, err := a.RequiredEnhancement(12, DefaultTargetPeakHeights)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 3.0, rows[0].Target)
	assert.InDelta(t, 0.281, rows[0].GrowthNeeded, 1e-9)
	assert.InDelta(t, 2.898035, rows[0].Enhancement, 1e-4)
	assert.InDelta(t, 2.173526, rows[1].Enhancement, 1e-4)
	assert.InDelta(t, 1.738821, rows[2].Enhancement, 1e-4)

	_, err = a.RequiredEnhancement(12, []float64{3, 0})
	assert.Error(t, err)

	_, err = a.RequiredEnhancement(-3, DefaultTargetPeakHeights)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}

func TestCollapse(t *testing.T) {
	a, _ := newAnalyzer(t, nil)

	r, err := a.Collapse(units.FromLog10Msun(10), 6)
	require.NoError(t, err)
	assert.InDelta(t, 64.2254, r.SpeedUp(), 1e-2)

	_, err = a.Collapse(0, 6)
	require.Error(t, err)
	var invalid *domain.InvalidArgumentError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "mass", invalid.Field)
}

func TestSeries(t *testing.T) {
	a, _ := newAnalyzer(t, func(c *config.Config) {
		c.Grids.SeriesPoints = 10
	})

	series, err := a.Series(context.Background())
	require.NoError(t, err)
	require.Len(t, series, 5)

	tests := []struct {
		name    string
		rows    int
		columns []string
	}{
		{SeriesCriticalAcceleration, 20, []string{"z", "a0_m_s2", "a0_over_a0_today"}},
		{SeriesCollapseTimes, 10, []string{"z", "t_avail_myr", "t_ff_std_myr", "t_ff_mod_myr"}},
		{SeriesStellarMassLimits, 5, []string{"z", "log_mstar_lcdm_sfe100", "log_mstar_lcdm_sfe10", "log_mstar_modified"}},
		{SeriesAccelerationRatio, 10, []string{"z", "g_over_a0_1e9msun", "g_over_a0_1e10msun", "g_over_a0_1e11msun"}},
		{SeriesGalaxies, 8, []string{"name", "z", "log_mstar", "log_mstar_err"}},
	}

	for i, tt := range tests {
		s := series[i]
		assert.Equal(t, tt.name, s.Name)
		assert.Equal(t, tt.columns, s.Columns, s.Name)
		assert.Len(t, s.Rows, tt.rows, s.Name)

		width := len(s.Columns)
		if len(s.Labels) > 0 {
			width--
			assert.Len(t, s.Labels, len(s.Rows))
		}
		for _, row := range s.Rows {
			assert.Len(t, row, width, s.Name)
			for _, v := range row {
				assert.False(t, math.IsNaN(v), s.Name)
			}
		}
	}

	a0 := series[0]
	assert.Equal(t, 0.0, a0.Rows[0][0])
	assert.Equal(t, 25.0, a0.Rows[len(a0.Rows)-1][0])
	assert.InDelta(t, 1.0, a0.Rows[0][2], 1e-12)

	gal := series[4]
	assert.Equal(t, "JADES-GS-z14-0", gal.Labels[0])
	assert.Equal(t, []float64{14.2, 8.7, 0.4}, gal.Rows[0])

	// lighter clouds sit deeper in the modified regime
	for _, row := range series[3].Rows {
		assert.Less(t, row[1], row[2])
		assert.Less(t, row[2], row[3])
	}
}

func TestLinspace(t *testing.T) {
	assert.Nil(t, Linspace(0, 1, 0))
	assert.Equal(t, []float64{2}, Linspace(2, 5, 1))
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, Linspace(0, 1, 5))
}

func TestResultsIndependentOfConcurrency(t *testing.T) {
	serial, _ := newAnalyzer(t, func(c *config.Config) { c.Processing.Concurrency = 1 })
	parallel, _ := newAnalyzer(t, func(c *config.Config) { c.Processing.Concurrency = 8 })
	ctx := context.Background()

	f1, err := serial.Feasibility(ctx)
	require.NoError(t, err)
	f8, err := parallel.Feasibility(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(f1, f8); diff != "" {
		t.Errorf("feasibility differs between concurrency 1 and 8 (-serial +parallel):\n%s", diff)
	}

	g1, err := serial.Growth(ctx)
	require.NoError(t, err)
	g8, err := parallel.Growth(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(g1, g8); diff != "" {
		t.Errorf("growth differs between concurrency 1 and 8 (-serial +parallel):\n%s", diff)
	}
}

func TestCancelledRun(t *testing.T) {
	a, _ := newAnalyzer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Galaxies(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
