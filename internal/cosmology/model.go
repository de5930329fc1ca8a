package cosmology

import (
	"fmt"
	"math"

	"github.com/dbsmedya/goinertia/internal/domain"
	"github.com/dbsmedya/goinertia/internal/quad"
)

// Defaults for the peak-height relation.
const (
	DefaultSigma0 = 2.0
	DefaultDeltaC = 1.686
)

// Quantity labels passed to a Recorder.
const (
	QuantityAge    = "age"
	QuantityGrowth = "growth"
)

// Recorder observes every quadrature the model performs.
// Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveIntegral(quantity string, res quad.Result, err error)
}

// Option configures a Model.
type Option func(*Model)

// WithIntegrator replaces the default quadrature settings.
func WithIntegrator(in *quad.Integrator) Option {
	return func(m *Model) {
		if in != nil {
			m.integrator = in
		}
	}
}

// WithRecorder attaches an observer for quadrature statistics.
func WithRecorder(r Recorder) Option {
	return func(m *Model) {
		m.recorder = r
	}
}

// RedshiftState bundles the background quantities at one redshift.
type RedshiftState struct {
	Z   float64
	E   float64 // H(z)/H0
	H   float64 // 1/s
	A0  float64 // c H(z), m/s^2
	Age float64 // s
}

// Model evaluates the background cosmology for fixed Parameters.
// A Model is immutable after NewModel returns and safe for concurrent use.
type Model struct {
	params     Parameters
	integrator *quad.Integrator
	recorder   Recorder
	growth0    float64
}

// NewModel validates p and precomputes the growth-factor normalization.
func NewModel(p Parameters, opts ...Option) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cosmological parameters: %w", err)
	}

	m := &Model{
		params:     p,
		integrator: quad.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.integrator.Validate(); err != nil {
		return nil, fmt.Errorf("invalid integrator settings: %w", err)
	}

	g0, err := m.growth(0)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize growth factor: %w", err)
	}
	m.growth0 = g0

	return m, nil
}

// Parameters returns the model's parameters.
func (m *Model) Parameters() Parameters {
	return m.params
}

// ExpansionRate returns E(z) = H(z)/H0.
func (m *Model) ExpansionRate(z float64) (float64, error) {
	if err := checkRedshift(z); err != nil {
		return 0, err
	}
	return m.e(z), nil
}

// HubbleRate returns H(z) in 1/s.
func (m *Model) HubbleRate(z float64) (float64, error) {
	if err := checkRedshift(z); err != nil {
		return 0, err
	}
	return m.params.H0 * m.e(z), nil
}

// CriticalAcceleration returns a0(z) = c H(z) in m/s^2, the scale below
// which modified inertia dominates.
func (m *Model) CriticalAcceleration(z float64) (float64, error) {
	if err := checkRedshift(z); err != nil {
		return 0, err
	}
	return m.a0(z), nil
}

// CosmicAge returns the age of the universe at redshift z in seconds:
//
//	t(z) = (1/H0) * integral_z^inf dz' / ((1+z') E(z'))
func (m *Model) CosmicAge(z float64) (float64, error) {
	if err := checkIntegralRedshift(z); err != nil {
		return 0, err
	}
	res, err := m.integrator.ToInfinity(func(x float64) float64 {
		return 1 / ((1 + x) * m.e(x))
	}, z)
	m.observe(QuantityAge, res, err)
	if err != nil {
		return 0, fmt.Errorf("failed to compute cosmic age at z=%g: %w", z, err)
	}
	return res.Value / m.params.H0, nil
}

// GrowthFactor returns the unnormalized linear growth factor
//
//	D(z) = E(z) * integral_z^inf (1+z') / E(z')^3 dz'
func (m *Model) GrowthFactor(z float64) (float64, error) {
	if err := checkIntegralRedshift(z); err != nil {
		return 0, err
	}
	return m.growth(z)
}

// NormalizedGrowthFactor returns D(z)/D(0).
func (m *Model) NormalizedGrowthFactor(z float64) (float64, error) {
	if err := checkIntegralRedshift(z); err != nil {
		return 0, err
	}
	if z == 0 {
		return 1, nil
	}
	d, err := m.growth(z)
	if err != nil {
		return 0, err
	}
	return d / m.growth0, nil
}

// PeakHeight returns nu = deltaC / (sigma0 * D_norm(z)), the significance
// of a fluctuation that collapses at redshift z.
func (m *Model) PeakHeight(z, sigma0, deltaC float64) (float64, error) {
	if !(sigma0 > 0) || math.IsInf(sigma0, 0) {
		return 0, domain.Invalid("sigma0", sigma0, "must be positive and finite")
	}
	if !(deltaC > 0) || math.IsInf(deltaC, 0) {
		return 0, domain.Invalid("delta_c", deltaC, "must be positive and finite")
	}
	d, err := m.NormalizedGrowthFactor(z)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, domain.Invalid("z", z, "growth factor vanishes")
	}
	return deltaC / (sigma0 * d), nil
}

// MeanMatterDensity returns the cosmic mean matter density at z in kg/m^3.
func (m *Model) MeanMatterDensity(z float64) (float64, error) {
	if err := checkRedshift(z); err != nil {
		return 0, err
	}
	zp := 1 + z
	return m.params.CriticalDensity0() * m.params.OmegaM * zp * zp * zp, nil
}

// BaryonDensity0 returns the present-day mean baryon density in kg/m^3.
func (m *Model) BaryonDensity0() float64 {
	return m.params.CriticalDensity0() * m.params.OmegaB
}

// State computes the RedshiftState at z.
func (m *Model) State(z float64) (RedshiftState, error) {
	age, err := m.CosmicAge(z)
	if err != nil {
		return RedshiftState{}, err
	}
	e := m.e(z)
	return RedshiftState{
		Z:   z,
		E:   e,
		H:   m.params.H0 * e,
		A0:  m.a0(z),
		Age: age,
	}, nil
}

func (m *Model) e(z float64) float64 {
	zp := 1 + z
	zp3 := zp * zp * zp
	p := m.params
	return math.Sqrt(p.OmegaM*zp3 + p.OmegaR*zp3*zp + p.OmegaL)
}

func (m *Model) a0(z float64) float64 {
	return m.params.C * m.params.H0 * m.e(z)
}

func (m *Model) growth(z float64) (float64, error) {
	res, err := m.integrator.ToInfinity(func(x float64) float64 {
		e := m.e(x)
		return (1 + x) / (e * e * e)
	}, z)
	m.observe(QuantityGrowth, res, err)
	if err != nil {
		return 0, fmt.Errorf("failed to compute growth factor at z=%g: %w", z, err)
	}
	return m.e(z) * res.Value, nil
}

func (m *Model) observe(quantity string, res quad.Result, err error) {
	if m.recorder != nil {
		m.recorder.ObserveIntegral(quantity, res, err)
	}
}

func checkRedshift(z float64) error {
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return domain.Invalid("z", z, "redshift must be finite")
	}
	if z < -1 {
		return domain.Invalid("z", z, "redshift must be >= -1")
	}
	return nil
}

func checkIntegralRedshift(z float64) error {
	if err := checkRedshift(z); err != nil {
		return err
	}
	if z == -1 {
		return domain.Invalid("z", z, "integral diverges at z = -1")
	}
	return nil
}
