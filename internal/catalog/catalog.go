// Package catalog holds the observed high-redshift galaxies the models are
// tested against.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"gopkg.in/yaml.v3"

	"github.com/dbsmedya/goinertia/internal/units"
)

// DefaultProgenitorSFE is the star formation efficiency used to infer the
// baryonic mass of the collapsing progenitor from an observed stellar mass.
const DefaultProgenitorSFE = 0.1

//go:embed jwst.yaml
var defaultCatalog []byte

// ErrNotFound is returned by Lookup for an unknown galaxy name.
var ErrNotFound = errors.New("galaxy not found")

// Observation is one observed galaxy.
type Observation struct {
	Name         string  `yaml:"name"`
	Redshift     float64 `yaml:"redshift"`
	Log10Mass    float64 `yaml:"log_mass"`
	Log10MassErr float64 `yaml:"log_mass_err"`
	Reference    string  `yaml:"reference"`
	Note         string  `yaml:"note"`
}

// StellarMass returns the stellar mass in kg.
func (o Observation) StellarMass() float64 {
	return units.FromLog10Msun(o.Log10Mass)
}

// ProgenitorMass returns the baryonic mass in kg that must have collapsed to
// form the observed stars at efficiency sfe.
func (o Observation) ProgenitorMass(sfe float64) (float64, error) {
	if !(sfe > 0 && sfe <= 1) {
		return 0, fmt.Errorf("progenitor sfe must be in (0, 1], got %g", sfe)
	}
	return o.StellarMass() / sfe, nil
}

// Validate checks a single observation.
func (o Observation) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return fmt.Errorf("galaxy name is required")
	}
	if math.IsNaN(o.Redshift) || math.IsInf(o.Redshift, 0) || o.Redshift < 0 {
		return fmt.Errorf("galaxy %q: redshift must be finite and non-negative, got %g", o.Name, o.Redshift)
	}
	if math.IsNaN(o.Log10Mass) || math.IsInf(o.Log10Mass, 0) {
		return fmt.Errorf("galaxy %q: log_mass must be finite", o.Name)
	}
	if math.IsNaN(o.Log10MassErr) || o.Log10MassErr < 0 {
		return fmt.Errorf("galaxy %q: log_mass_err cannot be negative, got %g", o.Name, o.Log10MassErr)
	}
	return nil
}

type file struct {
	Galaxies []Observation `yaml:"galaxies"`
}

// Catalog is an ordered, name-indexed set of observations.
type Catalog struct {
	entries *orderedmap.OrderedMap[string, Observation]
}

// New builds a Catalog, rejecting invalid or duplicate entries.
func New(obs []Observation) (*Catalog, error) {
	c := &Catalog{entries: orderedmap.NewOrderedMap[string, Observation]()}
	for i, o := range obs {
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if _, ok := c.entries.Get(o.Name); ok {
			return nil, fmt.Errorf("entry %d: duplicate galaxy name %q", i, o.Name)
		}
		c.entries.Set(o.Name, o)
	}
	return c, nil
}

// Default returns the embedded JWST catalog.
func Default() (*Catalog, error) {
	c, err := Parse(defaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded catalog: %w", err)
	}
	return c, nil
}

// Load reads a catalog YAML file. An empty path returns the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Galaxies) == 0 {
		return nil, fmt.Errorf("catalog has no galaxies")
	}
	return New(f.Galaxies)
}

// Len returns the number of observations.
func (c *Catalog) Len() int {
	return c.entries.Len()
}

// Lookup returns the observation with the given name.
func (c *Catalog) Lookup(name string) (Observation, error) {
	o, ok := c.entries.Get(name)
	if !ok {
		return Observation{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return o, nil
}

// Names returns galaxy names in catalog order.
func (c *Catalog) Names() []string {
	return c.entries.Keys()
}

// Observations returns a copy of all observations in catalog order.
func (c *Catalog) Observations() []Observation {
	out := make([]Observation, 0, c.entries.Len())
	for el := c.entries.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Filter returns the observations whose redshift lies in [zMin, zMax].
func (c *Catalog) Filter(zMin, zMax float64) []Observation {
	var out []Observation
	for el := c.entries.Front(); el != nil; el = el.Next() {
		if el.Value.Redshift >= zMin && el.Value.Redshift <= zMax {
			out = append(out, el.Value)
		}
	}
	return out
}
