package analysis

import (
	"context"
	"fmt"

	"github.com/dbsmedya/goinertia/internal/catalog"
	"github.com/dbsmedya/goinertia/internal/collapse"
	"github.com/dbsmedya/goinertia/internal/units"
)

// Verdict grades how comfortably a galaxy's progenitor can collapse in the
// time available.
type Verdict string

const (
	VerdictEasy     Verdict = "EASY"     // at least three collapse times fit
	VerdictFeasible Verdict = "FEASIBLE" // at least one fits
	VerdictTight    Verdict = "TIGHT"
)

// VerdictFor grades n available collapse times.
func VerdictFor(n float64) Verdict {
	switch {
	case n >= 3:
		return VerdictEasy
	case n >= 1:
		return VerdictFeasible
	default:
		return VerdictTight
	}
}

// GalaxyAssessment is the collapse analysis of one observed galaxy.
type GalaxyAssessment struct {
	Galaxy         catalog.Observation
	ProgenitorMass float64 // kg
	Collapse       *collapse.Result
	Age            float64 // s, cosmic age at the galaxy's redshift
	AvailableTime  float64 // s, since the onset of star formation
	Collapses      float64 // AvailableTime / modified collapse time
	StandardInTime bool
	ModifiedInTime bool
	Verdict        Verdict
}

// AgeMyr returns the cosmic age at the galaxy's redshift in Myr.
func (g *GalaxyAssessment) AgeMyr() float64 { return units.ToMyr(g.Age) }

// AvailableTimeMyr returns the available time in Myr.
func (g *GalaxyAssessment) AvailableTimeMyr() float64 { return units.ToMyr(g.AvailableTime) }

// AssessGalaxy analyses the progenitor cloud of one observed galaxy.
func (a *Analyzer) AssessGalaxy(obs catalog.Observation) (*GalaxyAssessment, error) {
	log := a.logger.WithGalaxy(obs.Name).WithRedshift(obs.Redshift)

	progenitor, err := obs.ProgenitorMass(a.cfg.Catalog.ProgenitorSFE)
	if err != nil {
		return nil, err
	}

	r, err := a.Collapse(progenitor, obs.Redshift)
	if err != nil {
		return nil, err
	}

	age, err := a.cosmo.CosmicAge(obs.Redshift)
	if err != nil {
		return nil, err
	}
	avail, err := a.masses.AvailableTime(obs.Redshift)
	if err != nil {
		return nil, err
	}

	n := avail / r.FreeFallBlended
	g := &GalaxyAssessment{
		Galaxy:         obs,
		ProgenitorMass: progenitor,
		Collapse:       r,
		Age:            age,
		AvailableTime:  avail,
		Collapses:      n,
		StandardInTime: r.FreeFallStandard < avail,
		ModifiedInTime: r.FreeFallBlended < avail,
		Verdict:        VerdictFor(n),
	}

	log.Debugw("Galaxy assessed", "collapses", n, "verdict", g.Verdict)
	return g, nil
}

// Galaxies assesses every catalog entry, in catalog order.
func (a *Analyzer) Galaxies(ctx context.Context) ([]*GalaxyAssessment, error) {
	return batch(ctx, a, "galaxies", a.catalog.Observations(), func(_ context.Context, obs catalog.Observation) (*GalaxyAssessment, error) {
		g, err := a.AssessGalaxy(obs)
		if err != nil {
			return nil, fmt.Errorf("galaxy %s: %w", obs.Name, err)
		}
		return g, nil
	})
}

// VerdictCounts tallies verdicts.
type VerdictCounts struct {
	Easy     int
	Feasible int
	Tight    int
}

// CountVerdicts tallies the verdicts of a set of assessments.
func CountVerdicts(gs []*GalaxyAssessment) VerdictCounts {
	var c VerdictCounts
	for _, g := range gs {
		switch g.Verdict {
		case VerdictEasy:
			c.Easy++
		case VerdictFeasible:
			c.Feasible++
		default:
			c.Tight++
		}
	}
	return c
}
