package report

import (
	"fmt"
	"strings"

	"github.com/gookit/color"

	"github.com/dbsmedya/goinertia/internal/analysis"
	"github.com/dbsmedya/goinertia/internal/catalog"
	"github.com/dbsmedya/goinertia/internal/collapse"
	"github.com/dbsmedya/goinertia/internal/cosmology"
	"github.com/dbsmedya/goinertia/internal/units"
)

// Cosmology prints the background parameters next to the present-day
// derived scales.
func (p *Printer) Cosmology(params cosmology.Parameters, a0Now, ageNow float64) {
	p.Header("Background Cosmology")
	p.Blank()

	left := strings.Join([]string{
		"[ Parameters ]",
		strings.Repeat("-", 14),
		fmt.Sprintf("Omega_m:   %.4f", params.OmegaM),
		fmt.Sprintf("Omega_r:   %.2e", params.OmegaR),
		fmt.Sprintf("Omega_L:   %.6f", params.OmegaL),
		fmt.Sprintf("Omega_b:   %.4f", params.OmegaB),
		fmt.Sprintf("H0:        %.2f km/s/Mpc", units.HubbleToKmSMpc(params.H0)),
	}, "\n")
	right := []string{
		"[ Today ]",
		strings.Repeat("-", 9),
		fmt.Sprintf("a0 = cH0:  %.3e m/s²", a0Now),
		fmt.Sprintf("Age:       %.3f Gyr", units.ToGyr(ageNow)),
	}
	p.SideBySide(left, right, 4)
}

// Epochs prints the critical-acceleration table.
func (p *Printer) Epochs(rows []analysis.EpochRow) {
	p.Header("Critical Acceleration a0(z) = cH(z)")
	p.Blank()

	cols := []Column{
		{Title: "z"},
		{Title: "H(z)/H0"},
		{Title: "a0(z) [m/s²]"},
		{Title: "a0(z)/a0(0)"},
		{Title: "t(z) [Myr]"},
	}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			fmt.Sprintf("%g", r.Z),
			fmt.Sprintf("%.1f", r.E),
			fmt.Sprintf("%.2e", r.A0),
			fmt.Sprintf("%.1f", r.A0Ratio),
			fmt.Sprintf("%.0f", r.AgeMyr()),
		})
	}
	p.Table(cols, cells)
}

// Collapse prints the details of one cloud.
func (p *Printer) Collapse(r *collapse.Result) {
	p.Section(fmt.Sprintf("Cloud of %.1e Msun at z=%g", r.BaryonicMassMsun(), r.Redshift))
	p.Linef("Overdensity:                 %g", r.Overdensity)
	p.Linef("Cloud radius at turnaround:  %.1f kpc", r.RadiusKpc())
	p.Linef("Edge gravitational accel:    %.2e m/s²", r.EdgeAcceleration)
	p.Linef("a0(z):                       %.2e m/s²", r.CriticalAcceleration)
	p.Linef("g/a0:                        %.2e", r.AccelerationRatio)
	p.Linef("Enhancement factor eta:      %.0f", r.Enhancement)
	p.Linef("Standard free-fall:          %.0f Myr", r.FreeFallStandardMyr())
	p.Linef("Modified (sqrt eta):         %.1f Myr", r.FreeFallScaledMyr())
	p.Linef("Modified (const accel):      %.1f Myr", r.FreeFallConstantMyr())
	p.Linef("Modified (geometric mean):   %.1f Myr", r.FreeFallBlendedMyr())
	p.Linef("Speed-up:                    %.1fx", r.SpeedUp())
}

// Galaxies prints the per-galaxy collapse analysis followed by the verdict
// summary table.
func (p *Printer) Galaxies(gs []*analysis.GalaxyAssessment) {
	p.Header("JWST Galaxy Collapse Analysis")

	for _, g := range gs {
		p.Blank()
		p.galaxy(g)
	}

	p.Blank()
	p.Header("Summary: Can Modified Inertia Explain Each JWST Galaxy?")
	p.Blank()

	cols := []Column{
		{Title: "Galaxy", Left: true},
		{Title: "z"},
		{Title: "log M*"},
		{Title: "t_avail [Myr]"},
		{Title: "t_coll,mod [Myr]"},
		{Title: "N_coll"},
		{Title: "Verdict", Left: true, Paint: p.verdict},
	}
	cells := make([][]string, 0, len(gs))
	for _, g := range gs {
		cells = append(cells, []string{
			g.Galaxy.Name,
			fmt.Sprintf("%.1f", g.Galaxy.Redshift),
			fmt.Sprintf("%.1f", g.Galaxy.Log10Mass),
			fmt.Sprintf("%.0f", g.AvailableTimeMyr()),
			fmt.Sprintf("%.1f", g.Collapse.FreeFallBlendedMyr()),
			fmt.Sprintf("%.1f", g.Collapses),
			string(g.Verdict),
		})
	}
	p.Table(cols, cells)

	c := analysis.CountVerdicts(gs)
	p.Blank()
	fmt.Fprintf(p.w, "%s: %d  %s: %d  %s: %d\n",
		p.verdict(string(analysis.VerdictEasy)), c.Easy,
		p.verdict(string(analysis.VerdictFeasible)), c.Feasible,
		p.verdict(string(analysis.VerdictTight)), c.Tight,
	)
	fmt.Fprintln(p.w, "Verdicts: EASY = at least three collapses fit, FEASIBLE = at least one, TIGHT = marginal")
}

func (p *Printer) galaxy(g *analysis.GalaxyAssessment) {
	r := g.Collapse
	title := fmt.Sprintf("%s (z=%g, log M*=%.1f)", g.Galaxy.Name, g.Galaxy.Redshift, g.Galaxy.Log10Mass)

	left := strings.Join([]string{
		"[ " + title + " ]",
		strings.Repeat("-", len(title)+4),
		fmt.Sprintf("Progenitor baryonic mass:  %.1e Msun", units.ToMsun(g.ProgenitorMass)),
		fmt.Sprintf("Cloud radius:              %.1f kpc", r.RadiusKpc()),
		fmt.Sprintf("Edge accel:                %.2e m/s²", r.EdgeAcceleration),
		fmt.Sprintf("a0(z):                     %.2e m/s²", r.CriticalAcceleration),
		fmt.Sprintf("g/a0:                      %.2e", r.AccelerationRatio),
		fmt.Sprintf("Enhancement eta:           %.0f", r.Enhancement),
		fmt.Sprintf("Standard free-fall:        %.0f Myr", r.FreeFallStandardMyr()),
		fmt.Sprintf("Modified (sqrt eta):       %.1f Myr", r.FreeFallScaledMyr()),
		fmt.Sprintf("Modified (const accel):    %.1f Myr", r.FreeFallConstantMyr()),
		fmt.Sprintf("Modified (geometric mean): %.1f Myr", r.FreeFallBlendedMyr()),
	}, "\n")

	right := []string{
		"",
		"",
		fmt.Sprintf("Age of universe:    %.0f Myr", g.AgeMyr()),
		fmt.Sprintf("Time available:     %.0f Myr", g.AvailableTimeMyr()),
		"Standard in time:   " + p.verdict(yesNo(g.StandardInTime)),
		"Modified in time:   " + p.verdict(yesNo(g.ModifiedInTime)),
		fmt.Sprintf("Collapse times:     %.1f", g.Collapses),
		"Verdict:            " + p.verdict(string(g.Verdict)),
	}
	p.SideBySide(left, right, 4)
}

// MassLimits prints the stellar mass ceiling table.
func (p *Printer) MassLimits(rows []analysis.MassLimitRow) {
	p.Header("Maximum Stellar Mass vs Redshift")
	p.Blank()

	sfe := 0.0
	if len(rows) > 0 {
		sfe = rows[0].Standard.Efficiency
	}
	cols := []Column{
		{Title: "z"},
		{Title: "t [Myr]"},
		{Title: fmt.Sprintf("ΛCDM log M* (SFE=%g%%)", 100*sfe)},
		{Title: "ΛCDM log M* (SFE=100%)"},
		{Title: "Modified log M*"},
		{Title: "ν (σ0=2)"},
	}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		mod := "-"
		if r.Modified.StellarMass > 0 {
			mod = fmt.Sprintf("%.1f", r.Modified.LogStellarMass())
		}
		cells = append(cells, []string{
			fmt.Sprintf("%g", r.Z),
			fmt.Sprintf("%.0f", r.AgeMyr()),
			fmt.Sprintf("%.1f", r.Standard.LogStellarMass()),
			fmt.Sprintf("%.1f", r.StandardMax.LogStellarMass()),
			mod,
			fmt.Sprintf("%.1f", r.PeakHeight),
		})
	}
	p.Table(cols, cells)
}

// Feasibility prints the collapse-time versus available-time grid for a
// cloud of baryonic mass refMass (kg).
func (p *Printer) Feasibility(rows []analysis.FeasibilityRow, refMass float64) {
	p.Header("Collapse Time vs Available Time")
	fmt.Fprintf(p.w, "For a %.0e Msun baryonic cloud:\n\n", units.ToMsun(refMass))

	cols := []Column{
		{Title: "z"},
		{Title: "t_avail [Myr]"},
		{Title: "t_ff,std [Myr]"},
		{Title: "t_ff,mod [Myr]"},
		{Title: "Ratio"},
		{Title: "N_collapses"},
		{Title: "Feasible?", Paint: p.verdict},
	}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			fmt.Sprintf("%g", r.Z),
			fmt.Sprintf("%.0f", r.AvailableTimeMyr()),
			fmt.Sprintf("%.0f", r.Collapse.FreeFallStandardMyr()),
			fmt.Sprintf("%.1f", r.Collapse.FreeFallBlendedMyr()),
			fmt.Sprintf("%.0f", r.Collapse.SpeedUp()),
			fmt.Sprintf("%.1f", r.Collapses),
			yesNo(r.Feasible),
		})
	}
	p.Table(cols, cells)
}

// Growth prints the peak-height table and the growth enhancement needed at
// redshift z.
func (p *Printer) Growth(rows []analysis.GrowthRow, z float64, enhancement []analysis.EnhancementRow) {
	p.Header("Growth Factor / Peak Height Analysis")
	fmt.Fprintf(p.w, "Standard peak heights for a σ0 = %g fluctuation:\n\n", cosmology.DefaultSigma0)

	cols := []Column{
		{Title: "z"},
		{Title: "D(z)/D(0)"},
		{Title: "ν (std)"},
		{Title: "Assessment", Left: true, Paint: p.rarity},
	}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			fmt.Sprintf("%g", r.Z),
			fmt.Sprintf("%.4f", r.GrowthNorm),
			fmt.Sprintf("%.1f", r.PeakHeight),
			string(r.Rarity),
		})
	}
	p.Table(cols, cells)

	p.Blank()
	fmt.Fprintf(p.w, "Required growth enhancement to bring ν(z=%g) to target:\n", z)
	for _, e := range enhancement {
		p.Linef("ν = %g: need D(z)/D(0) = %.3f, enhancement = %.2fx", e.Target, e.GrowthNeeded, e.Enhancement)
	}
}

func (p *Printer) rarity(cell string) string {
	switch analysis.Rarity(strings.TrimSpace(cell)) {
	case analysis.RarityCommon, analysis.RarityRare:
		return p.paint(color.Green, cell)
	case analysis.RarityVeryRare:
		return p.paint(color.Yellow, cell)
	default:
		return p.paint(color.Red, cell)
	}
}

// Catalog prints the galaxy catalog.
func (p *Printer) Catalog(obs []catalog.Observation) {
	p.Header("Galaxy Catalog")
	p.Blank()

	cols := []Column{
		{Title: "Galaxy", Left: true},
		{Title: "z"},
		{Title: "log M*"},
		{Title: "±"},
		{Title: "Reference", Left: true},
		{Title: "Note", Left: true},
	}
	cells := make([][]string, 0, len(obs))
	for _, o := range obs {
		cells = append(cells, []string{
			o.Name,
			fmt.Sprintf("%g", o.Redshift),
			fmt.Sprintf("%.1f", o.Log10Mass),
			fmt.Sprintf("%.1f", o.Log10MassErr),
			o.Reference,
			o.Note,
		})
	}
	p.Table(cols, cells)
	fmt.Fprintf(p.w, "\nTotal: %d galaxies\n", len(obs))
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
