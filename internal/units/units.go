// Package units holds the physical constants and the presentation-unit
// conversions used by goinertia. All computation is done in SI units
// (meters, seconds, kilograms); the helpers here only convert for display.
package units

import "math"

// Physical constants (SI).
const (
	C = 2.998e8   // speed of light, m/s
	G = 6.674e-11 // gravitational constant, m^3 kg^-1 s^-2
)

// Length, mass and time units expressed in SI.
const (
	Kpc  = 3.0857e19 // m
	Mpc  = 3.0857e22 // m
	Msun = 1.989e30  // kg
	Myr  = 3.1557e13 // s
	Gyr  = 3.1557e16 // s
)

// KmPerSecPerMpc is one km/s/Mpc in 1/s.
const KmPerSecPerMpc = 1e3 / Mpc

// HubbleFromKmSMpc converts a Hubble rate in km/s/Mpc to 1/s.
func HubbleFromKmSMpc(h float64) float64 {
	return h * KmPerSecPerMpc
}

// HubbleToKmSMpc converts a Hubble rate in 1/s to km/s/Mpc.
func HubbleToKmSMpc(h float64) float64 {
	return h / KmPerSecPerMpc
}

// ToKpc converts meters to kiloparsecs.
func ToKpc(m float64) float64 { return m / Kpc }

// ToMyr converts seconds to megayears.
func ToMyr(s float64) float64 { return s / Myr }

// ToGyr converts seconds to gigayears.
func ToGyr(s float64) float64 { return s / Gyr }

// ToMsun converts kilograms to solar masses.
func ToMsun(kg float64) float64 { return kg / Msun }

// FromMsun converts solar masses to kilograms.
func FromMsun(msun float64) float64 { return msun * Msun }

// FromLog10Msun converts log10(M/Msun) to kilograms.
func FromLog10Msun(logM float64) float64 {
	return math.Pow(10, logM) * Msun
}

// Log10Msun returns log10 of a mass in kilograms expressed in solar masses.
func Log10Msun(kg float64) float64 {
	return math.Log10(kg / Msun)
}
