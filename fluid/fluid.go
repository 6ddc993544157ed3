// SPDX-License-Identifier: MIT

package fluid

import "math"

// Fluid supplies the medium properties the hydraulic routines need.
// Temperatures are in °C throughout.
type Fluid interface {
	// Density returns the density in kg/m³ at the given temperature.
	Density(tempC float64) float64

	// DynamicViscosity returns the dynamic viscosity in Pa·s (kg/(m·s)).
	DynamicViscosity(tempC float64) float64

	// HeatCapacity returns the specific isobaric heat capacity in J/(kg·K).
	HeatCapacity(tempC float64) float64
}

// KinematicViscosity returns ν = μ/ρ in m²/s for f at the given temperature.
func KinematicViscosity(f Fluid, tempC float64) float64 {
	return f.DynamicViscosity(tempC) / f.Density(tempC)
}

// Water is liquid water under district-heating conditions. The zero value is
// ready to use.
type Water struct{}

// Density returns the density of liquid water in kg/m³.
// Quadratic fit through reference values at 20, 60 and 90 °C.
func (Water) Density(tempC float64) float64 {
	return 1001.9 - 0.12167*tempC - 0.0031667*tempC*tempC
}

// DynamicViscosity returns the dynamic viscosity of liquid water in Pa·s,
// using the correlation μ = 2.414e−5 · 10^(247.8/(T − 140)) with T in kelvin.
func (Water) DynamicViscosity(tempC float64) float64 {
	tk := tempC + 273.15

	return 2.414e-5 * math.Pow(10, 247.8/(tk-140.0))
}

// HeatCapacity returns the specific heat capacity of liquid water in
// J/(kg·K). Quadratic fit through reference values at 20, 50 and 90 °C.
func (Water) HeatCapacity(tempC float64) float64 {
	return 4196.0 - 0.8*tempC + 0.01*tempC*tempC
}

// Constant is a fixed-property fluid.
type Constant struct {
	// Rho is the density in kg/m³.
	Rho float64

	// Mu is the dynamic viscosity in Pa·s.
	Mu float64

	// Cp is the specific heat capacity in J/(kg·K).
	Cp float64
}

// Density returns c.Rho regardless of temperature.
func (c Constant) Density(float64) float64 { return c.Rho }

// DynamicViscosity returns c.Mu regardless of temperature.
func (c Constant) DynamicViscosity(float64) float64 { return c.Mu }

// HeatCapacity returns c.Cp regardless of temperature.
func (c Constant) HeatCapacity(float64) float64 { return c.Cp }
