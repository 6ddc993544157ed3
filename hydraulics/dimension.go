// Package hydraulics: general-purpose pipe-dimensioning routines.
//
// Unlike the operating solver's single-regime correlation, these routines
// resolve the full friction-factor landscape — laminar, hydraulically
// smooth, transition and fully rough — switching on the Reynolds number and
// the dimensionless roughness term Re·k/d, with iterative solves of the
// implicit Prandtl–Kármán and Colebrook equations where no closed form
// exists. They answer sizing questions ("what velocity fits a pressure-drop
// budget for this diameter?") and are independent of any topology.

package hydraulics

import (
	"fmt"
	"math"

	"github.com/fjernvarme/dhgrid/fluid"
)

const (
	// ReCritical is the laminar/turbulent boundary.
	ReCritical = 2320.0

	// smoothLimit and roughLimit bound the transition range of the
	// dimensionless roughness term Re·k/d: below smoothLimit the pipe acts
	// hydraulically smooth, above roughLimit fully rough.
	smoothLimit = 65.0
	roughLimit  = 1300.0

	// blasiusLimit and nikuradseLimit split the smooth-turbulent range by
	// Reynolds number: Blasius below 1e5, Nikuradse up to 1e6, the implicit
	// Prandtl–Kármán equation beyond.
	blasiusLimit   = 1e5
	nikuradseLimit = 1e6

	// frictionTol is the bisection tolerance on x = 1/√λ for the implicit
	// friction equations.
	frictionTol = 1e-10
)

// PressureDrop computes the pressure loss in Pa of a single pipe leg.
//
// Arguments: flow velocity in m/s, inner diameter in m, inner-surface
// roughness in mm, medium temperature in °C, pipe length in m, absolute
// pressure in Pa (part of the thermodynamic state; the bundled fluids treat
// their properties as pressure-independent), and the fluid.
//
// Returns ErrNonPhysical for non-positive diameter or length, negative
// roughness or velocity, or a nil fluid. Zero velocity yields zero drop.
func PressureDrop(velocity, innerDiameter, roughness, temperature, length, pressure float64, f fluid.Fluid) (float64, error) {
	_ = pressure
	if f == nil {
		return 0, fmt.Errorf("nil fluid: %w", ErrNonPhysical)
	}
	if innerDiameter <= 0 || length <= 0 || roughness < 0 || velocity < 0 {
		return 0, fmt.Errorf("v=%v d=%v k=%v l=%v: %w",
			velocity, innerDiameter, roughness, length, ErrNonPhysical)
	}
	if velocity == 0 {
		return 0, nil
	}

	k := roughness * 1e-3 // mm → m
	rho := f.Density(temperature)
	nu := fluid.KinematicViscosity(f, temperature)
	re := velocity * innerDiameter / nu

	var lam float64
	switch {
	case re < ReCritical:
		lam = 64 / re
	case re*k/innerDiameter < smoothLimit:
		lam = lambdaSmooth(re)
	case re*k/innerDiameter > roughLimit:
		lam = lambdaRough(innerDiameter, k)
	default:
		lam = lambdaTransition(re, k, innerDiameter)
	}

	return lam * length / innerDiameter * rho / 2 * velocity * velocity, nil
}

// lambdaSmooth resolves the hydraulically smooth turbulent regime.
func lambdaSmooth(re float64) float64 {
	switch {
	case re < blasiusLimit:
		// Blasius.
		return 0.3164 * math.Pow(re, -0.25)
	case re < nikuradseLimit:
		// Nikuradse.
		return 0.0032 + 0.221*math.Pow(re, -0.237)
	default:
		// Prandtl–Kármán, implicit in x = 1/√λ:
		//   x = 2·log10(Re / (2.51·x))
		x := solveFriction(func(x float64) float64 {
			return x - 2*math.Log10(re/(2.51*x))
		})

		return 1 / (x * x)
	}
}

// lambdaRough is the fully rough closed form (Prandtl–Nikuradse).
func lambdaRough(d, k float64) float64 {
	x := -2 * math.Log10(k/(3.71*d))

	return 1 / (x * x)
}

// lambdaTransition resolves the smooth/rough transition range via the
// implicit Colebrook equation in x = 1/√λ:
//
//	x + 2·log10(2.51·x/Re + k/(3.71·d)) = 0
func lambdaTransition(re, k, d float64) float64 {
	x := solveFriction(func(x float64) float64 {
		return x + 2*math.Log10(2.51*x/re+k/(3.71*d))
	})

	return 1 / (x * x)
}

// solveFriction bisects fn over the bracket [0.5, 40] of x = 1/√λ, which
// covers λ from ~6e-4 to 4 — far beyond any physical friction factor. fn
// must be increasing in x, which both implicit equations are.
func solveFriction(fn func(float64) float64) float64 {
	lo, hi := 0.5, 40.0
	for i := 0; i < 200; i++ {
		mid := 0.5 * (lo + hi)
		if hi-lo < frictionTol {
			return mid
		}
		if fn(mid) > 0 {
			hi = mid
		} else {
			lo = mid
		}
	}

	return 0.5 * (lo + hi)
}

// VelocitySearch parameterizes the MaxVelocity root finders. Zero-valued
// fields take the documented defaults.
type VelocitySearch struct {
	// Roughness of the inner pipe surface in mm. Default 0.1.
	Roughness float64

	// TargetDrop is the pressure-drop budget in Pa over Length. Default 100.
	TargetDrop float64

	// PressureTol stops iteration once |Δp − TargetDrop| falls below it.
	// Default 0.1 Pa.
	PressureTol float64

	// VelocityTol stops the bisection once the bracket shrinks below it.
	// Default 0.001 m/s. Ignored by the secant method.
	VelocityTol float64

	// Low and High are the starting velocities in m/s: the bisection
	// bracket, or the two secant seeds. Defaults 0.01 and 10 for bisection,
	// 1 and 2 for the secant method.
	Low, High float64

	// Length is the pipe length the budget refers to, in m. Default 1.
	Length float64

	// Pressure is the absolute pressure level in Pa. Default 101325.
	Pressure float64
}

// withDefaults fills zero fields. seedLow/seedHigh differ per method.
func (s VelocitySearch) withDefaults(seedLow, seedHigh float64) VelocitySearch {
	if s.Roughness == 0 {
		s.Roughness = 0.1
	}
	if s.TargetDrop == 0 {
		s.TargetDrop = 100
	}
	if s.PressureTol == 0 {
		s.PressureTol = 0.1
	}
	if s.VelocityTol == 0 {
		s.VelocityTol = 0.001
	}
	if s.Low == 0 {
		s.Low = seedLow
	}
	if s.High == 0 {
		s.High = seedHigh
	}
	if s.Length == 0 {
		s.Length = 1
	}
	if s.Pressure == 0 {
		s.Pressure = 101325
	}

	return s
}

// MaxVelocityBisection finds the flow velocity whose pressure drop over
// s.Length meets s.TargetDrop, by bisection on [s.Low, s.High].
//
// Returns ErrBadBracket when the drop at both bracket ends lies on the same
// side of the target. Iteration stops on either tolerance; like the
// reference procedure it returns the best estimate after the iteration cap
// rather than failing.
func MaxVelocityBisection(innerDiameter, avgTemp float64, f fluid.Fluid, s VelocitySearch) (float64, error) {
	s = s.withDefaults(0.01, 10)

	drop := func(v float64) (float64, error) {
		return PressureDrop(v, innerDiameter, s.Roughness, avgTemp, s.Length, s.Pressure, f)
	}

	pLow, err := drop(s.Low)
	if err != nil {
		return 0, err
	}
	pHigh, err := drop(s.High)
	if err != nil {
		return 0, err
	}
	if (pLow-s.TargetDrop)*(pHigh-s.TargetDrop) >= 0 {
		return 0, fmt.Errorf("[%v, %v] m/s: %w", s.Low, s.High, ErrBadBracket)
	}

	lo, hi := s.Low, s.High
	v := 0.5 * (lo + hi)
	for i := 0; i < 200; i++ {
		v = 0.5 * (lo + hi)
		p, err := drop(v)
		if err != nil {
			return 0, err
		}
		if math.Abs(p-s.TargetDrop) < s.PressureTol || hi-lo < s.VelocityTol {
			break
		}
		pl, err := drop(lo)
		if err != nil {
			return 0, err
		}
		if (pl-s.TargetDrop)*(p-s.TargetDrop) < 0 {
			hi = v
		} else {
			lo = v
		}
	}

	return v, nil
}

// MaxVelocitySecant finds the flow velocity whose pressure drop over
// s.Length meets s.TargetDrop, by the secant method seeded at s.Low and
// s.High. The seeds should lie near the expected velocity; the method does
// not require a bracket but converges only from a reasonable start. Like
// the reference procedure it returns the current estimate after the
// iteration cap.
func MaxVelocitySecant(innerDiameter, avgTemp float64, f fluid.Fluid, s VelocitySearch) (float64, error) {
	s = s.withDefaults(1, 2)

	drop := func(v float64) (float64, error) {
		return PressureDrop(v, innerDiameter, s.Roughness, avgTemp, s.Length, s.Pressure, f)
	}

	v0, v1 := s.Low, s.High
	var vNew float64
	for i := 0; i < 100; i++ {
		p0, err := drop(v0)
		if err != nil {
			return 0, err
		}
		p1, err := drop(v1)
		if err != nil {
			return 0, err
		}
		if p1 == p0 {
			return 0, fmt.Errorf("flat secant at v=%v m/s: %w", v1, ErrNonPhysical)
		}
		vNew = v1 - (p1-s.TargetDrop)*(v1-v0)/(p1-p0)
		pNew, err := drop(math.Max(vNew, 0))
		if err != nil {
			return 0, err
		}
		if math.Abs(pNew-s.TargetDrop) < s.PressureTol {
			break
		}
		v0, v1 = v1, vNew
	}

	return vNew, nil
}

// VelocityFromVolumeFlow converts a volume flow in m³/h through a pipe of
// inner diameter d (m) into a mean velocity in m/s.
func VelocityFromVolumeFlow(volFlow, d float64) float64 {
	return volFlow / ((d / 2) * (d / 2) * math.Pi * 3600)
}

// MassFlowFromVelocity converts a mean velocity in m/s into a mass flow in
// kg/s at the given average temperature.
func MassFlowFromVelocity(v, d, avgTemp float64, f fluid.Fluid) float64 {
	return f.Density(avgTemp) * v * (d / 2) * (d / 2) * math.Pi
}

// VelocityFromMassFlow converts a mass flow in kg/s into a mean velocity in
// m/s at the given average temperature.
func VelocityFromMassFlow(mf, d, avgTemp float64, f fluid.Fluid) float64 {
	return mf / (f.Density(avgTemp) * (d / 2) * (d / 2) * math.Pi)
}

// MassFlowFromPower returns the mass flow in kg/s that transports the given
// thermal power in W across a temperature spread deltaT in K, evaluated at
// the average temperature.
func MassFlowFromPower(power, avgTemp, deltaT float64, f fluid.Fluid) float64 {
	return power / (f.HeatCapacity(avgTemp) * deltaT)
}

// ThermalPower returns the thermal power in W carried by mass flow mf in
// kg/s between supply and return temperature in °C.
func ThermalPower(tSupply, tReturn, mf float64, f fluid.Fluid) float64 {
	cpS := f.HeatCapacity(tSupply)
	cpR := f.HeatCapacity(tReturn)

	return mf * (cpS*(tSupply+273.15) - cpR*(tReturn+273.15))
}

// TrenchHeatLoss returns the heat loss per trench meter in W/m for an
// average medium temperature, a trench U-value in W/(m·K) and a surrounding
// (ground) temperature. Supply and return U-values must be summed by the
// caller if the total trench loss is wanted.
func TrenchHeatLoss(avgTemp, uValue, groundTemp float64) float64 {
	return (avgTemp - groundTemp) * uValue
}
