// Package fluid models the working medium of the grid: temperature-dependent
// property correlations for liquid water and a fixed-property fluid for
// callers that prefer constants.
//
// Overview:
//
//   - Fluid is the property interface the dimensioning routines consume:
//     Density [kg/m³], DynamicViscosity [Pa·s] and HeatCapacity [J/(kg·K)],
//     each as a function of temperature in °C.
//   - Water implements Fluid with closed-form correlations fitted to liquid
//     water between roughly 10 °C and 150 °C at grid pressure levels, where
//     the pressure dependence of all three properties is negligible.
//   - Constant implements Fluid with fixed values; it reproduces the
//     constant-property assumption of the per-timestep solvers exactly.
//
// The correlations:
//
//   - Density: quadratic fit, within ±0.5 kg/m³ of reference tables over the
//     fitted range.
//   - Dynamic viscosity: the classic three-parameter exponential
//     μ = 2.414e−5 · 10^(247.8/(T_K − 140)), within ~2% over the range.
//   - Heat capacity: quadratic fit around the 4.18–4.22 kJ/(kg·K) plateau.
//
// All functions are pure; every Fluid here is safe to share.
package fluid
