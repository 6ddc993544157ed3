// Package dhgrid is a steady-state simulation engine for piped district
// heating networks: given a tree-shaped grid of producers, forks and
// consumers, it computes the per-timestep flow and temperature state that
// satisfies mass and energy conservation.
//
// 🔥 What is dhgrid?
//
//	A small, deterministic library that brings together:
//		• core/       — network topology: nodes, pipes, tree validation,
//		  signed incidence matrix, flow-direction views
//		• fluid/      — water property correlations (density, viscosity,
//		  heat capacity) and fixed-property fluids
//		• hydraulics/ — mass-flow balance, Reynolds & friction, distributed
//		  and localized pressure losses, critical-path global loss, pump
//		  power, plus standalone pipe-dimensioning pressure-drop routines
//		• thermal/    — two-pass exponential cooling propagation and heat
//		  losses per pipe and for the whole grid
//		• simulate/   — timestep orchestration, input series assembly and
//		  time-indexed result tables
//
// ✨ Why choose dhgrid?
//
//   - Deterministic – every solve is a pure function of topology and inputs
//   - Honest failure – inconsistent inputs abort the run with typed errors,
//     never with silently wrong numbers
//   - Parallel-ready – timesteps are independent and may run concurrently
//   - Pure Go – gonum for the linear algebra, no cgo
//
// A minimal network:
//
//	    P───F───C1
//	        │
//	        C2
//
//	one producer P feeding two consumers through a fork F.
//
// Start with simulate.New for whole-run simulation, or use the hydraulics
// and thermal solvers directly for single-timestep work.
//
//	go get github.com/fjernvarme/dhgrid
package dhgrid
