// Package sim provides the discrete-event simulation engine for fan ingress
// into a stadium: arrival outside the perimeter, pat-down inspection by a
// pooled inspection station, walk to an assigned gate, and passage through
// one of that gate's turnstiles.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - fan.go: per-fan state and the six lifecycle timestamps
//   - event.go: the four event kinds that drive the simulation
//   - scheduler.go: the Future Event List and simulated-time clock
//   - simulator.go: the event loop and its four handlers
//
// # Architecture
//
// All simulation state (FEL, stations, monitor, RNG) is owned by a single
// *Simulator value with no package-level or global state, so independent
// runs (see RunAggregator) never share mutable state.
package sim
