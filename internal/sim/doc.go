// Package sim implements the shape simulation behind pettoy.
//
// A [Simulation] owns every piece of mutable state: the shape collection,
// the global energy multiplier, the activity counter and the background
// color. It is advanced one frame at a time with [Simulation.Step] and
// mutated by discrete stimulus [Action] values.
//
// Velocities are expressed in pixels per frame, so position integration
// ignores dt while the oscillation and twitch timers run on wall-clock
// seconds.
//
// # Thread Safety
//
// A Simulation is NOT thread-safe. It is owned by the single frame loop.
package sim
