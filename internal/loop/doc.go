// Package loop drives a [sim.Simulation] one frame at a time.
//
// The loop is platform-agnostic. A platform layer supplies three
// collaborators:
//
//   - [Input]: a polled queue of window-close and key-down events
//   - [Clock]: seconds elapsed since the previous frame, capping the rate
//   - [Canvas]: fill, circle, rect, polygon and text primitives
//
// Each frame drains input, turns accepted key presses into stimulus
// actions, recomputes energy once per interval, advances every shape and
// draws the result with the help overlay on top.
//
// The only way out of the Running state is Ctrl+Shift+W. Window close
// requests are swallowed on purpose.
package loop
