// Package viz plays pettoy inside a terminal using Bubble Tea.
//
// The simulation runs on a virtual pixel surface where every terminal cell
// covers a fixed block of pixels ([config.TerminalConfig]). [Canvas]
// rasterizes each frame by sampling cell centers, and the result is painted
// with lipgloss background colors.
//
// # Key Bindings
//
//	Ctrl+W - exit (terminals cannot report Shift together with Ctrl+letter)
//	F11    - ignored, like the full-screen toggle on the desktop
//	any    - stimulus, subject to the debounce window
package viz
