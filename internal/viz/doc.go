// Package viz renders the particle simulation in a terminal using Bubble Tea.
//
// A [Surface] implements frame.Window on a braille [Canvas], so the same
// frame.Driver that runs the desktop window runs here. Each 60 Hz tick steps
// the driver once; closing the viewer is a close request the driver sees on
// its next poll.
//
// # Key Bindings
//
//	Q/Esc - Close
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
