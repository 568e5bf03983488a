// Package metrics summarises a particle population once per frame.
//
//   - [Spread]: RMS distance from the spawn origin
//   - [Visible]: particles whose centre is inside the window
//   - [MeanSpeed]: mean velocity magnitude
//
// A [Tracker] feeds a set of metrics from the frame driver and keeps their
// history for plots and recordings.
package metrics
