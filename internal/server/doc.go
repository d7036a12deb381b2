// Package server binds the pass-guard transports and runs them alongside the
// background workers until the context is cancelled, then drains them.
package server
