package server

import "context"

// Server defines the lifecycle contract of the transports and background
// workers run by this package.
type Server interface {
	// Run serves until ctx is cancelled, then shuts everything down
	// gracefully and returns.
	Run(ctx context.Context) error
}
