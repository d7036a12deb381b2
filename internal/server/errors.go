package server

import "errors"

// errNoTransports is returned when neither the HTTP nor the gRPC listener
// could be configured.
var errNoTransports = errors.New("no transport is configured")
