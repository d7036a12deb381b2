// Package http implements the REST transport of the go-pass-guard server.
//
// It wires the chi router, the identity endpoints that issue principal
// tokens, the owner-scoped credential API and the unauthenticated legacy
// routes. Tracing, access logging, compression and bearer authentication are
// handled here before requests reach the service layer.
package http
