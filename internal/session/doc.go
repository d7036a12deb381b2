// Package session is the client-side state machine that turns sign-in
// signals into a single navigation decision.
//
// Two sources report principals: a one-shot check for a pending redirect
// result made at start, and a subscription to auth state changes. Both feed
// one event channel consumed by [Machine.Run], so reconciliation always runs
// sequentially even when both sources fire for the same sign-in.
//
//	Unauthenticated -> AuthPending -> Authenticated -> Linked | Unlinked
package session
