// Package identity is the server-side identity provider of go-pass-guard.
//
// Every login method implements [Provider] and yields a [models.Principal]:
// the password provider checks the owner secret, the Google and GitHub
// providers run the OAuth2 authorization code flow. The [Authenticator]
// issues principal tokens for them, keeps the short-lived state of federated
// flows and holds redirect results until the client picks them up.
package identity
