package identity

import "errors"

var (
	ErrProviderNotSupported = errors.New("identity provider is not supported")
	ErrInvalidState         = errors.New("invalid oauth state")
	ErrCodeExchange         = errors.New("oauth code exchange failed")
	ErrFetchProfile         = errors.New("fetching provider profile failed")
)
