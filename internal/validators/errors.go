package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyWebsite  = errors.New("website is required")
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrEmptyLoginKey = errors.New("login key is required")
	ErrEmptySecret   = errors.New("secret is required")
	ErrEmptyOwnerID  = errors.New("owner id is required")
	ErrEmptyEntryID  = errors.New("entry id is required")
)
