package adapter

import "errors"

var (
	ErrEmptyAddress     = errors.New("empty server address")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrLoginKeyMismatch = errors.New("owner login key does not match principal")
)
